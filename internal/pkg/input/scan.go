package input

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/holoplot/go-evdev"
)

// GetHandlers returns a list of input handlers available in the system that
// belong to Wii peripherals. Note: there is non-zero probability that the
// returned list may be incomplete, the kernel registers nodes of one remote
// one after another. Grouping a complete set of handlers for given hardware
// device is handled by the device monitor.
func GetHandlers() ([]DeviceInfo, error) {
	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, fmt.Errorf("listing input devices failed: %w", err)
	}

	var infos = make([]DeviceInfo, 0)

	for _, p := range paths {
		info, err := describeHandler(p)
		if err != nil {
			// the node may be gone already or not be readable yet,
			// neither is a reason to fail the whole scan
			continue
		}
		if !info.Supported() {
			continue
		}
		infos = append(infos, info)
	}

	return infos, nil
}

func describeHandler(path string) (DeviceInfo, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return DeviceInfo{}, fmt.Errorf("opening %s failed: %w", path, err)
	}
	defer dev.Close()

	var info DeviceInfo
	info.eventName = filepath.Base(path)

	name, err := dev.Name()
	if err != nil {
		return DeviceInfo{}, fmt.Errorf("reading device name failed: %w", err)
	}
	info.Name = strings.Trim(name, "\x00")

	phys, err := dev.PhysicalLocation()
	if err == nil {
		info.Phys = strings.Trim(phys, "\x00")
	}

	uniq, err := dev.UniqueID()
	if err == nil {
		info.Uniq = strings.Trim(uniq, "\x00")
	}

	id, err := dev.InputID()
	if err != nil {
		return DeviceInfo{}, fmt.Errorf("reading input ID failed: %w", err)
	}
	info.ID = InputID{
		Bus:     id.BusType,
		Vendor:  id.Vendor,
		Product: id.Product,
		Version: id.Version,
	}

	info.Sysfs = fmt.Sprintf("/sys/class/input/%s", info.eventName)
	info.CapableTypes = dev.CapableTypes()

	return info, nil
}
