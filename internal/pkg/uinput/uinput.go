// Package uinput registers virtual input devices through the legacy
// uinput_user_dev setup interface, available on every kernel that has
// uinput at all.
package uinput

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/holoplot/go-evdev"
	"golang.org/x/sys/unix"
)

const (
	devicePath = "/dev/uinput"

	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiSetAbsBit  = 0x40045567
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502

	busVirtual = 0x06
)

// uinputUserDev mirrors struct uinput_user_dev.
type uinputUserDev struct {
	Name         [80]byte
	ID           struct{ BusType, Vendor, Product, Version uint16 }
	FFEffectsMax uint32
	AbsMax       [64]int32
	AbsMin       [64]int32
	AbsFuzz      [64]int32
	AbsFlat      [64]int32
}

type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// AbsAxis declares an absolute axis of a virtual device with its value
// range, the kernel rejects min >= max.
type AbsAxis struct {
	Code     evdev.EvCode
	Min, Max int32
}

// Device is a registered virtual input device node.
type Device struct {
	f *os.File
}

func ioctl(f *os.File, req, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), req, arg)
	if errno != 0 {
		return errno
	}
	return nil
}

// Create registers a virtual device emitting the given keys and axes.
// Needs write access to /dev/uinput.
func Create(name string, keys []evdev.EvCode, axes []AbsAxis) (*Device, error) {
	f, err := os.OpenFile(devicePath, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s failed: %w", devicePath, err)
	}

	configure := func(req, arg uintptr) error {
		if err := ioctl(f, req, arg); err != nil {
			_ = f.Close()
			return fmt.Errorf("configuring uinput device failed: %w", err)
		}
		return nil
	}

	if len(keys) > 0 {
		if err := configure(uiSetEvBit, uintptr(evdev.EV_KEY)); err != nil {
			return nil, err
		}
		for _, code := range keys {
			if err := configure(uiSetKeyBit, uintptr(code)); err != nil {
				return nil, err
			}
		}
	}
	if len(axes) > 0 {
		if err := configure(uiSetEvBit, uintptr(evdev.EV_ABS)); err != nil {
			return nil, err
		}
		for _, axis := range axes {
			if err := configure(uiSetAbsBit, uintptr(axis.Code)); err != nil {
				return nil, err
			}
		}
	}

	var dev uinputUserDev
	copy(dev.Name[:len(dev.Name)-1], name)
	dev.ID.BusType = busVirtual
	for _, axis := range axes {
		dev.AbsMin[axis.Code] = axis.Min
		dev.AbsMax[axis.Code] = axis.Max
	}

	buf := (*(*[unsafe.Sizeof(dev)]byte)(unsafe.Pointer(&dev)))[:]
	if _, err := f.Write(buf); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("describing uinput device failed: %w", err)
	}

	if err := ioctl(f, uiDevCreate, 0); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("creating uinput device failed: %w", err)
	}

	return &Device{f: f}, nil
}

// Emit writes one raw event, the kernel delivers it after the next Sync.
func (d *Device) Emit(t evdev.EvType, code evdev.EvCode, value int32) error {
	ev := inputEvent{Type: uint16(t), Code: uint16(code), Value: value}
	buf := (*(*[unsafe.Sizeof(ev)]byte)(unsafe.Pointer(&ev)))[:]
	_, err := d.f.Write(buf)
	return err
}

// Sync flushes emitted events to readers.
func (d *Device) Sync() error {
	return d.Emit(evdev.EV_SYN, evdev.SYN_REPORT, 0)
}

// Key presses or releases a key and syncs.
func (d *Device) Key(code evdev.EvCode, pressed bool) error {
	var value int32
	if pressed {
		value = 1
	}
	if err := d.Emit(evdev.EV_KEY, code, value); err != nil {
		return fmt.Errorf("pressing key failed: %w", err)
	}
	return d.Sync()
}

// Close unregisters the device.
func (d *Device) Close() error {
	if err := ioctl(d.f, uiDevDestroy, 0); err != nil {
		_ = d.f.Close()
		return fmt.Errorf("destroying uinput device failed: %w", err)
	}
	return d.f.Close()
}
