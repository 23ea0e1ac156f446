package wiimote

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/openwiimote/wiigo/internal/pkg/input"
)

// The hid driver exposes battery state and the four player LEDs as sysfs
// attributes on the parent hid device, two levels above the input node:
//
//	/sys/class/input/eventX/device/device/power_supply/*/capacity
//	/sys/class/input/eventX/device/device/leds/*:blue:p{0..3}/brightness

// hidSysfs returns the sysfs directory of the parent hid device, picking the
// core handler when present since all handlers share the same parent.
func (d *Device) hidSysfs() (string, error) {
	h, ok := d.dev.Handlers[input.DI_TYPE_CORE]
	if !ok {
		for _, v := range d.dev.Handlers {
			h = v
			break
		}
	}
	if h.Sysfs == "" {
		return "", fmt.Errorf("device %q has no sysfs path", d.dev.Name)
	}
	return filepath.Join(h.Sysfs, "device", "device"), nil
}

// Battery returns the charge level in percent.
func (d *Device) Battery() (int, error) {
	base, err := d.hidSysfs()
	if err != nil {
		return 0, err
	}

	matches, err := filepath.Glob(filepath.Join(base, "power_supply", "*", "capacity"))
	if err != nil || len(matches) == 0 {
		return 0, fmt.Errorf("device %q has no battery", d.dev.Name)
	}

	raw, err := os.ReadFile(matches[0])
	if err != nil {
		return 0, fmt.Errorf("reading battery capacity failed: %w", err)
	}

	capacity, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("parsing battery capacity failed: %w", err)
	}
	return capacity, nil
}

// ledPaths returns the brightness attributes of the player LEDs ordered
// p0 to p3.
func (d *Device) ledPaths() ([]string, error) {
	base, err := d.hidSysfs()
	if err != nil {
		return nil, err
	}

	var paths []string
	for i := 0; i < 4; i++ {
		matches, err := filepath.Glob(filepath.Join(base, "leds", fmt.Sprintf("*:blue:p%d", i), "brightness"))
		if err != nil || len(matches) == 0 {
			return nil, fmt.Errorf("device %q has no LED p%d", d.dev.Name, i)
		}
		paths = append(paths, matches[0])
	}
	return paths, nil
}

// Leds returns the player LED states as a bitmask, bit 0 for the leftmost LED.
func (d *Device) Leds() (uint8, error) {
	paths, err := d.ledPaths()
	if err != nil {
		return 0, err
	}

	var mask uint8
	for i, p := range paths {
		raw, err := os.ReadFile(p)
		if err != nil {
			return 0, fmt.Errorf("reading LED state failed: %w", err)
		}
		v, err := strconv.Atoi(strings.TrimSpace(string(raw)))
		if err != nil {
			return 0, fmt.Errorf("parsing LED state failed: %w", err)
		}
		if v > 0 {
			mask |= 1 << i
		}
	}
	return mask, nil
}

// SetLeds sets the player LEDs from a bitmask, bit 0 for the leftmost LED.
func (d *Device) SetLeds(mask uint8) error {
	paths, err := d.ledPaths()
	if err != nil {
		return err
	}

	for i, p := range paths {
		v := "0"
		if mask&(1<<i) != 0 {
			v = "1"
		}
		if err := os.WriteFile(p, []byte(v), 0); err != nil {
			return fmt.Errorf("setting LED state failed: %w", err)
		}
	}
	return nil
}

// SetPlayer lights the LED pattern for the given player number starting
// from 1. Numbers above four light LED combinations the same way consoles do.
func (d *Device) SetPlayer(player int) error {
	if player < 1 {
		return d.SetLeds(0)
	}
	if player <= 4 {
		return d.SetLeds(1 << (player - 1))
	}
	// 5: p0+p3, 6: p1+p3, 7: p2+p3, beyond that all four
	if player <= 7 {
		return d.SetLeds(1<<(player-5) | 1<<3)
	}
	return d.SetLeds(0b1111)
}
