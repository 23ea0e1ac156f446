package pointer

import (
	"fmt"

	"github.com/holoplot/go-evdev"

	"github.com/openwiimote/wiigo/internal/pkg/uinput"
)

// VirtualPointer is an absolute pointing device backed by uinput. Frames
// move it, core buttons click it.
type VirtualPointer struct {
	dev   *uinput.Device
	space FRect
}

// NewVirtualPointer registers a new absolute pointer device spanning the
// given space. Needs write access to /dev/uinput.
func NewVirtualPointer(name string, space FRect) (*VirtualPointer, error) {
	dev, err := uinput.Create(name,
		[]evdev.EvCode{evdev.BTN_LEFT, evdev.BTN_RIGHT},
		[]uinput.AbsAxis{
			{Code: evdev.ABS_X, Min: int32(space.Min.X), Max: int32(space.Max.X)},
			{Code: evdev.ABS_Y, Min: int32(space.Min.Y), Max: int32(space.Max.Y)},
		},
	)
	if err != nil {
		return nil, err
	}
	return &VirtualPointer{dev: dev, space: space}, nil
}

// Move places the pointer at a frame's position. Invalid frames are ignored,
// the pointer stays where it was.
func (p *VirtualPointer) Move(frame Frame) error {
	if !frame.Valid {
		return nil
	}
	pos := p.space.Clamp(frame.Position)
	if err := p.dev.Emit(evdev.EV_ABS, evdev.ABS_X, int32(pos.X)); err != nil {
		return fmt.Errorf("moving pointer failed: %w", err)
	}
	if err := p.dev.Emit(evdev.EV_ABS, evdev.ABS_Y, int32(pos.Y)); err != nil {
		return fmt.Errorf("moving pointer failed: %w", err)
	}
	return p.dev.Sync()
}

// Button presses or releases a pointer button.
func (p *VirtualPointer) Button(code evdev.EvCode, pressed bool) error {
	return p.dev.Key(code, pressed)
}

// Close unregisters the device.
func (p *VirtualPointer) Close() error {
	return p.dev.Close()
}
