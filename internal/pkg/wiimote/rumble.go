package wiimote

import (
	"fmt"
	"os"
	"time"
	"unsafe"

	"github.com/holoplot/go-evdev"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/openwiimote/wiigo/internal/pkg/input"
	"github.com/openwiimote/wiigo/internal/pkg/logger"
)

const (
	eviocsff  = 0x40304580 // upload a force feedback effect
	eviocrmff = 0x40044581 // remove a force feedback effect
)

// ffEffect mirrors struct ff_effect. The union area holds the rumble
// parameters, strong magnitude in the low half of the first word.
type ffEffect struct {
	Type      uint16
	ID        int16
	Direction uint16
	Trigger   struct{ Button, Interval uint16 }
	Replay    struct{ Length, Delay uint16 }
	U         [4]uint64
}

const ffRumble = 0x50

type playEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// Rumble pulses the rumble motor for the given duration. The effect runs in
// the background, the call returns right after starting it.
func (d *Device) Rumble(duration time.Duration) error {
	h, ok := d.dev.Handlers[input.DI_TYPE_CORE]
	if !ok {
		return fmt.Errorf("device %q has no rumble motor", d.dev.Name)
	}

	f, err := os.OpenFile(h.EventPath(), os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("opening handler for rumble failed: %w", err)
	}

	ms := duration.Milliseconds()
	if ms > 0x7fff {
		ms = 0x7fff
	}

	eff := ffEffect{
		Type: ffRumble,
		ID:   -1, // kernel assigns one
	}
	eff.Replay.Length = uint16(ms)
	eff.U[0] = 0xffff // strong magnitude, full power

	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), eviocsff, uintptr(unsafe.Pointer(&eff)))
	if errno != 0 {
		_ = f.Close()
		return fmt.Errorf("uploading rumble effect failed: %w", errno)
	}

	play := playEvent{Type: uint16(evdev.EV_FF), Code: uint16(eff.ID), Value: 1}
	buf := (*(*[unsafe.Sizeof(play)]byte)(unsafe.Pointer(&play)))[:]
	if _, err := f.Write(buf); err != nil {
		_, _, _ = unix.Syscall(unix.SYS_IOCTL, f.Fd(), eviocrmff, uintptr(eff.ID))
		_ = f.Close()
		return fmt.Errorf("starting rumble effect failed: %w", err)
	}

	time.AfterFunc(duration, func() {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), eviocrmff, uintptr(eff.ID))
		if errno != 0 {
			log.Info(fmt.Sprintf("removing rumble effect failed: %v", errno),
				zap.String("device_name", d.dev.Name), logger.Debug)
		}
		_ = f.Close()
	})

	return nil
}
