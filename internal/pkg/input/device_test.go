package input

import (
	"testing"
	"time"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
)

func handler(name, phys, uniq, event string) DeviceInfo {
	return DeviceInfo{
		ID:        InputID{Bus: 0x0005, Vendor: 0x057e, Product: 0x0306, Version: 0x0600},
		Name:      name,
		Phys:      phys,
		Uniq:      uniq,
		eventName: event,
	}
}

func TestHandlerTypeFromName(t *testing.T) {
	for name, expected := range map[string]HandlerType{
		NameCore:           DI_TYPE_CORE,
		NameAccel:          DI_TYPE_ACCEL,
		NameIR:             DI_TYPE_IR,
		NameMotionPlus:     DI_TYPE_MOTION_PLUS,
		NameNunchuk:        DI_TYPE_NUNCHUK,
		NameClassic:        DI_TYPE_CLASSIC,
		NameBalanceBoard:   DI_TYPE_BALANCE_BOARD,
		NamePro:            DI_TYPE_PRO,
		NameDrums:          DI_TYPE_DRUMS,
		NameGuitar:         DI_TYPE_GUITAR,
		"Some Keyboard":    DI_TYPE_UNKNOWN,
	} {
		di := handler(name, "", "", "event0")
		assert.Equal(t, expected, di.HandlerType(), "name: %s", name)
	}
}

func TestNormalizeGroupsByUniq(t *testing.T) {
	infos := []DeviceInfo{
		handler(NameCore, "b8:27:eb:01:02:03", "00:1f:32:aa:bb:cc", "event3"),
		handler(NameAccel, "b8:27:eb:01:02:03", "00:1f:32:aa:bb:cc", "event4"),
		handler(NameDrums, "b8:27:eb:01:02:03", "00:1f:32:aa:bb:cc", "event5"),
		handler(NameCore, "b8:27:eb:01:02:03", "00:1f:32:dd:ee:ff", "event6"),
	}

	devices := Normalize(infos)
	assert.Len(t, devices, 2)

	var drumsRemote *Device
	for i := range devices {
		if len(devices[i].Handlers) == 3 {
			drumsRemote = &devices[i]
		}
	}
	assert.NotNil(t, drumsRemote)
	assert.Equal(t, WiimoteDevice, drumsRemote.DeviceType)
	assert.Equal(t, NameCore, drumsRemote.Name)
	assert.Equal(t, "00:1f:32:aa:bb:cc", drumsRemote.Uniq)
	assert.True(t, drumsRemote.Has(DI_TYPE_DRUMS))
	assert.True(t, drumsRemote.Has(DI_TYPE_ACCEL))
	assert.False(t, drumsRemote.Has(DI_TYPE_GUITAR))
}

func TestDetermineDeviceType(t *testing.T) {
	board := map[HandlerType]DeviceInfo{
		DI_TYPE_BALANCE_BOARD: handler(NameBalanceBoard, "p", "u", "event1"),
	}
	assert.Equal(t, BalanceBoardDevice, DetermineDeviceType(board))

	pro := map[HandlerType]DeviceInfo{
		DI_TYPE_PRO: handler(NamePro, "p", "u", "event1"),
	}
	assert.Equal(t, ProDevice, DetermineDeviceType(pro))

	remote := map[HandlerType]DeviceInfo{
		DI_TYPE_CORE:   handler(NameCore, "p", "u", "event1"),
		DI_TYPE_GUITAR: handler(NameGuitar, "p", "u", "event2"),
	}
	assert.Equal(t, WiimoteDevice, DetermineDeviceType(remote))

	assert.Equal(t, UnknownDevice, DetermineDeviceType(nil))
}

func TestSupported(t *testing.T) {
	core := handler(NameCore, "p", "u", "event1")
	assert.True(t, core.Supported())
	guitar := handler(NameGuitar, "p", "u", "event1")
	assert.True(t, guitar.Supported())
	keyboard := handler("Some Keyboard", "p", "u", "event1")
	assert.False(t, keyboard.Supported())
}

func absEvent(code evdev.EvCode, value int32) InputEvent {
	return InputEvent{Event: evdev.InputEvent{Type: evdev.EV_ABS, Code: code, Value: value}}
}

func TestThrottleAbsPassthrough(t *testing.T) {
	in := make(chan InputEvent, 4)
	out := make(chan InputEvent, 4)

	in <- absEvent(evdev.ABS_X, 1)
	in <- absEvent(evdev.ABS_X, 2)
	close(in)

	throttleAbs(in, out, 0)
	close(out)

	var values []int32
	for ev := range out {
		values = append(values, ev.Event.Value)
	}
	assert.Equal(t, []int32{1, 2}, values)
}

// The throttle keeps the last withheld value and sends it into the output
// channel after its input closes, the output side must stay open until the
// throttle returns.
func TestThrottleAbsFlushesAfterInputCloses(t *testing.T) {
	in := make(chan InputEvent)
	out := make(chan InputEvent, 8)

	done := make(chan bool)
	go func() {
		throttleAbs(in, out, time.Hour)
		close(out)
		close(done)
	}()

	in <- absEvent(evdev.ABS_X, 1) // first event for a code passes right away
	in <- absEvent(evdev.ABS_X, 2) // within the window, withheld
	in <- absEvent(evdev.ABS_X, 3) // replaces the withheld value
	close(in)

	select {
	case <-done:
	case <-time.After(time.Second * 5):
		t.Fatal("throttle did not finish after input closed")
	}

	var values []int32
	for ev := range out {
		values = append(values, ev.Event.Value)
	}
	assert.Equal(t, []int32{1, 3}, values)
}

func TestDeviceID(t *testing.T) {
	infos := []DeviceInfo{
		handler(NameCore, "b8:27:eb:01:02:03", "00:1f:32:aa:bb:cc", "event3"),
	}
	devices := Normalize(infos)
	assert.Len(t, devices, 1)
	assert.Equal(t, DeviceID("0005057e0306060000:1f:32:aa:bb:cc"), devices[0].DeviceID())
}
