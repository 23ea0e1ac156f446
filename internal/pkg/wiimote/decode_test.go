package wiimote

import (
	"testing"
	"time"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"

	"github.com/openwiimote/wiigo/internal/pkg/input"
)

type rawEvent struct {
	t     evdev.EvType
	code  evdev.EvCode
	value int32
}

func key(code evdev.EvCode, value int32) rawEvent {
	return rawEvent{t: evdev.EV_KEY, code: code, value: value}
}

func abs(code evdev.EvCode, value int32) rawEvent {
	return rawEvent{t: evdev.EV_ABS, code: code, value: value}
}

func syn() rawEvent {
	return rawEvent{t: evdev.EV_SYN, code: evdev.SYN_REPORT}
}

func feed(dec decoder, events ...rawEvent) []Event {
	var out []Event
	ts := time.Unix(10, 0)
	for _, ev := range events {
		typed := dec.accept(ts, ev.t, ev.code, ev.value)
		if typed != nil {
			out = append(out, typed)
		}
	}
	return out
}

func TestCoreKeyDecoding(t *testing.T) {
	dec := newDecoder(Core)

	out := feed(dec,
		key(evdev.BTN_A, 1),
		key(evdev.BTN_A, 0),
		key(evdev.KEY_NEXT, 1),
	)

	assert.Len(t, out, 3)
	assert.Equal(t, &KeyEvent{
		header: header{ts: time.Unix(10, 0), kind: Core},
		Code:   KeyA,
		State:  StatePressed,
	}, out[0])
	assert.Equal(t, StateReleased, out[1].(*KeyEvent).State)
	assert.Equal(t, KeyPlus, out[2].(*KeyEvent).Code)
}

func TestKeyDecodingIgnoresUnknownInput(t *testing.T) {
	dec := newDecoder(Core)

	out := feed(dec,
		key(evdev.BTN_TRIGGER, 1), // not part of the remote
		key(evdev.BTN_A, 3),       // out of press/release/repeat range
		abs(evdev.ABS_X, 5),       // core reports no axes
	)

	assert.Empty(t, out)
}

func TestAccelFrameFlushedBySynReport(t *testing.T) {
	dec := newDecoder(Accelerometer)

	out := feed(dec,
		abs(evdev.ABS_RX, 100),
		abs(evdev.ABS_RY, -25),
		abs(evdev.ABS_RZ, 90),
		syn(),
	)

	assert.Len(t, out, 1)
	assert.Equal(t, Vec3{X: 100, Y: -25, Z: 90}, out[0].(*AccelEvent).Accel)
	assert.Equal(t, Accelerometer, out[0].Source())
}

func TestSynDroppedDoesNotFlush(t *testing.T) {
	dec := newDecoder(Accelerometer)

	out := feed(dec,
		abs(evdev.ABS_RX, 100),
		rawEvent{t: evdev.EV_SYN, code: evdev.SYN_DROPPED},
	)

	assert.Empty(t, out)
}

func TestFrameStatePersistsBetweenReports(t *testing.T) {
	dec := newDecoder(Accelerometer)

	out := feed(dec,
		abs(evdev.ABS_RX, 100),
		syn(),
		abs(evdev.ABS_RY, 50), // X unchanged, cache keeps it
		syn(),
	)

	assert.Len(t, out, 2)
	assert.Equal(t, Vec3{X: 100, Y: 50}, out[1].(*AccelEvent).Accel)
}

func TestIRDecoding(t *testing.T) {
	dec := newDecoder(IR)

	out := feed(dec,
		abs(evdev.ABS_HAT0X, 512),
		abs(evdev.ABS_HAT0Y, 384),
		abs(evdev.ABS_HAT1X, 1023),
		abs(evdev.ABS_HAT1Y, 1023),
		syn(),
	)

	assert.Len(t, out, 1)
	ev := out[0].(*IREvent)
	assert.Equal(t, IRSlot{X: 512, Y: 384}, ev.Slots[0])
	assert.True(t, ev.Slots[0].Valid())
	assert.False(t, ev.Slots[1].Valid())
}

func TestNunchukDecoding(t *testing.T) {
	dec := newDecoder(Nunchuk)

	out := feed(dec,
		key(evdev.BTN_C, 1),
		abs(evdev.ABS_HAT0X, 30),
		abs(evdev.ABS_HAT0Y, -12),
		abs(evdev.ABS_RX, 5),
		syn(),
	)

	assert.Len(t, out, 2)
	assert.Equal(t, KeyC, out[0].(*KeyEvent).Code)
	ev := out[1].(*NunchukEvent)
	assert.Equal(t, Vec2{X: 30, Y: -12}, ev.Stick)
	assert.Equal(t, Vec3{X: 5}, ev.Accel)
}

func TestClassicDecoding(t *testing.T) {
	dec := newDecoder(ClassicController)

	out := feed(dec,
		key(evdev.BTN_TL2, 1),
		abs(evdev.ABS_HAT1X, 10),
		abs(evdev.ABS_HAT2Y, -7),
		abs(evdev.ABS_HAT3X, 40),
		syn(),
	)

	assert.Len(t, out, 2)
	assert.Equal(t, KeyZL, out[0].(*KeyEvent).Code)
	ev := out[1].(*ClassicEvent)
	assert.Equal(t, Vec2{X: 10}, ev.StickLeft)
	assert.Equal(t, Vec2{Y: -7}, ev.StickRight)
	assert.Equal(t, int32(40), ev.ShoulderLeft)
}

func TestBalanceBoardDecoding(t *testing.T) {
	dec := newDecoder(BalanceBoard)

	out := feed(dec,
		abs(evdev.ABS_HAT0X, 1200),
		abs(evdev.ABS_HAT0Y, 1300),
		abs(evdev.ABS_HAT1X, 900),
		abs(evdev.ABS_HAT1Y, 1100),
		syn(),
	)

	assert.Len(t, out, 1)
	assert.Equal(t, [4]int32{1200, 1300, 900, 1100}, out[0].(*BalanceBoardEvent).Weights)
}

func TestProDecoding(t *testing.T) {
	dec := newDecoder(ProController)

	out := feed(dec,
		key(input.BTN_EAST, 1),
		key(input.BTN_DPAD_UP, 1),
		key(evdev.BTN_THUMBL, 1),
		abs(evdev.ABS_X, 100),
		abs(evdev.ABS_RY, -100),
		syn(),
	)

	assert.Len(t, out, 4)
	assert.Equal(t, KeyA, out[0].(*KeyEvent).Code)
	assert.Equal(t, KeyUp, out[1].(*KeyEvent).Code)
	assert.Equal(t, KeyThumbL, out[2].(*KeyEvent).Code)
	ev := out[3].(*ProEvent)
	assert.Equal(t, [2]Vec2{{X: 100}, {Y: -100}}, ev.Sticks)
}

func TestDrumsDecoding(t *testing.T) {
	dec := newDecoder(Drums)

	out := feed(dec,
		key(evdev.BTN_START, 1),
		abs(input.ABS_CYMBAL_RIGHT, 90),
		abs(input.ABS_TOM_LEFT, 64),
		abs(input.ABS_BASS, 127),
		abs(input.ABS_HI_HAT, 30),
		abs(evdev.ABS_X, 12),
		syn(),
	)

	assert.Len(t, out, 2)
	assert.Equal(t, KeyPlus, out[0].(*KeyEvent).Code)
	ev := out[1].(*DrumsEvent)
	assert.Equal(t, Vec2{X: 12}, ev.Pad)
	assert.Equal(t, int32(90), ev.CymbalRight)
	assert.Equal(t, int32(64), ev.TomLeft)
	assert.Equal(t, int32(127), ev.Bass)
	assert.Equal(t, int32(30), ev.HiHat)
	assert.Equal(t, Drums, ev.Source())
}

func TestGuitarDecoding(t *testing.T) {
	dec := newDecoder(Guitar)

	out := feed(dec,
		key(input.BTN_FRET_MID, 1),
		key(input.BTN_STRUM_BAR_DOWN, 1),
		abs(input.ABS_WHAMMY_BAR, 42),
		abs(input.ABS_FRET_BOARD, 17),
		abs(evdev.ABS_Y, -3),
		syn(),
	)

	assert.Len(t, out, 3)
	assert.Equal(t, KeyFretMid, out[0].(*KeyEvent).Code)
	assert.Equal(t, KeyStrumBarDown, out[1].(*KeyEvent).Code)
	ev := out[2].(*GuitarEvent)
	assert.Equal(t, int32(42), ev.WhammyBar)
	assert.Equal(t, int32(17), ev.FretBoard)
	assert.Equal(t, Vec2{Y: -3}, ev.Stick)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "core", Core.String())
	assert.Equal(t, "drums|guitar", (Drums | Guitar).String())
	assert.Equal(t, "none", Kind(0).String())
}
