package wiimote

import (
	"time"

	"github.com/holoplot/go-evdev"
	"github.com/openwiimote/wiigo/internal/pkg/input"
)

// A decoder turns the raw evdev stream of one unit into typed events. Axis
// updates accumulate in a state cache, EV_SYN/SYN_REPORT flushes a complete
// snapshot. Key events pass through immediately. Unknown codes are silently
// ignored, the kernel is free to grow the protocol.
type decoder interface {
	accept(ts time.Time, t evdev.EvType, code evdev.EvCode, value int32) Event
}

// synFilter keeps EV_SYN codes other than SYN_REPORT away from the wrapped
// decoder, SYN_DROPPED must not flush a frame.
type synFilter struct {
	inner decoder
}

func (f synFilter) accept(ts time.Time, t evdev.EvType, code evdev.EvCode, value int32) Event {
	if t == evdev.EV_SYN && code != evdev.SYN_REPORT {
		return nil
	}
	return f.inner.accept(ts, t, code, value)
}

func newDecoder(kind Kind) decoder {
	inner := newKindDecoder(kind)
	if inner == nil {
		return nil
	}
	return synFilter{inner: inner}
}

func newKindDecoder(kind Kind) decoder {
	switch kind {
	case Core:
		return &keyDecoder{kind: Core, keys: coreKeys}
	case Accelerometer:
		return &accelDecoder{}
	case IR:
		return &irDecoder{}
	case MotionPlus:
		return &motionPlusDecoder{}
	case Nunchuk:
		return &nunchukDecoder{}
	case ClassicController:
		return &classicDecoder{}
	case BalanceBoard:
		return &balanceBoardDecoder{}
	case ProController:
		return &proDecoder{}
	case Drums:
		return &drumsDecoder{}
	case Guitar:
		return &guitarDecoder{}
	}
	return nil
}

// decodeKey maps an evdev key triplet to a KeyEvent, nil when the code does
// not belong to the table or the value is out of the press/release/repeat
// range.
func decodeKey(ts time.Time, kind Kind, keys map[evdev.EvCode]Key, code evdev.EvCode, value int32) Event {
	if value < 0 || value > 2 {
		return nil
	}
	key, ok := keys[code]
	if !ok {
		return nil
	}
	return &KeyEvent{
		header: header{ts: ts, kind: kind},
		Code:   key,
		State:  KeyState(value),
	}
}

var coreKeys = map[evdev.EvCode]Key{
	evdev.KEY_LEFT:     KeyLeft,
	evdev.KEY_RIGHT:    KeyRight,
	evdev.KEY_UP:       KeyUp,
	evdev.KEY_DOWN:     KeyDown,
	evdev.KEY_NEXT:     KeyPlus,
	evdev.KEY_PREVIOUS: KeyMinus,
	evdev.BTN_1:        KeyOne,
	evdev.BTN_2:        KeyTwo,
	evdev.BTN_A:        KeyA,
	evdev.BTN_B:        KeyB,
	evdev.BTN_MODE:     KeyHome,
}

// keyDecoder serves units that only report buttons.
type keyDecoder struct {
	kind Kind
	keys map[evdev.EvCode]Key
}

func (d *keyDecoder) accept(ts time.Time, t evdev.EvType, code evdev.EvCode, value int32) Event {
	if t != evdev.EV_KEY {
		return nil
	}
	return decodeKey(ts, d.kind, d.keys, code, value)
}

type accelDecoder struct {
	cache Vec3
}

func (d *accelDecoder) accept(ts time.Time, t evdev.EvType, code evdev.EvCode, value int32) Event {
	switch t {
	case evdev.EV_SYN:
		return &AccelEvent{
			header: header{ts: ts, kind: Accelerometer},
			Accel:  d.cache,
		}
	case evdev.EV_ABS:
		switch code {
		case evdev.ABS_RX:
			d.cache.X = value
		case evdev.ABS_RY:
			d.cache.Y = value
		case evdev.ABS_RZ:
			d.cache.Z = value
		}
	}
	return nil
}

type irDecoder struct {
	cache [4]IRSlot
}

func (d *irDecoder) accept(ts time.Time, t evdev.EvType, code evdev.EvCode, value int32) Event {
	switch t {
	case evdev.EV_SYN:
		return &IREvent{
			header: header{ts: ts, kind: IR},
			Slots:  d.cache,
		}
	case evdev.EV_ABS:
		switch code {
		case evdev.ABS_HAT0X:
			d.cache[0].X = value
		case evdev.ABS_HAT0Y:
			d.cache[0].Y = value
		case evdev.ABS_HAT1X:
			d.cache[1].X = value
		case evdev.ABS_HAT1Y:
			d.cache[1].Y = value
		case evdev.ABS_HAT2X:
			d.cache[2].X = value
		case evdev.ABS_HAT2Y:
			d.cache[2].Y = value
		case evdev.ABS_HAT3X:
			d.cache[3].X = value
		case evdev.ABS_HAT3Y:
			d.cache[3].Y = value
		}
	}
	return nil
}

type motionPlusDecoder struct {
	cache Vec3
}

func (d *motionPlusDecoder) accept(ts time.Time, t evdev.EvType, code evdev.EvCode, value int32) Event {
	switch t {
	case evdev.EV_SYN:
		return &MotionPlusEvent{
			header: header{ts: ts, kind: MotionPlus},
			Speed:  d.cache,
		}
	case evdev.EV_ABS:
		switch code {
		case evdev.ABS_RX:
			d.cache.X = value
		case evdev.ABS_RY:
			d.cache.Y = value
		case evdev.ABS_RZ:
			d.cache.Z = value
		}
	}
	return nil
}

var nunchukKeys = map[evdev.EvCode]Key{
	evdev.BTN_C: KeyC,
	evdev.BTN_Z: KeyZ,
}

type nunchukDecoder struct {
	stick Vec2
	accel Vec3
}

func (d *nunchukDecoder) accept(ts time.Time, t evdev.EvType, code evdev.EvCode, value int32) Event {
	switch t {
	case evdev.EV_KEY:
		return decodeKey(ts, Nunchuk, nunchukKeys, code, value)
	case evdev.EV_ABS:
		switch code {
		case evdev.ABS_HAT0X:
			d.stick.X = value
		case evdev.ABS_HAT0Y:
			d.stick.Y = value
		case evdev.ABS_RX:
			d.accel.X = value
		case evdev.ABS_RY:
			d.accel.Y = value
		case evdev.ABS_RZ:
			d.accel.Z = value
		}
	case evdev.EV_SYN:
		return &NunchukEvent{
			header: header{ts: ts, kind: Nunchuk},
			Stick:  d.stick,
			Accel:  d.accel,
		}
	}
	return nil
}

var classicKeys = map[evdev.EvCode]Key{
	evdev.BTN_A:        KeyA,
	evdev.BTN_B:        KeyB,
	evdev.BTN_X:        KeyX,
	evdev.BTN_Y:        KeyY,
	evdev.KEY_NEXT:     KeyPlus,
	evdev.KEY_PREVIOUS: KeyMinus,
	evdev.BTN_MODE:     KeyHome,
	evdev.KEY_LEFT:     KeyLeft,
	evdev.KEY_RIGHT:    KeyRight,
	evdev.KEY_UP:       KeyUp,
	evdev.KEY_DOWN:     KeyDown,
	evdev.BTN_TL:       KeyTL,
	evdev.BTN_TR:       KeyTR,
	evdev.BTN_TL2:      KeyZL,
	evdev.BTN_TR2:      KeyZR,
}

type classicDecoder struct {
	cache ClassicEvent
}

func (d *classicDecoder) accept(ts time.Time, t evdev.EvType, code evdev.EvCode, value int32) Event {
	switch t {
	case evdev.EV_KEY:
		return decodeKey(ts, ClassicController, classicKeys, code, value)
	case evdev.EV_ABS:
		switch code {
		case evdev.ABS_HAT1X:
			d.cache.StickLeft.X = value
		case evdev.ABS_HAT1Y:
			d.cache.StickLeft.Y = value
		case evdev.ABS_HAT2X:
			d.cache.StickRight.X = value
		case evdev.ABS_HAT2Y:
			d.cache.StickRight.Y = value
		case evdev.ABS_HAT3X:
			d.cache.ShoulderLeft = value
		case evdev.ABS_HAT3Y:
			d.cache.ShoulderRight = value
		}
	case evdev.EV_SYN:
		ev := d.cache
		ev.header = header{ts: ts, kind: ClassicController}
		return &ev
	}
	return nil
}

type balanceBoardDecoder struct {
	cache [4]int32
}

func (d *balanceBoardDecoder) accept(ts time.Time, t evdev.EvType, code evdev.EvCode, value int32) Event {
	switch t {
	case evdev.EV_SYN:
		return &BalanceBoardEvent{
			header:  header{ts: ts, kind: BalanceBoard},
			Weights: d.cache,
		}
	case evdev.EV_ABS:
		switch code {
		case evdev.ABS_HAT0X:
			d.cache[0] = value
		case evdev.ABS_HAT0Y:
			d.cache[1] = value
		case evdev.ABS_HAT1X:
			d.cache[2] = value
		case evdev.ABS_HAT1Y:
			d.cache[3] = value
		}
	}
	return nil
}

var proKeys = map[evdev.EvCode]Key{
	input.BTN_EAST:       KeyA,
	input.BTN_SOUTH:      KeyB,
	input.BTN_NORTH:      KeyX,
	input.BTN_WEST:       KeyY,
	evdev.BTN_START:      KeyPlus,
	evdev.BTN_SELECT:     KeyMinus,
	evdev.BTN_MODE:       KeyHome,
	input.BTN_DPAD_LEFT:  KeyLeft,
	input.BTN_DPAD_RIGHT: KeyRight,
	input.BTN_DPAD_UP:    KeyUp,
	input.BTN_DPAD_DOWN:  KeyDown,
	evdev.BTN_TL:         KeyTL,
	evdev.BTN_TR:         KeyTR,
	evdev.BTN_TL2:        KeyZL,
	evdev.BTN_TR2:        KeyZR,
	evdev.BTN_THUMBL:     KeyThumbL,
	evdev.BTN_THUMBR:     KeyThumbR,
}

type proDecoder struct {
	cache [2]Vec2
}

func (d *proDecoder) accept(ts time.Time, t evdev.EvType, code evdev.EvCode, value int32) Event {
	switch t {
	case evdev.EV_KEY:
		return decodeKey(ts, ProController, proKeys, code, value)
	case evdev.EV_ABS:
		switch code {
		case evdev.ABS_X:
			d.cache[0].X = value
		case evdev.ABS_Y:
			d.cache[0].Y = value
		case evdev.ABS_RX:
			d.cache[1].X = value
		case evdev.ABS_RY:
			d.cache[1].Y = value
		}
	case evdev.EV_SYN:
		return &ProEvent{
			header: header{ts: ts, kind: ProController},
			Sticks: d.cache,
		}
	}
	return nil
}

var drumsKeys = map[evdev.EvCode]Key{
	evdev.BTN_START:  KeyPlus,
	evdev.BTN_SELECT: KeyMinus,
}

type drumsDecoder struct {
	cache DrumsEvent
}

func (d *drumsDecoder) accept(ts time.Time, t evdev.EvType, code evdev.EvCode, value int32) Event {
	switch t {
	case evdev.EV_KEY:
		return decodeKey(ts, Drums, drumsKeys, code, value)
	case evdev.EV_ABS:
		switch code {
		case evdev.ABS_X:
			d.cache.Pad.X = value
		case evdev.ABS_Y:
			d.cache.Pad.Y = value
		case input.ABS_CYMBAL_LEFT:
			d.cache.CymbalLeft = value
		case input.ABS_CYMBAL_RIGHT:
			d.cache.CymbalRight = value
		case input.ABS_TOM_LEFT:
			d.cache.TomLeft = value
		case input.ABS_TOM_RIGHT:
			d.cache.TomRight = value
		case input.ABS_TOM_FAR_RIGHT:
			d.cache.TomFarRight = value
		case input.ABS_BASS:
			d.cache.Bass = value
		case input.ABS_HI_HAT:
			d.cache.HiHat = value
		}
	case evdev.EV_SYN:
		ev := d.cache
		ev.header = header{ts: ts, kind: Drums}
		return &ev
	}
	return nil
}

var guitarKeys = map[evdev.EvCode]Key{
	input.BTN_FRET_FAR_UP:    KeyFretFarUp,
	input.BTN_FRET_UP:        KeyFretUp,
	input.BTN_FRET_MID:       KeyFretMid,
	input.BTN_FRET_LOW:       KeyFretLow,
	input.BTN_FRET_FAR_LOW:   KeyFretFarLow,
	input.BTN_STRUM_BAR_UP:   KeyStrumBarUp,
	input.BTN_STRUM_BAR_DOWN: KeyStrumBarDown,
	evdev.BTN_START:          KeyPlus,
	evdev.BTN_MODE:           KeyHome,
}

type guitarDecoder struct {
	cache GuitarEvent
}

func (d *guitarDecoder) accept(ts time.Time, t evdev.EvType, code evdev.EvCode, value int32) Event {
	switch t {
	case evdev.EV_KEY:
		return decodeKey(ts, Guitar, guitarKeys, code, value)
	case evdev.EV_ABS:
		switch code {
		case evdev.ABS_X:
			d.cache.Stick.X = value
		case evdev.ABS_Y:
			d.cache.Stick.Y = value
		case input.ABS_WHAMMY_BAR:
			d.cache.WhammyBar = value
		case input.ABS_FRET_BOARD:
			d.cache.FretBoard = value
		}
	case evdev.EV_SYN:
		ev := d.cache
		ev.header = header{ts: ts, kind: Guitar}
		return &ev
	}
	return nil
}
