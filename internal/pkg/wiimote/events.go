package wiimote

import (
	"fmt"
	"time"
)

// Key identifies a single button across all supported peripherals. A device
// may have a specific key (for instance HOME) on the main device and on an
// extension, the concrete event type tells them apart.
type Key uint

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyA
	KeyB
	KeyPlus
	KeyMinus
	KeyHome
	KeyOne
	KeyTwo
	KeyX
	KeyY
	KeyTL
	KeyTR
	KeyZL
	KeyZR

	// KeyThumbL is reported if the left analog stick is pressed. Not all
	// analog sticks support this, the pro controller is one of few devices
	// that report it.
	KeyThumbL
	// KeyThumbR, same as KeyThumbL for the right analog stick.
	KeyThumbR

	// KeyC and KeyZ are reported by the nunchuk extension only.
	KeyC
	KeyZ

	// Strum bar and fret keys, reported by guitar controllers.
	KeyStrumBarUp
	KeyStrumBarDown
	KeyFretFarUp
	KeyFretUp
	KeyFretMid
	KeyFretLow
	KeyFretFarLow
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "LEFT"
	case KeyRight:
		return "RIGHT"
	case KeyUp:
		return "UP"
	case KeyDown:
		return "DOWN"
	case KeyA:
		return "A"
	case KeyB:
		return "B"
	case KeyPlus:
		return "PLUS"
	case KeyMinus:
		return "MINUS"
	case KeyHome:
		return "HOME"
	case KeyOne:
		return "ONE"
	case KeyTwo:
		return "TWO"
	case KeyX:
		return "X"
	case KeyY:
		return "Y"
	case KeyTL:
		return "TL"
	case KeyTR:
		return "TR"
	case KeyZL:
		return "ZL"
	case KeyZR:
		return "ZR"
	case KeyThumbL:
		return "THUMBL"
	case KeyThumbR:
		return "THUMBR"
	case KeyC:
		return "C"
	case KeyZ:
		return "Z"
	case KeyStrumBarUp:
		return "STRUM_BAR_UP"
	case KeyStrumBarDown:
		return "STRUM_BAR_DOWN"
	case KeyFretFarUp:
		return "FRET_FAR_UP"
	case KeyFretUp:
		return "FRET_UP"
	case KeyFretMid:
		return "FRET_MID"
	case KeyFretLow:
		return "FRET_LOW"
	case KeyFretFarLow:
		return "FRET_FAR_LOW"
	default:
		return fmt.Sprintf("KEY_%d", uint(k))
	}
}

type KeyState uint

const (
	StateReleased KeyState = 0
	StatePressed  KeyState = 1
	StateRepeated KeyState = 2
)

func (s KeyState) String() string {
	switch s {
	case StatePressed:
		return "pressed"
	case StateRepeated:
		return "repeated"
	default:
		return "released"
	}
}

// Vec2 represents a 2D point or vector, may be interpreted otherwise
// depending on the event.
type Vec2 struct{ X, Y int32 }

// Vec3 represents a 3D point or vector, may be interpreted otherwise
// depending on the event.
type Vec3 struct{ X, Y, Z int32 }

// Event describes a single occurrence on a peripheral, consider using a
// type-switch to retrieve the specific event type and data.
type Event interface {
	// Timestamp returns the time of firing.
	Timestamp() time.Time
	// Source returns which peripheral unit fired the event.
	Source() Kind
}

type header struct {
	ts   time.Time
	kind Kind
}

func (h header) Timestamp() time.Time { return h.ts }
func (h header) Source() Kind         { return h.kind }

// KeyEvent is fired whenever a key is pressed, released or repeated, on the
// remote itself or on any of its extensions. Source tells which unit the key
// belongs to.
type KeyEvent struct {
	header
	Code  Key
	State KeyState
}

// AccelEvent provides accelerometer data. Note that the accelerometer
// reports acceleration data, not speed data.
type AccelEvent struct {
	header
	Accel Vec3
}

// IRSlot describes one source tracked by the IR camera.
type IRSlot Vec2

// Valid returns whether the slot currently tracks a source. Only if both
// fields read 1023 the slot is empty.
func (slot IRSlot) Valid() bool {
	return slot.X != 1023 || slot.Y != 1023
}

// IREvent provides IR-camera data. The camera can track up to four IR
// sources, as long as a single source is tracked it stays at its
// pre-allocated slot.
type IREvent struct {
	header
	Slots [4]IRSlot
}

// MotionPlusEvent provides gyroscope data, rotational speed, not
// acceleration, of the motion-plus extension.
type MotionPlusEvent struct {
	header
	Speed Vec3
}

// NunchukEvent provides analog stick position and accelerometer data of the
// nunchuk extension.
type NunchukEvent struct {
	header
	Stick Vec2
	Accel Vec3
}

// ClassicEvent provides analog movement of the classic controller. Many
// classic controllers do not have analog TL/TR triggers, in which case the
// shoulder values read 0 or the maximum (63). The digital TL/TR buttons are
// always reported as KeyEvents.
type ClassicEvent struct {
	header
	StickLeft     Vec2
	StickRight    Vec2
	ShoulderLeft  int32
	ShoulderRight int32
}

// BalanceBoardEvent provides weight data of the four sensors, one per edge
// of the board.
type BalanceBoardEvent struct {
	header
	Weights [4]int32
}

// ProEvent provides movement of both analog sticks of the pro controller.
type ProEvent struct {
	header
	Sticks [2]Vec2
}

// DrumsEvent provides pad movement and pressure data of drum controllers.
type DrumsEvent struct {
	header
	Pad         Vec2
	CymbalLeft  int32
	CymbalRight int32
	TomLeft     int32
	TomRight    int32
	TomFarRight int32
	Bass        int32
	HiHat       int32
}

// GuitarEvent provides movement data of guitar controllers: the analog
// stick, the whammy bar and the touch position on the fret board.
type GuitarEvent struct {
	header
	Stick     Vec2
	WhammyBar int32
	FretBoard int32
}

// HotplugEvent is sent whenever the available unit set of a device changed,
// an extension was plugged or unplugged. Applications should re-check which
// units are available. Non-hotplug aware applications may discard it.
type HotplugEvent struct {
	header
}

// GoneEvent is sent when the device disappeared, no further events follow.
type GoneEvent struct {
	header
}
