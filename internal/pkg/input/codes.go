package input

import (
	"github.com/holoplot/go-evdev"
)

// Event codes emitted by Wii peripheral kernel drivers for game-controller
// hardware (drum kits, guitars). Codes that input-event-codes.h guarantees
// are taken from go-evdev unchanged; the remaining ones were never part of
// the mainline header set, so their values are spelled out here.

const (

	// Action pad.

	BTN_EAST  = evdev.BTN_EAST  // 0x131
	BTN_SOUTH = evdev.BTN_SOUTH // 0x130
	BTN_NORTH = evdev.BTN_NORTH // 0x133
	BTN_WEST  = evdev.BTN_WEST  // 0x134

	BTN_DPAD_LEFT  = evdev.BTN_DPAD_LEFT  // 0x222
	BTN_DPAD_RIGHT = evdev.BTN_DPAD_RIGHT // 0x223
	BTN_DPAD_UP    = evdev.BTN_DPAD_UP    // 0x220
	BTN_DPAD_DOWN  = evdev.BTN_DPAD_DOWN  // 0x221

	// Drum kit pressure axes.

	ABS_CYMBAL_LEFT   = evdev.EvCode(0x45)
	ABS_CYMBAL_RIGHT  = evdev.EvCode(0x46)
	ABS_TOM_LEFT      = evdev.EvCode(0x41)
	ABS_TOM_RIGHT     = evdev.EvCode(0x42)
	ABS_TOM_FAR_RIGHT = evdev.EvCode(0x43)
	ABS_BASS          = evdev.EvCode(0x48)
	ABS_HI_HAT        = evdev.EvCode(0x49)

	// Guitar frets and strum bar.

	BTN_FRET_FAR_UP  = evdev.EvCode(0x224)
	BTN_FRET_UP      = evdev.EvCode(0x225)
	BTN_FRET_MID     = evdev.EvCode(0x226)
	BTN_FRET_LOW     = evdev.EvCode(0x227)
	BTN_FRET_FAR_LOW = evdev.EvCode(0x228)

	BTN_STRUM_BAR_UP   = evdev.EvCode(0x229)
	BTN_STRUM_BAR_DOWN = evdev.EvCode(0x22a)

	// Guitar analog axes.

	ABS_WHAMMY_BAR = evdev.EvCode(0x4b)
	ABS_FRET_BOARD = evdev.EvCode(0x4a)
)

// controllerKeyNames covers key codes the generic evdev tables don't know
// about. Codes present in both resolve through evdev first, so names stay
// consistent with everything else in the system.
var controllerKeyNames = map[evdev.EvCode]string{
	BTN_FRET_FAR_UP:    "BTN_FRET_FAR_UP",
	BTN_FRET_UP:        "BTN_FRET_UP",
	BTN_FRET_MID:       "BTN_FRET_MID",
	BTN_FRET_LOW:       "BTN_FRET_LOW",
	BTN_FRET_FAR_LOW:   "BTN_FRET_FAR_LOW",
	BTN_STRUM_BAR_UP:   "BTN_STRUM_BAR_UP",
	BTN_STRUM_BAR_DOWN: "BTN_STRUM_BAR_DOWN",
}

var controllerAbsNames = map[evdev.EvCode]string{
	ABS_CYMBAL_LEFT:   "ABS_CYMBAL_LEFT",
	ABS_CYMBAL_RIGHT:  "ABS_CYMBAL_RIGHT",
	ABS_TOM_LEFT:      "ABS_TOM_LEFT",
	ABS_TOM_RIGHT:     "ABS_TOM_RIGHT",
	ABS_TOM_FAR_RIGHT: "ABS_TOM_FAR_RIGHT",
	ABS_BASS:          "ABS_BASS",
	ABS_HI_HAT:        "ABS_HI_HAT",
	ABS_WHAMMY_BAR:    "ABS_WHAMMY_BAR",
	ABS_FRET_BOARD:    "ABS_FRET_BOARD",
}

// unknownName is what go-evdev reports for codes missing from its tables.
const unknownName = "unknown"

// KeyName resolves a EV_KEY code to its symbolic name, preferring the
// system-wide evdev table over the controller fallback table.
func KeyName(code evdev.EvCode) string {
	name := evdev.CodeName(evdev.EV_KEY, code)
	if name != unknownName {
		return name
	}
	if name, ok := controllerKeyNames[code]; ok {
		return name
	}
	return unknownName
}

// AbsName resolves a EV_ABS code to its symbolic name, preferring the
// system-wide evdev table over the controller fallback table.
func AbsName(code evdev.EvCode) string {
	name := evdev.CodeName(evdev.EV_ABS, code)
	if name != unknownName {
		return name
	}
	if name, ok := controllerAbsNames[code]; ok {
		return name
	}
	return unknownName
}

// KeyFromString resolves a symbolic EV_KEY name back to its code, covering
// both the evdev table and the controller fallback table.
func KeyFromString(name string) (evdev.EvCode, bool) {
	if code, ok := evdev.KEYFromString[name]; ok {
		return code, true
	}
	for code, n := range controllerKeyNames {
		if n == name {
			return code, true
		}
	}
	return 0, false
}

// AbsFromString resolves a symbolic EV_ABS name back to its code, covering
// both the evdev table and the controller fallback table.
func AbsFromString(name string) (evdev.EvCode, bool) {
	if code, ok := evdev.ABSFromString[name]; ok {
		return code, true
	}
	for code, n := range controllerAbsNames {
		if n == name {
			return code, true
		}
	}
	return 0, false
}
