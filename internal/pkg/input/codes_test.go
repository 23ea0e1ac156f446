package input

import (
	"testing"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
)

func TestControllerKeyCodeValues(t *testing.T) {
	expected := map[string]evdev.EvCode{
		"BTN_EAST":           0x131,
		"BTN_SOUTH":          0x130,
		"BTN_NORTH":          0x133,
		"BTN_WEST":           0x134,
		"BTN_DPAD_LEFT":      0x222,
		"BTN_DPAD_RIGHT":     0x223,
		"BTN_DPAD_UP":        0x220,
		"BTN_DPAD_DOWN":      0x221,
		"BTN_FRET_FAR_UP":    0x224,
		"BTN_FRET_UP":        0x225,
		"BTN_FRET_MID":       0x226,
		"BTN_FRET_LOW":       0x227,
		"BTN_FRET_FAR_LOW":   0x228,
		"BTN_STRUM_BAR_UP":   0x229,
		"BTN_STRUM_BAR_DOWN": 0x22a,
	}

	actual := map[string]evdev.EvCode{
		"BTN_EAST":           BTN_EAST,
		"BTN_SOUTH":          BTN_SOUTH,
		"BTN_NORTH":          BTN_NORTH,
		"BTN_WEST":           BTN_WEST,
		"BTN_DPAD_LEFT":      BTN_DPAD_LEFT,
		"BTN_DPAD_RIGHT":     BTN_DPAD_RIGHT,
		"BTN_DPAD_UP":        BTN_DPAD_UP,
		"BTN_DPAD_DOWN":      BTN_DPAD_DOWN,
		"BTN_FRET_FAR_UP":    BTN_FRET_FAR_UP,
		"BTN_FRET_UP":        BTN_FRET_UP,
		"BTN_FRET_MID":       BTN_FRET_MID,
		"BTN_FRET_LOW":       BTN_FRET_LOW,
		"BTN_FRET_FAR_LOW":   BTN_FRET_FAR_LOW,
		"BTN_STRUM_BAR_UP":   BTN_STRUM_BAR_UP,
		"BTN_STRUM_BAR_DOWN": BTN_STRUM_BAR_DOWN,
	}

	assert.Equal(t, expected, actual)
}

func TestControllerAbsCodeValues(t *testing.T) {
	expected := map[string]evdev.EvCode{
		"ABS_CYMBAL_LEFT":   0x45,
		"ABS_CYMBAL_RIGHT":  0x46,
		"ABS_TOM_LEFT":      0x41,
		"ABS_TOM_RIGHT":     0x42,
		"ABS_TOM_FAR_RIGHT": 0x43,
		"ABS_BASS":          0x48,
		"ABS_HI_HAT":        0x49,
		"ABS_WHAMMY_BAR":    0x4b,
		"ABS_FRET_BOARD":    0x4a,
	}

	actual := map[string]evdev.EvCode{
		"ABS_CYMBAL_LEFT":   ABS_CYMBAL_LEFT,
		"ABS_CYMBAL_RIGHT":  ABS_CYMBAL_RIGHT,
		"ABS_TOM_LEFT":      ABS_TOM_LEFT,
		"ABS_TOM_RIGHT":     ABS_TOM_RIGHT,
		"ABS_TOM_FAR_RIGHT": ABS_TOM_FAR_RIGHT,
		"ABS_BASS":          ABS_BASS,
		"ABS_HI_HAT":        ABS_HI_HAT,
		"ABS_WHAMMY_BAR":    ABS_WHAMMY_BAR,
		"ABS_FRET_BOARD":    ABS_FRET_BOARD,
	}

	assert.Equal(t, expected, actual)
}

// pad codes must resolve through the system table, not get redefined here
func TestPadCodesMatchEvdev(t *testing.T) {
	assert.Equal(t, evdev.BTN_EAST, BTN_EAST)
	assert.Equal(t, evdev.BTN_SOUTH, BTN_SOUTH)
	assert.Equal(t, evdev.BTN_NORTH, BTN_NORTH)
	assert.Equal(t, evdev.BTN_WEST, BTN_WEST)
	assert.Equal(t, evdev.BTN_DPAD_LEFT, BTN_DPAD_LEFT)
	assert.Equal(t, evdev.BTN_DPAD_RIGHT, BTN_DPAD_RIGHT)
	assert.Equal(t, evdev.BTN_DPAD_UP, BTN_DPAD_UP)
	assert.Equal(t, evdev.BTN_DPAD_DOWN, BTN_DPAD_DOWN)
}

func TestKeyNameResolution(t *testing.T) {
	assert.Equal(t, "BTN_FRET_MID", KeyName(BTN_FRET_MID))
	assert.Equal(t, "BTN_STRUM_BAR_DOWN", KeyName(BTN_STRUM_BAR_DOWN))
	assert.Equal(t, evdev.CodeName(evdev.EV_KEY, evdev.BTN_SOUTH), KeyName(BTN_SOUTH))
	assert.Equal(t, "unknown", KeyName(0x2f8))
}

func TestAbsNameResolution(t *testing.T) {
	assert.Equal(t, "ABS_HI_HAT", AbsName(ABS_HI_HAT))
	assert.Equal(t, "ABS_WHAMMY_BAR", AbsName(ABS_WHAMMY_BAR))
	assert.Equal(t, evdev.CodeName(evdev.EV_ABS, evdev.ABS_X), AbsName(evdev.ABS_X))
	assert.Equal(t, "unknown", AbsName(0x3f))
}

// The fallback codes are exactly the ones go-evdev itself cannot resolve,
// names for them must come out of the controller tables, not "unknown".
func TestFallbackNamesReachable(t *testing.T) {
	for code, name := range controllerKeyNames {
		assert.Equal(t, name, KeyName(code))
	}
	for code, name := range controllerAbsNames {
		assert.Equal(t, name, AbsName(code))
	}
}

func TestControllerNamesUnambiguous(t *testing.T) {
	seen := map[string]evdev.EvCode{}
	for code, name := range controllerKeyNames {
		prev, ok := seen[name]
		assert.False(t, ok, "key name %q maps to both 0x%x and 0x%x", name, prev, code)
		seen[name] = code
	}
	seen = map[string]evdev.EvCode{}
	for code, name := range controllerAbsNames {
		prev, ok := seen[name]
		assert.False(t, ok, "abs name %q maps to both 0x%x and 0x%x", name, prev, code)
		seen[name] = code
	}
}
