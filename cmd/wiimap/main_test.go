package main

import (
	"testing"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"

	"github.com/openwiimote/wiigo/internal/pkg/wiimote"
)

func TestButtonFromString(t *testing.T) {
	b, ok := buttonFromString("A")
	assert.True(t, ok)
	assert.Equal(t, wiimote.KeyA, b)

	b, ok = buttonFromString("FRET_FAR_LOW")
	assert.True(t, ok)
	assert.Equal(t, wiimote.KeyFretFarLow, b)

	_, ok = buttonFromString("BANANA")
	assert.False(t, ok)
}

func TestParseMappingOverrides(t *testing.T) {
	keymap, err := parseMapping("A=KEY_SPACE, HOME=KEY_LEFTMETA,B=", defaultMapping())
	assert.NoError(t, err)

	assert.Equal(t, evdev.EvCode(evdev.KEY_SPACE), keymap[wiimote.KeyA])
	assert.Equal(t, evdev.EvCode(evdev.KEY_LEFTMETA), keymap[wiimote.KeyHome])
	_, mapped := keymap[wiimote.KeyB]
	assert.False(t, mapped)
	// untouched entries stay
	assert.Equal(t, evdev.EvCode(evdev.KEY_LEFT), keymap[wiimote.KeyLeft])
}

func TestParseMappingFallbackCodes(t *testing.T) {
	// names only the controller tables know resolve too
	keymap, err := parseMapping("ONE=BTN_FRET_MID", defaultMapping())
	assert.NoError(t, err)
	assert.Equal(t, evdev.EvCode(0x226), keymap[wiimote.KeyOne])
}

func TestParseMappingRejectsBadInput(t *testing.T) {
	for name, spec := range map[string]string{
		"no separator":   "A KEY_SPACE",
		"unknown button": "BANANA=KEY_SPACE",
		"unknown key":    "A=KEY_BANANA",
	} {
		_, err := parseMapping(spec, defaultMapping())
		assert.Error(t, err, name)
	}
}

func TestTargetsDeduplicated(t *testing.T) {
	codes := targets(map[wiimote.Key]evdev.EvCode{
		wiimote.KeyA:  evdev.KEY_ENTER,
		wiimote.KeyB:  evdev.KEY_ENTER,
		wiimote.KeyUp: evdev.KEY_UP,
	})
	assert.Equal(t, []evdev.EvCode{evdev.KEY_ENTER, evdev.KEY_UP}, codes)
}
