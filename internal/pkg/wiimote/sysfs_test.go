package wiimote

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwiimote/wiigo/internal/pkg/input"
)

// fakeSysfs builds the attribute layout the hid driver exposes and returns a
// device whose core handler points at it.
func fakeSysfs(t *testing.T) (*Device, string) {
	t.Helper()
	root := t.TempDir()
	hid := filepath.Join(root, "device", "device")

	battery := filepath.Join(hid, "power_supply", "wiimote_battery_aa:bb:cc:dd:ee:ff")
	require.NoError(t, os.MkdirAll(battery, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(battery, "capacity"), []byte("85\n"), 0o644))

	for i := 0; i < 4; i++ {
		led := filepath.Join(hid, "leds", "0005:057E:0306.0001:blue:p"+string(rune('0'+i)))
		require.NoError(t, os.MkdirAll(led, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(led, "brightness"), []byte("0\n"), 0o644))
	}

	dev := New(input.Device{
		Name: "Nintendo Wii Remote",
		Handlers: map[input.HandlerType]input.DeviceInfo{
			input.DI_TYPE_CORE: {Name: "Nintendo Wii Remote", Sysfs: root},
		},
	})
	return dev, hid
}

func TestBattery(t *testing.T) {
	dev, _ := fakeSysfs(t)

	level, err := dev.Battery()
	assert.NoError(t, err)
	assert.Equal(t, 85, level)
}

func TestBatteryMissing(t *testing.T) {
	dev := New(input.Device{
		Handlers: map[input.HandlerType]input.DeviceInfo{
			input.DI_TYPE_CORE: {Sysfs: t.TempDir()},
		},
	})

	_, err := dev.Battery()
	assert.Error(t, err)
}

func TestLedsRoundTrip(t *testing.T) {
	dev, hid := fakeSysfs(t)

	mask, err := dev.Leds()
	assert.NoError(t, err)
	assert.Equal(t, uint8(0), mask)

	assert.NoError(t, dev.SetLeds(0b1010))

	mask, err = dev.Leds()
	assert.NoError(t, err)
	assert.Equal(t, uint8(0b1010), mask)

	raw, err := os.ReadFile(filepath.Join(hid, "leds", "0005:057E:0306.0001:blue:p1", "brightness"))
	assert.NoError(t, err)
	assert.Equal(t, "1", string(raw))
}

func TestSetPlayerPatterns(t *testing.T) {
	dev, _ := fakeSysfs(t)

	for player, mask := range map[int]uint8{
		0: 0b0000,
		1: 0b0001,
		2: 0b0010,
		4: 0b1000,
		5: 0b1001,
		7: 0b1100,
		9: 0b1111,
	} {
		assert.NoError(t, dev.SetPlayer(player))
		got, err := dev.Leds()
		assert.NoError(t, err)
		assert.Equal(t, mask, got, "player %d", player)
	}
}
