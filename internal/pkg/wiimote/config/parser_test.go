package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwiimote/wiigo/internal/pkg/input"
)

func writeProfile(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestReadDeviceConfig(t *testing.T) {
	path := writeProfile(t, `
identifier:
  bus: 0x0005
  vendor: 0x057e
  product: 0x0306
  version: 0x0600
  uniq: "aa:bb:cc:dd:ee:ff"

leds: battery

calibration:
  ABS_WHAMMY_BAR: {min: 0, max: 63, flat: 2}
  ABS_X: {min: -100, max: 100, flat: 10}

pointer:
  enabled: true
  smoothing: 4.0
  glitch: 300.0
  keep_frames: 8
  viewport: {x: 0, y: 0, w: 1920, h: 1080}
`)

	cfg, err := readDeviceConfig(path, "user")
	require.NoError(t, err)

	assert.Equal(t, "profile.yaml", cfg.ConfigFile)
	assert.Equal(t, "user", cfg.ConfigType)
	assert.Equal(t, input.InputID{Bus: 0x0005, Vendor: 0x057e, Product: 0x0306, Version: 0x0600}, cfg.ID)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", cfg.Uniq)

	assert.Equal(t, LedBattery, cfg.Config.Leds)
	assert.Equal(t, Calibration{Min: 0, Max: 63, Flat: 2}, cfg.Config.Calibration[input.ABS_WHAMMY_BAR])
	assert.Len(t, cfg.Config.Calibration, 2)

	assert.True(t, cfg.Config.Pointer.Enabled)
	assert.Equal(t, 8, cfg.Config.Pointer.KeepFrames)
	assert.Equal(t, 1920.0, cfg.Config.Pointer.Viewport.W)
}

func TestReadDeviceConfigDefaults(t *testing.T) {
	cfg, err := readDeviceConfig(writeProfile(t, `identifier: {}`), "factory")
	require.NoError(t, err)

	assert.Equal(t, LedPlayer, cfg.Config.Leds)
	assert.False(t, cfg.Config.Pointer.Enabled)
}

func TestReadDeviceConfigRejectsBadInput(t *testing.T) {
	for name, data := range map[string]string{
		"unknown led policy": `leds: disco`,
		"unknown axis":       "calibration:\n  ABS_NOPE: {min: 0, max: 1}",
		"inverted range":     "calibration:\n  ABS_X: {min: 10, max: 5}",
		"empty viewport":     "pointer:\n  enabled: true",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := readDeviceConfig(writeProfile(t, data), "user")
			assert.Error(t, err)
		})
	}
}

func TestFindConfigResolutionOrder(t *testing.T) {
	id := input.InputID{Bus: 5, Vendor: 0x057e, Product: 0x0306, Version: 6}
	other := input.InputID{Bus: 3, Vendor: 1, Product: 2, Version: 3}

	configs := DeviceConfigs{
		Factory: ConfigMap{
			input.InputID{}: {ConfigFile: "default.yaml"},
			id:              {ConfigFile: "factory.yaml"},
		},
		User: ConfigMap{
			id: {ConfigFile: "user.yaml"},
		},
	}

	cfg, err := configs.FindConfig(id)
	assert.NoError(t, err)
	assert.Equal(t, "user.yaml", cfg.ConfigFile)

	delete(configs.User, id)
	cfg, err = configs.FindConfig(id)
	assert.NoError(t, err)
	assert.Equal(t, "factory.yaml", cfg.ConfigFile)

	cfg, err = configs.FindConfig(other)
	assert.NoError(t, err)
	assert.Equal(t, "default.yaml", cfg.ConfigFile)

	empty := DeviceConfigs{Factory: ConfigMap{}, User: ConfigMap{}}
	_, err = empty.FindConfig(other)
	assert.Error(t, err)
}
