package config

import (
	"fmt"
	"io"
	"os"
	path2 "path"

	"github.com/holoplot/go-evdev"
	"gopkg.in/yaml.v3"

	"github.com/openwiimote/wiigo/internal/pkg/input"
)

type YamlDeviceConfig struct {
	Identifier struct {
		Bus     uint16 `yaml:"bus"`
		Vendor  uint16 `yaml:"vendor"`
		Product uint16 `yaml:"product"`
		Version uint16 `yaml:"version"`
		Uniq    string `yaml:"uniq"`
	} `yaml:"identifier"`
	Leds        string                    `yaml:"leds"`
	Calibration map[string]YamlAxisConfig `yaml:"calibration"`
	Pointer     YamlPointerConfig         `yaml:"pointer"`
}

type YamlAxisConfig struct {
	Min  int32 `yaml:"min"`
	Max  int32 `yaml:"max"`
	Flat int32 `yaml:"flat"`
}

type YamlPointerConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Smoothing  float64 `yaml:"smoothing"`
	Glitch     float64 `yaml:"glitch"`
	KeepFrames int     `yaml:"keep_frames"`
	Viewport   struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
		W float64 `yaml:"w"`
		H float64 `yaml:"h"`
	} `yaml:"viewport"`
}

type DeviceConfig struct {
	ConfigFile string
	ConfigType string // factory or user
	ID         input.InputID
	Uniq       string
	Config     Config
}

// readDeviceConfig parses yaml file and provide ready to use DeviceConfig
func readDeviceConfig(path, configType string) (DeviceConfig, error) {
	cfg := YamlDeviceConfig{}
	fd, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return DeviceConfig{}, fmt.Errorf("opening config file failed: %w", err)
	}
	defer fd.Close()

	data, err := io.ReadAll(fd)
	if err != nil {
		return DeviceConfig{}, fmt.Errorf("reading file data failed: %w", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return DeviceConfig{}, fmt.Errorf("parsing yaml failed: %w", err)
	}

	leds := LedPolicy(cfg.Leds)
	if cfg.Leds == "" {
		leds = LedPlayer
	}
	if !SupportedLedPolicies[leds] {
		return DeviceConfig{}, fmt.Errorf("[leds] unsupported policy: %s", cfg.Leds)
	}

	var calibration = make(map[evdev.EvCode]Calibration)
	for axisRaw, axisCfg := range cfg.Calibration {
		evcode, ok := input.AbsFromString(axisRaw)
		if !ok {
			return DeviceConfig{}, fmt.Errorf("[calibration] unsupported EvCode: %s", axisRaw)
		}
		if axisCfg.Min >= axisCfg.Max {
			return DeviceConfig{}, fmt.Errorf("[calibration] %s: min is not below max (%d, %d)", axisRaw, axisCfg.Min, axisCfg.Max)
		}
		calibration[evcode] = Calibration(axisCfg)
	}

	pointer := Pointer{
		Enabled:    cfg.Pointer.Enabled,
		Smoothing:  cfg.Pointer.Smoothing,
		Glitch:     cfg.Pointer.Glitch,
		KeepFrames: cfg.Pointer.KeepFrames,
	}
	pointer.Viewport.X = cfg.Pointer.Viewport.X
	pointer.Viewport.Y = cfg.Pointer.Viewport.Y
	pointer.Viewport.W = cfg.Pointer.Viewport.W
	pointer.Viewport.H = cfg.Pointer.Viewport.H
	if pointer.Enabled && (pointer.Viewport.W <= 0 || pointer.Viewport.H <= 0) {
		return DeviceConfig{}, fmt.Errorf("[pointer] viewport has no area (%.f, %.f)", pointer.Viewport.W, pointer.Viewport.H)
	}

	devConfig := DeviceConfig{
		ConfigFile: path2.Base(path),
		ConfigType: configType,
		ID: input.InputID{
			Bus:     cfg.Identifier.Bus,
			Vendor:  cfg.Identifier.Vendor,
			Product: cfg.Identifier.Product,
			Version: cfg.Identifier.Version,
		},
		Uniq: cfg.Identifier.Uniq,
		Config: Config{
			Leds:        leds,
			Calibration: calibration,
			Pointer:     pointer,
		},
	}
	return devConfig, nil
}
