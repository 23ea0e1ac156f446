package config

import (
	"github.com/holoplot/go-evdev"

	"github.com/openwiimote/wiigo/internal/pkg/logger"
)

var log = logger.GetLogger()

// LedPolicy selects what the four player LEDs of a device display.
type LedPolicy string

const (
	// LedPlayer lights the LED pattern of the assigned player number.
	LedPlayer LedPolicy = "player"
	// LedBattery lights one to four LEDs following the charge level.
	LedBattery LedPolicy = "battery"
	// LedOff turns all LEDs off.
	LedOff LedPolicy = "off"
)

var SupportedLedPolicies = map[LedPolicy]bool{
	LedPlayer:  true,
	LedBattery: true,
	LedOff:     true,
}

// Calibration overrides the raw range of one axis. Flat widens the center
// deadzone.
type Calibration struct {
	Min  int32
	Max  int32
	Flat int32
}

// Pointer holds the IR pointer parameters of a device.
type Pointer struct {
	Enabled bool
	// Smoothing is the radius in camera units below which movement is
	// averaged away.
	Smoothing float64
	// Glitch is the distance in camera units above which a single-frame
	// jump is rejected.
	Glitch float64
	// KeepFrames is how many invalid frames the last good position is held
	// over.
	KeepFrames int
	// Viewport maps camera space onto the output rectangle.
	Viewport struct {
		X, Y, W, H float64
	}
}

// Config is the runtime device profile assembled from one yaml file.
type Config struct {
	Leds        LedPolicy
	Calibration map[evdev.EvCode]Calibration
	Pointer     Pointer
}
