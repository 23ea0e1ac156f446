package main

import (
	"context"
	"fmt"
	"time"

	"github.com/holoplot/go-evdev"
	"go.uber.org/zap"

	"github.com/openwiimote/wiigo/internal/pkg/input"
	"github.com/openwiimote/wiigo/internal/pkg/logger"
	"github.com/openwiimote/wiigo/internal/pkg/pointer"
	"github.com/openwiimote/wiigo/internal/pkg/wiimote"
	"github.com/openwiimote/wiigo/internal/pkg/wiimote/config"
)

func applyLeds(dev *wiimote.Device, policy config.LedPolicy, player int) {
	var err error
	switch policy {
	case config.LedOff:
		err = dev.SetLeds(0)
	case config.LedBattery:
		var level int
		level, err = dev.Battery()
		if err != nil {
			break
		}
		switch {
		case level > 75:
			err = dev.SetLeds(0b1111)
		case level > 50:
			err = dev.SetLeds(0b0111)
		case level > 25:
			err = dev.SetLeds(0b0011)
		default:
			err = dev.SetLeds(0b0001)
		}
	default:
		err = dev.SetPlayer(player)
	}
	if err != nil {
		log.Info(fmt.Sprintf("setting leds failed: %v", err), zap.String("device_name", dev.Name()), logger.Debug)
	}
}

// calibrate normalizes a raw axis value into 0.0-1.0 using the profile
// override of that axis.
func calibrate(c config.Calibration, v int32) float64 {
	if v < c.Min+c.Flat {
		return 0
	}
	if v > c.Max {
		return 1
	}
	span := c.Max - c.Min - c.Flat
	if span <= 0 {
		return 1
	}
	return float64(v-c.Min-c.Flat) / float64(span)
}

// spawnPointer builds the IR pointer pipeline of a session. Returns nils
// when the device cannot point or the profile keeps the feature off.
func spawnPointer(dev *wiimote.Device, conf config.Pointer) (*pointer.Tracker, *pointer.VirtualPointer) {
	if !conf.Enabled || dev.Available()&wiimote.IR == 0 {
		return nil, nil
	}

	viewport := pointer.NewFRect(conf.Viewport.X, conf.Viewport.Y, conf.Viewport.W, conf.Viewport.H)
	tracker := pointer.NewTracker(pointer.Chain{
		pointer.NewErrorFilter(conf.KeepFrames),
		pointer.NewGlitchFilter(conf.Glitch),
		pointer.NewSmoothingFilter(conf.Smoothing),
		pointer.NewTranslateFilter(pointer.CameraSpace, viewport),
	})

	vp, err := pointer.NewVirtualPointer(fmt.Sprintf("wiigo pointer (%s)", dev.ID()), viewport)
	if err != nil {
		log.Info(fmt.Sprintf("virtual pointer unavailable: %v", err), zap.String("device_name", dev.Name()), logger.Warning)
		return nil, nil
	}
	log.Info("Virtual pointer created", zap.String("device_name", dev.Name()), logger.Info)
	return tracker, vp
}

// runSession consumes the event stream of one device until it ends.
func runSession(
	ctx context.Context, dev *wiimote.Device, conf config.Config,
	player int, batteryRate time.Duration, events <-chan wiimote.Event,
) {
	applyLeds(dev, conf.Leds, player)

	if err := dev.Rumble(time.Millisecond * 300); err != nil {
		log.Info(fmt.Sprintf("connection rumble failed: %v", err), zap.String("device_name", dev.Name()), logger.Debug)
	}

	tracker, vp := spawnPointer(dev, conf.Pointer)
	if vp != nil {
		defer func() {
			if err := vp.Close(); err != nil {
				log.Info(fmt.Sprintf("closing virtual pointer failed: %v", err), zap.String("device_name", dev.Name()), logger.Warning)
			}
		}()
	}

	batteryTicker := time.NewTicker(batteryRate)
	defer batteryTicker.Stop()

	name := zap.String("device_name", dev.Name())

	for {
		select {
		case <-batteryTicker.C:
			if conf.Leds == config.LedBattery {
				applyLeds(dev, conf.Leds, player)
			}
			continue
		case ev, ok := <-events:
			if !ok {
				return
			}
			inputEventsProcessed++

			switch e := ev.(type) {
			case *wiimote.KeyEvent:
				log.Info(fmt.Sprintf("%s %s", e.Code, e.State), name, zap.String("unit", e.Source().String()), logger.Keys)
				if vp != nil && e.Source() == wiimote.Core {
					switch e.Code {
					case wiimote.KeyA:
						_ = vp.Button(evdev.BTN_LEFT, e.State != wiimote.StateReleased)
					case wiimote.KeyB:
						_ = vp.Button(evdev.BTN_RIGHT, e.State != wiimote.StateReleased)
					}
				}
			case *wiimote.IREvent:
				if tracker != nil {
					frame := tracker.Track(e)
					if err := vp.Move(frame); err != nil {
						log.Info(fmt.Sprintf("moving virtual pointer failed: %v", err), name, logger.Warning)
					}
				}
				log.Info(fmt.Sprintf("ir: %v", e.Slots), name, logger.Analog)
			case *wiimote.GuitarEvent:
				logGuitar(e, conf, name)
			case *wiimote.DrumsEvent:
				logDrums(e, conf, name)
			case *wiimote.AccelEvent:
				log.Info(fmt.Sprintf("accel: %v", e.Accel), name, logger.Analog)
			case *wiimote.MotionPlusEvent:
				log.Info(fmt.Sprintf("motion plus: %v", e.Speed), name, logger.Analog)
			case *wiimote.NunchukEvent:
				log.Info(fmt.Sprintf("nunchuk: stick %v accel %v", e.Stick, e.Accel), name, logger.Analog)
			case *wiimote.ClassicEvent:
				log.Info(fmt.Sprintf("classic: sticks %v %v shoulders %d %d",
					e.StickLeft, e.StickRight, e.ShoulderLeft, e.ShoulderRight), name, logger.Analog)
			case *wiimote.BalanceBoardEvent:
				log.Info(fmt.Sprintf("balance board: %v", e.Weights), name, logger.Analog)
			case *wiimote.ProEvent:
				log.Info(fmt.Sprintf("pro: sticks %v %v", e.Sticks[0], e.Sticks[1]), name, logger.Analog)
			case *wiimote.HotplugEvent:
				log.Info(fmt.Sprintf("unit connected: %s", e.Source()), name, logger.Info)
			case *wiimote.GoneEvent:
				log.Info("device gone", name, logger.Debug)
			}
		case <-ctx.Done():
			// the stream drains itself, wait for close
			for range events {
			}
			return
		}
	}
}

func logGuitar(e *wiimote.GuitarEvent, conf config.Config, name zap.Field) {
	whammy := fmt.Sprintf("%d", e.WhammyBar)
	if c, ok := conf.Calibration[input.ABS_WHAMMY_BAR]; ok {
		whammy = fmt.Sprintf("%3.f%%", calibrate(c, e.WhammyBar)*100)
	}
	board := fmt.Sprintf("%d", e.FretBoard)
	if c, ok := conf.Calibration[input.ABS_FRET_BOARD]; ok {
		board = fmt.Sprintf("%3.f%%", calibrate(c, e.FretBoard)*100)
	}
	log.Info(fmt.Sprintf("guitar: stick %v whammy %s board %s", e.Stick, whammy, board), name, logger.Analog)
}

func logDrums(e *wiimote.DrumsEvent, conf config.Config, name zap.Field) {
	pads := []struct {
		code  evdev.EvCode
		label string
		value int32
	}{
		{input.ABS_CYMBAL_LEFT, "cymbal_l", e.CymbalLeft},
		{input.ABS_CYMBAL_RIGHT, "cymbal_r", e.CymbalRight},
		{input.ABS_TOM_LEFT, "tom_l", e.TomLeft},
		{input.ABS_TOM_RIGHT, "tom_r", e.TomRight},
		{input.ABS_TOM_FAR_RIGHT, "tom_fr", e.TomFarRight},
		{input.ABS_BASS, "bass", e.Bass},
		{input.ABS_HI_HAT, "hi_hat", e.HiHat},
	}

	s := fmt.Sprintf("drums: pad %v", e.Pad)
	for _, p := range pads {
		if c, ok := conf.Calibration[p.code]; ok {
			s += fmt.Sprintf(" %s %3.f%%", p.label, calibrate(c, p.value)*100)
			continue
		}
		s += fmt.Sprintf(" %s %d", p.label, p.value)
	}
	log.Info(s, name, logger.Analog)
}
