package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/holoplot/go-evdev"
	"go.uber.org/zap"

	"github.com/openwiimote/wiigo/internal/pkg/input"
	"github.com/openwiimote/wiigo/internal/pkg/logger"
	"github.com/openwiimote/wiigo/internal/pkg/pointer"
	"github.com/openwiimote/wiigo/internal/pkg/wiimote"
)

var log = logger.GetLogger()

var (
	width      = flag.Int("width", 1920, "virtual pointer area width")
	height     = flag.Int("height", 1080, "virtual pointer area height")
	smoothing  = flag.Float64("smoothing", 4.0, "movement smoothing radius in camera units")
	glitch     = flag.Float64("glitch", 250.0, "single-frame jump rejection distance in camera units")
	keepFrames = flag.Int("keep", 8, "how many dropped camera frames the last position is held over")
	grab       = flag.Bool("grab", false, "grab input devices for exclusive usage")
	verbose    = flag.Bool("verbose", false, "print debug entries too")
)

// point runs the pointer pipeline of one remote until its stream ends.
func point(dev *wiimote.Device, events <-chan wiimote.Event) {
	viewport := pointer.NewFRect(0, 0, float64(*width), float64(*height))
	tracker := pointer.NewTracker(pointer.Chain{
		pointer.NewErrorFilter(*keepFrames),
		pointer.NewGlitchFilter(*glitch),
		pointer.NewSmoothingFilter(*smoothing),
		pointer.NewTranslateFilter(pointer.CameraSpace, viewport),
	})

	vp, err := pointer.NewVirtualPointer(fmt.Sprintf("wiigo pointer (%s)", dev.ID()), viewport)
	if err != nil {
		log.Info(fmt.Sprintf("virtual pointer unavailable: %v", err), logger.Error)
		os.Exit(1)
	}
	defer vp.Close()

	log.Info("Pointing, wave at the sensor bar", zap.String("device_name", dev.Name()), logger.Info)

	for ev := range events {
		switch e := ev.(type) {
		case *wiimote.IREvent:
			if err := vp.Move(tracker.Track(e)); err != nil {
				log.Info(fmt.Sprintf("moving virtual pointer failed: %v", err), logger.Warning)
			}
		case *wiimote.KeyEvent:
			switch e.Code {
			case wiimote.KeyA:
				_ = vp.Button(evdev.BTN_LEFT, e.State != wiimote.StateReleased)
			case wiimote.KeyB:
				_ = vp.Button(evdev.BTN_RIGHT, e.State != wiimote.StateReleased)
			}
		}
	}
}

func printLogs() {
	type entry struct {
		Msg   string `json:"msg"`
		Level int    `json:"level"`
	}

	for data := range logger.Messages {
		var e entry
		if err := json.Unmarshal(data, &e); err != nil {
			fmt.Println(string(data))
			continue
		}
		if e.Level == logger.DebugLvl && !*verbose {
			continue
		}
		fmt.Println(e.Msg)
	}
}

func main() {
	flag.Parse()

	go printLogs()

	var sigs = make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-sigs
		cancel()
	}()

	log.Info("Waiting for a remote with an IR camera...", logger.Info)

	for d := range input.MonitorNewDevices(ctx, time.Second*2, time.Millisecond*250) {
		if !d.Has(input.DI_TYPE_IR) {
			log.Info("device has no IR camera, skipping", zap.String("device_name", d.Name), logger.Info)
			continue
		}

		wdev := wiimote.New(d)
		events, err := wdev.Events(ctx, wiimote.Core|wiimote.IR, *grab, time.Second/60)
		if err != nil {
			log.Info(fmt.Sprintf("opening device failed: %v", err), zap.String("device_name", d.Name), logger.Warning)
			continue
		}

		point(wdev, events)
		log.Info("Device gone, waiting for the next one...", zap.String("device_name", d.Name), logger.Info)
	}
}
