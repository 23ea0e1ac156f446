package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/openwiimote/wiigo/internal/pkg/display"
	"github.com/openwiimote/wiigo/internal/pkg/wiimote"
)

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
var heart, randomChar = '❤', '░'

func GenerateDisplayData(
	ctx context.Context, wg *sync.WaitGroup, cfg display.ScreenConfig,
	devices map[*wiimote.Device]*wiimote.Device, devicesMutex *sync.Mutex,
	eventCounter *uint,
) <-chan display.DisplayData {
	data := make(chan display.DisplayData)

	go func() {
		defer wg.Done()
		defer close(data)

		lastEventsProcessed := *eventCounter

		var graph [20]uint

		var graphPointer int
		var min, x uint = 0, 1
		var counterMax = min - x
		var lastProcessingDuration time.Duration

		var buffer [4]string

	root:
		for {
			start := time.Now()

			var unitCount int

			devicesMutex.Lock()
			var devCount = len(devices)

			for _, dev := range devices {
				for kind := wiimote.Core; kind <= wiimote.Guitar; kind <<= 1 {
					if dev.Available()&kind != 0 {
						unitCount++
					}
				}
			}
			devicesMutex.Unlock()

			var eventsPerSecond uint

			if lastEventsProcessed > *eventCounter {
				eventsPerSecond = (counterMax - lastEventsProcessed) + *eventCounter // handling counter overflow
			} else {
				eventsPerSecond = *eventCounter - lastEventsProcessed
			}
			lastEventsProcessed = *eventCounter

			graph[graphPointer] = eventsPerSecond
			if graphPointer < 19 {
				graphPointer++
			} else {
				graphPointer = 0
			}

			buffer[0] = fmt.Sprintf("devices: %11d", devCount)
			buffer[1] = fmt.Sprintf("units: %13d", unitCount)
			buffer[2] = fmt.Sprintf("events: %12d", eventsPerSecond)

			var maxGraph uint
			for _, graphVal := range graph {
				if graphVal > maxGraph {
					maxGraph = graphVal
				}
			}
			if maxGraph < 8 {
				maxGraph = 8
			}

			buffer[3] = ""
			for i := 0; i < 20; i++ {
				index := (graphPointer + i) % 20
				graphVal := graph[index]
				if graphVal == 0 {
					buffer[3] += " "
					continue
				}
				realVal := float64(graphVal) / (float64(maxGraph) + 1) * 7
				buffer[3] += string(blocks[int(realVal)])
			}
			lastProcessingDuration = time.Now().Sub(start)

			data <- display.DisplayData{
				Lines:   buffer,
				LastMsg: false,
			}

			select {
			case <-ctx.Done():
				break root
			case <-time.After((time.Duration(cfg.UpdateRate) * time.Second) - lastProcessingDuration):
				break
			}
		}

		if !cfg.HaveExitMessage() {
			buffer[0] = "                    "
			buffer[1] = " thanks for playing "
			buffer[2] = fmt.Sprintf("   %s with wiigo %s  ", string(randomChar), string(heart))
			buffer[3] = "                    "
		} else {
			for i, msg := range cfg.ExitMessage {
				buffer[i] = fmt.Sprintf("%-20.20s", msg)
			}
		}

		data <- display.DisplayData{
			Lines:   buffer,
			LastMsg: true,
		}
	}()

	return data
}
