package input

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/openwiimote/wiigo/internal/pkg/logger"
)

func fetchDevices() []Device {
	infos, err := GetHandlers()
	if err != nil {
		log.Info(fmt.Sprintf("input handler scan failed: %v", err), logger.Warning)
		return nil
	}

	return Normalize(infos)
}

// watchInputNodes signals on the returned channel whenever /dev/input
// changes. Purely an optimization over the periodic rescan, a missing
// watcher is not an error.
func watchInputNodes(ctx context.Context) <-chan struct{} {
	var wake = make(chan struct{}, 1)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return wake
	}

	err = watcher.Add("/dev/input")
	if err != nil {
		watcher.Close()
		return wake
	}

	go func() {
		<-ctx.Done()
		watcher.Close()
	}()

	go func() {
		for range watcher.Events {
			select {
			case wake <- struct{}{}:
			default:
			}
		}
	}()

	return wake
}

// MonitorNewDevices scans the system for Wii peripherals and announces
// newly appeared ones on the returned channel. A freshly connected remote
// registers its event nodes one by one, so a device is announced only after
// its handler set stayed unchanged for the stabilization period.
func MonitorNewDevices(ctx context.Context, stabilization, rate time.Duration) <-chan Device {
	var devChan = make(chan Device)

	go func() {
		log.Info("Device monitor engaged", logger.Debug)

		var trackedDevs = make(map[PhysicalID]Device)
		var staged = make(map[PhysicalID]stagedDevice)

		wake := watchInputNodes(ctx)
		ticker := time.NewTicker(rate)
		defer ticker.Stop()

	root:
		for {
			current := fetchDevices()
			now := time.Now()

			var present = make(map[PhysicalID]bool, len(current))

			for _, d := range current {
				key := d.PhysicalUUID()
				present[key] = true

				if _, ok := trackedDevs[key]; ok {
					continue
				}

				prev, ok := staged[key]
				if !ok || len(prev.dev.Handlers) != len(d.Handlers) {
					staged[key] = stagedDevice{dev: d, since: now}
					continue
				}

				if now.Sub(prev.since) < stabilization {
					continue
				}

				delete(staged, key)
				trackedDevs[key] = d
				log.Info(fmt.Sprintf("New device: %s", d.String()), logger.Info)
				select {
				case devChan <- d:
				case <-ctx.Done():
					break root
				}
			}

			for key, d := range trackedDevs {
				if !present[key] {
					log.Info(fmt.Sprintf("Removed device: %s", d.String()), logger.Info)
					delete(trackedDevs, key)
				}
			}
			for key := range staged {
				if !present[key] {
					delete(staged, key)
				}
			}

			select {
			case <-ctx.Done():
				break root
			case <-ticker.C:
			case <-wake:
			}
		}
		log.Info("Device monitor disengaged", logger.Debug)
		close(devChan)
	}()

	return devChan
}

type stagedDevice struct {
	dev   Device
	since time.Time
}
