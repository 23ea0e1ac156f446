package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/openwiimote/wiigo/internal/pkg/input"
	"github.com/openwiimote/wiigo/internal/pkg/logger"
	"github.com/openwiimote/wiigo/internal/pkg/wiimote"
	"github.com/openwiimote/wiigo/internal/pkg/wiimote/config"
)

// playerSlots hands out the four player numbers the LEDs can show.
type playerSlots struct {
	mu    sync.Mutex
	taken [4]bool
}

func (p *playerSlots) acquire() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, t := range p.taken {
		if !t {
			p.taken[i] = true
			return i + 1
		}
	}
	return 0
}

func (p *playerSlots) release(n int) {
	if n < 1 || n > 4 {
		return
	}
	p.mu.Lock()
	p.taken[n-1] = false
	p.mu.Unlock()
}

// runManager is the main program process, before exiting from that function
// it needs to ensure that all goroutine execution has completed
func runManager(
	ctx context.Context, cfg WiigoConfig, grab bool,
	devices map[*wiimote.Device]*wiimote.Device, devicesMutex *sync.Mutex,
) {
	deviceConfigChange := config.DetectDeviceConfigChanges(ctx)

	wg := sync.WaitGroup{}
	var players playerSlots

	log.Info("Run manager", logger.Debug)
root:
	for {
		select {
		case <-ctx.Done():
			break root
		default:
			break
		}

		configs, err := config.LoadDeviceConfigs()
		if err != nil {
			log.Info(fmt.Sprintf("Device configs load failed: %s", err), logger.Error)
			os.Exit(1)
		}

		ctxDevice, cancel := context.WithCancel(context.Background())

		wg.Add(1)
		go func() {
			defer wg.Done()
			select {
			case <-deviceConfigChange:
				log.Info("handling config change", logger.Debug)
				cancel()
			case <-ctx.Done():
				cancel()
			}
		}()

	device:
		for d := range input.MonitorNewDevices(ctxDevice, cfg.Wiigo.StabilizationPeriod, cfg.Wiigo.DiscoveryRate) {
			log.Info("Loading config for device...", zap.String("device_name", d.Name), logger.Debug)
			conf, err := configs.FindConfig(d.ID)
			if err != nil {
				log.Info(fmt.Sprintf("failed to load config for device: %v", err), zap.String("device_name", d.Name), logger.Warning)
				continue
			}
			log.Info(fmt.Sprintf("config loaded: %s", conf.ConfigFile), logger.Debug)

			wdev := wiimote.New(d)

			var events <-chan wiimote.Event

			appearedAt := time.Now()

			log.Info("Opening device...", zap.String("device_name", d.Name), logger.Debug)
			for {
				events, err = wdev.Events(ctxDevice, wiimote.All, grab, cfg.Wiigo.EVThrottling)
				if err != nil {
					if time.Now().Sub(appearedAt) > time.Second*5 {
						log.Info("failed to open device on time, giving up", zap.String("device_name", d.Name), logger.Warning)
						continue device
					}
					time.Sleep(time.Millisecond * 100)
					continue
				}
				break
			}

			wg.Add(1)
			go func(wdev *wiimote.Device, conf config.DeviceConfig) {
				defer wg.Done()
				devicesMutex.Lock()
				devices[wdev] = wdev
				devicesMutex.Unlock()

				log.Info("Device connected", zap.String("device_name", wdev.Name()),
					zap.String("config", fmt.Sprintf("%s (%s)", conf.ConfigFile, conf.ConfigType)),
					zap.String("device_type", wdev.Type().String()),
					logger.Info,
				)

				player := players.acquire()
				runSession(ctxDevice, wdev, conf.Config, player, cfg.Wiigo.BatteryRate, events)
				players.release(player)

				log.Info("Device disconnected", zap.String("device_name", wdev.Name()), logger.Info)
				devicesMutex.Lock()
				delete(devices, wdev)
				devicesMutex.Unlock()
			}(wdev, conf)
		}
	}
	wg.Wait()
	log.Info("Exit manager", logger.Debug)
}
