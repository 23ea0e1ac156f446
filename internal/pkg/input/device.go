package input

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/holoplot/go-evdev"
	"github.com/openwiimote/wiigo/internal/pkg/logger"
	"go.uber.org/zap"
)

// Collects all separate device-info handlers together for building one logical device

var log = logger.GetLogger()

type DeviceType int
type DeviceID string

// Generic device types
const (
	UnknownDevice      DeviceType = iota
	WiimoteDevice                 // remote with any set of extensions
	BalanceBoardDevice            // standalone balance board
	ProDevice                     // standalone Wii U pro controller
)

func (e DeviceType) String() string {
	switch e {
	case WiimoteDevice:
		return "Wiimote"
	case BalanceBoardDevice:
		return "Balance Board"
	case ProDevice:
		return "Pro Controller"
	default:
		return "Unknown"
	}
}

type InputEvent struct {
	Source DeviceInfo
	Event  evdev.InputEvent
}

func containsOnly(in map[HandlerType]DeviceInfo, handlerTypes ...HandlerType) bool {
	if len(in) != len(handlerTypes) {
		return false
	}

	for _, ht := range handlerTypes {
		_, ok := in[ht]
		if !ok {
			return false
		}
	}

	return true
}

func contains(in map[HandlerType]DeviceInfo, handlerTypes ...HandlerType) bool {
	for _, ht := range handlerTypes {
		_, ok := in[ht]
		if !ok {
			return false
		}
	}
	return true
}

func DetermineDeviceType(handlers map[HandlerType]DeviceInfo) DeviceType {
	switch {
	case contains(handlers, DI_TYPE_CORE):
		return WiimoteDevice
	case containsOnly(handlers, DI_TYPE_BALANCE_BOARD):
		return BalanceBoardDevice
	case containsOnly(handlers, DI_TYPE_PRO):
		return ProDevice
	default:
		return UnknownDevice
	}
}

// Normalize processes all DeviceInfo list and returns logical devices with
// their underlying DeviceInfo handlers
func Normalize(deviceInfos []DeviceInfo) []Device {
	var collection = make(map[PhysicalID][]DeviceInfo)

	for _, di := range deviceInfos {
		key := di.PhysicalUUID()
		collection[key] = append(collection[key], di)
	}

	var devices = make([]Device, 0)

	for devPhys, dis := range collection {
		var dev = Device{
			ID:       dis[0].ID,
			Handlers: make(map[HandlerType]DeviceInfo),
			Evdevs:   make(map[HandlerType]*evdev.InputDevice),
		}

		var name = ""
		var uniq = ""

		for _, di := range dis {
			switch {
			case name == "":
				name = di.Name
			case len(di.Name) < len(name):
				// the shortest name is the device itself, longer ones
				// describe its sub-units
				name = di.Name
			}

			if di.Uniq != "" && uniq == "" {
				uniq = di.Uniq
			}

			dev.Handlers[di.HandlerType()] = di
		}

		dev.DeviceType = DetermineDeviceType(dev.Handlers)
		dev.Name = name
		dev.Uniq = uniq
		dev.Phys = string(devPhys)
		devices = append(devices, dev)
	}

	return devices
}

// Device is a representation of a singular hardware device, it keeps all
// underlying DeviceInfo handlers
type Device struct {
	ID   InputID
	Name string
	Uniq string
	// Phys is a common part of Handlers Phys
	Phys string

	DeviceType DeviceType
	Handlers   map[HandlerType]DeviceInfo

	Evdevs map[HandlerType]*evdev.InputDevice
}

func (d *Device) String() string {
	return fmt.Sprintf(
		"[%s], \"%s\", %d handlers (0x%04x, 0x%04x, 0x%04x, 0x%04x, \"%s\")",
		d.DeviceType, d.Name, len(d.Handlers), d.ID.Bus, d.ID.Vendor, d.ID.Product, d.ID.Version, d.Uniq,
	)
}

// DeviceID returns an identifier unique for every device as much as possible,
// regardless of its connection source. Remotes report their bluetooth address
// as uniq which makes them distinguishable, the remaining fields cover
// devices that don't.
func (d *Device) DeviceID() DeviceID {
	s := fmt.Sprintf("%04x%04x%04x%04x%s", d.ID.Bus, d.ID.Vendor, d.ID.Product, d.ID.Version, d.Uniq)
	return DeviceID(s)
}

func (d *Device) PhysicalUUID() PhysicalID {
	return PhysicalID(d.Phys)
}

// Has tells if the device exposes a handler of the given type.
func (d *Device) Has(ht HandlerType) bool {
	_, ok := d.Handlers[ht]
	return ok
}

// ProcessEvents opens all handlers of the device and reads their events into
// one channel. EV_ABS events are throttled to one per absThrottle per code,
// the last withheld value is flushed after the period passes so the final
// state is never lost. The channel is closed after all handlers are done,
// cancel the context to stop reading.
func (d *Device) ProcessEvents(ctx context.Context, grab bool, absThrottle time.Duration) (<-chan InputEvent, error) {
	var events = make(chan InputEvent)

	wg := sync.WaitGroup{}
	for ht, h := range d.Handlers {
		dev, err := evdev.Open(h.EventPath())
		if err != nil {
			return nil, fmt.Errorf("opening handler failed: %w", err)
		}

		d.Evdevs[ht] = dev

		go func(dev *evdev.InputDevice) {
			<-ctx.Done()
			err := dev.Close()
			if err != nil {
				log.Info(fmt.Sprintf("device close failed: %v", err), logger.Debug)
			}
		}(dev)

		// the throttle keeps sending into events after its input closes,
		// events must not close under it
		absEvents := make(chan InputEvent, 64)
		wg.Add(1)
		go func() {
			defer wg.Done()
			throttleAbs(absEvents, events, absThrottle)
		}()

		wg.Add(1)
		go func(dev *evdev.InputDevice, info DeviceInfo, absEvents chan InputEvent) {
			event := info.Event()
			name, _ := dev.Name()
			name = strings.Trim(name, "\x00")
			defer wg.Done()
			defer close(absEvents)

			if grab {
				_ = dev.Grab()
				log.Info("Grabbing device for exclusive usage", zap.String("handler_event", event), zap.String("handler_name", name), logger.Debug)
			}
			log.Info("Reading input events", zap.String("handler_event", event), zap.String("handler_name", name), logger.Debug)

			err := dev.NonBlock()
			if err != nil {
				log.Info(fmt.Sprintf("enabling non-blocking event reading mode failed: %v", err),
					zap.String("handler_event", event), zap.String("handler_name", name),
					logger.Warning,
				)
			}
			for {
				event, err := dev.ReadOne()
				if err != nil {
					break
				}

				outputEvent := InputEvent{
					Source: info,
					Event:  *event,
				}

				if event.Type == evdev.EV_ABS {
					absEvents <- outputEvent
					continue
				}
				events <- outputEvent
			}
			if grab {
				log.Info("Ungrabbing device", zap.String("handler_event", event), zap.String("handler_name", name), logger.Debug)
				_ = dev.Ungrab()
			}
			log.Info("Reading input events finished", zap.String("handler_event", event), zap.String("handler_name", name), logger.Debug)
		}(dev, h, absEvents)
	}

	go func() {
		wg.Wait()
		log.Info("All handlers done, closing events channel", logger.Debug)
		close(events)
	}()

	return events, nil
}

// throttleAbs forwards axis events at a limited rate. The first event for a
// code passes immediately, following ones within the window only update the
// pending value which is flushed when the window expires.
func throttleAbs(in <-chan InputEvent, out chan<- InputEvent, window time.Duration) {
	if window <= 0 {
		for ev := range in {
			out <- ev
		}
		return
	}

	var lastSent = make(map[evdev.EvCode]time.Time)
	var pending = make(map[evdev.EvCode]InputEvent)

	ticker := time.NewTicker(window)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-in:
			if !ok {
				for _, p := range pending {
					out <- p
				}
				return
			}
			now := time.Now()
			if now.Sub(lastSent[ev.Event.Code]) >= window {
				out <- ev
				lastSent[ev.Event.Code] = now
				delete(pending, ev.Event.Code)
				continue
			}
			pending[ev.Event.Code] = ev
		case <-ticker.C:
			now := time.Now()
			for code, p := range pending {
				if now.Sub(lastSent[code]) < window {
					continue
				}
				out <- p
				lastSent[code] = now
				delete(pending, code)
			}
		}
	}
}
