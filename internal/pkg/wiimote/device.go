package wiimote

import (
	"context"
	"fmt"
	"time"

	"github.com/holoplot/go-evdev"
	"github.com/openwiimote/wiigo/internal/pkg/input"
	"github.com/openwiimote/wiigo/internal/pkg/logger"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// Device wraps one logical remote (or standalone board/controller) and turns
// its raw evdev streams into typed events. The kernel driver splits a single
// remote into one input node per unit, Available reports which units the
// hardware currently exposes.
type Device struct {
	dev    input.Device
	opened Kind
}

func New(dev input.Device) *Device {
	return &Device{dev: dev}
}

// Available returns the units the device exposes right now. Extensions plug
// in and out at runtime, rescan after hotplug.
func (d *Device) Available() Kind {
	var kinds Kind
	for ht := range d.dev.Handlers {
		kinds |= kindByHandler[ht]
	}
	return kinds
}

// Opened returns the units of the running event session, zero when none is
// active.
func (d *Device) Opened() Kind {
	return d.opened
}

func (d *Device) ID() input.DeviceID {
	return d.dev.DeviceID()
}

func (d *Device) Name() string {
	return d.dev.Name
}

func (d *Device) Type() input.DeviceType {
	return d.dev.DeviceType
}

func (d *Device) String() string {
	return fmt.Sprintf("[%s], \"%s\" (%s)", d.dev.DeviceType, d.dev.Name, d.Available())
}

// eventTime converts the kernel timestamp of an input event.
func eventTime(ev evdev.InputEvent) time.Time {
	return time.Unix(int64(ev.Time.Sec), int64(ev.Time.Usec)*1000)
}

// Events opens the requested units and streams their typed events until the
// context is canceled. Requested kinds without a matching handler are
// silently skipped, asking for All on a bare remote is fine. The stream
// starts with a HotplugEvent per opened unit and ends with a GoneEvent,
// after which the channel is closed.
func (d *Device) Events(ctx context.Context, kinds Kind, grab bool, absThrottle time.Duration) (<-chan Event, error) {
	sub := d.dev
	sub.Handlers = make(map[input.HandlerType]input.DeviceInfo)
	sub.Evdevs = make(map[input.HandlerType]*evdev.InputDevice)

	var opened Kind
	for ht, h := range d.dev.Handlers {
		kind := kindByHandler[ht]
		if kind&kinds == 0 {
			continue
		}
		sub.Handlers[ht] = h
		opened |= kind
	}

	if opened == 0 {
		return nil, fmt.Errorf("no unit of %q matches requested kinds (%s)", d.dev.Name, kinds)
	}

	raw, err := sub.ProcessEvents(ctx, grab, absThrottle)
	if err != nil {
		return nil, fmt.Errorf("opening units failed: %w", err)
	}
	d.opened = opened

	decoders := make(map[input.HandlerType]decoder)
	for ht := range sub.Handlers {
		decoders[ht] = newDecoder(kindByHandler[ht])
	}

	events := make(chan Event)
	go func() {
		defer close(events)

		now := time.Now()
		for kind := Core; kind <= Guitar; kind <<= 1 {
			if opened&kind != 0 {
				events <- &HotplugEvent{header: header{ts: now, kind: kind}}
			}
		}

		for ev := range raw {
			dec, ok := decoders[ev.Source.HandlerType()]
			if !ok {
				continue
			}
			out := dec.accept(eventTime(ev.Event), ev.Event.Type, ev.Event.Code, ev.Event.Value)
			if out == nil {
				continue
			}
			events <- out
		}

		d.opened = 0
		log.Info("Device event stream finished", zap.String("device_name", d.dev.Name), logger.Debug)
		events <- &GoneEvent{header: header{ts: time.Now()}}
	}()

	return events, nil
}
