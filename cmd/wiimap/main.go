package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/holoplot/go-evdev"
	"go.uber.org/zap"

	"github.com/openwiimote/wiigo/internal/pkg/input"
	"github.com/openwiimote/wiigo/internal/pkg/logger"
	"github.com/openwiimote/wiigo/internal/pkg/uinput"
	"github.com/openwiimote/wiigo/internal/pkg/wiimote"
)

var log = logger.GetLogger()

var (
	mapping = flag.String("map", "",
		"mapping overrides as BUTTON=KEY_NAME pairs separated by commas,\n"+
			"for instance \"A=KEY_SPACE,HOME=KEY_LEFTMETA\", an empty KEY_NAME\n"+
			"unmaps the button")
	grab    = flag.Bool("grab", false, "grab input devices for exclusive usage")
	verbose = flag.Bool("verbose", false, "print debug entries too")
)

// defaultMapping turns a bare remote into cursor keys plus enter and escape,
// enough to drive a media center menu.
func defaultMapping() map[wiimote.Key]evdev.EvCode {
	return map[wiimote.Key]evdev.EvCode{
		wiimote.KeyLeft:  evdev.KEY_LEFT,
		wiimote.KeyRight: evdev.KEY_RIGHT,
		wiimote.KeyUp:    evdev.KEY_UP,
		wiimote.KeyDown:  evdev.KEY_DOWN,
		wiimote.KeyA:     evdev.KEY_ENTER,
		wiimote.KeyB:     evdev.KEY_ESC,
		wiimote.KeyPlus:  evdev.KEY_VOLUMEUP,
		wiimote.KeyMinus: evdev.KEY_VOLUMEDOWN,
		wiimote.KeyHome:  evdev.KEY_HOMEPAGE,
	}
}

// buttonFromString resolves a button by the name its events log under.
func buttonFromString(name string) (wiimote.Key, bool) {
	for k := wiimote.KeyLeft; k <= wiimote.KeyFretFarLow; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// parseMapping applies BUTTON=KEY_NAME override pairs on top of base.
func parseMapping(spec string, base map[wiimote.Key]evdev.EvCode) (map[wiimote.Key]evdev.EvCode, error) {
	if spec == "" {
		return base, nil
	}
	for _, pair := range strings.Split(spec, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed mapping entry %q", pair)
		}
		button, ok := buttonFromString(strings.TrimSpace(parts[0]))
		if !ok {
			return nil, fmt.Errorf("unknown button %q", parts[0])
		}
		target := strings.TrimSpace(parts[1])
		if target == "" {
			delete(base, button)
			continue
		}
		code, ok := input.KeyFromString(target)
		if !ok {
			return nil, fmt.Errorf("unknown key %q", target)
		}
		base[button] = code
	}
	return base, nil
}

// targets returns the key codes the virtual keyboard has to register.
func targets(keymap map[wiimote.Key]evdev.EvCode) []evdev.EvCode {
	var codes []evdev.EvCode
	seen := make(map[evdev.EvCode]bool)
	for _, code := range keymap {
		if seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// mapButtons forwards mapped button events of one remote to the virtual
// keyboard until its stream ends. Repeats are skipped, readers of the
// virtual device apply their own repeat.
func mapButtons(dev *wiimote.Device, keymap map[wiimote.Key]evdev.EvCode, events <-chan wiimote.Event) {
	kb, err := uinput.Create(fmt.Sprintf("wiimap keys (%s)", dev.ID()), targets(keymap), nil)
	if err != nil {
		log.Info(fmt.Sprintf("virtual keyboard unavailable: %v", err), logger.Error)
		os.Exit(1)
	}
	defer kb.Close()

	log.Info("Mapping buttons", zap.String("device_name", dev.Name()), logger.Info)

	for ev := range events {
		e, ok := ev.(*wiimote.KeyEvent)
		if !ok {
			continue
		}
		if e.State == wiimote.StateRepeated {
			continue
		}
		code, ok := keymap[e.Code]
		if !ok {
			continue
		}
		if err := kb.Key(code, e.State == wiimote.StatePressed); err != nil {
			log.Info(fmt.Sprintf("forwarding key failed: %v", err), logger.Warning)
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

	keymap, err := parseMapping(*mapping, defaultMapping())
	if err != nil {
		fmt.Printf("bad -map value: %v\n", err)
		os.Exit(2)
	}

	var sigs = make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-sigs
		cancel()
	}()

	log.Info("Waiting for a remote...", logger.Info)

	for d := range input.MonitorNewDevices(ctx, time.Second*2, time.Millisecond*250) {
		wdev := wiimote.New(d)
		events, err := wdev.Events(ctx, wiimote.All, *grab, time.Second/60)
		if err != nil {
			log.Info(fmt.Sprintf("opening device failed: %v", err), zap.String("device_name", d.Name), logger.Warning)
			continue
		}

		mapButtons(wdev, keymap, events)
		log.Info("Device gone, waiting for the next one...", zap.String("device_name", d.Name), logger.Info)
	}
}
