// Package display drives an optional HD44780 character panel over i2c. The
// daemon pushes full-screen refreshes through it: connected peripherals,
// event rate bars and a goodbye message on shutdown.
package display

import (
	"sync"

	device "github.com/d2r2/go-hd44780"
	"github.com/d2r2/go-i2c"
	hdlog "github.com/d2r2/go-logger"

	"github.com/openwiimote/wiigo/internal/pkg/logger"
)

var log = logger.GetLogger()

// DisplayData is one full panel refresh. LastMsg marks the final frame so
// the bar-graph character slots can be swapped for the goodbye glyphs.
type DisplayData struct {
	Lines   [4]string
	LastMsg bool
}

type panel struct {
	lcd *device.Lcd
	bus *i2c.I2C
}

func openPanel(cfg ScreenConfig) (*panel, error) {
	hdlog.ChangePackageLogLevel("i2c", hdlog.InfoLevel)

	bus, err := i2c.NewI2C(cfg.Address, cfg.Bus)
	if err != nil {
		return nil, err
	}

	lcd, err := device.NewLcd(bus, cfg.LcdType)
	if err != nil {
		bus.Close()
		return nil, err
	}

	return &panel{lcd: lcd, bus: bus}, nil
}

// loadChars programs the CGRAM slots, the controller has room for eight
// custom glyphs.
func (p *panel) loadChars(chars [][]byte) {
	for i, char := range chars {
		slot := uint8(i) & 0x7
		p.lcd.Command(device.CMD_CGRAM_Set | (slot << 3))
		p.lcd.Write(char)
	}
}

func (p *panel) render(lines [4]string) {
	for i, s := range lines {
		p.lcd.SetPosition(i, 0)
		p.lcd.Write(encode(s))
	}
}

// glyphs maps the runes the daemon's frame generator emits to CGRAM slots.
// The bar levels occupy all eight slots during normal operation, the
// goodbye glyphs reuse the first two after the swap.
var glyphs = map[rune]byte{
	'▁': 0,
	'▂': 1,
	'▃': 2,
	'▄': 3,
	'▅': 4,
	'▆': 5,
	'▇': 6,
	'█': 7,
	'❤': 0,
	'░': 1,
}

func encode(s string) []byte {
	var out []byte
	for _, r := range s {
		if b, ok := glyphs[r]; ok {
			out = append(out, b)
			continue
		}
		out = append(out, []byte(string(r))...)
	}
	return out
}

var barChars = [][]byte{
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x1F}, // "▁"
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x1F, 0x1F}, // "▂"
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x1F, 0x1F, 0x1F}, // "▃"
	{0x00, 0x00, 0x00, 0x00, 0x1F, 0x1F, 0x1F, 0x1F}, // "▄"
	{0x00, 0x00, 0x00, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F}, // "▅"
	{0x00, 0x00, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F}, // "▆"
	{0x00, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F}, // "▇"
	{0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F}, // "█"
}

var goodbyeChars = [][]byte{
	{0x00, 0x00, 0x0A, 0x1F, 0x1F, 0x0E, 0x04, 0x00}, // "❤"
	{0x06, 0x0C, 0x1B, 0x13, 0x10, 0x00, 0x00, 0x00}, // "░"
}

// HandleDisplay consumes refresh frames until the channel closes. A missing
// or unreachable panel is not an error, the daemon just runs without it.
func HandleDisplay(wg *sync.WaitGroup, cfg ScreenConfig, dd <-chan DisplayData) {
	defer wg.Done()

	p, err := openPanel(cfg)
	if err != nil {
		log.Info("display unavailable, running without it", logger.Debug)
		for range dd {
		}
		return
	}

	p.loadChars(barChars)
	p.lcd.BacklightOn()
	p.lcd.Clear()

	for data := range dd {
		if data.LastMsg {
			p.loadChars(goodbyeChars)
			p.lcd.Clear()
		}
		p.render(data.Lines)
	}

	p.bus.Close()
	log.Info("display closed", logger.Debug)
}
