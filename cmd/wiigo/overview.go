package main

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/awesome-gocui/gocui"
	"github.com/logrusorgru/aurora"

	"github.com/openwiimote/wiigo/internal/pkg/display"
	"github.com/openwiimote/wiigo/internal/pkg/logger"
	"github.com/openwiimote/wiigo/internal/pkg/wiimote"
)

type DevicePtrs []*wiimote.Device

func (d DevicePtrs) Len() int {
	return len(d)
}

func (d DevicePtrs) Less(i, j int) bool {
	return d[i].ID() < d[j].ID()
}

func (d DevicePtrs) Swap(i, j int) {
	d[i], d[j] = d[j], d[i]
}

func overviewView(g *gocui.Gui, colors bool, devices map[*wiimote.Device]*wiimote.Device, devicesMutex *sync.Mutex) {
	view, err := g.View(ViewOverview)
	if err != nil {
		panic(err)
	}

	au := aurora.NewAurora(colors)

	for {
		var viewData []string

		var ptrs DevicePtrs

		devicesMutex.Lock()
		for _, d := range devices {
			ptrs = append(ptrs, d)
		}
		devicesMutex.Unlock()

		sort.Sort(ptrs)

		x, y := view.Size()

		for _, d := range ptrs {
			dname := d.Name()
			dtype := d.Type().String()
			typeSep := 14 - len(dtype)
			if typeSep < 0 {
				typeSep = 0
			}

			header := fmt.Sprintf(
				"%s: %s",
				strings.Repeat(" ", typeSep)+colorForString(au, dtype).String(),
				colorForString(au, dname).String(),
			)

			headerFreeSpace := x - rawStringLen(header)
			if headerFreeSpace < 0 {
				headerFreeSpace = 0
			}

			battery := "n/a"
			if level, err := d.Battery(); err == nil {
				battery = fmt.Sprintf("%d%%", level)
			}

			description := fmt.Sprintf(
				"└ units: %s, battery: %s",
				colorForString(au, d.Available().String()).String(),
				battery,
			)
			descriptionFreeSpace := x - rawStringLen(description)
			if descriptionFreeSpace < 0 {
				descriptionFreeSpace = 0
			}

			viewData = append(viewData, fmt.Sprintf("%s%s", header, strings.Repeat(" ", headerFreeSpace)))
			viewData = append(viewData, fmt.Sprintf("%s%s", description, strings.Repeat(" ", descriptionFreeSpace)))
		}

		view.Rewind()
		for i := 0; i < y; i++ {
			if i > len(viewData)-1 {
				data := strings.Repeat(" ", x)
				view.Write([]byte(data))
				view.Write([]byte{'\n'})
				continue
			}

			view.Write([]byte(viewData[i]))
			view.Write([]byte{'\n'})
		}
		time.Sleep(time.Millisecond * 500)
	}
}

func logView(g *gocui.Gui, color bool, logLevel, bufSize int) {
	feeder, err := NewFeeder(g, ViewLogs, logLevel, aurora.NewAurora(color))
	if err != nil {
		panic(err)
	}

	buf := newLogBuffer(bufSize)

	var closed bool
	var newMessage = make(chan bool, 1)
	var sizeChange = make(chan bool, 1)

	go func() {
		var lastX, lastY int
		for {
			if closed {
				close(sizeChange)
				return
			}
			x, y := feeder.view.Size()
			if x != lastX || y != lastY {
				sizeChange <- true
				lastX = x
				lastY = y
			}
			time.Sleep(time.Millisecond * 100)
		}
	}()

	go func() {
		for msg := range logger.Messages {
			buf.WriteMessage(msg)
			select {
			case newMessage <- true:
			case <-time.After(time.Millisecond * 1):
				continue
			}
		}
		close(newMessage)
		closed = true
	}()

	for {
		select {
		case <-sizeChange:
		case <-newMessage:
		}
		if closed {
			break
		}
		feeder.view.Rewind()
		_, y := feeder.view.Size()
		lastMessages := buf.ReadLastMessages(y)
		for _, msg := range lastMessages {
			feeder.Write(msg)
		}
	}
}

func lcdView(g *gocui.Gui, dd <-chan display.DisplayData) {
	view, err := g.View(ViewLCD)
	if err != nil {
		panic(err)
	}

	for data := range dd {
		view.Rewind()
		for _, s := range data.Lines {
			view.Write([]byte(s))
			view.Write([]byte{'\n'})
		}
	}
}
