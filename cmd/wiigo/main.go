package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/awesome-gocui/gocui"
	"github.com/logrusorgru/aurora"

	"github.com/openwiimote/wiigo/internal/pkg/display"
	"github.com/openwiimote/wiigo/internal/pkg/logger"
	"github.com/openwiimote/wiigo/internal/pkg/wiimote"
)

var log = logger.GetLogger()

var inputEventsProcessed uint // counter for display info

func FanOut[T any](input <-chan T) (<-chan T, <-chan T) {
	size := cap(input)
	if size == 0 {
		// at least size of 1 to prevent output channels from blocking each
		// other, also to keep running just one goroutine
		size = 1
	}
	var output1 = make(chan T, size)
	var output2 = make(chan T, size)

	go func() {
		for v := range input {
			output1 <- v
			output2 <- v
		}
		close(output1)
		close(output2)
	}()
	return output1, output2
}

func handleSigs(wg *sync.WaitGroup, sigs <-chan os.Signal, cancel func(), server *http.Server, g *gocui.Gui) {
	defer wg.Done()
	var counter int
	for sig := range sigs {
		if counter > 0 {
			fmt.Println("Dirty exit")
			os.Exit(1)
		}
		log.Info(fmt.Sprintf("signal received: %v", sig), logger.Debug)
		cancel()
		if server != nil {
			err := server.Close()
			if err != nil {
				log.Info(fmt.Sprintf("failed to close server: %v", err), logger.Warning)
			}
		}
		if g != nil {
			g.Close()
		}
		counter++
	}
}

func runUI(cfg WiigoConfig, ui bool, sigs chan os.Signal) *gocui.Gui {
	var g *gocui.Gui
	if ui {
		var err error
		g, err = GetCli()
		if err != nil {
			panic(err)
		}

		go func() {
			if err := g.MainLoop(); err != nil {
				if err != gocui.ErrQuit {
					panic(err)
				}
				g.Close()
				sigs <- syscall.SIGINT // pretend that we received signal when exited from gui
			}
			g.Close()
		}()

		go func() {
			for {
				g.Update(Layout)
				time.Sleep(cfg.Wiigo.LogViewRate)
			}
		}()

		time.Sleep(time.Millisecond * 500) // waiting for view init
	}
	return g
}

func runProfileServer(wg *sync.WaitGroup) *http.Server {
	var server *http.Server
	if *profile {
		addr := "0.0.0.0:8080"
		log.Info(fmt.Sprintf("profiling enabled and hosted on %s", addr), logger.Info)
		server = &http.Server{Addr: addr, Handler: nil}
		wg.Add(1)
		go func() {
			log.Info(fmt.Sprintf("profiling server exited: %v", server.ListenAndServe()), logger.Info)
			wg.Done()
		}()
	}
	return server
}

var (
	profile  = flag.Bool("profile", false, "runs web server for performance profiling (go tool pprof)")
	grab     = flag.Bool("grab", false, "grab input devices for exclusive usage")
	ui       = flag.Bool("ui", false, "engage debug ui")
	force256 = flag.Bool("256", false, "force 256 color mode")
	nocolor  = flag.Bool("nocolor", false, "disable color")
	logLevel = flag.Int("loglevel", 2,
		"logging level, each level enables additional information class (0-5, default: 2)\n"+
			"more verbose levels may slightly impact overall performance\n"+
			"\navailable options:\n"+
			"0: general info (eg. device appearance status)\n"+
			"1: warnings\n"+
			"2: device and unit lifecycle\n"+
			"3: key events (buttons, frets, drum pads)\n"+
			"4: analog events (sticks, accelerometer, pressure axes)\n"+
			"5: internal debug information",
	)
	silent = flag.Bool("silent", false, "no output logging, best performance")
)

func main() {
	flag.Parse()
	if *logLevel >= 5 {
		*logLevel = logger.DebugLvl
	}
	if *force256 == true {
		os.Setenv("TERM", "xterm-256color")
	}
	createConfigDirectoryIfNeeded()

	var cfg = LoadWiigoConfig("./wiigo-config/wiigo.config")
	log.Info(fmt.Sprintf("wiigo config: %+v", cfg), logger.Debug)

	var sigs = make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())

	g := runUI(cfg, *ui && !*silent, sigs)

	// this wait-group has to be propagated everywhere where usual logging appear
	wg := sync.WaitGroup{}

	server := runProfileServer(&wg)

	wg.Add(1)
	go handleSigs(&wg, sigs, cancel, server, g)

	var devices = make(map[*wiimote.Device]*wiimote.Device, 4)
	var devicesMutex = sync.Mutex{}

	wg.Add(1)
	dd := GenerateDisplayData(ctx, &wg, cfg.Screen, devices, &devicesMutex, &inputEventsProcessed)
	dd1, dd2 := FanOut(dd)

	if cfg.Screen.Enabled {
		wg.Add(1)
		go display.HandleDisplay(&wg, cfg.Screen, dd1)
	} else {
		go func() {
			for range dd1 {
			}
		}()
	}

	if *ui && !*silent {
		go logView(g, !*nocolor, *logLevel, cfg.Wiigo.LogBufferSize)
		go overviewView(g, !*nocolor, devices, &devicesMutex)
		go lcdView(g, dd2)
	} else {
		go func() {
			for range dd2 {
			}
		}()
		go func() {
			if *silent {
				for range logger.Messages {
				}
			} else {
				fmt.Printf("for nicer output use -ui flag\n")
				au := aurora.NewAurora(!*nocolor)
				for data := range logger.Messages {
					msg, err := unpack(data)
					if err != nil {
						fmt.Printf("%s\n", string(data))
						continue
					}
					m := prepareString(msg, au, -1, *logLevel)
					if m != "" {
						fmt.Printf("%s\n", m)
					}
				}
			}
		}()
	}

	runManager(ctx, cfg, *grab, devices, &devicesMutex)

	log.Info(fmt.Sprintf("waiting..."), logger.Debug)
	close(sigs)

	// closing logger can be safely invoked only when all internally running
	// goroutines (that may emit logs) are done
	wg.Wait()
	close(logger.Messages)

	fmt.Printf("%d input events processed, bye\n", inputEventsProcessed)
}
