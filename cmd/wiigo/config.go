package main

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/d2r2/go-hd44780"
	"github.com/go-ini/ini"

	"github.com/openwiimote/wiigo/internal/pkg/display"
	"github.com/openwiimote/wiigo/internal/pkg/logger"
)

type Wiigo struct {
	EVThrottling        time.Duration
	LogViewRate         time.Duration
	LogBufferSize       int
	DiscoveryRate       time.Duration
	StabilizationPeriod time.Duration
	BatteryRate         time.Duration
}

type WiigoConfig struct {
	Wiigo  Wiigo
	Screen display.ScreenConfig
}

func LoadWiigoConfig(path string) WiigoConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	cfg, err := ini.Load(data)
	if err != nil {
		panic(err)
	}

	var c WiigoConfig

	// [wiigo]
	wiigo, _ := cfg.GetSection("wiigo")
	evThrottling, _ := wiigo.GetKey("pool_rate")
	i, err := evThrottling.Int()
	if err != nil {
		panic(err)
	}
	c.Wiigo.EVThrottling = time.Second / time.Duration(i)

	discoveryRate, _ := wiigo.GetKey("discovery_rate")
	i, err = discoveryRate.Int()
	if err != nil {
		panic(err)
	}
	c.Wiigo.DiscoveryRate = time.Second / time.Duration(i)

	stabilizationPeriod, _ := wiigo.GetKey("stabilization_period")
	i, err = stabilizationPeriod.Int()
	if err != nil {
		panic(err)
	}
	c.Wiigo.StabilizationPeriod = time.Millisecond * time.Duration(i)

	logViewRate, _ := wiigo.GetKey("log_view_rate")
	i, err = logViewRate.Int()
	if err != nil {
		panic(err)
	}
	c.Wiigo.LogViewRate = time.Second / time.Duration(i)

	logBufferSize, _ := wiigo.GetKey("log_buffer_size")
	i, err = logBufferSize.Int()
	if err != nil {
		panic(err)
	}
	c.Wiigo.LogBufferSize = i

	batteryRate, _ := wiigo.GetKey("battery_rate")
	i, err = batteryRate.Int()
	if err != nil {
		panic(err)
	}
	c.Wiigo.BatteryRate = time.Second * time.Duration(i)

	// [screen]
	screen, _ := cfg.GetSection("screen")
	screenSupport, _ := screen.GetKey("enabled")
	screenType, _ := screen.GetKey("type")
	screenAddress, _ := screen.GetKey("address")
	screenBus, _ := screen.GetKey("bus")
	updateRate, _ := screen.GetKey("update_rate")
	message1, _ := screen.GetKey("exit_message1")
	message2, _ := screen.GetKey("exit_message2")
	message3, _ := screen.GetKey("exit_message3")
	message4, _ := screen.GetKey("exit_message4")

	b, err := screenSupport.Bool()
	if err != nil {
		panic(err)
	}
	c.Screen.Enabled = b

	switch t := screenType.Value(); t {
	case "16x2":
		c.Screen.LcdType = hd44780.LCD_16x2
	case "20x4":
		c.Screen.LcdType = hd44780.LCD_20x4
	default:
		panic(fmt.Sprintf("unsupported screen type: %s", t))
	}

	i, err = screenBus.Int()
	if err != nil {
		panic(err)
	}
	c.Screen.Bus = i

	i, err = screenAddress.Int()
	if err != nil {
		panic(err)
	}
	c.Screen.Address = uint8(i)

	i, err = updateRate.Int()
	if err != nil {
		panic(err)
	}
	c.Screen.UpdateRate = i

	c.Screen.ExitMessage[0] = message1.String()
	c.Screen.ExitMessage[1] = message2.String()
	c.Screen.ExitMessage[2] = message3.String()
	c.Screen.ExitMessage[3] = message4.String()

	return c
}

//go:embed wiigo-config/wiigo.config
//go:embed wiigo-config/factory/*
var templateConfig embed.FS

const configDir = "wiigo-config"

// createConfigDirectoryIfNeeded creates the config directory if necessary.
// It also updates factory device profiles, wiigo.config stays intact.
func createConfigDirectoryIfNeeded() error {
	cdir, err := os.OpenFile(configDir, os.O_RDONLY, 0)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("cannot open config directory: %v", err)
		}
		log.Info("config not exist, generating tree...", logger.Info)

		err = fs.WalkDir(templateConfig, configDir, func(path string, d fs.DirEntry, err error) error {
			if d.IsDir() {
				err := os.Mkdir(path, 0o777)
				if err != nil {
					return fmt.Errorf("cannot create \"%s\" directory: %w", path, err)
				}
				return nil
			}

			dst, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o666)
			if err != nil {
				return fmt.Errorf("cannot open \"%s\" file: %w", path, err)
			}
			defer dst.Close()

			data, err := fs.ReadFile(templateConfig, path)
			if err != nil {
				return fmt.Errorf("cannot read \"%s\" template file: %w", path, err)
			}

			_, err = dst.Write(data)
			if err != nil {
				return fmt.Errorf("cannot write data into \"%s\" file: %w", path, err)
			}

			log.Info(fmt.Sprintf("Created \"%s\" file", path), logger.Debug)
			return nil
		})
		if err != nil {
			panic(err)
		}

		// the user directory holds no template files
		err = os.MkdirAll(configDir+"/user", 0o777)
		if err != nil {
			return fmt.Errorf("cannot create user profile directory: %w", err)
		}

		log.Info("config generation done", logger.Info)
		return nil
	}
	cdir.Close()

	err = os.MkdirAll(configDir+"/user", 0o777)
	if err != nil {
		return fmt.Errorf("cannot create user profile directory: %w", err)
	}

	// update factory profiles
	err = fs.WalkDir(templateConfig, configDir+"/factory", func(path string, entry fs.DirEntry, err error) error {
		if entry.IsDir() {
			_, err := os.Stat(path)
			if err == nil {
				return nil
			}
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("unexpected error when reading \"%s\" directory: %w", path, err)
			}
			err = os.Mkdir(path, 0o777)
			if err != nil {
				return fmt.Errorf("cannot create \"%s\" directory: %w", path, err)
			}
			return nil
		}
		src, err := os.OpenFile(path, os.O_RDONLY, 0)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("cannot open \"%s\" file: %v", path, err)
			}
			// factory file does not exist
			log.Info(fmt.Sprintf("Creating new factory profile: \"%s\"", path), logger.Debug)
			fd, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o666)
			if err != nil {
				return fmt.Errorf("cannot open \"%s\" file for writing: %w", path, err)
			}
			defer fd.Close()

			data, err := fs.ReadFile(templateConfig, path)
			if err != nil {
				return fmt.Errorf("cannot read \"%s\" file template: %w", path, err)
			}

			_, err = fd.Write(data)
			if err != nil {
				return fmt.Errorf("cannot write data into \"%s\" file: %w", path, err)
			}
			return nil
		}
		defer src.Close()

		// factory file exist, overwriting when changed
		data, err := io.ReadAll(src)
		if err != nil {
			return fmt.Errorf("cannot read \"%s\" file template: %w", path, err)
		}

		newData, err := fs.ReadFile(templateConfig, path)
		if err != nil {
			return fmt.Errorf("cannot open \"%s\" file template: %w", path, err)
		}

		if bytes.Equal(data, newData) {
			log.Info(fmt.Sprintf("File \"%s\" not changed", path), logger.Debug)
			return nil
		}
		log.Info(fmt.Sprintf("File \"%s\" changed, replacing data...", path), logger.Debug)
		dst, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
		if err != nil {
			return fmt.Errorf("cannot open \"%s\" file: %w", path, err)
		}
		defer dst.Close()

		_, err = dst.Write(newData)
		if err != nil {
			return fmt.Errorf("cannot overwrite \"%s\" file: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("update factory configs failed: %w", err)
	}
	return nil
}
