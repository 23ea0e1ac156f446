package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/openwiimote/wiigo/internal/pkg/input"
)

const (
	factoryProfiles = "./wiigo-config/factory"
	userProfiles    = "./wiigo-config/user"
)

type ConfigMap map[input.InputID]DeviceConfig

type DeviceConfigs struct {
	Factory ConfigMap
	User    ConfigMap
}

// FindConfig resolves the profile of a device, user entries shadow factory
// ones and the zero identifier acts as the default profile.
func (c *DeviceConfigs) FindConfig(id input.InputID) (DeviceConfig, error) {
	cfg, ok := c.User[id]
	if ok {
		return cfg, nil
	}
	cfg, ok = c.Factory[id]
	if ok {
		return cfg, nil
	}
	cfg, ok = c.User[input.InputID{}]
	if ok {
		return cfg, nil
	}
	cfg, ok = c.Factory[input.InputID{}] // picking default config
	if ok {
		return cfg, nil
	}
	return DeviceConfig{}, errors.New("default device config not found")
}

type dirInfo struct {
	root       string
	configMap  ConfigMap
	identifier string
}

func LoadDeviceConfigs() (DeviceConfigs, error) {
	cfg := DeviceConfigs{
		Factory: make(ConfigMap),
		User:    make(ConfigMap),
	}

	for _, pair := range []dirInfo{
		{factoryProfiles, cfg.Factory, "factory"},
		{userProfiles, cfg.User, "user"},
	} {
		err := loadDirectory(pair.root, pair.identifier, pair.configMap)
		if err != nil {
			return cfg, fmt.Errorf("loading \"%s\" directory failed: %w", pair.root, err)
		}
	}

	return cfg, nil
}

func loadDirectory(root, configType string, configMap ConfigMap) error {
	err := filepath.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		name := strings.ToLower(info.Name())
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			return nil
		}

		devCfg, err := readDeviceConfig(path, configType)
		if err != nil {
			log.Info(fmt.Sprintf("device config %s load failed: %s", name, err))
			return nil
		}
		configMap[devCfg.ID] = devCfg

		return nil
	})
	if err != nil {
		return fmt.Errorf("walk failed: %w", err)
	}
	return nil
}
