package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/qjebbs/go-jsons"
)

// Load reads the global, data and project config files, merges them in that
// order and applies defaults and environment overrides.
func Load(workingDir string, debug bool) (*Config, error) {
	configPaths := []string{
		GlobalConfig(),
		GlobalConfigData(),
		filepath.Join(workingDir, fmt.Sprintf("%s.json", appName)),
		filepath.Join(workingDir, fmt.Sprintf(".%s.json", appName)),
	}
	cfg, err := loadFromConfigPaths(configPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from paths %v: %w", configPaths, err)
	}

	cfg.workingDir = workingDir
	cfg.dataConfigDir = GlobalConfigData()
	cfg.setDefaults(workingDir)
	cfg.applyEnv()
	if debug {
		cfg.Options.Debug = true
	}
	return cfg, nil
}

func loadFromConfigPaths(configPaths []string) (*Config, error) {
	var configs []io.Reader

	for _, path := range configPaths {
		fd, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
		}
		defer fd.Close()

		configs = append(configs, fd)
	}

	return loadFromReaders(configs)
}

func loadFromReaders(readers []io.Reader) (*Config, error) {
	if len(readers) == 0 {
		return &Config{}, nil
	}

	merged, err := jsons.Merge(readers)
	if err != nil {
		return nil, fmt.Errorf("failed to merge configuration readers: %w", err)
	}

	return LoadReader(bytes.NewReader(merged))
}

// LoadReader decodes a single config document without defaults.
func LoadReader(fd io.Reader) (*Config, error) {
	data, err := io.ReadAll(fd)
	if err != nil {
		return nil, err
	}

	var config Config
	err = json.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	return &config, err
}

func (c *Config) setDefaults(workingDir string) {
	if c.Options == nil {
		c.Options = &Options{}
	}
	if c.List == nil {
		c.List = &ListOptions{}
	}
	if c.Source == nil {
		c.Source = &SourceOptions{}
	}

	if c.Options.DataDirectory == "" {
		c.Options.DataDirectory = filepath.Join(workingDir, defaultDataDirectory)
	}
	if c.List.ItemHeight <= 0 {
		c.List.ItemHeight = defaultItemHeight
	}
	if c.List.WheelStep <= 0 {
		c.List.WheelStep = defaultWheelStep
	}
	if c.List.HeightCacheSize < 0 {
		c.List.HeightCacheSize = 0
	} else if c.List.HeightCacheSize == 0 {
		c.List.HeightCacheSize = defaultCacheSize
	}
	if c.Source.Items <= 0 {
		c.Source.Items = defaultItems
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("VLIST_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("Ignoring invalid VLIST_DEBUG", "value", v, "error", err)
		} else {
			c.Options.Debug = debug
		}
	}
	if v := os.Getenv("VLIST_ITEM_HEIGHT"); v != "" {
		height, err := strconv.Atoi(v)
		if err != nil || height <= 0 {
			slog.Warn("Ignoring invalid VLIST_ITEM_HEIGHT", "value", v)
		} else {
			c.List.ItemHeight = height
		}
	}
}

// GlobalConfig returns the global configuration file path for the application.
func GlobalConfig() string {
	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, appName, fmt.Sprintf("%s.json", appName))
	}

	// return the path to the main config directory
	// for windows, it should be in `%LOCALAPPDATA%/vlist/`
	// for linux and macOS, it should be in `$HOME/.config/vlist/`
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
		return filepath.Join(localAppData, appName, fmt.Sprintf("%s.json", appName))
	}

	return filepath.Join(os.Getenv("HOME"), ".config", appName, fmt.Sprintf("%s.json", appName))
}

// GlobalConfigData returns the path to the main data directory for the application.
// this config is used when the app overrides configurations instead of updating the global config.
func GlobalConfigData() string {
	xdgDataHome := os.Getenv("XDG_DATA_HOME")
	if xdgDataHome != "" {
		return filepath.Join(xdgDataHome, appName, fmt.Sprintf("%s.json", appName))
	}

	// return the path to the main data directory
	// for windows, it should be in `%LOCALAPPDATA%/vlist/`
	// for linux and macOS, it should be in `$HOME/.local/share/vlist/`
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
		return filepath.Join(localAppData, appName, fmt.Sprintf("%s.json", appName))
	}

	return filepath.Join(os.Getenv("HOME"), ".local", "share", appName, fmt.Sprintf("%s.json", appName))
}
