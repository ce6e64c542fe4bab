package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	appName              = "vlist"
	defaultDataDirectory = ".vlist"
	defaultItemHeight    = 1
	defaultWheelStep     = 2
	defaultCacheSize     = 4096
	defaultItems         = 10_000
)

type ListOptions struct {
	// Nominal item height in lines, used to estimate the visible window.
	ItemHeight int `json:"item_height,omitempty" jsonschema:"description=Nominal item height in lines used to estimate the visible window,default=1,minimum=1"`
	// Lines scrolled per mouse wheel notch.
	WheelStep int `json:"wheel_step,omitempty" jsonschema:"description=Lines scrolled per mouse wheel notch,default=2,minimum=1"`
	// Number of measured item heights to remember. Negative keeps them all.
	HeightCacheSize  int  `json:"height_cache_size,omitempty" jsonschema:"description=Number of measured item heights to remember; negative keeps them all,default=4096"`
	DisableScrollbar bool `json:"disable_scrollbar,omitempty" jsonschema:"description=Hide the scrollbar,default=false"`
	DisableMouse     bool `json:"disable_mouse,omitempty" jsonschema:"description=Disable mouse wheel scrolling,default=false"`
}

type SourceOptions struct {
	File      string `json:"file,omitempty" jsonschema:"description=JSON array or text file of blank-line separated paragraphs"`
	KeyField  string `json:"key_field,omitempty" jsonschema:"description=JSON field identifying a record,example=id"`
	TextField string `json:"text_field,omitempty" jsonschema:"description=JSON field to display,default=text"`
	// Number of records generated when no file is given.
	Items int    `json:"items,omitempty" jsonschema:"description=Number of records generated when no file is given,default=10000"`
	Seed  uint64 `json:"seed,omitempty" jsonschema:"description=Seed for generated records"`
	Watch bool   `json:"watch,omitempty" jsonschema:"description=Reload the file when it changes,default=false"`
	// Colour records that are displayed as raw JSON.
	Highlight bool `json:"highlight,omitempty" jsonschema:"description=Syntax highlight records displayed as raw JSON,default=false"`
}

type Options struct {
	Debug         bool   `json:"debug,omitempty" jsonschema:"description=Enable debug logging,default=false"`
	DataDirectory string `json:"data_directory,omitempty" jsonschema:"description=Directory for logs relative to the working directory,default=.vlist"` // Relative to the cwd
}

// Config holds the configuration for vlist.
type Config struct {
	List    *ListOptions   `json:"list,omitempty" jsonschema:"description=List layout and scrolling"`
	Source  *SourceOptions `json:"source,omitempty" jsonschema:"description=Where records come from and how they are shown"`
	Options *Options       `json:"options,omitempty" jsonschema:"description=General options"`

	// Internal
	workingDir    string `json:"-"`
	dataConfigDir string `json:"-"`
}

func (c *Config) WorkingDir() string {
	return c.workingDir
}

// LogFile is where the program logs while the list owns the terminal.
func (c *Config) LogFile() string {
	return filepath.Join(c.Options.DataDirectory, "logs", appName+".log")
}

// Get reads a value of the effective configuration by gjson path.
func (c *Config) Get(key string) (gjson.Result, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to encode config: %w", err)
	}
	if key == "" {
		return gjson.ParseBytes(data), nil
	}
	return gjson.GetBytes(data, key), nil
}

// SetConfigField persists a single field to the data config file, which
// takes precedence over the global config file.
func (c *Config) SetConfigField(key string, value any) error {
	// read the data
	data, err := os.ReadFile(c.dataConfigDir)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte("{}")
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	newValue, err := sjson.Set(string(data), key, value)
	if err != nil {
		return fmt.Errorf("failed to set config field %s: %w", key, err)
	}
	if err := os.MkdirAll(filepath.Dir(c.dataConfigDir), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(c.dataConfigDir, []byte(newValue), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) SetItemHeight(height int) error {
	if height <= 0 {
		return fmt.Errorf("item height must be positive, got %d", height)
	}
	c.List.ItemHeight = height
	return c.SetConfigField("list.item_height", height)
}
