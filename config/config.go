package config

import (
	"encoding/json"
	"path/filepath"

	"chip8/keypad"

	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
)

const (
	vendor   = "chip8"
	fileName = "config.json"
)

// Frontends that can be selected with Config.Frontend.
const (
	FrontendTUI      = "tui"
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
)

// Config holds the user settings read from config.json.
type Config struct {
	Frontend   string  `json:"frontend"`
	ClockHz    int     `json:"clock_hz"`    // instructions per second, 0 runs unthrottled
	Scale      int     `json:"scale"`       // window pixels per display pixel
	ToneHz     int     `json:"tone_hz"`
	Volume     float64 `json:"volume"`
	Keymap     string  `json:"keymap"`
	LogFile    string  `json:"log_file"`
	Debug      bool    `json:"debug"`
	TraceDepth int     `json:"trace_depth"` // instructions kept for fault reports
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Frontend:   FrontendTUI,
		ClockHz:    700,
		Scale:      10,
		ToneHz:     440,
		Volume:     0.2,
		Keymap:     keypad.DefaultLayout,
		TraceDepth: 16,
	}
}

// Load overlays the first config.json found in the configdir folders on
// the defaults. A missing file is not an error.
func Load() (Config, error) {
	dirs := configdir.New(vendor, "")
	folder := dirs.QueryFolderContainsFile(fileName)
	if folder == nil {
		return Default(), nil
	}

	data, err := folder.ReadFile(fileName)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading %s", fileName)
	}
	return Parse(data)
}

// Parse overlays the JSON document data on the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing %s", fileName)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	switch c.Frontend {
	case FrontendTUI, FrontendWindow, FrontendTerminal:
	default:
		return errors.Errorf("unknown frontend %q", c.Frontend)
	}
	if c.ClockHz < 0 {
		return errors.Errorf("negative clock rate %d", c.ClockHz)
	}
	if c.Scale < 1 {
		return errors.Errorf("invalid scale %d", c.Scale)
	}
	if c.ToneHz < 0 {
		return errors.Errorf("negative tone frequency %d", c.ToneHz)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return errors.Errorf("volume %v out of range 0..1", c.Volume)
	}
	if c.TraceDepth < 0 {
		return errors.Errorf("negative trace depth %d", c.TraceDepth)
	}
	if _, err := keypad.ParseKeymap(c.Keymap); err != nil {
		return err
	}
	return nil
}

// CacheFile returns the path of name inside the chip8 cache folder,
// creating the folder. It returns "" when the folder cannot be created.
func CacheFile(name string) string {
	cache := configdir.New(vendor, "").QueryCacheFolder()
	if err := cache.MkdirAll(); err != nil {
		return ""
	}
	return filepath.Join(cache.Path, name)
}
