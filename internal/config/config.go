package config

import (
	"fmt"
	"os"
	"strings"
)

// KeyMapConfig holds user overrides for keybindings.
type KeyMapConfig struct {
	Bindings map[string][]string `json:"bindings,omitempty" yaml:"bindings,omitempty"`
}

// BindingFor returns the configured keys for an action, if present.
func (k KeyMapConfig) BindingFor(action string) ([]string, bool) {
	if len(k.Bindings) == 0 {
		return nil, false
	}
	if keys, ok := k.Bindings[action]; ok {
		return keys, true
	}
	if keys, ok := k.Bindings[strings.ToLower(action)]; ok {
		return keys, true
	}
	return nil, false
}

// Config holds the application configuration
type Config struct {
	Paths  *Paths
	Ticker Ticker
	KeyMap KeyMapConfig
	UI     UISettings
	// LogLevel is the minimum level written to the log file.
	LogLevel string
	// Source is the path the configuration was read from, empty when only
	// defaults apply.
	Source string
}

type fileConfig struct {
	Ticker   tickerFile   `json:"ticker" yaml:"ticker"`
	KeyMap   KeyMapConfig `json:"keymap,omitempty" yaml:"keymap,omitempty"`
	LogLevel string       `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return defaultConfigAt(paths), nil
}

func defaultConfigAt(paths *Paths) *Config {
	return &Config{
		Paths:    paths,
		Ticker:   DefaultTicker(),
		KeyMap:   KeyMapConfig{},
		UI:       defaultUISettings(),
		LogLevel: "info",
	}
}

// Load reads overrides from path, or from the user config under ~/.marquee
// when path is empty. A missing file yields the defaults. The returned
// ticker options are normalised and validated.
func Load(path string) (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return LoadFrom(paths, path)
}

// LoadFrom is Load with an explicit home layout.
func LoadFrom(paths *Paths, path string) (*Config, error) {
	cfg := defaultConfigAt(paths)
	if path == "" {
		path = paths.UserConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.Ticker = cfg.Ticker.Normalize()
			return cfg, nil
		}
		return nil, err
	}

	var file fileConfig
	if err := decode(path, data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	ticker, err := file.Ticker.apply(cfg.Ticker)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ticker = ticker.Normalize()
	if err := ticker.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg.Ticker = ticker
	cfg.Source = path
	if len(file.KeyMap.Bindings) > 0 {
		cfg.KeyMap = file.KeyMap
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	cfg.UI = loadUISettings(path)
	return cfg, nil
}
