package config

import (
	"os"
	"path/filepath"
)

// Paths holds all the file system paths used by the application
type Paths struct {
	Home           string // ~/.marquee
	ConfigPath     string // ~/.marquee/config.json
	YAMLConfigPath string // ~/.marquee/config.yaml
	LogsRoot       string // ~/.marquee/logs
}

// DefaultPaths returns the default paths configuration
func DefaultPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return PathsAt(filepath.Join(home, ".marquee")), nil
}

// PathsAt lays out the paths under root.
func PathsAt(root string) *Paths {
	return &Paths{
		Home:           root,
		ConfigPath:     filepath.Join(root, "config.json"),
		YAMLConfigPath: filepath.Join(root, "config.yaml"),
		LogsRoot:       filepath.Join(root, "logs"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Home, p.LogsRoot} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// UserConfigPath returns the config file that exists, preferring JSON.
// With neither present it returns ConfigPath.
func (p *Paths) UserConfigPath() string {
	if _, err := os.Stat(p.ConfigPath); err == nil {
		return p.ConfigPath
	}
	if _, err := os.Stat(p.YAMLConfigPath); err == nil {
		return p.YAMLConfigPath
	}
	return p.ConfigPath
}
