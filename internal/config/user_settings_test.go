package config

import (
	"path/filepath"
	"testing"
)

func TestLoadUISettingsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	settings := loadUISettings(path)
	if !settings.ShowKeymapHints || settings.ShowStatus {
		t.Fatalf("unexpected defaults %+v", settings)
	}
}

func TestSaveLoadUISettings(t *testing.T) {
	for _, name := range []string{"config.json", "config.yaml"} {
		path := filepath.Join(t.TempDir(), name)
		settings := defaultUISettings()
		settings.ShowKeymapHints = false
		settings.ShowStatus = true
		settings.Theme = "dracula"

		if err := saveUISettings(path, settings); err != nil {
			t.Fatalf("%s: saveUISettings failed: %v", name, err)
		}

		loaded := loadUISettings(path)
		if loaded != settings {
			t.Fatalf("%s: loaded %+v, want %+v", name, loaded, settings)
		}
	}
}

func TestSaveUISettingsKeepsTickerSection(t *testing.T) {
	dir := t.TempDir()
	paths := PathsAt(dir)
	writeFile(t, paths.ConfigPath, `{"ticker": {"speed": 12}}`)

	cfg, err := LoadFrom(paths, "")
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	cfg.UI.ShowStatus = true
	if err := cfg.SaveUISettings(); err != nil {
		t.Fatalf("SaveUISettings() error = %v", err)
	}

	again, err := LoadFrom(paths, "")
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if again.Ticker.Speed != 12 || !again.UI.ShowStatus {
		t.Fatalf("speed=%v showStatus=%t", again.Ticker.Speed, again.UI.ShowStatus)
	}
}
