package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathsEnsureDirectories(t *testing.T) {
	paths := PathsAt(filepath.Join(t.TempDir(), "marquee"))

	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories() error = %v", err)
	}

	for _, dir := range []string{paths.Home, paths.LogsRoot} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %s to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %s to be a directory", dir)
		}
	}
}

func TestUserConfigPathPrefersJSON(t *testing.T) {
	paths := PathsAt(t.TempDir())
	if got := paths.UserConfigPath(); got != paths.ConfigPath {
		t.Fatalf("UserConfigPath() = %s, want %s when nothing exists", got, paths.ConfigPath)
	}

	if err := os.WriteFile(paths.YAMLConfigPath, []byte("ticker: {}\n"), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	if got := paths.UserConfigPath(); got != paths.YAMLConfigPath {
		t.Fatalf("UserConfigPath() = %s, want yaml path", got)
	}

	if err := os.WriteFile(paths.ConfigPath, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if got := paths.UserConfigPath(); got != paths.ConfigPath {
		t.Fatalf("UserConfigPath() = %s, want json path", got)
	}
}
