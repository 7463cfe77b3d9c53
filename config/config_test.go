package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}

	if cfg.Port != 8556 {
		t.Errorf("Port = %d, want 8556", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if !cfg.Lookup {
		t.Error("Lookup should default to true")
	}
	if cfg.DefaultDPI != 300 {
		t.Errorf("DefaultDPI = %d, want 300", cfg.DefaultDPI)
	}
	if cfg.ShutdownTimeout.Duration != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout.Duration)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
port: 9000
log_level: debug
lookup: false
font_regular: /fonts/Custom.ttf
shutdown_timeout: 5s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Lookup {
		t.Error("Lookup should be false")
	}
	if cfg.FontRegular != "/fonts/Custom.ttf" {
		t.Errorf("FontRegular = %q", cfg.FontRegular)
	}
	if cfg.ShutdownTimeout.Duration != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", cfg.ShutdownTimeout.Duration)
	}
	// Untouched keys keep their defaults.
	if cfg.DefaultDPI != 300 {
		t.Errorf("DefaultDPI = %d, want 300", cfg.DefaultDPI)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("shutdown_timeout: soon\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected an error for an invalid duration")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BADGE_PORT", "7777")
	t.Setenv("BADGE_LOG_LEVEL", "warn")
	t.Setenv("BADGE_LOOKUP", "no")
	t.Setenv("BADGE_DEFAULT_DPI", "600")
	t.Setenv("BADGE_FONT_BOLD", "/fonts/Bold.ttf")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 7777 {
		t.Errorf("Port = %d, want 7777", cfg.Port)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.Lookup {
		t.Error("Lookup should be overridden to false")
	}
	if cfg.DefaultDPI != 600 {
		t.Errorf("DefaultDPI = %d, want 600", cfg.DefaultDPI)
	}
	if cfg.FontBold != "/fonts/Bold.ttf" {
		t.Errorf("FontBold = %q", cfg.FontBold)
	}
}

func TestEnsureDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := &Config{DataDir: dir}

	if err := cfg.EnsureDataDir(); err != nil {
		t.Fatalf("EnsureDataDir: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat data dir: %v", err)
	}
	if !info.IsDir() {
		t.Error("data dir is not a directory")
	}
}
