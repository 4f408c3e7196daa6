package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.ServerURL != "http://localhost:8000" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.SourceLanguage != "ko" || cfg.TargetLanguage != "en" {
		t.Errorf("languages = %s/%s", cfg.SourceLanguage, cfg.TargetLanguage)
	}
	if cfg.Theme != "nord" {
		t.Errorf("Theme = %q", cfg.Theme)
	}
	if !cfg.Notifications {
		t.Error("Notifications default = false, want true")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "server_url: http://translate.internal:9000\ntheme: dracula\nnotifications: false\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.ServerURL != "http://translate.internal:9000" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.Theme != "dracula" {
		t.Errorf("Theme = %q", cfg.Theme)
	}
	if cfg.Notifications {
		t.Error("Notifications = true, want false from file")
	}
	// Unset keys keep their defaults.
	if cfg.SourceLanguage != "ko" {
		t.Errorf("SourceLanguage = %q", cfg.SourceLanguage)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "server_url: http://from-file:8000\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PDFLATE_SERVER_URL", "http://from-env:8000")

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.ServerURL != "http://from-env:8000" {
		t.Errorf("ServerURL = %q, want env value", cfg.ServerURL)
	}
}
