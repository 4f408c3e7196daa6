// Package config loads client settings from the user config directory with
// PDFLATE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the client settings.
type Config struct {
	ServerURL      string
	SourceLanguage string
	TargetLanguage string
	Theme          string
	Notifications  bool
}

// Dir returns the directory for pdflate config files, using
// XDG_CONFIG_HOME or falling back to the platform default.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "pdflate"), nil
}

// DefaultDataDir returns the directory for runtime files (the instance lock).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pdflate"
	}
	return filepath.Join(home, ".local", "share", "pdflate")
}

// Load reads config.yaml from the user config dir. A missing file is fine;
// defaults and environment variables still apply.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(dir)
}

// LoadFrom is Load with an explicit directory. Tests point it at a temp dir.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetDefault("server_url", "http://localhost:8000")
	v.SetDefault("source_language", "ko")
	v.SetDefault("target_language", "en")
	v.SetDefault("theme", "nord")
	v.SetDefault("notifications", true)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("pdflate")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Config{
		ServerURL:      v.GetString("server_url"),
		SourceLanguage: v.GetString("source_language"),
		TargetLanguage: v.GetString("target_language"),
		Theme:          v.GetString("theme"),
		Notifications:  v.GetBool("notifications"),
	}, nil
}
