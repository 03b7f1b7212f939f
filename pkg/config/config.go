// Package config loads the CLI's user configuration from
// ~/.config/trialflow/config.toml. A missing file yields defaults; a present
// file only overrides what it names.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"trialflow/pkg/model"
)

// Config is the persisted CLI configuration.
type Config struct {
	CountFormat     string `toml:"count_format"`
	Arrows          bool   `toml:"arrows"`
	AutoCalc        bool   `toml:"auto_calc"`
	Template        string `toml:"template"`
	ArchiveDir      string `toml:"archive_dir,omitempty"`
	WatchDebounceMs int    `toml:"watch_debounce_ms"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		CountFormat:     string(model.FormatUpper),
		Arrows:          true,
		AutoCalc:        true,
		Template:        "consort",
		WatchDebounceMs: 250,
	}
}

// Path returns the config file location, creating its directory.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "trialflow")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the user configuration, falling back to defaults when the file
// does not exist.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads a configuration file at an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the default location.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes the configuration to an explicit path.
func SaveTo(path string, cfg Config) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// Settings converts the configuration into engine settings. An unknown
// count format falls back to the default rather than failing.
func (c Config) Settings() model.Settings {
	s := model.DefaultSettings()
	s.ArrowsGlobal = c.Arrows
	s.AutoCalc = c.AutoCalc
	if f := model.CountFormat(c.CountFormat); f.IsValid() {
		s.CountFormat = f
	}
	return s
}
