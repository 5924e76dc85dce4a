// Package config reads and writes the TOML config file for tabbed.
//
// The config file lives at ~/.config/tabbed/config.toml. Every field is
// optional; a missing file yields Default().
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/hinke/tabbed/internal/content"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the top-level configuration structure.
type Config struct {
	Content ContentConfig `toml:"content"`
	Undo    UndoConfig    `toml:"undo"`
	Log     LogConfig     `toml:"log"`
}

// ContentConfig selects the tab content and how tabs are identified.
type ContentConfig struct {
	// File is a .toml or .yaml content file. Empty uses the built-in records.
	File      string `toml:"file"`
	KeyPolicy string `toml:"key_policy"`
}

// UndoConfig holds the deferred undo settings.
type UndoConfig struct {
	DelayMS int `toml:"delay_ms"`
}

// LogConfig holds structured log settings. Logs never go to the terminal.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Content: ContentConfig{
			KeyPolicy: string(content.KeySummary),
		},
		Undo: UndoConfig{
			DelayMS: 2000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the platform-appropriate path to the config file.
// On most systems this is ~/.config/tabbed/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "tabbed", "config.toml")
}

// LoadFrom reads the config from the given path.
// If the file does not exist, it returns a default Config (no error).
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// SaveTo writes the config to the given path.
// It creates the parent directory with mode 0o700 and the file with mode 0o600.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := content.ParseKeyPolicy(c.Content.KeyPolicy); err != nil {
		return fmt.Errorf("%w: content.key_policy: %v", ErrInvalid, err)
	}
	if c.Undo.DelayMS < 0 {
		return fmt.Errorf("%w: undo.delay_ms must not be negative, got %d", ErrInvalid, c.Undo.DelayMS)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}

// UndoDelay returns the deferred undo delay.
func (c *Config) UndoDelay() time.Duration {
	return time.Duration(c.Undo.DelayMS) * time.Millisecond
}

// KeyPolicy returns the parsed key policy, falling back to summary keys.
func (c *Config) KeyPolicy() content.KeyPolicy {
	p, err := content.ParseKeyPolicy(c.Content.KeyPolicy)
	if err != nil {
		return content.KeySummary
	}
	return p
}

// Records loads the configured content file, or returns the built-in
// records when none is set.
func (c *Config) Records() ([]content.Record, error) {
	if c.Content.File == "" {
		return content.DefaultRecords(), nil
	}
	return content.LoadFile(c.Content.File)
}

// SlogLevel parses Level. The empty string means info.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, err
	}
	return level, nil
}
