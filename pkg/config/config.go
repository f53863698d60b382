// Package config loads kintree's TOML configuration file.
//
// The file has three optional tables:
//
//	[layout]
//	node_width = 140.0
//	node_height = 45.0
//	h_gap = 30.0
//	v_gap = 80.0
//	partner_gap = 8.0
//
//	[log]
//	level = "info"
//
//	[cache]
//	disabled = false
//	dir = "/tmp/kintree"
//
// Keys left out keep their defaults. Unknown keys are rejected so typos
// surface instead of being silently ignored.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/kintree/pkg/core/layout"
	kerrors "github.com/matzehuels/kintree/pkg/errors"
)

const (
	appName  = "kintree"
	fileName = "config.toml"
)

// Config is the decoded configuration file.
type Config struct {
	Layout layout.Config `toml:"layout"`
	Log    LogConfig     `toml:"log"`
	Cache  CacheConfig   `toml:"cache"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level string `toml:"level"`
}

// CacheConfig controls the scene cache.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	Dir      string `toml:"dir,omitempty"` // empty means the XDG cache dir
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Layout: layout.DefaultConfig(),
		Log:    LogConfig{Level: "info"},
	}
}

// LogLevel parses Log.Level.
func (c Config) LogLevel() (log.Level, error) {
	return log.ParseLevel(strings.ToLower(c.Log.Level))
}

// Validate checks the layout dimensions and log level.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "layout")
	}
	if _, err := c.LogLevel(); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "log level")
	}
	return nil
}

// DefaultPath returns the config file location following XDG conventions:
// $XDG_CONFIG_HOME/kintree/config.toml, else ~/.config/kintree/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the configuration. An explicit path must exist; with an empty
// path the default location is tried and a missing file yields Default().
// The returned string names the file that was read, or is empty.
func Load(path string) (Config, string, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), "", nil
		}
		path = p
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		if explicit {
			return Config{}, "", kerrors.New(kerrors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return Default(), "", nil
	}
	if err != nil {
		return Config{}, "", err
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, "", fmt.Errorf("%s: %w", path, err)
	}
	return cfg, path, nil
}

// Decode reads TOML from r on top of Default() and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, kerrors.New(kerrors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes c as TOML.
func Encode(w io.Writer, c Config) error {
	return toml.NewEncoder(w).Encode(c)
}

// WriteFile writes c to path, creating parent directories.
func WriteFile(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
