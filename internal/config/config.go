// Package config loads optional CLI defaults from a TOML file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultOutputDir receives transcripts when no output path is given.
	DefaultOutputDir = "transcripts"

	defaultHTTPTimeoutSeconds = 30
)

// Config holds user defaults. Command-line flags override every field.
type Config struct {
	OutputDir          string   `toml:"output_dir"`
	Languages          []string `toml:"languages"`
	Timestamps         bool     `toml:"timestamps"`
	HTTPTimeoutSeconds int      `toml:"http_timeout_seconds"`
	UserAgent          string   `toml:"user_agent"`
	ProxyURL           string   `toml:"proxy_url"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutputDir:          DefaultOutputDir,
		Timestamps:         true,
		HTTPTimeoutSeconds: defaultHTTPTimeoutSeconds,
	}
}

// DefaultPath returns the conventional config file location
// (<user config dir>/yttext/config.toml), or "" when the user config
// directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "yttext", "config.toml")
}

// Load reads the config file at path, merged over the built-in defaults.
// A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.HTTPTimeoutSeconds <= 0 {
		cfg.HTTPTimeoutSeconds = defaultHTTPTimeoutSeconds
	}
	return cfg, nil
}

// HTTPTimeout returns the configured timeout as a duration.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}
