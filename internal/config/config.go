// Package config loads window-monitor settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultProcess  = "Writer"
	DefaultInterval = 100 * time.Millisecond
	DefaultTimeout  = 5 * time.Second
	DefaultFormat   = "text"
)

// Config holds the monitor settings. Zero Duration means run until interrupted.
type Config struct {
	Process  string        `yaml:"process"`
	Interval time.Duration `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"`
	Duration time.Duration `yaml:"duration"`
	Format   string        `yaml:"format"`
}

// DefaultConfig returns the settings used when no file or flag overrides them.
func DefaultConfig() Config {
	return Config{
		Process:  DefaultProcess,
		Interval: DefaultInterval,
		Timeout:  DefaultTimeout,
		Format:   DefaultFormat,
	}
}

func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "window-monitor", "config.yaml"), nil
}

// LoadFromPath reads path over the defaults. A missing file yields the
// defaults unchanged.
func LoadFromPath(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if c.Process == "" {
		return fmt.Errorf("process must not be empty")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %s", c.Duration)
	}
	switch c.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported format: %s (use text, json, or yaml)", c.Format)
	}
	return nil
}
