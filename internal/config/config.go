// Package config loads the server configuration from an optional
// yaml file. Absent a file, built-in defaults apply.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Addr is the listen address, e.g. ":8000" or "127.0.0.1:8000".
	Addr string `yaml:"addr"`
}

func defaults() Config {
	return Config{Addr: ":8000"}
}

// Load reads the configuration from path. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("addr must not be empty")
	}
	return nil
}
