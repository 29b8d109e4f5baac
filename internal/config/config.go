package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Thg-prog/laba8sem/internal/options"
)

// DefaultPath is the configuration file read when none is named.
const DefaultPath = "tmi.yaml"

type Config struct {
	Capture    string        `yaml:"capture"`
	Parameters string        `yaml:"parameters"`
	Dimensions string        `yaml:"dimensions"`
	LogLevel   string        `yaml:"log_level"`
	Export     ExportConfig  `yaml:"export"`
	Metrics    MetricsConfig `yaml:"metrics"`
}

type ExportConfig struct {
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Load reads the configuration at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills empty fields.
func (c *Config) ApplyDefaults() {
	if c.Capture == "" {
		c.Capture = "190829_v29854.KNP"
	}
	if c.Parameters == "" {
		c.Parameters = "KNP-173.14.33.58.dat.xml"
	}
	if c.Dimensions == "" {
		c.Dimensions = "dimens.ion"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Export.Format == "" {
		c.Export.Format = "text"
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if _, err := options.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch c.Export.Format {
	case "text", "json", "cbor", "sqlite":
	default:
		return fmt.Errorf("export.format %q is not one of text, json, cbor, sqlite", c.Export.Format)
	}
	if c.Export.Format == "sqlite" && c.Export.Output == "" {
		return fmt.Errorf("export.output is required for sqlite export")
	}
	return nil
}
