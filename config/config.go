// Package config loads the YAML settings used by the command-line tools.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dargueta/cmpt365/utilities/compression"
	"gopkg.in/yaml.v3"
)

// CompressionConfig holds the defaults for the `compress` command.
type CompressionConfig struct {
	Algorithm string `yaml:"algorithm"`  // "lzw" or "lz77"
	OutputDir string `yaml:"output_dir"` // Empty means next to the input file
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Output string `yaml:"output"` // "stderr", "stdout", "none"
}

type Config struct {
	Compression CompressionConfig `yaml:"compression"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Compression: CompressionConfig{
			Algorithm: "lz77",
			OutputDir: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stderr",
		},
	}
}

// Load reads YAML configuration from `r` on top of the defaults. A nil or empty
// reader gives the defaults.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()
	if r == nil {
		return cfg, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config data: %w", err)
	}
	if len(data) == 0 {
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads configuration from a YAML file. A file that doesn't exist
// gives the defaults.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Load(nil)
		}
		return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer file.Close()

	return Load(file)
}

// Validate checks that every setting has a usable value.
func (c *Config) Validate() error {
	if _, err := c.CompressionAlgorithm(); err != nil {
		return fmt.Errorf("invalid compression.algorithm: %w", err)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Output) {
	case "stderr", "stdout", "none":
	default:
		return fmt.Errorf("invalid logging.output: %q", c.Logging.Output)
	}
	return nil
}

// CompressionAlgorithm converts the configured algorithm name.
func (c *Config) CompressionAlgorithm() (compression.Algorithm, error) {
	return compression.ParseAlgorithm(c.Compression.Algorithm)
}
