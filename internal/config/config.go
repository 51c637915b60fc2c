// Package config loads the schemaver CLI configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/schemaver/internal/core/observability/log"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Log       LogConfig       `yaml:"log"`
	Migration MigrationConfig `yaml:"migration"`
	Output    OutputConfig    `yaml:"output"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

type MigrationConfig struct {
	// TargetVersion is used by upgrade when --to is not given. Zero means the
	// latest registered version.
	TargetVersion int `yaml:"target_version"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
}

func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info", Encoding: "console"},
		Output: OutputConfig{Format: "yaml"},
	}
}

// Load decodes YAML from r on top of the defaults.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadFile reads path, or returns the defaults when path is empty.
func LoadFile(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return Load(f)
}

func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log encoding %q", ErrInvalidConfig, c.Log.Encoding)
	}
	if c.Migration.TargetVersion < 0 {
		return fmt.Errorf("%w: negative target version %d", ErrInvalidConfig, c.Migration.TargetVersion)
	}
	switch c.Output.Format {
	case "yaml", "json":
	default:
		return fmt.Errorf("%w: output format %q", ErrInvalidConfig, c.Output.Format)
	}
	return nil
}
