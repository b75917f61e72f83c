// Package config loads the settings of the smallc command from TOML or
// YAML files.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format represents the configuration file format
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Config holds the complete command configuration
type Config struct {
	LogLevel    string            `toml:"log_level" yaml:"log_level"`
	Dump        DumpConfig        `toml:"dump" yaml:"dump"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics" yaml:"diagnostics"`
}

// DumpConfig controls tree output
type DumpConfig struct {
	Header bool `toml:"header" yaml:"header"` // print the "AST:" line
	Scopes bool `toml:"scopes" yaml:"scopes"` // append the scope tree
}

// DiagnosticsConfig controls error reporting
type DiagnosticsConfig struct {
	MaxErrors int  `toml:"max_errors" yaml:"max_errors"` // 0 means unlimited
	Sort      bool `toml:"sort" yaml:"sort"`             // order by position
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Dump:     DumpConfig{Header: true},
	}
}

// DetectFormat picks the format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("unsupported config file extension '%s'", ext)
	}
}

// Load reads path over the defaults. Keys absent from the file keep their
// default values.
func Load(path string) (*Config, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(content, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes content over the defaults.
func Parse(content []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(content), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown config key '%s'", undecoded[0])
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %s", format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Diagnostics.MaxErrors < 0 {
		return fmt.Errorf("max_errors must not be negative, got %d", c.Diagnostics.MaxErrors)
	}
	return nil
}

// Level converts LogLevel for log/slog.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level '%s'", c.LogLevel)
	}
	return level, nil
}
