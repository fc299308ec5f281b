// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "ABCINSPECT_CONFIG"

// Config is the configuration shared by abc-inspect and abc-fuzz.
type Config struct {
	// Limits bounds the work done on one archive.
	Limits LimitsConfig `yaml:"limits"`

	// Harness configures the fuzz harness.
	Harness HarnessConfig `yaml:"harness"`

	// Log configures diagnostic logging.
	Log LogConfig `yaml:"log"`
}

// LimitsConfig bounds traversal and decompression.
type LimitsConfig struct {
	// MaxDepth is the deepest object visited below the top object.
	// Default: 512
	MaxDepth int `yaml:"max_depth"`

	// MaxNodes is the number of objects visited or children rejected
	// before the walk stops.
	// Default: 1000000
	MaxNodes int `yaml:"max_nodes"`

	// MaxInputBytes caps the decompressed size of zstd or lz4 wrapped
	// archives.
	// Default: 268435456 (256 MiB)
	MaxInputBytes int64 `yaml:"max_input_bytes"`
}

// HarnessConfig configures the fuzz harness.
type HarnessConfig struct {
	// ScratchDir is where inputs are materialized as temporary files.
	// Default: ${TMPDIR:-/tmp}
	ScratchDir string `yaml:"scratch_dir"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	// Default: warn
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given, and
// the base every loaded file is merged onto.
func Default() *Config {
	return &Config{
		Limits: LimitsConfig{
			MaxDepth:      512,
			MaxNodes:      1_000_000,
			MaxInputBytes: 256 << 20,
		},
		Harness: HarnessConfig{
			ScratchDir: "${TMPDIR:-/tmp}",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from the file named by ABCINSPECT_CONFIG.
// It fails when the variable is unset: callers decide whether running
// on [Default] is acceptable.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of a config file, or use --config", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path, merged onto [Default].
// Files ending in .json or .jsonc may carry comments and trailing
// commas; anything else is parsed as YAML. Unknown keys are errors.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := cfg.decode(data, filepath.Ext(path)); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.expandVariables()
	return cfg, nil
}

// decode merges data into c. JSON is a subset of YAML, so JSONC input
// is normalized to JSON and goes through the same strict decoder.
func (c *Config) decode(data []byte, extension string) error {
	switch strings.ToLower(extension) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// paths.
func (c *Config) expandVariables() {
	c.Harness.ScratchDir = expandVars(c.Harness.ScratchDir)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// ScratchDir returns the harness scratch directory with variables
// expanded. Configurations built in code rather than loaded may still
// carry unexpanded patterns.
func (c *Config) ScratchDir() string {
	return expandVars(c.Harness.ScratchDir)
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Validate checks the configuration for errors. Every problem is
// reported, not just the first.
func (c *Config) Validate() error {
	var errs []error

	if c.Limits.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_depth must be positive, got %d", c.Limits.MaxDepth))
	}
	if c.Limits.MaxNodes <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_nodes must be positive, got %d", c.Limits.MaxNodes))
	}
	if c.Limits.MaxInputBytes <= 0 {
		errs = append(errs, fmt.Errorf("limits.max_input_bytes must be positive, got %d", c.Limits.MaxInputBytes))
	}
	if c.ScratchDir() == "" {
		errs = append(errs, errors.New("harness.scratch_dir is required"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
