// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/abcinspect/lib/config"
	"github.com/bureau-foundation/abcinspect/lib/inspect"
)

// ConfigFlags are the flags both commands use to locate configuration
// and override it.
type ConfigFlags struct {
	Path     string
	MaxDepth int
	MaxNodes int
	LogLevel string

	flagSet *pflag.FlagSet
}

// AddFlags registers the configuration flags on flagSet.
func (f *ConfigFlags) AddFlags(flagSet *pflag.FlagSet) {
	f.flagSet = flagSet
	flagSet.StringVar(&f.Path, "config", "", "configuration file, YAML or JSONC (default: $"+config.EnvironmentVariable+")")
	flagSet.IntVar(&f.MaxDepth, "max-depth", 0, "deepest object to visit (overrides limits.max_depth)")
	flagSet.IntVar(&f.MaxNodes, "max-nodes", 0, "objects to visit or reject before aborting (overrides limits.max_nodes)")
	flagSet.StringVar(&f.LogLevel, "log-level", "", "debug, info, warn or error (overrides log.level)")
}

// Resolve loads the configuration and applies the flags that were set
// on the command line. Without --config or ABCINSPECT_CONFIG it starts
// from config.Default. It also returns the validated log level. Every
// failure is a usage error.
func (f *ConfigFlags) Resolve() (*config.Config, slog.Level, error) {
	var cfg *config.Config
	var err error
	switch {
	case f.Path != "":
		cfg, err = config.LoadFile(f.Path)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, 0, Usage("%w", err)
	}

	if f.changed("max-depth") {
		cfg.Limits.MaxDepth = f.MaxDepth
	}
	if f.changed("max-nodes") {
		cfg.Limits.MaxNodes = f.MaxNodes
	}
	if f.changed("log-level") {
		cfg.Log.Level = f.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, 0, Usage("invalid configuration: %w", err)
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, 0, Usage("invalid configuration: %w", err)
	}
	return cfg, level, nil
}

func (f *ConfigFlags) changed(name string) bool {
	return f.flagSet != nil && f.flagSet.Changed(name)
}

// InspectOptions converts the limits of cfg to inspector options.
func InspectOptions(cfg *config.Config) inspect.Options {
	return inspect.Options{
		MaxDepth:      cfg.Limits.MaxDepth,
		MaxNodes:      cfg.Limits.MaxNodes,
		MaxInputBytes: cfg.Limits.MaxInputBytes,
	}
}
