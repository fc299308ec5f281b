// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// abc-fuzz runs one fuzz input through the Alembic inspector.
//
// The raw input is read from the file named on the command line, or
// from stdin, written to a scratch file, inspected and removed. The
// report is discarded unless --verbose is given. Whatever the input
// contains, the exit status is 0; only scratch file failures, which
// would fail every later input too, exit with status 1. A crash or
// hang therefore always points at the inspector.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/abcinspect/lib/cli"
	"github.com/bureau-foundation/abcinspect/lib/harness"
	"github.com/bureau-foundation/abcinspect/lib/version"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !cli.Silent(err) {
			fmt.Fprintf(os.Stderr, "abc-fuzz: %v\n", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var configFlags cli.ConfigFlags
	var scratchDir string
	var verbose, showVersion bool

	flagSet := pflag.NewFlagSet("abc-fuzz", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	configFlags.AddFlags(flagSet)
	flagSet.StringVar(&scratchDir, "scratch-dir", "", "directory for the scratch file (overrides harness.scratch_dir)")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "print the inspection report")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage:\n  abc-fuzz [flags] [input]\n\nReads the input from stdin when no file is given.\n\nFlags:\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return cli.Usage("%w", err)
	}
	if showVersion {
		fmt.Fprintln(stdout, version.Full("abc-fuzz"))
		return nil
	}
	if flagSet.NArg() > 1 {
		return cli.Usage("at most one input file, got %d", flagSet.NArg())
	}

	cfg, level, err := configFlags.Resolve()
	if err != nil {
		return err
	}
	if scratchDir == "" {
		scratchDir = cfg.ScratchDir()
	}
	logger := cli.NewCommandLogger(level).With("command", "abc-fuzz")

	data, err := readInput(flagSet.Arg(0), stdin)
	if err != nil {
		return err
	}

	options := harness.Options{ScratchDir: scratchDir, Inspect: cli.InspectOptions(cfg)}
	options.Inspect.Logger = logger
	if verbose {
		options.Inspect.Output = stdout
	}

	result, err := harness.Run(data, options)
	if err != nil {
		return err
	}
	logger.Info("inspected input",
		"digest", result.Digest,
		"bytes", len(data),
		"valid", result.Valid,
		"nodes", len(result.Nodes),
		"failures", len(result.Failures),
		"aborted", result.Aborted,
	)
	return nil
}

// readInput returns the contents of path, or all of stdin when path is
// empty or "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}
