// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// abc-inspect prints a structural report of Alembic archives.
//
// Every archive named on the command line is opened, classified and
// walked; the text report goes to stdout. Invalid archives are a
// normal outcome: the report says so and the exit status stays 0.
// Usage and configuration errors exit with status 2.
//
// With --result, one CBOR record per archive is appended to a file as
// a CBOR sequence. --dump prints such a file in diagnostic notation.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/abcinspect/lib/binhash"
	"github.com/bureau-foundation/abcinspect/lib/cli"
	"github.com/bureau-foundation/abcinspect/lib/codec"
	"github.com/bureau-foundation/abcinspect/lib/inspect"
	"github.com/bureau-foundation/abcinspect/lib/version"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !cli.Silent(err) {
			fmt.Fprintf(os.Stderr, "abc-inspect: %v\n", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var configFlags cli.ConfigFlags
	var resultPath, dumpPath string
	var quiet, showVersion bool

	flagSet := pflag.NewFlagSet("abc-inspect", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	configFlags.AddFlags(flagSet)
	flagSet.StringVar(&resultPath, "result", "", "write one CBOR result record per archive to this file")
	flagSet.StringVar(&dumpPath, "dump", "", "print the records of a --result file in diagnostic notation and exit")
	flagSet.BoolVarP(&quiet, "quiet", "q", false, "do not print the text report")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	flagSet.Usage = func() { printHelp(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return cli.Usage("%w", err)
	}

	if showVersion {
		fmt.Fprintln(stdout, version.Full("abc-inspect"))
		return nil
	}
	if dumpPath != "" {
		return dump(dumpPath, stdout)
	}

	paths := flagSet.Args()
	if len(paths) == 0 {
		return cli.Usage("no archives given (see --help)")
	}

	cfg, level, err := configFlags.Resolve()
	if err != nil {
		return err
	}
	logger := cli.NewCommandLogger(level).With("command", "abc-inspect")

	options := cli.InspectOptions(cfg)
	options.Logger = logger
	options.Output = stdout
	if quiet {
		options.Output = io.Discard
	}

	var records *recordWriter
	if resultPath != "" {
		records, err = createRecordWriter(resultPath)
		if err != nil {
			return err
		}
	}

	for _, path := range paths {
		// The digest is taken before inspecting so it describes the
		// bytes the inspector read, not whatever is on disk afterwards.
		var digest string
		if records != nil {
			digest = fileDigest(path, logger)
		}
		result := inspectArchive(path, options)
		result.Digest = digest
		logger.Info("inspected archive",
			"archive", path,
			"valid", result.Valid,
			"nodes", len(result.Nodes),
			"failures", len(result.Failures),
			"aborted", result.Aborted != "",
		)
		if records == nil {
			continue
		}
		if err := records.write(path, result); err != nil {
			records.close()
			return err
		}
	}

	if records != nil {
		return records.close()
	}
	return nil
}

// recordWriter appends result records to a CBOR sequence file.
type recordWriter struct {
	path    string
	file    *os.File
	encoder *codec.Encoder
}

func createRecordWriter(path string) (*recordWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating result file: %w", err)
	}
	return &recordWriter{path: path, file: file, encoder: codec.NewEncoder(file)}, nil
}

// inspectArchive is inspect.Inspect; tests replace it to observe the
// order of hashing and inspection.
var inspectArchive = inspect.Inspect

// fileDigest returns the hex digest of the file at path, or "" when it
// cannot be read.
func fileDigest(path string, logger *slog.Logger) string {
	digest, err := binhash.HashFile(path)
	if err != nil {
		logger.Debug("archive not hashed", "archive", path, "error", err)
		return ""
	}
	return binhash.FormatDigest(digest)
}

func (w *recordWriter) write(archivePath string, result inspect.Result) error {
	if err := w.encoder.Encode(result); err != nil {
		return fmt.Errorf("writing result for %s to %s: %w", archivePath, w.path, err)
	}
	return nil
}

func (w *recordWriter) close() error {
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("closing result file: %w", err)
	}
	return nil
}

// dump prints every record of a result file, one per line.
func dump(path string, stdout io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading result file: %w", err)
	}
	notations, err := codec.DiagnoseSequence(data)
	for _, notation := range notations {
		fmt.Fprintln(stdout, notation)
	}
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

func printHelp(stderr io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(stderr, `abc-inspect prints the object tree of Alembic archives.

For every archive the report lists each object's name, full path and
metadata, followed by a summary of its schema: property names, sample
counts of positions, normals and texture coordinates, arbitrary
geometry parameters, and the type-specific settings of subdivision
surfaces, transforms, face sets and materials. Archives wrapped in a
zstd or lz4 frame are decompressed first.

Usage:
  abc-inspect [flags] <archive>...
  abc-inspect --dump <results.cbor>

Examples:
  # Inspect two archives
  abc-inspect scene.abc props.abc

  # Record results for a corpus without printing reports
  abc-inspect --quiet --result results.cbor corpus/*.abc

Flags:
`)
	flagSet.SetOutput(stderr)
	flagSet.PrintDefaults()
}
