// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package harness

import (
	"errors"
	"fmt"
	"os"

	"github.com/bureau-foundation/abcinspect/lib/binhash"
	"github.com/bureau-foundation/abcinspect/lib/inspect"
)

// digestPrefixLength is the number of hex digits of the input digest
// used in scratch file names.
const digestPrefixLength = 16

// Options configures Run.
type Options struct {
	// ScratchDir is the directory inputs are written to. Empty means
	// os.TempDir().
	ScratchDir string

	// Inspect is passed to inspect.Inspect. Its Logger is also used for
	// the harness's own diagnostics.
	Inspect inspect.Options
}

// EnvironmentError reports a failure of the environment the harness
// runs in rather than of the input.
type EnvironmentError struct {
	// Op is the scratch file operation that failed.
	Op  string
	Err error
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("harness environment: %s: %v", e.Op, e.Err)
}

func (e *EnvironmentError) Unwrap() error {
	return e.Err
}

// ExitCode makes a fuzz driver exit with status 1.
func (e *EnvironmentError) ExitCode() int {
	return 1
}

// Run writes data to a scratch file, inspects it and removes the file.
// The returned Result carries the input digest. A non-nil error is
// always an *EnvironmentError; when removal fails the Result of the
// completed inspection is returned with it.
func Run(data []byte, options Options) (inspect.Result, error) {
	scratchDir := options.ScratchDir
	if scratchDir == "" {
		scratchDir = os.TempDir()
	}
	digest := binhash.FormatDigest(binhash.HashBytes(data))

	path, err := materialize(scratchDir, "abc-"+digest[:digestPrefixLength]+"-*.abc", data)
	if err != nil {
		return inspect.Result{}, err
	}

	result := inspect.Inspect(path, options.Inspect)
	result.Digest = digest

	if err := os.Remove(path); err != nil {
		return result, &EnvironmentError{Op: "removing scratch file", Err: err}
	}
	return result, nil
}

// materialize writes data to a new file in dir whose name matches
// pattern and returns its path. On failure no file is left behind.
func materialize(dir, pattern string, data []byte) (string, error) {
	file, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", &EnvironmentError{Op: "creating scratch file", Err: err}
	}
	path := file.Name()

	_, writeErr := file.Write(data)
	closeErr := file.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		os.Remove(path)
		return "", &EnvironmentError{Op: "writing scratch file", Err: err}
	}
	return path, nil
}
