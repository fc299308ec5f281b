// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"fmt"
	"runtime/debug"

	"github.com/bureau-foundation/abcinspect/lib/abc"
)

// Inspect opens the archive at path, writes its report to
// options.Output and returns the structured record of the traversal.
// It always returns: an unreadable or malformed archive yields a
// Result with Valid false, and a panic escaping the walk is recorded
// as a FailureUnexpected.
func Inspect(path string, options Options) (result Result) {
	options = options.withDefaults()
	logger := options.Logger.With("archive", path)
	out := &report{writer: options.Output}
	result.Path = path

	defer func() {
		if recovered := recover(); recovered != nil {
			logger.Error("inspection panicked",
				"panic", recovered,
				"stack", string(debug.Stack()),
			)
			err := fmt.Errorf("unexpected panic: %v", recovered)
			result.Failures = append(result.Failures, Failure{
				Path:    path,
				Kind:    FailureUnexpected,
				Message: err.Error(),
			})
			out.line("error: %s: %v", path, err)
		}
		if out.err != nil {
			logger.Warn("writing report failed", "error", out.err)
		}
	}()

	archive := abc.Open(path, abc.Options{MaxInputBytes: options.MaxInputBytes})
	defer func() {
		if err := archive.Close(); err != nil {
			logger.Warn("closing archive failed", "error", err)
		}
	}()

	if !archive.Valid() {
		result.InvalidReason = archive.Err().Error()
		out.line("file %s (invalid):", path)
		logger.Info("archive is invalid", "reason", result.InvalidReason)
		return result
	}

	result.Valid = true
	result.Name = archive.Name()
	out.line("file %s:", path)
	out.line("file name: %s", archive.Name())

	options.Logger = logger
	newWalker(options, out, &result).walk(archive.Top())

	logger.Debug("inspection finished",
		"nodes", len(result.Nodes),
		"failures", len(result.Failures),
		"aborted", result.Aborted != "",
	)
	return result
}
