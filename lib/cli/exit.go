// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// Exit codes shared by the commands.
const (
	// ExitFailure is used for unexpected errors.
	ExitFailure = 1

	// ExitUsage is used for bad flags, arguments or configuration.
	ExitUsage = 2
)

// ExitError signals a non-zero exit code. Err, when set, is printed by
// main; a nil Err means the command already wrote its own output.
type ExitError struct {
	Code int
	Err  error
}

// Usage wraps a usage or configuration error so the command exits
// with ExitUsage.
func Usage(format string, args ...any) *ExitError {
	return &ExitError{Code: ExitUsage, Err: fmt.Errorf(format, args...)}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitCode returns the exit code main should use for err: 0 for nil,
// the code of any error in the chain implementing ExitCode() int, or
// ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return ExitFailure
}

// Silent reports whether err carries no message of its own, so main
// should exit without printing anything.
func Silent(err error) bool {
	var exit *ExitError
	return errors.As(err, &exit) && exit.Err == nil
}
