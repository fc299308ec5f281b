// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates the diagnostic logger for a command. When
// stderr is a terminal it uses slog.TextHandler for people; when it is
// piped or redirected (corpus runners, CI) it uses slog.JSONHandler so
// failures can be collected mechanically.
//
// The text report is written to stdout and never goes through this
// logger.
func NewCommandLogger(level slog.Level) *slog.Logger {
	return newLogger(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), level)
}

func newLogger(writer io.Writer, terminal bool, level slog.Level) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	if terminal {
		return slog.New(slog.NewTextHandler(writer, options))
	}
	return slog.New(slog.NewJSONHandler(writer, options))
}
