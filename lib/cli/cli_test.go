// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

type codedError struct{ code int }

func (e codedError) Error() string { return "coded" }
func (e codedError) ExitCode() int { return e.code }

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("boom"), ExitFailure},
		{"usage", Usage("unknown flag %q", "--x"), ExitUsage},
		{"wrapped usage", fmt.Errorf("parsing: %w", Usage("bad")), ExitUsage},
		{"silent", &ExitError{Code: 3}, 3},
		{"other coded error", fmt.Errorf("harness: %w", codedError{code: 1}), 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ExitCode(test.err); got != test.want {
				t.Errorf("ExitCode(%v) = %d, want %d", test.err, got, test.want)
			}
		})
	}
}

func TestExitErrorMessage(t *testing.T) {
	if got := Usage("max depth %d", -1).Error(); got != "max depth -1" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&ExitError{Code: 4}).Error(); got != "exit code 4" {
		t.Errorf("Error() = %q", got)
	}
	if !Silent(&ExitError{Code: 4}) {
		t.Error("ExitError without Err should be silent")
	}
	if Silent(Usage("bad")) {
		t.Error("usage error should not be silent")
	}
	if Silent(errors.New("boom")) {
		t.Error("plain error should not be silent")
	}
}

func TestNewLoggerHandlers(t *testing.T) {
	var text, json bytes.Buffer
	newLogger(&text, true, slog.LevelInfo).Info("inspected", "archive", "a.abc")
	newLogger(&json, false, slog.LevelInfo).Info("inspected", "archive", "a.abc")

	if !strings.Contains(text.String(), "msg=inspected archive=a.abc") {
		t.Errorf("terminal output is not text: %q", text.String())
	}
	if !strings.Contains(json.String(), `"msg":"inspected","archive":"a.abc"`) {
		t.Errorf("piped output is not JSON: %q", json.String())
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var output bytes.Buffer
	logger := newLogger(&output, false, slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(output.String(), "hidden") || !strings.Contains(output.String(), "shown") {
		t.Errorf("level not applied: %q", output.String())
	}
}
