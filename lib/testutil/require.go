// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// RequireNoPanic calls fn and fails the test if it panics.
//
//	testutil.RequireNoPanic(t, func() { inspect.Inspect(path, options) }, "inspecting %s", path)
func RequireNoPanic(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, fn func(), msgAndArgs ...any) {
	t.Helper()
	var recovered any
	var stack []byte
	func() {
		defer func() {
			if recovered = recover(); recovered != nil {
				stack = debug.Stack()
			}
		}()
		fn()
	}()
	if recovered != nil {
		t.Fatalf("panic: %v: %s\n%s", recovered, formatMessage(msgAndArgs), stack)
	}
}

// RequireLines fails the test unless every line of want appears in
// report, in order. Other lines may appear between them.
//
//	testutil.RequireLines(t, output.String(), "Node name: ABC", "Object type ignored.")
func RequireLines(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, report string, want ...string) {
	t.Helper()
	lines := strings.Split(report, "\n")
	next := 0
	for _, expected := range want {
		found := false
		for next < len(lines) {
			line := lines[next]
			next++
			if line == expected {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("report is missing line %q (in order)\nreport:\n%s", expected, report)
		}
	}
}

// formatMessage formats optional message arguments into a string.
// Accepts either a single string or a format string followed by args.
func formatMessage(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return "(no message)"
	}
	if len(msgAndArgs) == 1 {
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%v", msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs)
}
