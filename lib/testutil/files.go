// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes data to name inside a fresh t.TempDir() and returns
// the absolute path. The directory is removed when the test completes.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// MissingDir returns a path inside t.TempDir() that does not exist.
// Creating files under it fails regardless of the caller's privileges.
func MissingDir(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "missing")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("%s unexpectedly exists: %v", path, err)
	}
	return path
}
