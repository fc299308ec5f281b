// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for abcinspect
// packages.
//
// [WriteFile] materializes fixture bytes under t.TempDir() and returns
// the path, which is how every archive-level test hands input to the
// reader. [MissingDir] returns a directory path that does not exist,
// for exercising scratch-file failures without depending on file
// permissions (tests often run as root, which ignores them).
//
// [RequireNoPanic] runs a function and fails the test with the
// recovered value and stack if it panics. [RequireLines] asserts that
// a line-oriented report contains the expected lines in order.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no abcinspect-internal dependencies.
package testutil
