// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the
// abcinspect binaries.
//
// Four package-level variables are injected at build time via
// -ldflags -X:
//
//   - [GitCommit] -- short git SHA of the build
//   - [GitDirty] -- "true" if there were uncommitted changes
//   - [BuildTime] -- UTC timestamp of the build
//   - [Version] -- semantic version string (set manually for releases)
//
// Binaries built by the go command from a git checkout also carry VCS
// settings; when GitCommit was not injected, the commit, dirty flag
// and commit time are taken from there instead. Otherwise they default
// to "unknown" / "0.1.0-dev", as in test runs.
//
// [Info] formats them for --version; [Full] adds the Go version and
// platform.
//
//	go build -ldflags "-X github.com/bureau-foundation/abcinspect/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/...
package version
