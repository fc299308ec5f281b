// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli holds the pieces shared by the abc-inspect and abc-fuzz
// commands: configuration flags, the diagnostic logger and exit code
// signalling.
//
// [ConfigFlags] registers --config, --max-depth, --max-nodes and
// --log-level and resolves them against lib/config: flags that were
// set override the file, and the file overrides the defaults.
//
// Commands are written as a run function returning an error. main
// prints unexpected errors and exits with the code carried by any
// error implementing ExitCode() int (see [ExitError] and
// harness.EnvironmentError), or 1 otherwise.
package cli
