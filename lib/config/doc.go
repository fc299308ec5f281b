// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the configuration of the abc-inspect and
// abc-fuzz commands.
//
// Configuration comes from a single file named by the --config flag
// (via [LoadFile]) or the ABCINSPECT_CONFIG environment variable (via
// [Load]). There is no discovery: without either, commands run on
// [Default]. Loaded files are merged onto Default, so a file only
// needs the keys it changes.
//
// YAML is the primary format. Files ending in .json or .jsonc are
// accepted too and may contain comments and trailing commas. Unknown
// keys are rejected in both.
//
// The scratch directory supports ${VAR} and ${VAR:-default}
// expansion, so the default follows $TMPDIR.
//
// This package depends on no other abcinspect packages.
package config
