// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package harness runs one fuzz input through the inspector.
//
// The inspector reads archives by path, so [Run] materializes the raw
// input bytes as a temporary file in a scratch directory, inspects it
// and removes it again. The file is named after a prefix of the
// input's BLAKE3 digest, which makes a leftover scratch file traceable
// to the input that produced it.
//
// Nothing about the archive itself is an error here: invalid,
// truncated, cyclic or over-deep inputs all produce an
// [inspect.Result]. The only error Run returns is an
// [*EnvironmentError], for scratch files that cannot be created,
// written or removed. Fuzz drivers treat that as fatal, since every
// later input would fail the same way.
package harness
