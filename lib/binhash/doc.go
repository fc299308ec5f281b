// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash provides BLAKE3 content hashing for archive inputs.
//
// abcinspect identifies every inspected input by its digest: the fuzz
// harness names scratch files after it so a crashing input can be
// matched to the file it was materialized as, and inspection results
// carry it so corpus runs can be joined against the corpus index.
// Digests use BLAKE3 keyed mode with a fixed domain key, so they never
// collide with plain BLAKE3 sums of the same bytes computed by other
// tools.
//
// The API surface:
//
//   - [HashBytes] -- digests an in-memory buffer
//   - [HashFile] -- streams a file through the hash, returning a
//     [32]byte digest with constant memory usage regardless of file size
//   - [FormatDigest] -- converts a [32]byte digest to its canonical
//     hex-encoded string representation, used in results, scratch file
//     names and log output
//   - [ParseDigest] -- parses a hex-encoded digest string back to a
//     [32]byte array, validating length and encoding
//
// This package has no dependencies on other abcinspect packages.
package binhash
