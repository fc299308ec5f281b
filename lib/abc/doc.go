// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package abc reads the object and property structure of Alembic
// archives stored in the Ogawa container format (see lib/ogawa).
//
// It exposes only what structural inspection needs: object headers
// (name, full name, metadata), the ordered child list, and property
// headers (name, kind, plain-old-data type, extent, sample count).
// Sample payloads are never decoded, with one narrow exception:
// [ScalarProperty.SampleBytes] reads a bounded prefix of one stored
// scalar sample so callers can report small enum and string values.
//
// # Opening archives
//
// [Open] never returns an error. Anything that prevents the archive
// from being read, from a missing file to a corrupt header, yields an
// [Archive] whose [Archive.Valid] is false and whose [Archive.Err]
// explains why. Only a valid archive has a meaningful top object.
//
// Plain files are memory-mapped read-only. Inputs that start with a
// zstd or lz4 frame header are decompressed into memory first, up to
// [Options.MaxInputBytes], so compressed fuzz corpora can be inspected
// without unpacking them.
//
// # Layout
//
// The archive root group holds, in order: the file version, the
// library version, the top object group, the archive metadata, the
// time samplings and (optionally) the indexed metadata table.
//
// An object group holds its top compound property group, then one group
// per child object, then a data block with the child object headers.
// A compound property group holds one group per sub-property followed
// by a data block with the property headers. Headers are decoded
// eagerly when their parent is read; child groups are read lazily.
//
// Every decoding failure wraps [ErrMalformed] (or lib/ogawa's
// ErrMalformed when the container itself is broken).
package abc
