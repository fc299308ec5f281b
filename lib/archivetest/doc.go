// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package archivetest builds Ogawa-backed Alembic archives in memory
// for tests and fuzz seeds.
//
// [Archive] describes an object tree declaratively and [Archive.Bytes]
// lays it out in the format lib/abc reads. Schema helpers such as
// [PolyMesh] and [Xform] attach the metadata and schema compound each
// geometry type is recognized by. [Container] exposes the raw Ogawa
// writer for tests that need layouts the declarative builder refuses
// to produce, such as [CyclicArchive].
//
// This package writes fixtures only. It is not a general archive
// writer: it stores no sample payloads for array properties and no
// content hashes.
package archivetest
