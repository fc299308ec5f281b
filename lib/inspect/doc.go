// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package inspect traverses an Alembic archive and writes a structural
// report of every object and its schema properties.
//
// [Inspect] opens one archive, writes a header line stating whether it
// is valid, and for a valid archive walks the object tree depth-first
// in declaration order. Each object is classified with
// [abcgeom.Classify] and summarized by the handler for its type: the
// property names of its schema, sample counts for the well-known
// geometry parameters (P, N, uv, st), the names inside
// .arbGeomParams, and the type-specific extras (subdivision settings,
// transform operations, face set samples, material targets).
//
// The walker treats the archive as adversarial input:
//
//   - Traversal uses an explicit stack, so memory grows with tree depth
//     rather than goroutine stack, and both depth and node count are
//     bounded by [Options]. Exceeding a bound stops the walk and marks
//     the [Result] as aborted, which is distinct from a parse failure.
//   - An object group reached a second time is reported as a cycle and
//     not descended into.
//   - Errors reading one object, and panics inside one summarizer, are
//     recorded against that object; its siblings and the rest of the
//     tree are still visited.
//   - Properties that are declared but structurally inconsistent
//     degrade to "absent" in the report.
//
// Inspect never returns an error and never panics: a malformed archive
// is a reportable result, not a program fault. The report is a pure
// function of the file's bytes, so two runs over the same input produce
// identical output.
package inspect
