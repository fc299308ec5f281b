// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package abcgeom recognizes the geometry and material schemas of
// Alembic objects and exposes typed views over their properties.
//
// [Classify] maps an object header to exactly one [TypeTag] by testing
// the header's schemaObjTitle metadata against each known schema in a
// fixed priority order. It is a pure function of the header.
//
// A view ([PolyMeshSchema], [SubDSchema], [FaceSetSchema],
// [CurvesSchema], [XformSchema], [MaterialSchema]) is constructed only
// for an object whose tag matches; constructing one for any other
// object returns an error wrapping [ErrSchemaMismatch]. Views answer
// structural questions (property headers, sample counts, operation
// counts) from property headers alone and read at most the first
// sample of small scalar properties.
//
// Accessors that resolve a named property return an error wrapping
// [ErrPropertyResolution] when the property is declared but its
// structure does not match what the schema expects. Callers degrade
// such fields instead of aborting.
package abcgeom
