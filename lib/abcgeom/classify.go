// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package abcgeom

import (
	"fmt"

	"github.com/bureau-foundation/abcinspect/lib/abc"
)

// TypeTag is the recognized schema of an object.
type TypeTag uint8

const (
	Unrecognized TypeTag = iota
	PolyMesh
	SubD
	FaceSet
	Curves
	Xform
	Material
)

// String returns the tag name.
func (tag TypeTag) String() string {
	switch tag {
	case Unrecognized:
		return "unrecognized"
	case PolyMesh:
		return "polymesh"
	case SubD:
		return "subd"
	case FaceSet:
		return "faceset"
	case Curves:
		return "curves"
	case Xform:
		return "xform"
	case Material:
		return "material"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(tag))
	}
}

// MarshalText writes the tag name, so records carry "polymesh" rather
// than a number.
func (tag TypeTag) MarshalText() ([]byte, error) {
	if tag > Material {
		return nil, fmt.Errorf("unknown type tag %d", uint8(tag))
	}
	return []byte(tag.String()), nil
}

// UnmarshalText parses a tag name written by MarshalText.
func (tag *TypeTag) UnmarshalText(text []byte) error {
	for candidate := Unrecognized; candidate <= Material; candidate++ {
		if candidate.String() == string(text) {
			*tag = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown type tag %q", text)
}

// schemaTitleKey is the object metadata key naming the schema and the
// compound its properties are stored in.
const schemaTitleKey = "schemaObjTitle"

// signature is one entry of the dispatch table.
type signature struct {
	tag    TypeTag
	schema string
	base   string
}

func (s signature) title() string {
	return s.schema + ":" + s.base
}

// signatures is the dispatch table in priority order.
var signatures = []signature{
	{PolyMesh, "AbcGeom_PolyMesh_v1", ".geom"},
	{SubD, "AbcGeom_SubD_v1", ".geom"},
	{FaceSet, "AbcGeom_FaceSet_v1", ".faceset"},
	{Curves, "AbcGeom_Curve_v2", ".geom"},
	{Xform, "AbcGeom_Xform_v3", ".xform"},
	{Material, "AbcMaterial_Material_v1", ".material"},
}

// Classify returns the tag of the first schema, in priority order,
// whose title the header carries. Headers matching no schema are
// Unrecognized, including the top object.
func Classify(header abc.ObjectHeader) TypeTag {
	title := header.MetaData.Get(schemaTitleKey)
	if title == "" {
		return Unrecognized
	}
	for _, candidate := range signatures {
		if title == candidate.title() {
			return candidate.tag
		}
	}
	return Unrecognized
}

// baseName returns the name of the compound holding tag's properties.
func baseName(tag TypeTag) string {
	for _, candidate := range signatures {
		if candidate.tag == tag {
			return candidate.base
		}
	}
	return ""
}
