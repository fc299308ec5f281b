// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package abcgeom

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/abcinspect/lib/abc"
)

var (
	// ErrSchemaMismatch is wrapped when a view is requested for an
	// object that does not carry the view's schema, or whose schema
	// compound cannot be read.
	ErrSchemaMismatch = errors.New("object does not match schema")

	// ErrPropertyResolution is wrapped when a property the schema
	// knows about is missing or declared with the wrong structure.
	ErrPropertyResolution = errors.New("property does not resolve")
)

// Well-known property names.
const (
	PositionsName     = "P"
	NormalsName       = "N"
	UVName            = "uv"
	STName            = "st"
	ArbGeomParamsName = ".arbGeomParams"

	faceIndicesName = ".faceIndices"
	faceCountsName  = ".faceCounts"
	nVerticesName   = "nVertices"
	valsName        = ".vals"
	indicesName     = ".indices"
)

var (
	point3f  = abc.DataType{POD: abc.PODFloat32, Extent: 3}
	normal3f = abc.DataType{POD: abc.PODFloat32, Extent: 3}
	vector2f = abc.DataType{POD: abc.PODFloat32, Extent: 2}
)

// schemaBase is the part every view shares: the object and its
// schema compound.
type schemaBase struct {
	tag      TypeTag
	object   *abc.Object
	compound *abc.CompoundProperty
}

func newSchemaBase(object *abc.Object, tag TypeTag) (schemaBase, error) {
	if actual := Classify(object.Header()); actual != tag {
		return schemaBase{}, fmt.Errorf("%s is %s, not %s: %w", object.FullName(), actual, tag, ErrSchemaMismatch)
	}
	properties, err := object.Properties()
	if err != nil {
		return schemaBase{}, fmt.Errorf("%s: %w: %w", object.FullName(), ErrSchemaMismatch, err)
	}
	compound, err := properties.Compound(baseName(tag))
	if err != nil {
		return schemaBase{}, fmt.Errorf("%s: schema compound: %w: %w", object.FullName(), ErrSchemaMismatch, err)
	}
	return schemaBase{tag: tag, object: object, compound: compound}, nil
}

// Tag returns the schema the view was built for.
func (s schemaBase) Tag() TypeTag {
	return s.tag
}

// Object returns the object the view projects.
func (s schemaBase) Object() *abc.Object {
	return s.object
}

// Properties returns the schema compound.
func (s schemaBase) Properties() *abc.CompoundProperty {
	return s.compound
}

// NumProperties returns the number of properties declared in the
// schema compound.
func (s schemaBase) NumProperties() int {
	return s.compound.NumProperties()
}

// PropertyHeader returns the header of schema property index.
func (s schemaBase) PropertyHeader(index int) abc.PropertyHeader {
	return s.compound.PropertyHeader(index)
}

// ArbGeomParams reads the arbitrary geometry parameter compound.
func (s schemaBase) ArbGeomParams() (*abc.CompoundProperty, error) {
	params, err := s.compound.Compound(ArbGeomParamsName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPropertyResolution, err)
	}
	return params, nil
}

// positionSamples returns the sample count of a geometry schema: the
// largest sample count among P and the topology properties named by
// companions. P must be a float32 point array.
func (s schemaBase) positionSamples(companions ...string) (uint32, error) {
	header, found := s.compound.Header(PositionsName)
	if !found {
		return 0, fmt.Errorf("%q: %w", PositionsName, ErrPropertyResolution)
	}
	if !header.IsArray() || header.DataType != point3f {
		return 0, fmt.Errorf("%q is %s %s, want array %s: %w",
			PositionsName, header.Type, header.DataType, point3f, ErrPropertyResolution)
	}
	return maxSamples(s.compound, header.NumSamples, companions...), nil
}

// uvSamples resolves the texture coordinate parameter, preferring uv
// over st.
func (s schemaBase) uvSamples() (uint32, error) {
	name := UVName
	if _, found := s.compound.Header(name); !found {
		name = STName
	}
	return geomParamSamples(s.compound, name, vector2f)
}

// geomParamSamples resolves a geometry parameter stored either as an
// array of dataType or as an indexed compound whose .vals is such an
// array. For the indexed form the count covers .indices too.
func geomParamSamples(compound *abc.CompoundProperty, name string, dataType abc.DataType) (uint32, error) {
	header, found := compound.Header(name)
	if !found {
		return 0, fmt.Errorf("%q: %w", name, ErrPropertyResolution)
	}
	switch header.Type {
	case abc.PropertyArray:
		if header.DataType != dataType {
			return 0, fmt.Errorf("%q is %s, want %s: %w", name, header.DataType, dataType, ErrPropertyResolution)
		}
		return header.NumSamples, nil
	case abc.PropertyCompound:
		indexed, err := compound.Compound(name)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrPropertyResolution, err)
		}
		values, found := indexed.Header(valsName)
		if !found || !values.IsArray() || values.DataType != dataType {
			return 0, fmt.Errorf("%q: indexed parameter without array %s %s: %w",
				name, dataType, valsName, ErrPropertyResolution)
		}
		return maxSamples(indexed, values.NumSamples, indicesName), nil
	default:
		return 0, fmt.Errorf("%q is %s: %w", name, header.Type, ErrPropertyResolution)
	}
}

// maxSamples returns the largest of count and the sample counts of the
// named non-compound properties that compound declares.
func maxSamples(compound *abc.CompoundProperty, count uint32, names ...string) uint32 {
	for _, name := range names {
		header, found := compound.Header(name)
		if found && !header.IsCompound() {
			count = max(count, header.NumSamples)
		}
	}
	return count
}
