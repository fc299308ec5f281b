// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package abcgeom

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/bureau-foundation/abcinspect/lib/abc"
)

// PolyMeshSchema is the view of a polygon mesh.
type PolyMeshSchema struct {
	schemaBase
}

// NewPolyMeshSchema builds the view of a PolyMesh object.
func NewPolyMeshSchema(object *abc.Object) (*PolyMeshSchema, error) {
	base, err := newSchemaBase(object, PolyMesh)
	if err != nil {
		return nil, err
	}
	return &PolyMeshSchema{base}, nil
}

// NumSamples returns the mesh sample count: the largest of P,
// .faceIndices and .faceCounts.
func (s *PolyMeshSchema) NumSamples() (uint32, error) {
	return s.positionSamples(faceIndicesName, faceCountsName)
}

// NormalsSamples returns the sample count of the N parameter.
func (s *PolyMeshSchema) NormalsSamples() (uint32, error) {
	return geomParamSamples(s.compound, NormalsName, normal3f)
}

// UVsSamples returns the sample count of the uv (or st) parameter.
func (s *PolyMeshSchema) UVsSamples() (uint32, error) {
	return s.uvSamples()
}

// SubDSchema is the view of a subdivision surface.
type SubDSchema struct {
	schemaBase
}

// NewSubDSchema builds the view of a SubD object.
func NewSubDSchema(object *abc.Object) (*SubDSchema, error) {
	base, err := newSchemaBase(object, SubD)
	if err != nil {
		return nil, err
	}
	return &SubDSchema{base}, nil
}

// NumSamples returns the surface sample count: the largest of P,
// .faceIndices and .faceCounts.
func (s *SubDSchema) NumSamples() (uint32, error) {
	return s.positionSamples(faceIndicesName, faceCountsName)
}

// UVsSamples returns the sample count of the uv (or st) parameter.
func (s *SubDSchema) UVsSamples() (uint32, error) {
	return s.uvSamples()
}

// maxSchemeBytes bounds how much of the scheme sample is read.
const maxSchemeBytes = 256

// Scheme returns the first sample of .scheme, such as
// "catmull-clark".
func (s *SubDSchema) Scheme() (string, error) {
	raw, err := s.firstSample(".scheme", abc.DataType{POD: abc.PODString, Extent: 1}, maxSchemeBytes)
	if err != nil {
		return "", err
	}
	if end := bytes.IndexByte(raw, 0); end >= 0 {
		raw = raw[:end]
	}
	return string(raw), nil
}

// FaceVaryingInterpolateBoundary returns the first sample of
// .faceVaryingInterpolateBoundary.
func (s *SubDSchema) FaceVaryingInterpolateBoundary() (int32, error) {
	return s.firstInt32(".faceVaryingInterpolateBoundary")
}

// FaceVaryingPropagateCorners returns the first sample of
// .faceVaryingPropagateCorners.
func (s *SubDSchema) FaceVaryingPropagateCorners() (int32, error) {
	return s.firstInt32(".faceVaryingPropagateCorners")
}

// InterpolateBoundary returns the first sample of .interpolateBoundary.
func (s *SubDSchema) InterpolateBoundary() (int32, error) {
	return s.firstInt32(".interpolateBoundary")
}

func (s *SubDSchema) firstInt32(name string) (int32, error) {
	raw, err := s.firstSample(name, abc.DataType{POD: abc.PODInt32, Extent: 1}, 4)
	if err != nil {
		return 0, err
	}
	if len(raw) != 4 {
		return 0, fmt.Errorf("%q: sample is %d bytes, want 4: %w", name, len(raw), ErrPropertyResolution)
	}
	return int32(binary.LittleEndian.Uint32(raw)), nil
}

// firstSample reads at most limit bytes of sample 0 of the scalar
// property name, which must have dataType.
func (s *SubDSchema) firstSample(name string, dataType abc.DataType, limit int) ([]byte, error) {
	scalar, err := s.compound.Scalar(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPropertyResolution, err)
	}
	header := scalar.Header()
	if header.DataType != dataType {
		return nil, fmt.Errorf("%q is %s, want %s: %w", name, header.DataType, dataType, ErrPropertyResolution)
	}
	if header.NumSamples == 0 {
		return nil, fmt.Errorf("%q has no samples: %w", name, ErrPropertyResolution)
	}
	raw, err := scalar.SampleBytes(0, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPropertyResolution, err)
	}
	return raw, nil
}

// CurvesSchema is the view of a curves object.
type CurvesSchema struct {
	schemaBase
}

// NewCurvesSchema builds the view of a Curves object.
func NewCurvesSchema(object *abc.Object) (*CurvesSchema, error) {
	base, err := newSchemaBase(object, Curves)
	if err != nil {
		return nil, err
	}
	return &CurvesSchema{base}, nil
}

// NumSamples returns the curves sample count: the largest of P and
// nVertices.
func (s *CurvesSchema) NumSamples() (uint32, error) {
	return s.positionSamples(nVerticesName)
}

// NormalsSamples returns the sample count of the N parameter.
func (s *CurvesSchema) NormalsSamples() (uint32, error) {
	return geomParamSamples(s.compound, NormalsName, normal3f)
}

// UVsSamples returns the sample count of the uv (or st) parameter.
func (s *CurvesSchema) UVsSamples() (uint32, error) {
	return s.uvSamples()
}

// FaceSetSchema is the view of a face set.
type FaceSetSchema struct {
	schemaBase
}

// NewFaceSetSchema builds the view of a FaceSet object.
func NewFaceSetSchema(object *abc.Object) (*FaceSetSchema, error) {
	base, err := newSchemaBase(object, FaceSet)
	if err != nil {
		return nil, err
	}
	return &FaceSetSchema{base}, nil
}

// NumSamples returns the sample count of .faces.
func (s *FaceSetSchema) NumSamples() (uint32, error) {
	header, found := s.compound.Header(".faces")
	if !found || header.IsCompound() {
		return 0, fmt.Errorf("%q: %w", ".faces", ErrPropertyResolution)
	}
	return header.NumSamples, nil
}

// XformSchema is the view of a transform.
type XformSchema struct {
	schemaBase
}

// NewXformSchema builds the view of an Xform object.
func NewXformSchema(object *abc.Object) (*XformSchema, error) {
	base, err := newSchemaBase(object, Xform)
	if err != nil {
		return nil, err
	}
	return &XformSchema{base}, nil
}

// NumSamples returns the largest sample count of .vals and .inherits.
// A transform declaring neither is static and has no samples.
func (s *XformSchema) NumSamples() (uint32, error) {
	return maxSamples(s.compound, 0, ".vals", ".inherits"), nil
}

// NumOps returns the number of transform operations: the extent of
// the .ops scalar. A transform without .ops has none.
func (s *XformSchema) NumOps() (int, error) {
	header, found := s.compound.Header(".ops")
	if !found {
		return 0, nil
	}
	if !header.IsScalar() || header.DataType.POD != abc.PODUint8 {
		return 0, fmt.Errorf("%q is %s %s, want scalar uint8_t: %w",
			".ops", header.Type, header.DataType, ErrPropertyResolution)
	}
	return int(header.DataType.Extent), nil
}
