// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archivetest

import (
	"encoding/binary"
	"fmt"

	"github.com/bureau-foundation/abcinspect/lib/abc"
)

// Schema identifiers and the name of the compound each schema stores
// its properties in.
const (
	PolyMeshSchema = "AbcGeom_PolyMesh_v1"
	SubDSchema     = "AbcGeom_SubD_v1"
	FaceSetSchema  = "AbcGeom_FaceSet_v1"
	CurvesSchema   = "AbcGeom_Curve_v2"
	XformSchema    = "AbcGeom_Xform_v3"
	MaterialSchema = "AbcMaterial_Material_v1"

	GeomBase     = ".geom"
	FaceSetBase  = ".faceset"
	XformBase    = ".xform"
	MaterialBase = ".material"
)

// Common data types.
var (
	P3f = abc.DataType{POD: abc.PODFloat32, Extent: 3}
	N3f = abc.DataType{POD: abc.PODFloat32, Extent: 3}
	V2f = abc.DataType{POD: abc.PODFloat32, Extent: 2}
	C3f = abc.DataType{POD: abc.PODFloat32, Extent: 3}

	Int32  = abc.DataType{POD: abc.PODInt32, Extent: 1}
	String = abc.DataType{POD: abc.PODString, Extent: 1}
	Bool   = abc.DataType{POD: abc.PODBool, Extent: 1}
)

// SchemaMetaData returns the serialized object metadata that tags an
// object with schema, stored under the compound called base.
func SchemaMetaData(schema, base string) string {
	return fmt.Sprintf("schema=%s;schemaObjTitle=%s:%s", schema, schema, base)
}

// SchemaObject returns an object tagged with schema whose properties
// live in the compound called base.
func SchemaObject(name, schema, base string, properties ...Property) Object {
	return Object{
		Name:     name,
		MetaData: SchemaMetaData(schema, base),
		Properties: []Property{{
			Name:       base,
			Type:       abc.PropertyCompound,
			MetaData:   "schema=" + schema,
			Properties: properties,
		}},
	}
}

// PolyMesh returns a polygon mesh object with the given .geom
// properties.
func PolyMesh(name string, geom ...Property) Object {
	return SchemaObject(name, PolyMeshSchema, GeomBase, geom...)
}

// SubD returns a subdivision surface object with the given .geom
// properties.
func SubD(name string, geom ...Property) Object {
	return SchemaObject(name, SubDSchema, GeomBase, geom...)
}

// FaceSet returns a face set object with the given .faceset
// properties.
func FaceSet(name string, properties ...Property) Object {
	return SchemaObject(name, FaceSetSchema, FaceSetBase, properties...)
}

// Curves returns a curves object with the given .geom properties.
func Curves(name string, geom ...Property) Object {
	return SchemaObject(name, CurvesSchema, GeomBase, geom...)
}

// Xform returns a transform with samples declared samples and one
// operation per entry of ops. Without ops the .ops property is
// omitted.
func Xform(name string, samples uint32, ops ...byte) Object {
	properties := []Property{
		Scalar(".inherits", Bool, repeat([]byte{1}, samples)...),
	}
	if len(ops) > 0 {
		channels := abc.DataType{POD: abc.PODFloat64, Extent: uint8(len(ops))}
		properties = append(properties,
			Scalar(".ops", abc.DataType{POD: abc.PODUint8, Extent: uint8(len(ops))}, ops),
			Scalar(".vals", channels, repeat(make([]byte, 8*len(ops)), samples)...),
		)
	}
	return SchemaObject(name, XformSchema, XformBase, properties...)
}

// Material returns a material object with the given .material
// properties, typically built with [ShaderParams].
func Material(name string, properties ...Property) Object {
	return SchemaObject(name, MaterialSchema, MaterialBase, properties...)
}

// Compound returns a compound property.
func Compound(name string, properties ...Property) Property {
	return Property{Name: name, Type: abc.PropertyCompound, Properties: properties}
}

// Array returns an array property declaring samples samples. Array
// sample payloads are never stored.
func Array(name string, dataType abc.DataType, samples uint32) Property {
	return Property{Name: name, Type: abc.PropertyArray, DataType: dataType, NumSamples: samples}
}

// Scalar returns a scalar property storing samples.
func Scalar(name string, dataType abc.DataType, samples ...[]byte) Property {
	return Property{
		Name:       name,
		Type:       abc.PropertyScalar,
		DataType:   dataType,
		NumSamples: uint32(len(samples)),
		Samples:    samples,
	}
}

// Points returns a P positions property.
func Points(samples uint32) Property {
	return Array("P", P3f, samples)
}

// Normals returns an N normals property.
func Normals(samples uint32) Property {
	return Array("N", N3f, samples)
}

// UVs returns a uv texture coordinate property.
func UVs(samples uint32) Property {
	return Array("uv", V2f, samples)
}

// IndexedUVs returns a uv property stored as a compound of values and
// indices, the way writers store indexed geometry parameters.
func IndexedUVs(samples uint32) Property {
	return Compound("uv",
		Array(".vals", V2f, samples),
		Array(".indices", abc.DataType{POD: abc.PODUint32, Extent: 1}, samples),
	)
}

// ArbGeomParams returns the arbitrary geometry parameter compound.
func ArbGeomParams(properties ...Property) Property {
	return Compound(".arbGeomParams", properties...)
}

// ShaderParams returns the parameter compound binding a shader of
// shaderType to target.
func ShaderParams(target, shaderType string, params ...Property) Property {
	return Compound(target+"."+shaderType+".params", params...)
}

// Int32Sample encodes one int32 scalar sample.
func Int32Sample(value int32) []byte {
	return binary.LittleEndian.AppendUint32(nil, uint32(value))
}

// StringSample encodes one string scalar sample.
func StringSample(value string) []byte {
	return append([]byte(value), 0)
}

func repeat(sample []byte, count uint32) [][]byte {
	samples := make([][]byte, count)
	for i := range samples {
		samples[i] = sample
	}
	return samples
}
