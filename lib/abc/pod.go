// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package abc

import "fmt"

// POD is the plain-old-data element type of a scalar or array
// property. Values are protocol constants stored in property headers.
type POD uint8

const (
	PODBool POD = iota
	PODUint8
	PODInt8
	PODUint16
	PODInt16
	PODUint32
	PODInt32
	PODUint64
	PODInt64
	PODFloat16
	PODFloat32
	PODFloat64
	PODString
	PODWstring

	podCount
)

var podNames = [podCount]string{
	"bool_t", "uint8_t", "int8_t", "uint16_t", "int16_t", "uint32_t",
	"int32_t", "uint64_t", "int64_t", "float16_t", "float32_t",
	"float64_t", "string", "wstring",
}

// Valid reports whether p is a known element type.
func (p POD) Valid() bool {
	return p < podCount
}

// String returns the element type name as written by Alembic tools.
func (p POD) String() string {
	if !p.Valid() {
		return fmt.Sprintf("unknown(%d)", uint8(p))
	}
	return podNames[p]
}

// DataType is the element type and per-sample extent of a property.
// A P3f positions property is float32 with extent 3.
type DataType struct {
	POD    POD
	Extent uint8
}

func (d DataType) String() string {
	return fmt.Sprintf("%s[%d]", d.POD, d.Extent)
}

// PropertyType is the structural kind of a property.
type PropertyType uint8

const (
	PropertyCompound PropertyType = iota
	PropertyScalar
	PropertyArray
)

func (t PropertyType) String() string {
	switch t {
	case PropertyCompound:
		return "compound"
	case PropertyScalar:
		return "scalar"
	case PropertyArray:
		return "array"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}
