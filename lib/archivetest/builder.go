// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archivetest

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"

	"github.com/bureau-foundation/abcinspect/lib/abc"
)

// Archive describes a whole archive. The zero value is a valid empty
// archive whose top object has no properties and no children.
type Archive struct {
	FileVersion     int32
	LibraryVersion  int32
	MetaData        string
	IndexedMetaData []string
	TimeSamplings   []abc.TimeSampling

	// Top holds the top object's properties and children. Its Name and
	// MetaData are ignored: the top object is always "ABC" and carries
	// the archive metadata.
	Top Object
}

// Object describes one object and its subtree.
type Object struct {
	Name       string
	MetaData   string
	Properties []Property
	Children   []Object
}

// With returns a copy of o with children appended.
func (o Object) With(children ...Object) Object {
	o.Children = append(append([]Object(nil), o.Children...), children...)
	return o
}

// Property describes one property. For scalar properties, Samples
// holds the stored sample values (without their keys); NumSamples is
// what the header declares and need not match len(Samples).
type Property struct {
	Name         string
	Type         abc.PropertyType
	DataType     abc.DataType
	NumSamples   uint32
	TimeSampling uint32
	MetaData     string
	Samples      [][]byte
	Properties   []Property
}

// Bytes lays the archive out as an Ogawa file.
func (a Archive) Bytes() []byte {
	container := NewContainer()

	fileVersion := container.Data(binary.LittleEndian.AppendUint32(nil, uint32(a.FileVersion)))
	libraryVersion := container.Data(binary.LittleEndian.AppendUint32(nil, uint32(a.LibraryVersion)))
	top := writeObject(container, a.Top)
	metadata := container.Data([]byte(a.MetaData))
	samplings := container.Data(encodeTimeSamplings(a.TimeSamplings))
	indexed := container.Data(encodeIndexedMetaData(a.IndexedMetaData))

	root := container.Group(fileVersion, libraryVersion, top, metadata, samplings, indexed)
	return container.Finish(root)
}

// WriteFile writes the archive to path.
func (a Archive) WriteFile(path string) error {
	return os.WriteFile(path, a.Bytes(), 0o644)
}

func writeObject(container *Container, object Object) uint64 {
	codes := []uint64{writeCompound(container, object.Properties)}
	for _, child := range object.Children {
		codes = append(codes, writeObject(container, child))
	}
	codes = append(codes, container.Data(encodeObjectHeaders(object.Children)))
	return container.Group(codes...)
}

func writeCompound(container *Container, properties []Property) uint64 {
	if len(properties) == 0 {
		return container.Group()
	}
	var codes []uint64
	for _, property := range properties {
		codes = append(codes, writeProperty(container, property))
	}
	codes = append(codes, container.Data(encodePropertyHeaders(properties)))
	return container.Group(codes...)
}

func writeProperty(container *Container, property Property) uint64 {
	switch property.Type {
	case abc.PropertyCompound:
		return writeCompound(container, property.Properties)
	case abc.PropertyScalar:
		var codes []uint64
		for _, sample := range property.Samples {
			keyed := append(make([]byte, 16), sample...)
			codes = append(codes, container.Data(keyed))
		}
		return container.Group(codes...)
	default:
		return container.Group()
	}
}

func encodeObjectHeaders(children []Object) []byte {
	var out []byte
	for _, child := range children {
		out = binary.LittleEndian.AppendUint32(out, uint32(len(child.Name)))
		out = append(out, child.Name...)
		if child.MetaData == "" {
			out = append(out, 0)
			continue
		}
		out = append(out, 0xff)
		out = binary.LittleEndian.AppendUint32(out, uint32(len(child.MetaData)))
		out = append(out, child.MetaData...)
	}
	// Data and child hashes; never verified by the reader.
	return append(out, make([]byte, 32)...)
}

// encodePropertyHeaders always uses four-byte sized fields (size hint
// 2) and inline metadata.
func encodePropertyHeaders(properties []Property) []byte {
	var out []byte
	for _, property := range properties {
		info := uint32(2) << 18
		switch property.Type {
		case abc.PropertyScalar:
			info |= 1
		case abc.PropertyArray:
			info |= 2
		}
		if property.Type != abc.PropertyCompound {
			info |= uint32(property.DataType.POD) << 2
			info |= uint32(property.DataType.Extent) << 8
			if property.TimeSampling != 0 {
				info |= 0x40
			}
		}
		if property.MetaData != "" {
			info |= 0xff << 20
		}

		out = binary.LittleEndian.AppendUint32(out, info)
		if property.Type != abc.PropertyCompound {
			out = binary.LittleEndian.AppendUint32(out, property.NumSamples)
			if property.TimeSampling != 0 {
				out = binary.LittleEndian.AppendUint32(out, property.TimeSampling)
			}
		}
		out = binary.LittleEndian.AppendUint32(out, uint32(len(property.Name)))
		out = append(out, property.Name...)
		if property.MetaData != "" {
			out = binary.LittleEndian.AppendUint32(out, uint32(len(property.MetaData)))
			out = append(out, property.MetaData...)
		}
	}
	return out
}

func encodeTimeSamplings(samplings []abc.TimeSampling) []byte {
	var out []byte
	for _, sampling := range samplings {
		out = binary.LittleEndian.AppendUint32(out, sampling.MaxSample)
		out = binary.LittleEndian.AppendUint64(out, math.Float64bits(sampling.TimePerCycle))
		out = binary.LittleEndian.AppendUint32(out, uint32(len(sampling.Times)))
		for _, t := range sampling.Times {
			out = binary.LittleEndian.AppendUint64(out, math.Float64bits(t))
		}
	}
	return out
}

func encodeIndexedMetaData(entries []string) []byte {
	var buffer bytes.Buffer
	for _, entry := range entries {
		buffer.WriteByte(byte(len(entry)))
		buffer.WriteString(entry)
	}
	return buffer.Bytes()
}
