// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package abc

import (
	"fmt"

	"github.com/bureau-foundation/abcinspect/lib/ogawa"
)

// Property header info bitfield.
const (
	infoTypeMask          = 0x3
	infoPODShift          = 2
	infoPODMask           = 0xf
	infoHasTimeSampling   = 0x40
	infoHasChangedIndices = 0x80
	infoExtentShift       = 8
	infoExtentMask        = 0xff
	infoSizeHintShift     = 18
	infoSizeHintMask      = 0x3
	infoMetaDataShift     = 20
	infoMetaDataMask      = 0xff
)

// sampleKeyBytes is the content key stored in front of every sample.
const sampleKeyBytes = 16

// PropertyHeader describes one property without reading its samples.
type PropertyHeader struct {
	Name     string
	Type     PropertyType
	MetaData MetaData

	// DataType, NumSamples, the changed-index range and the time
	// sampling index are zero for compound properties.
	DataType          DataType
	NumSamples        uint32
	FirstChangedIndex uint32
	LastChangedIndex  uint32
	TimeSamplingIndex uint32
}

// IsCompound reports whether the property holds sub-properties.
func (h PropertyHeader) IsCompound() bool { return h.Type == PropertyCompound }

// IsScalar reports whether the property holds one value per sample.
func (h PropertyHeader) IsScalar() bool { return h.Type == PropertyScalar }

// IsArray reports whether the property holds a variable-length array
// per sample.
func (h PropertyHeader) IsArray() bool { return h.Type == PropertyArray }

// CompoundProperty is a property holding an ordered set of uniquely
// named sub-properties.
type CompoundProperty struct {
	archive *Archive
	group   *ogawa.Group
	headers []PropertyHeader
	byName  map[string]int
}

func newCompoundProperty(archive *Archive, group *ogawa.Group) (*CompoundProperty, error) {
	compound := &CompoundProperty{archive: archive, group: group}
	count := group.NumChildren()
	if count == 0 {
		return compound, nil
	}

	raw, err := readBytes(group, count-1)
	if err != nil {
		return nil, fmt.Errorf("property headers: %w", err)
	}
	headers, err := archive.parsePropertyHeaders(raw)
	if err != nil {
		return nil, err
	}
	if len(headers) != count-1 {
		return nil, fmt.Errorf("%w: %d property headers for %d property groups",
			ErrMalformed, len(headers), count-1)
	}

	compound.headers = headers
	compound.byName = make(map[string]int, len(headers))
	for i, header := range headers {
		compound.byName[header.Name] = i
	}
	return compound, nil
}

// NumProperties returns the number of sub-properties.
func (c *CompoundProperty) NumProperties() int {
	return len(c.headers)
}

// PropertyHeader returns the header of sub-property index. It panics
// if index is out of range, like a slice index.
func (c *CompoundProperty) PropertyHeader(index int) PropertyHeader {
	return c.headers[index]
}

// Find returns the index of the sub-property called name.
func (c *CompoundProperty) Find(name string) (int, bool) {
	index, found := c.byName[name]
	return index, found
}

// Header returns the header of the sub-property called name.
func (c *CompoundProperty) Header(name string) (PropertyHeader, bool) {
	index, found := c.byName[name]
	if !found {
		return PropertyHeader{}, false
	}
	return c.headers[index], true
}

// Compound reads the sub-property called name as a compound.
func (c *CompoundProperty) Compound(name string) (*CompoundProperty, error) {
	index, found := c.byName[name]
	if !found {
		return nil, fmt.Errorf("%q: %w", name, ErrPropertyNotFound)
	}
	return c.CompoundAt(index)
}

// CompoundAt reads sub-property index as a compound.
func (c *CompoundProperty) CompoundAt(index int) (*CompoundProperty, error) {
	if index < 0 || index >= len(c.headers) {
		return nil, fmt.Errorf("property %d out of range (%d properties)", index, len(c.headers))
	}
	header := c.headers[index]
	if !header.IsCompound() {
		return nil, fmt.Errorf("%q is %s, not compound: %w", header.Name, header.Type, ErrPropertyType)
	}
	group, err := c.group.Group(index)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", header.Name, err)
	}
	compound, err := newCompoundProperty(c.archive, group)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", header.Name, err)
	}
	return compound, nil
}

// Scalar returns the sub-property called name as a scalar property.
func (c *CompoundProperty) Scalar(name string) (*ScalarProperty, error) {
	index, found := c.byName[name]
	if !found {
		return nil, fmt.Errorf("%q: %w", name, ErrPropertyNotFound)
	}
	header := c.headers[index]
	if !header.IsScalar() {
		return nil, fmt.Errorf("%q is %s, not scalar: %w", name, header.Type, ErrPropertyType)
	}
	group, err := c.group.Group(index)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", name, err)
	}
	return &ScalarProperty{header: header, group: group}, nil
}

// ScalarProperty is a property with one fixed-size value per sample.
type ScalarProperty struct {
	header PropertyHeader
	group  *ogawa.Group
}

// Header returns the property header.
func (s *ScalarProperty) Header() PropertyHeader {
	return s.header
}

// SampleBytes returns at most limit bytes of stored sample index, with
// the sample key stripped. A negative limit reads the whole sample.
func (s *ScalarProperty) SampleBytes(index int, limit int) ([]byte, error) {
	if index < 0 || index >= int(s.header.NumSamples) {
		return nil, fmt.Errorf("%q: sample %d out of range (%d samples)", s.header.Name, index, s.header.NumSamples)
	}
	if index >= s.group.NumChildren() {
		return nil, fmt.Errorf("%w: %q: sample %d not stored (%d stored)",
			ErrMalformed, s.header.Name, index, s.group.NumChildren())
	}
	data, err := s.group.Data(index)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", s.header.Name, err)
	}
	if data.Size() < sampleKeyBytes {
		return nil, fmt.Errorf("%w: %q: sample %d is %d bytes, shorter than its key",
			ErrMalformed, s.header.Name, index, data.Size())
	}
	prefixLimit := -1
	if limit >= 0 {
		prefixLimit = sampleKeyBytes + limit
	}
	raw, err := data.Prefix(prefixLimit)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", s.header.Name, err)
	}
	return raw[sampleKeyBytes:], nil
}

// parsePropertyHeaders decodes a compound's header block. See the
// package documentation for the layout of the info bitfield.
func (a *Archive) parsePropertyHeaders(raw []byte) ([]PropertyHeader, error) {
	reader := newByteReader(raw, "property headers")
	seen := make(map[string]struct{})
	var headers []PropertyHeader
	for reader.remaining() > 0 {
		info, err := reader.uint32()
		if err != nil {
			return nil, err
		}
		hint := (info >> infoSizeHintShift) & infoSizeHintMask
		readSized := func() (uint32, error) { return reader.sized(hint) }

		var header PropertyHeader
		switch info & infoTypeMask {
		case 0:
			header.Type = PropertyCompound
		case 1:
			header.Type = PropertyScalar
		default:
			header.Type = PropertyArray
		}

		if !header.IsCompound() {
			if err := a.readSampleFields(reader, info, readSized, &header); err != nil {
				return nil, err
			}
		}

		nameSize, err := readSized()
		if err != nil {
			return nil, err
		}
		if header.Name, err = reader.text(nameSize); err != nil {
			return nil, err
		}
		if header.Name == "" {
			return nil, fmt.Errorf("%w: property with empty name", ErrMalformed)
		}
		if _, duplicate := seen[header.Name]; duplicate {
			return nil, fmt.Errorf("%w: duplicate property name %q", ErrMalformed, header.Name)
		}
		seen[header.Name] = struct{}{}

		metaIndex := (info >> infoMetaDataShift) & infoMetaDataMask
		if header.MetaData, err = a.readMetaData(reader, metaIndex, readSized); err != nil {
			return nil, fmt.Errorf("property %q: %w", header.Name, err)
		}

		headers = append(headers, header)
	}
	return headers, nil
}

// readSampleFields decodes the data type, sample count, changed-index
// range and time sampling of a scalar or array property header.
func (a *Archive) readSampleFields(reader *byteReader, info uint32, readSized func() (uint32, error), header *PropertyHeader) error {
	pod := POD((info >> infoPODShift) & infoPODMask)
	if !pod.Valid() {
		return fmt.Errorf("%w: invalid element type %d", ErrMalformed, uint8(pod))
	}
	header.DataType = DataType{POD: pod, Extent: uint8((info >> infoExtentShift) & infoExtentMask)}

	var err error
	if header.NumSamples, err = readSized(); err != nil {
		return err
	}

	if info&infoHasChangedIndices != 0 {
		if header.FirstChangedIndex, err = readSized(); err != nil {
			return err
		}
		if header.LastChangedIndex, err = readSized(); err != nil {
			return err
		}
		if header.FirstChangedIndex > header.NumSamples || header.LastChangedIndex > header.NumSamples {
			return fmt.Errorf("%w: changed indices [%d, %d] outside %d samples",
				ErrMalformed, header.FirstChangedIndex, header.LastChangedIndex, header.NumSamples)
		}
	} else if header.NumSamples > 1 {
		header.FirstChangedIndex = 1
		header.LastChangedIndex = header.NumSamples - 1
	}

	if info&infoHasTimeSampling != 0 {
		if header.TimeSamplingIndex, err = readSized(); err != nil {
			return err
		}
		if int(header.TimeSamplingIndex) >= len(a.timeSamplings) {
			return fmt.Errorf("%w: time sampling index %d out of range (%d samplings)",
				ErrMalformed, header.TimeSamplingIndex, len(a.timeSamplings))
		}
	}
	return nil
}
