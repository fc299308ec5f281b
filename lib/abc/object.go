// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package abc

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/abcinspect/lib/ogawa"
)

// objectHashBytes is the length of the data and child hashes that
// trail the child header block of every object.
const objectHashBytes = 32

// ObjectHeader is the identity of one object: its local name, its full
// path from the top object, and its metadata.
type ObjectHeader struct {
	Name     string
	FullName string
	MetaData MetaData
}

// Object is one node of the archive's object tree. Its child headers
// are decoded when the object is read; the children themselves are
// read on demand by Child.
type Object struct {
	archive      *Archive
	header       ObjectHeader
	group        *ogawa.Group
	childHeaders []ObjectHeader
}

func newObject(archive *Archive, group *ogawa.Group, header ObjectHeader) (*Object, error) {
	object := &Object{archive: archive, header: header, group: group}

	// A group with fewer than two children has at most a property
	// compound and therefore no child objects.
	count := group.NumChildren()
	if count < 2 {
		return object, nil
	}

	raw, err := readBytes(group, count-1)
	if err != nil {
		return nil, fmt.Errorf("object %s: child headers: %w", header.FullName, err)
	}
	headers, err := archive.parseObjectHeaders(raw, header.FullName, count-2)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", header.FullName, err)
	}
	if len(headers) != count-2 {
		return nil, fmt.Errorf("%w: object %s declares %d child headers for %d child groups",
			ErrMalformed, header.FullName, len(headers), count-2)
	}
	object.childHeaders = headers
	return object, nil
}

// Header returns the object's header.
func (o *Object) Header() ObjectHeader {
	return o.header
}

// Name returns the local name.
func (o *Object) Name() string {
	return o.header.Name
}

// FullName returns the path from the top object, "/" for the top
// object itself.
func (o *Object) FullName() string {
	return o.header.FullName
}

// MetaData returns the object's metadata.
func (o *Object) MetaData() MetaData {
	return o.header.MetaData
}

// Position returns the file position of the object's group. Distinct
// objects of a well-formed archive never share a position.
func (o *Object) Position() uint64 {
	return o.group.Position()
}

// NumChildren returns the number of child objects.
func (o *Object) NumChildren() int {
	return len(o.childHeaders)
}

// ChildHeader returns the header of child index without reading the
// child. It panics if index is out of range, like a slice index.
func (o *Object) ChildHeader(index int) ObjectHeader {
	return o.childHeaders[index]
}

// ChildPosition returns the group position of child index without
// reading the child, so a caller can recognize an already visited group
// before paying for its header block.
func (o *Object) ChildPosition(index int) (uint64, error) {
	if index < 0 || index >= len(o.childHeaders) {
		return 0, fmt.Errorf("object %s: child %d out of range (%d children)",
			o.header.FullName, index, len(o.childHeaders))
	}
	position, err := o.group.GroupPosition(index + 1)
	if err != nil {
		return 0, fmt.Errorf("object %s: %w", o.childHeaders[index].FullName, err)
	}
	return position, nil
}

// Child reads child object index.
func (o *Object) Child(index int) (*Object, error) {
	if index < 0 || index >= len(o.childHeaders) {
		return nil, fmt.Errorf("object %s: child %d out of range (%d children)",
			o.header.FullName, index, len(o.childHeaders))
	}
	header := o.childHeaders[index]
	group, err := o.group.Group(index + 1)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", header.FullName, err)
	}
	return newObject(o.archive, group, header)
}

// Properties reads the object's top compound property. An object with
// no property group has an empty compound.
func (o *Object) Properties() (*CompoundProperty, error) {
	if o.group.NumChildren() == 0 {
		return &CompoundProperty{archive: o.archive}, nil
	}
	group, err := o.group.Group(0)
	if err != nil {
		return nil, fmt.Errorf("object %s: properties: %w", o.header.FullName, err)
	}
	compound, err := newCompoundProperty(o.archive, group)
	if err != nil {
		return nil, fmt.Errorf("object %s: properties: %w", o.header.FullName, err)
	}
	return compound, nil
}

// parseObjectHeaders decodes a child header block. Each entry is a
// uint32 name length, the name, a one-byte metadata index and, for
// inline metadata, a uint32 length and the serialized metadata. The
// trailing hashes are not verified. A block holding more than limit
// entries is rejected without decoding the excess.
func (a *Archive) parseObjectHeaders(raw []byte, parentFullName string, limit int) ([]ObjectHeader, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if len(raw) < objectHashBytes {
		return nil, fmt.Errorf("%w: child header block of %d bytes is shorter than its hashes",
			ErrMalformed, len(raw))
	}

	reader := newByteReader(raw[:len(raw)-objectHashBytes], "object headers")
	seen := make(map[string]struct{})
	var headers []ObjectHeader
	for reader.remaining() > 0 {
		if len(headers) == limit {
			return nil, fmt.Errorf("%w: child header block holds more than %d headers", ErrMalformed, limit)
		}
		nameSize, err := reader.uint32()
		if err != nil {
			return nil, err
		}
		name, err := reader.text(nameSize)
		if err != nil {
			return nil, err
		}
		metaIndex, err := reader.uint8()
		if err != nil {
			return nil, err
		}
		metadata, err := a.readMetaData(reader, uint32(metaIndex), reader.uint32)
		if err != nil {
			return nil, err
		}

		if err := validateObjectName(name); err != nil {
			return nil, err
		}
		if _, duplicate := seen[name]; duplicate {
			return nil, fmt.Errorf("%w: duplicate child name %q", ErrMalformed, name)
		}
		seen[name] = struct{}{}

		headers = append(headers, ObjectHeader{
			Name:     name,
			FullName: childFullName(parentFullName, name),
			MetaData: metadata,
		})
	}
	return headers, nil
}

func validateObjectName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty child name", ErrMalformed)
	}
	if strings.Contains(name, "/") {
		return fmt.Errorf("%w: child name %q contains '/'", ErrMalformed, name)
	}
	return nil
}

func childFullName(parentFullName, name string) string {
	if parentFullName == "/" {
		return "/" + name
	}
	return parentFullName + "/" + name
}
