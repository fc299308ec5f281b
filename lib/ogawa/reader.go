// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ogawa

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrMalformed is wrapped by every error caused by the content of the
// file rather than by the underlying reader.
var ErrMalformed = errors.New("malformed ogawa container")

// Format constants.
const (
	// HeaderSize is the fixed header: 5-byte magic, frozen byte,
	// 2-byte version, 8-byte root group position.
	HeaderSize = 16

	// FormatVersion is the only container version this reader accepts.
	FormatVersion = 1

	// FrozenMarker is the value of the frozen byte once a writer has
	// finished the file.
	FrozenMarker = 0xff

	// DataFlag marks a child code as a data block.
	DataFlag = uint64(1) << 63

	positionMask = DataFlag - 1
)

// Magic is the 5-byte file signature.
var Magic = [5]byte{'O', 'g', 'a', 'w', 'a'}

// Archive is a read-only view of an Ogawa container. An Archive only
// reads through its source; it never retains more than one group's
// child codes per [Group] value.
type Archive struct {
	source io.ReaderAt
	size   uint64
	root   *Group
}

// Open validates the header of the container held by source and reads
// its root group. size is the total number of readable bytes.
func Open(source io.ReaderAt, size int64) (*Archive, error) {
	if size < HeaderSize {
		return nil, fmt.Errorf("%w: file is %d bytes, header needs %d", ErrMalformed, size, HeaderSize)
	}

	archive := &Archive{source: source, size: uint64(size)}

	header, err := archive.read(0, HeaderSize)
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if [5]byte(header[0:5]) != Magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrMalformed, header[0:5])
	}
	if header[5] != FrozenMarker {
		return nil, fmt.Errorf("%w: archive is not frozen (flag 0x%02x)", ErrMalformed, header[5])
	}
	if version := binary.BigEndian.Uint16(header[6:8]); version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformed, version)
	}

	rootPosition := binary.LittleEndian.Uint64(header[8:16])
	if rootPosition == 0 || rootPosition&DataFlag != 0 {
		return nil, fmt.Errorf("%w: invalid root group position 0x%x", ErrMalformed, rootPosition)
	}

	root, err := archive.readGroup(rootPosition)
	if err != nil {
		return nil, fmt.Errorf("reading root group: %w", err)
	}
	archive.root = root
	return archive, nil
}

// Root returns the root group.
func (a *Archive) Root() *Group {
	return a.root
}

// Size returns the container size in bytes.
func (a *Archive) Size() int64 {
	return int64(a.size)
}

// read returns length bytes at position. Bounds are checked against
// the archive size before the buffer is allocated.
func (a *Archive) read(position, length uint64) ([]byte, error) {
	if position > a.size || length > a.size-position {
		return nil, fmt.Errorf("%w: %d bytes at position %d overrun %d-byte file",
			ErrMalformed, length, position, a.size)
	}
	buffer := make([]byte, length)
	if length == 0 {
		return buffer, nil
	}
	readCount, err := a.source.ReadAt(buffer, int64(position))
	if readCount == len(buffer) {
		return buffer, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return nil, fmt.Errorf("reading %d bytes at position %d: %w", length, position, err)
}

func (a *Archive) readUint64(position uint64) (uint64, error) {
	raw, err := a.read(position, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(raw), nil
}

func (a *Archive) readGroup(position uint64) (*Group, error) {
	group := &Group{archive: a, position: position}
	if position == 0 {
		return group, nil
	}

	count, err := a.readUint64(position)
	if err != nil {
		return nil, fmt.Errorf("group at %d: %w", position, err)
	}
	// Each child code takes 8 bytes; a count the file cannot hold is
	// rejected before the codes are allocated.
	remaining := a.size - position - 8
	if count > remaining/8 {
		return nil, fmt.Errorf("%w: group at %d declares %d children, file has room for %d",
			ErrMalformed, position, count, remaining/8)
	}

	raw, err := a.read(position+8, count*8)
	if err != nil {
		return nil, fmt.Errorf("group at %d: %w", position, err)
	}
	group.codes = make([]uint64, count)
	for i := range group.codes {
		group.codes[i] = binary.LittleEndian.Uint64(raw[i*8:])
	}
	return group, nil
}

func (a *Archive) readData(position uint64) (*Data, error) {
	data := &Data{archive: a, position: position}
	if position == 0 {
		return data, nil
	}

	length, err := a.readUint64(position)
	if err != nil {
		return nil, fmt.Errorf("data at %d: %w", position, err)
	}
	if length > a.size-position-8 {
		return nil, fmt.Errorf("%w: data at %d declares %d bytes, file has %d",
			ErrMalformed, position, length, a.size-position-8)
	}
	data.length = length
	return data, nil
}

// Group is one group node. The zero-position group is the empty group.
type Group struct {
	archive  *Archive
	position uint64
	codes    []uint64
}

// Position returns the file position of the group, or 0 for the empty
// group. Two Group values with the same non-zero position are the same
// node of the file.
func (g *Group) Position() uint64 {
	return g.position
}

// NumChildren returns the number of child codes in the group.
func (g *Group) NumChildren() int {
	return len(g.codes)
}

// IsData reports whether child index is a data block. Out-of-range
// indexes report false.
func (g *Group) IsData(index int) bool {
	if index < 0 || index >= len(g.codes) {
		return false
	}
	return g.codes[index]&DataFlag != 0
}

// IsGroup reports whether child index is a group. Out-of-range indexes
// report false.
func (g *Group) IsGroup(index int) bool {
	if index < 0 || index >= len(g.codes) {
		return false
	}
	return g.codes[index]&DataFlag == 0
}

// Group reads child index as a group.
func (g *Group) Group(index int) (*Group, error) {
	code, err := g.code(index)
	if err != nil {
		return nil, err
	}
	if code&DataFlag != 0 {
		return nil, fmt.Errorf("%w: child %d of group at %d is data, not a group", ErrMalformed, index, g.position)
	}
	return g.archive.readGroup(code)
}

// GroupPosition returns the position of child group index without
// reading it. The empty group is position 0.
func (g *Group) GroupPosition(index int) (uint64, error) {
	code, err := g.code(index)
	if err != nil {
		return 0, err
	}
	if code&DataFlag != 0 {
		return 0, fmt.Errorf("%w: child %d of group at %d is data, not a group", ErrMalformed, index, g.position)
	}
	return code, nil
}

// Data reads child index as a data block.
func (g *Group) Data(index int) (*Data, error) {
	code, err := g.code(index)
	if err != nil {
		return nil, err
	}
	if code&DataFlag == 0 {
		return nil, fmt.Errorf("%w: child %d of group at %d is a group, not data", ErrMalformed, index, g.position)
	}
	return g.archive.readData(code & positionMask)
}

func (g *Group) code(index int) (uint64, error) {
	if index < 0 || index >= len(g.codes) {
		return 0, fmt.Errorf("%w: child %d of group at %d out of range (%d children)",
			ErrMalformed, index, g.position, len(g.codes))
	}
	return g.codes[index], nil
}

// Data is one data block. The zero-position block is empty.
type Data struct {
	archive  *Archive
	position uint64
	length   uint64
}

// Position returns the file position of the block, or 0 when empty.
func (d *Data) Position() uint64 {
	return d.position
}

// Size returns the payload length in bytes.
func (d *Data) Size() int64 {
	return int64(d.length)
}

// Bytes reads the whole payload.
func (d *Data) Bytes() ([]byte, error) {
	if d.length == 0 {
		return nil, nil
	}
	return d.archive.read(d.position+8, d.length)
}

// Prefix reads at most limit bytes from the start of the payload. Use
// it for values whose interesting part is small even when the stored
// block is not.
func (d *Data) Prefix(limit int) ([]byte, error) {
	length := d.length
	if limit >= 0 && uint64(limit) < length {
		length = uint64(limit)
	}
	if length == 0 {
		return nil, nil
	}
	return d.archive.read(d.position+8, length)
}
