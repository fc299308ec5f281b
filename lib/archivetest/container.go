// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archivetest

import (
	"bytes"
	"encoding/binary"

	"github.com/bureau-foundation/abcinspect/lib/ogawa"
)

// Container assembles an Ogawa file bottom-up: children are written
// before the groups that reference them, and every write returns the
// child code to store in the parent.
type Container struct {
	buffer bytes.Buffer
}

// NewContainer returns a container with space reserved for the header.
func NewContainer() *Container {
	container := &Container{}
	container.buffer.Write(make([]byte, ogawa.HeaderSize))
	return container
}

// Offset returns the position the next block will be written at.
func (c *Container) Offset() uint64 {
	return uint64(c.buffer.Len())
}

// Data writes a data block and returns its child code. An empty
// payload is not written; it is encoded as the empty data code.
func (c *Container) Data(payload []byte) uint64 {
	if len(payload) == 0 {
		return ogawa.DataFlag
	}
	position := c.Offset()
	c.buffer.Write(binary.LittleEndian.AppendUint64(nil, uint64(len(payload))))
	c.buffer.Write(payload)
	return position | ogawa.DataFlag
}

// Group writes a group holding codes and returns its child code. A
// group without children is encoded as the empty group code.
func (c *Container) Group(codes ...uint64) uint64 {
	if len(codes) == 0 {
		return 0
	}
	position := c.Offset()
	c.buffer.Write(binary.LittleEndian.AppendUint64(nil, uint64(len(codes))))
	for _, code := range codes {
		c.buffer.Write(binary.LittleEndian.AppendUint64(nil, code))
	}
	return position
}

// Finish writes the header pointing at root and returns the file.
func (c *Container) Finish(root uint64) []byte {
	file := bytes.Clone(c.buffer.Bytes())
	copy(file[0:5], ogawa.Magic[:])
	file[5] = ogawa.FrozenMarker
	binary.BigEndian.PutUint16(file[6:8], ogawa.FormatVersion)
	binary.LittleEndian.PutUint64(file[8:16], root)
	return file
}
