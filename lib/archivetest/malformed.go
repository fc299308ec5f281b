// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archivetest

import (
	"encoding/binary"
	"strconv"

	"github.com/bureau-foundation/abcinspect/lib/ogawa"
)

// CyclicArchive returns an archive whose only child object "loop"
// refers back to the group of the top object, so a reader that follows
// child groups without remembering positions never terminates.
func CyclicArchive() []byte {
	container := NewContainer()

	fileVersion := container.Data(binary.LittleEndian.AppendUint32(nil, 1))
	libraryVersion := container.Data(binary.LittleEndian.AppendUint32(nil, 10709))
	headers := container.Data(encodeObjectHeaders([]Object{{Name: "loop"}}))

	// The top group is written next, so its position is known before
	// its own child code is.
	top := container.Offset()
	container.Group(0, top, headers)

	root := container.Group(fileVersion, libraryVersion, top, ogawa.DataFlag, ogawa.DataFlag)
	return container.Finish(root)
}

// SharedFanOut returns an archive whose top object has width children
// "c0", "c1", ... that all refer to one shared object group. The shared
// group declares width leaf children "s0", "s1", ... of its own, so
// reading it is as costly as the whole fan-out.
func SharedFanOut(width int) []byte {
	container := NewContainer()

	fileVersion := container.Data(binary.LittleEndian.AppendUint32(nil, 1))
	libraryVersion := container.Data(binary.LittleEndian.AppendUint32(nil, 10709))

	leaves := make([]Object, width)
	parents := make([]Object, width)
	for i := range width {
		leaves[i] = Object{Name: "s" + strconv.Itoa(i)}
		parents[i] = Object{Name: "c" + strconv.Itoa(i)}
	}

	// Leaf children are empty groups.
	sharedCodes := make([]uint64, width+2)
	sharedCodes[width+1] = container.Data(encodeObjectHeaders(leaves))
	shared := container.Group(sharedCodes...)

	topCodes := make([]uint64, width+2)
	for i := range width {
		topCodes[i+1] = shared
	}
	topCodes[width+1] = container.Data(encodeObjectHeaders(parents))
	top := container.Group(topCodes...)

	root := container.Group(fileVersion, libraryVersion, top, ogawa.DataFlag, ogawa.DataFlag)
	return container.Finish(root)
}

// OverdeclaredHeaders returns an archive whose top object holds one
// child group but a header block naming headers children.
func OverdeclaredHeaders(headers int) []byte {
	container := NewContainer()

	fileVersion := container.Data(binary.LittleEndian.AppendUint32(nil, 1))
	libraryVersion := container.Data(binary.LittleEndian.AppendUint32(nil, 10709))

	children := make([]Object, headers)
	for i := range headers {
		children[i] = Object{Name: nameOf(i)}
	}
	top := container.Group(0, 0, container.Data(encodeObjectHeaders(children)))

	root := container.Group(fileVersion, libraryVersion, top, ogawa.DataFlag, ogawa.DataFlag)
	return container.Finish(root)
}

// DeepArchive returns an archive whose top object has a chain of depth
// nested children named "n0", "n1", ...
func DeepArchive(depth int) []byte {
	var chain Object
	for i := depth - 1; i >= 0; i-- {
		node := Object{Name: nameOf(i)}
		if i < depth-1 {
			node.Children = []Object{chain}
		}
		chain = node
	}
	archive := Archive{FileVersion: 1, LibraryVersion: 10709}
	if depth > 0 {
		archive.Top.Children = []Object{chain}
	}
	return archive.Bytes()
}

// Truncate returns the first length bytes of data, or data itself if
// it is shorter.
func Truncate(data []byte, length int) []byte {
	if length >= len(data) {
		return data
	}
	return data[:length]
}

func nameOf(index int) string {
	return "n" + strconv.Itoa(index)
}
