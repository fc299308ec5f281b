// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ogawa reads the Ogawa container format: the group/data tree
// that Alembic archives are laid out in on disk.
//
// An Ogawa file is a 16-byte header followed by a tree of two node
// kinds addressed by absolute file position:
//
//   - A group is a uint64 child count followed by that many uint64
//     child codes. The high bit of a code marks a data child; the low
//     63 bits are the child's file position. Position 0 denotes an
//     empty group or empty data block.
//   - A data block is a uint64 byte length followed by the bytes.
//
// The header is the 5-byte magic "Ogawa", a frozen byte (0xff once the
// writer has finished), a big-endian uint16 format version (1), and the
// little-endian uint64 position of the root group.
//
// The reader treats every input as adversarial. All positions and
// lengths are checked against the file size before anything is read
// or allocated, and every failure is returned as an error wrapping
// [ErrMalformed]; nothing in this package panics on malformed input.
// Nothing here prevents a group from referencing one of its ancestors:
// callers that walk the tree use [Group.Position] to detect cycles.
package ogawa
