// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package abc

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/bureau-foundation/abcinspect/lib/ogawa"
)

var (
	// ErrMalformed is wrapped by errors caused by archive content that
	// does not follow the Alembic layout.
	ErrMalformed = errors.New("malformed alembic archive")

	// ErrInputTooLarge is wrapped when a compressed input inflates past
	// Options.MaxInputBytes.
	ErrInputTooLarge = errors.New("archive input exceeds size limit")

	// ErrPropertyNotFound is returned by compound lookups for names the
	// compound does not declare.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrPropertyType is returned when a declared property has a
	// different kind than the lookup asked for.
	ErrPropertyType = errors.New("property has unexpected type")
)

// DefaultMaxInputBytes caps the decompressed size of wrapped inputs
// when Options.MaxInputBytes is not set.
const DefaultMaxInputBytes = 256 << 20

// TopObjectName is the name of every archive's top object. Its full
// name is "/".
const TopObjectName = "ABC"

// Child indexes of the archive root group.
const (
	rootFileVersion = iota
	rootLibraryVersion
	rootTopObject
	rootMetaData
	rootTimeSamplings
	rootIndexedMetaData

	rootRequiredChildren = rootTimeSamplings + 1
)

// inlineMetaData is the metadata index meaning "stored inline after
// the header" rather than in the indexed table.
const inlineMetaData = 0xff

// Options configures Open.
type Options struct {
	// MaxInputBytes caps the in-memory size of compressed inputs after
	// decompression. Zero means DefaultMaxInputBytes.
	MaxInputBytes int64
}

// Archive is one opened archive. It is read-only and not safe for
// concurrent use; callers inspect one archive per goroutine.
type Archive struct {
	name string
	err  error

	source    *source
	container *ogawa.Archive

	fileVersion    int32
	libraryVersion int32
	metadata       MetaData
	indexed        []MetaData
	timeSamplings  []TimeSampling
	top            *Object
}

// Open opens the archive at path. It never fails outright: when the
// file cannot be read as an archive the returned Archive reports
// Valid() == false and Err() describes the problem. The caller must
// Close the archive in both cases.
func Open(path string, options Options) *Archive {
	archive := &Archive{name: path}
	if err := archive.open(path, options); err != nil {
		archive.err = err
		archive.source.close()
		archive.source = nil
		archive.container = nil
		archive.top = nil
	}
	return archive
}

func (a *Archive) open(path string, options Options) error {
	maxInputBytes := options.MaxInputBytes
	if maxInputBytes <= 0 {
		maxInputBytes = DefaultMaxInputBytes
	}

	source, err := loadSource(path, maxInputBytes)
	if err != nil {
		return err
	}
	a.source = source

	container, err := ogawa.Open(source.reader, source.size)
	if err != nil {
		return err
	}
	a.container = container

	root := container.Root()
	if root.NumChildren() < rootRequiredChildren {
		return fmt.Errorf("%w: root group has %d children, need at least %d",
			ErrMalformed, root.NumChildren(), rootRequiredChildren)
	}

	if a.fileVersion, err = readInt32(root, rootFileVersion); err != nil {
		return fmt.Errorf("reading file version: %w", err)
	}
	if a.libraryVersion, err = readInt32(root, rootLibraryVersion); err != nil {
		return fmt.Errorf("reading library version: %w", err)
	}

	// The indexed table must be loaded before any header that refers
	// to it is decoded, including the top object's child headers.
	a.indexed = []MetaData{{}}
	if root.NumChildren() > rootIndexedMetaData {
		raw, err := readBytes(root, rootIndexedMetaData)
		if err != nil {
			return fmt.Errorf("reading indexed metadata: %w", err)
		}
		if a.indexed, err = parseIndexedMetaData(raw); err != nil {
			return err
		}
	}

	rawMetaData, err := readBytes(root, rootMetaData)
	if err != nil {
		return fmt.Errorf("reading archive metadata: %w", err)
	}
	a.metadata = ParseMetaData(string(rawMetaData))

	rawSamplings, err := readBytes(root, rootTimeSamplings)
	if err != nil {
		return fmt.Errorf("reading time samplings: %w", err)
	}
	if a.timeSamplings, err = parseTimeSamplings(rawSamplings); err != nil {
		return err
	}

	topGroup, err := root.Group(rootTopObject)
	if err != nil {
		return fmt.Errorf("reading top object: %w", err)
	}
	top, err := newObject(a, topGroup, ObjectHeader{
		Name:     TopObjectName,
		FullName: "/",
		MetaData: a.metadata,
	})
	if err != nil {
		return fmt.Errorf("reading top object: %w", err)
	}
	a.top = top
	return nil
}

// Valid reports whether the archive was opened successfully.
func (a *Archive) Valid() bool {
	return a.err == nil
}

// Err returns the reason the archive is invalid, or nil.
func (a *Archive) Err() error {
	return a.err
}

// Name returns the path the archive was opened from.
func (a *Archive) Name() string {
	return a.name
}

// Top returns the top object. Only meaningful when Valid() is true;
// an invalid archive returns nil.
func (a *Archive) Top() *Object {
	return a.top
}

// MetaData returns the archive-level metadata, which is also the
// metadata of the top object.
func (a *Archive) MetaData() MetaData {
	return a.metadata
}

// FileVersion returns the Alembic file format version stored in the
// archive.
func (a *Archive) FileVersion() int32 {
	return a.fileVersion
}

// LibraryVersion returns the version of the library that wrote the
// archive.
func (a *Archive) LibraryVersion() int32 {
	return a.libraryVersion
}

// NumTimeSamplings returns the number of time samplings, including the
// implicit identity sampling at index 0.
func (a *Archive) NumTimeSamplings() int {
	return len(a.timeSamplings)
}

// TimeSampling returns time sampling index.
func (a *Archive) TimeSampling(index int) (TimeSampling, error) {
	if index < 0 || index >= len(a.timeSamplings) {
		return TimeSampling{}, fmt.Errorf("time sampling %d out of range (%d samplings)", index, len(a.timeSamplings))
	}
	return a.timeSamplings[index], nil
}

// Close releases the file mapping or decompressed buffer. It is safe
// to call on invalid archives and more than once.
func (a *Archive) Close() error {
	err := a.source.close()
	a.source = nil
	return err
}

// metaDataAt resolves an index into the indexed metadata table.
func (a *Archive) metaDataAt(index uint32) (MetaData, error) {
	if int(index) >= len(a.indexed) {
		return MetaData{}, fmt.Errorf("%w: metadata index %d out of range (%d entries)",
			ErrMalformed, index, len(a.indexed))
	}
	return a.indexed[index], nil
}

// readMetaData decodes a metadata reference: either an index into the
// table or, for inlineMetaData, a size followed by the serialized
// text. readSize reads the size in whatever width the caller's header
// format uses.
func (a *Archive) readMetaData(reader *byteReader, index uint32, readSize func() (uint32, error)) (MetaData, error) {
	if index != inlineMetaData {
		return a.metaDataAt(index)
	}
	size, err := readSize()
	if err != nil {
		return MetaData{}, err
	}
	serialized, err := reader.text(size)
	if err != nil {
		return MetaData{}, err
	}
	return ParseMetaData(serialized), nil
}

// parseIndexedMetaData decodes the shared metadata table: a sequence of
// one-byte lengths each followed by the serialized text. Entry 0 is
// always the empty metadata and is not stored.
func parseIndexedMetaData(raw []byte) ([]MetaData, error) {
	table := []MetaData{{}}
	reader := newByteReader(raw, "indexed metadata")
	for reader.remaining() > 0 {
		if len(table) >= inlineMetaData {
			return nil, fmt.Errorf("%w: indexed metadata has more than %d entries", ErrMalformed, inlineMetaData-1)
		}
		size, err := reader.uint8()
		if err != nil {
			return nil, err
		}
		serialized, err := reader.text(uint32(size))
		if err != nil {
			return nil, err
		}
		table = append(table, ParseMetaData(serialized))
	}
	return table, nil
}

func readBytes(group *ogawa.Group, index int) ([]byte, error) {
	data, err := group.Data(index)
	if err != nil {
		return nil, err
	}
	return data.Bytes()
}

func readInt32(group *ogawa.Group, index int) (int32, error) {
	raw, err := readBytes(group, index)
	if err != nil {
		return 0, err
	}
	if len(raw) != 4 {
		return 0, fmt.Errorf("%w: expected 4-byte integer, got %d bytes", ErrMalformed, len(raw))
	}
	return int32(binary.LittleEndian.Uint32(raw)), nil
}
