// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package abc

import (
	"encoding/binary"
	"fmt"
	"math"
)

// byteReader decodes the little-endian header blobs stored in data
// blocks. Every read is bounds-checked; running past the end returns
// an error wrapping ErrMalformed.
type byteReader struct {
	data   []byte
	offset int
	what   string
}

func newByteReader(data []byte, what string) *byteReader {
	return &byteReader{data: data, what: what}
}

func (r *byteReader) remaining() int {
	return len(r.data) - r.offset
}

func (r *byteReader) take(length int) ([]byte, error) {
	if length < 0 || length > r.remaining() {
		return nil, fmt.Errorf("%w: %s: need %d bytes at offset %d, have %d",
			ErrMalformed, r.what, length, r.offset, r.remaining())
	}
	raw := r.data[r.offset : r.offset+length]
	r.offset += length
	return raw, nil
}

func (r *byteReader) uint8() (uint8, error) {
	raw, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return raw[0], nil
}

func (r *byteReader) uint32() (uint32, error) {
	raw, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(raw), nil
}

func (r *byteReader) float64() (float64, error) {
	raw, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(raw)), nil
}

// sized reads an integer whose width is selected by a property
// header's size hint: 0 for one byte, 1 for two, 2 for four.
func (r *byteReader) sized(hint uint32) (uint32, error) {
	switch hint {
	case 0:
		value, err := r.uint8()
		return uint32(value), err
	case 1:
		raw, err := r.take(2)
		if err != nil {
			return 0, err
		}
		return uint32(binary.LittleEndian.Uint16(raw)), nil
	case 2:
		return r.uint32()
	default:
		return 0, fmt.Errorf("%w: %s: invalid size hint %d", ErrMalformed, r.what, hint)
	}
}

// text reads length bytes as a string.
func (r *byteReader) text(length uint32) (string, error) {
	if uint64(length) > uint64(r.remaining()) {
		return "", fmt.Errorf("%w: %s: string of %d bytes at offset %d, have %d",
			ErrMalformed, r.what, length, r.offset, r.remaining())
	}
	raw, err := r.take(int(length))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
