// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package abc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Frame magics of the compressed wrappers accepted in front of an
// Ogawa container.
var (
	zstdFrameMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4FrameMagic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// source is the byte range an archive is decoded from: either a
// read-only mapping of the file or a decompressed in-memory copy.
type source struct {
	reader  io.ReaderAt
	size    int64
	release func() error
}

func (s *source) close() error {
	if s == nil || s.release == nil {
		return nil
	}
	release := s.release
	s.release = nil
	return release()
}

// loadSource opens path and returns the bytes to decode. An empty file
// is malformed rather than unreadable: it is a legitimate, if useless,
// fuzz input.
func loadSource(path string, maxInputBytes int64) (*source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stating archive: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrMalformed)
	}

	prefix := make([]byte, len(zstdFrameMagic))
	if _, err := file.ReadAt(prefix, 0); err == nil {
		switch {
		case bytes.Equal(prefix, zstdFrameMagic):
			return decompressSource(file, "zstd", maxInputBytes)
		case bytes.Equal(prefix, lz4FrameMagic):
			return decompressSource(file, "lz4", maxInputBytes)
		}
	}

	return mapSource(file, info.Size())
}

// decompressSource inflates a zstd or lz4 frame stream into memory.
// At most maxInputBytes of output are accepted; a stream that inflates
// beyond that is rejected before the excess is buffered.
func decompressSource(file *os.File, codec string, maxInputBytes int64) (*source, error) {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding archive: %w", err)
	}

	var reader io.Reader
	switch codec {
	case "zstd":
		decoder, err := zstd.NewReader(file,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(uint64(maxInputBytes)),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd header: %v", ErrMalformed, err)
		}
		defer decoder.Close()
		reader = decoder
	case "lz4":
		reader = lz4.NewReader(file)
	default:
		return nil, fmt.Errorf("unsupported input codec %q", codec)
	}

	data, err := io.ReadAll(io.LimitReader(reader, maxInputBytes+1))
	if errors.Is(err, zstd.ErrDecoderSizeExceeded) {
		return nil, fmt.Errorf("%w: %s frame declares more than %d bytes", ErrInputTooLarge, codec, maxInputBytes)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s stream: %v", ErrMalformed, codec, err)
	}
	if int64(len(data)) > maxInputBytes {
		return nil, fmt.Errorf("%w: %s stream inflates past %d bytes", ErrInputTooLarge, codec, maxInputBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s stream is empty", ErrMalformed, codec)
	}

	return &source{
		reader:  bytes.NewReader(data),
		size:    int64(len(data)),
		release: func() error { return nil },
	}, nil
}
