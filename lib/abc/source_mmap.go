// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build darwin || linux

package abc

import (
	"fmt"
	"io"
	"math"
	"os"
	"runtime/debug"

	"golang.org/x/sys/unix"
)

// mappedFile is a read-only memory map of an archive file. Mapping
// avoids copying large archives when only a few headers are read.
type mappedFile struct {
	data []byte
}

func mapSource(file *os.File, size int64) (*source, error) {
	if size > math.MaxInt {
		return nil, fmt.Errorf("archive of %d bytes cannot be mapped", size)
	}
	data, err := unix.Mmap(int(file.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("memory-mapping archive: %w", err)
	}
	mapped := &mappedFile{data: data}
	return &source{reader: mapped, size: size, release: mapped.unmap}, nil
}

// ReadAt copies from the mapping. A file truncated underneath the
// mapping raises SIGBUS on access; that fault is turned into an error
// instead of crashing the process.
func (m *mappedFile) ReadAt(p []byte, off int64) (readCount int, err error) {
	if off < 0 || off >= int64(len(m.data)) {
		return 0, io.EOF
	}

	old := debug.SetPanicOnFault(true)
	defer func() {
		debug.SetPanicOnFault(old)
		if r := recover(); r != nil {
			err = fmt.Errorf("page fault reading archive at offset %d: %v", off, r)
		}
	}()

	readCount = copy(p, m.data[off:])
	if readCount < len(p) {
		return readCount, io.EOF
	}
	return readCount, nil
}

func (m *mappedFile) unmap() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	if err != nil {
		return fmt.Errorf("unmapping archive: %w", err)
	}
	return nil
}
