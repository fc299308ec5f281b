// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !darwin && !linux

package abc

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

func mapSource(file *os.File, size int64) (*source, error) {
	data, err := io.ReadAll(io.LimitReader(file, size))
	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}
	return &source{
		reader:  bytes.NewReader(data),
		size:    int64(len(data)),
		release: func() error { return nil },
	}, nil
}
