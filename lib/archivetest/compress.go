// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package archivetest

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Zstd wraps data in a single zstd frame.
func Zstd(data []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	defer encoder.Close()
	return encoder.EncodeAll(data, nil), nil
}

// LZ4 wraps data in an lz4 frame stream.
func LZ4(data []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer := lz4.NewWriter(&buffer)
	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	return buffer.Bytes(), nil
}
