// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// inputDomainKey is the BLAKE3 key for input digests: the ASCII
// domain name zero-padded to 32 bytes. Changing it changes every
// digest.
var inputDomainKey = [32]byte{
	'a', 'b', 'c', 'i', 'n', 's', 'p', 'e', 'c', 't', '.', 'i', 'n', 'p', 'u', 't',
}

func newHasher() *blake3.Hasher {
	hasher, err := blake3.NewKeyed(inputDomainKey[:])
	if err != nil {
		// NewKeyed only fails for keys that are not 32 bytes.
		panic("binhash: " + err.Error())
	}
	return hasher
}

// HashBytes computes the digest of data.
func HashBytes(data []byte) [32]byte {
	hasher := newHasher()
	hasher.Write(data)
	var digest [32]byte
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// HashFile computes the digest of the file at path. The file is
// streamed through the hash function in chunks (via io.Copy) to keep
// memory usage constant regardless of file size.
func HashFile(path string) ([32]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return [32]byte{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher := newHasher()
	if _, err := io.Copy(hasher, file); err != nil {
		return [32]byte{}, fmt.Errorf("hashing %s: %w", path, err)
	}

	var digest [32]byte
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// FormatDigest returns the hex-encoded string representation of a
// digest.
func FormatDigest(digest [32]byte) string {
	return hex.EncodeToString(digest[:])
}

// ParseDigest parses a hex-encoded digest string into a 32-byte
// array. Returns an error if the string is not a valid 64-character
// hex encoding of 32 bytes.
func ParseDigest(hexString string) ([32]byte, error) {
	var digest [32]byte
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing hash digest: %w", err)
	}
	if len(decoded) != 32 {
		return digest, fmt.Errorf("hash digest is %d bytes, want 32", len(decoded))
	}
	copy(digest[:], decoded)
	return digest, nil
}
