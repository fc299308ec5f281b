// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides abcinspect's standard CBOR encoding
// configuration.
//
// Inspection results leave the process in two forms: the line-oriented
// text report for people, and CBOR records for corpus pipelines that
// aggregate outcomes across millions of fuzz inputs. This package
// holds the one encoder configuration every record is written with, so
// records from the CLI and the fuzz harness are byte-for-byte
// comparable. The encoder uses Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical data always produces identical
// bytes.
//
// For single records:
//
//	data, err := codec.Marshal(result)
//	err = codec.Unmarshal(data, &result)
//
// For CBOR sequences (RFC 8742), one record per inspected input:
//
//	encoder := codec.NewEncoder(file)
//	decoder := codec.NewDecoder(file)
//
// [Diagnose], [DiagnoseFirst] and [DiagnoseSequence] render records in
// CBOR diagnostic notation for humans reading a result file.
//
// # Struct Tag Rules
//
// Record types carry `cbor` tags only. Enumerations that appear in
// records implement encoding.TextMarshaler and are written as text
// strings, so a record stays readable when the enumeration grows.
package codec
