// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// Encoder writes a CBOR sequence, one record per Encode call.
type Encoder = cbor.Encoder

// Decoder reads a CBOR sequence, one record per Decode call.
type Decoder = cbor.Decoder

var (
	// encMode uses Core Deterministic Encoding (RFC 8949 §4.2), so two
	// inspections of the same archive produce byte-identical records.
	// Types implementing encoding.TextMarshaler, such as failure kinds
	// and type tags, are written as text strings.
	encMode = mustEncMode(recordEncOptions())

	// decMode accepts records from newer writers: unknown fields are
	// ignored. Untyped maps decode with string keys.
	decMode = mustDecMode(cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	})
)

func recordEncOptions() cbor.EncOptions {
	options := cbor.CoreDetEncOptions()
	options.TextMarshaler = cbor.TextMarshalerTextString
	return options
}

func mustEncMode(options cbor.EncOptions) cbor.EncMode {
	mode, err := options.EncMode()
	if err != nil {
		panic("codec: invalid CBOR encoder options: " + err.Error())
	}
	return mode
}

func mustDecMode(options cbor.DecOptions) cbor.DecMode {
	mode, err := options.DecMode()
	if err != nil {
		panic("codec: invalid CBOR decoder options: " + err.Error())
	}
	return mode
}

// Marshal encodes one record.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes one record.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// NewEncoder returns an Encoder appending records to w.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a Decoder reading records from r.
func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}

// Diagnose returns the diagnostic notation (RFC 8949 §8) of a single
// encoded record.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// DiagnoseFirst returns the diagnostic notation of the first record in
// data and the bytes that follow it.
func DiagnoseFirst(data []byte) (string, []byte, error) {
	return cbor.DiagnoseFirst(data)
}

// DiagnoseSequence returns the diagnostic notation of every record in
// a CBOR sequence, in order.
func DiagnoseSequence(data []byte) ([]string, error) {
	var notations []string
	for len(data) > 0 {
		notation, remaining, err := DiagnoseFirst(data)
		if err != nil {
			return notations, fmt.Errorf("record %d: %w", len(notations), err)
		}
		notations = append(notations, notation)
		data = remaining
	}
	return notations, nil
}
