// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"testing"
)

// sampleOutcome is an enumeration written as text, like the failure
// kinds in inspection records.
type sampleOutcome uint8

const (
	outcomeClean sampleOutcome = iota
	outcomeCycle
)

func (o sampleOutcome) MarshalText() ([]byte, error) {
	switch o {
	case outcomeClean:
		return []byte("clean"), nil
	case outcomeCycle:
		return []byte("cycle"), nil
	default:
		return nil, fmt.Errorf("unknown outcome %d", uint8(o))
	}
}

func (o *sampleOutcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "clean":
		*o = outcomeClean
	case "cycle":
		*o = outcomeCycle
	default:
		return fmt.Errorf("unknown outcome %q", text)
	}
	return nil
}

// sampleRecord is a representative inspection record.
type sampleRecord struct {
	Path    string        `cbor:"path"`
	Digest  string        `cbor:"digest,omitempty"`
	Nodes   []string      `cbor:"nodes"`
	Outcome sampleOutcome `cbor:"outcome"`
}

func (r sampleRecord) equal(other sampleRecord) bool {
	return r.Path == other.Path && r.Digest == other.Digest &&
		r.Outcome == other.Outcome && slices.Equal(r.Nodes, other.Nodes)
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleRecord{
		Path:    "/corpus/scene.abc",
		Digest:  "ab12",
		Nodes:   []string{"/", "/xform", "/xform/mesh"},
		Outcome: outcomeCycle,
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Marshal produced empty output")
	}

	var decoded sampleRecord
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !decoded.equal(original) {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	record := sampleRecord{Path: "a.abc", Nodes: []string{"/"}, Outcome: outcomeClean}

	first, err := Marshal(record)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(record)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestTextMarshalerWrittenAsText(t *testing.T) {
	data, err := Marshal(sampleRecord{Path: "a.abc", Outcome: outcomeCycle})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"outcome": "cycle"`) {
		t.Errorf("notation %q does not carry the outcome as text", notation)
	}
}

func TestEncoderDecoderSequence(t *testing.T) {
	records := []sampleRecord{
		{Path: "one.abc", Nodes: []string{"/"}},
		{Path: "two.abc", Nodes: []string{"/", "/a"}, Outcome: outcomeCycle},
		{Path: "three.abc"},
	}

	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	for i, want := range records {
		var got sampleRecord
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode record %d: %v", i, err)
		}
		if !got.equal(want) {
			t.Errorf("record %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestOmitemptyRespected(t *testing.T) {
	withDigest, err := Marshal(sampleRecord{Path: "a", Digest: "ff"})
	if err != nil {
		t.Fatal(err)
	}
	withoutDigest, err := Marshal(sampleRecord{Path: "a"})
	if err != nil {
		t.Fatal(err)
	}
	if len(withoutDigest) >= len(withDigest) {
		t.Errorf("omitempty not effective: without=%d bytes, with=%d bytes",
			len(withoutDigest), len(withDigest))
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var record sampleRecord
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &record); err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func TestUnmarshalUnknownOutcome(t *testing.T) {
	data, err := Marshal(map[string]any{"path": "a", "outcome": "exploded"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var record sampleRecord
	if err := Unmarshal(data, &record); err == nil {
		t.Error("Unmarshal should reject an unknown outcome")
	}
}

func TestDiagnoseFirst(t *testing.T) {
	item1, err := Marshal("hello")
	if err != nil {
		t.Fatalf("Marshal item 1: %v", err)
	}
	item2, err := Marshal(int64(42))
	if err != nil {
		t.Fatalf("Marshal item 2: %v", err)
	}
	sequence := append(append([]byte(nil), item1...), item2...)

	notation, remaining, err := DiagnoseFirst(sequence)
	if err != nil {
		t.Fatalf("DiagnoseFirst: %v", err)
	}
	if !strings.Contains(notation, `"hello"`) {
		t.Errorf("first item notation %q does not contain \"hello\"", notation)
	}
	if len(remaining) == 0 {
		t.Fatal("expected remaining bytes after first item")
	}

	notation2, remaining2, err := DiagnoseFirst(remaining)
	if err != nil {
		t.Fatalf("DiagnoseFirst second: %v", err)
	}
	if !strings.Contains(notation2, "42") {
		t.Errorf("second item notation %q does not contain \"42\"", notation2)
	}
	if len(remaining2) != 0 {
		t.Errorf("expected no remaining bytes, got %d", len(remaining2))
	}
}

func BenchmarkMarshal(b *testing.B) {
	record := sampleRecord{Path: "/corpus/scene.abc", Nodes: []string{"/", "/xform"}}
	b.ReportAllocs()
	for b.Loop() {
		Marshal(record)
	}
}

func TestDiagnoseSequence(t *testing.T) {
	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, record := range []sampleRecord{{Path: "one.abc"}, {Path: "two.abc", Outcome: outcomeCycle}} {
		if err := encoder.Encode(record); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	notations, err := DiagnoseSequence(buffer.Bytes())
	if err != nil {
		t.Fatalf("DiagnoseSequence: %v", err)
	}
	if len(notations) != 2 {
		t.Fatalf("got %d records, want 2: %q", len(notations), notations)
	}
	if !strings.Contains(notations[0], `"one.abc"`) || !strings.Contains(notations[1], `"cycle"`) {
		t.Errorf("notations = %q", notations)
	}

	truncated := buffer.Bytes()[:buffer.Len()-1]
	notations, err = DiagnoseSequence(truncated)
	if err == nil {
		t.Fatal("DiagnoseSequence accepted a truncated sequence")
	}
	if len(notations) != 1 {
		t.Errorf("got %d complete records before the error, want 1", len(notations))
	}
}
