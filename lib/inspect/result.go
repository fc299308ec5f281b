// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"fmt"

	"github.com/bureau-foundation/abcinspect/lib/abcgeom"
)

// FailureKind classifies a recorded failure.
type FailureKind uint8

const (
	// FailureNode: an object or one of its children could not be read.
	FailureNode FailureKind = iota + 1

	// FailureSchema: an object is tagged with a schema but its schema
	// compound cannot be read.
	FailureSchema

	// FailureCycle: an object group was reached a second time.
	FailureCycle

	// FailurePanic: a summarizer panicked. The panic was contained to
	// its object.
	FailurePanic

	// FailureUnexpected: a panic escaped the walk and was caught at
	// the top level.
	FailureUnexpected
)

var failureKindNames = map[FailureKind]string{
	FailureNode:       "node",
	FailureSchema:     "schema",
	FailureCycle:      "cycle",
	FailurePanic:      "panic",
	FailureUnexpected: "unexpected",
}

func (k FailureKind) String() string {
	if name, ok := failureKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

// MarshalText writes the kind name.
func (k FailureKind) MarshalText() ([]byte, error) {
	name, ok := failureKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown failure kind %d", uint8(k))
	}
	return []byte(name), nil
}

// UnmarshalText parses a kind name written by MarshalText.
func (k *FailureKind) UnmarshalText(text []byte) error {
	for kind, name := range failureKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown failure kind %q", text)
}

// NodeRecord is one visited object.
type NodeRecord struct {
	Path string `cbor:"path"`

	// Parent is the index in Result.Nodes of the object this one was
	// reached from, or -1 for the top object.
	Parent int `cbor:"parent"`

	Depth int             `cbor:"depth"`
	Type  abcgeom.TypeTag `cbor:"type"`
}

// Failure is one contained failure.
type Failure struct {
	Path    string      `cbor:"path"`
	Kind    FailureKind `cbor:"kind"`
	Message string      `cbor:"message"`
}

// Result is the structured record of one inspection.
type Result struct {
	Path string `cbor:"path"`

	// Digest is the hex input digest. Inspect leaves it empty; callers
	// that hash their input fill it in.
	Digest string `cbor:"digest,omitempty"`

	Valid bool `cbor:"valid"`

	// InvalidReason explains why the archive could not be opened.
	InvalidReason string `cbor:"invalid_reason,omitempty"`

	// Name is the archive's display name.
	Name string `cbor:"name,omitempty"`

	// Nodes lists visited objects in visit order.
	Nodes []NodeRecord `cbor:"nodes,omitempty"`

	Failures []Failure `cbor:"failures,omitempty"`

	// Aborted is set when a traversal limit stopped the walk.
	Aborted string `cbor:"aborted,omitempty"`
}

// Clean reports whether the archive was valid and traversed completely
// without any recorded failure.
func (r Result) Clean() bool {
	return r.Valid && r.Aborted == "" && len(r.Failures) == 0
}
