// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"io"
	"log/slog"

	"github.com/bureau-foundation/abcinspect/lib/abc"
)

// Traversal limits applied when Options leaves them unset.
const (
	DefaultMaxDepth = 512
	DefaultMaxNodes = 1_000_000
)

// Options configures Inspect.
type Options struct {
	// Output receives the text report. Nil discards it.
	Output io.Writer

	// Logger receives diagnostics about failures and aborted walks.
	// Nil discards them.
	Logger *slog.Logger

	// MaxDepth is the deepest object visited; the top object is at
	// depth 0. Zero means DefaultMaxDepth.
	MaxDepth int

	// MaxNodes is the number of objects visited or children rejected
	// (cycles, unreadable groups) before the walk is aborted. Zero means
	// DefaultMaxNodes.
	MaxNodes int

	// MaxInputBytes caps the decompressed size of compressed inputs.
	// Zero means abc.DefaultMaxInputBytes.
	MaxInputBytes int64
}

func (o Options) withDefaults() Options {
	if o.Output == nil {
		o.Output = io.Discard
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxNodes <= 0 {
		o.MaxNodes = DefaultMaxNodes
	}
	if o.MaxInputBytes <= 0 {
		o.MaxInputBytes = abc.DefaultMaxInputBytes
	}
	return o
}
