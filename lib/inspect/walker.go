// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/bureau-foundation/abcinspect/lib/abc"
	"github.com/bureau-foundation/abcinspect/lib/abcgeom"
)

// walker holds the state of one traversal.
type walker struct {
	options Options
	logger  *slog.Logger
	report  *report
	result  *Result

	// visited holds the group positions of every visited object. The
	// empty group (position 0) cannot have children and is never
	// recorded.
	visited map[uint64]struct{}

	// spent counts visited objects and rejected children alike; it is
	// what MaxNodes bounds.
	spent int
}

// cursor is one entry of the traversal stack: an object whose children
// are being visited, and the next child to visit.
type cursor struct {
	object *abc.Object
	id     int
	depth  int
	next   int
}

func newWalker(options Options, out *report, result *Result) *walker {
	return &walker{
		options: options,
		logger:  options.Logger,
		report:  out,
		result:  result,
		visited: make(map[uint64]struct{}),
	}
}

// walk visits top and every object reachable from it, depth-first in
// child index order. The stack holds one cursor per level, so its
// length is bounded by MaxDepth.
func (w *walker) walk(top *abc.Object) {
	stack := []*cursor{{object: top, id: w.visit(top, -1, 0)}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		if current.next >= current.object.NumChildren() {
			stack = stack[:len(stack)-1]
			continue
		}
		index := current.next
		current.next++

		depth := current.depth + 1
		header := current.object.ChildHeader(index)
		if depth > w.options.MaxDepth {
			w.abort(fmt.Sprintf("depth limit %d exceeded at %s", w.options.MaxDepth, header.FullName))
			return
		}
		if w.spent >= w.options.MaxNodes {
			w.abort(fmt.Sprintf("node limit %d reached before %s", w.options.MaxNodes, header.FullName))
			return
		}

		// The group position is checked before the child is read, so a
		// shared group costs one header decode however often it is
		// referenced.
		position, err := current.object.ChildPosition(index)
		if err != nil {
			w.reject(header.FullName, FailureNode, err)
			continue
		}
		if _, seen := w.visited[position]; seen && position != 0 {
			w.reject(header.FullName, FailureCycle,
				fmt.Errorf("object group at position %d was already visited", position))
			continue
		}
		child, err := current.object.Child(index)
		if err != nil {
			w.reject(header.FullName, FailureNode, err)
			continue
		}

		id := w.visit(child, current.id, depth)
		stack = append(stack, &cursor{object: child, id: id, depth: depth})
	}
}

// visit records object, prints its header and summarizes it. It
// returns the object's index in the result.
func (w *walker) visit(object *abc.Object, parent, depth int) int {
	header := object.Header()
	tag := abcgeom.Classify(header)

	w.spent++
	id := len(w.result.Nodes)
	w.result.Nodes = append(w.result.Nodes, NodeRecord{
		Path:   header.FullName,
		Parent: parent,
		Depth:  depth,
		Type:   tag,
	})
	if position := object.Position(); position != 0 {
		w.visited[position] = struct{}{}
	}
	w.logger.Debug("visiting object", "path", header.FullName, "type", tag, "depth", depth)

	w.report.line("Node name: %s", header.Name)
	w.report.line("Node full name: %s", header.FullName)
	w.report.line("MetaData: %s", header.MetaData.Serialize())
	w.summarize(object, tag)
	return id
}

// summarize runs the handler for tag. A panic inside a handler is
// contained to this object.
func (w *walker) summarize(object *abc.Object, tag abcgeom.TypeTag) {
	defer func() {
		if recovered := recover(); recovered != nil {
			w.logger.Error("summarizer panicked",
				"path", object.FullName(),
				"type", tag,
				"panic", recovered,
				"stack", string(debug.Stack()),
			)
			w.fail(object.FullName(), FailurePanic, fmt.Errorf("summarizing %s: %v", tag, recovered))
		}
	}()

	switch tag {
	case abcgeom.Unrecognized:
		w.report.line("Object type ignored.")
	case abcgeom.PolyMesh:
		w.summarizePolyMesh(object)
	case abcgeom.SubD:
		w.summarizeSubD(object)
	case abcgeom.FaceSet:
		w.summarizeFaceSet(object)
	case abcgeom.Curves:
		w.summarizeCurves(object)
	case abcgeom.Xform:
		w.summarizeXform(object)
	case abcgeom.Material:
		w.summarizeMaterial(object)
	default:
		panic(fmt.Sprintf("no summarizer for type tag %s", tag))
	}
}

// fail records a contained failure and reports it.
func (w *walker) fail(path string, kind FailureKind, err error) {
	w.result.Failures = append(w.result.Failures, Failure{Path: path, Kind: kind, Message: err.Error()})
	w.report.line("error: %s: %v", path, err)
	w.logger.Warn("object failed", "path", path, "kind", kind, "error", err)
}

// reject records a child that could not be visited. Rejections count
// against MaxNodes so a wide fan-out of bad children still ends the walk.
func (w *walker) reject(path string, kind FailureKind, err error) {
	w.spent++
	w.fail(path, kind, err)
}

// schemaMismatch records an object whose schema compound could not be
// read. Unlike fail it writes no report line: the summary degrades to
// a zero count instead.
func (w *walker) schemaMismatch(object *abc.Object, err error) {
	w.result.Failures = append(w.result.Failures, Failure{
		Path:    object.FullName(),
		Kind:    FailureSchema,
		Message: err.Error(),
	})
	w.logger.Warn("schema mismatch", "path", object.FullName(), "error", err)
}

func (w *walker) abort(reason string) {
	w.result.Aborted = reason
	w.report.line("traversal aborted: %s", reason)
	w.logger.Warn("traversal aborted", "reason", reason, "visited", len(w.result.Nodes))
}
