// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package harness

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/abcinspect/lib/archivetest"
	"github.com/bureau-foundation/abcinspect/lib/binhash"
	"github.com/bureau-foundation/abcinspect/lib/inspect"
	"github.com/bureau-foundation/abcinspect/lib/testutil"
)

func TestRunScene(t *testing.T) {
	scratch := t.TempDir()
	data := archivetest.Scene().Bytes()
	var report bytes.Buffer

	result, err := Run(data, Options{ScratchDir: scratch, Inspect: inspect.Options{Output: &report}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Clean() || len(result.Nodes) != 3 {
		t.Errorf("scene result = %+v", result)
	}

	digest := binhash.FormatDigest(binhash.HashBytes(data))
	if result.Digest != digest {
		t.Errorf("Digest = %q, want %q", result.Digest, digest)
	}
	name := filepath.Base(result.Path)
	if filepath.Dir(result.Path) != scratch {
		t.Errorf("scratch file %s not in %s", result.Path, scratch)
	}
	if !strings.HasPrefix(name, "abc-"+digest[:digestPrefixLength]+"-") || !strings.HasSuffix(name, ".abc") {
		t.Errorf("scratch file name %q does not carry the digest prefix", name)
	}
	testutil.RequireLines(t, report.String(), "file "+result.Path+":", "Node full name: /xform/mesh")

	if _, err := os.Stat(result.Path); !os.IsNotExist(err) {
		t.Errorf("scratch file was not removed: %v", err)
	}
}

func TestRunArchiveOutcomesAreNotErrors(t *testing.T) {
	scene := archivetest.Scene().Bytes()
	inputs := map[string][]byte{
		"empty":     nil,
		"truncated": archivetest.Truncate(scene, 20),
		"garbage":   []byte("not an archive at all"),
		"cyclic":    archivetest.CyclicArchive(),
		"deep":      archivetest.DeepArchive(20),
	}
	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			scratch := t.TempDir()
			_, err := Run(data, Options{ScratchDir: scratch, Inspect: inspect.Options{MaxDepth: 10}})
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			entries, err := os.ReadDir(scratch)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 0 {
				t.Errorf("scratch directory not empty: %v", entries)
			}
		})
	}
}

func TestRunMissingScratchDir(t *testing.T) {
	_, err := Run(archivetest.Scene().Bytes(), Options{ScratchDir: testutil.MissingDir(t)})

	var environment *EnvironmentError
	if !errors.As(err, &environment) {
		t.Fatalf("Run error = %v, want *EnvironmentError", err)
	}
	if environment.Op != "creating scratch file" {
		t.Errorf("Op = %q", environment.Op)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v does not wrap os.ErrNotExist", err)
	}
	if environment.ExitCode() != 1 {
		t.Errorf("ExitCode = %d, want 1", environment.ExitCode())
	}
}

func TestRunIsDeterministic(t *testing.T) {
	data := archivetest.Catalog().Bytes()
	scratch := t.TempDir()

	var first, second bytes.Buffer
	firstResult, err := Run(data, Options{ScratchDir: scratch, Inspect: inspect.Options{Output: &first}})
	if err != nil {
		t.Fatal(err)
	}
	secondResult, err := Run(data, Options{ScratchDir: scratch, Inspect: inspect.Options{Output: &second}})
	if err != nil {
		t.Fatal(err)
	}

	// Scratch names differ between runs; everything else matches.
	firstReport := strings.ReplaceAll(first.String(), firstResult.Path, "INPUT")
	secondReport := strings.ReplaceAll(second.String(), secondResult.Path, "INPUT")
	if firstReport != secondReport {
		t.Errorf("reports differ:\n%s\n---\n%s", firstReport, secondReport)
	}
	if firstResult.Digest != secondResult.Digest {
		t.Errorf("digests differ: %s vs %s", firstResult.Digest, secondResult.Digest)
	}
}
