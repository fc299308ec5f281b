// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/abcinspect/lib/archivetest"
	"github.com/bureau-foundation/abcinspect/lib/binhash"
	"github.com/bureau-foundation/abcinspect/lib/cli"
	"github.com/bureau-foundation/abcinspect/lib/codec"
	"github.com/bureau-foundation/abcinspect/lib/config"
	"github.com/bureau-foundation/abcinspect/lib/inspect"
	"github.com/bureau-foundation/abcinspect/lib/testutil"
)

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvironmentVariable, "")
	var stdout, stderr bytes.Buffer
	err := run(append([]string{"--log-level", "error"}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestInspectsEveryArchive(t *testing.T) {
	scene := testutil.WriteFile(t, "scene.abc", archivetest.Scene().Bytes())
	empty := testutil.WriteFile(t, "empty.abc", nil)

	stdout, _, err := runCommand(t, scene, empty)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	testutil.RequireLines(t, stdout,
		"file "+scene+":",
		"Node full name: /xform/mesh",
		"file "+empty+" (invalid):",
	)
}

func TestQuietSuppressesReport(t *testing.T) {
	scene := testutil.WriteFile(t, "scene.abc", archivetest.Scene().Bytes())

	stdout, _, err := runCommand(t, "--quiet", scene)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout != "" {
		t.Errorf("quiet run printed %q", stdout)
	}
}

func TestResultFileAndDump(t *testing.T) {
	sceneData := archivetest.Scene().Bytes()
	scene := testutil.WriteFile(t, "scene.abc", sceneData)
	cyclic := testutil.WriteFile(t, "cyclic.abc", archivetest.CyclicArchive())
	resultPath := filepath.Join(t.TempDir(), "results.cbor")

	if _, _, err := runCommand(t, "--quiet", "--result", resultPath, scene, cyclic); err != nil {
		t.Fatalf("run: %v", err)
	}

	file, err := os.Open(resultPath)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	decoder := codec.NewDecoder(file)

	var first, second inspect.Result
	if err := decoder.Decode(&first); err != nil {
		t.Fatalf("decoding first record: %v", err)
	}
	if err := decoder.Decode(&second); err != nil {
		t.Fatalf("decoding second record: %v", err)
	}
	if first.Path != scene || !first.Clean() || len(first.Nodes) != 3 {
		t.Errorf("first record = %+v", first)
	}
	if want := binhash.FormatDigest(binhash.HashBytes(sceneData)); first.Digest != want {
		t.Errorf("first digest = %q, want %q", first.Digest, want)
	}
	if second.Path != cyclic || len(second.Failures) != 1 || second.Failures[0].Kind != inspect.FailureCycle {
		t.Errorf("second record = %+v", second)
	}

	stdout, _, err := runCommand(t, "--dump", resultPath)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("dump printed %d lines, want 2:\n%s", len(lines), stdout)
	}
	if !strings.Contains(lines[1], `"kind": "cycle"`) {
		t.Errorf("second dumped record %q does not show the cycle failure", lines[1])
	}
}

func TestFlagsOverrideLimits(t *testing.T) {
	deep := testutil.WriteFile(t, "deep.abc", archivetest.DeepArchive(10))

	stdout, _, err := runCommand(t, "--max-depth", "3", deep)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	testutil.RequireLines(t, stdout, "traversal aborted: depth limit 3 exceeded at /n0/n1/n2/n3")
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no archives", nil},
		{"unknown flag", []string{"--frobnicate", "a.abc"}},
		{"invalid limit", []string{"--max-nodes", "0", "a.abc"}},
		{"missing config", []string{"--config", "/nonexistent/abcinspect.yaml", "a.abc"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := runCommand(t, test.args...)
			if code := cli.ExitCode(err); code != cli.ExitUsage {
				t.Errorf("exit code = %d (error %v), want %d", code, err, cli.ExitUsage)
			}
		})
	}
}

func TestVersionAndHelp(t *testing.T) {
	stdout, _, err := runCommand(t, "--version")
	if err != nil || !strings.HasPrefix(stdout, "abc-inspect ") {
		t.Errorf("--version = %q, %v", stdout, err)
	}

	_, stderr, err := runCommand(t, "--help")
	if err != nil {
		t.Errorf("--help: %v", err)
	}
	if !strings.Contains(stderr, "abc-inspect [flags] <archive>...") {
		t.Errorf("help output missing usage line:\n%s", stderr)
	}
}

func TestDigestDescribesInspectedBytes(t *testing.T) {
	sceneData := archivetest.Scene().Bytes()
	scene := testutil.WriteFile(t, "scene.abc", sceneData)
	resultPath := filepath.Join(t.TempDir(), "results.cbor")

	// Rewrite the archive as soon as it has been inspected.
	original := inspectArchive
	t.Cleanup(func() { inspectArchive = original })
	inspectArchive = func(path string, options inspect.Options) inspect.Result {
		result := original(path, options)
		if err := os.WriteFile(path, archivetest.CyclicArchive(), 0o644); err != nil {
			t.Errorf("rewriting %s: %v", path, err)
		}
		return result
	}

	if _, _, err := runCommand(t, "--quiet", "--result", resultPath, scene); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(resultPath)
	if err != nil {
		t.Fatal(err)
	}
	var record inspect.Result
	if err := codec.Unmarshal(data, &record); err != nil {
		t.Fatalf("decoding record: %v", err)
	}
	if !record.Clean() || len(record.Nodes) != 3 {
		t.Errorf("record = %+v, want the scene", record)
	}
	if want := binhash.FormatDigest(binhash.HashBytes(sceneData)); record.Digest != want {
		t.Errorf("digest = %q, want %q of the inspected bytes", record.Digest, want)
	}
}
