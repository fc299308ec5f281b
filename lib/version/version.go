// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// shortCommitLength matches git rev-parse --short.
const shortCommitLength = 7

// build describes the binary: the ldflags values, with VCS settings
// stamped by the go command filling in whatever ldflags left unset.
type build struct {
	commit string
	dirty  bool
	time   string
}

func currentBuild() build {
	current := build{commit: GitCommit, dirty: GitDirty == "true", time: BuildTime}
	if info, ok := debug.ReadBuildInfo(); ok {
		current.fill(info.Settings)
	}
	return current
}

func (b *build) fill(settings []debug.BuildSetting) {
	if b.commit != "unknown" {
		return
	}
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			b.commit = setting.Value
			if len(b.commit) > shortCommitLength {
				b.commit = b.commit[:shortCommitLength]
			}
		case "vcs.modified":
			b.dirty = setting.Value == "true"
		case "vcs.time":
			if b.time == "unknown" {
				b.time = setting.Value
			}
		}
	}
}

func (b build) String() string {
	dirty := ""
	if b.dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, b.commit, dirty, b.time)
}

// Info returns a formatted version string suitable for --version output.
func Info() string {
	return currentBuild().String()
}

// Full returns Info for the named binary plus the Go version and
// platform.
func Full(binary string) string {
	return fmt.Sprintf("%s %s\n  Go: %s\n  Platform: %s/%s",
		binary, Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
