// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build version information.
package version

import "runtime/debug"

// Version is the release version, injected at build time via
// -ldflags "-X github.com/roster-tools/roster/lib/version.Version=...".
// Development builds report "devel" plus the VCS revision when the
// build info carries one.
var Version = "devel"

// Info returns the human-readable version string.
func Info() string {
	if Version != "devel" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && len(setting.Value) >= 12 {
				return "devel (" + setting.Value[:12] + ")"
			}
		}
	}
	return Version
}
