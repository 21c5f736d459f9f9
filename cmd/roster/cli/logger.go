// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"github.com/roster-tools/roster/lib/runlog"
)

// NewConsoleLogger returns a console-only logger on stderr. Commands
// that keep a run log replace it with a file-backed logger once the
// configuration has been resolved.
func NewConsoleLogger(level slog.Leveler) *slog.Logger {
	return runlog.New(os.Stderr, nil, runlog.Options{Level: level})
}
