// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package runlog provides roster's run logger: a slog handler that
// renders one line per event as "[timestamp] [LEVEL] message key=value"
// and mirrors every line to two sinks — the operator's console, with
// level-based coloring when the console is a terminal, and a plain
// append-only log file.
//
// The log file is the durable audit record of every mutation the tool
// performed; the console rendering exists for the operator watching a
// run. Both sinks always receive the same lines.
package runlog
