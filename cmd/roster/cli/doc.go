// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the roster command tree: subcommand dispatch,
// pflag-backed flag parsing, structured help output with examples,
// typo suggestions, and the interactive confirmation used by
// destructive commands.
package cli
