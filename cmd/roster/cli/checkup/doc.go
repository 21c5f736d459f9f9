// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package checkup provides the check/fix framework behind the verify
// command: per-check results with optional repair closures, a fix
// executor that understands dry-run and root-only repairs, and the
// checklist printer.
package checkup
