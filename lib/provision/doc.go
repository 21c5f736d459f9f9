// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package provision implements the reconciliation engine at the heart
// of roster: given the desired state from a manifest and the observed
// state of the OS identity database and filesystem, apply the minimal
// mutations to close the gap.
//
// Every operation is idempotent. The manifest may be re-run after a
// partial failure (process killed mid-loop, a single record erroring
// out), and repeating a run only restores the target state — group and
// user creation are create-if-missing, directory modes and owners are
// reapplied unconditionally so drift self-heals, and generated
// documentation is overwritten rather than appended.
//
// Teardown is two-phase: a per-record phase removes individual
// accounts and their workspaces, then a team sweep removes each team's
// shared directory and group only when the observed state shows no
// remaining members. A team referenced by several manifest rows is
// therefore only dismantled once the last of its members is gone.
//
// The engine is strictly sequential. Callers must not run concurrent
// engines against the same identity database or directory tree.
package provision
