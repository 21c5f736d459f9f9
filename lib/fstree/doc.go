// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package fstree abstracts the filesystem primitives the provisioning
// engine needs: ensure a directory with an exact mode, reapply
// ownership, list children, remove a tree, write a file.
//
// [OS] is the real implementation. [Memory] is a deterministic
// in-process tree for unit tests, so reconciliation logic can be
// exercised without root privileges and with full control over
// pre-existing state (drifted modes, leftover directories).
package fstree
