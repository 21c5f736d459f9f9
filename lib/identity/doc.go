// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package identity abstracts the OS identity database (users and
// groups) behind a small capability interface.
//
// Two implementations are provided: [System], which mutates the real
// identity database by shelling out to the standard shadow-utils
// binaries (useradd, userdel, groupadd, groupdel, chage), and [Memory],
// a deterministic in-process fake used by unit tests.
//
// The interface is intentionally minimal: it exposes exactly the
// queries and mutations the provisioning engine needs, so the engine's
// reconciliation logic can be tested without root privileges or a
// throwaway machine.
package identity
