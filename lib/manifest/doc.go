// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest parses the CSV roster manifest into account intents.
//
// The manifest is a plain comma-separated text file with a mandatory
// header line. There is no quoting or escaping: a comma always splits
// fields. Fields beyond the four defined columns are ignored.
//
// The reader is deliberately forgiving about row content (the full name
// and role columns are advisory) and deliberately strict about the
// header: a manifest whose first meaningful line is not the exact
// expected header is rejected before any account is processed.
package manifest
