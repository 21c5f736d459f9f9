// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package fstree

import "io/fs"

// Owner is a symbolic user:group ownership pair. Names are resolved to
// numeric IDs by the implementation; the engine never handles raw IDs.
type Owner struct {
	User  string
	Group string
}

func (o Owner) String() string {
	return o.User + ":" + o.Group
}

// Info describes a path for verification purposes. Mode includes the
// permission bits and the setgid bit (fs.ModeSetgid) when present.
type Info struct {
	IsDir bool
	Mode  fs.FileMode
	Owner Owner
}

// Tree is the filesystem capability set used by the provisioning
// engine. All operations take absolute paths.
type Tree interface {
	// EnsureDir creates the directory (and any missing parents) and
	// sets its mode to exactly mode, including the setgid bit if
	// requested. Applying it to an existing directory only adjusts
	// the mode; contents are untouched.
	EnsureDir(path string, mode fs.FileMode) error

	// SetOwner changes the owner and group of a single path.
	SetOwner(path string, owner Owner) error

	// SetMode changes the mode of a single path, including the setgid
	// bit if requested.
	SetMode(path string, mode fs.FileMode) error

	// WriteFile writes data to path, replacing any previous content.
	// Missing parent directories are created.
	WriteFile(path string, data []byte, mode fs.FileMode) error

	// ListChildren returns the names (not paths) of the directory's
	// immediate children, sorted. A missing directory yields an empty
	// list: for the reconcilers, "gone" and "empty" call for the same
	// treatment.
	ListChildren(path string) ([]string, error)

	// RemoveTree removes path and everything beneath it. Removing a
	// missing path is a no-op.
	RemoveTree(path string) error

	// Stat describes a path. A missing path yields an error wrapping
	// fs.ErrNotExist.
	Stat(path string) (*Info, error)
}
