// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package fstree

import (
	"errors"
	"io/fs"
	"reflect"
	"testing"
)

func TestMemory_EnsureDirCreatesParents(t *testing.T) {
	tree := NewMemory()

	if err := tree.EnsureDir("/projects/backend/shared", 0o775|fs.ModeSetgid); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}

	for _, p := range []string{"/projects", "/projects/backend", "/projects/backend/shared"} {
		if !tree.Exists(p) {
			t.Fatalf("%s should exist", p)
		}
	}

	info, err := tree.Stat("/projects/backend/shared")
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode != 0o775|fs.ModeSetgid {
		t.Fatalf("mode = %v, want 2775", info.Mode)
	}
	if !info.IsDir {
		t.Fatal("should be a directory")
	}
}

func TestMemory_EnsureDirReappliesMode(t *testing.T) {
	tree := NewMemory()
	if err := tree.EnsureDir("/home/alice", 0o700); err != nil {
		t.Fatal(err)
	}
	if err := tree.SetMode("/home/alice", 0o777); err != nil {
		t.Fatal(err)
	}
	if err := tree.EnsureDir("/home/alice", 0o700); err != nil {
		t.Fatal(err)
	}
	info, _ := tree.Stat("/home/alice")
	if info.Mode != 0o700 {
		t.Fatalf("mode = %v, want 700", info.Mode)
	}
}

func TestMemory_OwnerRoundTrip(t *testing.T) {
	tree := NewMemory()
	if err := tree.EnsureDir("/projects/backend", 0o755); err != nil {
		t.Fatal(err)
	}
	owner := Owner{User: "alice", Group: "backend"}
	if err := tree.SetOwner("/projects/backend", owner); err != nil {
		t.Fatal(err)
	}
	info, _ := tree.Stat("/projects/backend")
	if info.Owner != owner {
		t.Fatalf("owner = %v, want %v", info.Owner, owner)
	}

	if err := tree.SetOwner("/nope", owner); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestMemory_ListChildren(t *testing.T) {
	tree := NewMemory()
	for _, p := range []string{"/projects/backend/bob", "/projects/backend/alice", "/projects/backend/shared"} {
		if err := tree.EnsureDir(p, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := tree.WriteFile("/projects/backend/shared/README.md", []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	children, err := tree.ListChildren("/projects/backend")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"alice", "bob", "shared"}
	if !reflect.DeepEqual(children, want) {
		t.Fatalf("children = %v, want %v", children, want)
	}

	// Grandchildren must not leak into the listing.
	children, _ = tree.ListChildren("/projects/backend/shared")
	if !reflect.DeepEqual(children, []string{"README.md"}) {
		t.Fatalf("children = %v", children)
	}

	// Missing directories list as empty.
	children, err = tree.ListChildren("/projects/frontend")
	if err != nil || children != nil {
		t.Fatalf("children = %v, err = %v", children, err)
	}
}

func TestMemory_RemoveTree(t *testing.T) {
	tree := NewMemory()
	if err := tree.EnsureDir("/projects/backend/alice", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := tree.WriteFile("/projects/backend/alice/README.md", []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := tree.RemoveTree("/projects/backend"); err != nil {
		t.Fatal(err)
	}
	if tree.Exists("/projects/backend") || tree.Exists("/projects/backend/alice/README.md") {
		t.Fatal("subtree should be gone")
	}
	if !tree.Exists("/projects") {
		t.Fatal("parent should survive")
	}

	// Removing a missing tree is a no-op.
	if err := tree.RemoveTree("/projects/backend"); err != nil {
		t.Fatal(err)
	}
}

func TestMemory_WriteFileOverwrites(t *testing.T) {
	tree := NewMemory()
	if err := tree.WriteFile("/home/alice/.bashrc", []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := tree.WriteFile("/home/alice/.bashrc", []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := tree.ReadFile("/home/alice/.bashrc")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new" {
		t.Fatalf("content = %q", data)
	}
}
