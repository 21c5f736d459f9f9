// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package fstree

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// Memory is an in-process tree for tests. Paths are cleaned but not
// interpreted: "/projects/backend" is simply a key. New nodes default
// to root:root ownership, matching a tree created by a root process.
type Memory struct {
	nodes map[string]*memoryNode
}

type memoryNode struct {
	dir   bool
	mode  fs.FileMode
	owner Owner
	data  []byte
}

// NewMemory returns an empty in-memory tree containing only "/".
func NewMemory() *Memory {
	m := &Memory{nodes: make(map[string]*memoryNode)}
	m.nodes["/"] = &memoryNode{dir: true, mode: 0o755, owner: Owner{User: "root", Group: "root"}}
	return m
}

func (m *Memory) EnsureDir(p string, mode fs.FileMode) error {
	p = path.Clean(p)
	for _, parent := range parents(p) {
		if node, ok := m.nodes[parent]; ok {
			if !node.dir {
				return fmt.Errorf("%s: not a directory", parent)
			}
			continue
		}
		m.nodes[parent] = &memoryNode{dir: true, mode: 0o755, owner: Owner{User: "root", Group: "root"}}
	}
	if node, ok := m.nodes[p]; ok {
		if !node.dir {
			return fmt.Errorf("%s: not a directory", p)
		}
		node.mode = mode
		return nil
	}
	m.nodes[p] = &memoryNode{dir: true, mode: mode, owner: Owner{User: "root", Group: "root"}}
	return nil
}

func (m *Memory) SetOwner(p string, owner Owner) error {
	node, ok := m.nodes[path.Clean(p)]
	if !ok {
		return &os.PathError{Op: "chown", Path: p, Err: fs.ErrNotExist}
	}
	node.owner = owner
	return nil
}

func (m *Memory) SetMode(p string, mode fs.FileMode) error {
	node, ok := m.nodes[path.Clean(p)]
	if !ok {
		return &os.PathError{Op: "chmod", Path: p, Err: fs.ErrNotExist}
	}
	node.mode = mode
	return nil
}

func (m *Memory) WriteFile(p string, data []byte, mode fs.FileMode) error {
	p = path.Clean(p)
	// Like os.MkdirAll, create missing parents but leave the mode of
	// pre-existing directories untouched.
	dir := path.Dir(p)
	for _, parent := range append(parents(dir), dir) {
		if node, ok := m.nodes[parent]; ok {
			if !node.dir {
				return fmt.Errorf("%s: not a directory", parent)
			}
			continue
		}
		m.nodes[parent] = &memoryNode{dir: true, mode: 0o755, owner: Owner{User: "root", Group: "root"}}
	}
	if node, ok := m.nodes[p]; ok && node.dir {
		return fmt.Errorf("%s: is a directory", p)
	}
	m.nodes[p] = &memoryNode{mode: mode, owner: Owner{User: "root", Group: "root"}, data: append([]byte(nil), data...)}
	return nil
}

func (m *Memory) ListChildren(p string) ([]string, error) {
	p = path.Clean(p)
	node, ok := m.nodes[p]
	if !ok {
		return nil, nil
	}
	if !node.dir {
		return nil, fmt.Errorf("%s: not a directory", p)
	}

	var names []string
	prefix := p
	if prefix != "/" {
		prefix += "/"
	}
	for candidate := range m.nodes {
		if candidate == p || !strings.HasPrefix(candidate, prefix) {
			continue
		}
		rest := candidate[len(prefix):]
		if !strings.Contains(rest, "/") {
			names = append(names, rest)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *Memory) RemoveTree(p string) error {
	p = path.Clean(p)
	prefix := p
	if prefix != "/" {
		prefix += "/"
	}
	for candidate := range m.nodes {
		if candidate == p || strings.HasPrefix(candidate, prefix) {
			delete(m.nodes, candidate)
		}
	}
	return nil
}

func (m *Memory) Stat(p string) (*Info, error) {
	node, ok := m.nodes[path.Clean(p)]
	if !ok {
		return nil, &os.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
	}
	return &Info{IsDir: node.dir, Mode: node.mode, Owner: node.owner}, nil
}

// ReadFile returns the content of a file node, for test assertions.
func (m *Memory) ReadFile(p string) ([]byte, error) {
	node, ok := m.nodes[path.Clean(p)]
	if !ok || node.dir {
		return nil, &os.PathError{Op: "read", Path: p, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), node.data...), nil
}

// Exists reports whether any node is present at the path.
func (m *Memory) Exists(p string) bool {
	_, ok := m.nodes[path.Clean(p)]
	return ok
}

// parents returns every ancestor of p from the root down, excluding p
// itself.
func parents(p string) []string {
	var ancestors []string
	for current := path.Dir(p); ; current = path.Dir(current) {
		ancestors = append(ancestors, current)
		if current == "/" || current == "." {
			break
		}
	}
	// Reverse so creation happens root-first.
	for i, j := 0, len(ancestors)-1; i < j; i, j = i+1, j-1 {
		ancestors[i], ancestors[j] = ancestors[j], ancestors[i]
	}
	return ancestors
}
