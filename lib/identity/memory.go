// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"fmt"
	"sort"
)

// Memory is an in-process identity database for tests. It mirrors the
// observable behavior of [System]: membership counts both primary and
// supplementary groups, deleting a group with members fails, and
// creating an entity twice fails.
type Memory struct {
	users   map[string]UserSpec
	groups  map[string]bool
	expired map[string]bool

	// RemovedHomes records the home directories of accounts deleted
	// with removeHome set. The fake owns no filesystem, so tests that
	// care about home removal assert on this list.
	RemovedHomes []string
}

// NewMemory returns an empty in-memory identity database.
func NewMemory() *Memory {
	return &Memory{
		users:   make(map[string]UserSpec),
		groups:  make(map[string]bool),
		expired: make(map[string]bool),
	}
}

func (m *Memory) GroupExists(name string) (bool, error) {
	return m.groups[name], nil
}

func (m *Memory) CreateGroup(name string) error {
	if m.groups[name] {
		return fmt.Errorf("group %q already exists", name)
	}
	m.groups[name] = true
	return nil
}

func (m *Memory) DeleteGroup(name string) error {
	if !m.groups[name] {
		return fmt.Errorf("group %q does not exist", name)
	}
	members, _ := m.GroupMembers(name)
	if len(members) > 0 {
		return fmt.Errorf("group %q still has members: %v", name, members)
	}
	delete(m.groups, name)
	return nil
}

func (m *Memory) UserExists(name string) (bool, error) {
	_, ok := m.users[name]
	return ok, nil
}

func (m *Memory) CreateUser(spec UserSpec) error {
	if _, ok := m.users[spec.Name]; ok {
		return fmt.Errorf("user %q already exists", spec.Name)
	}
	if spec.PrimaryGroup != "" && !m.groups[spec.PrimaryGroup] {
		return fmt.Errorf("primary group %q does not exist", spec.PrimaryGroup)
	}
	for _, group := range spec.SupplementaryGroups {
		if !m.groups[group] {
			return fmt.Errorf("supplementary group %q does not exist", group)
		}
	}
	m.users[spec.Name] = spec
	return nil
}

func (m *Memory) DeleteUser(name string, removeHome bool) error {
	spec, ok := m.users[name]
	if !ok {
		return fmt.Errorf("user %q does not exist", name)
	}
	if removeHome && spec.HomeDir != "" {
		m.RemovedHomes = append(m.RemovedHomes, spec.HomeDir)
	}
	delete(m.users, name)
	delete(m.expired, name)
	return nil
}

func (m *Memory) GroupMembers(name string) ([]string, error) {
	if !m.groups[name] {
		return nil, nil
	}
	members := make(map[string]bool)
	for username, spec := range m.users {
		if spec.PrimaryGroup == name {
			members[username] = true
		}
		for _, group := range spec.SupplementaryGroups {
			if group == name {
				members[username] = true
			}
		}
	}
	names := make([]string, 0, len(members))
	for username := range members {
		names = append(names, username)
	}
	sort.Strings(names)
	return names, nil
}

func (m *Memory) ExpirePassword(name string) error {
	if _, ok := m.users[name]; !ok {
		return fmt.Errorf("user %q does not exist", name)
	}
	m.expired[name] = true
	return nil
}

// User returns the stored spec for an account, for test assertions.
func (m *Memory) User(name string) (UserSpec, bool) {
	spec, ok := m.users[name]
	return spec, ok
}

// PasswordExpired reports whether ExpirePassword was called for the
// account.
func (m *Memory) PasswordExpired(name string) bool {
	return m.expired[name]
}
