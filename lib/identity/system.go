// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"sort"
	"strings"
)

// Standard shadow-utils binaries. Absolute paths rather than PATH
// lookups: the tool runs as root and must not be redirected by a
// caller-controlled PATH.
const (
	useraddBin  = "/usr/sbin/useradd"
	userdelBin  = "/usr/sbin/userdel"
	groupaddBin = "/usr/sbin/groupadd"
	groupdelBin = "/usr/sbin/groupdel"
	chageBin    = "/usr/bin/chage"
)

// System is the real identity database, backed by the local machine's
// user and group files and mutated through the shadow-utils binaries.
type System struct {
	// run executes a binary and returns an error carrying its combined
	// output. Overridable in tests to capture the constructed argv
	// without touching the real identity database.
	run func(name string, args ...string) error

	// etcGroup and etcPasswd are the membership source files.
	// Overridable in tests.
	etcGroup  string
	etcPasswd string
}

// NewSystem returns a Database backed by the local machine.
func NewSystem() *System {
	return &System{
		run:       runCommand,
		etcGroup:  "/etc/group",
		etcPasswd: "/etc/passwd",
	}
}

// runCommand executes a binary and folds its combined output into the
// returned error. The shadow-utils write their diagnostics to stderr;
// without this, a failed useradd surfaces as an opaque exit status.
func runCommand(name string, args ...string) error {
	output, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (s *System) GroupExists(name string) (bool, error) {
	_, err := user.LookupGroup(name)
	if err != nil {
		if _, ok := err.(user.UnknownGroupError); ok {
			return false, nil
		}
		return false, fmt.Errorf("looking up group %q: %w", name, err)
	}
	return true, nil
}

func (s *System) CreateGroup(name string) error {
	return s.run(groupaddBin, name)
}

func (s *System) DeleteGroup(name string) error {
	return s.run(groupdelBin, name)
}

func (s *System) UserExists(name string) (bool, error) {
	_, err := user.Lookup(name)
	if err != nil {
		if _, ok := err.(user.UnknownUserError); ok {
			return false, nil
		}
		return false, fmt.Errorf("looking up user %q: %w", name, err)
	}
	return true, nil
}

func (s *System) CreateUser(spec UserSpec) error {
	args := []string{"--create-home"}
	if spec.HomeDir != "" {
		args = append(args, "--home-dir", spec.HomeDir)
	}
	if spec.Shell != "" {
		args = append(args, "--shell", spec.Shell)
	}
	if spec.Comment != "" {
		args = append(args, "--comment", spec.Comment)
	}
	if spec.PrimaryGroup != "" {
		args = append(args, "--gid", spec.PrimaryGroup)
	}
	if len(spec.SupplementaryGroups) > 0 {
		args = append(args, "--groups", strings.Join(spec.SupplementaryGroups, ","))
	}
	if spec.PasswordHash != "" {
		args = append(args, "--password", spec.PasswordHash)
	}
	args = append(args, spec.Name)
	return s.run(useraddBin, args...)
}

func (s *System) DeleteUser(name string, removeHome bool) error {
	if removeHome {
		return s.run(userdelBin, "--remove", name)
	}
	return s.run(userdelBin, name)
}

// GroupMembers reads membership from the group and passwd files
// directly. os/user exposes group lookup but not the member list, and
// supplementary membership alone is not enough: an account whose
// primary group is the target never appears in the group file's member
// column, only in the passwd file's GID column.
func (s *System) GroupMembers(name string) ([]string, error) {
	gid, supplementary, err := s.groupEntry(name)
	if err != nil {
		return nil, err
	}
	if gid == "" {
		return nil, nil
	}

	members := make(map[string]bool)
	for _, member := range supplementary {
		members[member] = true
	}

	primary, err := s.usersWithPrimaryGID(gid)
	if err != nil {
		return nil, err
	}
	for _, username := range primary {
		members[username] = true
	}

	names := make([]string, 0, len(members))
	for username := range members {
		names = append(names, username)
	}
	sort.Strings(names)
	return names, nil
}

func (s *System) ExpirePassword(name string) error {
	return s.run(chageBin, "--lastday", "0", name)
}

// groupEntry returns the GID and supplementary member list for the
// named group, or ("", nil, nil) if the group file has no such entry.
func (s *System) groupEntry(name string) (gid string, members []string, err error) {
	file, err := os.Open(s.etcGroup)
	if err != nil {
		return "", nil, fmt.Errorf("opening %s: %w", s.etcGroup, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// name:password:gid:member1,member2
		parts := strings.Split(line, ":")
		if len(parts) < 4 || parts[0] != name {
			continue
		}
		var supplementary []string
		for _, member := range strings.Split(parts[3], ",") {
			if member != "" {
				supplementary = append(supplementary, member)
			}
		}
		return parts[2], supplementary, nil
	}
	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("reading %s: %w", s.etcGroup, err)
	}
	return "", nil, nil
}

// usersWithPrimaryGID returns all usernames whose passwd entry carries
// the given GID as primary group.
func (s *System) usersWithPrimaryGID(gid string) ([]string, error) {
	file, err := os.Open(s.etcPasswd)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.etcPasswd, err)
	}
	defer file.Close()

	var usernames []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// name:password:uid:gid:gecos:home:shell
		parts := strings.Split(line, ":")
		if len(parts) < 4 {
			continue
		}
		if parts[3] == gid {
			usernames = append(usernames, parts[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.etcPasswd, err)
	}
	return usernames, nil
}
