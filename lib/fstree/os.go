// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package fstree

import (
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strconv"

	"golang.org/x/sys/unix"
)

// OS is the real filesystem.
type OS struct{}

// NewOS returns a Tree backed by the real filesystem.
func NewOS() *OS {
	return &OS{}
}

func (*OS) EnsureDir(path string, mode fs.FileMode) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	// MkdirAll masks the mode with the umask and never applies the
	// setgid bit, so the exact mode is applied in a second step. This
	// also heals mode drift on pre-existing directories.
	if err := os.Chmod(path, mode); err != nil {
		return fmt.Errorf("setting mode of %s: %w", path, err)
	}
	return nil
}

func (*OS) SetOwner(path string, owner Owner) error {
	uid, gid, err := resolveOwner(owner)
	if err != nil {
		return err
	}
	if err := os.Chown(path, uid, gid); err != nil {
		return fmt.Errorf("setting owner of %s to %s: %w", path, owner, err)
	}
	return nil
}

func (*OS) SetMode(path string, mode fs.FileMode) error {
	if err := os.Chmod(path, mode); err != nil {
		return fmt.Errorf("setting mode of %s: %w", path, err)
	}
	return nil
}

func (t *OS) WriteFile(path string, data []byte, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating parent of %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, mode.Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	// WriteFile only applies the mode on creation; chmod covers the
	// overwrite case so reruns heal drifted file modes too.
	if err := os.Chmod(path, mode); err != nil {
		return fmt.Errorf("setting mode of %s: %w", path, err)
	}
	return nil
}

func (*OS) ListChildren(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", path, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (*OS) RemoveTree(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

func (*OS) Stat(path string) (*Info, error) {
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		return nil, &os.PathError{Op: "stat", Path: path, Err: err}
	}

	mode := fs.FileMode(stat.Mode & 0o777)
	if stat.Mode&unix.S_ISGID != 0 {
		mode |= fs.ModeSetgid
	}
	if stat.Mode&unix.S_ISUID != 0 {
		mode |= fs.ModeSetuid
	}

	return &Info{
		IsDir: stat.Mode&unix.S_IFMT == unix.S_IFDIR,
		Mode:  mode,
		Owner: Owner{
			User:  nameForUID(stat.Uid),
			Group: nameForGID(stat.Gid),
		},
	}, nil
}

// resolveOwner maps symbolic names to numeric IDs. Numeric strings are
// accepted as-is, so specs can name accounts that only exist inside a
// container image.
func resolveOwner(owner Owner) (uid, gid int, err error) {
	if account, lookupErr := user.Lookup(owner.User); lookupErr == nil {
		uid, err = strconv.Atoi(account.Uid)
	} else if parsed, parseErr := strconv.Atoi(owner.User); parseErr == nil {
		uid = parsed
	} else {
		return 0, 0, fmt.Errorf("resolving user %q: %w", owner.User, lookupErr)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("resolving user %q: %w", owner.User, err)
	}

	if group, lookupErr := user.LookupGroup(owner.Group); lookupErr == nil {
		gid, err = strconv.Atoi(group.Gid)
	} else if parsed, parseErr := strconv.Atoi(owner.Group); parseErr == nil {
		gid = parsed
	} else {
		return 0, 0, fmt.Errorf("resolving group %q: %w", owner.Group, lookupErr)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("resolving group %q: %w", owner.Group, err)
	}

	return uid, gid, nil
}

func nameForUID(uid uint32) string {
	if account, err := user.LookupId(strconv.FormatUint(uint64(uid), 10)); err == nil {
		return account.Username
	}
	return strconv.FormatUint(uint64(uid), 10)
}

func nameForGID(gid uint32) string {
	if group, err := user.LookupGroupId(strconv.FormatUint(uint64(gid), 10)); err == nil {
		return group.Name
	}
	return strconv.FormatUint(uint64(gid), 10)
}
