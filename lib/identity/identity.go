// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package identity

// UserSpec describes a user account to create. The zero value of an
// optional field means "leave it to the underlying tool's default".
type UserSpec struct {
	// Name is the account username. Required.
	Name string

	// Comment is the GECOS comment field, conventionally the person's
	// full name. Advisory only.
	Comment string

	// PrimaryGroup is the name of the account's primary group. The
	// group must already exist; CreateUser does not create it.
	PrimaryGroup string

	// SupplementaryGroups are additional group memberships applied at
	// creation time.
	SupplementaryGroups []string

	// HomeDir is the account's home directory. The directory is
	// created along with the account.
	HomeDir string

	// Shell is the account's login shell.
	Shell string

	// PasswordHash is a crypt(3)-format password hash applied at
	// creation. Empty leaves the password field locked, which is the
	// useradd default.
	PasswordHash string
}

// Database is the capability set the provisioning engine needs from
// the OS identity database. All queries report current observed state;
// none of the mutations are transactional with respect to each other.
type Database interface {
	// GroupExists reports whether a group with the given name exists.
	GroupExists(name string) (bool, error)

	// CreateGroup creates a group. Callers check GroupExists first;
	// creating a group that already exists is an error.
	CreateGroup(name string) error

	// DeleteGroup removes a group. Deleting a group that still has
	// members is an error surfaced from the underlying tool.
	DeleteGroup(name string) error

	// UserExists reports whether a user with the given name exists.
	UserExists(name string) (bool, error)

	// CreateUser creates a user account, including its home directory.
	CreateUser(spec UserSpec) error

	// DeleteUser removes a user account. With removeHome, the home
	// directory tree is removed together with the account — the two
	// are a single failure domain from the caller's perspective.
	DeleteUser(name string, removeHome bool) error

	// GroupMembers returns the usernames of all accounts that belong
	// to the group, counting both supplementary membership and
	// accounts whose primary group it is. A group with no members
	// (or a group that does not exist) yields an empty slice.
	GroupMembers(name string) ([]string, error)

	// ExpirePassword marks the account's password as expired so the
	// user is forced to choose a new one at first login.
	ExpirePassword(name string) error
}
