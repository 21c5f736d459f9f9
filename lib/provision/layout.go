// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"io/fs"
	"path"

	"github.com/roster-tools/roster/lib/fstree"
	"github.com/roster-tools/roster/lib/manifest"
)

// Layout computes every path roster manages from the two configured
// roots. Centralizing path construction here keeps the create and
// teardown sides of the engine in agreement about what lives where.
type Layout struct {
	// Homes is the parent of all home directories (normally /home).
	Homes string

	// Projects is the root of the team namespace (normally /projects).
	Projects string
}

// sharedDirName is the reserved per-team subdirectory for the shared
// workspace. A user named "shared" would collide with it; the engine
// rejects such records rather than guessing.
const sharedDirName = "shared"

func (l Layout) HomeDir(username string) string {
	return path.Join(l.Homes, username)
}

func (l Layout) PersonalProjectsDir(username string) string {
	return path.Join(l.Homes, username, "projects")
}

func (l Layout) TeamDir(team string) string {
	return path.Join(l.Projects, team)
}

func (l Layout) TeamUserDir(team, username string) string {
	return path.Join(l.Projects, team, username)
}

func (l Layout) TeamSharedDir(team string) string {
	return path.Join(l.Projects, team, sharedDirName)
}

// DirSpec describes a directory that must exist with specific
// ownership and permissions. The verify command walks the same specs
// the engine applies, so the two can never disagree about what correct
// looks like.
type DirSpec struct {
	Path  string
	Owner fstree.Owner
	Mode  fs.FileMode
}

// UserDirectories returns the per-user directory specs, excluding the
// home directory itself: home creation and its one-time permission
// setup belong to account creation (a pre-existing home is left alone
// on rerun). The home tree is consistently owned user:team, matching
// the primary group the account is created with.
func (l Layout) UserDirectories(intent manifest.Intent) []DirSpec {
	owner := fstree.Owner{User: intent.Username, Group: intent.Team}
	return []DirSpec{
		{l.PersonalProjectsDir(intent.Username), owner, 0o755},
		{l.TeamUserDir(intent.Team, intent.Username), owner, 0o755},
	}
}

// TeamDirectories returns the per-team directory specs. The shared
// directory carries the setgid bit so files created by one member are
// group-owned by the team and editable by the others. Repeated
// application converges on the same owner and mode no matter how many
// of the team's records are processed or in what order.
func (l Layout) TeamDirectories(team string) []DirSpec {
	return []DirSpec{
		{l.TeamDir(team), fstree.Owner{User: "root", Group: team}, 0o755},
		{l.TeamSharedDir(team), fstree.Owner{User: "root", Group: team}, 0o775 | fs.ModeSetgid},
	}
}
