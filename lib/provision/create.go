// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"fmt"
	"path"

	"github.com/roster-tools/roster/lib/content"
	"github.com/roster-tools/roster/lib/fstree"
	"github.com/roster-tools/roster/lib/identity"
	"github.com/roster-tools/roster/lib/manifest"
)

// Provision reconciles every intent in order. One bad record never
// stops the batch: its error is logged and counted, and processing
// moves to the next record.
func (e *Engine) Provision(intents []manifest.Intent) Summary {
	var summary Summary
	for _, intent := range intents {
		summary.Processed++
		if err := e.provisionRecord(intent); err != nil {
			e.logger.Error("provisioning failed", "user", intent.Username, "team", intent.Team, "error", err)
			summary.Failed++
			continue
		}
		summary.Succeeded++
	}
	return summary
}

func (e *Engine) provisionRecord(intent manifest.Intent) error {
	if intent.Team == "" {
		return fmt.Errorf("record has no team")
	}
	if intent.Username == sharedDirName {
		return fmt.Errorf("username %q collides with the shared directory", intent.Username)
	}

	if err := e.ensureGroup(intent.Team); err != nil {
		return err
	}
	if err := e.ensureUser(intent); err != nil {
		return err
	}
	// Directory state is reconciled even when the user pre-existed, so
	// a rerun completes the work of a previously interrupted run.
	if err := e.ensureDirectories(intent); err != nil {
		return err
	}
	return e.writeDocumentation(intent)
}

// ensureGroup creates the team's OS group if it is missing.
func (e *Engine) ensureGroup(team string) error {
	exists, err := e.identity.GroupExists(team)
	if err != nil {
		return err
	}
	if exists {
		e.logger.Info("group already exists", "group", team)
		return nil
	}
	if err := e.identity.CreateGroup(team); err != nil {
		return fmt.Errorf("creating group %q: %w", team, err)
	}
	e.logger.Info("group created", "group", team)
	return nil
}

// ensureUser creates the account if it is missing. A pre-existing
// account is a warning, not an error: the caller still reconciles the
// directory tree so reruns remain useful for partially-completed
// manifests. Only freshly created accounts get their home permissions
// and shell configuration set — a pre-existing home is never disturbed.
func (e *Engine) ensureUser(intent manifest.Intent) error {
	exists, err := e.identity.UserExists(intent.Username)
	if err != nil {
		return err
	}
	if exists {
		e.logger.Warn("user already exists", "user", intent.Username)
		return nil
	}

	initial, err := e.newCredential()
	if err != nil {
		return fmt.Errorf("issuing credential for %q: %w", intent.Username, err)
	}

	homeDir := e.layout.HomeDir(intent.Username)
	spec := identity.UserSpec{
		Name:                intent.Username,
		Comment:             intent.FullName,
		PrimaryGroup:        intent.Team,
		SupplementaryGroups: e.teams[intent.Team].ExtraGroups,
		HomeDir:             homeDir,
		Shell:               e.shell,
		PasswordHash:        initial.Hash,
	}
	if err := e.identity.CreateUser(spec); err != nil {
		return fmt.Errorf("creating user %q: %w", intent.Username, err)
	}
	if err := e.identity.ExpirePassword(intent.Username); err != nil {
		return fmt.Errorf("expiring initial password for %q: %w", intent.Username, err)
	}
	e.logger.Info("user created", "user", intent.Username, "team", intent.Team, "comment", intent.FullName)
	e.revealCredential(intent.Username, initial.Plaintext)

	// One-time home setup: exact mode 700, owner user:team.
	owner := e.homeOwner(intent)
	if err := e.tree.EnsureDir(homeDir, 0o700); err != nil {
		return err
	}
	if err := e.tree.SetOwner(homeDir, owner); err != nil {
		return err
	}

	bashrc, err := content.Bashrc(e.userData(intent))
	if err != nil {
		return err
	}
	bashrcPath := path.Join(homeDir, ".bashrc")
	if err := e.tree.WriteFile(bashrcPath, bashrc, 0o644); err != nil {
		return err
	}
	if err := e.tree.SetOwner(bashrcPath, owner); err != nil {
		return err
	}
	return nil
}

// ensureDirectories reconciles the per-user and per-team directory
// nodes: create if missing, then unconditionally reapply owner and
// mode so drift from manual edits or interrupted runs self-heals.
func (e *Engine) ensureDirectories(intent manifest.Intent) error {
	specs := append(e.layout.TeamDirectories(intent.Team), e.layout.UserDirectories(intent)...)
	for _, spec := range specs {
		if err := e.tree.EnsureDir(spec.Path, spec.Mode); err != nil {
			return err
		}
		if err := e.tree.SetOwner(spec.Path, spec.Owner); err != nil {
			return err
		}
	}
	return nil
}

// writeDocumentation overwrites the personal and team READMEs. These
// are advisory artifacts: last writer wins and nothing reads them back.
func (e *Engine) writeDocumentation(intent manifest.Intent) error {
	owner := e.homeOwner(intent)

	personal, err := content.PersonalReadme(e.userData(intent))
	if err != nil {
		return err
	}
	personalPath := path.Join(e.layout.PersonalProjectsDir(intent.Username), "README.md")
	if err := e.tree.WriteFile(personalPath, personal, 0o644); err != nil {
		return err
	}
	if err := e.tree.SetOwner(personalPath, owner); err != nil {
		return err
	}

	team, err := content.TeamReadme(content.TeamData{
		Team:        intent.Team,
		Description: e.teams[intent.Team].Description,
		SharedDir:   e.layout.TeamSharedDir(intent.Team),
		TeamDir:     e.layout.TeamDir(intent.Team),
	})
	if err != nil {
		return err
	}
	teamPath := path.Join(e.layout.TeamSharedDir(intent.Team), "README.md")
	if err := e.tree.WriteFile(teamPath, team, 0o664); err != nil {
		return err
	}
	if err := e.tree.SetOwner(teamPath, fstree.Owner{User: "root", Group: intent.Team}); err != nil {
		return err
	}
	return nil
}

func (e *Engine) homeOwner(intent manifest.Intent) fstree.Owner {
	return fstree.Owner{User: intent.Username, Group: intent.Team}
}

func (e *Engine) userData(intent manifest.Intent) content.UserData {
	return content.UserData{
		Username:         intent.Username,
		FullName:         intent.FullName,
		Team:             intent.Team,
		Role:             intent.Role,
		HomeDir:          e.layout.HomeDir(intent.Username),
		PersonalProjects: e.layout.PersonalProjectsDir(intent.Username),
		TeamUserDir:      e.layout.TeamUserDir(intent.Team, intent.Username),
		TeamSharedDir:    e.layout.TeamSharedDir(intent.Team),
		Shell:            e.shell,
	}
}
