// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/roster-tools/roster/lib/manifest"
)

// Teardown removes the accounts and workspaces named by the manifest,
// then sweeps each referenced team and dismantles its shared directory
// and group once nothing is left using them.
//
// Interactive confirmation is the caller's responsibility: by the time
// Teardown runs, the operator has already said yes.
func (e *Engine) Teardown(intents []manifest.Intent) Summary {
	var summary Summary

	for _, intent := range intents {
		summary.Processed++
		removed, err := e.teardownRecord(intent)
		switch {
		case err != nil:
			e.logger.Error("teardown failed", "user", intent.Username, "error", err)
			summary.Failed++
		case !removed:
			summary.Skipped++
		default:
			summary.Succeeded++
		}
	}

	// The sweep keys off state observed now, not off the per-record
	// results above: a team whose last member failed to delete is
	// still populated and will be left alone.
	for _, team := range manifest.Teams(intents) {
		if err := e.sweepTeam(team); err != nil {
			e.logger.Error("team sweep failed", "team", team, "error", err)
			summary.Failed++
		}
	}

	return summary
}

// teardownRecord removes one account. Returns false with a nil error
// when the account does not exist — that is a skip, not a failure.
func (e *Engine) teardownRecord(intent manifest.Intent) (bool, error) {
	exists, err := e.identity.UserExists(intent.Username)
	if err != nil {
		return false, err
	}
	if !exists {
		e.logger.Info("user not found, skipping", "user", intent.Username)
		return false, nil
	}

	// Account and home go together; userdel --remove may fail while
	// processes hold files open in the home. That is logged and the
	// run continues — a rerun finishes the job once the files close.
	if err := e.identity.DeleteUser(intent.Username, true); err != nil {
		return false, fmt.Errorf("removing user: %w", err)
	}
	e.logger.Info("user removed", "user", intent.Username)

	if intent.Team != "" {
		teamUserDir := e.layout.TeamUserDir(intent.Team, intent.Username)
		if err := e.tree.RemoveTree(teamUserDir); err != nil {
			return false, fmt.Errorf("removing team workspace: %w", err)
		}
		e.logger.Info("team workspace removed", "user", intent.Username, "path", teamUserDir)
	}
	return true, nil
}

// sweepTeam applies the two independent teardown rules for one team.
// Directory rule: remove the team tree when only the shared directory
// (or nothing) remains. Group rule: remove the OS group when it has no
// member accounts. Neither depends on the other's outcome.
func (e *Engine) sweepTeam(team string) error {
	var sweepErr error

	teamDir := e.layout.TeamDir(team)
	_, err := e.tree.Stat(teamDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Already gone; nothing to decide.
	case err != nil:
		sweepErr = errors.Join(sweepErr, err)
	default:
		children, err := e.tree.ListChildren(teamDir)
		if err != nil {
			sweepErr = errors.Join(sweepErr, err)
			break
		}
		if onlyShared(children) {
			if err := e.tree.RemoveTree(teamDir); err != nil {
				sweepErr = errors.Join(sweepErr, err)
			} else {
				e.logger.Info("team directory removed", "team", team, "path", teamDir)
			}
		} else {
			e.logger.Info("team directory retained, workspaces remain", "team", team, "children", len(children))
		}
	}

	exists, err := e.identity.GroupExists(team)
	if err != nil {
		return errors.Join(sweepErr, err)
	}
	if exists {
		members, err := e.identity.GroupMembers(team)
		if err != nil {
			return errors.Join(sweepErr, err)
		}
		if len(members) == 0 {
			if err := e.identity.DeleteGroup(team); err != nil {
				return errors.Join(sweepErr, fmt.Errorf("removing group %q: %w", team, err))
			}
			e.logger.Info("group removed", "group", team)
		} else {
			e.logger.Info("group retained, members remain", "group", team, "members", len(members))
		}
	}

	return sweepErr
}

// onlyShared reports whether the listing contains nothing but the
// reserved shared directory.
func onlyShared(children []string) bool {
	for _, child := range children {
		if child != sharedDirName {
			return false
		}
	}
	return true
}
