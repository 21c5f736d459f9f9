// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"fmt"
	"log/slog"

	"github.com/roster-tools/roster/lib/config"
	"github.com/roster-tools/roster/lib/credential"
	"github.com/roster-tools/roster/lib/fstree"
	"github.com/roster-tools/roster/lib/identity"
)

// Engine applies manifest intents to the identity database and
// directory tree. Construct with [NewEngine]; the zero value is not
// usable.
type Engine struct {
	identity identity.Database
	tree     fstree.Tree
	layout   Layout
	shell    string
	teams    map[string]config.TeamOverride
	logger   *slog.Logger

	// newCredential issues the initial credential for newly created
	// accounts.
	newCredential func() (credential.Initial, error)

	// revealCredential receives the username and plaintext of each
	// newly issued credential. The plaintext deliberately bypasses the
	// run log: the log file is a durable audit record and must not
	// hold even one-time secrets.
	revealCredential func(username, plaintext string)
}

// EngineParams holds the collaborators for [NewEngine]. Identity, Tree
// and Logger are required.
type EngineParams struct {
	Identity identity.Database
	Tree     fstree.Tree
	Layout   Layout
	Shell    string

	// Teams carries optional per-team overrides (description, extra
	// supplementary groups). May be nil.
	Teams map[string]config.TeamOverride

	Logger *slog.Logger

	// NewCredential overrides initial credential issuance. Nil uses
	// credential.NewInitial.
	NewCredential func() (credential.Initial, error)

	// RevealCredential surfaces each new account's one-time plaintext
	// to the operator. Nil discards it (useful when an external
	// credential channel is in play).
	RevealCredential func(username, plaintext string)
}

// NewEngine validates params and builds an engine.
func NewEngine(params EngineParams) (*Engine, error) {
	if params.Identity == nil {
		return nil, fmt.Errorf("engine requires an identity database")
	}
	if params.Tree == nil {
		return nil, fmt.Errorf("engine requires a directory tree")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("engine requires a logger")
	}
	if params.Layout.Homes == "" || params.Layout.Projects == "" {
		return nil, fmt.Errorf("engine requires a complete layout")
	}
	if params.Shell == "" {
		params.Shell = "/bin/bash"
	}
	if params.NewCredential == nil {
		params.NewCredential = credential.NewInitial
	}
	if params.RevealCredential == nil {
		params.RevealCredential = func(string, string) {}
	}

	return &Engine{
		identity:         params.Identity,
		tree:             params.Tree,
		layout:           params.Layout,
		shell:            params.Shell,
		teams:            params.Teams,
		logger:           params.Logger,
		newCredential:    params.NewCredential,
		revealCredential: params.RevealCredential,
	}, nil
}

// Summary is the per-run outcome tally. Failed counts records whose
// mutations errored plus teardown sweep failures; those records'
// partial mutations are left in place and healed by a rerun.
type Summary struct {
	Processed int
	Succeeded int
	Failed    int
	Skipped   int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d records processed: %d succeeded, %d failed, %d skipped",
		s.Processed, s.Succeeded, s.Failed, s.Skipped)
}
