// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/roster-tools/roster/lib/config"
	"github.com/roster-tools/roster/lib/manifest"
	"github.com/roster-tools/roster/lib/runlog"
)

// Environment bundles the pieces every manifest-driven command needs:
// resolved configuration, team overrides, the parsed manifest, and a
// logger. All of it is assembled before any mutation, so a bad config
// or malformed manifest aborts with nothing touched.
type Environment struct {
	Config  *config.Config
	Teams   map[string]config.TeamOverride
	Intents []manifest.Intent
	Logger  *slog.Logger

	logFile io.Closer
}

// EnvironmentOptions configures LoadEnvironment.
type EnvironmentOptions struct {
	// ConfigPath is the --config flag value; empty falls back to
	// ROSTER_CONFIG and the default path.
	ConfigPath string

	// ManifestPath is the manifest to load.
	ManifestPath string

	// RunLog mirrors log records to the configured log file in addition
	// to the console. Mutating commands set this; verify does not.
	RunLog bool

	// Level is the minimum log level. Nil means Info.
	Level slog.Leveler
}

// LoadEnvironment resolves configuration, loads team overrides and the
// manifest, and wires up logging.
func LoadEnvironment(opts EnvironmentOptions) (*Environment, error) {
	cfg, err := config.Resolve(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	teams, err := config.LoadTeams(cfg.Paths.TeamsFile)
	if err != nil {
		return nil, err
	}

	intents, err := manifest.Load(opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	env := &Environment{
		Config:  cfg,
		Teams:   teams,
		Intents: intents,
	}

	if opts.RunLog {
		file, err := runlog.OpenFile(cfg.Paths.LogFile)
		if err != nil {
			return nil, err
		}
		env.logFile = file
		env.Logger = runlog.New(os.Stderr, file, runlog.Options{Level: opts.Level})
	} else {
		env.Logger = runlog.New(os.Stderr, nil, runlog.Options{Level: opts.Level})
	}
	return env, nil
}

// Close releases the run log file, if one was opened.
func (e *Environment) Close() error {
	if e.logFile == nil {
		return nil
	}
	return e.logFile.Close()
}

// RequireRoot fails unless the process has effective UID 0. Account
// and directory mutations need it, and checking up front keeps the
// failure ahead of any partial work.
func RequireRoot() error {
	if os.Geteuid() != 0 {
		return fmt.Errorf("this command must run as root (try sudo)")
	}
	return nil
}
