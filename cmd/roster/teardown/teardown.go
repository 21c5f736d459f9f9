// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package teardown implements "roster teardown": remove the accounts a
// manifest names, then dismantle each team whose last member is gone.
package teardown

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/roster-tools/roster/cmd/roster/cli"
	"github.com/roster-tools/roster/lib/config"
	"github.com/roster-tools/roster/lib/fstree"
	"github.com/roster-tools/roster/lib/identity"
	"github.com/roster-tools/roster/lib/manifest"
	engine "github.com/roster-tools/roster/lib/provision"
)

// Command returns the teardown command.
func Command() *cli.Command {
	var (
		manifestPath string
		configPath   string
		yes          bool
		verbose      bool
	)
	return &cli.Command{
		Name:    "teardown",
		Summary: "Remove accounts and their directories per a manifest.",
		Description: "Teardown removes each account named in the manifest together with its\n" +
			"home directory and team workspace. After all records are processed, each\n" +
			"team named in the manifest is swept: its directory tree and group are\n" +
			"removed only once no members and no other content remain. A single\n" +
			"confirmation is required before anything is touched.",
		Examples: []cli.Example{
			{Description: "Tear down everyone in leavers.csv", Command: "sudo roster teardown --manifest leavers.csv"},
			{Description: "Skip the confirmation prompt", Command: "sudo roster teardown --manifest leavers.csv --yes"},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("teardown", pflag.ContinueOnError)
			flags.StringVar(&manifestPath, "manifest", "users.csv", "CSV manifest of accounts to remove")
			flags.StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath+")")
			flags.BoolVar(&yes, "yes", false, "proceed without the confirmation prompt")
			flags.BoolVar(&verbose, "verbose", false, "enable debug logging")
			return flags
		},
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			confirm := cli.Confirmer(cli.AlwaysConfirm)
			if !yes {
				confirm = cli.TerminalConfirmer(os.Stdin, os.Stdout)
			}
			return run(manifestPath, configPath, verbose, confirm)
		},
	}
}

func run(manifestPath, configPath string, verbose bool, confirm cli.Confirmer) error {
	if err := cli.RequireRoot(); err != nil {
		return err
	}

	level := slog.Leveler(slog.LevelInfo)
	if verbose {
		level = slog.LevelDebug
	}
	env, err := cli.LoadEnvironment(cli.EnvironmentOptions{
		ConfigPath:   configPath,
		ManifestPath: manifestPath,
		RunLog:       true,
		Level:        level,
	})
	if err != nil {
		return err
	}
	defer env.Close()

	// The one blocking gate: nothing is mutated until the operator has
	// seen the scale of the removal and said yes.
	prompt := fmt.Sprintf("Remove %d account(s) across %d team(s), including home directories",
		len(env.Intents), len(manifest.Teams(env.Intents)))
	ok, err := confirm(prompt)
	if err != nil {
		return err
	}
	if !ok {
		env.Logger.Info("teardown aborted, nothing was changed")
		return nil
	}

	eng, err := engine.NewEngine(engine.EngineParams{
		Identity: identity.NewSystem(),
		Tree:     fstree.NewOS(),
		Layout: engine.Layout{
			Homes:    env.Config.Paths.Homes,
			Projects: env.Config.Paths.Projects,
		},
		Shell:  env.Config.Accounts.Shell,
		Teams:  env.Teams,
		Logger: env.Logger,
	})
	if err != nil {
		return err
	}

	summary := eng.Teardown(env.Intents)
	env.Logger.Info("teardown complete", "summary", summary.String())
	fmt.Fprintln(os.Stdout, summary)

	if summary.Failed > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
