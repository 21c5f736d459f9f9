// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package provision implements "roster provision": create the groups,
// accounts, and directory trees a manifest calls for.
package provision

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
	engine "github.com/roster-tools/roster/lib/provision"
)

// Command returns the provision command.
func Command() *cli.Command {
	var (
		manifestPath string
		configPath   string
		verbose      bool
	)
	return &cli.Command{
		Name:    "provision",
		Summary: "Create accounts, groups, and directories from a manifest.",
		Description: "Provision reads a CSV manifest and reconciles the machine toward it:\n" +
			"missing groups and accounts are created, the per-user and per-team\n" +
			"directory trees are built with their required ownership and modes, and\n" +
			"shell configuration and README files are seeded. Records that already\n" +
			"exist are reconciled rather than skipped, so rerunning after a partial\n" +
			"failure completes the remaining work.",
		Examples: []cli.Example{
			{Description: "Provision everyone in users.csv", Command: "sudo roster provision"},
			{Description: "Use an alternate manifest and config", Command: "sudo roster provision --manifest hires.csv --config /etc/roster/staging.yaml"},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("provision", pflag.ContinueOnError)
			flags.StringVar(&manifestPath, "manifest", "users.csv", "CSV manifest of accounts to provision")
			flags.StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath+")")
			flags.BoolVar(&verbose, "verbose", false, "enable debug logging")
			return flags
		},
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			return run(manifestPath, configPath, verbose)
		},
	}
}

func run(manifestPath, configPath string, verbose bool) error {
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
		// Initial passwords go to stdout only. The run log is a durable
		// audit record and must never hold them.
		RevealCredential: func(username, plaintext string) {
			fmt.Fprintf(os.Stdout, "initial password for %s: %s (expires at first login)\n", username, plaintext)
		},
	})
	if err != nil {
		return err
	}

	summary := eng.Provision(env.Intents)
	env.Logger.Info("provisioning complete", "summary", summary.String())
	fmt.Fprintln(os.Stdout, summary)

	if summary.Failed > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
