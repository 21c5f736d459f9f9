// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the roster command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/roster-tools/roster/cmd/roster/cli"
	"github.com/roster-tools/roster/cmd/roster/provision"
	"github.com/roster-tools/roster/cmd/roster/teardown"
	"github.com/roster-tools/roster/cmd/roster/verify"
	"github.com/roster-tools/roster/lib/version"
)

// Root returns the top-level roster command.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "roster",
		Summary: "Bulk provisioning of developer accounts and team workspaces.",
		Description: "Roster reconciles a machine's users, groups, and project directories\n" +
			"against a CSV manifest: one line per account, one shared workspace per\n" +
			"team. Provisioning is idempotent and teardown refuses to dismantle a\n" +
			"team that still has members.",
		Subcommands: []*cli.Command{
			provision.Command(),
			teardown.Command(),
			verify.Command(),
			versionCommand(),
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print the roster version.",
		Run: func(context.Context, []string, *slog.Logger) error {
			fmt.Fprintln(os.Stdout, "roster "+version.Info())
			return nil
		},
	}
}
