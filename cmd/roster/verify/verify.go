// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package verify implements "roster verify": a read-only checklist of
// the state a manifest calls for, with optional repair.
package verify

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/roster-tools/roster/cmd/roster/cli"
	"github.com/roster-tools/roster/cmd/roster/cli/checkup"
	"github.com/roster-tools/roster/lib/config"
	"github.com/roster-tools/roster/lib/fstree"
	"github.com/roster-tools/roster/lib/identity"
	"github.com/roster-tools/roster/lib/manifest"
	engine "github.com/roster-tools/roster/lib/provision"
)

// Command returns the verify command.
func Command() *cli.Command {
	var (
		manifestPath string
		configPath   string
		fix          bool
		dryRun       bool
	)
	return &cli.Command{
		Name:    "verify",
		Summary: "Check provisioned state against a manifest.",
		Description: "Verify walks the manifest and reports, without changing anything,\n" +
			"whether each group, account, directory, and README is present with the\n" +
			"required ownership and permissions. With --fix, failing checks are\n" +
			"repaired by reapplying the provisioner; --fix --dry-run shows what would\n" +
			"be repaired. Repairs need root; without it they are listed and skipped.",
		Examples: []cli.Example{
			{Description: "Report drift", Command: "roster verify --manifest users.csv"},
			{Description: "Repair drift", Command: "sudo roster verify --manifest users.csv --fix"},
			{Description: "Preview repairs", Command: "roster verify --fix --dry-run"},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("verify", pflag.ContinueOnError)
			flags.StringVar(&manifestPath, "manifest", "users.csv", "CSV manifest to verify against")
			flags.StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath+")")
			flags.BoolVar(&fix, "fix", false, "repair failing checks")
			flags.BoolVar(&dryRun, "dry-run", false, "with --fix, show repairs without applying them")
			return flags
		},
		Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
			return run(ctx, manifestPath, configPath, fix, dryRun)
		},
	}
}

func run(ctx context.Context, manifestPath, configPath string, fix, dryRun bool) error {
	env, err := cli.LoadEnvironment(cli.EnvironmentOptions{
		ConfigPath:   configPath,
		ManifestPath: manifestPath,
		Level:        slog.LevelWarn,
	})
	if err != nil {
		return err
	}
	defer env.Close()

	layout := engine.Layout{
		Homes:    env.Config.Paths.Homes,
		Projects: env.Config.Paths.Projects,
	}
	eng, err := engine.NewEngine(engine.EngineParams{
		Identity: identity.NewSystem(),
		Tree:     fstree.NewOS(),
		Layout:   layout,
		Shell:    env.Config.Accounts.Shell,
		Teams:    env.Teams,
		Logger:   env.Logger,
	})
	if err != nil {
		return err
	}

	checker := &checker{
		identity: identity.NewSystem(),
		tree:     fstree.NewOS(),
		layout:   layout,
		engine:   eng,
	}
	results := checker.collect(env.Intents)

	var outcome checkup.Outcome
	if fix {
		outcome = checkup.ExecuteFixes(ctx, results, dryRun)
	}
	return checkup.PrintChecklist(os.Stdout, results, fix, dryRun, outcome)
}

// checker builds the checklist for a manifest. Every expectation it
// encodes comes from the same layout the provisioner applies.
type checker struct {
	identity identity.Database
	tree     fstree.Tree
	layout   engine.Layout
	engine   *engine.Engine
}

func (c *checker) collect(intents []manifest.Intent) []checkup.Result {
	var results []checkup.Result

	for _, team := range manifest.Teams(intents) {
		results = append(results, c.checkGroup(team))
		for _, spec := range c.layout.TeamDirectories(team) {
			results = append(results, c.checkDir(spec))
		}
		results = append(results, c.checkFile(
			c.layout.TeamSharedDir(team)+"/README.md", "team README"))
	}

	for _, intent := range intents {
		results = append(results, c.checkUser(intent))
		for _, spec := range c.layout.UserDirectories(intent) {
			results = append(results, c.checkDir(spec))
		}
		results = append(results, c.checkFile(
			c.layout.PersonalProjectsDir(intent.Username)+"/README.md", "personal README"))
	}

	return results
}

func (c *checker) checkGroup(team string) checkup.Result {
	name := "group:" + team
	exists, err := c.identity.GroupExists(team)
	if err != nil {
		return checkup.Fail(name, err.Error())
	}
	if !exists {
		return checkup.FailElevated(name, "group does not exist",
			"create group "+team, func(context.Context) error {
				return c.identity.CreateGroup(team)
			})
	}
	return checkup.Pass(name, "exists")
}

func (c *checker) checkUser(intent manifest.Intent) checkup.Result {
	name := "user:" + intent.Username
	exists, err := c.identity.UserExists(intent.Username)
	if err != nil {
		return checkup.Fail(name, err.Error())
	}
	if !exists {
		return checkup.FailElevated(name, "account does not exist",
			"provision account "+intent.Username, c.reprovision(intent))
	}
	return checkup.Pass(name, "exists")
}

func (c *checker) checkDir(spec engine.DirSpec) checkup.Result {
	name := "dir:" + spec.Path
	info, err := c.tree.Stat(spec.Path)
	if err != nil {
		return checkup.FailElevated(name, "missing",
			fmt.Sprintf("create %s (%s, mode %s)", spec.Path, spec.Owner, octalMode(spec.Mode)),
			func(context.Context) error {
				if err := c.tree.EnsureDir(spec.Path, spec.Mode); err != nil {
					return err
				}
				return c.tree.SetOwner(spec.Path, spec.Owner)
			})
	}
	if !info.IsDir {
		return checkup.Fail(name, "exists but is not a directory")
	}
	if info.Mode != spec.Mode || info.Owner != spec.Owner {
		return checkup.FailElevated(name,
			fmt.Sprintf("%s mode %s, want %s mode %s",
				info.Owner, octalMode(info.Mode), spec.Owner, octalMode(spec.Mode)),
			fmt.Sprintf("chown %s and chmod %s", spec.Owner, octalMode(spec.Mode)),
			func(context.Context) error {
				if err := c.tree.SetMode(spec.Path, spec.Mode); err != nil {
					return err
				}
				return c.tree.SetOwner(spec.Path, spec.Owner)
			})
	}
	return checkup.Pass(name, fmt.Sprintf("%s mode %s", info.Owner, octalMode(info.Mode)))
}

func (c *checker) checkFile(path, what string) checkup.Result {
	name := "file:" + path
	if _, err := c.tree.Stat(path); err != nil {
		return checkup.Fail(name, what+" missing (run provision to regenerate)")
	}
	return checkup.Pass(name, "present")
}

// reprovision repairs a missing account by reapplying the provisioner
// for that one record. The engine is idempotent, so surrounding state
// that is already correct is untouched.
func (c *checker) reprovision(intent manifest.Intent) checkup.FixAction {
	return func(context.Context) error {
		if summary := c.engine.Provision([]manifest.Intent{intent}); summary.Failed > 0 {
			return fmt.Errorf("provisioning %s failed", intent.Username)
		}
		return nil
	}
}

// octalMode renders a mode the way ls and chmod speak it: permission
// bits in octal with the setgid bit folded in (0o775|setgid → "2775").
func octalMode(mode fs.FileMode) string {
	bits := uint32(mode.Perm())
	if mode&fs.ModeSetgid != 0 {
		bits |= 0o2000
	}
	return fmt.Sprintf("%04o", bits)
}
