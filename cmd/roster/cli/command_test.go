// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestExecute_DispatchesSubcommand(t *testing.T) {
	var ran []string
	root := &Command{
		Name: "roster",
		Subcommands: []*Command{
			{
				Name: "provision",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					ran = append(ran, "provision")
					ran = append(ran, args...)
					return nil
				},
			},
		},
	}

	err := root.Execute(context.Background(), []string{"provision", "extra"}, testLogger())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(ran) != 2 || ran[0] != "provision" || ran[1] != "extra" {
		t.Fatalf("ran = %v", ran)
	}
}

func TestExecute_UnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name: "roster",
		Subcommands: []*Command{
			{Name: "provision"},
			{Name: "teardown"},
		},
	}

	err := root.Execute(context.Background(), []string{"provisoin"}, testLogger())
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `"provision"`) {
		t.Fatalf("error lacks suggestion: %v", err)
	}
}

func TestExecute_ParsesFlags(t *testing.T) {
	var got string
	command := &Command{
		Name: "provision",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("provision", pflag.ContinueOnError)
			flags.String("manifest", "", "manifest path")
			return flags
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			got = args[0]
			return nil
		},
	}

	// Flags from the returned set are not visible to Run; positional
	// leftovers are. Commands re-declare flags with pointers in Flags.
	err := command.Execute(context.Background(), []string{"--manifest", "x.csv", "positional"}, testLogger())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got != "positional" {
		t.Fatalf("args = %q", got)
	}
}

func TestExecute_UnknownFlagSuggests(t *testing.T) {
	command := &Command{
		Name: "teardown",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("teardown", pflag.ContinueOnError)
			flags.Bool("yes", false, "skip confirmation")
			return flags
		},
		Run: func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--yse"}, testLogger())
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "--yes") {
		t.Fatalf("error lacks flag suggestion: %v", err)
	}
}

func TestPrintHelp_ListsSubcommandsAndExamples(t *testing.T) {
	root := &Command{
		Name:    "roster",
		Summary: "Bulk account provisioning.",
		Subcommands: []*Command{
			{Name: "provision", Summary: "Create accounts from a manifest."},
		},
		Examples: []Example{
			{Description: "Provision from the default manifest", Command: "roster provision"},
		},
	}

	var out strings.Builder
	root.PrintHelp(&out)
	help := out.String()

	for _, want := range []string{
		"Bulk account provisioning.",
		"provision",
		"Create accounts from a manifest.",
		"# Provision from the default manifest",
		"roster provision",
	} {
		if !strings.Contains(help, want) {
			t.Fatalf("help output missing %q:\n%s", want, help)
		}
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"provision", "provision", 0},
		{"provisoin", "provision", 2},
		{"teardwon", "teardown", 2},
		{"kitten", "sitting", 3},
	}
	for _, test := range tests {
		if got := editDistance(test.a, test.b); got != test.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}

func TestClosestName_IgnoresDistantInput(t *testing.T) {
	commands := []*Command{{Name: "provision"}, {Name: "teardown"}}
	if got := closestName("completely-unrelated", commands); got != "" {
		t.Fatalf("closestName = %q, want no suggestion", got)
	}
}
