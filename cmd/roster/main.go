// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/roster-tools/roster/cmd/roster/cli"
	"github.com/roster-tools/roster/cmd/roster/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output (the verify checklist, a
		// run summary with failures) return an ExitError with the desired
		// exit code. Don't print a redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := cli.NewConsoleLogger(slog.LevelInfo)
	return commands.Root().Execute(ctx, os.Args[1:], logger)
}
