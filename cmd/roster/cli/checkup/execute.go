// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package checkup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"
)

// IsRoot returns true if the current process has effective UID 0.
func IsRoot() bool {
	return os.Geteuid() == 0
}

// ExecuteFixes runs the fix action for each fixable failure, updating
// results in place. In dry-run mode no fixes are executed and an empty
// Outcome is returned.
//
// Elevated fixes are skipped when the process is not running as root
// and counted in Outcome.ElevatedSkipped. A fix failing with EPERM or
// EACCES sets Outcome.PermissionDenied; any other fix error is folded
// into the result's message.
func ExecuteFixes(ctx context.Context, results []Result, dryRun bool) Outcome {
	if dryRun {
		return Outcome{}
	}

	var outcome Outcome
	root := IsRoot()

	for i := range results {
		if results[i].Status != StatusFail || results[i].fix == nil {
			continue
		}
		if results[i].Elevated && !root {
			outcome.ElevatedSkipped++
			continue
		}
		if err := results[i].fix(ctx); err != nil {
			if isPermissionDenied(err) {
				outcome.PermissionDenied = true
				results[i].Message = fmt.Sprintf("%s (insufficient permissions)", results[i].Message)
			} else {
				results[i].Message = fmt.Sprintf("%s (fix failed: %v)", results[i].Message, err)
			}
		} else {
			results[i].Status = StatusFixed
			outcome.FixedCount++
		}
	}

	return outcome
}

// isPermissionDenied returns true if err wraps EPERM or EACCES.
func isPermissionDenied(err error) bool {
	return errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EACCES)
}
