// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package checkup

import "context"

// Status is the outcome of a single verification check.
type Status string

const (
	StatusPass  Status = "pass"
	StatusFail  Status = "fail"
	StatusWarn  Status = "warn"
	StatusSkip  Status = "skip"
	StatusFixed Status = "fixed"
)

// FixAction repairs a failed check. The collaborators the repair needs
// (the identity database, the directory tree, a template) are captured
// in the closure when the check is built.
type FixAction func(ctx context.Context) error

// Result holds the outcome of a single check. Fixable failures carry a
// FixHint for display and an unexported fix closure. Fixes that need
// root privileges set Elevated.
type Result struct {
	Name     string
	Status   Status
	Message  string
	FixHint  string
	Elevated bool
	fix      FixAction
}

// HasFix reports whether this result carries a fix action.
func (r *Result) HasFix() bool {
	return r.fix != nil
}

// Pass creates a passing check result.
func Pass(name, message string) Result {
	return Result{Name: name, Status: StatusPass, Message: message}
}

// Fail creates a failing check result with no automatic fix.
func Fail(name, message string) Result {
	return Result{Name: name, Status: StatusFail, Message: message}
}

// FailWithFix creates a failing check result with an automatic fix.
func FailWithFix(name, message, fixHint string, fix FixAction) Result {
	return Result{Name: name, Status: StatusFail, Message: message, FixHint: fixHint, fix: fix}
}

// FailElevated creates a failing check result whose fix needs root.
// ExecuteFixes skips elevated fixes when the process is not running as
// root and counts them in Outcome.ElevatedSkipped.
func FailElevated(name, message, fixHint string, fix FixAction) Result {
	return Result{Name: name, Status: StatusFail, Message: message, FixHint: fixHint, Elevated: true, fix: fix}
}

// Warn creates a warning check result. Warnings do not fail the run.
func Warn(name, message string) Result {
	return Result{Name: name, Status: StatusWarn, Message: message}
}

// Skip creates a skipped check result, used when a prerequisite check
// failed (directory checks skip when the account does not exist).
func Skip(name, message string) Result {
	return Result{Name: name, Status: StatusSkip, Message: message}
}

// Outcome holds the aggregate results of a fix pass.
type Outcome struct {
	// FixedCount is the number of successfully applied fixes.
	FixedCount int

	// PermissionDenied is true if any fix failed with EPERM or EACCES.
	PermissionDenied bool

	// ElevatedSkipped is the number of fixes skipped because they need
	// root and the process is not running as root.
	ElevatedSkipped int
}
