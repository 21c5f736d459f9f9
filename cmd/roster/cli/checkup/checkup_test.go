// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package checkup

import (
	"context"
	"errors"
	"strings"
	"syscall"
	"testing"

	"github.com/roster-tools/roster/cmd/roster/cli"
)

func TestExecuteFixes_DryRunDoesNotRun(t *testing.T) {
	called := false
	results := []Result{
		FailWithFix("group:backend", "missing", "create group backend", func(context.Context) error {
			called = true
			return nil
		}),
	}

	outcome := ExecuteFixes(context.Background(), results, true)
	if called {
		t.Error("dry run should not call fix actions")
	}
	if outcome.FixedCount != 0 {
		t.Errorf("FixedCount = %d, want 0", outcome.FixedCount)
	}
	if results[0].Status != StatusFail {
		t.Errorf("status changed to %q", results[0].Status)
	}
}

func TestExecuteFixes_AppliesAndMarksFixed(t *testing.T) {
	results := []Result{
		Pass("user:alice", "exists"),
		FailWithFix("dir:/projects/backend/shared", "mode 0755, want 2775",
			"chmod 2775 /projects/backend/shared", func(context.Context) error {
				return nil
			}),
	}

	outcome := ExecuteFixes(context.Background(), results, false)
	if outcome.FixedCount != 1 {
		t.Errorf("FixedCount = %d, want 1", outcome.FixedCount)
	}
	if results[1].Status != StatusFixed {
		t.Errorf("status = %q, want fixed", results[1].Status)
	}
}

func TestExecuteFixes_PermissionDenied(t *testing.T) {
	results := []Result{
		FailWithFix("dir:/home/alice", "wrong owner", "chown alice", func(context.Context) error {
			return syscall.EPERM
		}),
	}

	outcome := ExecuteFixes(context.Background(), results, false)
	if !outcome.PermissionDenied {
		t.Error("EPERM should set PermissionDenied")
	}
	if results[0].Status != StatusFail {
		t.Errorf("status = %q, want fail", results[0].Status)
	}
	if !strings.Contains(results[0].Message, "insufficient permissions") {
		t.Errorf("message = %q", results[0].Message)
	}
}

func TestExecuteFixes_OtherErrorFoldedIntoMessage(t *testing.T) {
	results := []Result{
		FailWithFix("user:bob", "missing", "create bob", func(context.Context) error {
			return errors.New("useradd exploded")
		}),
	}

	outcome := ExecuteFixes(context.Background(), results, false)
	if outcome.PermissionDenied {
		t.Error("generic error should not set PermissionDenied")
	}
	if !strings.Contains(results[0].Message, "useradd exploded") {
		t.Errorf("message = %q", results[0].Message)
	}
}

func TestPrintChecklist_AllPass(t *testing.T) {
	var out strings.Builder
	err := PrintChecklist(&out, []Result{Pass("group:backend", "exists")}, false, false, Outcome{})
	if err != nil {
		t.Fatalf("PrintChecklist: %v", err)
	}
	if !strings.Contains(out.String(), "All checks passed.") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestPrintChecklist_FailureReturnsExitError(t *testing.T) {
	var out strings.Builder
	results := []Result{
		FailWithFix("user:alice", "missing", "create alice", func(context.Context) error { return nil }),
	}
	err := PrintChecklist(&out, results, false, false, Outcome{})

	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("err = %v, want ExitError{1}", err)
	}
	if !strings.Contains(out.String(), "Run with --fix to repair 1 issue(s).") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestPrintChecklist_DryRunAnnouncesFixes(t *testing.T) {
	var out strings.Builder
	results := []Result{
		FailWithFix("dir:/projects/backend", "missing", "create team directory", func(context.Context) error { return nil }),
	}
	err := PrintChecklist(&out, results, true, true, Outcome{})
	if err == nil {
		t.Fatal("dry run with failures should still exit non-zero")
	}
	if !strings.Contains(out.String(), "would fix: create team directory") {
		t.Fatalf("output = %q", out.String())
	}
	if !strings.Contains(out.String(), "would be repaired") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestPrintChecklist_ElevatedSkippedSection(t *testing.T) {
	var out strings.Builder
	results := []Result{
		FailElevated("user:alice", "missing", "create account alice", func(context.Context) error { return nil }),
	}
	err := PrintChecklist(&out, results, true, false, Outcome{ElevatedSkipped: 1})
	if err == nil {
		t.Fatal("expected exit error")
	}
	for _, want := range []string{"require root privileges", "create account alice", "sudo roster verify --fix"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
}
