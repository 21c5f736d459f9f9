// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Paths.Homes != "/home" || cfg.Paths.Projects != "/projects" {
		t.Fatalf("unexpected defaults: %+v", cfg.Paths)
	}
	if cfg.Accounts.Shell != "/bin/bash" {
		t.Fatalf("shell default = %q", cfg.Accounts.Shell)
	}
}

func TestLoadFile_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	content := "paths:\n  projects: /srv/projects\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Paths.Projects != "/srv/projects" {
		t.Fatalf("projects = %q", cfg.Paths.Projects)
	}
	// Unset fields keep their defaults.
	if cfg.Paths.Homes != "/home" || cfg.Accounts.Shell != "/bin/bash" {
		t.Fatalf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadFile_RejectsRelativePaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	if err := os.WriteFile(path, []byte("paths:\n  projects: relative/path\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for relative projects path")
	}
}

func TestResolve_MissingExplicitFileIsError(t *testing.T) {
	if _, err := Resolve(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestResolve_EnvVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	if err := os.WriteFile(path, []byte("accounts:\n  shell: /bin/zsh\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ROSTER_CONFIG", path)

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Accounts.Shell != "/bin/zsh" {
		t.Fatalf("shell = %q", cfg.Accounts.Shell)
	}
}

func TestLoadTeams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teams.jsonc")
	content := `{
	  // Backend services team
	  "backend": {
	    "description": "Service and API development.",
	    "extra_groups": ["docker"],
	  },
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	overrides, err := LoadTeams(path)
	if err != nil {
		t.Fatalf("LoadTeams: %v", err)
	}
	want := map[string]TeamOverride{
		"backend": {Description: "Service and API development.", ExtraGroups: []string{"docker"}},
	}
	if !reflect.DeepEqual(overrides, want) {
		t.Fatalf("overrides = %+v, want %+v", overrides, want)
	}
}

func TestLoadTeams_MissingFileIsEmpty(t *testing.T) {
	overrides, err := LoadTeams(filepath.Join(t.TempDir(), "teams.jsonc"))
	if err != nil {
		t.Fatalf("LoadTeams: %v", err)
	}
	if len(overrides) != 0 {
		t.Fatalf("overrides = %+v, want empty", overrides)
	}
}
