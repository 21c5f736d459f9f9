// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package content renders the text artifacts roster seeds into
// provisioned directories: the per-user shell configuration, the
// personal-projects README, and the team README.
//
// Templates are embedded at compile time. The artifacts are advisory
// documentation for the account holder and nothing reads them back:
// the READMEs are overwritten on every run, the shell configuration is
// seeded once when the account is created.
package content

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

var templates = template.Must(template.ParseFS(templateFiles, "templates/*.tmpl"))

// UserData parameterizes the per-user artifacts.
type UserData struct {
	Username         string
	FullName         string
	Team             string
	Role             string
	HomeDir          string
	PersonalProjects string
	TeamUserDir      string
	TeamSharedDir    string
	Shell            string
}

// TeamData parameterizes the team README seeded into the shared
// directory.
type TeamData struct {
	Team        string
	Description string
	SharedDir   string
	TeamDir     string
}

// Bashrc renders the seeded shell configuration for a new account.
func Bashrc(data UserData) ([]byte, error) {
	return render("bashrc.tmpl", data)
}

// PersonalReadme renders the README placed in the user's personal
// projects directory.
func PersonalReadme(data UserData) ([]byte, error) {
	return render("personal_readme.tmpl", data)
}

// TeamReadme renders the README placed in the team's shared directory.
func TeamReadme(data TeamData) ([]byte, error) {
	return render("team_readme.tmpl", data)
}

func render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
