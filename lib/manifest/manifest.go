// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Header is the exact header line every manifest must start with.
// Comparison is case-sensitive and ignores only a trailing carriage
// return (Windows-edited manifests are common enough to tolerate).
const Header = "username,fullname,team,role"

// headerToken is the first field of the header line. Rows whose
// username column equals this token are treated as stray header
// repetitions (concatenated manifests, copy-paste artifacts) and
// skipped rather than provisioned as an account named "username".
const headerToken = "username"

// Intent is one manifest row: the desired end state for a single
// developer account. Username and Team drive provisioning decisions;
// FullName and Role are advisory and only surface in comments and
// generated documentation.
type Intent struct {
	Username string
	FullName string
	Team     string
	Role     string
}

// FormatError reports a manifest whose header line does not match
// [Header]. Line is the 1-based line number of the offending line.
type FormatError struct {
	Line int
	Got  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("manifest line %d: expected header %q, got %q", e.Line, Header, e.Got)
}

// Load reads and parses the manifest at path. A missing file is
// reported with an error wrapping the underlying open failure, so
// callers can distinguish "not found" via errors.Is(err, fs.ErrNotExist).
func Load(path string) ([]Intent, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer file.Close()

	intents, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return intents, nil
}

// Parse reads manifest rows from r. The first non-blank line must equal
// [Header] exactly; every following line is split on commas into an
// Intent. Lines with an empty username column and repeated header lines
// are skipped. Rows with fewer than four columns have the missing
// advisory columns left empty.
func Parse(r io.Reader) ([]Intent, error) {
	scanner := bufio.NewScanner(r)

	var intents []Intent
	sawHeader := false
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			continue
		}

		if !sawHeader {
			if line != Header {
				return nil, &FormatError{Line: lineNumber, Got: line}
			}
			sawHeader = true
			continue
		}

		fields := strings.Split(line, ",")
		if fields[0] == "" || fields[0] == headerToken {
			continue
		}

		intent := Intent{Username: fields[0]}
		if len(fields) > 1 {
			intent.FullName = fields[1]
		}
		if len(fields) > 2 {
			intent.Team = fields[2]
		}
		if len(fields) > 3 {
			intent.Role = fields[3]
		}
		intents = append(intents, intent)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	// An empty file never presented a header, which is the same defect
	// as a wrong header: the manifest shape cannot be verified.
	if !sawHeader {
		return nil, &FormatError{Line: lineNumber + 1, Got: ""}
	}

	return intents, nil
}

// Teams returns the distinct team names referenced by intents, in
// first-seen order. The teardown sweep iterates this list rather than
// the live OS group database: only teams named by the manifest are
// candidates for removal.
func Teams(intents []Intent) []string {
	seen := make(map[string]bool)
	var teams []string
	for _, intent := range intents {
		if intent.Team == "" || seen[intent.Team] {
			continue
		}
		seen[intent.Team] = true
		teams = append(teams, intent.Team)
	}
	return teams
}
