// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer asks the operator a yes/no question and reports the answer.
// Commands take a Confirmer so tests can script the response.
type Confirmer func(prompt string) (bool, error)

// TerminalConfirmer prompts on out and reads a single line from in.
// Only "y" and "yes" (case-insensitive) count as approval; anything
// else, including EOF on a closed stdin, declines.
func TerminalConfirmer(in io.Reader, out io.Writer) Confirmer {
	reader := bufio.NewReader(in)
	return func(prompt string) (bool, error) {
		fmt.Fprintf(out, "%s [y/N]: ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return false, fmt.Errorf("reading confirmation: %w", err)
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes", nil
	}
}

// AlwaysConfirm approves every prompt. Used for --yes.
func AlwaysConfirm(string) (bool, error) {
	return true, nil
}
