// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// suggestionThreshold is the maximum edit distance for a suggestion.
// Anything further away is more likely a different word than a typo.
const suggestionThreshold = 3

// closestName returns the subcommand name nearest to input, or "" when
// nothing is close enough to plausibly be a typo.
func closestName(input string, commands []*Command) string {
	best := ""
	bestDistance := suggestionThreshold + 1
	for _, command := range commands {
		distance := editDistance(input, command.Name)
		if distance < bestDistance {
			best = command.Name
			bestDistance = distance
		}
	}
	return best
}

// closestFlag scans args for the first unknown long flag and returns
// the nearest defined flag (with its leading dashes), or "".
func closestFlag(args []string, flagSet *pflag.FlagSet) string {
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		name := strings.TrimPrefix(arg, "--")
		if equals := strings.IndexByte(name, '='); equals >= 0 {
			name = name[:equals]
		}
		if name == "" || flagSet.Lookup(name) != nil {
			continue
		}

		best := ""
		bestDistance := suggestionThreshold + 1
		flagSet.VisitAll(func(flag *pflag.Flag) {
			distance := editDistance(name, flag.Name)
			if distance < bestDistance {
				best = flag.Name
				bestDistance = distance
			}
		})
		if best != "" {
			return "--" + best
		}
	}
	return ""
}

// editDistance computes the Levenshtein distance between two strings
// using a single rolling row.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	runesA := []rune(a)
	runesB := []rune(b)

	row := make([]int, len(runesB)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(runesA); i++ {
		previous := row[0]
		row[0] = i
		for j := 1; j <= len(runesB); j++ {
			cost := 1
			if runesA[i-1] == runesB[j-1] {
				cost = 0
			}
			current := min(row[j]+1, min(row[j-1]+1, previous+cost))
			previous = row[j]
			row[j] = current
		}
	}
	return row[len(runesB)]
}
