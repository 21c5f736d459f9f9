// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// TeamOverride carries optional per-team settings from the teams file.
// Teams absent from the file get zero-value overrides.
type TeamOverride struct {
	// Description appears in the team README seeded into the shared
	// directory.
	Description string `json:"description"`

	// ExtraGroups are additional supplementary groups applied to
	// every account created for this team (e.g. "docker"). The groups
	// must already exist; roster does not create them.
	ExtraGroups []string `json:"extra_groups"`
}

// LoadTeams reads the team-overrides file. The format is JSONC — JSON
// with // comments and trailing commas — so the file can document
// itself:
//
//	{
//	  // Backend services team
//	  "backend": {
//	    "description": "Service and API development.",
//	    "extra_groups": ["docker"],
//	  },
//	}
//
// A missing file yields an empty map: overrides are optional.
func LoadTeams(path string) (map[string]TeamOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]TeamOverride{}, nil
		}
		return nil, fmt.Errorf("reading teams file %s: %w", path, err)
	}

	// Strip comments and trailing commas before parsing as standard JSON.
	stripped := jsonc.ToJSON(data)

	overrides := make(map[string]TeamOverride)
	if err := json.Unmarshal(stripped, &overrides); err != nil {
		return nil, fmt.Errorf("parsing teams file %s: %w", path, err)
	}
	return overrides, nil
}
