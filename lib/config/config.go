// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads roster configuration.
//
// Configuration comes from a single YAML file, located by (in order)
// the --config flag, the ROSTER_CONFIG environment variable, or the
// default path /etc/roster/roster.yaml. A missing file is not an
// error: every field has a working default, so the tool runs on a
// bare machine with no configuration at all.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the canonical config file location.
const DefaultPath = "/etc/roster/roster.yaml"

// envVar names the environment variable that overrides the config path.
const envVar = "ROSTER_CONFIG"

// Config is the master configuration for roster.
type Config struct {
	// Paths configures directory locations.
	Paths PathsConfig `yaml:"paths"`

	// Accounts configures account creation defaults.
	Accounts AccountsConfig `yaml:"accounts"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Homes is the parent directory for home directories.
	// Default: /home
	Homes string `yaml:"homes"`

	// Projects is the root of the per-team project namespace.
	// Default: /projects
	Projects string `yaml:"projects"`

	// LogFile is where the run log is appended.
	// Default: /var/log/roster.log
	LogFile string `yaml:"log_file"`

	// TeamsFile is the optional JSONC team-overrides file.
	// Default: /etc/roster/teams.jsonc
	TeamsFile string `yaml:"teams_file"`
}

// AccountsConfig configures account creation defaults.
type AccountsConfig struct {
	// Shell is the login shell for new accounts.
	// Default: /bin/bash
	Shell string `yaml:"shell"`
}

// Default returns the built-in configuration. These are the values the
// tool runs with when no config file is present.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Homes:     "/home",
			Projects:  "/projects",
			LogFile:   "/var/log/roster.log",
			TeamsFile: "/etc/roster/teams.jsonc",
		},
		Accounts: AccountsConfig{
			Shell: "/bin/bash",
		},
	}
}

// Resolve loads configuration using the standard precedence: an
// explicit flag path, then ROSTER_CONFIG, then the default path if it
// exists, then built-in defaults. An explicitly named file that cannot
// be read is an error; a missing default file is not.
func Resolve(flagPath string) (*Config, error) {
	if flagPath != "" {
		return LoadFile(flagPath)
	}
	if envPath := os.Getenv(envVar); envPath != "" {
		return LoadFile(envPath)
	}
	if _, err := os.Stat(DefaultPath); err == nil {
		return LoadFile(DefaultPath)
	}
	return Default(), nil
}

// LoadFile loads configuration from a specific file path, applying
// defaults for any field the file leaves unset.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	for name, value := range map[string]string{
		"paths.homes":    c.Paths.Homes,
		"paths.projects": c.Paths.Projects,
		"paths.log_file": c.Paths.LogFile,
		"accounts.shell": c.Accounts.Shell,
	} {
		if value == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	if c.Paths.Homes[0] != '/' || c.Paths.Projects[0] != '/' {
		return fmt.Errorf("paths.homes and paths.projects must be absolute")
	}
	return nil
}
