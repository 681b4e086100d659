// Package config loads offshoot configuration from KDL files: a global
// config under the user's config directory plus an optional per-project
// .offshoot.kdl, with the project file overriding the global one.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	kdl "github.com/sblinch/kdl-go"

	"github.com/offshoot-cli/offshoot/internal/assistant"
)

// Configuration file names
const (
	GlobalConfigFile  = "config.kdl"
	ProjectConfigFile = ".offshoot.kdl"
)

// Config is the merged offshoot configuration.
type Config struct {
	Settings   Settings
	Assistants map[string]*Assistant
}

// Settings holds global behavior knobs.
type Settings struct {
	// StateDir is where job records and transcripts live ("" = ~/.offshoot).
	StateDir string
	// PollInterval is how often transcript followers re-check for appends.
	PollInterval time.Duration
	// DefaultAssistant names the profile used when none is requested.
	DefaultAssistant string
}

// Assistant is one configured assistant CLI profile.
type Assistant struct {
	Command string
	Args    []string
	Env     map[string]string
	Cwd     string
}

// kdlConfig mirrors the on-disk KDL structure.
type kdlConfig struct {
	Settings   *kdlSettings             `kdl:"settings"`
	Assistants map[string]*kdlAssistant `kdl:"assistants"`
}

type kdlSettings struct {
	StateDir         string `kdl:"state-dir"`
	PollIntervalMS   int    `kdl:"poll-interval"`
	DefaultAssistant string `kdl:"default-assistant"`
}

type kdlAssistant struct {
	Command string            `kdl:"command"`
	Args    []string          `kdl:"args"`
	Env     map[string]string `kdl:"env"`
	Cwd     string            `kdl:"cwd"`
}

// DefaultConfig returns the built-in configuration: a claude profile in
// non-interactive print mode streaming JSONL.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			PollInterval:     500 * time.Millisecond,
			DefaultAssistant: "claude",
		},
		Assistants: map[string]*Assistant{
			"claude": {
				Command: "claude",
				Args:    []string{"--print", "--verbose", "--output-format", "stream-json"},
			},
		},
	}
}

// Parse parses KDL configuration and merges it onto the given base,
// returning the base. A nil base starts from DefaultConfig.
func Parse(base *Config, src string) (*Config, error) {
	if base == nil {
		base = DefaultConfig()
	}

	var kc kdlConfig
	if err := kdl.Unmarshal([]byte(src), &kc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if kc.Settings != nil {
		if kc.Settings.StateDir != "" {
			base.Settings.StateDir = kc.Settings.StateDir
		}
		if kc.Settings.PollIntervalMS > 0 {
			base.Settings.PollInterval = time.Duration(kc.Settings.PollIntervalMS) * time.Millisecond
		}
		if kc.Settings.DefaultAssistant != "" {
			base.Settings.DefaultAssistant = kc.Settings.DefaultAssistant
		}
	}

	for name, ka := range kc.Assistants {
		base.Assistants[name] = &Assistant{
			Command: ka.Command,
			Args:    ka.Args,
			Env:     ka.Env,
			Cwd:     ka.Cwd,
		}
	}

	return base, nil
}

// globalConfigPath locates the global config file, honoring XDG_CONFIG_HOME.
func globalConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "offshoot", GlobalConfigFile), nil
}

// Load returns the configuration for a project directory: defaults, then the
// global file, then the project's .offshoot.kdl. Missing files are fine.
func Load(projectDir string) (*Config, error) {
	cfg := DefaultConfig()

	globalPath, err := globalConfigPath()
	if err == nil {
		if data, err := os.ReadFile(globalPath); err == nil {
			if cfg, err = Parse(cfg, string(data)); err != nil {
				return nil, fmt.Errorf("%s: %w", globalPath, err)
			}
		}
	}

	if projectDir != "" {
		projectPath := filepath.Join(projectDir, ProjectConfigFile)
		if data, err := os.ReadFile(projectPath); err == nil {
			if cfg, err = Parse(cfg, string(data)); err != nil {
				return nil, fmt.Errorf("%s: %w", projectPath, err)
			}
		}
	}

	return cfg, nil
}

// Profile returns the named assistant as a runnable profile; an empty name
// selects the configured default.
func (c *Config) Profile(name string) (*assistant.Profile, error) {
	if name == "" {
		name = c.Settings.DefaultAssistant
	}
	a, ok := c.Assistants[name]
	if !ok {
		return nil, fmt.Errorf("assistant '%s' not configured", name)
	}
	return &assistant.Profile{
		Name:    name,
		Command: a.Command,
		Args:    a.Args,
		Env:     a.Env,
		WorkDir: a.Cwd,
	}, nil
}
