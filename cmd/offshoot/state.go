package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/offshoot-cli/offshoot/internal/config"
	"github.com/offshoot-cli/offshoot/internal/job"
	"github.com/offshoot-cli/offshoot/internal/spawn"
)

// openStore resolves the state directory (flag beats config) and opens the
// job store there.
func openStore(cmd *cobra.Command, cfg *config.Config) (*job.Store, error) {
	dir, _ := cmd.Flags().GetString("state-dir")
	if dir == "" {
		dir = cfg.Settings.StateDir
	}
	return job.NewStore(dir)
}

// resolveJob picks the job named by args, or the latest one.
func resolveJob(store *job.Store, args []string) (*job.Job, error) {
	if len(args) > 0 {
		return store.Load(args[0])
	}
	return store.Latest()
}

// parseEnvVars turns NAME=VALUE flag values into ordered overrides.
func parseEnvVars(pairs []string) ([]spawn.EnvVar, error) {
	env := make([]spawn.EnvVar, 0, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --env value %q, expected NAME=VALUE", pair)
		}
		env = append(env, spawn.EnvVar{Name: name, Value: value})
	}
	return env, nil
}
