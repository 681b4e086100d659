// Package assistant turns a configured assistant profile into the concrete
// command line a detached run executes.
package assistant

import (
	"fmt"
	"os/exec"
	"sort"

	"github.com/offshoot-cli/offshoot/internal/spawn"
)

// Profile describes one wrapped assistant CLI as configured.
type Profile struct {
	// Name identifies the profile ("claude", "gemini", ...).
	Name string
	// Command is the binary name or path to run.
	Command string
	// Args are always passed, in order, before any per-run arguments. For a
	// detached run they must select a non-interactive print mode that reads the
	// prompt from stdin and streams JSONL to stdout.
	Args []string
	// Env is applied to the child on top of the inherited environment.
	Env map[string]string
	// WorkDir is the default working directory for runs.
	WorkDir string
}

// Options are per-run adjustments layered on a profile.
type Options struct {
	// Model overrides the assistant's default model.
	Model string
	// Resume continues an earlier assistant session by ID.
	Resume string
	// ExtraArgs are appended verbatim after everything else.
	ExtraArgs []string
}

// Invocation is the fully resolved command line for one detached run.
type Invocation struct {
	Path string
	Args []string
	Env  []spawn.EnvVar
}

// Resolve looks up the profile's command on PATH and builds the final
// argument list and environment overrides. Env overrides are emitted in
// name order so the same profile always produces the same invocation.
func (p *Profile) Resolve(opts Options) (*Invocation, error) {
	path, err := exec.LookPath(p.Command)
	if err != nil {
		return nil, fmt.Errorf("assistant %q: %w", p.Name, err)
	}

	args := append([]string(nil), p.Args...)
	if opts.Model != "" {
		args = append(args, "--model", opts.Model)
	}
	if opts.Resume != "" {
		args = append(args, "--resume", opts.Resume)
	}
	args = append(args, opts.ExtraArgs...)

	names := make([]string, 0, len(p.Env))
	for name := range p.Env {
		names = append(names, name)
	}
	sort.Strings(names)

	env := make([]spawn.EnvVar, 0, len(names))
	for _, name := range names {
		env = append(env, spawn.EnvVar{Name: name, Value: p.Env[name]})
	}

	return &Invocation{Path: path, Args: args, Env: env}, nil
}
