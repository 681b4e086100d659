package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/offshoot-cli/offshoot/internal/assistant"
	"github.com/offshoot-cli/offshoot/internal/config"
	"github.com/offshoot-cli/offshoot/internal/job"
	"github.com/offshoot-cli/offshoot/internal/spawn"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [-- assistant args...]",
	Short: "Launch a detached assistant job",
	Long: `Launch the configured assistant CLI as a detached background process.

The prompt is written to an input file and streamed to the assistant's
stdin; the assistant's combined output is appended to a JSONL transcript.
Offshoot exits as soon as the job is launched - the assistant keeps
running on its own and can be observed later:

  offshoot run -p "explain the build system"
  offshoot run -a gemini -p "review this diff" --dir ~/src/app
  git diff | offshoot run --model opus
  offshoot run -p "continue" --resume sess-42 -- --max-turns 3`,
	RunE: runRun,
}

var (
	runAssistant string
	runPrompt    string
	runDir       string
	runModel     string
	runResume    string
	runEnv       []string
)

func init() {
	runCmd.Flags().StringVarP(&runAssistant, "assistant", "a", "", "Assistant profile to run (default from config)")
	runCmd.Flags().StringVarP(&runPrompt, "prompt", "p", "", "Prompt text (read from stdin when omitted)")
	runCmd.Flags().StringVar(&runDir, "dir", "", "Working directory for the assistant")
	runCmd.Flags().StringVar(&runModel, "model", "", "Model override")
	runCmd.Flags().StringVar(&runResume, "resume", "", "Assistant session ID to resume")
	runCmd.Flags().StringArrayVar(&runEnv, "env", nil, "Extra NAME=VALUE for the assistant (repeatable)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}

	profile, err := cfg.Profile(runAssistant)
	if err != nil {
		return err
	}

	inv, err := profile.Resolve(assistant.Options{
		Model:     runModel,
		Resume:    runResume,
		ExtraArgs: args,
	})
	if err != nil {
		return err
	}

	prompt := runPrompt
	if prompt == "" {
		if isTerminal(os.Stdin) {
			return errors.New("no prompt: pass --prompt or pipe one on stdin")
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read prompt from stdin: %w", err)
		}
		prompt = string(data)
	}

	flagEnv, err := parseEnvVars(runEnv)
	if err != nil {
		return err
	}

	store, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}

	id, err := job.NewID()
	if err != nil {
		return err
	}

	workDir := runDir
	if workDir == "" {
		workDir = profile.WorkDir
	}
	if workDir == "" {
		workDir = cwd
	}

	j := &job.Job{
		ID:         id,
		Assistant:  profile.Name,
		Command:    inv.Path,
		Args:       inv.Args,
		InputFile:  store.InputPath(id),
		OutputFile: store.OutputPath(id),
		WorkDir:    workDir,
		StartedAt:  time.Now().UTC(),
	}

	// The input file must be complete before the spawn: it is consumed once,
	// and the transcript must open with the header before the child appends.
	if err := os.WriteFile(j.InputFile, []byte(prompt), 0644); err != nil {
		return fmt.Errorf("write input file: %w", err)
	}
	if err := job.WriteHeader(j.OutputFile, job.NewHeader(j)); err != nil {
		return err
	}

	pid, err := spawn.Detach(spawn.Request{
		Path:       inv.Path,
		Args:       inv.Args,
		InputFile:  j.InputFile,
		OutputFile: j.OutputFile,
		Dir:        workDir,
		Env:        append(inv.Env, flagEnv...),
	})
	if err != nil {
		if pid > 0 && errors.Is(err, spawn.ErrStdinWrite) {
			// The child exists but may not have received the whole prompt.
			// Record it anyway so status/logs can show what it is doing.
			j.PID = pid
			if saveErr := store.Save(j); saveErr != nil {
				return saveErr
			}
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			fmt.Printf("job %s started: %s pid %d (input delivery uncertain)\n", j.ID, j.Assistant, pid)
			return nil
		}
		return err
	}

	j.PID = pid
	if err := store.Save(j); err != nil {
		return err
	}

	fmt.Printf("job %s started: %s pid %d\n", j.ID, j.Assistant, pid)
	fmt.Printf("transcript: %s\n", j.OutputFile)
	fmt.Printf("follow with: %s logs -f %s\n", appName, j.ID)
	return nil
}
