package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"github.com/spf13/cobra"

	"github.com/offshoot-cli/offshoot/internal/config"
	"github.com/offshoot-cli/offshoot/internal/spawn"
)

var statusCmd = &cobra.Command{
	Use:   "status [job-id]",
	Short: "Report whether a detached job is still running",
	Long: `Report liveness of a detached job (the latest one when no ID is given).

The job's PID is a weak reference - the OS recycles PIDs, so a "running"
job whose PID now belongs to an unrelated process looks alive. To make
that visible, status also prints what currently owns the PID.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}

	store, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}

	j, err := resolveJob(store, args)
	if err != nil {
		return err
	}

	state := "exited"
	if spawn.Alive(j.PID) {
		state = "running"
	}

	fmt.Printf("job:        %s\n", j.ID)
	fmt.Printf("assistant:  %s\n", j.Assistant)
	fmt.Printf("pid:        %d (%s)\n", j.PID, state)
	fmt.Printf("started:    %s\n", j.StartedAt.Local().Format(time.RFC3339))
	fmt.Printf("workdir:    %s\n", j.WorkDir)
	fmt.Printf("transcript: %s\n", j.OutputFile)

	if state == "running" {
		// Show what owns the PID right now. After PID reuse this names some
		// unrelated process, which is exactly what is worth surfacing.
		if p, err := process.NewProcess(int32(j.PID)); err == nil {
			if name, err := p.Name(); err == nil {
				fmt.Printf("pid owner:  %s", name)
				if cmdline, err := p.Cmdline(); err == nil && cmdline != "" {
					fmt.Printf(" (%s)", cmdline)
				}
				fmt.Println()
			}
		}
	}

	return nil
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List recorded jobs",
	Args:  cobra.NoArgs,
	RunE:  runJobs,
}

func runJobs(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}

	store, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}

	jobs, err := store.List()
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println("no jobs recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tASSISTANT\tPID\tSTATE\tSTARTED")
	for _, j := range jobs {
		state := "exited"
		if spawn.Alive(j.PID) {
			state = "running"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			j.ID, j.Assistant, j.PID, state, j.StartedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
