package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/offshoot-cli/offshoot/internal/config"
	"github.com/offshoot-cli/offshoot/internal/stream"
)

var logsCmd = &cobra.Command{
	Use:   "logs [job-id]",
	Short: "Print or follow a job's transcript",
	Long: `Print the JSONL transcript of a detached job (the latest one when no ID
is given). With --follow, keep tailing as the assistant appends; this
works whether or not the job is still running, and stops on Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogs,
}

var (
	logsFollow bool
	logsRaw    bool
)

func init() {
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Keep tailing the transcript")
	logsCmd.Flags().BoolVar(&logsRaw, "raw", false, "Print raw JSONL with no decoration")
}

func runLogs(cmd *cobra.Command, args []string) error {
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

	pretty := !logsRaw && term.IsTerminal(int(os.Stdout.Fd()))

	if !logsFollow {
		events, err := stream.ReadAll(j.OutputFile)
		if err != nil {
			return err
		}
		for _, ev := range events {
			printEvent(os.Stdout, ev, pretty)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := make(chan stream.Event, 64)
	errc := make(chan error, 1)
	go func() {
		errc <- stream.NewTailer(j.OutputFile, cfg.Settings.PollInterval).Follow(ctx, events)
	}()

	for {
		select {
		case ev := <-events:
			printEvent(os.Stdout, ev, pretty)
		case err := <-errc:
			// The tailer may have queued records between the last receive
			// and its shutdown; don't lose the end of the transcript.
			flushEvents(events, os.Stdout, pretty)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

// flushEvents prints everything already queued on the channel.
func flushEvents(events <-chan stream.Event, w io.Writer, pretty bool) {
	for {
		select {
		case ev := <-events:
			printEvent(w, ev, pretty)
		default:
			return
		}
	}
}

func printEvent(w io.Writer, ev stream.Event, pretty bool) {
	if pretty && ev.Type != "" {
		fmt.Fprintf(w, "\x1b[2m[%s]\x1b[0m %s\n", ev.Type, ev.Raw)
		return
	}
	fmt.Fprintf(w, "%s\n", ev.Raw)
}
