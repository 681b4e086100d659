package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

const (
	appName    = "offshoot"
	appVersion = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Run AI assistant CLIs as detached background jobs",
	Long: `Offshoot launches an AI coding assistant (Claude Code, etc.) as a fully
detached process that keeps running after offshoot exits. The assistant
reads its prompt from a file and streams its JSONL transcript to a file
that offshoot can tail at any time:

  offshoot run -p "summarize this repo"   # launch a detached job
  offshoot status                         # is the latest job still running?
  offshoot logs -f                        # follow its transcript
  offshoot jobs                           # list recorded jobs`,
	Version:       appVersion,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().String("state-dir", "", "Directory for job records and transcripts (default ~/.offshoot)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(logsCmd)

	rootCmd.SetVersionTemplate(fmt.Sprintf("%s v%s\n", appName, appVersion))
}

func main() {
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
