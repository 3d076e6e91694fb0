package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jonathan/optihire/internal/api"
	"github.com/jonathan/optihire/internal/poller"
	"github.com/jonathan/optihire/internal/uploads"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a resume file (PDF or DOCX) and wait for parsing",
	Long:  "Upload a resume file to the backend, then check parse progress every two seconds until the parse completes, fails, or times out.",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}

	workflow := uploads.NewWorkflow(env.api, &poller.Config{
		Interval:    env.cfg.PollInterval(),
		MaxAttempts: env.cfg.PollMaxAttempts,
	})

	type outcome struct {
		parsed  *api.ResumeComplete
		failure string
	}
	done := make(chan outcome, 1)
	workflow.OnParsed(func(rc *api.ResumeComplete) {
		done <- outcome{parsed: rc}
	})
	workflow.OnFailed(func(message string) {
		done <- outcome{failure: message}
	})

	result, err := workflow.Start(cmd.Context(), args[0])
	if err != nil {
		return friendlyError(err)
	}
	fmt.Fprintf(os.Stdout, "Uploaded %s (resume %s); waiting for parse...\n", result.Filename, result.ID)

	progress := time.NewTicker(env.cfg.PollInterval())
	defer progress.Stop()

	for {
		select {
		case out := <-done:
			if out.failure != "" {
				return fmt.Errorf("parse failed: %s", out.failure)
			}
			fmt.Fprintln(os.Stdout, "Resume parsed successfully.")
			if env.cfg.Verbose {
				env.printer.PrintResume(out.parsed)
			}
			return nil
		case <-progress.C:
			if state, ok := workflow.Watching(); ok && env.cfg.Verbose {
				env.printer.PrintParseProgress(state, env.cfg.PollMaxAttempts)
			}
		case <-cmd.Context().Done():
			workflow.Stop()
			return cmd.Context().Err()
		}
	}
}
