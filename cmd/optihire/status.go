package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <resume-id>",
	Short: "Show the parse status of a resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid resume id %q: %w", args[0], err)
	}

	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}

	status, err := env.api.ParseStatus(cmd.Context(), id)
	if err != nil {
		return friendlyError(err)
	}

	if env.cfg.Verbose {
		env.printer.PrintParseStatus(status)
		return nil
	}
	fmt.Fprintf(os.Stdout, "%s: %s\n", status.ID, status.Status)
	if status.ErrorDetails != nil && *status.ErrorDetails != "" {
		fmt.Fprintf(os.Stdout, "Error: %s\n", *status.ErrorDetails)
	}
	return nil
}
