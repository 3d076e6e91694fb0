package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [resume-id]",
	Short: "Show a resume version (the active one when no id is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

var showJSON bool

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the full record as JSON")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}

	var id uuid.UUID
	if len(args) == 1 {
		if id, err = uuid.Parse(args[0]); err != nil {
			return fmt.Errorf("invalid resume id %q: %w", args[0], err)
		}
	} else {
		active, err := env.api.GetActiveResume(cmd.Context())
		if err != nil {
			return friendlyError(err)
		}
		id = active.ID
	}

	resume, err := env.api.GetResumeComplete(cmd.Context(), id)
	if err != nil {
		return friendlyError(err)
	}

	if showJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(resume)
	}
	env.printer.PrintResume(resume)
	return nil
}
