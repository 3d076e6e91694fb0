package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var duplicateCmd = &cobra.Command{
	Use:   "duplicate <resume-id>",
	Short: "Duplicate a resume version under a new name",
	RunE:  runDuplicate,
	Args:  cobra.ExactArgs(1),
}

var duplicateName string

func init() {
	duplicateCmd.Flags().StringVarP(&duplicateName, "name", "n", "", "Version name for the copy (required)")
	duplicateCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(duplicateCmd)
}

func runDuplicate(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid resume id %q: %w", args[0], err)
	}

	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}

	created, err := env.api.DuplicateResume(cmd.Context(), id, duplicateName)
	if err != nil {
		return friendlyError(err)
	}

	fmt.Fprintf(os.Stdout, "Created %q (%s)\n", created.VersionName, created.ID)
	return nil
}
