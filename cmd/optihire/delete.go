package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [resume-id...]",
	Short: "Delete resume versions",
	Long:  "Delete one or more resume versions by id, or every version with --all. Deletions are soft on the backend but cannot be undone from the client.",
	RunE:  runDelete,
}

var (
	deleteAll bool
	deleteYes bool
)

func init() {
	deleteCmd.Flags().BoolVar(&deleteAll, "all", false, "Delete every resume version")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if deleteAll && len(args) > 0 {
		return fmt.Errorf("--all and explicit ids are mutually exclusive")
	}
	if !deleteAll && len(args) == 0 {
		return fmt.Errorf("provide at least one resume id, or --all")
	}

	ids := make([]uuid.UUID, 0, len(args))
	for _, arg := range args {
		id, err := uuid.Parse(arg)
		if err != nil {
			return fmt.Errorf("invalid resume id %q: %w", arg, err)
		}
		ids = append(ids, id)
	}

	if !deleteYes {
		what := fmt.Sprintf("%d resume(s)", len(ids))
		if deleteAll {
			what = "ALL resumes"
		}
		fmt.Fprintf(os.Stdout, "About to delete %s. Continue? [y/N] ", what)
		var answer string
		fmt.Fscanln(os.Stdin, &answer)
		if answer != "y" && answer != "Y" {
			fmt.Fprintln(os.Stdout, "Aborted.")
			return nil
		}
	}

	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}

	if deleteAll {
		if err := env.api.DeleteAllResumes(cmd.Context()); err != nil {
			return friendlyError(err)
		}
		fmt.Fprintln(os.Stdout, "All resumes deleted.")
		return nil
	}

	for _, id := range ids {
		if err := env.api.DeleteResume(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete %s: %w", id, friendlyError(err))
		}
		fmt.Fprintf(os.Stdout, "Deleted %s\n", id)
	}
	return nil
}
