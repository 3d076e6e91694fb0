package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jonathan/optihire/internal/builder"
	"github.com/spf13/cobra"
)

var draftStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new draft, empty or from an existing resume version",
	RunE:  runDraftStart,
}

var (
	draftStartFrom string
	draftStartName string
)

func init() {
	draftStartCmd.Flags().StringVar(&draftStartFrom, "from", "", "Resume id to load as the starting point")
	draftStartCmd.Flags().StringVarP(&draftStartName, "name", "n", "", "Version name for a fresh draft")

	draftCmd.AddCommand(draftStartCmd)
}

func runDraftStart(cmd *cobra.Command, _ []string) error {
	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}

	engine := openEngine(env)
	pending, err := engine.LoadPending()
	if err != nil {
		// Starting fresh would overwrite whatever is still readable in
		// the stored draft.
		return fmt.Errorf("%w; run 'optihire draft discard' to remove it", err)
	}
	if pending != nil {
		return fmt.Errorf("a draft from %s is already in progress; keep editing it, or run 'optihire draft discard' first",
			pending.Metadata.LastSaved.Local().Format("2006-01-02 15:04"))
	}
	defer engine.Close()

	var doc *builder.Document
	if draftStartFrom != "" {
		id, err := uuid.Parse(draftStartFrom)
		if err != nil {
			return fmt.Errorf("invalid resume id %q: %w", draftStartFrom, err)
		}
		complete, err := env.api.GetResumeComplete(cmd.Context(), id)
		if err != nil {
			return friendlyError(err)
		}
		doc = builder.FromComplete(complete)
	} else {
		doc = builder.NewDocument()
		doc.VersionName = draftStartName
	}

	engine.Apply(func(d *builder.Document) { *d = *doc })
	if err := engine.Flush(); err != nil {
		return err
	}

	if draftStartFrom != "" {
		fmt.Fprintf(os.Stdout, "Draft started from %q\n", doc.VersionName)
	} else {
		fmt.Fprintln(os.Stdout, "Draft started.")
	}
	return nil
}
