package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var draftShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the draft in progress",
	RunE:  runDraftShow,
}

var draftShowJSON bool

func init() {
	draftShowCmd.Flags().BoolVar(&draftShowJSON, "json", false, "Print the full draft document as JSON")

	draftCmd.AddCommand(draftShowCmd)
}

func runDraftShow(cmd *cobra.Command, _ []string) error {
	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}

	engine := openEngine(env)
	defer engine.Close()

	pending, err := engine.LoadPending()
	if err != nil {
		return fmt.Errorf("%w; run 'optihire draft discard' to remove it", err)
	}
	if pending == nil {
		return fmt.Errorf("no draft in progress; run 'optihire draft start' first")
	}
	engine.Recover(pending)

	doc := engine.Document()
	if draftShowJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(doc)
	}

	env.printer.PrintDraft(doc.VersionName, pending.Metadata.LastSaved, pending.Metadata.IsAutoSave)
	fmt.Fprintf(os.Stdout, "Name:    %s\n", doc.Personal.FullName)
	fmt.Fprintf(os.Stdout, "Summary: %s\n", doc.Summary)
	fmt.Fprintf(os.Stdout, "Entries: %d experience, %d education, %d skills, %d projects, %d certifications\n",
		len(doc.Experiences), len(doc.Education), len(doc.Skills), len(doc.Projects), len(doc.Certifications))
	return nil
}
