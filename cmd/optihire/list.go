package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your resume versions",
	RunE:  runList,
}

var (
	listLimit  int
	listOffset int
)

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 50, "Maximum number of versions to return")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "Number of versions to skip")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}

	items, err := env.api.ListResumes(cmd.Context(), listLimit, listOffset)
	if err != nil {
		return friendlyError(err)
	}

	if env.cfg.Verbose {
		env.printer.PrintResumeList(items)
		return nil
	}
	if len(items) == 0 {
		fmt.Fprintln(os.Stdout, "No resumes found.")
		return nil
	}
	for _, item := range items {
		marker := " "
		if item.IsPrimary {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %s  %-28s %s\n", marker, item.ID, item.VersionName, item.ProcessingStatus)
	}
	return nil
}
