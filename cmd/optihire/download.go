package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jonathan/optihire/internal/api"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var downloadCmd = &cobra.Command{
	Use:   "download [resume-id...]",
	Short: "Download resume versions as PDF",
	Long:  "Download one or more resume versions as PDF files, or every completed version with --all. Files are written to the output directory under their server-provided names.",
	RunE:  runDownload,
}

var (
	downloadAll bool
	downloadOut string
)

// downloadConcurrency bounds parallel downloads with --all.
const downloadConcurrency = 4

// listPageSize is the largest page the backend will return; it clamps
// bigger limits server-side, so --all must walk offsets.
const listPageSize = 100

// resumeLister is the listing slice of the API client.
type resumeLister interface {
	ListResumes(ctx context.Context, limit, offset int) ([]api.ResumeListItem, error)
}

// completedResumeIDs pages through the full resume list and returns the
// id of every completed version. A short page marks the end of the list.
func completedResumeIDs(ctx context.Context, lister resumeLister) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for offset := 0; ; offset += listPageSize {
		items, err := lister.ListResumes(ctx, listPageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if item.ProcessingStatus == api.StatusCompleted {
				ids = append(ids, item.ID)
			}
		}
		if len(items) < listPageSize {
			return ids, nil
		}
	}
}

func init() {
	downloadCmd.Flags().BoolVar(&downloadAll, "all", false, "Download every completed resume version")
	downloadCmd.Flags().StringVarP(&downloadOut, "out", "o", ".", "Output directory")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	if downloadAll && len(args) > 0 {
		return fmt.Errorf("--all and explicit ids are mutually exclusive")
	}
	if !downloadAll && len(args) == 0 {
		return fmt.Errorf("provide at least one resume id, or --all")
	}

	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(downloadOut, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var ids []uuid.UUID
	if downloadAll {
		ids, err = completedResumeIDs(cmd.Context(), env.api)
		if err != nil {
			return friendlyError(err)
		}
		if len(ids) == 0 {
			fmt.Fprintln(os.Stdout, "No completed resumes to download.")
			return nil
		}
	} else {
		for _, arg := range args {
			id, err := uuid.Parse(arg)
			if err != nil {
				return fmt.Errorf("invalid resume id %q: %w", arg, err)
			}
			ids = append(ids, id)
		}
	}

	group, ctx := errgroup.WithContext(cmd.Context())
	group.SetLimit(downloadConcurrency)

	for _, id := range ids {
		id := id
		group.Go(func() error {
			download, err := env.api.DownloadPDF(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to download %s: %w", id, friendlyError(err))
			}
			path := filepath.Join(downloadOut, download.Filename)
			if err := os.WriteFile(path, download.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(os.Stdout, "Saved %s\n", path)
			return nil
		})
	}
	return group.Wait()
}
