// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc-combiner/internal/merge"
	"github.com/pdiddy/doc-combiner/internal/summary"
	"github.com/pdiddy/doc-combiner/pkg/types"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [files...]",
	Short: "Combine files into one PDF and optionally summarize it",
	Long: `Merge combines the given files, in order, into a single PDF. PDFs are
appended page by page, images become one page sized to the image, and .txt
files are typeset onto Letter pages. Unsupported or unreadable files are
reported as warnings and skipped.

With --summarize, the combined PDF is passed to the configured database
procedure and its summary is printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func runMerge(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("output")
	reportPath, _ := cmd.Flags().GetString("report")
	wantSummary, _ := cmd.Flags().GetBool("summarize")

	docs, err := readDocuments(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	result, err := merge.New(merge.WithLog(os.Stderr)).Merge(ctx, docs)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	if err := os.WriteFile(out, result.Combined, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Printf("Wrote %s (%d pages)\n", out, result.Pages)

	var summaryText string
	if wantSummary {
		req := summary.New(summaryConfig(viper.GetViper(), loadedSecrets))
		summaryText = req.Summarize(ctx, result.Combined).String()
		fmt.Printf("\nSummary:\n%s\n", summaryText)
	} else {
		fmt.Fprintln(os.Stderr, "DB call skipped (--summarize not set).")
	}

	if reportPath != "" {
		if err := merge.WriteReport(reportPath, merge.NewReport(result, out, summaryText)); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", reportPath)
	}
	return nil
}

// readDocuments loads each path into an UploadedDocument named after the
// file's base name.
func readDocuments(paths []string) ([]types.UploadedDocument, error) {
	docs := make([]types.UploadedDocument, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		docs = append(docs, types.UploadedDocument{Name: filepath.Base(p), Data: data})
	}
	return docs, nil
}

func init() {
	mergeCmd.Flags().StringP("output", "o", "combined.pdf", "path of the combined PDF")
	mergeCmd.Flags().String("report", "", "write a merge report (.yaml or .json)")
	mergeCmd.Flags().Bool("summarize", false, "call the DB procedure to summarize the combined PDF")

	rootCmd.AddCommand(mergeCmd)
}
