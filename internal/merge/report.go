// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doc-combiner/pkg/types"
)

// Report describes one merge run for export alongside the combined PDF.
type Report struct {
	Output      string                  `json:"output" yaml:"output"`
	GeneratedAt string                  `json:"generated_at" yaml:"generated_at"`
	Pages       int                     `json:"pages" yaml:"pages"`
	Documents   []types.DocumentOutcome `json:"documents" yaml:"documents"`
	Warnings    []string                `json:"warnings" yaml:"warnings"`
	Summary     string                  `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// NewReport builds a Report for result written to output. summary is the
// display text of the summary request, or empty when none was made.
func NewReport(result types.MergeResult, output, summary string) Report {
	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return Report{
		Output:      output,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Pages:       result.Pages,
		Documents:   result.Documents,
		Warnings:    warnings,
		Summary:     summary,
	}
}

// WriteReport writes r to path as JSON when path ends in .json and as YAML
// otherwise.
func WriteReport(path string, r Report) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
	default:
		data, err = yaml.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
