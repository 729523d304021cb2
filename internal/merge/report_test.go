// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doc-combiner/pkg/types"
)

func sampleResult() types.MergeResult {
	return types.MergeResult{
		Combined: []byte("%PDF-"),
		Warnings: []string{"Skipping unsupported file type: a.docx"},
		Documents: []types.DocumentOutcome{
			{Name: "b.pdf", Kind: types.KindPDF, Pages: 2},
			{Name: "a.docx", Kind: types.KindUnsupported, Warning: "Skipping unsupported file type: a.docx"},
		},
		Pages: 2,
	}
}

func TestWriteReport_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, WriteReport(path, NewReport(sampleResult(), "combined.pdf", "(no result)")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Report
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "combined.pdf", got.Output)
	assert.Equal(t, 2, got.Pages)
	assert.Equal(t, "(no result)", got.Summary)
	require.Len(t, got.Documents, 2)
	assert.Equal(t, types.KindUnsupported, got.Documents[1].Kind)
	assert.NotEmpty(t, got.GeneratedAt)
}

func TestWriteReport_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.JSON")
	r := NewReport(types.MergeResult{}, "out.pdf", "")
	require.NoError(t, WriteReport(path, r))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "out.pdf", raw["output"])
	assert.Equal(t, []any{}, raw["warnings"])
	assert.NotContains(t, raw, "summary")
}

func TestWriteReport_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.yaml")
	err := WriteReport(path, NewReport(sampleResult(), "combined.pdf", ""))
	assert.Error(t, err)
}
