// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdftypes "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc-combiner/internal/convert"
	"github.com/pdiddy/doc-combiner/pkg/types"
)

// makePDF builds a PDF with one page per size, each labelled with its number.
func makePDF(t *testing.T, sizes ...gofpdf.SizeType) []byte {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetFont("Helvetica", "", 12)
	for i, size := range sizes {
		pdf.AddPageFormat("P", size)
		pdf.Text(20, 20, fmt.Sprintf("page %d", i+1))
	}
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0x7f
	}
	img.SetNRGBA(0, 0, color.NRGBA{A: 0})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func pageDims(t *testing.T, data []byte) []pdftypes.Dim {
	t.Helper()
	dims, err := api.PageDims(bytes.NewReader(data), newConfiguration())
	require.NoError(t, err)
	return dims
}

func assertDims(t *testing.T, want []gofpdf.SizeType, got []pdftypes.Dim) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i].Wd, got[i].Width, 0.01, "page %d width", i+1)
		assert.InDelta(t, want[i].Ht, got[i].Height, 0.01, "page %d height", i+1)
	}
}

var (
	sizeA = gofpdf.SizeType{Wd: 300, Ht: 400}
	sizeB = gofpdf.SizeType{Wd: 500, Ht: 200}
	sizeC = gofpdf.SizeType{Wd: 250, Ht: 250}
)

func TestMerge_SinglePDFPreservesPages(t *testing.T) {
	sizes := []gofpdf.SizeType{sizeA, sizeB, sizeC}
	docs := []types.UploadedDocument{{Name: "three.pdf", Data: makePDF(t, sizes...)}}

	result, err := New().Merge(context.Background(), docs)
	require.NoError(t, err)

	assert.Empty(t, result.Warnings)
	assert.Equal(t, 3, result.Pages)
	assertDims(t, sizes, pageDims(t, result.Combined))

	n, err := PageCount(result.Combined)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestMerge_MixedInputsKeepOrder(t *testing.T) {
	docs := []types.UploadedDocument{
		{Name: "scan.PNG", Data: makePNG(t, 100, 50)},
		{Name: "notes.txt", Data: []byte("hello\nworld\n")},
		{Name: "two.pdf", Data: makePDF(t, sizeB, sizeA)},
	}

	result, err := New().Merge(context.Background(), docs)
	require.NoError(t, err)

	assert.Empty(t, result.Warnings)
	assert.Equal(t, 4, result.Pages)
	assertDims(t, []gofpdf.SizeType{
		{Wd: 100, Ht: 50},
		{Wd: 612, Ht: 792},
		sizeB,
		sizeA,
	}, pageDims(t, result.Combined))

	require.Len(t, result.Documents, 3)
	assert.Equal(t, types.KindImage, result.Documents[0].Kind)
	assert.Equal(t, types.KindText, result.Documents[1].Kind)
	assert.Equal(t, types.KindPDF, result.Documents[2].Kind)
	assert.Equal(t, 2, result.Documents[2].Pages)
}

func TestMerge_FailuresBecomeWarnings(t *testing.T) {
	valid := makePDF(t, sizeA, sizeB)
	docs := []types.UploadedDocument{
		{Name: "good.pdf", Data: valid},
		{Name: "broken.pdf", Data: []byte("%PDF-1.4\nthis is not a pdf\n")},
		{Name: "letter.docx", Data: []byte("PK\x03\x04")},
	}

	result, err := New().Merge(context.Background(), docs)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Pages)
	assertDims(t, []gofpdf.SizeType{sizeA, sizeB}, pageDims(t, result.Combined))

	require.Len(t, result.Warnings, 2)
	assert.True(t, strings.HasPrefix(result.Warnings[0], "Failed to read PDF broken.pdf: "), result.Warnings[0])
	assert.Equal(t, "Skipping unsupported file type: letter.docx", result.Warnings[1])

	require.Len(t, result.Documents, 3)
	assert.True(t, result.Documents[0].OK())
	assert.False(t, result.Documents[1].OK())
	assert.Equal(t, 0, result.Documents[1].Pages)
	assert.Equal(t, types.KindUnsupported, result.Documents[2].Kind)
}

func TestMerge_FailureDoesNotReorderNeighbours(t *testing.T) {
	docs := []types.UploadedDocument{
		{Name: "a.pdf", Data: makePDF(t, sizeA)},
		{Name: "bad.gif", Data: []byte("GIF89a nope")},
		{Name: "c.pdf", Data: makePDF(t, sizeC)},
	}

	result, err := New().Merge(context.Background(), docs)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.True(t, strings.HasPrefix(result.Warnings[0], "Failed to convert image bad.gif: "), result.Warnings[0])
	assertDims(t, []gofpdf.SizeType{sizeA, sizeC}, pageDims(t, result.Combined))
}

func TestMerge_NothingUsable(t *testing.T) {
	docs := []types.UploadedDocument{
		{Name: "a.docx"},
		{Name: "b.pdf", Data: []byte("garbage")},
	}

	result, err := New().Merge(context.Background(), docs)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Pages)
	assert.Len(t, result.Warnings, 2)
	assert.True(t, bytes.HasPrefix(result.Combined, []byte("%PDF-")))
	assert.Contains(t, string(result.Combined), "/Count 0")
}

func TestMerge_NoDocuments(t *testing.T) {
	result, err := New().Merge(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Pages)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Documents)
	assert.NotEmpty(t, result.Combined)
}

func TestMerge_Idempotent(t *testing.T) {
	docs := []types.UploadedDocument{
		{Name: "a.pdf", Data: makePDF(t, sizeA, sizeB)},
		{Name: "b.pdf", Data: []byte("broken")},
		{Name: "c.txt", Data: []byte(strings.Repeat("line\n", 70))},
		{Name: "d.xlsx", Data: []byte("x")},
	}

	p := New()
	first, err := p.Merge(context.Background(), docs)
	require.NoError(t, err)
	second, err := p.Merge(context.Background(), docs)
	require.NoError(t, err)

	assert.Equal(t, first.Warnings, second.Warnings)
	assert.Equal(t, first.Pages, second.Pages)
	assert.Equal(t, first.Documents, second.Documents)
	assert.Equal(t, 4, first.Pages)
}

func TestMerge_ConverterErrorAndPanic(t *testing.T) {
	failing := convert.ConverterFunc(func([]byte) ([]byte, error) {
		return nil, errors.New("boom")
	})
	panicking := convert.ConverterFunc(func([]byte) ([]byte, error) {
		panic("malformed input")
	})

	p := New(
		WithConverter(types.KindText, failing),
		WithConverter(types.KindImage, panicking),
	)
	docs := []types.UploadedDocument{
		{Name: "notes.txt", Data: []byte("hi")},
		{Name: "pic.bmp", Data: []byte("BM")},
		{Name: "ok.pdf", Data: makePDF(t, sizeA)},
	}

	result, err := p.Merge(context.Background(), docs)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Failed to convert text notes.txt: boom",
		"Failed to convert image pic.bmp: malformed input",
	}, result.Warnings)
	assert.Equal(t, 1, result.Pages)
}

func TestMerge_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Merge(ctx, []types.UploadedDocument{{Name: "a.txt"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMerge_LogOutput(t *testing.T) {
	var log bytes.Buffer
	docs := []types.UploadedDocument{
		{Name: "a.pdf", Data: makePDF(t, sizeA)},
		{Name: "b.docx"},
		{Name: "c.pdf", Data: []byte("bad")},
	}

	_, err := New(WithLog(&log)).Merge(context.Background(), docs)
	require.NoError(t, err)

	out := log.String()
	assert.Contains(t, out, "merged:   a.pdf (1 pages)")
	assert.Contains(t, out, "skipped:  Skipping unsupported file type: b.docx")
	assert.Contains(t, out, "failed:   Failed to read PDF c.pdf")
	assert.Contains(t, out, "Merge summary: 1 merged, 2 warnings (pages: 1)")
}

func TestEmptyPDF_XRefOffsets(t *testing.T) {
	data := emptyPDF()
	s := string(data)

	xrefAt := strings.Index(s, "xref\n")
	require.Positive(t, xrefAt)
	assert.Contains(t, s, fmt.Sprintf("startxref\n%d\n", xrefAt))

	entries := strings.Split(strings.TrimSpace(s[xrefAt:strings.Index(s, "trailer")]), "\n")[2:]
	for i, entry := range entries[1:] {
		off, err := strconv.Atoi(entry[:10])
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(s[off:], fmt.Sprintf("%d 0 obj", i+1)), "object %d offset", i+1)
	}
	assert.True(t, strings.HasSuffix(s, "%%EOF\n"))
}
