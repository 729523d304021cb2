// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// newConfiguration returns the pdfcpu configuration shared by parsing and
// merging. Relaxed validation accepts the common spec deviations found in
// real-world uploads.
func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// countPages parses and validates a page source and returns its page count.
func countPages(data []byte, conf *model.Configuration) (int, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return 0, err
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, err
	}
	return ctx.PageCount, nil
}

// PageCount reports the number of pages in a PDF.
func PageCount(data []byte) (int, error) {
	return countPages(data, newConfiguration())
}

// serialize appends the pages of every source, in order, into one PDF.
func serialize(sources [][]byte, conf *model.Configuration) ([]byte, error) {
	if len(sources) == 0 {
		return emptyPDF(), nil
	}

	readers := make([]io.ReadSeeker, len(sources))
	for i, src := range sources {
		readers[i] = bytes.NewReader(src)
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, conf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// emptyPDF writes a minimal document whose page tree has no kids. pdfcpu
// has no entry point for merging zero inputs.
func emptyPDF() []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [] /Count 0 >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}
