// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge combines uploaded documents into a single page-ordered PDF.
// Per-document failures become warnings; only serializing the output can
// fail the whole merge.
package merge

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/doc-combiner/internal/convert"
	"github.com/pdiddy/doc-combiner/pkg/types"
)

// ErrSerialize is returned when the combined PDF cannot be written.
var ErrSerialize = errors.New("serializing combined PDF")

// Pipeline classifies, converts and appends documents. A Pipeline holds no
// per-merge state and can be reused.
type Pipeline struct {
	log        io.Writer
	conf       *model.Configuration
	converters map[types.DocumentKind]convert.Converter
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLog writes one progress line per document, plus a summary line, to w.
func WithLog(w io.Writer) Option {
	return func(p *Pipeline) { p.log = w }
}

// WithConverter overrides the converter used for kind.
func WithConverter(kind types.DocumentKind, c convert.Converter) Option {
	return func(p *Pipeline) { p.converters[kind] = c }
}

// New creates a Pipeline with the default converters for PDF, image and
// text documents.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		log:        io.Discard,
		conf:       newConfiguration(),
		converters: make(map[types.DocumentKind]convert.Converter),
	}
	for _, kind := range []types.DocumentKind{types.KindPDF, types.KindImage, types.KindText} {
		c, _ := convert.For(kind)
		p.converters[kind] = c
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// pageSource is the validated PDF produced for one document.
type pageSource struct {
	data  []byte
	pages int
}

// Merge processes docs in order and returns the combined PDF with any
// warnings. The result is returned even when no document contributed a
// page. The only error conditions are a cancelled context and a failure to
// serialize the output, which wraps ErrSerialize.
func (p *Pipeline) Merge(ctx context.Context, docs []types.UploadedDocument) (types.MergeResult, error) {
	var (
		sources  [][]byte
		warnings []string
		total    int
	)
	outcomes := make([]types.DocumentOutcome, 0, len(docs))

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return types.MergeResult{}, err
		}

		src, outcome := p.process(doc)
		outcomes = append(outcomes, outcome)
		if !outcome.OK() {
			warnings = append(warnings, outcome.Warning)
			fmt.Fprintf(p.log, "%-9s %s\n", statusLabel(outcome), outcome.Warning)
			continue
		}
		sources = append(sources, src.data)
		total += src.pages
		fmt.Fprintf(p.log, "merged:   %s (%d pages)\n", doc.Name, src.pages)
	}

	combined, err := serialize(sources, p.conf)
	if err != nil {
		return types.MergeResult{}, fmt.Errorf("%w: %v", ErrSerialize, err)
	}

	fmt.Fprintf(p.log, "\nMerge summary: %d merged, %d warnings (pages: %d)\n",
		len(sources), len(warnings), total)

	return types.MergeResult{
		Combined:  combined,
		Warnings:  warnings,
		Documents: outcomes,
		Pages:     total,
	}, nil
}

// process converts and validates one document. It never fails; problems
// are reported through the outcome's Warning.
func (p *Pipeline) process(doc types.UploadedDocument) (pageSource, types.DocumentOutcome) {
	kind := convert.Classify(doc.Name)
	outcome := types.DocumentOutcome{Name: doc.Name, Kind: kind}

	c, ok := p.converters[kind]
	if !ok {
		outcome.Warning = fmt.Sprintf("%s: %s", convert.FailurePrefix(kind), doc.Name)
		return pageSource{}, outcome
	}

	src, err := p.load(c, doc.Data)
	if err != nil {
		outcome.Warning = fmt.Sprintf("%s %s: %v", convert.FailurePrefix(kind), doc.Name, err)
		return pageSource{}, outcome
	}
	outcome.Pages = src.pages
	return src, outcome
}

func (p *Pipeline) load(c convert.Converter, data []byte) (src pageSource, err error) {
	// pdfcpu and gofpdf can panic on malformed input.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	out, err := c.Convert(data)
	if err != nil {
		return pageSource{}, err
	}
	n, err := countPages(out, p.conf)
	if err != nil {
		return pageSource{}, err
	}
	return pageSource{data: out, pages: n}, nil
}

func statusLabel(o types.DocumentOutcome) string {
	if o.Kind == types.KindUnsupported {
		return "skipped:"
	}
	return "failed:"
}
