// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DocumentKind classifies an uploaded document by its filename suffix.
type DocumentKind string

const (
	KindPDF         DocumentKind = "pdf"
	KindImage       DocumentKind = "image"
	KindText        DocumentKind = "text"
	KindUnsupported DocumentKind = "unsupported"
)

// UploadedDocument is one file handed to the merge pipeline. It lives only
// for the duration of a single merge call.
type UploadedDocument struct {
	// Name is the original filename, used for classification and warnings.
	Name string `json:"name" yaml:"name"`

	// Data is the raw file content.
	Data []byte `json:"-" yaml:"-"`
}

// DocumentOutcome records what the pipeline did with one input document.
type DocumentOutcome struct {
	Name string       `json:"name" yaml:"name"`
	Kind DocumentKind `json:"kind" yaml:"kind"`

	// Pages is the number of pages the document contributed (0 on failure).
	Pages int `json:"pages" yaml:"pages"`

	// Warning is set when the document was skipped or failed to convert.
	Warning string `json:"warning,omitempty" yaml:"warning,omitempty"`
}

// OK reports whether the document contributed its pages to the output.
func (o DocumentOutcome) OK() bool {
	return o.Warning == ""
}

// MergeResult is the outcome of one merge call. Warnings are advisory; the
// combined PDF is present even when it has zero pages.
type MergeResult struct {
	// Combined is the serialized output PDF.
	Combined []byte `json:"-" yaml:"-"`

	// Warnings lists per-document diagnostics in input order.
	Warnings []string `json:"warnings" yaml:"warnings"`

	// Documents holds one outcome per input document, in input order.
	Documents []DocumentOutcome `json:"documents" yaml:"documents"`

	// Pages is the total page count of Combined.
	Pages int `json:"pages" yaml:"pages"`
}
