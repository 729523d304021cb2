// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert normalizes uploaded documents into PDF page sources.
// Each document kind maps to one Converter; the merge pipeline parses the
// resulting PDF bytes and appends their pages.
package convert

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdiddy/doc-combiner/pkg/types"
)

// Converter turns raw document bytes into a PDF page source. Different
// document kinds (PDF passthrough, image, text) implement this interface.
type Converter interface {
	// Convert returns the PDF bytes for data.
	Convert(data []byte) ([]byte, error)
}

// ConverterFunc adapts a plain function to the Converter interface.
type ConverterFunc func(data []byte) ([]byte, error)

// Convert calls f(data).
func (f ConverterFunc) Convert(data []byte) ([]byte, error) {
	return f(data)
}

// imageExts lists the raster suffixes accepted for image conversion.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tiff": true,
	".bmp":  true,
	".gif":  true,
}

// Classify maps a filename to its document kind by case-insensitive suffix.
func Classify(name string) types.DocumentKind {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case ext == ".pdf":
		return types.KindPDF
	case imageExts[ext]:
		return types.KindImage
	case ext == ".txt":
		return types.KindText
	default:
		return types.KindUnsupported
	}
}

// Passthrough returns PDF input unchanged; parsing happens in the merger.
var Passthrough = ConverterFunc(func(data []byte) ([]byte, error) {
	return data, nil
})

// Text decodes data as UTF-8 (with replacement) and renders it.
var Text = ConverterFunc(func(data []byte) ([]byte, error) {
	return RenderText(DecodeText(data))
})

// Image renders raster image data as a single page.
var Image = ConverterFunc(RenderImage)

// For returns the converter for kind. Unsupported kinds have no converter.
func For(kind types.DocumentKind) (Converter, error) {
	switch kind {
	case types.KindPDF:
		return Passthrough, nil
	case types.KindImage:
		return Image, nil
	case types.KindText:
		return Text, nil
	default:
		return nil, fmt.Errorf("no converter for document kind %q", kind)
	}
}

// FailurePrefix returns the warning prefix used when a document of kind
// fails to convert, e.g. "Failed to read PDF".
func FailurePrefix(kind types.DocumentKind) string {
	switch kind {
	case types.KindPDF:
		return "Failed to read PDF"
	case types.KindImage:
		return "Failed to convert image"
	case types.KindText:
		return "Failed to convert text"
	default:
		return "Skipping unsupported file type"
	}
}
