// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf"
)

// Text layout on a US Letter page, in points.
const (
	textMargin     = 40.0
	textLineHeight = 12.0
	textFont       = "Helvetica"
	textFontSize   = 12.0
)

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// DecodeText converts data to a string, replacing each invalid UTF-8 byte
// with U+FFFD. It never fails.
func DecodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	var b strings.Builder
	b.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		b.WriteRune(r) // RuneError for invalid bytes
		data = data[size:]
	}
	return b.String()
}

// splitLines splits text on \n, \r\n and \r. A trailing line break does not
// produce an empty final line and empty text yields no lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = lineBreaks.Replace(text)
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// RenderText lays text out top to bottom on Letter pages with a fixed left
// margin and line height, starting a new page when the cursor crosses the
// bottom margin. The result always has at least one page.
func RenderText(text string) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(textMargin, textMargin, textMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont(textFont, "", textFontSize)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	_, pageHeight := pdf.GetPageSize()
	bottom := pageHeight - textMargin

	pdf.AddPage()
	y := textMargin
	for _, line := range splitLines(text) {
		if y > bottom {
			pdf.AddPage()
			y = textMargin
		}
		if line != "" {
			pdf.Text(textMargin, y, tr(line))
		}
		y += textLineHeight
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing text PDF: %w", err)
	}
	return buf.Bytes(), nil
}
