package pdf

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/russross/blackfriday/v2"
)

// MarkdownToPDF converts markdown text to PDF and writes it to w. Headings,
// paragraphs, list items and fenced blocks are laid out; other markup is
// flattened to text.
func MarkdownToPDF(markdown string, w io.Writer) error {
	rendered := blackfriday.Run([]byte(markdown))

	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate so accented names print correctly.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	inPre := false
	for _, line := range strings.Split(string(rendered), "\n") {
		text := tr(stripTags(line))

		switch {
		case strings.HasPrefix(line, "<h1"):
			pdf.SetFont("Arial", "B", 16)
			pdf.MultiCell(0, 10, text, "", "", false)
			pdf.Ln(4)
		case strings.HasPrefix(line, "<h2"):
			pdf.Ln(2)
			pdf.SetFont("Arial", "B", 14)
			pdf.MultiCell(0, 8, text, "", "", false)
			pdf.Ln(2)
		case strings.HasPrefix(line, "<h3"):
			pdf.SetFont("Arial", "BI", 12)
			pdf.MultiCell(0, 8, text, "", "", false)
		case strings.HasPrefix(line, "<pre"), inPre:
			inPre = !strings.Contains(line, "</pre>")
			if text == "" {
				pdf.Ln(2)
				continue
			}
			pdf.SetFont("Courier", "", 10)
			pdf.MultiCell(0, 5, text, "", "", false)
		case strings.HasPrefix(line, "<li"):
			pdf.SetFont("Arial", "", 12)
			pdf.MultiCell(0, 6, "- "+text, "", "", false)
		case text != "":
			pdf.SetFont("Arial", "", 12)
			pdf.MultiCell(0, 6, text, "", "", false)
			pdf.Ln(3)
		}
	}

	pageCount := pdf.PageCount()
	for i := 1; i <= pageCount; i++ {
		pdf.SetPage(i)
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of %d", i, pageCount), "", 0, "C", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	return pdf.Output(w)
}

// stripTags removes HTML tags from a line and decodes entities.
func stripTags(s string) string {
	var buf bytes.Buffer
	var inTag bool

	for _, r := range s {
		if r == '<' {
			inTag = true
			continue
		}
		if r == '>' {
			inTag = false
			continue
		}
		if !inTag {
			buf.WriteRune(r)
		}
	}

	return strings.TrimSpace(html.UnescapeString(buf.String()))
}
