// Package render — PDF renderer.
// Converts a cached book into a styled PDF using gofpdf: a cover page with
// title and author, then one heading-led section per chapter.
package render

import (
	"bytes"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/tdavies-dev/gutenshad/core"
)

// PDFRenderer renders a book as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the book into PDF bytes.
func (r *PDFRenderer) Render(book core.Book) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)

	// Cover page.
	pdf.AddPage()
	pdf.Ln(60)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.MultiCell(0, 10, book.Title, "", "C", false)
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 14)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 8, book.Author, "", "C", false)
	pdf.SetTextColor(0, 0, 0)

	for _, chapter := range book.Chapters {
		pdf.AddPage()
		renderChapter(pdf, chapter)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderChapter writes the chapter heading followed by its paragraphs.
func renderChapter(pdf *gofpdf.Fpdf, chapter core.Chapter) {
	pdf.SetFont("Helvetica", "B", 15)
	pdf.MultiCell(0, 9, chapter.Title, "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	content := chapter.Content
	// The heading line is part of the content; skip it when it leads.
	if strings.HasPrefix(content, chapter.Title) {
		content = strings.TrimSpace(strings.TrimPrefix(content, chapter.Title))
	}

	for _, para := range strings.Split(content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		pdf.MultiCell(0, 5, para, "", "L", false)
		pdf.Ln(3)
	}
}
