package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer renders report lines to a PDF byte stream using fpdf.
// The zero value is ready to use.
type PDFRenderer struct{}

// Render lays the lines out top to bottom on A4 pages.
func (PDFRenderer) Render(lines []string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(15, 15, 15)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 11)

	for i, line := range lines {
		if i == 0 {
			doc.SetFont("Helvetica", "B", 14)
			doc.MultiCell(0, 7, line, "", "L", false)
			doc.SetFont("Helvetica", "", 11)
			continue
		}
		doc.MultiCell(0, 6, line, "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
