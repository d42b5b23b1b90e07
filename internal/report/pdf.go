package report

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF renders the summary as a simple printable document: a title
// page header, the pass/fail tally, then one block per card. Layout is
// intentionally minimal.
func WritePDF(s *Summary, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, s.Title, "", 1, "L", false, 0, "")
	passed, failed := s.Counts()
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("%d passed, %d failed", passed, failed), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for _, e := range s.Entries {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, e.File+" - "+e.Status, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, msg := range e.Errors {
			pdf.MultiCell(0, 5, "error: "+msg, "", "L", false)
		}
		for _, msg := range e.Warnings {
			pdf.MultiCell(0, 5, "warning: "+msg, "", "L", false)
		}
		for _, msg := range e.Fixes {
			pdf.MultiCell(0, 5, "fix: "+msg, "", "L", false)
		}
		pdf.Ln(3)
	}
	return pdf.OutputFileAndClose(outPath)
}
