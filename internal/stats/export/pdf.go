package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/triup-dev/triup-admin/internal/findings"
)

// WritePDF streams a PDF report of the given rows to w. Row order is
// preserved from the input.
func WritePDF(w io.Writer, rows []findings.ExportRow) error {
	return writePDF(w, rows, true)
}

// writePDF is the compress-tunable core. Tests disable compression so the
// content stream stays greppable.
func writePDF(w io.Writer, rows []findings.ExportRow, compress bool) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Research Findings Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	for _, row := range rows {
		line := fmt.Sprintf("%s - %s (%s)", row.ReportCode, row.TitleTH, row.Status)
		pdf.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
		pdf.Ln(1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
