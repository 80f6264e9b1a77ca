// Package export renders finding report rows as downloadable documents.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/triup-dev/triup-admin/internal/findings"
)

// SheetName is the single worksheet the xlsx export writes to.
const SheetName = "Findings Report"

var excelHeader = []any{"Report Code", "Title TH", "Title EN", "Status"}

// WriteExcel streams an xlsx workbook of the given rows to w. Row order is
// preserved from the input.
func WriteExcel(w io.Writer, rows []findings.ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &excelHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		values := []any{row.ReportCode, row.TitleTH, row.TitleEN, row.Status}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
