package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"supply-curves/internal/model"
)

// BuildPDF renders the summary table followed by every per-year table.
func BuildPDF(b Bundle) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, b.Title)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(45, 6, "Curve", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "From", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Final Supply", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Cap Share", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "99% Year", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Distance", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, s := range b.Summaries {
		pdf.CellFormat(45, 6, s.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", s.FirstYear), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 6, pdfValue(s.Final, "%.0f"), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, pdfValue(s.CapShare, "%.4f"), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, yearOrDash(s.Year99), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, pdfValue(s.Distance, "%.0f"), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	for _, t := range b.Tables {
		pdf.AddPage()
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 8, t.Label)
		pdf.Ln(10)

		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(20, 6, "Year", "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, "Supply", "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, "Emitted", "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, "Rate (%)", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
		for _, r := range t.Rows {
			pdf.CellFormat(20, 6, fmt.Sprintf("%d", r.Year), "1", 0, "C", false, 0, "")
			pdf.CellFormat(50, 6, pdfValue(r.Supply, "%.0f"), "1", 0, "R", false, 0, "")
			pdf.CellFormat(50, 6, pdfValue(r.Emitted, "%.0f"), "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 6, pdfValue(r.EmissionRatePercent, "%.4f"), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pdfValue(v model.Value, format string) string {
	if !v.Valid {
		return "-"
	}
	return fmt.Sprintf(format, v.V)
}

func yearOrDash(y int) string {
	if y == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", y)
}
