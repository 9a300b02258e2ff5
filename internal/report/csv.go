package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"supply-curves/internal/model"
)

var csvHeader = []string{
	"policy",
	"curve",
	"year",
	"supply",
	"emitted",
	"emission_rate_percent",
}

// WriteCSV writes every table of the bundle as one long CSV.
// Undefined cells are left empty.
func WriteCSV(w io.Writer, b Bundle) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range b.Tables {
		for _, r := range t.Rows {
			row := []string{
				string(t.Policy),
				t.Name,
				strconv.Itoa(r.Year),
				fmtValue(r.Supply),
				fmtValue(r.Emitted),
				fmtValue(r.EmissionRatePercent),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func fmtValue(v model.Value) string {
	if !v.Valid {
		return ""
	}
	return fmtFloat(v.V)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
