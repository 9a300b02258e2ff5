package analysis

import (
	"supply-curves/internal/model"
)

// Row is one line of the per-year supply table.
type Row struct {
	Year   int         `json:"year"`
	Supply model.Value `json:"supply"`
	// Emitted is the supply added between this year and the next.
	Emitted model.Value `json:"emitted"`
	// EmissionRatePercent is Emitted as a percentage of this year's supply.
	EmissionRatePercent model.Value `json:"emission_rate_percent"`
}

// BuildTable derives per-year emission figures from a series. Each row looks
// forward to the following year, so the last row carries no emission figures.
// Anything that cannot be computed (a missing neighbour, a zero supply) is
// left undefined instead of carrying NaN or Inf.
func BuildTable(s model.Series) []Row {
	rows := make([]Row, len(s))
	for i, p := range s {
		rows[i] = Row{Year: p.Year, Supply: p.Supply}
		if i == len(s)-1 {
			continue
		}
		next := s[i+1].Supply
		if !p.Supply.Valid || !next.Valid {
			continue
		}
		emitted := next.V - p.Supply.V
		rows[i].Emitted = model.Some(emitted)
		if p.Supply.V != 0 {
			rows[i].EmissionRatePercent = model.Some(emitted / p.Supply.V * 100)
		}
	}
	return rows
}
