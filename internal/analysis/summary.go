package analysis

import (
	"math"
	"sort"

	"supply-curves/internal/curve"
	"supply-curves/internal/model"
)

// Summary is a compact description of one supply series relative to the cap.
type Summary struct {
	Name      string      `json:"name"`
	FirstYear int         `json:"first_year"`
	LastYear  int         `json:"last_year"`
	Count     int         `json:"count"`
	Final     model.Value `json:"final_supply"`
	// CapShare is Final / cap.
	CapShare model.Value `json:"cap_share"`

	// Year90 and Year99 are the first years at or above 90% / 99% of the cap.
	// Zero when never reached inside the series.
	Year90 int `json:"year_90,omitempty"`
	Year99 int `json:"year_99,omitempty"`

	// Distance is |unclamped final supply - cap| for calibrated curves,
	// |Final - cap| otherwise. Undefined when the supply overflowed.
	Distance model.Value `json:"distance"`
}

// Summarize describes the defined part of a series.
func Summarize(name string, s model.Series, supplyCap float64) Summary {
	out := Summary{Name: name}
	defined := s.Defined()
	if len(defined) == 0 {
		return out
	}
	out.Count = len(defined)
	out.FirstYear = defined[0].Year
	out.LastYear = defined[len(defined)-1].Year
	final := defined[len(defined)-1].Supply.V
	out.Final = model.Some(final)
	out.Distance = model.Some(math.Abs(final - supplyCap))
	if supplyCap > 0 {
		out.CapShare = model.Some(final / supplyCap)
	}
	out.Year90 = YearReaching(s, 0.90*supplyCap)
	out.Year99 = YearReaching(s, 0.99*supplyCap)
	return out
}

// YearReaching returns the first year whose value is >= level, or 0.
func YearReaching(s model.Series, level float64) int {
	for _, p := range s {
		if p.Supply.Valid && p.Supply.V >= level {
			return p.Year
		}
	}
	return 0
}

// SummarizeCurve summarizes a calibrated curve, measuring distance with the
// unclamped final supply.
func SummarizeCurve(r curve.Result, supplyCap float64) Summary {
	out := Summarize(r.Name, r.Calibration.Series, supplyCap)
	out.Distance = model.Some(math.Abs(r.Calibration.FinalSupply - supplyCap))
	return out
}

// RankByDistance summarizes curves and sorts them by how close their final
// supply lands to the cap. Equal distances keep input order and undefined
// distances sort last.
func RankByDistance(results []curve.Result, supplyCap float64) []Summary {
	out := make([]Summary, 0, len(results))
	for _, r := range results {
		out = append(out, SummarizeCurve(r, supplyCap))
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Distance, out[j].Distance
		if !a.Valid || !b.Valid {
			return a.Valid && !b.Valid
		}
		return a.V < b.V
	})
	return out
}
