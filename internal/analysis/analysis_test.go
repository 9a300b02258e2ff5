package analysis_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"supply-curves/internal/analysis"
	"supply-curves/internal/curve"
	"supply-curves/internal/model"
)

func series(vals ...float64) model.Series {
	s := make(model.Series, len(vals))
	for i, v := range vals {
		s[i] = model.Point{Year: 2018 + i}
		if v >= 0 {
			s[i].Supply = model.Some(v)
		}
	}
	return s
}

func TestBuildTable(t *testing.T) {
	// -1 marks "no value".
	rows := analysis.BuildTable(series(-1, 0, 100, 110, 110))
	require.Len(t, rows, 5)

	require.Equal(t, 2018, rows[0].Year)
	require.False(t, rows[0].Supply.Valid)
	require.False(t, rows[0].Emitted.Valid)
	require.False(t, rows[0].EmissionRatePercent.Valid)

	// Current supply is zero: emitted is known, the rate is not.
	require.True(t, rows[1].Emitted.Valid)
	require.Equal(t, 100.0, rows[1].Emitted.V)
	require.False(t, rows[1].EmissionRatePercent.Valid)

	require.InDelta(t, 10.0, rows[2].EmissionRatePercent.V, 1e-12)
	require.Equal(t, 10.0, rows[2].Emitted.V)
	require.True(t, rows[3].EmissionRatePercent.Valid)
	require.Equal(t, 0.0, rows[3].EmissionRatePercent.V)

	// The last year has nothing to look forward to.
	require.True(t, rows[4].Supply.Valid)
	require.False(t, rows[4].Emitted.Valid)
	require.False(t, rows[4].EmissionRatePercent.Valid)
}

func TestBuildTable_RateBelongsToCurrentYear(t *testing.T) {
	rows := analysis.BuildTable(series(100, 110, 121))

	require.InDelta(t, 10.0, rows[0].EmissionRatePercent.V, 1e-9)
	require.InDelta(t, 10.0, rows[1].EmissionRatePercent.V, 1e-9)
	require.False(t, rows[2].EmissionRatePercent.Valid)
}

func TestSummarize(t *testing.T) {
	s := series(-1, 50, 91, 99.5, 100)
	sum := analysis.Summarize("x", s, 100)

	require.Equal(t, 4, sum.Count)
	require.Equal(t, 2019, sum.FirstYear)
	require.Equal(t, 2022, sum.LastYear)
	require.Equal(t, model.Some(100), sum.Final)
	require.Equal(t, model.Some(1), sum.CapShare)
	require.Equal(t, 2020, sum.Year90)
	require.Equal(t, 2021, sum.Year99)
	require.Equal(t, model.Some(0), sum.Distance)

	empty := analysis.Summarize("none", series(-1, -1), 100)
	require.Zero(t, empty.Count)
	require.Zero(t, empty.Year90)
	require.False(t, empty.Final.Valid)
}

func TestRankByDistance(t *testing.T) {
	mk := func(name string, final float64) curve.Result {
		return curve.Result{
			Name: name,
			Calibration: model.CalibrationResult{
				FinalSupply: final,
				Series:      series(10, final),
			},
		}
	}
	ranked := analysis.RankByDistance([]curve.Result{
		mk("far", 150),
		mk("near", 101),
		mk("tie-a", 95),
		mk("tie-b", 105),
	}, 100)

	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.Name
	}
	require.Equal(t, []string{"near", "tie-a", "tie-b", "far"}, names)
	require.Equal(t, model.Some(50), ranked[3].Distance)
}

func TestRankByDistance_OverflowSortsLast(t *testing.T) {
	ranked := analysis.RankByDistance([]curve.Result{
		{Name: "overflow", Calibration: model.CalibrationResult{FinalSupply: math.Inf(1), Series: series(100)}},
		{Name: "far", Calibration: model.CalibrationResult{FinalSupply: 500, Series: series(100)}},
	}, 100)

	require.Equal(t, "far", ranked[0].Name)
	require.Equal(t, "overflow", ranked[1].Name)
	require.False(t, ranked[1].Distance.Valid)

	raw, err := json.Marshal(ranked[1])
	require.NoError(t, err)
	require.Contains(t, string(raw), `"distance":null`)
}
