package curve_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"supply-curves/internal/curve"
	"supply-curves/internal/emission"
	"supply-curves/internal/model"
)

func testOrchestrator(t *testing.T) (*curve.Orchestrator, model.Constants) {
	t.Helper()
	c := model.DefaultConstants()
	c.StepsPerYear = 1000
	c.CalibrationStep = 0.1
	ref := emission.DefaultReference(c)
	return curve.NewOrchestrator(ref, emission.NewCalibrator(c, nil, nil)), c
}

func TestRateSources(t *testing.T) {
	fixed, err := curve.NewRateSource(curve.Spec{Name: "f", Kind: curve.KindFixed, RatePercent: 7})
	require.NoError(t, err)
	require.Equal(t, "fixed", fixed.Name())
	require.Equal(t, 7.0, fixed.InitialRate(123))

	pm, err := curve.NewRateSource(curve.Spec{Name: "pm", Kind: curve.KindPerMinute})
	require.NoError(t, err)
	require.Equal(t, "per_minute", pm.Name())
	want := (525.0 * 60 * 24 * 365) / 2_520_000_000 * 100
	require.InDelta(t, want, pm.InitialRate(2_520_000_000), 1e-12)

	_, err = curve.NewRateSource(curve.Spec{Name: "x", Kind: "linear"})
	require.Error(t, err)
	_, err = curve.NewRateSource(curve.Spec{Name: "x", Kind: curve.KindFixed, RatePercent: -1})
	require.Error(t, err)
}

func TestSpecValidate(t *testing.T) {
	for _, s := range curve.DefaultSpecs() {
		require.NoError(t, s.Validate(), s.Name)
	}
	require.Error(t, curve.Spec{Kind: curve.KindFixed}.Validate())
}

func TestOrchestrator_StartingSupply(t *testing.T) {
	o, c := testOrchestrator(t)
	ref := o.Reference()

	want, ok := ref.At(2)
	require.True(t, ok)
	require.Equal(t, want, o.StartingSupply(2020))
	require.Equal(t, c.InitialSupply, o.StartingSupply(c.BaseYear))

	require.Equal(t, c.InitialSupply, o.StartingSupply(c.BaseYear+c.HorizonYears+3))
	require.Equal(t, c.InitialSupply, o.StartingSupply(c.BaseYear-1))
}

func TestOrchestrator_ReferenceIsNotShared(t *testing.T) {
	o, _ := testOrchestrator(t)
	ref := o.Reference()
	ref[0].Supply = model.Value{}

	_, ok := o.Reference().At(0)
	require.True(t, ok)
}

func TestOrchestrator_Build(t *testing.T) {
	o, c := testOrchestrator(t)
	spec := curve.Spec{Name: "per-minute", Kind: curve.KindPerMinute, PerMinuteIssuance: 525}

	res, err := o.Build(spec, 2025)
	require.NoError(t, err)

	supply := o.StartingSupply(2025)
	require.Equal(t, supply, res.StartingSupply)
	require.Equal(t, curve.PerMinuteRate{Amount: 525}.InitialRate(supply), res.InitialRatePercent)
	require.Equal(t, 2025, res.SelectedYear)

	wantRate := emission.CalibrateDecayRate(c, supply, 2025, res.InitialRatePercent)
	require.Equal(t, wantRate, res.Calibration.DecayRatePercent)
	require.Len(t, res.Calibration.Series, c.HorizonYears)

	v, ok := res.Calibration.Series.ByYear(2025)
	require.True(t, ok)
	require.Equal(t, supply, v)
	_, ok = res.Calibration.Series.ByYear(2024)
	require.False(t, ok)

	require.Contains(t, res.Label(), "per-minute (decay ")
	require.Contains(t, res.Label(), "%/yr)")
}

func TestOrchestrator_BuildAll(t *testing.T) {
	o, _ := testOrchestrator(t)
	results, err := o.BuildAll(curve.DefaultSpecs(), 2020)
	require.NoError(t, err)
	require.Len(t, results, len(curve.DefaultSpecs()))
	for i, r := range results {
		require.Equal(t, curve.DefaultSpecs()[i].Name, r.Name)
	}

	_, err = o.BuildAll([]curve.Spec{{Name: "bad", Kind: "nope"}}, 2020)
	require.Error(t, err)
}

func TestFind(t *testing.T) {
	s, err := curve.Find(curve.DefaultSpecs(), "fixed-10")
	require.NoError(t, err)
	require.Equal(t, 10.0, s.RatePercent)

	_, err = curve.Find(curve.DefaultSpecs(), "missing")
	require.ErrorIs(t, err, curve.ErrUnknownCurve)
}

func TestWithCustom(t *testing.T) {
	base := curve.DefaultSpecs()
	out, err := curve.WithCustom(base, 7.5)
	require.NoError(t, err)
	require.Len(t, out, len(base)+1)
	require.Len(t, base, 3)

	s, err := curve.Find(out, curve.CustomCurveName)
	require.NoError(t, err)
	require.Equal(t, 7.5, s.RatePercent)

	// A second custom rate replaces the first instead of duplicating it.
	again, err := curve.WithCustom(out, 2)
	require.NoError(t, err)
	require.Len(t, again, len(base)+1)

	_, err = curve.WithCustom(base, -1)
	require.Error(t, err)
}

func TestNewRateSource_RejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1)} {
		_, err := curve.NewRateSource(curve.Spec{Name: "x", Kind: curve.KindFixed, RatePercent: v})
		require.Error(t, err)
		_, err = curve.NewRateSource(curve.Spec{Name: "x", Kind: curve.KindPerMinute, PerMinuteIssuance: v})
		require.Error(t, err)
	}
}
