package emission

import (
	"math"

	"supply-curves/internal/model"
)

// DecayResult is the output of one geometric-decay run.
type DecayResult struct {
	// FinalSupply is unclamped; calibration measures overshoot with it.
	FinalSupply float64      `json:"final_supply"`
	Series      model.Series `json:"series"`
}

// SimulateDecay runs the geometric-decay policy for horizonLen years starting at
// c.BaseYear. Recorded values are clamped to c.SupplyCap.
func SimulateDecay(c model.Constants, p model.PolicyParams, horizonLen int) DecayResult {
	if horizonLen < 0 {
		horizonLen = 0
	}
	series := make(model.Series, horizonLen)
	for i := range series {
		series[i].Year = c.BaseYear + i
	}
	final := runDecay(c, p, horizonLen, series)
	return DecayResult{FinalSupply: final, Series: series}
}

// runDecay is the shared loop behind SimulateDecay and the calibration scan.
// When series is nil nothing is recorded, which keeps the scan allocation free
// while producing bit-identical final supplies.
func runDecay(c model.Constants, p model.PolicyParams, horizonLen int, series model.Series) float64 {
	// A start before the base year still compounds through the missing years;
	// only in-horizon years are recorded.
	start := p.StartYear - c.BaseYear
	supply := p.StartingSupply
	rate := p.InitialRatePercent
	shrink := (100 - p.DecayRatePercent) / 100

	for i := start; i < horizonLen; i++ {
		if series != nil && i >= 0 {
			series[i].Supply = model.Some(math.Min(supply, c.SupplyCap))
		}
		if i != start {
			rate *= shrink
		}
		supply += supply * (rate / 100)
	}
	return supply
}
