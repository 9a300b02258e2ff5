package emission

import (
	"math"

	"supply-curves/internal/model"
)

// SimulateReference runs the halving-style policy over the given year labels.
//
// The first simulated year issues a flat reward of startingSupply*startRatePercent/100
// once per step. Every later year issues (SupplyCap - supply) / 2^k per step, so the
// reward shrinks as supply approaches the cap. Years before startYear are dropped,
// which makes the result shorter than horizon when startYear is past its first label.
func SimulateReference(c model.Constants, k int, startingSupply float64, horizon []int, startYear int, startRatePercent float64) model.Series {
	out := make(model.Series, 0, len(horizon))
	divisor := math.Ldexp(1, k)
	supply := startingSupply
	started := false

	for _, year := range horizon {
		if year < startYear {
			continue
		}
		if !started {
			reward := startingSupply * (startRatePercent / 100)
			for i := 0; i < c.StepsPerYear; i++ {
				supply += reward
			}
			started = true
		} else {
			for i := 0; i < c.StepsPerYear; i++ {
				supply += (c.SupplyCap - supply) / divisor
			}
		}
		out = append(out, model.Point{Year: year, Supply: model.Some(supply)})
	}
	return out
}

// DefaultReference simulates the baseline curve from the constants alone.
func DefaultReference(c model.Constants) model.Series {
	return SimulateReference(c, c.ReferenceExponent, c.InitialSupply, c.Horizon().Labels(), c.BaseYear, 0)
}
