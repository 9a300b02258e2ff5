package models

import "supply-curves/internal/model"

// SimulateRequest is the body of POST /api/v1/simulate.
type SimulateRequest struct {
	StartingSupply     float64 `json:"starting_supply" binding:"required"`
	StartYear          int     `json:"start_year" binding:"required"`
	InitialRatePercent float64 `json:"initial_rate_percent"`
	DecayRatePercent   float64 `json:"decay_rate_percent"`
}

func (r SimulateRequest) Params() model.PolicyParams {
	return model.PolicyParams{
		StartingSupply:     r.StartingSupply,
		StartYear:          r.StartYear,
		InitialRatePercent: r.InitialRatePercent,
		DecayRatePercent:   r.DecayRatePercent,
	}
}

// CalibrateRequest is the body of POST /api/v1/calibrate.
type CalibrateRequest struct {
	StartingSupply     float64 `json:"starting_supply" binding:"required"`
	StartYear          int     `json:"start_year" binding:"required"`
	InitialRatePercent float64 `json:"initial_rate_percent"`
}

// Params returns the request as decay params with a zero decay rate, which
// is what the boundary validates before the search picks the real rate.
func (r CalibrateRequest) Params() model.PolicyParams {
	return model.PolicyParams{
		StartingSupply:     r.StartingSupply,
		StartYear:          r.StartYear,
		InitialRatePercent: r.InitialRatePercent,
	}
}
