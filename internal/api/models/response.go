package models

import (
	"supply-curves/internal/analysis"
	"supply-curves/internal/curve"
	"supply-curves/internal/model"
)

// ConstantsResponse describes the active simulation constants.
type ConstantsResponse struct {
	SupplyCap         float64 `json:"supply_cap"`
	StepsPerYear      int     `json:"steps_per_year"`
	HorizonYears      int     `json:"horizon_years"`
	BaseYear          int     `json:"base_year"`
	LastYear          int     `json:"last_year"`
	InitialSupply     float64 `json:"initial_supply"`
	ReferenceExponent int     `json:"reference_exponent"`
	CalibrationStep   float64 `json:"calibration_step"`
}

func NewConstantsResponse(c model.Constants) ConstantsResponse {
	return ConstantsResponse{
		SupplyCap:         c.SupplyCap,
		StepsPerYear:      c.StepsPerYear,
		HorizonYears:      c.HorizonYears,
		BaseYear:          c.BaseYear,
		LastYear:          c.Horizon().LastYear(),
		InitialSupply:     c.InitialSupply,
		ReferenceExponent: c.ReferenceExponent,
		CalibrationStep:   c.CalibrationStep,
	}
}

// SeriesResponse is a supply series with its summary.
type SeriesResponse struct {
	Policy  model.PolicyKind `json:"policy"`
	Series  model.Series     `json:"series"`
	Summary analysis.Summary `json:"summary"`
}

// SimulateResponse is returned by POST /api/v1/simulate.
type SimulateResponse struct {
	Params model.PolicyParams `json:"params"`
	// FinalSupply is unclamped and may exceed the cap. It is null when the
	// run overflows.
	FinalSupply model.Value `json:"final_supply"`
	SeriesResponse
}

// CalibrateResponse is returned by POST /api/v1/calibrate.
type CalibrateResponse struct {
	Params           model.PolicyParams `json:"params"`
	DecayRatePercent float64            `json:"decay_rate_percent"`
	FinalSupply      model.Value        `json:"final_supply"`
	SeriesResponse
}

// CurveResponse is one calibrated curve.
type CurveResponse struct {
	curve.Result
	Label string `json:"label"`
}

// CurvesResponse is returned by GET /api/v1/curves.
type CurvesResponse struct {
	SelectedYear   int                `json:"selected_year"`
	StartingSupply float64            `json:"starting_supply"`
	Reference      SeriesResponse     `json:"reference"`
	Curves         []CurveResponse    `json:"curves"`
	Ranking        []analysis.Summary `json:"ranking"`
}

// TableResponse is returned by GET /api/v1/curves/:name/table.
type TableResponse struct {
	Name         string         `json:"name"`
	Label        string         `json:"label"`
	SelectedYear int            `json:"selected_year"`
	Rows         []analysis.Row `json:"rows"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
