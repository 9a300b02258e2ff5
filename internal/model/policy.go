package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// PolicyKind names an emission policy. Keep these values stable; they are
// used in CSV output and metric labels.
type PolicyKind string

const (
	PolicyReference PolicyKind = "reference"
	PolicyDecay     PolicyKind = "decay"
)

var ErrYearOutOfRange = errors.New("year outside simulation horizon")

// CheckYear reports whether year lies inside h.
func CheckYear(h Horizon, year int) error {
	if !h.Contains(year) {
		return fmt.Errorf("%w: %d not in %d..%d", ErrYearOutOfRange, year, h.BaseYear, h.LastYear())
	}
	return nil
}

// PolicyParams fully determines one geometric-decay simulation.
// Units:
// - StartingSupply: tokens
// - InitialRatePercent: annual growth in percent of current supply
// - DecayRatePercent: percent by which the growth rate shrinks each year, 0..100
type PolicyParams struct {
	StartingSupply     float64 `json:"starting_supply" yaml:"starting_supply"`
	StartYear          int     `json:"start_year" yaml:"start_year"`
	InitialRatePercent float64 `json:"initial_rate_percent" yaml:"initial_rate_percent"`
	DecayRatePercent   float64 `json:"decay_rate_percent" yaml:"decay_rate_percent"`
}

// Validate checks params against a horizon. The simulators never call it;
// it belongs to the boundary that accepts user input.
func (p PolicyParams) Validate(h Horizon) error {
	if p.StartingSupply <= 0 {
		return errors.New("StartingSupply must be > 0")
	}
	if err := CheckYear(h, p.StartYear); err != nil {
		return fmt.Errorf("StartYear: %w", err)
	}
	if p.InitialRatePercent < 0 {
		return errors.New("InitialRatePercent must be >= 0")
	}
	if p.DecayRatePercent < 0 || p.DecayRatePercent > 100 {
		return errors.New("DecayRatePercent must be in [0, 100]")
	}
	return nil
}

// CalibrationResult is the outcome of a decay-rate search.
type CalibrationResult struct {
	DecayRatePercent float64 `json:"decay_rate_percent"`
	// FinalSupply is the unclamped supply after the last simulated year.
	// It can overflow to +Inf and then marshals as null.
	FinalSupply float64 `json:"final_supply"`
	Series      Series  `json:"series"`
}

func (r CalibrationResult) MarshalJSON() ([]byte, error) {
	type plain CalibrationResult
	return json.Marshal(struct {
		plain
		FinalSupply Value `json:"final_supply"`
	}{plain(r), Some(r.FinalSupply)})
}

// Clone returns a copy that shares no memory with r.
func (r CalibrationResult) Clone() CalibrationResult {
	r.Series = append(Series(nil), r.Series...)
	return r
}
