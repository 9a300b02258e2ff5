package curve

import (
	"errors"
	"fmt"

	"supply-curves/internal/emission"
	"supply-curves/internal/model"
)

var ErrUnknownCurve = errors.New("unknown curve")

// Result is one calibrated alternative curve, ready for presentation.
type Result struct {
	Name               string                  `json:"name"`
	Kind               Kind                    `json:"kind"`
	SelectedYear       int                     `json:"selected_year"`
	StartingSupply     float64                 `json:"starting_supply"`
	InitialRatePercent float64                 `json:"initial_rate_percent"`
	Calibration        model.CalibrationResult `json:"calibration"`
}

// Label is the display name with the calibrated decay rate embedded.
func (r Result) Label() string {
	return fmt.Sprintf("%s (decay %.3f%%/yr)", r.Name, r.Calibration.DecayRatePercent)
}

// Orchestrator turns curve specs into calibrated series against a fixed
// reference series. The reference is computed once by the caller and only
// read afterwards.
type Orchestrator struct {
	consts    model.Constants
	reference model.Series
	cal       *emission.Calibrator
}

func NewOrchestrator(reference model.Series, cal *emission.Calibrator) *Orchestrator {
	ref := make(model.Series, len(reference))
	copy(ref, reference)
	return &Orchestrator{
		consts:    cal.Constants(),
		reference: ref,
		cal:       cal,
	}
}

// Reference returns a copy of the baseline series.
func (o *Orchestrator) Reference() model.Series {
	out := make(model.Series, len(o.reference))
	copy(out, o.reference)
	return out
}

func (o *Orchestrator) Constants() model.Constants { return o.consts }

// StartingSupply reads the reference series at position selectedYear-BaseYear
// and falls back to the initial supply when there is nothing there.
func (o *Orchestrator) StartingSupply(selectedYear int) float64 {
	if v, ok := o.reference.At(selectedYear - o.consts.BaseYear); ok {
		return v
	}
	return o.consts.InitialSupply
}

// Build calibrates a single curve for selectedYear.
func (o *Orchestrator) Build(spec Spec, selectedYear int) (Result, error) {
	src, err := NewRateSource(spec)
	if err != nil {
		return Result{}, err
	}
	supply := o.StartingSupply(selectedYear)
	rate := src.InitialRate(supply)

	return Result{
		Name:               spec.Name,
		Kind:               spec.Kind,
		SelectedYear:       selectedYear,
		StartingSupply:     supply,
		InitialRatePercent: rate,
		Calibration:        o.cal.Calibrate(supply, selectedYear, rate),
	}, nil
}

// BuildAll calibrates every spec in order.
func (o *Orchestrator) BuildAll(specs []Spec, selectedYear int) ([]Result, error) {
	out := make([]Result, 0, len(specs))
	for _, spec := range specs {
		r, err := o.Build(spec, selectedYear)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Find returns the spec with the given name.
func Find(specs []Spec, name string) (Spec, error) {
	for _, s := range specs {
		if s.Name == name {
			return s, nil
		}
	}
	return Spec{}, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
}
