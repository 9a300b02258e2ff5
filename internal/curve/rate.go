package curve

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Kind selects how a curve derives its nominal initial rate.
// Keep these values stable; they appear in config files and API payloads.
type Kind string

const (
	KindFixed     Kind = "fixed"
	KindPerMinute Kind = "per_minute"
)

// MinutesPerYear annualizes a per-minute issuance amount.
const MinutesPerYear = 60 * 24 * 365

// DefaultPerMinuteIssuance is the tokens-per-minute figure of the stock
// per-minute curve.
const DefaultPerMinuteIssuance = 525

// Spec describes one alternative curve.
type Spec struct {
	Name string `yaml:"name" json:"name"`
	Kind Kind   `yaml:"kind" json:"kind"`
	// RatePercent is the initial annual rate for KindFixed.
	RatePercent float64 `yaml:"rate_percent" json:"rate_percent,omitempty"`
	// PerMinuteIssuance is the issuance per minute for KindPerMinute.
	PerMinuteIssuance float64 `yaml:"per_minute_issuance" json:"per_minute_issuance,omitempty"`
}

func (s Spec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("curve name is required")
	}
	_, err := NewRateSource(s)
	return err
}

// RateSource produces a curve's nominal initial rate from its starting supply.
type RateSource interface {
	Name() string
	InitialRate(startingSupply float64) float64
}

// FixedRate ignores the starting supply.
type FixedRate struct {
	Percent float64
}

func (FixedRate) Name() string { return string(KindFixed) }

func (r FixedRate) InitialRate(float64) float64 { return r.Percent }

// PerMinuteRate expresses a constant per-minute issuance as an annual
// percentage of the starting supply. A zero starting supply yields +Inf.
type PerMinuteRate struct {
	Amount float64
}

func (PerMinuteRate) Name() string { return string(KindPerMinute) }

func (r PerMinuteRate) InitialRate(startingSupply float64) float64 {
	return (r.Amount * MinutesPerYear) / startingSupply * 100
}

// NewRateSource builds the rate source a spec asks for.
func NewRateSource(s Spec) (RateSource, error) {
	switch s.Kind {
	case KindFixed:
		if !(s.RatePercent >= 0) || math.IsInf(s.RatePercent, 0) {
			return nil, fmt.Errorf("curve %q: rate_percent must be a finite number >= 0", s.Name)
		}
		return FixedRate{Percent: s.RatePercent}, nil
	case KindPerMinute:
		amount := s.PerMinuteIssuance
		if amount == 0 {
			amount = DefaultPerMinuteIssuance
		}
		if !(amount >= 0) || math.IsInf(amount, 0) {
			return nil, fmt.Errorf("curve %q: per_minute_issuance must be >= 0", s.Name)
		}
		return PerMinuteRate{Amount: amount}, nil
	default:
		return nil, fmt.Errorf("curve %q: unsupported kind %q", s.Name, s.Kind)
	}
}

// CustomCurveName names the ad-hoc curve built from a caller-supplied rate.
const CustomCurveName = "custom"

// DefaultSpecs are the alternative curves shown next to the reference curve.
func DefaultSpecs() []Spec {
	return []Spec{
		{Name: "fixed-4.17", Kind: KindFixed, RatePercent: 4.17},
		{Name: "per-minute-525", Kind: KindPerMinute, PerMinuteIssuance: DefaultPerMinuteIssuance},
		{Name: "fixed-10", Kind: KindFixed, RatePercent: 10},
	}
}

// WithCustom returns specs plus a fixed-rate curve named CustomCurveName.
// The input slice is not modified.
func WithCustom(specs []Spec, ratePercent float64) ([]Spec, error) {
	custom := Spec{Name: CustomCurveName, Kind: KindFixed, RatePercent: ratePercent}
	if err := custom.Validate(); err != nil {
		return nil, err
	}
	out := make([]Spec, 0, len(specs)+1)
	for _, s := range specs {
		if s.Name != CustomCurveName {
			out = append(out, s)
		}
	}
	return append(out, custom), nil
}
