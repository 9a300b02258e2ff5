package model

import "errors"

// Constants are the process-wide simulation constants.
// Treat a Constants value as read-only once the process has started;
// every simulation takes it by value.
type Constants struct {
	// SupplyCap is the maximum amount of the token that can ever exist.
	SupplyCap float64
	// StepsPerYear is the number of block-reward subdivisions per year
	// used by the reference (halving-style) policy.
	StepsPerYear int
	HorizonYears int
	BaseYear     int

	// InitialSupply is the circulating supply used when the reference
	// series has no value for a requested year.
	InitialSupply float64

	// ReferenceExponent is the default k in the (cap - supply) / 2^k reward.
	ReferenceExponent int

	// CalibrationStep is the decay-rate grid granularity in percent.
	CalibrationStep float64
}

func DefaultConstants() Constants {
	return Constants{
		SupplyCap:         21_000_000_000,
		StepsPerYear:      525_600,
		HorizonYears:      100,
		BaseYear:          2018,
		InitialSupply:     2_520_000_000,
		ReferenceExponent: 22,
		CalibrationStep:   0.001,
	}
}

func (c Constants) Validate() error {
	if c.SupplyCap <= 0 {
		return errors.New("SupplyCap must be > 0")
	}
	if c.StepsPerYear <= 0 {
		return errors.New("StepsPerYear must be > 0")
	}
	if c.HorizonYears <= 0 {
		return errors.New("HorizonYears must be > 0")
	}
	if c.InitialSupply <= 0 || c.InitialSupply > c.SupplyCap {
		return errors.New("InitialSupply must be in (0, SupplyCap]")
	}
	if c.ReferenceExponent < 0 {
		return errors.New("ReferenceExponent must be >= 0")
	}
	if c.CalibrationStep <= 0 || c.CalibrationStep > 100 {
		return errors.New("CalibrationStep must be in (0, 100]")
	}
	return nil
}

// Horizon returns the simulation time axis described by the constants.
func (c Constants) Horizon() Horizon {
	return Horizon{BaseYear: c.BaseYear, Years: c.HorizonYears}
}
