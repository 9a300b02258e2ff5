package main

import (
	"flag"
	"fmt"
	"time"

	"supply-curves/internal/analysis"
	"supply-curves/internal/config"
	"supply-curves/internal/emission"
	"supply-curves/internal/model"
	"supply-curves/internal/report"
)

// Demo:
// - Simulate the reference curve from the constants
// - Run a flat 10% decay-free policy from 2020
// - Calibrate the decay rate for a 50% initial rate from 2020
// to show how the pieces fit together.
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	n := flag.Int("n", 12, "Number of years to print per curve")
	steps := flag.Int("steps", 0, "Override steps per year (0 keeps the configured value)")
	outCSV := flag.String("out", "", "Optional path to write a CSV of the three curves (e.g. results/demo.csv)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		cfg = loaded
	}
	consts := cfg.Model()
	if *steps > 0 {
		consts.StepsPerYear = *steps
	}

	start := time.Now()
	ref := emission.DefaultReference(consts)
	fmt.Printf("Reference (k=%d, %d steps/yr) in %s\n", consts.ReferenceExponent, consts.StepsPerYear, time.Since(start).Round(time.Millisecond))
	printSeries(ref, *n)

	flat := emission.SimulateDecay(consts, model.PolicyParams{
		StartingSupply:     1_000_000_000,
		StartYear:          2020,
		InitialRatePercent: 10,
	}, consts.HorizonYears)
	fmt.Printf("\nFlat 10%% from 2020, final (unclamped) %.0f\n", flat.FinalSupply)
	printSeries(flat.Series, *n)

	start = time.Now()
	cal := emission.NewCalibrator(consts, nil, nil)
	res := cal.Calibrate(1_000_000_000, 2020, 50)
	fmt.Printf("\nCalibrated 50%% from 2020: decay %.3f%%/yr, final %.0f (cap %.0f) in %s\n",
		res.DecayRatePercent, res.FinalSupply, consts.SupplyCap, time.Since(start).Round(time.Millisecond))
	printSeries(res.Series, *n)

	if *outCSV != "" {
		b := report.Bundle{
			Title: "demo",
			Tables: []report.Table{
				{Name: "reference", Label: "reference", Policy: model.PolicyReference, Rows: analysis.BuildTable(ref)},
				{Name: "flat-10", Label: "flat-10", Policy: model.PolicyDecay, Rows: analysis.BuildTable(flat.Series)},
				{Name: "calibrated-50", Label: "calibrated-50", Policy: model.PolicyDecay, Rows: analysis.BuildTable(res.Series)},
			},
		}
		if _, err := report.WriteFile(*outCSV, b); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}
}

func printSeries(s model.Series, n int) {
	for i := 0; i < min(n, len(s)); i++ {
		p := s[i]
		if !p.Supply.Valid {
			fmt.Printf("  %d  %20s\n", p.Year, "-")
			continue
		}
		fmt.Printf("  %d  %20.0f\n", p.Year, p.Supply.V)
	}
}
