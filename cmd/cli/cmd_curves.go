package main

import (
	"fmt"

	"supply-curves/internal/analysis"
	"supply-curves/internal/curve"
	"supply-curves/internal/model"
	"supply-curves/internal/report"

	"github.com/spf13/cobra"
)

func newCurvesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curves",
		Short: "Calibrate every configured curve and rank them by distance to the cap",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			year, err := yearFlag(cmd, e)
			if err != nil {
				return err
			}

			specs, err := specsFlag(cmd, e)
			if err != nil {
				return err
			}
			results, err := e.orch.BuildAll(specs, year)
			if err != nil {
				return err
			}
			supplyCap := e.orch.Constants().SupplyCap
			ranking := analysis.RankByDistance(results, supplyCap)
			e.logger.Info("curves built", "selected_year", year, "count", len(results))

			if jsonOut {
				if err := writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"selected_year":   year,
					"starting_supply": e.orch.StartingSupply(year),
					"curves":          results,
					"ranking":         ranking,
				}); err != nil {
					return err
				}
			} else {
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "selected year %d, starting supply %.0f\n", year, e.orch.StartingSupply(year))
				for _, r := range results {
					fmt.Fprintf(w, "  %-40s initial %.4f%%/yr  final %.0f\n", r.Label(), r.InitialRatePercent, r.Calibration.FinalSupply)
				}
				fmt.Fprintln(w, "ranking (closest to cap first):")
				for i, s := range ranking {
					fmt.Fprintf(w, "  %d. %-24s distance %s\n", i+1, s.Name, cell(s.Distance, "%.0f"))
				}
			}

			title := fmt.Sprintf("Supply curves from %d", year)
			return exportIfRequested(cmd, report.NewBundle(title, supplyCap, e.orch.Reference(), results))
		},
	}
	cmd.Flags().Int("year", 0, "Selected start year (default: config selected_year)")
	cmd.Flags().Float64("rate", 0, "Add a fixed-rate curve named \"custom\" with this initial rate")
	cmd.Flags().String("out", "", "Export path (.csv, .xlsx or .pdf)")
	return cmd
}

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table NAME",
		Short: "Print the per-year table of one curve (or \"reference\")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			year, err := yearFlag(cmd, e)
			if err != nil {
				return err
			}
			supplyCap := e.orch.Constants().SupplyCap

			name := args[0]
			label := name
			var rows []analysis.Row
			var results []curve.Result
			if name == string(model.PolicyReference) {
				rows = analysis.BuildTable(e.orch.Reference())
			} else {
				specs, err := specsFlag(cmd, e)
				if err != nil {
					return err
				}
				spec, err := curve.Find(specs, name)
				if err != nil {
					return err
				}
				r, err := e.orch.Build(spec, year)
				if err != nil {
					return err
				}
				label = r.Label()
				rows = analysis.BuildTable(r.Calibration.Series)
				results = append(results, r)
			}

			if jsonOut {
				if err := writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"name":          name,
					"label":         label,
					"selected_year": year,
					"rows":          rows,
				}); err != nil {
					return err
				}
			} else {
				printRows(cmd, label, rows)
			}
			return exportIfRequested(cmd, report.NewBundle(label, supplyCap, e.orch.Reference(), results))
		},
	}
	cmd.Flags().Int("year", 0, "Selected start year (default: config selected_year)")
	cmd.Flags().Float64("rate", 0, "Add a fixed-rate curve named \"custom\" with this initial rate")
	cmd.Flags().String("out", "", "Export path (.csv, .xlsx or .pdf)")
	return cmd
}

func yearFlag(cmd *cobra.Command, e *env) (int, error) {
	year := e.cfg.SelectedYear
	if cmd.Flags().Changed("year") {
		year, _ = cmd.Flags().GetInt("year")
	}
	if err := model.CheckYear(e.orch.Constants().Horizon(), year); err != nil {
		return 0, err
	}
	return year, nil
}

func specsFlag(cmd *cobra.Command, e *env) ([]curve.Spec, error) {
	if !cmd.Flags().Changed("rate") {
		return e.cfg.Curves, nil
	}
	rate, _ := cmd.Flags().GetFloat64("rate")
	return curve.WithCustom(e.cfg.Curves, rate)
}
