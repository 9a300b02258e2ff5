package main

import (
	"fmt"

	"supply-curves/internal/analysis"
	"supply-curves/internal/emission"
	"supply-curves/internal/model"
	"supply-curves/internal/report"

	"github.com/spf13/cobra"
)

func newReferenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Print the halving-style reference curve",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}

			ref := e.orch.Reference()
			supplyCap := e.orch.Constants().SupplyCap
			if jsonOut {
				if err := writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"policy":  model.PolicyReference,
					"series":  ref,
					"summary": analysis.Summarize(string(model.PolicyReference), ref, supplyCap),
				}); err != nil {
					return err
				}
			} else {
				printRows(cmd, string(model.PolicyReference), analysis.BuildTable(ref))
			}
			return exportIfRequested(cmd, report.NewBundle("Reference supply", supplyCap, ref, nil))
		},
	}
	cmd.Flags().String("out", "", "Export path (.csv, .xlsx or .pdf)")
	return cmd
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one geometric-decay simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}

			consts := e.cfg.Model()
			p, err := paramsFromFlags(cmd, consts)
			if err != nil {
				return err
			}
			p.DecayRatePercent, _ = cmd.Flags().GetFloat64("decay")
			if err := p.Validate(consts.Horizon()); err != nil {
				return fmt.Errorf("invalid parameters: %w", err)
			}

			res := emission.SimulateDecay(consts, p, consts.HorizonYears)
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"params":       p,
					"final_supply": model.Some(res.FinalSupply),
					"series":       res.Series,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "final supply (unclamped): %.0f\n", res.FinalSupply)
			printRows(cmd, string(model.PolicyDecay), analysis.BuildTable(res.Series))
			return nil
		},
	}
	addParamFlags(cmd)
	cmd.Flags().Float64("decay", 0, "Decay rate in percent per year (0..100)")
	return cmd
}

func newCalibrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Find the decay rate that lands the final supply on the cap",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}

			consts := e.cfg.Model()
			p, err := paramsFromFlags(cmd, consts)
			if err != nil {
				return err
			}
			if err := p.Validate(consts.Horizon()); err != nil {
				return fmt.Errorf("invalid parameters: %w", err)
			}

			res := e.cal.Calibrate(p.StartingSupply, p.StartYear, p.InitialRatePercent)
			e.logger.Debug("calibrated", "decay_rate_percent", res.DecayRatePercent)
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "decay rate: %.3f%%/yr\n", res.DecayRatePercent)
			fmt.Fprintf(cmd.OutOrStdout(), "final supply (unclamped): %.0f of cap %.0f\n", res.FinalSupply, consts.SupplyCap)
			return nil
		},
	}
	addParamFlags(cmd)
	return cmd
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("supply", 0, "Starting supply (default: initial supply)")
	cmd.Flags().Int("start-year", 0, "Start year (default: base year)")
	cmd.Flags().Float64("rate", 0, "Initial annual growth rate in percent")
}

func paramsFromFlags(cmd *cobra.Command, consts model.Constants) (model.PolicyParams, error) {
	supply, _ := cmd.Flags().GetFloat64("supply")
	year, _ := cmd.Flags().GetInt("start-year")
	rate, _ := cmd.Flags().GetFloat64("rate")
	if !cmd.Flags().Changed("supply") {
		supply = consts.InitialSupply
	}
	if !cmd.Flags().Changed("start-year") {
		year = consts.BaseYear
	}
	if !cmd.Flags().Changed("rate") {
		return model.PolicyParams{}, fmt.Errorf("--rate is required")
	}
	return model.PolicyParams{
		StartingSupply:     supply,
		StartYear:          year,
		InitialRatePercent: rate,
	}, nil
}

func printRows(cmd *cobra.Command, name string, rows []analysis.Row) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s\n", name)
	fmt.Fprintf(w, "%-6s %20s %18s %10s\n", "year", "supply", "emitted", "rate%")
	for _, r := range rows {
		fmt.Fprintf(w, "%-6d %20s %18s %10s\n", r.Year, cell(r.Supply, "%.0f"), cell(r.Emitted, "%.0f"), cell(r.EmissionRatePercent, "%.4f"))
	}
}

func cell(v model.Value, format string) string {
	if !v.Valid {
		return "-"
	}
	return fmt.Sprintf(format, v.V)
}
