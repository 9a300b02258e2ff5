package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"supply-curves/internal/config"
	"supply-curves/internal/curve"
	"supply-curves/internal/emission"
	"supply-curves/internal/logging"
	"supply-curves/internal/report"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "supply",
		Short: "Token supply curves - reference, decay and calibrated alternatives",
		Long: `supply simulates a capped token supply under a halving-style reference
policy and under geometric-decay policies, and calibrates the decay rate
that lands an alternative curve on the supply cap.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to YAML config (default: $SUPPLY_CONFIG or built-in defaults)")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newReferenceCmd(),
		newSimulateCmd(),
		newCalibrateCmd(),
		newCurvesCmd(),
		newTableCmd(),
	)
	return rootCmd
}

// env bundles what every subcommand needs.
type env struct {
	cfg    *config.Config
	orch   *curve.Orchestrator
	cal    *emission.Calibrator
	logger *slog.Logger
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	logger := logging.FromEnv()

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("SUPPLY_CONFIG")
	}

	cfg := config.Default()
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		logger.Debug("config loaded", "path", path)
	}

	cal := emission.NewCalibrator(cfg.Model(), nil, nil)
	return &env{
		cfg:    cfg,
		orch:   curve.NewOrchestrator(cfg.BaselineSeries(), cal),
		cal:    cal,
		logger: logger,
	}, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exportIfRequested writes the bundle when --out is set.
func exportIfRequested(cmd *cobra.Command, b report.Bundle) error {
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return nil
	}
	format, err := report.WriteFile(out, b)
	if err != nil {
		return fmt.Errorf("failed to export %s: %w", out, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%s)\n", out, format)
	return nil
}
