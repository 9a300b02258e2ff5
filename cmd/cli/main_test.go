package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const fastConfig = `
constants:
  steps_per_year: 100
  horizon_years: 20
  reference_exponent: 8
  calibration_step: 0.5
selected_year: 2020
curves:
  - name: fixed-10
    kind: fixed
    rate_percent: 10
  - name: fixed-40
    kind: fixed
    rate_percent: 40
`

func writeConfig(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(fastConfig), 0o644))
	return p
}

// run executes the root command and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SUPPLY_CONFIG", "")
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReferenceCmd_JSON(t *testing.T) {
	out, err := run(t, "reference", "--config", writeConfig(t), "--json")
	require.NoError(t, err)

	var resp struct {
		Policy string `json:"policy"`
		Series []struct {
			Year   int      `json:"year"`
			Supply *float64 `json:"supply"`
		} `json:"series"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "reference", resp.Policy)
	require.Len(t, resp.Series, 20)
	require.Equal(t, 2_520_000_000.0, *resp.Series[0].Supply)
}

func TestSimulateCmd(t *testing.T) {
	out, err := run(t, "simulate", "--config", writeConfig(t),
		"--supply", "1000000000", "--start-year", "2020", "--rate", "10")
	require.NoError(t, err)
	require.Contains(t, out, "final supply (unclamped):")
	require.Contains(t, out, "2018   ")
	require.Contains(t, out, "1100000000")
}

func TestSimulateCmd_Invalid(t *testing.T) {
	cfg := writeConfig(t)

	_, err := run(t, "simulate", "--config", cfg, "--start-year", "2020")
	require.ErrorContains(t, err, "--rate is required")

	_, err = run(t, "simulate", "--config", cfg, "--rate", "10", "--decay", "150")
	require.ErrorContains(t, err, "invalid parameters")

	_, err = run(t, "simulate", "--config", cfg, "--rate", "10", "--start-year", "2040")
	require.Error(t, err)
}

func TestCalibrateCmd_JSON(t *testing.T) {
	out, err := run(t, "calibrate", "--config", writeConfig(t),
		"--supply", "1000000000", "--start-year", "2020", "--rate", "50", "--json")
	require.NoError(t, err)

	var resp struct {
		DecayRatePercent float64 `json:"decay_rate_percent"`
		FinalSupply      float64 `json:"final_supply"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Greater(t, resp.DecayRatePercent, 0.0)
	require.Less(t, resp.DecayRatePercent, 100.0)
	require.InEpsilon(t, 21_000_000_000.0, resp.FinalSupply, 0.1)
}

func TestCurvesCmd(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "curves.csv")
	out, err := run(t, "curves", "--config", writeConfig(t), "--out", outPath)
	require.NoError(t, err)
	require.Contains(t, out, "selected year 2020")
	require.Contains(t, out, "fixed-10 (decay ")
	require.Contains(t, out, "ranking (closest to cap first):")

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(raw), "policy,curve,year,"))
	require.Contains(t, string(raw), "decay,fixed-40,2037,")
}

func TestCurvesCmd_YearOutOfRange(t *testing.T) {
	_, err := run(t, "curves", "--config", writeConfig(t), "--year", "2100")
	require.ErrorContains(t, err, "year outside simulation horizon")
}

func TestTableCmd(t *testing.T) {
	cfg := writeConfig(t)

	out, err := run(t, "table", "fixed-40", "--config", cfg, "--year", "2019")
	require.NoError(t, err)
	require.Contains(t, out, "fixed-40 (decay ")
	require.Contains(t, out, "2037")

	out, err = run(t, "table", "reference", "--config", cfg, "--json")
	require.NoError(t, err)
	require.Contains(t, out, `"label": "reference"`)

	_, err = run(t, "table", "nope", "--config", cfg)
	require.ErrorContains(t, err, "unknown curve")

	_, err = run(t, "table", "--config", cfg)
	require.Error(t, err)
}

func TestLoadEnv_BadConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("selected_year: 1900\n"), 0o644))
	_, err := run(t, "reference", "--config", p)
	require.ErrorContains(t, err, "failed to load config")
}

func TestCurvesCmd_CustomRate(t *testing.T) {
	cfg := writeConfig(t)

	out, err := run(t, "curves", "--config", cfg, "--rate", "12")
	require.NoError(t, err)
	require.Contains(t, out, "custom (decay ")

	out, err = run(t, "table", "custom", "--config", cfg, "--rate", "12")
	require.NoError(t, err)
	require.Contains(t, out, "custom (decay ")

	_, err = run(t, "curves", "--config", cfg, "--rate", "-3")
	require.Error(t, err)
}
