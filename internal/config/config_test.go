package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"supply-curves/internal/curve"
	"supply-curves/internal/model"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	require.Equal(t, model.DefaultConstants(), c.Model())
	require.Equal(t, 2018, c.SelectedYear)
	require.Equal(t, 2_520_000_000.0, c.Reference.StartingSupply)
	require.Equal(t, curve.DefaultSpecs(), c.Curves)
}

func TestLoad_FullFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.yaml", `
constants:
  horizon_years: 50
  calibration_step: 0.01
selected_year: 2030
reference:
  start_rate_percent: 0.5
curves:
  - name: slow
    kind: fixed
    rate_percent: 3
  - name: minute
    kind: per_minute
    per_minute_issuance: 600
`)
	c, err := Load(p)
	require.NoError(t, err)

	m := c.Model()
	require.Equal(t, 50, m.HorizonYears)
	require.Equal(t, 0.01, m.CalibrationStep)
	require.Equal(t, 21_000_000_000.0, m.SupplyCap)
	require.Equal(t, 2030, c.SelectedYear)
	require.Equal(t, 0.5, c.Reference.StartRatePercent)
	require.Equal(t, 2018, c.Reference.StartYear)
	require.Len(t, c.Curves, 2)
	require.Equal(t, curve.KindPerMinute, c.Curves[1].Kind)
	require.Equal(t, 600.0, c.Curves[1].PerMinuteIssuance)
}

func TestLoad_ConstantsFileMerge(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "constants"), 0o755))
	writeFile(t, filepath.Join(dir, "constants"), "small.yaml", `
constants:
  supply_cap: 1000000
  initial_supply: 1000
  horizon_years: 20
`)
	p := writeFile(t, dir, "config.yaml", `
constants_file: constants/small.yaml
constants:
  horizon_years: 30
`)
	c, err := Load(p)
	require.NoError(t, err)
	m := c.Model()
	require.Equal(t, 1_000_000.0, m.SupplyCap)
	require.Equal(t, 1000.0, m.InitialSupply)
	require.Equal(t, 30, m.HorizonYears)
	require.Equal(t, 1000.0, c.Reference.StartingSupply)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"selected year outside horizon", "selected_year: 1990\n"},
		{"bad curve kind", "curves:\n  - name: a\n    kind: linear\n"},
		{"duplicate curve", "curves:\n  - {name: a, kind: fixed, rate_percent: 1}\n  - {name: a, kind: fixed, rate_percent: 2}\n"},
		{"negative start rate", "reference:\n  start_rate_percent: -1\n"},
		{"initial supply above cap", "constants:\n  supply_cap: 10\n  initial_supply: 20\n"},
		{"not yaml", "curves: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, t.TempDir(), "c.yaml", tt.body)
			_, err := Load(p)
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingConstantsFile(t *testing.T) {
	p := writeFile(t, t.TempDir(), "c.yaml", "constants_file: nope.yaml\n")
	_, err := LoadUnchecked(p)
	require.Error(t, err)
}

func TestMergeConstants(t *testing.T) {
	base := ConstantsConfig{SupplyCap: 100, StepsPerYear: 10, BaseYear: 2000}
	out := MergeConstants(base, ConstantsConfig{StepsPerYear: 20, CalibrationStep: 0.5})
	require.Equal(t, ConstantsConfig{SupplyCap: 100, StepsPerYear: 20, BaseYear: 2000, CalibrationStep: 0.5}, out)
}

func TestBaselineSeries(t *testing.T) {
	p := writeFile(t, t.TempDir(), "c.yaml", `
constants:
  steps_per_year: 10
  horizon_years: 5
reference:
  start_year: 2019
`)
	c, err := Load(p)
	require.NoError(t, err)

	s := c.BaselineSeries()
	// 2018 is before the start year and dropped.
	require.Len(t, s, 4)
	require.Equal(t, 2019, s[0].Year)
	require.Equal(t, 2_520_000_000.0, s[0].Supply.V)
	require.Greater(t, s[3].Supply.V, s[0].Supply.V)
}

func TestLoad_ShippedExample(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "examples", "config.yaml"))
	require.NoError(t, err)
	require.Equal(t, model.DefaultConstants(), c.Model())
	require.Equal(t, curve.DefaultSpecs(), c.Curves)
	require.Equal(t, 2018, c.SelectedYear)
}
