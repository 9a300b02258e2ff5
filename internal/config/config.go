package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"supply-curves/internal/curve"
	"supply-curves/internal/emission"
	"supply-curves/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load constants from a separate YAML (e.g. examples/constants/*.yaml).
	// If both ConstantsFile and Constants are provided, Constants overrides ConstantsFile.
	ConstantsFile string          `yaml:"constants_file"`
	Constants     ConstantsConfig `yaml:"constants"`
	Reference     ReferenceConfig `yaml:"reference"`
	// SelectedYear is the year alternative curves start from. Defaults to the base year.
	SelectedYear int          `yaml:"selected_year"`
	Curves       []curve.Spec `yaml:"curves"`
}

// ConstantsConfig overlays model.DefaultConstants. Zero fields keep the default.
type ConstantsConfig struct {
	SupplyCap         float64 `yaml:"supply_cap"`
	StepsPerYear      int     `yaml:"steps_per_year"`
	HorizonYears      int     `yaml:"horizon_years"`
	BaseYear          int     `yaml:"base_year"`
	InitialSupply     float64 `yaml:"initial_supply"`
	ReferenceExponent int     `yaml:"reference_exponent"`
	CalibrationStep   float64 `yaml:"calibration_step"`
}

// ReferenceConfig shapes the baseline run. Zero fields fall back to constants.
type ReferenceConfig struct {
	StartingSupply   float64 `yaml:"starting_supply"`
	StartYear        int     `yaml:"start_year"`
	StartRatePercent float64 `yaml:"start_rate_percent"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it or apply defaults.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.ConstantsFile != "" {
		constantsPath := c.ConstantsFile
		if !filepath.IsAbs(constantsPath) {
			// Prefer paths relative to the config file, fall back to cwd.
			cand := filepath.Join(filepath.Dir(path), constantsPath)
			if _, err := os.Stat(cand); err == nil {
				constantsPath = cand
			}
		}
		loaded, err := loadConstantsFile(constantsPath)
		if err != nil {
			return nil, err
		}
		c.Constants = MergeConstants(loaded, c.Constants)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	consts := c.Constants.ToModel()
	if c.SelectedYear == 0 {
		c.SelectedYear = consts.BaseYear
	}
	if c.Reference.StartingSupply == 0 {
		c.Reference.StartingSupply = consts.InitialSupply
	}
	if c.Reference.StartYear == 0 {
		c.Reference.StartYear = consts.BaseYear
	}
	if len(c.Curves) == 0 {
		c.Curves = curve.DefaultSpecs()
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	consts := c.Constants.ToModel()
	if err := consts.Validate(); err != nil {
		return fmt.Errorf("constants invalid: %w", err)
	}
	h := consts.Horizon()
	if !h.Contains(c.SelectedYear) {
		return fmt.Errorf("selected_year %d is outside %d..%d", c.SelectedYear, h.BaseYear, h.LastYear())
	}
	if !h.Contains(c.Reference.StartYear) {
		return fmt.Errorf("reference.start_year %d is outside %d..%d", c.Reference.StartYear, h.BaseYear, h.LastYear())
	}
	if c.Reference.StartingSupply <= 0 {
		return errors.New("reference.starting_supply must be > 0")
	}
	if c.Reference.StartRatePercent < 0 {
		return errors.New("reference.start_rate_percent must be >= 0")
	}
	seen := make(map[string]bool, len(c.Curves))
	for _, s := range c.Curves {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("curves: %w", err)
		}
		if seen[s.Name] {
			return fmt.Errorf("curves: duplicate name %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// ToModel overlays the non-zero fields on model.DefaultConstants.
// A zero reference_exponent therefore means "default" rather than k=0.
func (cc ConstantsConfig) ToModel() model.Constants {
	out := model.DefaultConstants()
	if cc.SupplyCap != 0 {
		out.SupplyCap = cc.SupplyCap
	}
	if cc.StepsPerYear != 0 {
		out.StepsPerYear = cc.StepsPerYear
	}
	if cc.HorizonYears != 0 {
		out.HorizonYears = cc.HorizonYears
	}
	if cc.BaseYear != 0 {
		out.BaseYear = cc.BaseYear
	}
	if cc.InitialSupply != 0 {
		out.InitialSupply = cc.InitialSupply
	}
	if cc.ReferenceExponent != 0 {
		out.ReferenceExponent = cc.ReferenceExponent
	}
	if cc.CalibrationStep != 0 {
		out.CalibrationStep = cc.CalibrationStep
	}
	return out
}

// Model returns the effective constants.
func (c *Config) Model() model.Constants {
	return c.Constants.ToModel()
}

// BaselineSeries simulates the reference curve described by the reference block.
func (c *Config) BaselineSeries() model.Series {
	consts := c.Model()
	return emission.SimulateReference(
		consts,
		consts.ReferenceExponent,
		c.Reference.StartingSupply,
		consts.Horizon().Labels(),
		c.Reference.StartYear,
		c.Reference.StartRatePercent,
	)
}

type constantsFileWrapper struct {
	Constants ConstantsConfig `yaml:"constants"`
}

func loadConstantsFile(path string) (ConstantsConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ConstantsConfig{}, err
	}
	var w constantsFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return ConstantsConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Constants, nil
}

// MergeConstants overlays non-zero fields from override onto base.
func MergeConstants(base, override ConstantsConfig) ConstantsConfig {
	out := base
	if override.SupplyCap != 0 {
		out.SupplyCap = override.SupplyCap
	}
	if override.StepsPerYear != 0 {
		out.StepsPerYear = override.StepsPerYear
	}
	if override.HorizonYears != 0 {
		out.HorizonYears = override.HorizonYears
	}
	if override.BaseYear != 0 {
		out.BaseYear = override.BaseYear
	}
	if override.InitialSupply != 0 {
		out.InitialSupply = override.InitialSupply
	}
	if override.ReferenceExponent != 0 {
		out.ReferenceExponent = override.ReferenceExponent
	}
	if override.CalibrationStep != 0 {
		out.CalibrationStep = override.CalibrationStep
	}
	return out
}
