package model_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"supply-curves/internal/model"
)

func TestSome_RejectsNonFinite(t *testing.T) {
	require.False(t, model.Some(math.NaN()).Valid)
	require.False(t, model.Some(math.Inf(1)).Valid)
	require.True(t, model.Some(0).Valid)
}

func TestValue_JSON(t *testing.T) {
	s := model.Series{
		{Year: 2018},
		{Year: 2019, Supply: model.Some(12.5)},
	}
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	require.JSONEq(t, `[{"year":2018,"supply":null},{"year":2019,"supply":12.5}]`, string(raw))

	var back model.Series
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Equal(t, s, back)
}

func TestSeries_Lookups(t *testing.T) {
	s := model.Series{
		{Year: 2018},
		{Year: 2019, Supply: model.Some(10)},
		{Year: 2020, Supply: model.Some(20)},
		{Year: 2021},
	}

	_, ok := s.At(0)
	require.False(t, ok)
	v, ok := s.At(2)
	require.True(t, ok)
	require.Equal(t, 20.0, v)
	_, ok = s.At(-1)
	require.False(t, ok)
	_, ok = s.At(4)
	require.False(t, ok)

	v, ok = s.ByYear(2019)
	require.True(t, ok)
	require.Equal(t, 10.0, v)

	last, ok := s.Last()
	require.True(t, ok)
	require.Equal(t, 20.0, last)

	require.Len(t, s.Defined(), 2)
	vals := s.Values()
	require.True(t, math.IsNaN(vals[0]))
	require.Equal(t, 10.0, vals[1])
}

func TestHorizon(t *testing.T) {
	h := model.DefaultConstants().Horizon()
	labels := h.Labels()
	require.Len(t, labels, 100)
	require.Equal(t, 2018, labels[0])
	require.Equal(t, 2117, labels[99])
	require.Equal(t, 2117, h.LastYear())
	require.True(t, h.Contains(2117))
	require.False(t, h.Contains(2118))
	require.False(t, h.Contains(2017))
}

func TestPolicyParams_Validate(t *testing.T) {
	h := model.DefaultConstants().Horizon()
	valid := model.PolicyParams{StartingSupply: 1e9, StartYear: 2020, InitialRatePercent: 10, DecayRatePercent: 5}

	tests := []struct {
		name    string
		modify  func(*model.PolicyParams)
		wantErr bool
	}{
		{"valid", func(p *model.PolicyParams) {}, false},
		{"zero supply", func(p *model.PolicyParams) { p.StartingSupply = 0 }, true},
		{"year before horizon", func(p *model.PolicyParams) { p.StartYear = 2000 }, true},
		{"year after horizon", func(p *model.PolicyParams) { p.StartYear = 2200 }, true},
		{"negative rate", func(p *model.PolicyParams) { p.InitialRatePercent = -1 }, true},
		{"decay above 100", func(p *model.PolicyParams) { p.DecayRatePercent = 100.5 }, true},
		{"decay at 100", func(p *model.PolicyParams) { p.DecayRatePercent = 100 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.modify(&p)
			err := p.Validate(h)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCheckYear(t *testing.T) {
	h := model.Horizon{BaseYear: 2018, Years: 10}
	require.NoError(t, model.CheckYear(h, 2018))
	require.NoError(t, model.CheckYear(h, 2027))

	err := model.CheckYear(h, 2028)
	require.ErrorIs(t, err, model.ErrYearOutOfRange)

	p := model.PolicyParams{StartingSupply: 1, StartYear: 1990}
	require.ErrorIs(t, p.Validate(h), model.ErrYearOutOfRange)
}

func TestDefaultConstants_Valid(t *testing.T) {
	c := model.DefaultConstants()
	require.NoError(t, c.Validate())

	c.CalibrationStep = 0
	require.Error(t, c.Validate())
}

func TestCalibrationResult_JSON(t *testing.T) {
	r := model.CalibrationResult{
		DecayRatePercent: 2.5,
		FinalSupply:      math.Inf(1),
		Series:           model.Series{{Year: 2018, Supply: model.Some(1)}},
	}
	raw, err := json.Marshal(r)
	require.NoError(t, err)
	require.JSONEq(t, `{"decay_rate_percent":2.5,"final_supply":null,"series":[{"year":2018,"supply":1}]}`, string(raw))

	r.FinalSupply = 42
	raw, err = json.Marshal(r)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"final_supply":42`)
}

func TestCalibrationResult_Clone(t *testing.T) {
	r := model.CalibrationResult{Series: model.Series{{Year: 2018, Supply: model.Some(1)}}}
	c := r.Clone()
	c.Series[0].Supply = model.Value{}
	require.True(t, r.Series[0].Supply.Valid)
}
