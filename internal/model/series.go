package model

import (
	"encoding/json"
	"math"
)

// Value is an optional supply figure. The zero Value is "no value".
// It marshals to JSON null when not valid so placeholders never look like data.
type Value struct {
	V     float64
	Valid bool
}

// Some wraps a defined value. NaN and infinities are treated as undefined.
func Some(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{V: v, Valid: true}
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.V)
}

func (v *Value) UnmarshalJSON(raw []byte) error {
	if string(raw) == "null" {
		*v = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return err
	}
	*v = Some(f)
	return nil
}

// Point is one year of a supply series.
type Point struct {
	Year   int   `json:"year"`
	Supply Value `json:"supply"`
}

// Series is a chronological supply series, one point per year.
type Series []Point

// At returns the value at position i, or false when i is out of range or
// the point has no value.
func (s Series) At(i int) (float64, bool) {
	if i < 0 || i >= len(s) {
		return 0, false
	}
	p := s[i].Supply
	return p.V, p.Valid
}

// ByYear looks up the value recorded for a year.
func (s Series) ByYear(year int) (float64, bool) {
	for _, p := range s {
		if p.Year == year {
			return p.Supply.V, p.Supply.Valid
		}
	}
	return 0, false
}

// Defined returns a copy holding only points with a value.
func (s Series) Defined() Series {
	out := make(Series, 0, len(s))
	for _, p := range s {
		if p.Supply.Valid {
			out = append(out, p)
		}
	}
	return out
}

// Last returns the last defined value.
func (s Series) Last() (float64, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Supply.Valid {
			return s[i].Supply.V, true
		}
	}
	return 0, false
}

// Values returns the raw values with NaN in place of missing points.
// Intended for numeric consumers (charts, exports) that understand NaN.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		if p.Supply.Valid {
			out[i] = p.Supply.V
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// Horizon is a contiguous run of years starting at BaseYear.
type Horizon struct {
	BaseYear int
	Years    int
}

func (h Horizon) Labels() []int {
	if h.Years <= 0 {
		return nil
	}
	out := make([]int, h.Years)
	for i := range out {
		out[i] = h.BaseYear + i
	}
	return out
}

func (h Horizon) Index(year int) int { return year - h.BaseYear }

func (h Horizon) Contains(year int) bool {
	i := h.Index(year)
	return i >= 0 && i < h.Years
}

func (h Horizon) LastYear() int { return h.BaseYear + h.Years - 1 }
