package effectchain

import (
	"math"

	"github.com/cwbudde/algo-fxcore/dsp/param"
)

// Params holds the parsed parameters for a single chain node.
type Params struct {
	ID       string
	Type     string
	Bypassed bool
	Num      map[string]float64
	Str      map[string]string
}

// GetNum safely extracts a numeric parameter, returning def if missing or invalid.
func (p Params) GetNum(key string, def float64) float64 {
	if p.Num == nil {
		return def
	}

	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// GetStr extracts a string parameter, returning def if missing.
func (p Params) GetStr(key, def string) string {
	v, ok := p.Str[key]
	if !ok {
		return def
	}

	return v
}

// Value reads the parameter keyed by d.ID and clamps it into d's range.
// A missing value yields d.Default.
func (p Params) Value(d param.Descriptor) float64 {
	return d.Clamp(p.GetNum(d.ID, d.Default))
}
