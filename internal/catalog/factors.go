package catalog

import (
	"encoding/json"
	"fmt"
)

// Factor identifies one global macro-economic scalar.
type Factor int

const (
	GlobalStability Factor = iota
	USEconomy
	ChinaEconomy
	EUEconomy
	JapanEconomy
	IndiaEconomy
	RussiaEconomy
	MiddleEastTension
	AsiaTensions
	TechInnovation
	GlobalSupplyChain
	OilSupply
	USFedPolicy
	SECRegulation
	USJobGrowth
	PublicSentiment
	ClimateChangeImpact
	PharmaDemand
	Inflation

	NumFactors
)

var factorNames = [NumFactors]string{
	"globalStability",
	"usEconomy",
	"chinaEconomy",
	"euEconomy",
	"japanEconomy",
	"indiaEconomy",
	"russiaEconomy",
	"middleEastTension",
	"asiaTensions",
	"techInnovation",
	"globalSupplyChain",
	"oilSupply",
	"usFedPolicy",
	"secRegulation",
	"usJobGrowth",
	"publicSentiment",
	"climateChangeImpact",
	"pharmaDemand",
	"inflation",
}

func (f Factor) Valid() bool {
	return f >= 0 && f < NumFactors
}

func (f Factor) String() string {
	if !f.Valid() {
		return fmt.Sprintf("factor(%d)", int(f))
	}
	return factorNames[f]
}

func ParseFactor(name string) (Factor, error) {
	for i, n := range factorNames {
		if n == name {
			return Factor(i), nil
		}
	}
	return 0, fmt.Errorf("unknown factor %q", name)
}

func (f Factor) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("invalid factor %d", int(f))
	}
	return []byte(factorNames[f]), nil
}

func (f *Factor) UnmarshalText(b []byte) error {
	parsed, err := ParseFactor(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Factors lists every factor in iteration order.
func Factors() []Factor {
	out := make([]Factor, NumFactors)
	for i := range out {
		out[i] = Factor(i)
	}
	return out
}

// Vector holds one value per factor. Used both for global factor levels and for
// asset DNA, where a zero entry means no exposure.
type Vector [NumFactors]float64

func (v Vector) Get(f Factor) float64 {
	return v[f]
}

func (v Vector) With(f Factor, value float64) Vector {
	v[f] = value
	return v
}

// AddClamped returns v+o clamped into [0,1] per entry.
func (v Vector) AddClamped(o Vector) Vector {
	for i := range v {
		v[i] = Clamp01(v[i] + o[i])
	}
	return v
}

// Dot is the exposure-weighted sum used by the price model.
func (v Vector) Dot(o Vector) float64 {
	var sum float64
	for i := range v {
		sum += v[i] * o[i]
	}
	return sum
}

func (v Vector) Sub(o Vector) Vector {
	for i := range v {
		v[i] -= o[i]
	}
	return v
}

// NonZero returns the factors with a non-zero entry, in factor order.
func (v Vector) NonZero() []Factor {
	var out []Factor
	for i, x := range v {
		if x != 0 {
			out = append(out, Factor(i))
		}
	}
	return out
}

// Sum of all entries.
func (v Vector) Sum() float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}

// MarshalJSON writes the non-zero entries as an object keyed by factor name.
func (v Vector) MarshalJSON() ([]byte, error) {
	m := make(map[Factor]float64, NumFactors)
	for i, x := range v {
		if x != 0 {
			m[Factor(i)] = x
		}
	}
	return json.Marshal(m)
}

func (v *Vector) UnmarshalJSON(b []byte) error {
	var m map[Factor]float64
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*v = Vector{}
	for f, x := range m {
		v[f] = x
	}
	return nil
}

// VectorOf builds a vector from a sparse map.
func VectorOf(m map[Factor]float64) Vector {
	var v Vector
	for f, x := range m {
		v[f] = x
	}
	return v
}

func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
