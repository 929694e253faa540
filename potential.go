package iontrap

import (
	"fmt"
	"math"
	"sort"

	vec3d "github.com/flywave/go3d/float64/vec3"
)

type Variant string

const (
	Quadrupole3D   Variant = "quadrupole_3d"
	Quadrupole2D   Variant = "quadrupole_2d"
	LinearTrap     Variant = "linear_trap"
	QCCDSingleTrap Variant = "qccd_single_trap"
)

type Parameters []float64

// LaplaceResidual is the sum of the coefficients. A physically valid
// linear_trap has a residual of zero; nothing here enforces it.
func (p Parameters) LaplaceResidual() float64 {
	var sum float64
	for _, v := range p {
		sum += v
	}
	return sum
}

// Potential evaluates a scalar potential at one point.
type Potential func(p vec3d.T, params Parameters) float64

const (
	qccdRFScale = 5.0
	qccdDCScale = -0.1
)

func quadrupole3D(p vec3d.T, _ Parameters) float64 {
	return 0.5 * (pow2(p[0]) + pow2(p[1]) - 2*pow2(p[2]))
}

func quadrupole2D(p vec3d.T, _ Parameters) float64 {
	return pow2(p[0]) - pow2(p[1])
}

func linearTrap(p vec3d.T, params Parameters) float64 {
	a, b, c := params[0], params[1], params[2]
	return a*pow2(p[0]) + b*pow2(p[1]) + c*pow2(p[2])
}

// qccdSingleTrap is singular at (±d, y, 0). The division is left to IEEE
// arithmetic, so those cells hold -Inf.
func qccdSingleTrap(p vec3d.T, params Parameters) float64 {
	x, z := p[0], p[2]
	d := params[0]
	rf := qccdRFScale * math.Abs(x*z)
	dc := qccdDCScale * (1/math.Sqrt(pow2(x-d)+pow2(z)) + 1/math.Sqrt(pow2(x+d)+pow2(z)))
	return rf + dc
}

type variantInfo struct {
	dims   int
	arity  int
	params []string
	fn     Potential
}

var variants = map[Variant]variantInfo{
	Quadrupole3D:   {dims: 3, arity: 0, fn: quadrupole3D},
	Quadrupole2D:   {dims: 2, arity: 0, fn: quadrupole2D},
	LinearTrap:     {dims: 3, arity: 3, params: []string{"a", "b", "c"}, fn: linearTrap},
	QCCDSingleTrap: {dims: 3, arity: 1, params: []string{"dc_position"}, fn: qccdSingleTrap},
}

func lookupVariant(v Variant) (variantInfo, error) {
	info, ok := variants[v]
	if !ok {
		return variantInfo{}, fmt.Errorf("%w: %q", ErrUnknownVariant, string(v))
	}
	return info, nil
}

func (v Variant) Valid() bool {
	_, ok := variants[v]
	return ok
}

// Dims is the grid dimensionality the variant is defined over, 0 if unknown.
func (v Variant) Dims() int {
	return variants[v].dims
}

func (v Variant) Arity() int {
	return variants[v].arity
}

// ParamNames lists the parameter names in the order Parameters holds them.
func (v Variant) ParamNames() []string {
	return append([]string(nil), variants[v].params...)
}

func (v Variant) check(params Parameters) (variantInfo, error) {
	info, err := lookupVariant(v)
	if err != nil {
		return info, err
	}
	if len(params) != info.arity {
		return info, fmt.Errorf("%w: %s takes %d parameters, got %d", ErrInvalidParameters, v, info.arity, len(params))
	}
	return info, nil
}

func Variants() []Variant {
	ret := make([]Variant, 0, len(variants))
	for v := range variants {
		ret = append(ret, v)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

// Preset is a named parameterisation of a variant.
type Preset struct {
	Name    string
	Variant Variant
	Params  Parameters
}

var presets = []Preset{
	{Name: "paul_trap", Variant: LinearTrap, Params: Parameters{1, 1, -2}},
	{Name: "linear_ion_trap", Variant: LinearTrap, Params: Parameters{1, 0, -1}},
	{Name: "qccd", Variant: QCCDSingleTrap, Params: Parameters{1.1}},
}

func Presets() []Preset {
	ret := make([]Preset, len(presets))
	for i, p := range presets {
		ret[i] = Preset{Name: p.Name, Variant: p.Variant, Params: append(Parameters(nil), p.Params...)}
	}
	return ret
}

func LookupPreset(name string) (Preset, error) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: no preset %q", ErrUnknownVariant, name)
}

// EvaluatePoint evaluates a variant at a single coordinate triple.
func EvaluatePoint(v Variant, p vec3d.T, params Parameters) (float64, error) {
	info, err := v.check(params)
	if err != nil {
		return 0, err
	}
	return info.fn(p, params), nil
}
