package iontrap

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

type AxisID int

const (
	X AxisID = iota
	Y
	Z
)

var axisNames = [...]string{"x", "y", "z"}

func (a AxisID) String() string {
	if a < X || a > Z {
		return fmt.Sprintf("axis(%d)", int(a))
	}
	return axisNames[a]
}

// ParseAxisID accepts "x", "y", "z" (or "0", "1", "2").
func ParseAxisID(s string) (AxisID, error) {
	switch s {
	case "x", "X", "0":
		return X, nil
	case "y", "Y", "1":
		return Y, nil
	case "z", "Z", "2":
		return Z, nil
	}
	return 0, fmt.Errorf("%w: unknown axis %q", ErrInvalidAxisSpec, s)
}

type AxisSpec struct {
	Lo    float64 `json:"lo" mapstructure:"lo"`
	Hi    float64 `json:"hi" mapstructure:"hi"`
	Count int     `json:"count" mapstructure:"count"`
}

func (s AxisSpec) validate() error {
	if s.Count < 1 {
		return fmt.Errorf("count %d < 1", s.Count)
	}
	if math.IsNaN(s.Lo) || math.IsNaN(s.Hi) || math.IsInf(s.Lo, 0) || math.IsInf(s.Hi, 0) {
		return fmt.Errorf("bounds [%v, %v] not finite", s.Lo, s.Hi)
	}
	if !(s.Lo < s.Hi) {
		return fmt.Errorf("lo %v >= hi %v", s.Lo, s.Hi)
	}
	return nil
}

// Axis is an immutable sequence of evenly spaced coordinates over [Lo, Hi].
type Axis struct {
	Lo     float64
	Hi     float64
	values []float64
}

func NewAxis(spec AxisSpec) (Axis, error) {
	if err := spec.validate(); err != nil {
		return Axis{}, fmt.Errorf("%w: %v", ErrInvalidAxisSpec, err)
	}
	values := make([]float64, spec.Count)
	if spec.Count == 1 {
		values[0] = spec.Lo
	} else {
		floats.Span(values, spec.Lo, spec.Hi)
	}
	return Axis{Lo: spec.Lo, Hi: spec.Hi, values: values}, nil
}

func (a Axis) Len() int {
	return len(a.values)
}

func (a Axis) At(i int) float64 {
	return a.values[i]
}

// Step is the spacing between neighbouring samples, 0 for a single-point axis.
func (a Axis) Step() float64 {
	if len(a.values) < 2 {
		return 0
	}
	return (a.Hi - a.Lo) / float64(len(a.values)-1)
}

func (a Axis) Values() []float64 {
	out := make([]float64, len(a.values))
	copy(out, a.values)
	return out
}

// Mid returns the centre index, the one the cross-section plots default to.
func (a Axis) Mid() int {
	return len(a.values) / 2
}

// Locate maps a coordinate to a fractional index along the axis, clamped to
// [0, Len()-1]. NaN maps to NaN.
func (a Axis) Locate(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	n := len(a.values)
	if n < 2 {
		return 0
	}
	f := (v - a.Lo) / a.Step()
	if f < 0 {
		return 0
	}
	if f > float64(n-1) {
		return float64(n - 1)
	}
	return f
}
