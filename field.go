package iontrap

import (
	"fmt"
	"math"
)

// ScalarField holds one potential value per grid cell, row-major over the
// grid shape. It is never modified after Evaluate returns it.
type ScalarField struct {
	grid   *Grid
	values []float64
}

// Evaluate applies the named variant to every cell of g.
func Evaluate(v Variant, g *Grid, params Parameters) (*ScalarField, error) {
	info, err := v.check(params)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidAxisSpec)
	}
	if g.Dims() != info.dims {
		return nil, fmt.Errorf("%w: %s needs a %dD grid, got %dD", ErrDimensionMismatch, v, info.dims, g.Dims())
	}
	return evaluate(g, info.fn, params), nil
}

// EvaluateFunc applies an arbitrary potential to every cell of g.
func EvaluateFunc(g *Grid, fn Potential, params Parameters) (*ScalarField, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", ErrInvalidAxisSpec)
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: nil potential", ErrInvalidParameters)
	}
	return evaluate(g, fn, params), nil
}

func evaluate(g *Grid, fn Potential, params Parameters) *ScalarField {
	values := make([]float64, g.Len())
	for i := range values {
		values[i] = fn(g.Point(i), params)
	}
	return &ScalarField{grid: g, values: values}
}

func (f *ScalarField) Grid() *Grid {
	return f.grid
}

func (f *ScalarField) Dims() int {
	return f.grid.Dims()
}

func (f *ScalarField) Shape() Shape {
	return f.grid.Shape()
}

func (f *ScalarField) Len() int {
	return len(f.values)
}

func (f *ScalarField) At(idx ...int) (float64, error) {
	off := f.grid.shape.offset(idx)
	if off < 0 {
		return 0, fmt.Errorf("%w: index %v for shape %v", ErrIndexOutOfBounds, idx, f.grid.shape)
	}
	return f.values[off], nil
}

// Values returns a copy of the row-major cell values.
func (f *ScalarField) Values() []float64 {
	out := make([]float64, len(f.values))
	copy(out, f.values)
	return out
}

// Range returns the min and max over the finite cells. ok is false when no
// cell is finite.
func (f *ScalarField) Range() (min, max float64, ok bool) {
	return finiteRange(f.values)
}

// NonFinite counts cells holding NaN or ±Inf, e.g. qccd_single_trap sampled
// exactly at an electrode.
func (f *ScalarField) NonFinite() int {
	n := 0
	for _, v := range f.values {
		if !isFinite(v) {
			n++
		}
	}
	return n
}

func finiteRange(values []float64) (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if !isFinite(v) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return min, max, true
}
