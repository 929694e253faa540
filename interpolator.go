package iontrap

import (
	"fmt"
	"math"
)

const (
	BILINEAR = "bilinear"
	NEAREST  = "nearest"
)

// Interpolator blends the four cell corners around a point. v00 is at the
// lower row and column, v10 one row up, v01 one column up; fu and fv are the
// fractional offsets along rows and columns.
type Interpolator interface {
	Interpolate(v00, v10, v01, v11, fu, fv float64) float64
}

type BilinearInterpolator struct{}

func (BilinearInterpolator) Interpolate(v00, v10, v01, v11, fu, fv float64) float64 {
	return lerp(lerp(v00, v10, fu), lerp(v01, v11, fu), fv)
}

type NearestInterpolator struct{}

func (NearestInterpolator) Interpolate(v00, v10, v01, v11, fu, fv float64) float64 {
	switch {
	case fu < 0.5 && fv < 0.5:
		return v00
	case fv < 0.5:
		return v10
	case fu < 0.5:
		return v01
	default:
		return v11
	}
}

func NewInterpolator(name string) (Interpolator, error) {
	switch name {
	case "", BILINEAR:
		return BilinearInterpolator{}, nil
	case NEAREST:
		return NearestInterpolator{}, nil
	}
	return nil, fmt.Errorf("%w: unknown interpolator %q", ErrInvalidParameters, name)
}

// Interpolate samples the section at coordinate (u, v) along the row and
// column axes. Coordinates outside the section are clamped to its edge; a
// NaN coordinate yields NaN.
func (c *CrossSection) Interpolate(u, v float64, interp Interpolator) float64 {
	if math.IsNaN(u) || math.IsNaN(v) {
		return math.NaN()
	}
	if interp == nil {
		interp = BilinearInterpolator{}
	}
	fu := c.rows.Locate(u)
	fv := c.cols.Locate(v)

	i0, j0 := int(math.Floor(fu)), int(math.Floor(fv))
	i1, j1 := i0, j0
	if i0 < c.rows.Len()-1 {
		i1 = i0 + 1
	}
	if j0 < c.cols.Len()-1 {
		j1 = j0 + 1
	}

	return interp.Interpolate(
		c.data.At(i0, j0),
		c.data.At(i1, j0),
		c.data.At(i0, j1),
		c.data.At(i1, j1),
		fu-float64(i0),
		fv-float64(j0),
	)
}
