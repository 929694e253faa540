package iontrap

import (
	"fmt"

	vec2d "github.com/flywave/go3d/float64/vec2"
	"gonum.org/v1/gonum/mat"
)

// CrossSection is a 2D slice of a field. Rows follow the first remaining
// axis and columns the second, in their original relative order.
type CrossSection struct {
	// Fixed is the axis held constant, or -1 for the plane of a 2D field.
	Fixed AxisID
	Index int
	// Value is the coordinate of the fixed plane.
	Value float64

	RowAxis, ColAxis AxisID
	rows, cols       Axis
	data             *mat.Dense
}

// CrossSection extracts the plane at index along fixed from a 3D field.
func (f *ScalarField) CrossSection(fixed AxisID, index int) (*CrossSection, error) {
	if f.Dims() != 3 {
		return nil, fmt.Errorf("%w: cross-section needs a 3D field, got %dD", ErrDimensionMismatch, f.Dims())
	}
	if fixed < X || fixed > Z {
		return nil, fmt.Errorf("%w: no axis %s", ErrIndexOutOfBounds, fixed)
	}
	shape := f.grid.shape
	if index < 0 || index >= shape[fixed] {
		return nil, fmt.Errorf("%w: axis %s index %d not in [0, %d)", ErrIndexOutOfBounds, fixed, index, shape[fixed])
	}

	var rest [2]AxisID
	n := 0
	for a := X; a <= Z; a++ {
		if a != fixed {
			rest[n] = a
			n++
		}
	}

	r, c := shape[rest[0]], shape[rest[1]]
	data := make([]float64, r*c)
	idx := make([]int, 3)
	idx[fixed] = index
	for i := 0; i < r; i++ {
		idx[rest[0]] = i
		for j := 0; j < c; j++ {
			idx[rest[1]] = j
			data[i*c+j] = f.values[shape.offset(idx)]
		}
	}

	return &CrossSection{
		Fixed:   fixed,
		Index:   index,
		Value:   f.grid.axes[fixed].values[index],
		RowAxis: rest[0],
		ColAxis: rest[1],
		rows:    f.grid.axes[rest[0]],
		cols:    f.grid.axes[rest[1]],
		data:    mat.NewDense(r, c, data),
	}, nil
}

// MidSections returns the sections through the middle index of x, y and z.
func (f *ScalarField) MidSections() ([]*CrossSection, error) {
	if f.Dims() != 3 {
		return nil, fmt.Errorf("%w: cross-section needs a 3D field, got %dD", ErrDimensionMismatch, f.Dims())
	}
	ret := make([]*CrossSection, 0, 3)
	for a := X; a <= Z; a++ {
		cs, err := f.CrossSection(a, f.grid.axes[a].Mid())
		if err != nil {
			return nil, err
		}
		ret = append(ret, cs)
	}
	return ret, nil
}

// Plane returns a 2D field as a CrossSection so it can be rendered the same
// way as a slice of a 3D field.
func (f *ScalarField) Plane() (*CrossSection, error) {
	if f.Dims() != 2 {
		return nil, fmt.Errorf("%w: plane needs a 2D field, got %dD", ErrDimensionMismatch, f.Dims())
	}
	r, c := f.grid.shape[0], f.grid.shape[1]
	return &CrossSection{
		Fixed:   -1,
		RowAxis: X,
		ColAxis: Y,
		rows:    f.grid.axes[X],
		cols:    f.grid.axes[Y],
		data:    mat.NewDense(r, c, f.Values()),
	}, nil
}

func (c *CrossSection) Dims() (r, cols int) {
	return c.data.Dims()
}

func (c *CrossSection) At(i, j int) (float64, error) {
	r, cl := c.data.Dims()
	if i < 0 || i >= r || j < 0 || j >= cl {
		return 0, fmt.Errorf("%w: (%d, %d) for %dx%d section", ErrIndexOutOfBounds, i, j, r, cl)
	}
	return c.data.At(i, j), nil
}

func (c *CrossSection) Rows() Axis {
	return c.rows
}

func (c *CrossSection) Cols() Axis {
	return c.cols
}

// Matrix returns a copy of the section values.
func (c *CrossSection) Matrix() *mat.Dense {
	return mat.DenseCopyOf(c.data)
}

func (c *CrossSection) Range() (min, max float64, ok bool) {
	return finiteRange(c.data.RawMatrix().Data)
}

func (c *CrossSection) Rect() vec2d.Rect {
	return vec2d.Rect{
		Min: vec2d.T{c.rows.At(0), c.cols.At(0)},
		Max: vec2d.T{c.rows.At(c.rows.Len() - 1), c.cols.At(c.cols.Len() - 1)},
	}
}

func (c *CrossSection) Label() string {
	if c.Fixed < 0 {
		return fmt.Sprintf("%s-%s plane", c.RowAxis, c.ColAxis)
	}
	return fmt.Sprintf("%s=%g", c.Fixed, c.Value)
}
