package iontrap

import (
	"fmt"

	vec3d "github.com/flywave/go3d/float64/vec3"
)

type Shape []int

func (s Shape) Size() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// offset returns the row-major flat position of idx, or -1 if any component
// is out of range.
func (s Shape) offset(idx []int) int {
	if len(idx) != len(s) {
		return -1
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= s[i] {
			return -1
		}
		off = off*s[i] + v
	}
	return off
}

func (s Shape) unravel(off int, idx []int) {
	for i := len(s) - 1; i >= 0; i-- {
		idx[i] = off % s[i]
		off /= s[i]
	}
}

// Grid is the Cartesian product of two or three axes. The first axis spec is
// the first array dimension; every coordinate array is row-major over Shape.
type Grid struct {
	axes   []Axis
	shape  Shape
	coords [][]float64
}

func BuildGrid(specs ...AxisSpec) (*Grid, error) {
	if len(specs) != 2 && len(specs) != 3 {
		return nil, fmt.Errorf("%w: need 2 or 3 axes, got %d", ErrInvalidAxisSpec, len(specs))
	}

	axes := make([]Axis, len(specs))
	shape := make(Shape, len(specs))
	for i, spec := range specs {
		a, err := NewAxis(spec)
		if err != nil {
			return nil, fmt.Errorf("axis %s: %w", AxisID(i), err)
		}
		axes[i] = a
		shape[i] = a.Len()
	}

	count := shape.Size()
	coords := make([][]float64, len(axes))
	for d := range coords {
		coords[d] = make([]float64, count)
	}

	idx := make([]int, len(shape))
	for off := 0; off < count; off++ {
		shape.unravel(off, idx)
		for d := range axes {
			coords[d][off] = axes[d].values[idx[d]]
		}
	}

	return &Grid{axes: axes, shape: shape, coords: coords}, nil
}

func (g *Grid) Dims() int {
	return len(g.axes)
}

func (g *Grid) Shape() Shape {
	s := make(Shape, len(g.shape))
	copy(s, g.shape)
	return s
}

func (g *Grid) Len() int {
	return g.shape.Size()
}

func (g *Grid) hasAxis(id AxisID) bool {
	return id >= X && int(id) < len(g.axes)
}

// Axis returns the axis id, or the zero Axis (Len 0) if the grid has no such
// axis, e.g. Z on a 2D grid.
func (g *Grid) Axis(id AxisID) Axis {
	if !g.hasAxis(id) {
		return Axis{}
	}
	return g.axes[id]
}

// Coordinates returns a copy of the broadcast coordinate array for one axis,
// nil if the grid has no such axis.
func (g *Grid) Coordinates(id AxisID) []float64 {
	if !g.hasAxis(id) {
		return nil
	}
	out := make([]float64, len(g.coords[id]))
	copy(out, g.coords[id])
	return out
}

// Coordinate returns the value of axis id at the grid index idx.
func (g *Grid) Coordinate(id AxisID, idx ...int) (float64, error) {
	if !g.hasAxis(id) {
		return 0, fmt.Errorf("%w: no axis %s in a %dD grid", ErrIndexOutOfBounds, id, g.Dims())
	}
	off := g.shape.offset(idx)
	if off < 0 {
		return 0, fmt.Errorf("%w: index %v for shape %v", ErrIndexOutOfBounds, idx, g.shape)
	}
	return g.coords[id][off], nil
}

// Point returns the coordinate triple at flat offset off. 2D grids leave the
// third component zero.
func (g *Grid) Point(off int) vec3d.T {
	var p vec3d.T
	for d := range g.coords {
		p[d] = g.coords[d][off]
	}
	return p
}

func (g *Grid) Bounds() vec3d.Box {
	r := vec3d.Box{Min: vec3d.MaxVal, Max: vec3d.MinVal}
	for _, corner := range []int{0, g.Len() - 1} {
		p := g.Point(corner)
		r.Extend(&p)
	}
	return r
}
