package iontrap

import (
	"encoding/json"
	"math"
	"testing"

	vec3d "github.com/flywave/go3d/float64/vec3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func trapField(t *testing.T) *ScalarField {
	t.Helper()
	g, err := BuildGrid(AxisSpec{-1, 1, 5}, AxisSpec{-2, 2, 3}, AxisSpec{-1, 1, 9})
	require.NoError(t, err)
	f, err := Evaluate(LinearTrap, g, Parameters{1, 0.5, -1.5})
	require.NoError(t, err)
	return f
}

func TestCrossSectionMatchesDirectEvaluation(t *testing.T) {
	f := trapField(t)
	params := Parameters{1, 0.5, -1.5}

	for k := 0; k < 9; k++ {
		cs, err := f.CrossSection(Z, k)
		require.NoError(t, err)

		zk := f.Grid().Axis(Z).At(k)
		plane, err := BuildGrid(AxisSpec{-1, 1, 5}, AxisSpec{-2, 2, 3})
		require.NoError(t, err)
		direct, err := EvaluateFunc(plane, func(p vec3d.T, params Parameters) float64 {
			p[2] = zk
			return linearTrap(p, params)
		}, params)
		require.NoError(t, err)

		got := cs.Matrix().RawMatrix().Data
		if diff := cmp.Diff(direct.Values(), got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
			t.Errorf("z index %d (-direct +section):\n%s", k, diff)
		}
		assert.Equal(t, zk, cs.Value)
	}
}

func TestCrossSectionAxisOrder(t *testing.T) {
	f := trapField(t)

	cases := []struct {
		fixed    AxisID
		index    int
		rows     AxisID
		cols     AxisID
		r, c     int
		position func(i, j int) []int
	}{
		{X, 3, Y, Z, 3, 9, func(i, j int) []int { return []int{3, i, j} }},
		{Y, 1, X, Z, 5, 9, func(i, j int) []int { return []int{i, 1, j} }},
		{Z, 0, X, Y, 5, 3, func(i, j int) []int { return []int{i, j, 0} }},
	}
	for _, c := range cases {
		cs, err := f.CrossSection(c.fixed, c.index)
		require.NoError(t, err)

		a := assert.New(t)
		a.Equal(c.rows, cs.RowAxis)
		a.Equal(c.cols, cs.ColAxis)
		r, cols := cs.Dims()
		a.Equal(c.r, r)
		a.Equal(c.c, cols)
		a.Equal(c.r, cs.Rows().Len())
		a.Equal(c.c, cs.Cols().Len())

		for i := 0; i < r; i++ {
			for j := 0; j < cols; j++ {
				want, err := f.At(c.position(i, j)...)
				require.NoError(t, err)
				got, err := cs.At(i, j)
				require.NoError(t, err)
				a.Equal(want, got, "%s section at (%d, %d)", c.fixed, i, j)
			}
		}
	}
}

func TestCrossSectionOutOfBounds(t *testing.T) {
	f := trapField(t)
	before := f.Values()

	for _, c := range []struct {
		axis  AxisID
		index int
	}{{X, 5}, {Y, -1}, {Z, 9}, {AxisID(3), 0}} {
		cs, err := f.CrossSection(c.axis, c.index)
		assert.Nil(t, cs)
		assert.ErrorIs(t, err, ErrIndexOutOfBounds, "%s %d", c.axis, c.index)
	}

	_, err := f.CrossSection(Z, 9)
	assert.Contains(t, err.Error(), "axis z index 9")

	assert.Equal(t, before, f.Values())
	cs, err := f.CrossSection(Z, 8)
	require.NoError(t, err)
	assert.NotNil(t, cs)
}

func TestCrossSectionIsolatedFromCaller(t *testing.T) {
	f := trapField(t)
	cs, err := f.CrossSection(Y, 1)
	require.NoError(t, err)

	m := cs.Matrix()
	m.Set(0, 0, 1e9)
	v, _ := cs.At(0, 0)
	assert.NotEqual(t, 1e9, v)

	vals := f.Values()
	vals[0] = 1e9
	v, _ = f.At(0, 0, 0)
	assert.NotEqual(t, 1e9, v)
}

func TestCrossSectionNeeds3D(t *testing.T) {
	g, err := BuildGrid(AxisSpec{-1, 1, 3}, AxisSpec{-1, 1, 3})
	require.NoError(t, err)
	f, err := Evaluate(Quadrupole2D, g, nil)
	require.NoError(t, err)

	_, err = f.CrossSection(X, 0)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = f.MidSections()
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	plane, err := f.Plane()
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDense(3, 3, f.Values()), plane.Matrix()))
	assert.Equal(t, "x-y plane", plane.Label())

	_, err = trapField(t).Plane()
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestMidSections(t *testing.T) {
	f := trapField(t)
	sections, err := f.MidSections()
	require.NoError(t, err)
	require.Len(t, sections, 3)

	a := assert.New(t)
	a.Equal(X, sections[0].Fixed)
	a.Equal(2, sections[0].Index)
	a.Equal(1, sections[1].Index)
	a.Equal(4, sections[2].Index)
	a.Equal("z=0", sections[2].Label())
}

func TestSectionRectangle(t *testing.T) {
	f := trapField(t)
	cs, err := f.CrossSection(Z, 4)
	require.NoError(t, err)

	rect := cs.Rectangle()
	a := assert.New(t)
	a.Equal("x", rect.XAxis)
	a.Equal("y", rect.YAxis)
	a.Equal(5, rect.XWidth)
	a.Equal(3, rect.YWidth)
	a.Len(rect.Contour, 15)
	a.Equal([2]float64{-1, 1}, rect.Xlim)
	a.Equal([2]float64{-2, 2}, rect.Ylim)
	a.Equal(0.5, rect.XResolution)
	a.Equal(2.0, rect.YResolution)
	// z=0: x^2 + 0.5 y^2 ranges over [0, 1 + 2].
	a.Equal([2]float64{0, 3}, rect.Zlim)

	buf, err := json.Marshal(rect)
	require.NoError(t, err)
	a.Contains(string(buf), `"xWidth":5`)
}

func TestSectionInterpolate(t *testing.T) {
	f := trapField(t)
	cs, err := f.CrossSection(Z, 4)
	require.NoError(t, err)

	a := assert.New(t)
	for i := 0; i < 5; i++ {
		for j := 0; j < 3; j++ {
			want, _ := cs.At(i, j)
			a.InDelta(want, cs.Interpolate(cs.Rows().At(i), cs.Cols().At(j), nil), 1e-12)
		}
	}

	// Halfway between x=0 and x=0.5 at y=0: mean of 0 and 0.25.
	a.InDelta(0.125, cs.Interpolate(0.25, 0, BilinearInterpolator{}), 1e-12)
	a.InDelta(0.25, cs.Interpolate(0.4, 0, NearestInterpolator{}), 1e-12)
	a.InDelta(0, cs.Interpolate(0.1, 0, NearestInterpolator{}), 1e-12)

	// Clamped outside the section.
	a.InDelta(3, cs.Interpolate(5, 5, nil), 1e-12)
	a.InDelta(3, cs.Interpolate(math.Inf(1), math.Inf(1), nil), 1e-12)

	a.True(math.IsNaN(cs.Interpolate(math.NaN(), 0, nil)))
	a.True(math.IsNaN(cs.Interpolate(0, math.NaN(), NearestInterpolator{})))
}

func TestNewInterpolator(t *testing.T) {
	i, err := NewInterpolator("")
	assert.NoError(t, err)
	assert.IsType(t, BilinearInterpolator{}, i)

	i, err = NewInterpolator(NEAREST)
	assert.NoError(t, err)
	assert.IsType(t, NearestInterpolator{}, i)

	_, err = NewInterpolator("hyperbolic")
	assert.ErrorIs(t, err, ErrInvalidParameters)
}
