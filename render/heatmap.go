// Package render draws ion trap potential fields: filled heat maps with
// contour overlays for cross-sections, and HTML 3D scatter plots for whole
// fields.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	iontrap "github.com/flywave/go-iontrap"
)

const (
	defaultLevels = 20
	paletteSize   = 255
	rdBuSize      = 11
)

// Palette names accepted in Options.
const (
	Coolwarm = "coolwarm"
	RdBu     = "RdBu"
)

var ErrTooSmall = errors.New("render: section needs at least 2x2 cells")

type Options struct {
	Title string
	// Levels is the number of contour lines; 0 uses the default, negative
	// disables the overlay.
	Levels int
	// Min and Max fix the colour range, e.g. to the range of the whole field
	// so every section shares one scale. Both zero means the section's own
	// finite range.
	Min, Max float64
	// Palette is Coolwarm (default) or RdBu.
	Palette string
	Logger  *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// sectionGrid adapts a CrossSection to plotter.GridXYZ. Section rows run
// along the horizontal axis, columns along the vertical one.
type sectionGrid struct {
	cs *iontrap.CrossSection
	m  *mat.Dense
}

func (g sectionGrid) Dims() (c, r int) { return g.m.Dims() }
func (g sectionGrid) Z(c, r int) float64 { return g.m.At(c, r) }
func (g sectionGrid) X(c int) float64 { return g.cs.Rows().At(c) }
func (g sectionGrid) Y(r int) float64 { return g.cs.Cols().At(r) }

// mono is a single-colour palette for contour lines.
type mono struct{ c color.Color }

func (m mono) Colors() []color.Color { return []color.Color{m.c} }

// colorMap returns the coolwarm style diverging map over [min, max].
func colorMap(min, max float64) palette.ColorMap {
	cm := moreland.SmoothBlueRed()
	if max <= min {
		max = min + 1
	}
	cm.SetMin(min)
	cm.SetMax(max)
	return cm
}

// heatPalette returns the named palette. Coolwarm is sampled over
// [min, max]; RdBu is the 11-class ColorBrewer diverging scheme.
func heatPalette(name string, min, max float64) (palette.Palette, error) {
	switch name {
	case "", Coolwarm:
		return colorMap(min, max).Palette(paletteSize), nil
	case RdBu:
		p, err := brewer.GetPalette(brewer.TypeAny, "RdBu", rdBuSize)
		if err != nil {
			return nil, fmt.Errorf("render: palette %s: %w", name, err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("render: unknown palette %q", name)
}

func levels(min, max float64, n int) []float64 {
	if max <= min || n <= 0 {
		return nil
	}
	step := (max - min) / float64(n+1)
	ret := make([]float64, n)
	for i := range ret {
		ret[i] = min + step*float64(i+1)
	}
	return ret
}

// Heatmap builds a filled plot of the section with an optional contour
// overlay. -Inf and +Inf cells take the underflow and overflow colours, NaN
// cells are left transparent, and any non-finite cell suppresses the contours.
func Heatmap(cs *iontrap.CrossSection, o Options) (*plot.Plot, error) {
	r, c := cs.Dims()
	if r < 2 || c < 2 {
		return nil, fmt.Errorf("%w: %s is %dx%d", ErrTooSmall, cs.Label(), r, c)
	}

	min, max := o.Min, o.Max
	if min == 0 && max == 0 {
		var ok bool
		if min, max, ok = cs.Range(); !ok {
			return nil, fmt.Errorf("render: %s has no finite values", cs.Label())
		}
	}

	grid := sectionGrid{cs: cs, m: cs.Matrix()}
	pal, err := heatPalette(o.Palette, min, max)
	if err != nil {
		return nil, err
	}
	colors := pal.Colors()

	h := plotter.NewHeatMap(grid, pal)
	h.Min, h.Max = min, max
	h.Underflow = colors[0]
	h.Overflow = colors[len(colors)-1]
	h.NaN = color.Transparent

	p := plot.New()
	p.Title.Text = o.Title
	if p.Title.Text == "" {
		p.Title.Text = fmt.Sprintf("Cross-Section at %s", cs.Label())
	}
	p.X.Label.Text = fmt.Sprintf("%s position", cs.RowAxis)
	p.Y.Label.Text = fmt.Sprintf("%s position", cs.ColAxis)
	p.Add(h)

	n := o.Levels
	if n == 0 {
		n = defaultLevels
	}
	switch {
	case n < 0:
	case cs.NonFinite() > 0:
		o.logger().Warn("skipping contours over singular cells",
			"section", cs.Label(), "non_finite", cs.NonFinite())
	default:
		p.Add(plotter.NewContour(grid, levels(min, max, n), mono{color.Black}))
	}

	rect := cs.Rect()
	p.X.Min, p.X.Max = rect.Min[0], rect.Max[0]
	p.Y.Min, p.Y.Max = rect.Min[1], rect.Max[1]
	return p, nil
}

// WritePNG renders the section to w as a PNG of the given size in inches.
func WritePNG(w io.Writer, cs *iontrap.CrossSection, o Options, width, height float64) error {
	p, err := Heatmap(cs, o)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("png writer: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// SavePNG renders the section to the file at path.
func SavePNG(path string, cs *iontrap.CrossSection, o Options, width, height float64) error {
	p, err := Heatmap(cs, o)
	if err != nil {
		return err
	}
	if err := p.Save(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	o.logger().Debug("wrote section", "section", cs.Label(), "path", path)
	return nil
}
