package render

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	iontrap "github.com/flywave/go-iontrap"
)

const defaultMaxPoints = 8000

// coolwarm endpoints and midpoint of the Moreland diverging map.
var coolwarm = []string{"#3b4cc0", "#dddddd", "#b40426"}

type ScatterOptions struct {
	Title string
	// MaxPoints bounds the number of plotted cells; the field is strided to
	// stay under it.
	MaxPoints int
}

// Scatter3D builds an HTML 3D scatter of every (strided) cell of a 3D field,
// coloured by potential. Non-finite cells are dropped.
func Scatter3D(f *iontrap.ScalarField, o ScatterOptions) (*charts.Scatter3D, error) {
	if f.Dims() != 3 {
		return nil, fmt.Errorf("%w: scatter needs a 3D field, got %dD", iontrap.ErrDimensionMismatch, f.Dims())
	}
	min, max, ok := f.Range()
	if !ok {
		return nil, fmt.Errorf("render: field has no finite values")
	}

	maxPoints := o.MaxPoints
	if maxPoints <= 0 {
		maxPoints = defaultMaxPoints
	}
	stride := 1
	if f.Len() > maxPoints {
		stride = int(math.Ceil(float64(f.Len()) / float64(maxPoints)))
	}

	g := f.Grid()
	values := f.Values()
	data := make([]opts.Chart3DData, 0, f.Len()/stride+1)
	for i := 0; i < len(values); i += stride {
		v := values[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		p := g.Point(i)
		data = append(data, opts.Chart3DData{Value: []interface{}{p[0], p[1], p[2], v}})
	}

	title := o.Title
	if title == "" {
		title = "Ion Trap Potential Distribution"
	}

	bounds := g.Bounds()
	scatter := charts.NewScatter3D()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("points=%d stride=%d", len(data), stride)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "X", Min: bounds.Min[0], Max: bounds.Max[0]}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Y", Min: bounds.Min[1], Max: bounds.Max[1]}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Z", Min: bounds.Min[2], Max: bounds.Max[2]}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(min),
			Max:        float32(max),
			Dimension:  "3",
			InRange:    &opts.VisualMapInRange{Color: coolwarm},
		}),
	)
	scatter.AddSeries("potential", data)
	return scatter, nil
}

// WriteScatter3D renders the Scatter3D page to w.
func WriteScatter3D(w io.Writer, f *iontrap.ScalarField, o ScatterOptions) error {
	scatter, err := Scatter3D(f, o)
	if err != nil {
		return err
	}
	return scatter.Render(w)
}
