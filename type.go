package iontrap

// SectionRectangle is the flattened, serialisable form of a CrossSection.
// Contour holds the values row-major, XWidth rows of YWidth columns.
type SectionRectangle struct {
	Label       string     `json:"label"`
	XAxis       string     `json:"xAxis"`
	YAxis       string     `json:"yAxis"`
	Contour     []float64  `json:"contour"`
	XWidth      int        `json:"xWidth"`
	YWidth      int        `json:"yWidth"`
	Xlim        [2]float64 `json:"xLim"`
	Ylim        [2]float64 `json:"yLim"`
	Zlim        [2]float64 `json:"zLim"`
	XResolution float64    `json:"xResolution"`
	YResolution float64    `json:"yResolution"`
}

// Rectangle flattens the section. Non-finite values are kept as is, so
// encoding/json will refuse a section that crosses a singularity; callers
// that need JSON should check Range and NonFinite first.
func (c *CrossSection) Rectangle() SectionRectangle {
	r, cols := c.data.Dims()
	rect := c.Rect()
	zmin, zmax, _ := c.Range()
	return SectionRectangle{
		Label:       c.Label(),
		XAxis:       c.RowAxis.String(),
		YAxis:       c.ColAxis.String(),
		Contour:     append([]float64(nil), c.data.RawMatrix().Data...),
		XWidth:      r,
		YWidth:      cols,
		Xlim:        [2]float64{rect.Min[0], rect.Max[0]},
		Ylim:        [2]float64{rect.Min[1], rect.Max[1]},
		Zlim:        [2]float64{zmin, zmax},
		XResolution: c.rows.Step(),
		YResolution: c.cols.Step(),
	}
}

func (c *CrossSection) NonFinite() int {
	n := 0
	for _, v := range c.data.RawMatrix().Data {
		if !isFinite(v) {
			n++
		}
	}
	return n
}
