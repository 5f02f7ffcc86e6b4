// Package geom provides gonum plotters for geoms which have no direct
// counterpart in gonum.org/v1/plot/plotter.
package geom

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Band is one vertical slice of a ribbon: at X the ribbon spans Lo to Hi.
type Band struct {
	X, Lo, Hi float64
}

// Ribbon fills the area between the lower and the upper edge of a
// sequence of bands. The bands are drawn in the given order, so X
// should be sorted.
type Ribbon struct {
	Bands []Band

	// Color is the fill color. A nil Color draws nothing.
	Color color.Color

	// LineStyle is used to outline the ribbon. A zero width draws
	// no outline.
	LineStyle draw.LineStyle
}

var (
	_ plot.Plotter     = (*Ribbon)(nil)
	_ plot.DataRanger  = (*Ribbon)(nil)
	_ plot.Thumbnailer = (*Ribbon)(nil)
)

// NewRibbon returns a Ribbon over a copy of bands. NaN and infinite
// values are rejected.
func NewRibbon(bands []Band) (*Ribbon, error) {
	cpy := make([]Band, len(bands))
	for i, b := range bands {
		if err := plotter.CheckFloats(b.X, b.Lo, b.Hi); err != nil {
			return nil, err
		}
		cpy[i] = b
	}
	return &Ribbon{
		Bands: cpy,
		Color: color.Gray{Y: 0xcc},
	}, nil
}

// Plot implements plot.Plotter.
func (r *Ribbon) Plot(c draw.Canvas, plt *plot.Plot) {
	if len(r.Bands) == 0 {
		return
	}
	trX, trY := plt.Transforms(&c)

	n := len(r.Bands)
	pts := make([]vg.Point, 0, 2*n+1)
	for _, b := range r.Bands {
		pts = append(pts, vg.Point{X: trX(b.X), Y: trY(b.Hi)})
	}
	for i := n - 1; i >= 0; i-- {
		b := r.Bands[i]
		pts = append(pts, vg.Point{X: trX(b.X), Y: trY(b.Lo)})
	}

	if r.Color != nil {
		c.FillPolygon(r.Color, c.ClipPolygonXY(pts))
	}
	if r.LineStyle.Width > 0 && r.LineStyle.Color != nil {
		pts = append(pts, pts[0])
		c.StrokeLines(r.LineStyle, c.ClipLinesXY(pts)...)
	}
}

// DataRange implements plot.DataRanger.
func (r *Ribbon) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, b := range r.Bands {
		xmin = math.Min(xmin, b.X)
		xmax = math.Max(xmax, b.X)
		ymin = math.Min(ymin, math.Min(b.Lo, b.Hi))
		ymax = math.Max(ymax, math.Max(b.Lo, b.Hi))
	}
	return xmin, xmax, ymin, ymax
}

// Thumbnail implements plot.Thumbnailer by filling the legend box.
func (r *Ribbon) Thumbnail(c *draw.Canvas) {
	if r.Color == nil {
		return
	}
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(r.Color, c.ClipPolygonY(pts))
}
