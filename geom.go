package facetplot

import (
	"image/color"

	"github.com/vdobler/facetplot/geom"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Geom is a geometrical object rendering the summaries of one line
// into gonum plotters.
type Geom interface {
	Name() string

	// NeededSlots are the fields of stat.Summary the geom reads.
	NeededSlots() []string

	// Render the line in panel. Positions are on the panel's scales.
	Render(panel *Panel, line *Line, style Style) ([]plot.Plotter, error)
}

// Style is the per-line appearance handed to geoms.
type Style struct {
	Color     color.Color
	LineWidth vg.Length
	LineType  LineType
	Alpha     float64 // fill opacity
}

// -------------------------------------------------------------------------
// Geom Line

// GeomLine connects the means of a line.
type GeomLine struct{}

var _ Geom = GeomLine{}

func (GeomLine) Name() string          { return "GeomLine" }
func (GeomLine) NeededSlots() []string { return []string{"x", "mean"} }

func (GeomLine) Render(panel *Panel, line *Line, style Style) ([]plot.Plotter, error) {
	xys := make(plotter.XYs, len(line.Summaries))
	for i, s := range line.Summaries {
		xys[i].X = s.X
		xys[i].Y = s.Mean
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = style.Color
	l.LineStyle.Width = style.LineWidth
	l.LineStyle.Dashes = style.LineType.Dashes(style.LineWidth)
	if style.LineType == BlankLine {
		l.LineStyle.Width = 0
	}
	return []plot.Plotter{l}, nil
}

// -------------------------------------------------------------------------
// Geom Ribbon

// GeomRibbon fills the band from mean-SD to mean+SD.
type GeomRibbon struct{}

var _ Geom = GeomRibbon{}

func (GeomRibbon) Name() string          { return "GeomRibbon" }
func (GeomRibbon) NeededSlots() []string { return []string{"x", "mean", "sd"} }

func (GeomRibbon) Render(panel *Panel, line *Line, style Style) ([]plot.Plotter, error) {
	bands := make([]geom.Band, len(line.Summaries))
	for i, s := range line.Summaries {
		bands[i] = geom.Band{
			X:  s.X,
			Lo: panel.YScale.Clamp(s.Lo()),
			Hi: panel.YScale.Clamp(s.Hi()),
		}
	}
	r, err := geom.NewRibbon(bands)
	if err != nil {
		return nil, err
	}
	r.Color = SetAlpha(style.Color, style.Alpha)
	return []plot.Plotter{r}, nil
}
