package facetplot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vdobler/facetplot/stat"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrNoData is returned when a plot is built from an empty data frame.
var ErrNoData = errors.New("no data")

var logger = zap.NewNop()

// SetLogger sets the logger used by this package. A nil logger
// disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

type Plot struct {
	// Data is the data to draw.
	Data *DataFrame

	// Faceting describes the Used Faceting
	Faceting Faceting

	// Aes maps the aesthetics "x", "y" and "group" to fields in Data.
	Aes AesMapping

	// Scales are the transforms of the "x" and "y" axis. Missing
	// entries are linear.
	Scales map[string]*ScaleTransform

	// Labels are the optional axis labels, keyed by "x" and "y".
	Labels map[string]string

	// Stat reduces the points of each line, nil means StatMeanSD.
	Stat Stat

	// Geoms draw each line, nil means a ribbon below a line.
	Geoms []Geom

	Theme Theme

	// Set up by CreatePanels.
	Panels  [][]*Panel
	XScales []*Scale // one per column, or per panel if x is free
	YScales []*Scale // one per row, or per panel if y is free

	points []point
	rows   *TuplePool
	cols   *TuplePool
	lines  *TuplePool
}

// point is a projected record. Line, row and col index the tuple pools.
type point struct {
	x, y           float64
	line, row, col int
}

// Panel is one cell of the facet grid.
type Panel struct {
	Row, Col Tuple

	// Lines in order of their first occurrence in this panel.
	Lines []*Line

	XScale, YScale *Scale

	// Plot is the plot this panel belongs to
	Plot *Plot

	index map[int]*Line
}

// Title lists the row values followed by the column values.
func (p *Panel) Title() string {
	t := make(Tuple, 0, len(p.Row)+len(p.Col))
	t = append(t, p.Row...)
	t = append(t, p.Col...)
	return t.String()
}

// Line is one series in a panel.
type Line struct {
	Key Tuple

	// Index is the position of Key among all lines of the plot and
	// selects color and line type.
	Index int

	xs, ys    []float64
	Summaries []stat.Summary
}

// Label is the legend entry of l.
func (l *Line) Label() string { return l.Key.String() }

type Faceting struct {
	// Columns and Rows are the faceting specification. Each may be a comma
	// seperated list of fields in the Data. An empty string means no
	// faceting in this dimension.
	Columns, Rows string

	FreeScale string // "": fixed, "x": x is free, "y": y is free, "xy": both are free
}

// AesMapping controlls the mapping of fields of a data frame to aesthetics.
// Values may be comma separated lists of fields.
type AesMapping map[string]string

// Fields returns the fields mapped to aes.
func (m AesMapping) Fields(aes string) []string { return splitFields(m[aes]) }

// Used returns the sorted mapped aesthetics and fields.
func (m AesMapping) Used() (aes, names []string) {
	for a := range m {
		aes = append(aes, a)
		names = append(names, m.Fields(a)...)
	}
	sort.Strings(aes)
	sort.Strings(names)
	return aes, names
}

func splitFields(s string) []string {
	var fields []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

func (p *Plot) Warnf(f string, args ...interface{}) {
	logger.Sugar().Warnf(f, args...)
}

func (p *Plot) stat() Stat {
	if p.Stat == nil {
		return StatMeanSD{}
	}
	return p.Stat
}

func (p *Plot) geoms() []Geom {
	if len(p.Geoms) == 0 {
		return []Geom{GeomRibbon{}, GeomLine{}}
	}
	return p.Geoms
}

func (p *Plot) transform(aes string) *ScaleTransform {
	if t := p.Scales[aes]; t != nil {
		return t
	}
	return &IdentityScale
}

// PrepareData is the first step in generating a plot: every record is
// projected to its x and y value and to the indices of its line, row
// and column tuple. Tuples are numbered in order of first occurrence.
func (p *Plot) PrepareData() error {
	if p.Data == nil || p.Data.N == 0 {
		return ErrNoData
	}
	for _, aes := range p.stat().Info().NeededAes {
		if len(p.Aes.Fields(aes)) == 0 {
			return fmt.Errorf("stat %s needs aesthetic %q", p.stat().Name(), aes)
		}
	}
	xf, yf := p.Aes.Fields("x"), p.Aes.Fields("y")
	if len(xf) != 1 || len(yf) != 1 {
		return fmt.Errorf("x and y must map to exactly one field, got %q and %q",
			p.Aes["x"], p.Aes["y"])
	}
	groupFields := p.Aes.Fields("group")
	rowFields := splitFields(p.Faceting.Rows)
	colFields := splitFields(p.Faceting.Columns)

	// Make sure all needed fields are present in the data frame.
	_, mapped := p.Aes.Used()
	needed := NewStringSetFrom(mapped)
	for _, name := range append(rowFields, colFields...) {
		needed.Add(name)
	}
	needed.Remove(NewStringSetFrom(p.Data.FieldNames()))
	if len(needed) > 0 {
		return fmt.Errorf("%w in %s: %s", ErrMissingField, p.Data.Name,
			strings.Join(needed.Elements(), ", "))
	}

	p.rows, p.cols, p.lines = NewTuplePool(), NewTuplePool(), NewTuplePool()
	p.points = make([]point, p.Data.N)
	for i := range p.points {
		x, err := p.Data.Float(i, xf[0])
		if err != nil {
			return err
		}
		y, err := p.Data.Float(i, yf[0])
		if err != nil {
			return err
		}
		line, err := p.Data.Tuple(i, groupFields)
		if err != nil {
			return err
		}
		row, err := p.Data.Tuple(i, rowFields)
		if err != nil {
			return err
		}
		col, err := p.Data.Tuple(i, colFields)
		if err != nil {
			return err
		}
		p.points[i] = point{
			x:    x,
			y:    y,
			line: p.lines.Add(line),
			row:  p.rows.Add(row),
			col:  p.cols.Add(col),
		}
	}
	logger.Debug("prepared data",
		zap.String("data", p.Data.Name),
		zap.Int("points", len(p.points)),
		zap.Int("rows", p.rows.Len()),
		zap.Int("cols", p.cols.Len()),
		zap.Int("lines", p.lines.Len()))
	return nil
}

// CreatePanels populates p.Panels, coverned by p.Faceting: one panel for
// each combination of row and column tuple, even if no record falls
// into it. The points of each panel are distributed to its lines.
func (p *Plot) CreatePanels() {
	rows, cols := p.rows.Len(), p.cols.Len()
	freeX := strings.Contains(p.Faceting.FreeScale, "x")
	freeY := strings.Contains(p.Faceting.FreeScale, "y")

	p.XScales, p.YScales = nil, nil
	if !freeX {
		for c := 0; c < cols; c++ {
			p.XScales = append(p.XScales, NewScale("x", p.transform("x")))
		}
	}
	if !freeY {
		for r := 0; r < rows; r++ {
			p.YScales = append(p.YScales, NewScale("y", p.transform("y")))
		}
	}

	p.Panels = make([][]*Panel, rows)
	for r := 0; r < rows; r++ {
		p.Panels[r] = make([]*Panel, cols)
		for c := 0; c < cols; c++ {
			panel := &Panel{
				Row:   p.rows.Get(r),
				Col:   p.cols.Get(c),
				Plot:  p,
				index: make(map[int]*Line),
			}
			if freeX {
				panel.XScale = NewScale("x", p.transform("x"))
				p.XScales = append(p.XScales, panel.XScale)
			} else {
				panel.XScale = p.XScales[c]
			}
			if freeY {
				panel.YScale = NewScale("y", p.transform("y"))
				p.YScales = append(p.YScales, panel.YScale)
			} else {
				panel.YScale = p.YScales[r]
			}
			p.Panels[r][c] = panel
		}
	}

	for _, pt := range p.points {
		panel := p.Panels[pt.row][pt.col]
		line, ok := panel.index[pt.line]
		if !ok {
			line = &Line{Key: p.lines.Get(pt.line), Index: pt.line}
			panel.index[pt.line] = line
			panel.Lines = append(panel.Lines, line)
		}
		line.xs = append(line.xs, pt.x)
		line.ys = append(line.ys, pt.y)
	}

	for _, row := range p.Panels {
		for _, panel := range row {
			if len(panel.Lines) == 0 {
				p.Warnf("panel %q has no data", panel.Title())
			}
		}
	}
}

// ComputeStatistics reduces the points of every line with p.Stat.
func (p *Plot) ComputeStatistics() error {
	st := p.stat()
	for _, row := range p.Panels {
		for _, panel := range row {
			for _, line := range panel.Lines {
				sums, err := st.Apply(line.xs, line.ys)
				if err != nil {
					return fmt.Errorf("%s in panel %q line %q: %w",
						st.Name(), panel.Title(), line.Label(), err)
				}
				line.Summaries = sums
			}
		}
	}
	return nil
}

// TrainScales trains the (shared) x and y scales of all panels on the
// computed summaries: x on the x-values, y on the means and on the
// edges of the ±SD bands.
func (p *Plot) TrainScales() error {
	for _, row := range p.Panels {
		for _, panel := range row {
			for _, line := range panel.Lines {
				for _, s := range line.Summaries {
					if err := panel.XScale.Train(s.X); err != nil {
						return fmt.Errorf("panel %q line %q: %w", panel.Title(), line.Label(), err)
					}
					if err := panel.YScale.Train(s.Mean); err != nil {
						return fmt.Errorf("panel %q line %q: %w", panel.Title(), line.Label(), err)
					}
					panel.YScale.TrainBand(s.Lo(), s.Hi())
				}
			}
		}
	}
	for _, s := range p.XScales {
		logger.Debug("trained scale", zap.Stringer("scale", s))
	}
	for _, s := range p.YScales {
		logger.Debug("trained scale", zap.Stringer("scale", s))
	}
	return nil
}

// Render turns every panel into a gonum plot. Tick labels of shared
// axes are drawn on the outer panels only.
func (p *Plot) Render() ([][]*plot.Plot, error) {
	colors := p.Theme.LineColors(p.lines.Len())
	lastRow := len(p.Panels) - 1
	freeX := strings.Contains(p.Faceting.FreeScale, "x")
	freeY := strings.Contains(p.Faceting.FreeScale, "y")

	plots := make([][]*plot.Plot, len(p.Panels))
	for r, row := range p.Panels {
		plots[r] = make([]*plot.Plot, len(row))
		for c, panel := range row {
			plt := plot.New()
			plt.Title.Text = panel.Title()
			plt.Legend.Top = p.Theme.LegendTop
			plt.Legend.Left = p.Theme.LegendLeft

			for _, line := range panel.Lines {
				style := Style{
					Color:     colors[line.Index],
					LineWidth: p.Theme.lineWidth(),
					LineType:  p.Theme.LineType(line.Index),
					Alpha:     p.Theme.RibbonAlpha,
				}
				var thumbs []plot.Thumbnailer
				for _, g := range p.geoms() {
					plotters, err := g.Render(panel, line, style)
					if err != nil {
						return nil, fmt.Errorf("%s in panel %q line %q: %w",
							g.Name(), panel.Title(), line.Label(), err)
					}
					plt.Add(plotters...)
					for _, pl := range plotters {
						if th, ok := pl.(plot.Thumbnailer); ok {
							thumbs = append(thumbs, th)
						}
					}
				}
				if label := line.Label(); label != "" {
					plt.Legend.Add(label, thumbs...)
				}
			}

			// Axis ranges must be set after adding the plotters.
			panel.XScale.Apply(&plt.X, freeX || r == lastRow)
			panel.YScale.Apply(&plt.Y, freeY || c == 0)
			if r == lastRow {
				plt.X.Label.Text = p.Labels["x"]
			}
			if c == 0 {
				plt.Y.Label.Text = p.Labels["y"]
			}
			plots[r][c] = plt
		}
	}
	return plots, nil
}

// Build runs all steps from PrepareData to Render.
func (p *Plot) Build() ([][]*plot.Plot, error) {
	if err := p.PrepareData(); err != nil {
		return nil, err
	}
	p.CreatePanels()
	if err := p.ComputeStatistics(); err != nil {
		return nil, err
	}
	if err := p.TrainScales(); err != nil {
		return nil, err
	}
	return p.Render()
}

// Draw builds p and draws the grid of panels onto dc.
func (p *Plot) Draw(dc draw.Canvas) error {
	plots, err := p.Build()
	if err != nil {
		return err
	}
	tiles := draw.Tiles{
		Rows: len(plots),
		Cols: len(plots[0]),
		PadX: vg.Points(p.Theme.PadX),
		PadY: vg.Points(p.Theme.PadY),
	}
	canvases := plot.Align(plots, tiles, dc)
	for r := range plots {
		for c := range plots[r] {
			plots[r][c].Draw(canvases[r][c])
		}
	}
	return nil
}

// WriteTo draws p on a width x height canvas and writes it to w in the
// given format (png, svg, pdf, ...).
func (p *Plot) WriteTo(w io.Writer, width, height vg.Length, format string) error {
	c, err := p.canvas(width, height, format)
	if err != nil {
		return err
	}
	_, err = c.WriteTo(w)
	return err
}

// Save writes p to path. The format is determined by the extension.
func (p *Plot) Save(width, height vg.Length, path string) (err error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	c, err := p.canvas(width, height, format)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err = c.WriteTo(f); err != nil {
		return err
	}
	logger.Info("saved plot", zap.String("path", path))
	return nil
}

func (p *Plot) canvas(width, height vg.Length, format string) (vg.CanvasWriterTo, error) {
	c, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return nil, err
	}
	if err := p.Draw(draw.New(c)); err != nil {
		return nil, err
	}
	return c, nil
}
