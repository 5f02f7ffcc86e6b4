package geom

import (
	"bytes"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

func TestNewRibbon(t *testing.T) {
	_, err := NewRibbon([]Band{{X: 1, Lo: 0, Hi: math.NaN()}})
	assert.Error(t, err)

	_, err = NewRibbon([]Band{{X: math.Inf(1), Lo: 0, Hi: 1}})
	assert.Error(t, err)

	bands := []Band{{X: 1, Lo: 2, Hi: 4}}
	r, err := NewRibbon(bands)
	require.NoError(t, err)
	bands[0].Hi = 100
	assert.Equal(t, 4.0, r.Bands[0].Hi, "ribbon must not alias its input")
}

func TestRibbonDataRange(t *testing.T) {
	r, err := NewRibbon([]Band{
		{X: 1, Lo: 2, Hi: 4},
		{X: 2, Lo: 6, Hi: 6},
		{X: 4, Lo: -1, Hi: 3},
	})
	require.NoError(t, err)

	xmin, xmax, ymin, ymax := r.DataRange()
	assert.Equal(t, []float64{1, 4, -1, 6}, []float64{xmin, xmax, ymin, ymax})
}

func TestRibbonDraw(t *testing.T) {
	r, err := NewRibbon([]Band{
		{X: 1, Lo: 2, Hi: 4},
		{X: 2, Lo: 6, Hi: 6},
	})
	require.NoError(t, err)
	r.Color = color.NRGBA{R: 0xff, A: 0x40}
	r.LineStyle = draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)}

	p := plot.New()
	p.Add(r)
	p.Legend.Add("band", r)

	c, err := draw.NewFormattedCanvas(4*vg.Inch, 3*vg.Inch, "png")
	require.NoError(t, err)
	p.Draw(draw.New(c))

	var buf bytes.Buffer
	_, err = c.WriteTo(&buf)
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}
