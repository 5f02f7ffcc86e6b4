package facetplot

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotutil"
	"gopkg.in/yaml.v3"
)

func TestThemeYAMLDefaults(t *testing.T) {
	var th Theme
	err := yaml.Unmarshal([]byte("palette: Dark2\nribbonAlpha: 0.5\n"), &th)
	require.NoError(t, err)

	assert.Equal(t, "Dark2", th.Palette)
	assert.Equal(t, 0.5, th.RibbonAlpha)
	assert.Equal(t, DefaultTheme.LineWidth, th.LineWidth)
	assert.Equal(t, DefaultTheme.LegendTop, th.LegendTop)
}

func TestThemeLineColors(t *testing.T) {
	th := DefaultTheme
	cols := th.LineColors(2)
	assert.Equal(t, []color.Color{plotutil.Color(0), plotutil.Color(1)}, cols)

	th.Colors = []string{"red", "#0000ff"}
	cols = th.LineColors(3)
	assert.Equal(t, color.NRGBA{0xff, 0, 0, 0xff}, cols[0])
	assert.Equal(t, color.NRGBA{0, 0, 0xff, 0xff}, cols[1])
	assert.Equal(t, cols[0], cols[2])

	th = DefaultTheme
	th.Palette = "Set1"
	cols = th.LineColors(2)
	require.Len(t, cols, 2)
	assert.NotNil(t, cols[0])
	assert.NotEqual(t, cols[0], cols[1])

	th.Palette = "NoSuchPalette"
	cols = th.LineColors(1)
	assert.Equal(t, plotutil.Color(0), cols[0])
}

func TestThemeLineType(t *testing.T) {
	th := DefaultTheme
	assert.Equal(t, SolidLine, th.LineType(5))
	th.LineTypes = []string{"solid", "dashed"}
	assert.Equal(t, DashedLine, th.LineType(3))
}
