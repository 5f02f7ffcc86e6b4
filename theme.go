package facetplot

import (
	"image/color"

	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"
)

// Theme controls the non-data appearance of a plot.
type Theme struct {
	// Palette names a ColorBrewer palette like "Set1" or "Dark2".
	// The empty string selects the gonum default colors.
	Palette string `yaml:"palette"`

	// Colors overrides Palette if non-empty. See String2Color.
	Colors []string `yaml:"colors"`

	// LineTypes are cycled through like the colors. See String2LineType.
	LineTypes []string `yaml:"lineTypes"`

	LineWidth   float64 `yaml:"lineWidth"`   // in points
	RibbonAlpha float64 `yaml:"ribbonAlpha"` // opacity of the ±SD band

	LegendTop  bool `yaml:"legendTop"`
	LegendLeft bool `yaml:"legendLeft"`

	// PadX and PadY are the gaps between panels in points.
	PadX float64 `yaml:"padX"`
	PadY float64 `yaml:"padY"`
}

var DefaultTheme = Theme{
	LineWidth:   1.5,
	RibbonAlpha: 0.25,
	LegendTop:   true,
	LegendLeft:  false,
	PadX:        8,
	PadY:        8,
}

// UnmarshalYAML fills unset fields from DefaultTheme.
func (t *Theme) UnmarshalYAML(value *yaml.Node) error {
	type plain Theme
	th := plain(DefaultTheme)
	if err := value.Decode(&th); err != nil {
		return err
	}
	*t = Theme(th)
	return nil
}

// LineColors returns the colors of n lines.
func (t Theme) LineColors(n int) []color.Color {
	cols := make([]color.Color, n)
	switch {
	case len(t.Colors) > 0:
		for i := range cols {
			cols[i] = String2Color(t.Colors[i%len(t.Colors)])
		}
		return cols
	case t.Palette != "":
		size := n
		if size < 3 {
			size = 3
		}
		p, err := brewer.GetPalette(brewer.TypeAny, t.Palette, size)
		if err == nil {
			copy(cols, p.Colors())
			return cols
		}
		logger.Sugar().Warnf("palette %q with %d colors: %v, using default colors", t.Palette, size, err)
	}
	for i := range cols {
		cols[i] = plotutil.Color(i)
	}
	return cols
}

// LineType returns the line type of line i.
func (t Theme) LineType(i int) LineType {
	if len(t.LineTypes) == 0 {
		return SolidLine
	}
	return String2LineType(t.LineTypes[i%len(t.LineTypes)])
}

func (t Theme) lineWidth() vg.Length {
	if t.LineWidth <= 0 {
		return vg.Points(DefaultTheme.LineWidth)
	}
	return vg.Points(t.LineWidth)
}
