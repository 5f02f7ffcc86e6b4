package facetplot

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/plot/vg"
)

func TestString2Color(t *testing.T) {
	tests := []struct {
		s string
		c color.Color
	}{
		{"#1256ab", color.NRGBA{0x12, 0x56, 0xab, 0xff}},
		{"#1256abcd", color.NRGBA{0x12, 0x56, 0xab, 0xcd}},
		{"red", color.NRGBA{0xff, 0x00, 0x00, 0xff}},
		{"green", color.NRGBA{0x00, 0xff, 0x00, 0xff}},
		{"blue", color.NRGBA{0x00, 0x00, 0xff, 0xff}},
		{"nonsens", color.NRGBA{0xaa, 0x66, 0x77, 0x7f}},
	}

	for i, tc := range tests {
		got := String2Color(tc.s)
		rg, gg, bg, ag := got.RGBA()
		rw, gw, bw, aw := tc.c.RGBA()
		if rg != rw || gg != gw || bg != bw || ag != aw {
			t.Errorf("%d %q: got %04X, %04X, %04X, %04X want %04X, %04X, %04X, %04X",
				i, tc.s, rg, gg, bg, ag, rw, gw, bw, aw)
		}
	}
}

func TestSetAlpha(t *testing.T) {
	c := SetAlpha(color.NRGBA{0x12, 0x34, 0x56, 0xff}, 0.25)
	assert.Equal(t, color.NRGBA{0x12, 0x34, 0x56, 0x40}, c)

	c = SetAlpha(color.Black, 2)
	assert.Equal(t, color.NRGBA{0, 0, 0, 0xff}, c)
}

func TestLineType(t *testing.T) {
	assert.Equal(t, SolidLine, String2LineType(""))
	assert.Equal(t, DashedLine, String2LineType("dashed"))
	assert.Equal(t, DottedLine, String2LineType("3"))
	assert.Equal(t, BlankLine, String2LineType("wiggly"))

	assert.Nil(t, SolidLine.Dashes(vg.Points(2)))
	assert.Equal(t, []vg.Length{8, 4}, DashedLine.Dashes(vg.Points(2)))
}
