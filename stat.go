package facetplot

import (
	"github.com/vdobler/facetplot/stat"
)

// Stat is the interface of statistical transform.
//
// A statistical transform reduces the projected points of one line
// to the summaries which are drawn.
type Stat interface {
	// Name returns the name of this statistic.
	Name() string

	// Apply this statistic to the points (xs[i], ys[i]) of one line.
	Apply(xs, ys []float64) ([]stat.Summary, error)

	// Info returns the StatInfo which describes how this
	// statistic can be used.
	Info() StatInfo
}

// StatInfo contains information about how a stat can be used.
type StatInfo struct {
	// NeededAes are the aestetics which must be mapped.
	NeededAes []string

	// OptionalAes are used if mapped.
	OptionalAes []string
}

// -------------------------------------------------------------------------
// StatMeanSD

// StatMeanSD groups the points by x and reduces the y-values of each
// group to their mean and population standard deviation. The resulting
// summaries are sorted by x and each x occurs once.
type StatMeanSD struct{}

var _ Stat = StatMeanSD{}

func (StatMeanSD) Name() string { return "StatMeanSD" }

func (StatMeanSD) Info() StatInfo {
	return StatInfo{
		NeededAes:   []string{"x", "y"},
		OptionalAes: []string{"group"},
	}
}

func (StatMeanSD) Apply(xs, ys []float64) ([]stat.Summary, error) {
	xset := NewFloatSet()
	groups := make(map[float64][]float64)
	for i, x := range xs {
		xset.Add(x)
		groups[x] = append(groups[x], ys[i])
	}

	elems := xset.Elements()
	result := make([]stat.Summary, 0, len(elems))
	for _, x := range elems {
		s, err := stat.Summarize(x, groups[x])
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}
