package facetplot

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/plot"
)

// ErrNonPositive is returned if a non-positive value has to be placed
// on a log scale.
var ErrNonPositive = errors.New("non-positive value on log scale")

// -------------------------------------------------------------------------
// Scale Transformations

// ScaleTransform describes how data values are mapped onto an axis.
type ScaleTransform struct {
	Name    string
	Trans   func(float64) float64
	Inverse func(float64) float64

	// Normalizer and Ticker configure the gonum axis.
	Normalizer plot.Normalizer
	Ticker     plot.Ticker
}

var Log10Scale = ScaleTransform{
	Name:       "log",
	Trans:      math.Log10,
	Inverse:    func(y float64) float64 { return math.Pow(10, y) },
	Normalizer: plot.LogScale{},
	Ticker:     plot.LogTicks{Prec: -1},
}

var IdentityScale = ScaleTransform{
	Name:       "linear",
	Trans:      func(x float64) float64 { return x },
	Inverse:    func(y float64) float64 { return y },
	Normalizer: plot.LinearScale{},
	Ticker:     plot.DefaultTicks{},
}

// ParseScale returns the transform called name. The empty string is
// the linear scale.
func ParseScale(name string) (*ScaleTransform, error) {
	switch name {
	case "", "linear", "identity":
		return &IdentityScale, nil
	case "log", "log10":
		return &Log10Scale, nil
	}
	return nil, fmt.Errorf("unknown scale %q", name)
}

// Log reports whether t is a logarithmic transform.
func (t *ScaleTransform) Log() bool { return t != nil && t.Name == Log10Scale.Name }

// -------------------------------------------------------------------------
// Scale

// Scale is a position scale (x or y). One scale may be shared by
// several panels: all panels of a column share their x scale, all
// panels of a row share their y scale.
type Scale struct {
	Aesthetic string // "x" or "y"

	DomainMin float64
	DomainMax float64

	// MinPositive is the smallest positive value the scale was
	// trained on.
	MinPositive float64

	Transform *ScaleTransform
}

// NewScale sets up a new untrained scale for the given aesthetic. A
// nil transform is the identity.
func NewScale(aesthetic string, t *ScaleTransform) *Scale {
	if t == nil {
		t = &IdentityScale
	}
	return &Scale{
		Aesthetic:   aesthetic,
		DomainMin:   math.Inf(+1),
		DomainMax:   math.Inf(-1),
		MinPositive: math.Inf(+1),
		Transform:   t,
	}
}

// Trained reports whether the scale has seen any value.
func (s *Scale) Trained() bool { return s.DomainMin <= s.DomainMax }

// Train updates the domain of s with xs. Non-positive values on a log
// scale are an error.
func (s *Scale) Train(xs ...float64) error {
	for _, x := range xs {
		if !finite(x) {
			continue
		}
		if s.Transform.Log() && x <= 0 {
			return fmt.Errorf("%w: %s=%g", ErrNonPositive, s.Aesthetic, x)
		}
		s.update(x)
	}
	return nil
}

// TrainBand updates the domain of s with the edges of a ±SD band. On a
// log scale non-positive edges are ignored, see Clamp.
func (s *Scale) TrainBand(lo, hi float64) {
	for _, x := range [2]float64{lo, hi} {
		if !finite(x) || (s.Transform.Log() && x <= 0) {
			continue
		}
		s.update(x)
	}
}

func (s *Scale) update(x float64) {
	s.DomainMin = math.Min(s.DomainMin, x)
	s.DomainMax = math.Max(s.DomainMax, x)
	if x > 0 {
		s.MinPositive = math.Min(s.MinPositive, x)
	}
}

// Clamp maps values which cannot be shown on a log scale to the
// smallest positive value of the domain. Linear scales return x.
func (s *Scale) Clamp(x float64) float64 {
	if !s.Transform.Log() || x > 0 {
		return x
	}
	if math.IsInf(s.MinPositive, 1) {
		return 1
	}
	return s.MinPositive
}

// Limits returns the axis range: the domain expanded by 5% on both
// sides in transformed space. Degenerate domains are widened first.
func (s *Scale) Limits() (min, max float64) {
	log := s.Transform.Log()
	if !s.Trained() {
		if log {
			return 1, 10
		}
		return 0, 1
	}
	min, max = s.DomainMin, s.DomainMax
	if min == max {
		min, max = widen(min, log)
	}
	tmin, tmax := expand(s.Transform.Trans(min), s.Transform.Trans(max), 0.05)
	return s.Transform.Inverse(tmin), s.Transform.Inverse(tmax)
}

// Apply configures axis: range, normalizer and tick marker. Tick labels
// are blanked unless showLabels is set.
func (s *Scale) Apply(axis *plot.Axis, showLabels bool) {
	axis.Min, axis.Max = s.Limits()
	axis.Scale = s.Transform.Normalizer
	var ticker plot.Ticker = s.Transform.Ticker
	if !showLabels {
		ticker = blankTicks{ticker}
	}
	axis.Tick.Marker = ticker
}

func (s *Scale) String() string {
	min, max := s.Limits()
	return fmt.Sprintf("%s/%s [%g,%g] -> [%g,%g]",
		s.Aesthetic, s.Transform.Name, s.DomainMin, s.DomainMax, min, max)
}

// blankTicks keeps the tick positions of a Ticker but drops its labels.
type blankTicks struct {
	plot.Ticker
}

func (b blankTicks) Ticks(min, max float64) []plot.Tick {
	ticks := b.Ticker.Ticks(min, max)
	for i := range ticks {
		ticks[i].Label = ""
	}
	return ticks
}
