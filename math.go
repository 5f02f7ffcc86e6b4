package facetplot

import "math"

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// expand widens [a,b] by frac of its width on both sides.
func expand(a, b, frac float64) (float64, float64) {
	d := frac * (b - a)
	return a - d, b + d
}

// widen turns a degenerate range into a usable one: ±1 around a on
// linear axes, one decade on each side on log axes.
func widen(a float64, log bool) (float64, float64) {
	if log {
		return a / 10, a * 10
	}
	return a - 1, a + 1
}
