// Package stat contains the numerical reductions used by facetplot.
package stat

import (
	"errors"
	"fmt"

	gstat "gonum.org/v1/gonum/stat"
)

// ErrEmptyGroup is returned when a group without any y-values is summarized.
var ErrEmptyGroup = errors.New("stat: empty group")

// Summary is the reduction of all y-values sharing one x-value.
type Summary struct {
	X    float64
	Mean float64
	SD   float64 // population standard deviation
	N    int
}

// Lo returns Mean-SD.
func (s Summary) Lo() float64 { return s.Mean - s.SD }

// Hi returns Mean+SD.
func (s Summary) Hi() float64 { return s.Mean + s.SD }

func (s Summary) String() string {
	return fmt.Sprintf("x=%g mean=%g sd=%g n=%d", s.X, s.Mean, s.SD, s.N)
}

// MeanSD computes the arithmetic mean and the population standard
// deviation (divisor N) of ys.
func MeanSD(ys []float64) (mean, sd float64, err error) {
	if len(ys) == 0 {
		return 0, 0, ErrEmptyGroup
	}
	if len(ys) == 1 {
		return ys[0], 0, nil
	}
	mean, sd = gstat.PopMeanStdDev(ys, nil)
	return mean, sd, nil
}

// Summarize reduces the y-values observed at x.
func Summarize(x float64, ys []float64) (Summary, error) {
	mean, sd, err := MeanSD(ys)
	if err != nil {
		return Summary{}, fmt.Errorf("x=%g: %w", x, err)
	}
	return Summary{X: x, Mean: mean, SD: sd, N: len(ys)}, nil
}
