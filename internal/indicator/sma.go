package indicator

import (
	"errors"

	"github.com/guttosm/quotepulse/internal/domain/models"
)

// ErrInvalidWindow is returned for non-positive window sizes.
var ErrInvalidWindow = errors.New("moving average window must be positive")

// RollingMean computes the trailing simple moving average of values over a
// window of n samples. The result has one point per input; point i is valid
// iff i >= n-1 and holds the mean of values[i-n+1..i].
//
// The window slides with a running sum (Neumaier-compensated), so each point
// costs O(1) regardless of n.
func RollingMean(values []float64, n int) ([]models.Point, error) {
	if n <= 0 {
		return nil, ErrInvalidWindow
	}
	out := make([]models.Point, len(values))
	var acc window
	for i, v := range values {
		acc.add(v)
		if i >= n {
			acc.add(-values[i-n])
		}
		if i >= n-1 {
			out[i] = models.Some(acc.sum() / float64(n))
		}
	}
	return out, nil
}

// SMA returns the mean of the trailing n values, or an invalid point when
// fewer than n values exist.
func SMA(values []float64, n int) models.Point {
	if n <= 0 || len(values) < n {
		return models.Point{}
	}
	var acc window
	for _, v := range values[len(values)-n:] {
		acc.add(v)
	}
	return models.Some(acc.sum() / float64(n))
}

// window is a compensated running sum.
type window struct {
	s, c float64
}

func (w *window) add(v float64) {
	t := w.s + v
	if abs(w.s) >= abs(v) {
		w.c += (w.s - t) + v
	} else {
		w.c += (v - t) + w.s
	}
	w.s = t
}

func (w *window) sum() float64 { return w.s + w.c }

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
