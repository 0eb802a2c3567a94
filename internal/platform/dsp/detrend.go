// Package dsp provides the signal-processing primitives used by the heart-rate
// estimator: linear detrending, Butterworth band-pass design, causal IIR
// filtering and periodogram estimation.
package dsp

import (
	"gonum.org/v1/gonum/stat"
)

// Detrend returns x with its least-squares straight line removed.
// The result has the same length as x and (up to rounding) zero mean.
// Inputs shorter than two samples have no slope to fit and are returned as zeros.
func Detrend(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) < 2 {
		return out
	}

	idx := make([]float64, len(x))
	for i := range idx {
		idx[i] = float64(i)
	}

	alpha, beta := stat.LinearRegression(idx, x, nil, false)
	for i, v := range x {
		out[i] = v - (alpha + beta*idx[i])
	}
	return out
}

// RemoveMean returns a copy of x with its arithmetic mean subtracted.
func RemoveMean(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}
	mean := stat.Mean(x, nil)
	for i, v := range x {
		out[i] = v - mean
	}
	return out
}
