package dsp

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Periodogram estimates the one-sided power spectral density of x sampled at fs.
//
// The sequence is mean-removed and transformed with a rectangular window.
// Power is scaled as a density, |X[k]|^2 / (fs*N), and doubled for every bin
// except DC and, for even N, Nyquist. Frequencies are k*fs/N for k = 0..N/2.
func Periodogram(x []float64, fs float64) (freqs, power []float64) {
	n := len(x)
	if n == 0 {
		return []float64{}, []float64{}
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, RemoveMean(x))

	freqs = make([]float64, len(coeffs))
	power = make([]float64, len(coeffs))
	scale := 1 / (fs * float64(n))
	for k, c := range coeffs {
		freqs[k] = float64(k) * fs / float64(n)
		m := cmplx.Abs(c)
		p := m * m * scale
		if k > 0 && !(n%2 == 0 && k == n/2) {
			p *= 2
		}
		power[k] = p
	}
	return freqs, power
}
