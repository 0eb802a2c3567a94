package dsp

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// ErrInvalidDesign is returned when filter parameters cannot produce a stable digital filter.
var ErrInvalidDesign = errors.New("invalid filter design")

// bilinearRate is the sample rate used for the normalised digital design.
// Cutoffs are expressed as fractions of Nyquist, so a rate of 2 puts Nyquist at 1.
const bilinearRate = 2.0

// Coefficients holds a digital filter transfer function
//
//	H(z) = (B[0] + B[1]z^-1 + ... ) / (A[0] + A[1]z^-1 + ... )
//
// with A[0] normalised to 1.
type Coefficients struct {
	B []float64
	A []float64
}

// ButterworthBandpass designs a digital Butterworth band-pass filter.
//
// order is the order of the low-pass prototype, so the resulting transfer
// function has degree 2*order. lowHz and highHz are the -3 dB edges and are
// normalised against the Nyquist frequency fs/2; both must land strictly
// inside (0, 1) and lowHz must be below highHz.
//
// The design follows the classical route: analog prototype poles, pre-warped
// low-pass to band-pass transform, bilinear transform, then expansion of the
// zeros and poles into polynomial coefficients.
func ButterworthBandpass(order int, lowHz, highHz, fs float64) (*Coefficients, error) {
	if order < 1 {
		return nil, fmt.Errorf("%w: order must be positive, got %d", ErrInvalidDesign, order)
	}
	if math.IsNaN(fs) || math.IsInf(fs, 0) || fs <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive and finite, got %v", ErrInvalidDesign, fs)
	}

	nyq := 0.5 * fs
	low := lowHz / nyq
	high := highHz / nyq
	if !(low > 0 && low < 1) || !(high > 0 && high < 1) {
		return nil, fmt.Errorf("%w: normalised cutoffs must lie in (0, 1), got [%g, %g] at fs=%g",
			ErrInvalidDesign, low, high, fs)
	}
	if low >= high {
		return nil, fmt.Errorf("%w: low cutoff %g Hz must be below high cutoff %g Hz", ErrInvalidDesign, lowHz, highHz)
	}

	prototype := butterworthPoles(order)

	// Pre-warp the edges so the bilinear transform maps them back exactly.
	w1 := 2 * bilinearRate * math.Tan(math.Pi*low/bilinearRate)
	w2 := 2 * bilinearRate * math.Tan(math.Pi*high/bilinearRate)
	bw := w2 - w1
	wo := math.Sqrt(w1 * w2)

	// Low-pass to band-pass: every prototype pole splits into a conjugate-ish pair,
	// and `order` zeros appear at the origin.
	poles := make([]complex128, 0, 2*order)
	half := make([]complex128, order)
	for i, p := range prototype {
		half[i] = p * complex(bw/2, 0)
	}
	for _, p := range half {
		poles = append(poles, p+cmplx.Sqrt(p*p-complex(wo*wo, 0)))
	}
	for _, p := range half {
		poles = append(poles, p-cmplx.Sqrt(p*p-complex(wo*wo, 0)))
	}
	zeros := make([]complex128, order)
	gain := math.Pow(bw, float64(order))

	// Bilinear transform.
	fs2 := complex(2*bilinearRate, 0)
	num := complex(1, 0)
	den := complex(1, 0)
	zz := make([]complex128, 0, 2*order)
	for _, z := range zeros {
		num *= fs2 - z
		zz = append(zz, (fs2+z)/(fs2-z))
	}
	pz := make([]complex128, 0, 2*order)
	for _, p := range poles {
		den *= fs2 - p
		pz = append(pz, (fs2+p)/(fs2-p))
	}
	// Zeros at infinity land on Nyquist.
	for len(zz) < len(pz) {
		zz = append(zz, complex(-1, 0))
	}
	gain *= real(num / den)

	b := realParts(poly(zz))
	a := realParts(poly(pz))
	for i := range b {
		b[i] *= gain
	}

	return newCoefficients(b, a)
}

// butterworthPoles returns the left-half-plane poles of the unit-cutoff analog prototype.
func butterworthPoles(order int) []complex128 {
	poles := make([]complex128, order)
	for i := 0; i < order; i++ {
		m := float64(-order + 1 + 2*i)
		poles[i] = -cmplx.Exp(complex(0, math.Pi*m/float64(2*order)))
	}
	return poles
}

// poly expands the product of (x - r) over roots, highest power first.
func poly(roots []complex128) []complex128 {
	c := make([]complex128, 1, len(roots)+1)
	c[0] = 1
	for _, r := range roots {
		c = append(c, 0)
		for i := len(c) - 1; i > 0; i-- {
			c[i] -= r * c[i-1]
		}
	}
	return c
}

func realParts(c []complex128) []float64 {
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = real(v)
	}
	return out
}

// newCoefficients pads b and a to the same length and normalises a[0] to 1.
func newCoefficients(b, a []float64) (*Coefficients, error) {
	if len(a) == 0 || a[0] == 0 {
		return nil, fmt.Errorf("%w: leading denominator coefficient is zero", ErrInvalidDesign)
	}
	n := max(len(a), len(b))
	nb := make([]float64, n)
	na := make([]float64, n)
	copy(nb, b)
	copy(na, a)
	if a0 := na[0]; a0 != 1 {
		for i := range na {
			na[i] /= a0
			nb[i] /= a0
		}
	}
	for _, v := range append(append([]float64{}, nb...), na...) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite coefficient", ErrInvalidDesign)
		}
	}
	return &Coefficients{B: nb, A: na}, nil
}

// Response evaluates the frequency response at the normalised angular
// frequency omega (radians per sample, 0 to pi).
func (c *Coefficients) Response(omega float64) complex128 {
	zinv := cmplx.Exp(complex(0, -omega))
	var num, den complex128
	zk := complex(1, 0)
	for i := range c.B {
		num += complex(c.B[i], 0) * zk
		den += complex(c.A[i], 0) * zk
		zk *= zinv
	}
	return num / den
}
