package dsp_test

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rppg_backend/internal/platform/dsp"
)

func sine(n int, fs, hz, amp float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*hz*float64(i)/fs)
	}
	return out
}

func TestDetrend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []float64
		want  []float64
	}{
		{name: "empty", input: []float64{}, want: []float64{}},
		{name: "single sample", input: []float64{42}, want: []float64{0}},
		{name: "pure line", input: []float64{1, 3, 5, 7, 9}, want: []float64{0, 0, 0, 0, 0}},
		{name: "constant", input: []float64{4, 4, 4, 4}, want: []float64{0, 0, 0, 0}},
		{name: "symmetric bump", input: []float64{0, 1, 0}, want: []float64{-1.0 / 3, 2.0 / 3, -1.0 / 3}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := dsp.Detrend(tt.input)
			require.Len(t, got, len(tt.want))
			assert.InDeltaSlice(t, tt.want, got, 1e-12)
		})
	}
}

func TestDetrend_RemovesRampFromSignal(t *testing.T) {
	t.Parallel()

	base := sine(300, 30, 1.5, 1)
	drifted := make([]float64, len(base))
	for i, v := range base {
		drifted[i] = v + 250 + 0.4*float64(i)
	}

	assert.InDeltaSlice(t, dsp.Detrend(base), dsp.Detrend(drifted), 1e-9)

	var sum float64
	for _, v := range dsp.Detrend(drifted) {
		sum += v
	}
	assert.InDelta(t, 0, sum/float64(len(drifted)), 1e-9)
}

func TestButterworthBandpass_Shape(t *testing.T) {
	t.Parallel()

	const (
		fs   = 30.0
		low  = 0.75
		high = 3.0
	)
	c, err := dsp.ButterworthBandpass(4, low, high, fs)
	require.NoError(t, err)

	assert.Len(t, c.B, 9)
	assert.Len(t, c.A, 9)
	assert.Equal(t, 1.0, c.A[0])

	omega := func(hz float64) float64 { return 2 * math.Pi * hz / fs }
	gain := func(hz float64) float64 { return cmplx.Abs(c.Response(omega(hz))) }

	assert.InDelta(t, 1/math.Sqrt2, gain(low), 1e-6, "low edge should sit at -3 dB")
	assert.InDelta(t, 1/math.Sqrt2, gain(high), 1e-6, "high edge should sit at -3 dB")
	assert.InDelta(t, 0, gain(0), 1e-9, "DC must be rejected")
	assert.InDelta(t, 0, gain(fs/2), 1e-9, "Nyquist must be rejected")

	// The Butterworth band-pass has unit gain at the centre of the warped band.
	w1 := 4 * math.Tan(math.Pi*(low/(fs/2))/2)
	w2 := 4 * math.Tan(math.Pi*(high/(fs/2))/2)
	center := 2 * math.Atan(math.Sqrt(w1*w2)/4)
	assert.InDelta(t, 1, cmplx.Abs(c.Response(center)), 1e-6)

	assert.Less(t, gain(0.1), 0.01)
	assert.Less(t, gain(10), 0.01)
}

func TestButterworthBandpass_InvalidDesign(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		order     int
		low, high float64
		fs        float64
	}{
		{name: "zero order", order: 0, low: 0.75, high: 3, fs: 30},
		{name: "zero sample rate", order: 4, low: 0.75, high: 3, fs: 0},
		{name: "negative sample rate", order: 4, low: 0.75, high: 3, fs: -30},
		{name: "nan sample rate", order: 4, low: 0.75, high: 3, fs: math.NaN()},
		{name: "high cutoff at nyquist", order: 4, low: 0.75, high: 3, fs: 6},
		{name: "high cutoff above nyquist", order: 4, low: 0.75, high: 3, fs: 5},
		{name: "inverted band", order: 4, low: 3, high: 0.75, fs: 30},
		{name: "zero low cutoff", order: 4, low: 0, high: 3, fs: 30},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := dsp.ButterworthBandpass(tt.order, tt.low, tt.high, tt.fs)
			assert.Nil(t, c)
			assert.True(t, errors.Is(err, dsp.ErrInvalidDesign), "got %v", err)
		})
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	c, err := dsp.ButterworthBandpass(4, 0.75, 3.0, 30)
	require.NoError(t, err)

	t.Run("zeros stay zero", func(t *testing.T) {
		out := c.Filter(make([]float64, 50))
		assert.Equal(t, make([]float64, 50), out)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, c.Filter(nil))
	})

	t.Run("passband tone keeps its amplitude", func(t *testing.T) {
		out := c.Filter(sine(1800, 30, 1.5, 1))
		peak := 0.0
		for _, v := range out[900:] {
			peak = math.Max(peak, math.Abs(v))
		}
		assert.InDelta(t, cmplx.Abs(c.Response(2*math.Pi*1.5/30)), peak, 0.02)
	})

	t.Run("stopband tone is attenuated", func(t *testing.T) {
		out := c.Filter(sine(1800, 30, 8, 1))
		peak := 0.0
		for _, v := range out[900:] {
			peak = math.Max(peak, math.Abs(v))
		}
		assert.Less(t, peak, 0.01)
	})

	t.Run("first output is b0 times impulse", func(t *testing.T) {
		impulse := make([]float64, 10)
		impulse[0] = 1
		out := c.Filter(impulse)
		assert.InDelta(t, c.B[0], out[0], 1e-15)
	})
}

func TestPeriodogram(t *testing.T) {
	t.Parallel()

	const (
		fs = 30.0
		n  = 300
	)

	t.Run("frequency grid", func(t *testing.T) {
		freqs, power := dsp.Periodogram(make([]float64, n), fs)
		require.Len(t, freqs, n/2+1)
		require.Len(t, power, n/2+1)
		for k, f := range freqs {
			assert.InDelta(t, float64(k)*fs/n, f, 1e-12)
		}
	})

	t.Run("odd length", func(t *testing.T) {
		freqs, _ := dsp.Periodogram(make([]float64, 301), fs)
		assert.Len(t, freqs, 151)
	})

	t.Run("empty input", func(t *testing.T) {
		freqs, power := dsp.Periodogram(nil, fs)
		assert.Empty(t, freqs)
		assert.Empty(t, power)
	})

	t.Run("tone lands in its bin with density scaling", func(t *testing.T) {
		const amp = 2.0
		// 1.5 Hz at 30 Hz over 300 samples is exactly bin 15.
		freqs, power := dsp.Periodogram(sine(n, fs, 1.5, amp), fs)
		best := 0
		for k := range power {
			if power[k] > power[best] {
				best = k
			}
		}
		assert.Equal(t, 15, best)
		assert.InDelta(t, 1.5, freqs[best], 1e-12)
		assert.InDelta(t, amp*amp*n/(2*fs), power[best], 1e-9)
	})

	t.Run("constant input has no power", func(t *testing.T) {
		x := make([]float64, n)
		for i := range x {
			x[i] = 7
		}
		_, power := dsp.Periodogram(x, fs)
		for _, p := range power {
			assert.InDelta(t, 0, p, 1e-20)
		}
	})
}
