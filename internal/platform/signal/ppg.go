// Package signal generates synthetic green-channel PPG traces.
// The waveform is illustrative, not physiological: a systolic bump, a smaller
// diastolic bump, a linear illumination drift and cheap deterministic noise.
package signal

import "math"

// PPGOptions configures a PPGSim.
type PPGOptions struct {
	SampleRate float64 // Frames per second
	BPM        float64 // Pulse rate
	Baseline   float64 // Mean pixel intensity
	Amplitude  float64 // Pulse amplitude in intensity units
	Drift      float64 // Intensity added per sample
	Noise      float64 // Peak noise amplitude
}

// DefaultPPGOptions returns a 72 BPM trace at 30 fps without drift or noise.
func DefaultPPGOptions() PPGOptions {
	return PPGOptions{
		SampleRate: 30,
		BPM:        72,
		Baseline:   120,
		Amplitude:  1,
	}
}

// PPGSim produces one sample per call to Next.
type PPGSim struct {
	opts  PPGOptions
	phase float64
	n     int
}

// NewPPGSim returns a simulator starting at phase zero.
func NewPPGSim(opts PPGOptions) *PPGSim {
	return &PPGSim{opts: opts}
}

// Next returns the next sample and advances time by one frame.
func (s *PPGSim) Next() float64 {
	t := s.phase

	pulse := gauss(t, 0.25, 0.08) + 0.35*gauss(t, 0.55, 0.1)
	noise := s.opts.Noise * (2*fract(math.Sin(float64(s.n)*12.9898)*43758.5453) - 1)
	v := s.opts.Baseline + s.opts.Amplitude*pulse + s.opts.Drift*float64(s.n) + noise

	s.n++
	if s.opts.SampleRate > 0 {
		s.phase += s.opts.BPM / 60 / s.opts.SampleRate
		s.phase -= math.Floor(s.phase)
	}
	return v
}

// Generate returns the next n samples.
func (s *PPGSim) Generate(n int) []float64 {
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Next()
	}
	return out
}

// Seconds is shorthand for Generate over the given duration.
func (s *PPGSim) Seconds(sec float64) []float64 {
	return s.Generate(int(math.Round(sec * s.opts.SampleRate)))
}

// gauss is a Gaussian bump on the unit circle, so the pulse wraps cleanly between cycles.
func gauss(x, mu, sigma float64) float64 {
	d := math.Abs(x - mu)
	d = math.Min(d, 1-d)
	z := d / sigma
	return math.Exp(-0.5 * z * z)
}

func fract(x float64) float64 { return x - math.Floor(x) }
