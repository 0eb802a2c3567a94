package estimator

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"

	"rppg_backend/internal/feature/heartrate/domain"
	"rppg_backend/internal/feature/heartrate/domain/entity"
	"rppg_backend/internal/platform/dsp"
)

// flatTolerance bounds the residual, relative to the raw amplitude, under which
// a detrended signal is treated as a straight line.
const flatTolerance = 1e-12

// Pipeline is an immutable heart-rate estimator.
type Pipeline struct {
	cfg Config
}

// New builds a Pipeline from cfg.
func New(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg}, nil
}

// NewDefault builds a Pipeline with DefaultConfig.
func NewDefault() *Pipeline {
	return &Pipeline{cfg: DefaultConfig()}
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Estimate runs the full analysis over sig.
//
// Failures are *domain.AnalysisError values whose kind is one of
// domain.ErrInsufficientData, domain.ErrNoValidPeak or domain.ErrComputation.
// Panics raised by the numeric stages are reported as domain.ErrComputation.
func (p *Pipeline) Estimate(ctx context.Context, sig entity.Signal) (est *entity.Estimate, err error) {
	defer func() {
		if r := recover(); r != nil {
			est = nil
			err = domain.NewAnalysisError(domain.ErrComputation, "numeric failure: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, domain.NewAnalysisError(domain.ErrComputation, "analysis aborted: %v", err)
	}

	detrended, err := p.condition(sig)
	if err != nil {
		return nil, err
	}

	coeffs, err := dsp.ButterworthBandpass(p.cfg.Order, p.cfg.LowCutHz, p.cfg.HighCutHz, sig.SampleRate)
	if err != nil {
		return nil, domain.NewAnalysisError(domain.ErrComputation, "band-pass design failed: %v", err)
	}

	if err := p.checkContent(sig, detrended); err != nil {
		return nil, err
	}

	filtered, err := p.filter(coeffs, detrended)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, domain.NewAnalysisError(domain.ErrComputation, "analysis aborted: %v", err)
	}

	spectrum := p.spectrum(filtered, sig.SampleRate)
	peakHz, err := p.pickPeak(spectrum)
	if err != nil {
		return nil, err
	}

	bpm := peakHz * 60
	if math.IsNaN(bpm) || math.IsInf(bpm, 0) {
		return nil, domain.NewAnalysisError(domain.ErrComputation, "non-finite heart rate")
	}

	return &entity.Estimate{
		BPM:      bpm,
		PeakHz:   peakHz,
		Filtered: filtered,
		Spectrum: spectrum,
	}, nil
}

// condition validates the input and removes its linear trend.
// The sample rate is checked first, then the length, then the sample values.
func (p *Pipeline) condition(sig entity.Signal) ([]float64, error) {
	fs := sig.SampleRate
	if math.IsNaN(fs) || math.IsInf(fs, 0) || fs <= 0 {
		return nil, domain.NewAnalysisError(domain.ErrComputation, "sample rate must be positive and finite, got %v", fs)
	}

	required := fs * p.cfg.MinDuration
	if float64(sig.Len()) < required {
		return nil, domain.NewAnalysisError(domain.ErrInsufficientData,
			"need at least %.0f samples (%.1f s at %.1f Hz), got %d", math.Ceil(required), p.cfg.MinDuration, fs, sig.Len())
	}

	for i, v := range sig.Samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, domain.NewAnalysisError(domain.ErrComputation, "sample %d is not finite", i)
		}
	}

	return dsp.Detrend(sig.Samples), nil
}

// checkContent rejects signals that carry no cardiac component.
// The strongest in-band bin of the detrended spectrum must stand on its own:
// when it sits on a band edge below a stronger out-of-band neighbour, the band
// only holds the tail of content outside it.
func (p *Pipeline) checkContent(sig entity.Signal, detrended []float64) error {
	scale := math.Max(1, floats.Norm(sig.Samples, math.Inf(1)))
	if floats.Norm(detrended, math.Inf(1)) <= flatTolerance*scale {
		return domain.NewAnalysisError(domain.ErrNoValidPeak, "signal has no variation after detrending")
	}

	freqs, power := dsp.Periodogram(detrended, sig.SampleRate)
	best := p.strongestInBand(freqs, power)
	if best < 0 {
		// pickPeak reports the empty band.
		return nil
	}

	if power[best] <= flatTolerance*flatTolerance*floats.Max(power) {
		return domain.NewAnalysisError(domain.ErrNoValidPeak, "cardiac band holds no power")
	}
	for _, k := range []int{best - 1, best + 1} {
		if k < 0 || k >= len(power) || p.inBand(freqs[k]) {
			continue
		}
		if power[k] > power[best] {
			return domain.NewAnalysisError(domain.ErrNoValidPeak,
				"strongest in-band bin %.3f Hz is the tail of stronger content at %.3f Hz", freqs[best], freqs[k])
		}
	}
	return nil
}

func (p *Pipeline) filter(coeffs *dsp.Coefficients, x []float64) ([]float64, error) {
	y := coeffs.Filter(x)
	if floats.HasNaN(y) {
		return nil, domain.NewAnalysisError(domain.ErrComputation, "filter output contains NaN")
	}
	for _, v := range y {
		if math.IsInf(v, 0) {
			return nil, domain.NewAnalysisError(domain.ErrComputation, "filter output diverged")
		}
	}
	return y, nil
}

func (p *Pipeline) spectrum(x []float64, fs float64) entity.Spectrum {
	freqs, power := dsp.Periodogram(x, fs)
	return entity.Spectrum{Frequencies: freqs, Power: power}
}

// pickPeak returns the frequency of the strongest in-band bin.
// Ties go to the lowest frequency.
func (p *Pipeline) pickPeak(s entity.Spectrum) (float64, error) {
	best := p.strongestInBand(s.Frequencies, s.Power)
	if best < 0 {
		return 0, domain.NewAnalysisError(domain.ErrNoValidPeak, "no spectral bins inside [%.2f, %.2f] Hz", p.cfg.LowCutHz, p.cfg.HighCutHz)
	}
	if math.IsNaN(s.Power[best]) {
		return 0, domain.NewAnalysisError(domain.ErrComputation, "spectrum contains NaN")
	}
	return s.Frequencies[best], nil
}

// strongestInBand returns the index of the first in-band maximum, or -1.
func (p *Pipeline) strongestInBand(freqs, power []float64) int {
	best := -1
	for k, f := range freqs {
		if !p.inBand(f) {
			continue
		}
		if best < 0 || power[k] > power[best] {
			best = k
		}
	}
	return best
}

func (p *Pipeline) inBand(f float64) bool {
	return f >= p.cfg.LowCutHz && f <= p.cfg.HighCutHz
}
