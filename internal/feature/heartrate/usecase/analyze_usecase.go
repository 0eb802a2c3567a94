package usecase

import (
	"context"
	"fmt"

	"rppg_backend/internal/feature/heartrate/domain"
	"rppg_backend/internal/feature/heartrate/domain/entity"
)

// Estimator turns a signal into a heart-rate estimate.
// Interfaces are defined on the consumer side, following Go convention.
type Estimator interface {
	Estimate(ctx context.Context, sig entity.Signal) (*entity.Estimate, error)
}

// DiagnosticsRenderer draws the raw signal, filtered signal and spectrum as a PNG.
type DiagnosticsRenderer interface {
	Render(ctx context.Context, raw []float64, est *entity.Estimate) ([]byte, error)
}

// analyzeUsecase resolves request defaults and dispatches on the output mode.
type analyzeUsecase struct {
	estimator   Estimator
	renderer    DiagnosticsRenderer
	defaultFs   float64
	defaultMode entity.Mode
}

// NewAnalyzeUsecase creates an analyzeUsecase.
// An empty defaultMode falls back to entity.ModeValue.
func NewAnalyzeUsecase(est Estimator, renderer DiagnosticsRenderer, defaultFs float64, defaultMode entity.Mode) *analyzeUsecase {
	if defaultMode == "" {
		defaultMode = entity.ModeValue
	}
	return &analyzeUsecase{
		estimator:   est,
		renderer:    renderer,
		defaultFs:   defaultFs,
		defaultMode: defaultMode,
	}
}

// Analyze estimates the heart rate of samples.
// A nil fs selects the default sample rate and an empty mode selects the default mode.
// In image mode the returned Analysis also carries the rendered PNG.
func (u *analyzeUsecase) Analyze(ctx context.Context, samples []float64, fs *float64, mode entity.Mode) (*entity.Analysis, error) {
	if mode == "" {
		mode = u.defaultMode
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	rate := u.defaultFs
	if fs != nil {
		rate = *fs
	}

	est, err := u.estimator.Estimate(ctx, entity.Signal{Samples: samples, SampleRate: rate})
	if err != nil {
		return nil, err
	}

	analysis := &entity.Analysis{Mode: mode, Estimate: est}
	if mode == entity.ModeImage {
		if u.renderer == nil {
			return nil, domain.NewAnalysisError(domain.ErrComputation, "diagnostics renderer is not configured")
		}
		img, err := u.renderer.Render(ctx, samples, est)
		if err != nil {
			return nil, domain.NewAnalysisError(domain.ErrComputation, "render diagnostics: %v", err)
		}
		analysis.Image = img
	}
	return analysis, nil
}
