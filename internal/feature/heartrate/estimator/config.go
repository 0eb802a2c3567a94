// Package estimator extracts a heart rate from a green-channel rPPG trace.
//
// A Pipeline runs four stages in order: conditioning (validation and linear
// detrend), band-limiting (Butterworth band-pass), spectral estimation
// (periodogram) and peak selection. Pipelines are immutable and safe for
// concurrent use.
package estimator

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned by New when the configuration cannot describe a usable pipeline.
var ErrInvalidConfig = errors.New("invalid estimator config")

const (
	// CardiacLowHz is the lower edge of the cardiac band (45 BPM).
	CardiacLowHz = 0.75
	// CardiacHighHz is the upper edge of the cardiac band (180 BPM).
	CardiacHighHz = 3.0
	// DefaultOrder is the Butterworth prototype order.
	DefaultOrder = 4
	// DefaultSampleRate is the assumed camera frame rate in Hz.
	DefaultSampleRate = 30.0
	// DefaultMinDuration is the shortest accepted signal in seconds.
	DefaultMinDuration = 3.0
)

// Config parameterises a Pipeline.
type Config struct {
	LowCutHz          float64 // Lower band edge in Hz
	HighCutHz         float64 // Upper band edge in Hz
	Order             int     // Butterworth prototype order
	DefaultSampleRate float64 // Used by callers when a request carries no rate
	MinDuration       float64 // Minimum signal length in seconds
}

// DefaultConfig returns the standard cardiac-band configuration.
func DefaultConfig() Config {
	return Config{
		LowCutHz:          CardiacLowHz,
		HighCutHz:         CardiacHighHz,
		Order:             DefaultOrder,
		DefaultSampleRate: DefaultSampleRate,
		MinDuration:       DefaultMinDuration,
	}
}

// Validate checks that c describes a usable pipeline.
func (c Config) Validate() error {
	switch {
	case !positive(c.LowCutHz):
		return fmt.Errorf("%w: low cutoff must be positive, got %v", ErrInvalidConfig, c.LowCutHz)
	case !positive(c.HighCutHz) || c.HighCutHz <= c.LowCutHz:
		return fmt.Errorf("%w: high cutoff must exceed low cutoff, got [%v, %v]", ErrInvalidConfig, c.LowCutHz, c.HighCutHz)
	case c.Order < 1:
		return fmt.Errorf("%w: order must be at least 1, got %d", ErrInvalidConfig, c.Order)
	case !positive(c.DefaultSampleRate):
		return fmt.Errorf("%w: default sample rate must be positive, got %v", ErrInvalidConfig, c.DefaultSampleRate)
	case !positive(c.MinDuration):
		return fmt.Errorf("%w: minimum duration must be positive, got %v", ErrInvalidConfig, c.MinDuration)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
