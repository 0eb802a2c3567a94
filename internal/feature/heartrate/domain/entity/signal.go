// Package entity defines the transient data model of the heart-rate feature.
package entity

// Signal is a batch of green-channel intensities, one per video frame.
type Signal struct {
	Samples    []float64 // Mean green intensity per frame
	SampleRate float64   // Frames per second
}

// Len returns the number of samples.
func (s Signal) Len() int { return len(s.Samples) }

// Duration returns the covered time span in seconds.
// It is zero when the sample rate is not positive.
func (s Signal) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(len(s.Samples)) / s.SampleRate
}
