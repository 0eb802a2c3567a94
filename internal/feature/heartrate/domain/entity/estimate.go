package entity

// Spectrum is a one-sided power spectrum with ascending, non-negative frequencies in Hz.
type Spectrum struct {
	Frequencies []float64 `json:"frequencies"`
	Power       []float64 `json:"power"`
}

// Estimate is the outcome of a successful analysis.
type Estimate struct {
	BPM      float64   `json:"bpm"`
	PeakHz   float64   `json:"peak_hz"`
	Filtered []float64 `json:"filtered"`
	Spectrum Spectrum  `json:"spectrum"`
}
