package entity

// Mode selects what an analysis returns.
type Mode string

const (
	ModeValue Mode = "value" // BPM only
	ModeImage Mode = "image" // PNG diagnostics
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeValue || m == ModeImage
}

// Analysis is the result handed back to transports.
// Image is only populated in ModeImage.
type Analysis struct {
	Mode     Mode
	Estimate *Estimate
	Image    []byte
}
