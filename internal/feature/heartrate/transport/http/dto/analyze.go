// Package dto defines data transfer objects for the heart-rate HTTP API.
package dto

// Error messages returned for analysis failures that are the caller's fault.
const (
	MsgNotEnoughData   = "Not enough data"
	MsgNoValidPeak     = "No valid peak"
	MsgInvalidRequest  = "invalid request"
	MsgInvalidMode     = "invalid mode"
	MsgTooManyRequests = "too many requests"
)

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	GreenSignal []float64 `json:"green_signal" binding:"required"` // Mean green intensity per frame
	Fs          *float64  `json:"fs,omitempty"`                    // Frames per second; server default when omitted
	Mode        string    `json:"mode,omitempty"`                  // "value" or "image"
}

// HeartRateResponse is the value-mode success body.
type HeartRateResponse struct {
	HeartRate float64 `json:"heart_rate"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of GET /.
type MessageResponse struct {
	Message string `json:"message"`
}
