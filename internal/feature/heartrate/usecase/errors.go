// Package usecase implements the heart-rate analysis business logic.
package usecase

import "errors"

var (
	// ErrInvalidMode is returned when the requested output mode is neither "value" nor "image".
	ErrInvalidMode = errors.New("invalid mode")
)
