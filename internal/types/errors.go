package types

import "errors"

// Failure taxonomy shared by all stages. Stage errors wrap one of these so
// callers can classify a failed run with errors.Is.
var (
	ErrFileNotFound     = errors.New("audio file not found")
	ErrPayloadTooLarge  = errors.New("audio file exceeds provider size ceiling")
	ErrGenerationFailed = errors.New("generation failed")
	ErrWriteError       = errors.New("write failed")
	ErrDeliveryError    = errors.New("delivery failed")
)
