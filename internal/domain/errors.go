package domain

import "errors"

var (
	ErrInvalidRequest         = errors.New("invalid request")
	ErrEmptyTranscript        = errors.New("transcript is empty")
	ErrTranscriptTooLong      = errors.New("transcript exceeds maximum allowed length")
	ErrInvalidSpecialty       = errors.New("invalid specialty")
	ErrGeneratorFailed        = errors.New("note generation failed")
	ErrGeneratorRateLimit     = errors.New("note generation rate limited")
	ErrGeneratorNotConfigured = errors.New("note generation is not configured")
	ErrUnsupportedProvider    = errors.New("unsupported generator provider")
)
