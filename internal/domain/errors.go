package domain

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrUndecodableImage  = errors.New("image could not be decoded")
	ErrEmptySlot         = errors.New("no generated image")

	// ErrGeneration wraps every failure of the generation API call
	ErrGeneration = errors.New("image generation failed")
	// ErrAuthentication is returned when the API rejects the credential
	ErrAuthentication = errors.New("generation API rejected the credential")
	// ErrQuotaExceeded is returned when the API reports exhausted quota
	ErrQuotaExceeded = errors.New("generation API quota exceeded")
)
