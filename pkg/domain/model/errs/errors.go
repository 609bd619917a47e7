package errs

import (
	"errors"
)

var (
	// ErrInvalidLanguage is returned when a language code is outside the supported set.
	ErrInvalidLanguage = errors.New("invalid language")
	// ErrMissingRenderTarget is returned when a render is requested without a selector.
	ErrMissingRenderTarget = errors.New("missing render target selector")
	// ErrNoRenderBackend is returned when a render is requested but no backend is configured.
	ErrNoRenderBackend = errors.New("render backend not available")
)
