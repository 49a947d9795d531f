package payu

import "errors"

var (
	// ErrNotConfigured indicates missing merchant key or salt. Fatal: no
	// payment may be initiated or verified without credentials.
	ErrNotConfigured = errors.New("payu: merchant key or salt not configured")
	// ErrValidation indicates malformed order or customer data at request
	// building time; reported to the caller, no side effect.
	ErrValidation = errors.New("payu: validation failed")
)
