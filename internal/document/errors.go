package document

import "errors"

// Domain errors for invoice generation

var (
	// Configuration errors, detected at generator construction
	ErrMissingShareholders = errors.New("company must have at least two shareholders")
	ErrNilRenderer         = errors.New("renderer must not be nil")

	// Usage errors
	ErrNotGenerated = errors.New("invoice has not been generated yet")
)
