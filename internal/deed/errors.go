package deed

import "errors"

var (
	// Generator configuration errors
	ErrInvalidOption   = errors.New("invalid generator option")
	ErrUnknownDeedType = errors.New("unknown deed type")

	// Integrity errors
	ErrHashMismatch    = errors.New("document hash mismatch")
	ErrMalformedRecord = errors.New("malformed deed record")
)
