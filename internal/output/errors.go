package output

import "errors"

var (
	ErrUnknownFormat = errors.New("unknown output format")
	ErrWriteFailed   = errors.New("write failed")
)
