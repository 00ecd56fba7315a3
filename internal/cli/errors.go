package cli

import "errors"

// Sentinel error kinds for argument parsing.
var (
	ErrUsage            = errors.New("invalid arguments")
	ErrInvalidDelimiter = errors.New("invalid delimiter")
)
