package eventlog

import "errors"

// Sentinel error kinds for this package.
var (
	ErrMalformedRow     = errors.New("malformed event log row")
	ErrIO               = errors.New("event log read failed")
	ErrInvalidDelimiter = errors.New("invalid field delimiter")
)
