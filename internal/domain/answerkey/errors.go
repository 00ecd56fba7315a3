package answerkey

import "errors"

// Sentinel error kinds for this package.
var (
	ErrMissingRoundNumber = errors.New("no round number found in answer key")
	ErrInvalidRoundNumber = errors.New("invalid round number in answer key")
)
