package model

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidQuestionType = errors.New("invalid question type")
	ErrInvalidTypeSet      = errors.New("invalid question type set")
)
