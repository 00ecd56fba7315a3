package filesystem

import "errors"

// Sentinel error kinds for this package.
var (
	ErrPathNotFound = errors.New("path not found")
	ErrRead         = errors.New("read failed")
)
