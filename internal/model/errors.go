package model

import "errors"

// ErrValidation is the sentinel wrapped by all input validation failures.
// Callers match it with errors.Is to distinguish bad input from store errors.
var ErrValidation = errors.New("validation failed")
