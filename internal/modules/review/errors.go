package review

import "errors"

var (
	ErrValidation = errors.New("review validation failed")
	ErrNotFound   = errors.New("review not found")
	ErrForbidden  = errors.New("review does not belong to the caller")
)
