package property

import "errors"

var (
	ErrValidation = errors.New("property validation failed")
	ErrNotFound   = errors.New("property not found")
	ErrForbidden  = errors.New("property does not belong to the caller")
)
