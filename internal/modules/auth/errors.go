package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrNotFound           = errors.New("user not found")
	ErrValidation         = errors.New("validation error")
)
