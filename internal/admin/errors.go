package admin

import "errors"

var (
	ErrNotFound         = errors.New("admin: not found")
	ErrEmailTaken       = errors.New("admin: email already registered")
	ErrInvalidInput     = errors.New("admin: invalid input")
	ErrUnauthorized     = errors.New("admin: invalid credentials")
	ErrInvalidToken     = errors.New("admin: invalid token")
	ErrPasswordMismatch = errors.New("admin: passwords do not match")
)
