package domain

import "errors"

var (
	ErrNotConfigured = errors.New("not configured")
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("duplicate")
	ErrInvalidID     = errors.New("invalid id")
)
