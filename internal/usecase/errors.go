package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrInsufficientRoster    = errors.New("insufficient roster")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
