package domain

import "errors"

var (
	ErrNotFound              = errors.New("record not found")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrDuplicateRegistration = errors.New("email is already registered")
)
