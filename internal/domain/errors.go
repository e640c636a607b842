package domain

import "errors"

var (
	// ErrEmailTaken signals the unique constraint on users.email fired.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so callers cannot probe which emails exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
