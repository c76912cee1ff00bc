package service

import "errors"

// ValidationError is a user-facing input problem; Message is safe to show to clients.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("an account with this email already exists")
	ErrAccountExists      = errors.New("this company already has an account, please log in")
	ErrCompanyListed      = errors.New("this company is already listed, claim it instead of registering")
	ErrCompanyNotListed   = errors.New("no listed company uses this email")
	ErrSessionInactive    = errors.New("session is no longer active")
)
