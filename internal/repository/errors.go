package repository

import "errors"

var (
	// ErrNotFound covers both a missing questionnaire and one owned by a
	// different user. Callers must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUsername is returned when signing up with a taken username.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials is returned for an unknown username and for a
	// wrong password alike.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
