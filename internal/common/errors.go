// Package common defines shared sentinel errors used across the
// repository, service, and front-end layers. Callers should use
// errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Registration / profile errors.
	ErrEmptyAlias    = errors.New("alias cannot be empty")
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrAliasTaken    = errors.New("alias already exists")

	// Login errors.
	ErrUnknownAlias     = errors.New("alias not found")
	ErrAccountLocked    = errors.New("account is locked")
	ErrAccountLockedNow = errors.New("too many failed attempts, account is now locked")
	ErrWrongPassword    = errors.New("wrong password")

	// Access control errors.
	ErrNotOwner = errors.New("operation not permitted on another user's resource")

	// Validation errors.
	ErrInvalidDate = errors.New("date must be in the format YYYY-MM-DD")
	ErrEmptyTitle  = errors.New("title cannot be empty")
	ErrEmptyName   = errors.New("name cannot be empty")
	ErrNameTaken   = errors.New("name already exists")

	// Generic/internal flow control.
	ErrInternal = errors.New("internal error")
)

// WrongPasswordError reports a failed password check together with the
// number of attempts left before the account locks. It unwraps to
// ErrWrongPassword so errors.Is(err, ErrWrongPassword) still matches.
type WrongPasswordError struct {
	Remaining int
}

func (e *WrongPasswordError) Error() string {
	return fmt.Sprintf("wrong password, attempts left: %d", e.Remaining)
}

func (e *WrongPasswordError) Unwrap() error {
	return ErrWrongPassword
}
