// Package domain defines domain-level errors for the auth feature.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors for authentication operations.
// These errors represent business logic failures and should be handled appropriately by upper layers.
var (
	// ErrUserNotFound indicates that no user was found with the given criteria.
	// This is typically returned during sign-in or user lookup operations.
	ErrUserNotFound = errors.New("user not found")

	// ErrCodeNotFound indicates that no verification code matched the given value.
	ErrCodeNotFound = errors.New("verification code not found")
)

// AuthenticationError reports a failed credential check. It carries the email
// the caller claimed so the HTTP layer can include it in the problem response.
type AuthenticationError struct {
	Email string
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed for %s", e.Email)
}
