// Package api defines the shared HTTP response types and the central mapping
// from domain errors to HTTP responses.
package api

import "timetrack_backend/internal/validation"

// TokenResponse is returned by the sign-in endpoints.
type TokenResponse struct {
	Token string `json:"token"`
	// RememberMeToken is only present when the caller asked to be remembered.
	RememberMeToken string `json:"rememberMeToken,omitempty"`
}

// CreatedResponse is returned by create endpoints with the generated identifier.
type CreatedResponse struct {
	ID uint `json:"id"`
}

// MessageResponse is a generic success payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationResponse reports every failed rule of a request as
// (property, message) pairs.
type ValidationResponse struct {
	Errors []validation.FieldError `json:"errors"`
}

// Problem is the problem-details shape used for authentication, authorization
// and unclassified failures.
type Problem struct {
	Title      string            `json:"title"`
	Status     int               `json:"status"`
	Detail     string            `json:"detail,omitempty"`
	Extensions map[string]string `json:"extensions,omitempty"`
}
