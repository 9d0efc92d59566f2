// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// SignInReq represents the request body for the /auth/signin endpoint.
// Field-level rules (format, length, existence) run in the usecase's rule set
// so failures accumulate instead of stopping at the first one.
type SignInReq struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}
