package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"timetrack_backend/internal/authz"
	authdomain "timetrack_backend/internal/feature/auth/domain"
	"timetrack_backend/internal/validation"
)

// statusFor maps a validation classification to an HTTP status code.
func statusFor(kind validation.Kind) int {
	switch kind {
	case validation.KindNotFound:
		return http.StatusNotFound
	case validation.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// WriteError converts an error returned by a usecase into an HTTP response.
// Every handler funnels its errors through here so the taxonomy is applied in
// exactly one place:
//
//   - *validation.Error  → 400/404/409 with the accumulated field errors
//   - *AuthenticationError → 401 problem details carrying the email
//   - *authz.Error       → 403 problem details carrying email and missing key
//   - anything else      → 500 with an opaque detail, logged
func WriteError(c *gin.Context, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		c.JSON(statusFor(verr.Kind), ValidationResponse{Errors: verr.Fields})
		return
	}

	var authErr *authdomain.AuthenticationError
	if errors.As(err, &authErr) {
		c.JSON(http.StatusUnauthorized, Problem{
			Title:      "Authentication failed",
			Status:     http.StatusUnauthorized,
			Detail:     "invalid credentials",
			Extensions: map[string]string{"email": authErr.Email},
		})
		return
	}

	var azErr *authz.Error
	if errors.As(err, &azErr) {
		c.JSON(http.StatusForbidden, Problem{
			Title:  "Authorization failed",
			Status: http.StatusForbidden,
			Detail: "missing required permission",
			Extensions: map[string]string{
				"email":      azErr.Email,
				"permission": string(azErr.Permission),
			},
		})
		return
	}

	slog.Error("unhandled error", "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, Problem{
		Title:  "Internal server error",
		Status: http.StatusInternalServerError,
		Detail: "an unexpected error occurred",
	})
}
