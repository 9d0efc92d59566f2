// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"timetrack_backend/internal/api"
	"timetrack_backend/internal/feature/auth/domain/entity"
	"timetrack_backend/internal/feature/auth/transport/http/dto"
	"timetrack_backend/internal/feature/auth/usecase"
	jwtmw "timetrack_backend/internal/platform/jwt"
	"timetrack_backend/internal/validation"
)

// AuthUsecase defines the usecase interface for authentication operations.
// Following Go convention, the interface is defined by the consumer (handler),
// not the provider (usecase).
type AuthUsecase interface {
	// SignIn authenticates a user and issues tokens.
	SignIn(ctx context.Context, email, password string, rememberMe bool) (*usecase.SignInResult, error)
	// RememberMeSignIn re-establishes a session from a remember-me token.
	RememberMeSignIn(ctx context.Context, rememberMeToken string) (*usecase.SignInResult, error)
	// ChangePassword verifies the current password and replaces it.
	ChangePassword(ctx context.Context, userID uint, current, newPassword string) error
	// IssueVerificationCode creates a fresh one-time code for the user.
	IssueVerificationCode(ctx context.Context, userID uint) (*entity.VerificationCode, error)
	// VerifyCode consumes a one-time verification code.
	VerifyCode(ctx context.Context, code string) error
}

// AuthHandler handles HTTP requests for authentication operations.
// It depends on the AuthUsecase interface and processes JSON requests/responses.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SignIn handles the sign-in API endpoint.
// Validation failures return 400/404/409 per classification, bad credentials 401.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signin bind failed", "error", err, "remote_addr", c.ClientIP())
		var r validation.Result
		r.Fail("body", "Request body is not valid JSON")
		api.WriteError(c, r.Err())
		return
	}

	result, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		slog.Warn("signin failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		api.WriteError(c, err)
		return
	}

	slog.Info("user signin successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: result.Token, RememberMeToken: result.RememberMeToken})
}

// RememberMeSignIn handles the remember-me sign-in API endpoint.
// The returned remember-me token replaces the presented one.
func (h *AuthHandler) RememberMeSignIn(c *gin.Context) {
	var req dto.RememberMeSignInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("rememberme-signin bind failed", "error", err, "remote_addr", c.ClientIP())
		var r validation.Result
		r.Fail("rememberMeToken", "Remember me token is required")
		api.WriteError(c, r.Err())
		return
	}

	result, err := h.auth.RememberMeSignIn(c.Request.Context(), req.RememberMeToken)
	if err != nil {
		slog.Warn("rememberme-signin failed", "error", err, "remote_addr", c.ClientIP())
		api.WriteError(c, err)
		return
	}

	slog.Info("remember-me signin successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: result.Token, RememberMeToken: result.RememberMeToken})
}

// ChangePassword handles PUT /users/me/password for the authenticated user.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		var r validation.Result
		r.Fail("body", "Request body is not valid JSON")
		api.WriteError(c, r.Err())
		return
	}

	userID := c.GetUint(jwtmw.ContextUserID)
	if err := h.auth.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		slog.Warn("password change failed", "error", err, "user_id", userID)
		api.WriteError(c, err)
		return
	}

	slog.Info("password changed", "user_id", userID)
	c.Status(http.StatusNoContent)
}

// verificationCodeResponse is the JSON shape for an issued verification code.
type verificationCodeResponse struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IssueVerificationCode handles POST /auth/verification-code for the
// authenticated user.
func (h *AuthHandler) IssueVerificationCode(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	code, err := h.auth.IssueVerificationCode(c.Request.Context(), userID)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, verificationCodeResponse{Code: code.Code, ExpiresAt: code.ExpiresAt})
}

// VerifyCode handles POST /auth/verify.
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var req dto.VerifyCodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		var r validation.Result
		r.Fail("code", "Code is required")
		api.WriteError(c, r.Err())
		return
	}

	if err := h.auth.VerifyCode(c.Request.Context(), req.Code); err != nil {
		api.WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
