package dto

// RememberMeSignInReq represents the request body for the
// /auth/rememberme-signin endpoint.
type RememberMeSignInReq struct {
	RememberMeToken string `json:"rememberMeToken" binding:"required"`
}

// ChangePasswordReq represents the request body for PUT /users/me/password.
type ChangePasswordReq struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// VerifyCodeReq represents the request body for POST /auth/verify.
type VerifyCodeReq struct {
	Code string `json:"code"`
}
