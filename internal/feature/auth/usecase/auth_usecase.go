// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"timetrack_backend/internal/feature/auth/domain"
	"timetrack_backend/internal/feature/auth/domain/entity"
	"timetrack_backend/internal/validation"
)

const (
	// minPasswordLength defines the minimum number of password characters.
	minPasswordLength = 8
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention, the interface is defined by the consumer (usecase),
// not the provider (adapters).
type UserRepository interface {
	// FindByEmail retrieves a user matching the specified email address.
	// It returns domain.ErrUserNotFound if the user does not exist.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user matching the specified ID.
	// It returns domain.ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// UpdatePassword replaces the user's password hash.
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

// VerificationCodeRepository abstracts the persistence layer for one-time
// verification codes.
type VerificationCodeRepository interface {
	// Create persists a new verification code.
	Create(ctx context.Context, code *entity.VerificationCode) error

	// FindByCode retrieves a verification code by its code value.
	// It returns domain.ErrCodeNotFound if no such code exists.
	FindByCode(ctx context.Context, code string) (*entity.VerificationCode, error)

	// MarkUsed flags the code as consumed.
	MarkUsed(ctx context.Context, id uint) error
}

// JWTGenerator defines the interface for JWT token generation.
// Following Go convention, the interface is defined by the consumer (usecase),
// not the provider (platform/jwt).
type JWTGenerator interface {
	// GenerateToken creates a signed JWT token for the given user.
	GenerateToken(userID uint, email, name string, organizationID uint) (string, error)
}

// RememberMeSealer seals and opens remember-me tokens.
type RememberMeSealer interface {
	// Seal produces an opaque remember-me token for the given login email.
	Seal(email string) (string, error)

	// Open recovers the login email from a remember-me token.
	Open(tok string) (string, error)
}

// SignInResult carries the credentials issued by a successful sign-in.
type SignInResult struct {
	Token string
	// RememberMeToken is empty unless the caller asked to be remembered.
	RememberMeToken string
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users        UserRepository
	codes        VerificationCodeRepository
	jwtGenerator JWTGenerator
	sealer       RememberMeSealer
	codeTTL      time.Duration
	now          func() time.Time
}

// NewAuthUsecase creates a new instance of authUsecase.
func NewAuthUsecase(users UserRepository, codes VerificationCodeRepository,
	jwtGenerator JWTGenerator, sealer RememberMeSealer, codeTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:        users,
		codes:        codes,
		jwtGenerator: jwtGenerator,
		sealer:       sealer,
		codeTTL:      codeTTL,
		now:          time.Now,
	}
}

// validateSignIn runs the sign-in rule set: email format, password length and
// user existence. All rules are evaluated so independent failures accumulate.
func (u *authUsecase) validateSignIn(ctx context.Context, email, password string) (*entity.User, error) {
	var r validation.Result

	if email == "" {
		r.Fail("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		r.Fail("email", "Email is not a valid email address")
	}

	if len(password) < minPasswordLength {
		r.Fail("password", "Password must be at least 8 characters long.")
	}

	var user *entity.User
	if email != "" {
		found, err := u.users.FindByEmail(ctx, email)
		switch {
		case err == nil:
			user = found
		case errors.Is(err, domain.ErrUserNotFound):
			r.Fail("email", "User with email does not exist in system")
		default:
			return nil, err
		}
	}

	if err := r.Err(); err != nil {
		return nil, err
	}
	return user, nil
}

// SignIn authenticates a user by email and password and issues a JWT token.
// When rememberMe is set, it additionally issues a remember-me token.
// To mitigate timing attacks, a bcrypt comparison runs even when the user's
// account is inactive.
func (u *authUsecase) SignIn(ctx context.Context, email, password string, rememberMe bool) (*SignInResult, error) {
	user, err := u.validateSignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	// Inactive accounts fail exactly like a wrong password. The dummy compare
	// keeps the timing comparable, but the account state gates on its own: an
	// inactive user is rejected whatever the compare says.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // dummy hash
	if user.Active {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if compareErr != nil || !user.Active {
		return nil, &domain.AuthenticationError{Email: email}
	}

	return u.issueTokens(user, rememberMe)
}

// RememberMeSignIn re-establishes a session from a remember-me token.
// The token provides confidentiality only, so the recovered email is always
// re-validated against the user store before any credential is issued.
func (u *authUsecase) RememberMeSignIn(ctx context.Context, rememberMeToken string) (*SignInResult, error) {
	email, err := u.sealer.Open(rememberMeToken)
	if err != nil {
		return nil, &domain.AuthenticationError{Email: ""}
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, &domain.AuthenticationError{Email: email}
		}
		return nil, err
	}
	if !user.Active {
		return nil, &domain.AuthenticationError{Email: email}
	}

	// Rotate the remember-me token on every use
	return u.issueTokens(user, true)
}

// issueTokens creates the JWT and, when asked, a remember-me token.
func (u *authUsecase) issueTokens(user *entity.User, rememberMe bool) (*SignInResult, error) {
	tok, err := u.jwtGenerator.GenerateToken(user.ID, user.Email, user.Name(), user.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	result := &SignInResult{Token: tok}
	if rememberMe {
		sealed, err := u.sealer.Seal(user.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to seal remember-me token: %w", err)
		}
		result.RememberMeToken = sealed
	}
	return result, nil
}

// ChangePassword verifies the current password and replaces it with a new
// bcrypt hash.
func (u *authUsecase) ChangePassword(ctx context.Context, userID uint, current, newPassword string) error {
	var r validation.Result
	if current == "" {
		r.Fail("currentPassword", "Current password is required")
	}
	if len(newPassword) < minPasswordLength {
		r.Fail("newPassword", "Password must be at least 8 characters long.")
	}
	if err := r.Err(); err != nil {
		return err
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return &domain.AuthenticationError{Email: user.Email}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return u.users.UpdatePassword(ctx, userID, string(hashed))
}

// IssueVerificationCode creates a fresh one-time code for the user.
func (u *authUsecase) IssueVerificationCode(ctx context.Context, userID uint) (*entity.VerificationCode, error) {
	if _, err := u.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	code := &entity.VerificationCode{
		Code:      uuid.NewString(),
		UserID:    userID,
		ExpiresAt: u.now().Add(u.codeTTL),
	}
	if err := u.codes.Create(ctx, code); err != nil {
		return nil, fmt.Errorf("failed to create verification code: %w", err)
	}
	return code, nil
}

// VerifyCode consumes a one-time verification code. A missing code surfaces
// as a not-found validation failure, a used or expired one as bad-request.
func (u *authUsecase) VerifyCode(ctx context.Context, code string) error {
	var r validation.Result
	if code == "" {
		r.Fail("code", "Code is required")
		return r.Err()
	}

	found, err := u.codes.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrCodeNotFound) {
			r.FailKind(validation.KindNotFound, "code", "Verification code does not exist in system")
			return r.Err()
		}
		return err
	}

	if found.Used {
		r.Fail("code", "Verification code has already been used")
		return r.Err()
	}
	if found.Expired(u.now()) {
		r.Fail("code", "Verification code has expired")
		return r.Err()
	}

	return u.codes.MarkUsed(ctx, found.ID)
}
