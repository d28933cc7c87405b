// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"fitpulse/internal/domain/entity"
	"fitpulse/internal/domain/service"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// RefreshTokenInput carries the refresh token presented for renewal.
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput carries the refresh token of the session being ended.
type LogoutInput struct {
	RefreshToken string
}

// GoogleCallbackInput carries the parameters Google appends to the callback
// redirect.
type GoogleCallbackInput struct {
	Code  string
	State string
}

// --- Output DTOs ---

// RegisterOutput returns the new account's public view and its first session.
type RegisterOutput struct {
	User         *entity.PublicUser
	AccessToken  string
	RefreshToken string
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.PublicUser
}

// RefreshTokenOutput returns the renewed access token.
type RefreshTokenOutput struct {
	AccessToken string
}

// VerifyTokenOutput returns the authenticated user and the decoded claims.
type VerifyTokenOutput struct {
	User   *entity.PublicUser
	Claims *service.Claims
}

// AuthUsecase defines the interface for credential and token operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register creates a new account with an email/password credential.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login verifies an email/password pair and opens a session.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// VerifyToken validates a bearer access token and loads its user.
	VerifyToken(ctx context.Context, tokenString string) (*VerifyTokenOutput, error)

	// RefreshToken issues a new access token against a stored session.
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*RefreshTokenOutput, error)

	// Logout ends the session identified by the refresh token.
	Logout(ctx context.Context, input *LogoutInput) error

	// GoogleAuthURL builds the provider consent URL the browser is sent to.
	GoogleAuthURL(ctx context.Context) (string, error)

	// GoogleCallback completes the redirect handshake, creating the account on
	// first sign-in.
	GoogleCallback(ctx context.Context, input *GoogleCallbackInput) (*LoginOutput, error)
}
