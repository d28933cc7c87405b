package service

import (
	"context"

	"fitpulse/internal/domain/entity"
)

// OAuthUser represents user information returned by an OAuth provider.
type OAuthUser struct {
	ID            string              // Provider-specific user ID (e.g. Google's 'sub' claim)
	Email         string              // User's email address
	Name          string              // User's display name
	Provider      entity.ProviderType // The OAuth provider
	AvatarURL     string              // URL to the user's profile picture
	EmailVerified bool                // Whether the email is verified by the provider
}

// OAuthService defines the redirect-based OAuth handshake with a provider.
// The initiating request is a full-page browser navigation: the caller builds
// an authorization URL, the provider calls back with a code, and the code is
// exchanged server-side for the user's profile.
type OAuthService interface {
	// BuildAuthorizationURL constructs the provider consent URL, registering
	// the state parameter for later CSRF validation.
	BuildAuthorizationURL(state string) string

	// ValidateState consumes a state parameter previously issued by
	// BuildAuthorizationURL. A state validates at most once.
	ValidateState(state string) bool

	// ExchangeCode trades an authorization code for the provider's view of the
	// user.
	ExchangeCode(ctx context.Context, code string) (*OAuthUser, error)

	// GetProvider returns the OAuth provider type.
	GetProvider() entity.ProviderType
}
