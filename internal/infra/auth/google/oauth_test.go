package google

import (
	"net/url"
	"testing"

	"fitpulse/config"
	"fitpulse/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOAuthService(t *testing.T) *OAuthService {
	cfg := &config.Config{
		GoogleOAuth: &config.GoogleOAuthConfig{
			ClientID:     "test-client-id",
			ClientSecret: "test-client-secret",
			RedirectURI:  "https://api.example.com/api/auth/google/callback",
		},
	}

	svc, err := NewOAuthService(cfg)
	require.NoError(t, err)

	concrete, ok := svc.(*OAuthService)
	require.True(t, ok)

	return concrete
}

func TestNewOAuthService_RequiresClientCredentials(t *testing.T) {
	svc, err := NewOAuthService(&config.Config{
		GoogleOAuth: &config.GoogleOAuthConfig{ClientID: "id-without-secret"},
	})
	assert.Nil(t, svc)
	assert.Error(t, err)

	svc, err = NewOAuthService(&config.Config{})
	assert.Nil(t, svc)
	assert.Error(t, err)
}

func TestOAuthService_BuildAuthorizationURL(t *testing.T) {
	svc := newTestOAuthService(t)

	state := "state-7f3a9c"
	rawURL := svc.BuildAuthorizationURL(state)

	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)

	assert.Equal(t, "accounts.google.com", parsed.Host)
	query := parsed.Query()
	assert.Equal(t, "test-client-id", query.Get("client_id"))
	assert.Equal(t, "https://api.example.com/api/auth/google/callback", query.Get("redirect_uri"))
	assert.Equal(t, "code", query.Get("response_type"))
	assert.Equal(t, state, query.Get("state"))
	assert.Contains(t, query.Get("scope"), "email")
}

func TestOAuthService_ValidateState_ConsumesState(t *testing.T) {
	svc := newTestOAuthService(t)

	state := "state-b52e1d"
	svc.BuildAuthorizationURL(state)

	assert.True(t, svc.ValidateState(state))
	// A state validates at most once.
	assert.False(t, svc.ValidateState(state))
}

func TestOAuthService_ValidateState_UnknownState(t *testing.T) {
	svc := newTestOAuthService(t)

	assert.False(t, svc.ValidateState("never-issued"))
}

func TestOAuthService_GetProvider(t *testing.T) {
	svc := newTestOAuthService(t)

	assert.Equal(t, entity.ProviderTypeGoogle, svc.GetProvider())
}
