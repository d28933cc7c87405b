package auth

import (
	"strings"
	"testing"
	"time"

	"fitpulse/config"
	"fitpulse/internal/domain/entity"
	"fitpulse/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) service.TokenService {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret-for-tests"
	cfg.SecretKey.Refresh = "refresh-secret-for-tests"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestNewJWTService_RequiresSecrets(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "only-access"

	svc, err := NewJWTService(cfg)
	assert.Nil(t, svc)
	assert.Error(t, err)
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()

	accessToken, refreshToken, err := svc.GenerateTokens(userID, entity.RoleUser)
	require.NoError(t, err)
	assert.NotEqual(t, accessToken, refreshToken)

	accessClaims, err := svc.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, accessClaims.UserID)
	assert.Equal(t, entity.RoleUser, accessClaims.Role)
	assert.Equal(t, service.TokenTypeAccess, accessClaims.Type)

	refreshClaims, err := svc.ValidateToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, refreshClaims.UserID)
	assert.Equal(t, service.TokenTypeRefresh, refreshClaims.Type)
}

func TestJWTService_ValidateToken_RejectsTampered(t *testing.T) {
	svc := newTestJWTService(t)

	accessToken, _, err := svc.GenerateTokens(uuid.New(), entity.RoleUser)
	require.NoError(t, err)

	// Flip the signature segment.
	parts := strings.Split(accessToken, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	claims, err := svc.ValidateToken(tampered)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_RejectsGarbage(t *testing.T) {
	svc := newTestJWTService(t)

	claims, err := svc.ValidateToken("not-a-jwt")
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_RejectsForeignSecret(t *testing.T) {
	svc := newTestJWTService(t)

	otherCfg := &config.Config{}
	otherCfg.SecretKey.Access = "different-access-secret"
	otherCfg.SecretKey.Refresh = "different-refresh-secret"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	foreignToken, _, err := other.GenerateTokens(uuid.New(), entity.RoleUser)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(foreignToken)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_RejectsExpired(t *testing.T) {
	svc := newTestJWTService(t)

	// Sign a token that expired an hour ago with the same access secret the
	// service trusts, so the only defect is its age.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uuid.New().String(),
		"iat":  time.Now().Add(-2 * time.Hour).Unix(),
		"exp":  time.Now().Add(-time.Hour).Unix(),
		"type": service.TokenTypeAccess,
		"role": entity.RoleUser.String(),
	})
	tokenString, err := expired.SignedString([]byte("access-secret-for-tests"))
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tokenString)
	assert.Nil(t, claims)
	assert.Error(t, err)

	// Parsing directly with the right secret names the actual cause.
	_, parseErr := jwt.Parse(tokenString, func(*jwt.Token) (any, error) {
		return []byte("access-secret-for-tests"), nil
	})
	assert.ErrorIs(t, parseErr, jwt.ErrTokenExpired)
}

func TestJWTService_ConfiguredTTLs(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret-for-tests"
	cfg.SecretKey.Refresh = "refresh-secret-for-tests"
	cfg.Auth = &config.AuthConfig{
		AccessTokenTTL:  -time.Hour, // non-positive, falls back to the default
		RefreshTokenTTL: 30 * 24 * time.Hour,
	}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, svc.GetRefreshTokenDuration())

	accessToken, _, err := svc.GenerateTokens(uuid.New(), entity.RoleUser)
	require.NoError(t, err)

	// The default access lifetime applies, so the token validates.
	claims, err := svc.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, service.TokenTypeAccess, claims.Type)
}

func TestJWTService_ShortAccessTTLExpires(t *testing.T) {
	// A negative TTL dates the expiry claim in the past, so every token the
	// service issues is already expired by the time it is validated.
	svc := &jwtService{
		accessSecret:  "access-secret-for-tests",
		refreshSecret: "refresh-secret-for-tests",
		accessTTL:     -time.Minute,
		refreshTTL:    defaultRefreshTTL,
	}

	accessToken, _, err := svc.GenerateTokens(uuid.New(), entity.RoleUser)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(accessToken)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestJWTService_HashToken_Deterministic(t *testing.T) {
	svc := newTestJWTService(t)

	first := svc.HashToken("some-refresh-token")
	second := svc.HashToken("some-refresh-token")
	different := svc.HashToken("another-refresh-token")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, different)
	// Hex-encoded SHA-256.
	assert.Len(t, first, 64)
}
