package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fitpulse/internal/domain/entity"
	"fitpulse/internal/domain/service"
	mockSvc "fitpulse/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestContext(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_Authenticate_Success(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	userID := uuid.New()
	tokenSvc.EXPECT().ValidateToken("valid-token").Return(&service.Claims{
		UserID: userID,
		Role:   entity.RoleUser,
		Type:   service.TokenTypeAccess,
	}, nil)

	c, _ := newAuthTestContext(t, "Bearer valid-token")

	called := false
	err := m.Authenticate(func(c echo.Context) error {
		called = true
		assert.Equal(t, userID, c.Get(ContextKeyUserID))
		assert.Equal(t, entity.RoleUser, c.Get(ContextKeyRole))
		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, called)
}

func TestAuthMiddleware_Authenticate_MissingHeader(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	c, rec := newAuthTestContext(t, "")

	err := m.Authenticate(func(echo.Context) error {
		t.Fatal("handler must not run without credentials")
		return nil
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_Authenticate_NotBearer(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	c, rec := newAuthTestContext(t, "Basic dXNlcjpwYXNz")

	err := m.Authenticate(func(echo.Context) error { return nil })(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_Authenticate_InvalidToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	tokenSvc.EXPECT().ValidateToken("bad-token").Return(nil, errors.New("parse token"))

	c, rec := newAuthTestContext(t, "Bearer bad-token")

	err := m.Authenticate(func(echo.Context) error { return nil })(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_Authenticate_RejectsRefreshToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	tokenSvc.EXPECT().ValidateToken("refresh-token").Return(&service.Claims{
		UserID: uuid.New(),
		Type:   service.TokenTypeRefresh,
	}, nil)

	c, rec := newAuthTestContext(t, "Bearer refresh-token")

	err := m.Authenticate(func(echo.Context) error { return nil })(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	t.Run("matching role passes", func(t *testing.T) {
		c, _ := newAuthTestContext(t, "")
		c.Set(ContextKeyRole, entity.RoleAdmin)

		called := false
		err := m.RequireRole(entity.RoleAdmin)(func(echo.Context) error {
			called = true
			return nil
		})(c)

		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		c, rec := newAuthTestContext(t, "")
		c.Set(ContextKeyRole, entity.RoleUser)

		err := m.RequireRole(entity.RoleAdmin)(func(echo.Context) error { return nil })(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing role is forbidden", func(t *testing.T) {
		c, rec := newAuthTestContext(t, "")

		err := m.RequireRole(entity.RoleAdmin)(func(echo.Context) error { return nil })(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
