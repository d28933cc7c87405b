package impl

import (
	"context"
	"testing"
	"time"

	"fitpulse/internal/domain/entity"
	domainerrors "fitpulse/internal/domain/errors"
	"fitpulse/internal/domain/repository"
	"fitpulse/internal/domain/service"
	mockRepo "fitpulse/internal/mocks/repository"
	mockSvc "fitpulse/internal/mocks/service"
	"fitpulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service          usecase.AuthUsecase
	txManager        *mockRepo.MockTransactionManager
	repoFactory      *mockRepo.MockRepositoryFactory
	userRepo         *mockRepo.MockUserRepository
	authRepo         *mockRepo.MockAuthRepository
	refreshTokenRepo *mockRepo.MockRefreshTokenRepository
	hasher           *mockSvc.MockPasswordHasher
	tokenService     *mockSvc.MockTokenService
	oauthService     *mockSvc.MockOAuthService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	repoFactory := mockRepo.NewMockRepositoryFactory(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	authRepo := mockRepo.NewMockAuthRepository(t)
	refreshTokenRepo := mockRepo.NewMockRefreshTokenRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	oauthService := mockSvc.NewMockOAuthService(t)

	svc := NewAuthService(AuthServiceParams{
		TxManager:        txManager,
		UserRepo:         userRepo,
		RefreshTokenRepo: refreshTokenRepo,
		Hasher:           hasher,
		TokenService:     tokenService,
		OAuthService:     oauthService,
		Logger:           newDiscardLogger(),
	})

	return authServiceFixtures{
		service:          svc,
		txManager:        txManager,
		repoFactory:      repoFactory,
		userRepo:         userRepo,
		authRepo:         authRepo,
		refreshTokenRepo: refreshTokenRepo,
		hasher:           hasher,
		tokenService:     tokenService,
		oauthService:     oauthService,
	}
}

// expectTransaction makes the mocked transaction manager run the callback
// against the fixture's repository factory, as the real manager would.
func (f *authServiceFixtures) expectTransaction(ctx context.Context) {
	f.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(f.repoFactory)
		})
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Alex",
		Email:    "  Alex@Example.COM ",
		Password: "secret-password",
	}

	fx.hasher.EXPECT().Hash("secret-password").Return("hashed", nil)
	fx.expectTransaction(ctx)
	fx.repoFactory.EXPECT().UserRepo().Return(fx.userRepo)
	fx.repoFactory.EXPECT().AuthRepo().Return(fx.authRepo)

	fx.authRepo.EXPECT().
		FindAuthentication(ctx, entity.ProviderTypeEmail, "alex@example.com").
		Return(nil, repository.ErrAuthNotFound)

	newUserID := uuid.New()
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		RunAndReturn(func(_ context.Context, user *entity.User) error {
			user.ID = newUserID
			return nil
		})

	fx.authRepo.EXPECT().
		CreateAuthentication(ctx, mock.AnythingOfType("*entity.Authentication")).
		RunAndReturn(func(_ context.Context, auth *entity.Authentication) error {
			assert.Equal(t, newUserID, auth.UserID)
			assert.Equal(t, entity.ProviderTypeEmail, auth.Provider)
			assert.Equal(t, "alex@example.com", auth.ProviderUserID)
			assert.Equal(t, "hashed", auth.PasswordHash)
			return nil
		})

	fx.tokenService.EXPECT().GenerateTokens(newUserID, entity.RoleUser).Return("access", "refresh", nil)
	fx.tokenService.EXPECT().HashToken("refresh").Return("refresh-hash")
	fx.tokenService.EXPECT().GetRefreshTokenDuration().Return(7 * 24 * time.Hour)
	fx.refreshTokenRepo.EXPECT().
		CreateRefreshToken(ctx, mock.AnythingOfType("*entity.RefreshToken")).
		RunAndReturn(func(_ context.Context, token *entity.RefreshToken) error {
			assert.Equal(t, newUserID, token.UserID)
			assert.Equal(t, "refresh-hash", token.TokenHash)
			return nil
		})

	output, err := fx.service.Register(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, newUserID, output.User.ID)
	assert.Equal(t, "alex@example.com", output.User.Email)
	assert.Equal(t, entity.RoleUser, output.User.Role)
	assert.Equal(t, "access", output.AccessToken)
	assert.Equal(t, "refresh", output.RefreshToken)
}

func TestAuthService_Register_EmailAlreadyRegistered(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Alex",
		Email:    "alex@example.com",
		Password: "secret-password",
	}

	fx.hasher.EXPECT().Hash("secret-password").Return("hashed", nil)
	fx.expectTransaction(ctx)
	fx.repoFactory.EXPECT().UserRepo().Return(fx.userRepo)
	fx.repoFactory.EXPECT().AuthRepo().Return(fx.authRepo)

	fx.authRepo.EXPECT().
		FindAuthentication(ctx, entity.ProviderTypeEmail, "alex@example.com").
		Return(&entity.Authentication{UserID: uuid.New()}, nil)

	output, err := fx.service.Register(ctx, input)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, Email: "alex@example.com", Role: entity.RoleUser}

	fx.expectTransaction(ctx)
	fx.repoFactory.EXPECT().AuthRepo().Return(fx.authRepo)
	fx.authRepo.EXPECT().
		FindAuthentication(ctx, entity.ProviderTypeEmail, "alex@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "hashed"}, nil)

	fx.hasher.EXPECT().Check("secret-password", "hashed").Return(true)
	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	fx.tokenService.EXPECT().GenerateTokens(userID, entity.RoleUser).Return("access", "refresh", nil)
	fx.tokenService.EXPECT().HashToken("refresh").Return("refresh-hash")
	fx.tokenService.EXPECT().GetRefreshTokenDuration().Return(7 * 24 * time.Hour)
	fx.refreshTokenRepo.EXPECT().
		CreateRefreshToken(ctx, mock.AnythingOfType("*entity.RefreshToken")).
		RunAndReturn(func(_ context.Context, token *entity.RefreshToken) error {
			assert.Equal(t, userID, token.UserID)
			assert.Equal(t, "refresh-hash", token.TokenHash)
			return nil
		})

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "alex@example.com", Password: "secret-password"})
	require.NoError(t, err)
	assert.Equal(t, "access", output.AccessToken)
	assert.Equal(t, "refresh", output.RefreshToken)
	assert.Equal(t, user.PublicView(), output.User)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()

	fx.expectTransaction(ctx)
	fx.repoFactory.EXPECT().AuthRepo().Return(fx.authRepo)
	fx.authRepo.EXPECT().
		FindAuthentication(ctx, entity.ProviderTypeEmail, "nobody@example.com").
		Return(nil, repository.ErrAuthNotFound)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "nobody@example.com", Password: "whatever"})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.expectTransaction(ctx)
	fx.repoFactory.EXPECT().AuthRepo().Return(fx.authRepo)
	fx.authRepo.EXPECT().
		FindAuthentication(ctx, entity.ProviderTypeEmail, "alex@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "hashed"}, nil)
	fx.hasher.EXPECT().Check("wrong", "hashed").Return(false)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "alex@example.com", Password: "wrong"})
	assert.Nil(t, output)

	// Wrong password reports the same error as an unknown email.
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_VerifyToken_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, Role: entity.RoleUser}
	claims := &service.Claims{UserID: userID, Role: entity.RoleUser, Type: service.TokenTypeAccess}

	fx.tokenService.EXPECT().ValidateToken("token").Return(claims, nil)
	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)

	output, err := fx.service.VerifyToken(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, user.PublicView(), output.User)
	assert.Equal(t, claims, output.Claims)
}

func TestAuthService_VerifyToken_RejectsRefreshToken(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	claims := &service.Claims{UserID: uuid.New(), Type: service.TokenTypeRefresh}

	fx.tokenService.EXPECT().ValidateToken("token").Return(claims, nil)

	output, err := fx.service.VerifyToken(ctx, "token")
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAuthService_VerifyToken_UserDeleted(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	claims := &service.Claims{UserID: userID, Type: service.TokenTypeAccess}

	fx.tokenService.EXPECT().ValidateToken("token").Return(claims, nil)
	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	output, err := fx.service.VerifyToken(ctx, "token")
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, Role: entity.RoleUser}
	claims := &service.Claims{UserID: userID, Type: service.TokenTypeRefresh}

	fx.tokenService.EXPECT().ValidateToken("refresh").Return(claims, nil)
	fx.expectTransaction(ctx)
	fx.repoFactory.EXPECT().UserRepo().Return(fx.userRepo)
	fx.repoFactory.EXPECT().RefreshTokenRepo().Return(fx.refreshTokenRepo)

	fx.tokenService.EXPECT().HashToken("refresh").Return("refresh-hash")
	fx.refreshTokenRepo.EXPECT().
		FindRefreshTokenByHash(ctx, "refresh-hash").
		Return(&entity.RefreshToken{UserID: userID, TokenHash: "refresh-hash"}, nil)
	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	fx.tokenService.EXPECT().GenerateTokens(userID, entity.RoleUser).Return("new-access", "unused-refresh", nil)

	output, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "refresh"})
	require.NoError(t, err)
	assert.Equal(t, "new-access", output.AccessToken)
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	claims := &service.Claims{UserID: uuid.New(), Type: service.TokenTypeAccess}

	fx.tokenService.EXPECT().ValidateToken("access").Return(claims, nil)

	output, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "access"})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_RefreshToken_SessionRevoked(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	claims := &service.Claims{UserID: uuid.New(), Type: service.TokenTypeRefresh}

	fx.tokenService.EXPECT().ValidateToken("refresh").Return(claims, nil)
	fx.expectTransaction(ctx)
	fx.repoFactory.EXPECT().UserRepo().Return(fx.userRepo)
	fx.repoFactory.EXPECT().RefreshTokenRepo().Return(fx.refreshTokenRepo)

	fx.tokenService.EXPECT().HashToken("refresh").Return("refresh-hash")
	fx.refreshTokenRepo.EXPECT().
		FindRefreshTokenByHash(ctx, "refresh-hash").
		Return(nil, repository.ErrTokenNotFound)

	output, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "refresh"})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_Logout_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()

	fx.tokenService.EXPECT().ValidateToken("refresh").Return(&service.Claims{Type: service.TokenTypeRefresh}, nil)
	fx.tokenService.EXPECT().HashToken("refresh").Return("refresh-hash")
	fx.refreshTokenRepo.EXPECT().DeleteRefreshTokenByHash(ctx, "refresh-hash").Return(nil)

	err := fx.service.Logout(ctx, &usecase.LogoutInput{RefreshToken: "refresh"})
	require.NoError(t, err)
}

func TestAuthService_Logout_AlreadyLoggedOut(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()

	fx.tokenService.EXPECT().ValidateToken("refresh").Return(&service.Claims{Type: service.TokenTypeRefresh}, nil)
	fx.tokenService.EXPECT().HashToken("refresh").Return("refresh-hash")
	fx.refreshTokenRepo.EXPECT().
		DeleteRefreshTokenByHash(ctx, "refresh-hash").
		Return(repository.ErrTokenNotFound)

	// Deleting an already-deleted session is not an error.
	err := fx.service.Logout(ctx, &usecase.LogoutInput{RefreshToken: "refresh"})
	require.NoError(t, err)
}

func TestAuthService_GoogleAuthURL(t *testing.T) {
	fx := createTestAuthService(t)

	fx.oauthService.EXPECT().
		BuildAuthorizationURL(mock.AnythingOfType("string")).
		RunAndReturn(func(state string) string {
			assert.Len(t, state, 64)
			return "https://accounts.google.com/o/oauth2/v2/auth?state=" + state
		})

	url, err := fx.service.GoogleAuthURL(context.Background())
	require.NoError(t, err)
	assert.Contains(t, url, "https://accounts.google.com/o/oauth2/v2/auth")
}

func TestAuthService_GoogleCallback_InvalidState(t *testing.T) {
	fx := createTestAuthService(t)

	fx.oauthService.EXPECT().ValidateState("bad-state").Return(false)

	output, err := fx.service.GoogleCallback(context.Background(), &usecase.GoogleCallbackInput{
		Code:  "code",
		State: "bad-state",
	})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrOAuthStateInvalid)
}

func TestAuthService_GoogleCallback_ExchangeFailed(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()

	fx.oauthService.EXPECT().ValidateState("state").Return(true)
	fx.oauthService.EXPECT().ExchangeCode(ctx, "code").Return(nil, errors.New("provider unavailable"))

	output, err := fx.service.GoogleCallback(ctx, &usecase.GoogleCallbackInput{Code: "code", State: "state"})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrOAuthFailed)
}

func TestAuthService_GoogleCallback_FirstSignInCreatesUser(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	oauthUser := &service.OAuthUser{
		ID:        "google-sub-123",
		Email:     "Alex@Example.com",
		Name:      "Alex",
		Provider:  entity.ProviderTypeGoogle,
		AvatarURL: "https://example.com/avatar.png",
	}

	fx.oauthService.EXPECT().ValidateState("state").Return(true)
	fx.oauthService.EXPECT().ExchangeCode(ctx, "code").Return(oauthUser, nil)

	fx.expectTransaction(ctx)
	fx.repoFactory.EXPECT().AuthRepo().Return(fx.authRepo)
	fx.repoFactory.EXPECT().UserRepo().Return(fx.userRepo)
	fx.repoFactory.EXPECT().RefreshTokenRepo().Return(fx.refreshTokenRepo)

	fx.authRepo.EXPECT().
		FindAuthentication(ctx, entity.ProviderTypeGoogle, "google-sub-123").
		Return(nil, repository.ErrAuthNotFound)
	fx.userRepo.EXPECT().
		FindByEmail(ctx, "alex@example.com").
		Return(nil, repository.ErrUserNotFound)

	newUserID := uuid.New()
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		RunAndReturn(func(_ context.Context, user *entity.User) error {
			assert.Equal(t, "alex@example.com", user.Email)
			assert.Equal(t, "https://example.com/avatar.png", user.AvatarURL)
			user.ID = newUserID
			return nil
		})

	fx.authRepo.EXPECT().
		CreateAuthentication(ctx, mock.AnythingOfType("*entity.Authentication")).
		RunAndReturn(func(_ context.Context, auth *entity.Authentication) error {
			assert.Equal(t, entity.ProviderTypeGoogle, auth.Provider)
			assert.Equal(t, "google-sub-123", auth.ProviderUserID)
			assert.Empty(t, auth.PasswordHash)
			return nil
		})

	fx.tokenService.EXPECT().GenerateTokens(newUserID, entity.RoleUser).Return("access", "refresh", nil)
	fx.tokenService.EXPECT().HashToken("refresh").Return("refresh-hash")
	fx.tokenService.EXPECT().GetRefreshTokenDuration().Return(7 * 24 * time.Hour)
	fx.refreshTokenRepo.EXPECT().
		CreateRefreshToken(ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Return(nil)

	output, err := fx.service.GoogleCallback(ctx, &usecase.GoogleCallbackInput{Code: "code", State: "state"})
	require.NoError(t, err)
	assert.Equal(t, "access", output.AccessToken)
	assert.Equal(t, newUserID, output.User.ID)
}

func TestAuthService_GoogleCallback_ExistingUserLogsIn(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, Name: "Alex", Email: "alex@example.com", Role: entity.RoleUser}
	oauthUser := &service.OAuthUser{
		ID:        "google-sub-123",
		Email:     "alex@example.com",
		Name:      "Alexandra",
		AvatarURL: "https://example.com/new-avatar.png",
	}

	fx.oauthService.EXPECT().ValidateState("state").Return(true)
	fx.oauthService.EXPECT().ExchangeCode(ctx, "code").Return(oauthUser, nil)

	fx.expectTransaction(ctx)
	fx.repoFactory.EXPECT().AuthRepo().Return(fx.authRepo)
	fx.repoFactory.EXPECT().UserRepo().Return(fx.userRepo)
	fx.repoFactory.EXPECT().RefreshTokenRepo().Return(fx.refreshTokenRepo)

	fx.authRepo.EXPECT().
		FindAuthentication(ctx, entity.ProviderTypeGoogle, "google-sub-123").
		Return(&entity.Authentication{UserID: userID}, nil)
	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)

	// Every Google sign-in refreshes the profile from the provider.
	fx.userRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.User")).
		RunAndReturn(func(_ context.Context, updated *entity.User) error {
			assert.Equal(t, "Alexandra", updated.Name)
			assert.Equal(t, "https://example.com/new-avatar.png", updated.AvatarURL)
			return nil
		})

	fx.tokenService.EXPECT().GenerateTokens(userID, entity.RoleUser).Return("access", "refresh", nil)
	fx.tokenService.EXPECT().HashToken("refresh").Return("refresh-hash")
	fx.tokenService.EXPECT().GetRefreshTokenDuration().Return(7 * 24 * time.Hour)
	fx.refreshTokenRepo.EXPECT().
		CreateRefreshToken(ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Return(nil)

	output, err := fx.service.GoogleCallback(ctx, &usecase.GoogleCallbackInput{Code: "code", State: "state"})
	require.NoError(t, err)
	assert.Equal(t, userID, output.User.ID)
	assert.Equal(t, "Alexandra", output.User.Name)
}

func TestAuthService_GoogleCallback_LinksExistingEmailAccount(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, Name: "Alex", Email: "alex@example.com", Role: entity.RoleUser}
	oauthUser := &service.OAuthUser{ID: "google-sub-123", Email: "Alex@Example.com", Name: "Alex"}

	fx.oauthService.EXPECT().ValidateState("state").Return(true)
	fx.oauthService.EXPECT().ExchangeCode(ctx, "code").Return(oauthUser, nil)

	fx.expectTransaction(ctx)
	fx.repoFactory.EXPECT().AuthRepo().Return(fx.authRepo)
	fx.repoFactory.EXPECT().UserRepo().Return(fx.userRepo)
	fx.repoFactory.EXPECT().RefreshTokenRepo().Return(fx.refreshTokenRepo)

	// The Google identity is new, but the email belongs to an account
	// registered with a password. The identity is linked, not duplicated.
	fx.authRepo.EXPECT().
		FindAuthentication(ctx, entity.ProviderTypeGoogle, "google-sub-123").
		Return(nil, repository.ErrAuthNotFound)
	fx.userRepo.EXPECT().FindByEmail(ctx, "alex@example.com").Return(user, nil)
	fx.authRepo.EXPECT().
		CreateAuthentication(ctx, mock.AnythingOfType("*entity.Authentication")).
		RunAndReturn(func(_ context.Context, auth *entity.Authentication) error {
			assert.Equal(t, userID, auth.UserID)
			assert.Equal(t, entity.ProviderTypeGoogle, auth.Provider)
			assert.Equal(t, "google-sub-123", auth.ProviderUserID)
			return nil
		})

	fx.tokenService.EXPECT().GenerateTokens(userID, entity.RoleUser).Return("access", "refresh", nil)
	fx.tokenService.EXPECT().HashToken("refresh").Return("refresh-hash")
	fx.tokenService.EXPECT().GetRefreshTokenDuration().Return(7 * 24 * time.Hour)
	fx.refreshTokenRepo.EXPECT().
		CreateRefreshToken(ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Return(nil)

	output, err := fx.service.GoogleCallback(ctx, &usecase.GoogleCallbackInput{Code: "code", State: "state"})
	require.NoError(t, err)
	assert.Equal(t, userID, output.User.ID)
}
