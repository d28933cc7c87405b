// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	deliverycontext "fitpulse/internal/delivery/context"
	"fitpulse/internal/domain/entity"
	domainerrors "fitpulse/internal/domain/errors"
	"fitpulse/internal/domain/repository"
	"fitpulse/internal/domain/service"
	"fitpulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	oauthService     service.OAuthService
	logger           *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	OAuthService     service.OAuthService
	Logger           *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		oauthService:     params.OAuthService,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete account registration process.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	var registeredUser *entity.User

	// Execute the entire creation process within a single database transaction
	// to ensure atomicity between the user row and its credential.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()

		// 1. Check if a credential with this email already exists.
		_, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, email)
		if err == nil {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
		}
		if !errors.Is(err, repository.ErrAuthNotFound) {
			return errors.Wrap(err, "failed to find authentication")
		}

		// 2. Create the user.
		newUser := &entity.User{
			Name:  input.Name,
			Email: email,
			Role:  entity.RoleUser,
		}
		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		// 3. Create the email/password credential.
		newAuth := &entity.Authentication{
			UserID:         newUser.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: email,
			PasswordHash:   hashedPassword,
		}
		if err := authRepo.CreateAuthentication(ctx, newAuth); err != nil {
			return errors.Wrap(err, "failed to create authentication during registration")
		}

		registeredUser = newUser

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	// Registration opens the first session right away, same contract as Login.
	accessToken, refreshTokenString, err := srv.tokenService.GenerateTokens(registeredUser.ID, registeredUser.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}
	if err := srv.storeRefreshToken(ctx, srv.refreshTokenRepo, registeredUser.ID, refreshTokenString); err != nil {
		return nil, errors.Wrap(err, "failed to create refresh token during registration")
	}
	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID))

	return &usecase.RegisterOutput{
		User:         registeredUser.PublicView(),
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
	}, nil
}

// Login orchestrates the login process. A missing account and a wrong
// password are reported identically so the response never leaks which
// emails are registered.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := normalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting user login", slog.String("email", email))

	authRecord, err := srv.loadLoginAuth(ctx, email)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	// Check password outside transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, authRecord.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	loggedInUser, err := srv.userRepo.FindByID(ctx, authRecord.UserID)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load login user")
	}

	accessToken, refreshTokenString, err := srv.tokenService.GenerateTokens(loggedInUser.ID, loggedInUser.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	if err := srv.storeRefreshToken(ctx, srv.refreshTokenRepo, loggedInUser.ID, refreshTokenString); err != nil {
		return nil, errors.Wrap(err, "failed to create refresh token during login")
	}
	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", loggedInUser.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         loggedInUser.PublicView(),
	}, nil
}

// VerifyToken validates a bearer access token and loads its user.
func (srv *authService) VerifyToken(ctx context.Context, tokenString string) (*usecase.VerifyTokenOutput, error) {
	claims, err := srv.tokenService.ValidateToken(tokenString)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, err.Error())
	}

	// Refresh tokens are not bearer credentials.
	if claims.Type != service.TokenTypeAccess {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("token is not an access token")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("token subject no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load token subject")
	}

	return &usecase.VerifyTokenOutput{User: user.PublicView(), Claims: claims}, nil
}

// RefreshToken handles the process of issuing a new access token using a refresh token.
// The refresh token remains unchanged.
func (srv *authService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	srv.log(ctx).Info("Attempting to refresh access token")

	claims, err := srv.tokenService.ValidateToken(input.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, err.Error())
	}
	if claims.Type != service.TokenTypeRefresh {
		return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("token is not a refresh token")
	}

	var newAccessToken string

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		refreshRepo := repoFactory.RefreshTokenRepo()

		// 1. Verify the session still exists in the database.
		tokenHash := srv.tokenService.HashToken(input.RefreshToken)
		if _, err := refreshRepo.FindRefreshTokenByHash(ctx, tokenHash); err != nil {
			return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token not found or expired")
		}

		// 2. Fetch the user.
		user, err := userRepo.FindByID(ctx, claims.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}

		// 3. Generate only a new access token (refresh token remains unchanged).
		newAccessToken, _, err = srv.tokenService.GenerateTokens(user.ID, user.Role)
		if err != nil {
			return errors.Wrap(err, "failed to generate new access token")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to execute refresh token transaction", slog.Any("error", err))

		return nil, err
	}

	return &usecase.RefreshTokenOutput{AccessToken: newAccessToken}, nil
}

// Logout handles the process of invalidating a user's session by deleting their refresh token.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	srv.log(ctx).Info("Attempting to log out")

	if _, err := srv.tokenService.ValidateToken(input.RefreshToken); err != nil {
		// Even if the token is invalid, we can proceed to delete it from the database.
		srv.log(ctx).Warn("Logout with invalid token", slog.Any("error", err))
	}

	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	if err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			// Session already gone. Logout is idempotent.
			return nil
		}
		srv.log(ctx).Error("Failed to delete refresh token", slog.Any("error", err))

		return errors.Wrap(err, "failed to delete refresh token")
	}
	srv.log(ctx).Info("Successfully logged out")

	return nil
}

// GoogleAuthURL builds the provider consent URL for the redirect handshake.
func (srv *authService) GoogleAuthURL(ctx context.Context) (string, error) {
	state, err := generateOAuthState()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate oauth state")
	}

	srv.log(ctx).Debug("Built Google authorization URL")

	return srv.oauthService.BuildAuthorizationURL(state), nil
}

// GoogleCallback completes the redirect handshake, creating the account on
// first sign-in.
func (srv *authService) GoogleCallback(ctx context.Context, input *usecase.GoogleCallbackInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Info("Handling Google callback")

	// 1. The state must match one we issued, exactly once.
	if !srv.oauthService.ValidateState(input.State) {
		return nil, domainerrors.ErrOAuthStateInvalid.WrapMessage("state parameter did not validate")
	}

	// 2. Trade the code for the provider's view of the user.
	oauthUser, err := srv.oauthService.ExchangeCode(ctx, input.Code)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrOAuthFailed, err.Error())
	}

	// 3. Find or create the account and open a session.
	var loggedInUser *entity.User
	var accessToken, refreshTokenString string

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := srv.findOrCreateGoogleUser(ctx, repoFactory, oauthUser)
		if err != nil {
			return err
		}
		loggedInUser = user

		accessToken, refreshTokenString, err = srv.tokenService.GenerateTokens(user.ID, user.Role)
		if err != nil {
			return errors.Wrap(err, "failed to generate tokens for google auth")
		}

		return srv.storeRefreshTokenWithFactory(ctx, repoFactory, user.ID, refreshTokenString)
	})

	if err != nil {
		srv.log(ctx).Error("Failed to execute Google authentication transaction", slog.Any("error", err))

		return nil, err
	}

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         loggedInUser.PublicView(),
	}, nil
}

func (srv *authService) loadLoginAuth(ctx context.Context, email string) (*entity.Authentication, error) {
	var authRecord *entity.Authentication

	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		authRepo := repoFactory.AuthRepo()

		var findAuthErr error
		authRecord, findAuthErr = authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, email)
		if findAuthErr != nil {
			if errors.Is(findAuthErr, repository.ErrAuthNotFound) {
				return errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
			}

			return errors.Wrap(findAuthErr, "failed to find authentication")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return authRecord, nil
}

// findOrCreateGoogleUser finds the existing account behind a Google identity,
// links the identity to an account that already uses the same email, or
// provisions a new account.
func (srv *authService) findOrCreateGoogleUser(ctx context.Context, repoFactory repository.RepositoryFactory, oauthUser *service.OAuthUser) (*entity.User, error) {
	authRepo := repoFactory.AuthRepo()
	userRepo := repoFactory.UserRepo()

	authRecord, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeGoogle, oauthUser.ID)
	if err != nil && !errors.Is(err, repository.ErrAuthNotFound) {
		return nil, errors.Wrap(err, "failed to find authentication")
	}

	if err == nil {
		user, err := userRepo.FindByID(ctx, authRecord.UserID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to find user by id for google auth")
		}

		return srv.refreshGoogleProfile(ctx, userRepo, user, oauthUser)
	}

	// No Google identity yet. An account registered with the same email gets
	// the identity linked instead of a duplicate account.
	existing, err := userRepo.FindByEmail(ctx, normalizeEmail(oauthUser.Email))
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by email for google auth")
	}

	if err == nil {
		newAuth := &entity.Authentication{
			UserID:         existing.ID,
			Provider:       entity.ProviderTypeGoogle,
			ProviderUserID: oauthUser.ID,
		}
		if err := authRepo.CreateAuthentication(ctx, newAuth); err != nil {
			return nil, errors.Wrap(err, "failed to link Google authentication")
		}

		return srv.refreshGoogleProfile(ctx, userRepo, existing, oauthUser)
	}

	return srv.createGoogleUser(ctx, userRepo, authRepo, oauthUser)
}

// refreshGoogleProfile carries the provider's current name and avatar onto
// the account on every sign-in.
func (srv *authService) refreshGoogleProfile(ctx context.Context, userRepo repository.UserRepository, user *entity.User, oauthUser *service.OAuthUser) (*entity.User, error) {
	if user.Name == oauthUser.Name && user.AvatarURL == oauthUser.AvatarURL {
		return user, nil
	}

	user.Name = oauthUser.Name
	user.AvatarURL = oauthUser.AvatarURL
	if err := userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to refresh profile from google")
	}

	return user, nil
}

// createGoogleUser creates a new account for a first-time Google sign-in.
func (srv *authService) createGoogleUser(ctx context.Context, userRepo repository.UserRepository, authRepo repository.AuthRepository, oauthUser *service.OAuthUser) (*entity.User, error) {
	srv.log(ctx).Info("Google user not found, creating new user", slog.String("email", oauthUser.Email))

	newUser := &entity.User{
		Name:      oauthUser.Name,
		Email:     normalizeEmail(oauthUser.Email),
		Role:      entity.RoleUser,
		AvatarURL: oauthUser.AvatarURL,
	}

	if err := userRepo.Create(ctx, newUser); err != nil {
		return nil, errors.Wrap(err, "failed to create user for Google authentication")
	}

	newAuth := &entity.Authentication{
		UserID:         newUser.ID,
		Provider:       entity.ProviderTypeGoogle,
		ProviderUserID: oauthUser.ID,
	}

	if err := authRepo.CreateAuthentication(ctx, newAuth); err != nil {
		return nil, errors.Wrap(err, "failed to create Google authentication")
	}

	return newUser, nil
}

func (srv *authService) storeRefreshTokenWithFactory(ctx context.Context, repoFactory repository.RepositoryFactory, userID uuid.UUID, refreshTokenString string) error {
	return srv.storeRefreshToken(ctx, repoFactory.RefreshTokenRepo(), userID, refreshTokenString)
}

func (srv *authService) storeRefreshToken(ctx context.Context, refreshRepo repository.RefreshTokenRepository, userID uuid.UUID, refreshTokenString string) error {
	newRefreshToken := &entity.RefreshToken{
		UserID:    userID,
		TokenHash: srv.tokenService.HashToken(refreshTokenString),
		ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}

	if err := refreshRepo.CreateRefreshToken(ctx, newRefreshToken); err != nil {
		return errors.Wrap(err, "failed to store refresh token")
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func generateOAuthState() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return hex.EncodeToString(bytes), nil
}
