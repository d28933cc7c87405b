// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"fitpulse/config"
	"fitpulse/internal/delivery/http/response"
	"fitpulse/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for credential and token handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	cfg    *config.Config
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		cfg:    cfg,
		logger: logger,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register handles the account registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	// Registration logs the new account in, same response shape as Login.
	return response.Success(c, http.StatusCreated, tokenPairResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         output.User,
	}, "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         any    `json:"user"`
}

// Login handles the email/password login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokenPairResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         output.User,
	}, "Login successful")
}

// Verify validates the bearer access token and returns its user.
func (h *AuthHandler) Verify(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if authHeader == "" || tokenString == authHeader {
		return response.Unauthorized(c, "INVALID_TOKEN", "Bearer token is required")
	}

	output, err := h.uc.VerifyToken(c.Request().Context(), tokenString)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"user": output.User,
		"role": output.Claims.Role,
	}, "Token is valid")
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Refresh handles the token refresh request.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refresh token input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.RefreshToken(c.Request().Context(), &usecase.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"accessToken": output.AccessToken,
	}, "Token refreshed successfully")
}

// Logout ends the session behind the presented refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid logout input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Logout(c.Request().Context(), &usecase.LogoutInput{
		RefreshToken: req.RefreshToken,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// GoogleLogin starts the Google Sign-In flow by redirecting the browser to
// the provider consent page.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	oauthURL, err := h.uc.GoogleAuthURL(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusFound, oauthURL)
}

// GoogleCallback completes the Google Sign-In handshake. The browser lands
// here from Google, so the handler always answers with a redirect back into
// the frontend, never with JSON.
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	if errParam := c.QueryParam("error"); errParam != "" {
		return h.redirectWithError(c, errParam)
	}

	input := &usecase.GoogleCallbackInput{
		Code:  c.QueryParam("code"),
		State: c.QueryParam("state"),
	}
	if input.Code == "" || input.State == "" {
		return h.redirectWithError(c, "missing_code_or_state")
	}

	output, err := h.uc.GoogleCallback(c.Request().Context(), input)
	if err != nil {
		h.logger.Warn("Google callback failed", slog.Any("error", err))

		return h.redirectWithError(c, "oauth_failed")
	}

	target, err := url.Parse(h.cfg.GoogleOAuth.SuccessRedirectURL)
	if err != nil {
		return errors.Wrap(err, "invalid success redirect URL")
	}

	query := target.Query()
	query.Set("access_token", output.AccessToken)
	query.Set("refresh_token", output.RefreshToken)
	target.RawQuery = query.Encode()

	return c.Redirect(http.StatusFound, target.String())
}

func (h *AuthHandler) redirectWithError(c echo.Context, code string) error {
	target, err := url.Parse(h.cfg.GoogleOAuth.ErrorRedirectURL)
	if err != nil {
		return errors.Wrap(err, "invalid error redirect URL")
	}

	query := target.Query()
	query.Set("error", code)
	target.RawQuery = query.Encode()

	return c.Redirect(http.StatusFound, target.String())
}
