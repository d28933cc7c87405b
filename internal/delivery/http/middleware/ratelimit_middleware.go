package middleware

import (
	"fmt"
	"log/slog"
	"time"

	"fitpulse/config"
	domainerrors "fitpulse/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRateLimit  = 20
	defaultRateWindow = time.Minute
)

// RateLimitMiddleware applies a fixed-window counter per client IP and route,
// backed by Redis. Credential endpoints sit behind it so password guessing is
// throttled before it reaches bcrypt.
type RateLimitMiddleware struct {
	client *redis.Client
	logger *slog.Logger
	limit  int
	window time.Duration
}

// NewRateLimitMiddleware is the constructor for RateLimitMiddleware.
func NewRateLimitMiddleware(client *redis.Client, cfg *config.Config, logger *slog.Logger) *RateLimitMiddleware {
	limit := defaultRateLimit
	window := defaultRateWindow
	if cfg.RateLimit != nil {
		if cfg.RateLimit.Limit > 0 {
			limit = cfg.RateLimit.Limit
		}
		if cfg.RateLimit.Window > 0 {
			window = cfg.RateLimit.Window
		}
	}

	return &RateLimitMiddleware{
		client: client,
		logger: logger,
		limit:  limit,
		window: window,
	}
}

// Limit counts requests in the current window and rejects the caller once the
// limit is exceeded. Redis failures let the request through rather than take
// the API down with the limiter.
func (m *RateLimitMiddleware) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		key := fmt.Sprintf("ratelimit:%s:%s", c.Path(), c.RealIP())

		count, err := m.client.Incr(ctx, key).Result()
		if err != nil {
			m.logger.Warn("Rate limiter unavailable, allowing request", slog.Any("error", err))

			return next(c)
		}

		if count == 1 {
			if err := m.client.Expire(ctx, key, m.window).Err(); err != nil {
				m.logger.Warn("Failed to set rate limit window", slog.Any("error", err))
			}
		}

		if count > int64(m.limit) {
			return domainerrors.ErrRateLimited.WrapMessage("rate limit exceeded for " + c.RealIP())
		}

		return next(c)
	}
}
