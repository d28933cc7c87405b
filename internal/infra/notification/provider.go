package notification

import (
	"context"
	"log/slog"

	"fitpulse/config"
	"fitpulse/internal/domain/service"

	"go.uber.org/fx"
)

// noopNotificationService is used when Firebase is not configured. Pushes are
// best-effort, so a silent no-op keeps local development credential-free.
type noopNotificationService struct {
	logger *slog.Logger
}

func (s *noopNotificationService) SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error {
	s.logger.Debug("[NoopNotification] Push disabled, skipping", slog.String("title", title))

	return nil
}

func (s *noopNotificationService) SendBatchNotification(ctx context.Context, tokens []string, title, body string, data map[string]string) (int, int, []string, error) {
	s.logger.Debug("[NoopNotification] Push disabled, skipping batch", slog.Int("tokens", len(tokens)))

	return 0, 0, nil, nil
}

// Params holds dependencies for the notification service, injected by Fx.
type Params struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewNotificationService creates a NotificationService based on configuration.
func NewNotificationService(params Params) (service.NotificationService, error) {
	cfg := params.Config.Firebase
	if cfg == nil || cfg.CredentialsPath == "" {
		params.Logger.Info("Firebase not configured, using no-op notification service")

		return &noopNotificationService{logger: params.Logger}, nil
	}

	params.Logger.Info("Using Firebase notification service",
		slog.String("project_id", cfg.ProjectID),
	)

	return NewFirebaseService(params.Ctx, cfg.CredentialsPath)
}
