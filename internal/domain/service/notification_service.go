package service

import "context"

// NotificationService defines the interface for sending push notifications to
// user devices. Implementations are best-effort: a failed push never fails
// the operation that triggered it.
type NotificationService interface {
	// SendSingleNotification sends a push notification to a single device token.
	SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error

	// SendBatchNotification sends push notifications to multiple device tokens
	// (max 500) and reports which tokens the provider considers dead.
	SendBatchNotification(ctx context.Context, tokens []string, title, body string, data map[string]string) (successCount, failureCount int, invalidTokens []string, err error)
}
