package service

import (
	"context"
	"time"
)

// MessageEvent is published after a direct message is stored, so downstream
// consumers (feed fan-out, analytics, future real-time transports) can react
// without the HTTP request waiting on them.
type MessageEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	MessageID  string    `json:"message_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	SentAt     time.Time `json:"sent_at"`
}

// EventPublisher defines the interface for publishing events to a message queue.
type EventPublisher interface {
	// PublishMessageEvent publishes a message-created event for async processing.
	PublishMessageEvent(ctx context.Context, event *MessageEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
