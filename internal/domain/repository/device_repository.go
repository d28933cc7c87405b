// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"fitpulse/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrDeviceNotFound is returned when a device is not found.
var ErrDeviceNotFound = errors.New("device not found")

// DeviceRepository defines the interface for push-device persistence.
type DeviceRepository interface {
	// CreateDevice persists a new device for a user. Re-registering the same
	// device token refreshes the existing record instead of duplicating it.
	CreateDevice(ctx context.Context, device *entity.UserDevice) error

	// FindDeviceByID retrieves a device by its unique ID.
	FindDeviceByID(ctx context.Context, id uuid.UUID) (*entity.UserDevice, error)

	// FindActiveDevicesByUser retrieves all active devices for a specific user.
	FindActiveDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error)

	// DeactivateDevice marks a device inactive so it no longer receives pushes.
	DeactivateDevice(ctx context.Context, id uuid.UUID) error
}
