package usecase

import (
	"context"

	"fitpulse/internal/domain/entity"

	"github.com/google/uuid"
)

// DeviceInfo represents device information for registration
type DeviceInfo struct {
	FCMToken string `json:"fcm_token"`
	Platform string `json:"platform"`
}

// DeviceUsecase defines the interface for push-device management use cases
type DeviceUsecase interface {
	// RegisterDevice registers a new device or reactivates an existing one
	RegisterDevice(ctx context.Context, userID uuid.UUID, deviceInfo *DeviceInfo) (*entity.UserDevice, error)

	// DeactivateDevice deactivates a device so it stops receiving pushes
	DeactivateDevice(ctx context.Context, userID, deviceID uuid.UUID) error
}
