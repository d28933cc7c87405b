package usecase

import (
	"context"

	"fitpulse/internal/domain/entity"

	"github.com/google/uuid"
)

// UserUsecase defines the interface for profile operations.
type UserUsecase interface {
	// GetProfile loads the user behind an authenticated request.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// GetProfileQR renders a PNG QR code that other users can scan to open
	// this user's profile.
	GetProfileQR(ctx context.Context, userID uuid.UUID) ([]byte, error)
}
