package impl

import (
	"context"
	"log/slog"

	deliverycontext "fitpulse/internal/delivery/context"
	"fitpulse/internal/domain/entity"
	domainerrors "fitpulse/internal/domain/errors"
	"fitpulse/internal/domain/repository"
	"fitpulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// deviceService implements the DeviceUsecase interface.
type deviceService struct {
	deviceRepo repository.DeviceRepository
	logger     *slog.Logger
}

// DeviceServiceParams holds dependencies for deviceService, injected by Fx.
type DeviceServiceParams struct {
	fx.In

	DeviceRepo repository.DeviceRepository
	Logger     *slog.Logger
}

// NewDeviceService is the constructor for deviceService.
func NewDeviceService(params DeviceServiceParams) usecase.DeviceUsecase {
	return &deviceService{
		deviceRepo: params.DeviceRepo,
		logger:     params.Logger,
	}
}

func (srv *deviceService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterDevice registers a new device or reactivates an existing one.
func (srv *deviceService) RegisterDevice(ctx context.Context, userID uuid.UUID, deviceInfo *usecase.DeviceInfo) (*entity.UserDevice, error) {
	if deviceInfo.Platform != "ios" && deviceInfo.Platform != "android" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("platform must be ios or android")
	}

	device := &entity.UserDevice{
		UserID:   userID,
		FCMToken: deviceInfo.FCMToken,
		Platform: deviceInfo.Platform,
	}

	if err := srv.deviceRepo.CreateDevice(ctx, device); err != nil {
		srv.log(ctx).Error("Failed to register device", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to register device")
	}
	srv.log(ctx).Debug("Device registered", slog.Any("deviceID", device.ID), slog.String("platform", device.Platform))

	return device, nil
}

// DeactivateDevice deactivates a device so it stops receiving pushes.
// Only the device's owner may deactivate it.
func (srv *deviceService) DeactivateDevice(ctx context.Context, userID, deviceID uuid.UUID) error {
	device, err := srv.deviceRepo.FindDeviceByID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return domainerrors.ErrDeviceNotFound.WrapMessage("device not found")
		}

		return errors.Wrap(err, "failed to find device")
	}

	if device.UserID != userID {
		return errors.Wrap(domainerrors.ErrForbidden, "device does not belong to user")
	}

	if err := srv.deviceRepo.DeactivateDevice(ctx, deviceID); err != nil {
		return errors.Wrap(err, "failed to deactivate device")
	}
	srv.log(ctx).Debug("Device deactivated", slog.Any("deviceID", deviceID))

	return nil
}
