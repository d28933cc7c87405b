package impl

import (
	"context"
	"log/slog"

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

// userService implements the UserUsecase interface.
type userService struct {
	userRepo      repository.UserRepository
	qrcodeService service.QRCodeService
	logger        *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo      repository.UserRepository
	QRCodeService service.QRCodeService
	Logger        *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:      params.UserRepo,
		qrcodeService: params.QRCodeService,
		logger:        params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile loads the user behind an authenticated request.
func (srv *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("profile not found")
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return user, nil
}

// GetProfileQR renders a PNG QR code encoding the user's public id.
func (srv *userService) GetProfileQR(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	// Confirm the user still exists before handing out a scannable code.
	if _, err := srv.GetProfile(ctx, userID); err != nil {
		return nil, err
	}

	png, err := srv.qrcodeService.GenerateProfileQR(userID)
	if err != nil {
		srv.log(ctx).Error("Failed to generate profile QR code", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate profile QR code")
	}

	return png, nil
}
