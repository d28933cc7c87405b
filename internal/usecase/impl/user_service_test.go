package impl

import (
	"context"
	"testing"

	"fitpulse/internal/domain/entity"
	domainerrors "fitpulse/internal/domain/errors"
	"fitpulse/internal/domain/repository"
	mockRepo "fitpulse/internal/mocks/repository"
	mockSvc "fitpulse/internal/mocks/service"
	"fitpulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userServiceFixtures struct {
	service       usecase.UserUsecase
	userRepo      *mockRepo.MockUserRepository
	qrcodeService *mockSvc.MockQRCodeService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	qrcodeService := mockSvc.NewMockQRCodeService(t)

	svc := NewUserService(UserServiceParams{
		UserRepo:      userRepo,
		QRCodeService: qrcodeService,
		Logger:        newDiscardLogger(),
	})

	return userServiceFixtures{
		service:       svc,
		userRepo:      userRepo,
		qrcodeService: qrcodeService,
	}
}

func TestUserService_GetProfile_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, Name: "Alice", Email: "alice@example.com"}

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)

	got, err := fx.service.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	got, err := fx.service.GetProfile(ctx, userID)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_GetProfileQR_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	pngBytes := []byte{0x89, 0x50, 0x4E, 0x47}

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(&entity.User{ID: userID}, nil)
	fx.qrcodeService.EXPECT().GenerateProfileQR(userID).Return(pngBytes, nil)

	png, err := fx.service.GetProfileQR(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, png)
}

func TestUserService_GetProfileQR_UserDeleted(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()

	// No QR is generated for a user that no longer exists.
	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	png, err := fx.service.GetProfileQR(ctx, userID)
	assert.Nil(t, png)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
