package qrcode

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRCodeService_GenerateProfileQR_ReturnsPNG(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	png, err := svc.GenerateProfileQR(uuid.New())
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, png[:4])
}

func TestQRCodeService_ParseProfileQR_RoundTrip(t *testing.T) {
	svc := NewQRCodeService(256, "M")
	userID := uuid.New()

	payload, err := json.Marshal(QRCodeData{UserID: userID.String(), Type: "profile"})
	require.NoError(t, err)

	parsed, err := svc.ParseProfileQR(string(payload))
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestQRCodeService_ParseProfileQR_RejectsWrongType(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	payload, err := json.Marshal(QRCodeData{UserID: uuid.New().String(), Type: "coupon"})
	require.NoError(t, err)

	parsed, err := svc.ParseProfileQR(string(payload))
	assert.Equal(t, uuid.Nil, parsed)
	assert.Error(t, err)
}

func TestQRCodeService_ParseProfileQR_RejectsGarbage(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	parsed, err := svc.ParseProfileQR("not json")
	assert.Equal(t, uuid.Nil, parsed)
	assert.Error(t, err)
}

func TestNewQRCodeService_UnknownCorrectionLevelDefaultsToMedium(t *testing.T) {
	svc := NewQRCodeService(128, "X")

	png, err := svc.GenerateProfileQR(uuid.New())
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
