package service

import "github.com/google/uuid"

// QRCodeService generates scannable profile-share codes so one user can add
// another as a buddy from a second phone.
type QRCodeService interface {
	// GenerateProfileQR renders a PNG QR code encoding the user's public id.
	GenerateProfileQR(userID uuid.UUID) ([]byte, error)

	// ParseProfileQR decodes scanned QR payload data back into a user id.
	ParseProfileQR(qrData string) (uuid.UUID, error)
}
