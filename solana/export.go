package solana

import (
	"encoding/base64"
	"fmt"

	"github.com/AlexZinkM/multiwallet/internal/model"
	"github.com/AlexZinkM/multiwallet/internal/store"

	"github.com/skip2/go-qrcode"
)

// Export returns the user's active wallet with its decrypted private key and
// a QR code of the address, or nil when the user has no wallets. The caller
// must not persist the returned key material.
func Export(st *store.Store, userID string) (*model.ExportedWallet, error) {
	detail, err := st.GetActiveWallet(userID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, nil
	}

	qrCode, err := generateQRCode(detail.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	return &model.ExportedWallet{
		ID:         detail.ID,
		Name:       detail.Name,
		PublicKey:  detail.PublicKey,
		PrivateKey: detail.PrivateKey,
		QR:         qrCode,
	}, nil
}

// generateQRCode generates QR code of address in base64
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	// Get PNG image
	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	// Encode to base64
	return base64.StdEncoding.EncodeToString(png), nil
}
