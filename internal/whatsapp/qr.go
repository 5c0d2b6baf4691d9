package whatsapp

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const qrPNGPath = "whatsapp_qr.png"

// WriteQRFile saves the pairing code as a PNG next to the binary for
// headless setups.
func WriteQRFile(code, path string) error {
	if err := qrcode.WriteFile(code, qrcode.Medium, 512, path); err != nil {
		return fmt.Errorf("could not save QR code PNG: %w", err)
	}
	return nil
}

// GenerateQRDataURL renders the pairing code as an inline PNG.
func GenerateQRDataURL(code string) (string, error) {
	png, err := qrcode.Encode(code, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
