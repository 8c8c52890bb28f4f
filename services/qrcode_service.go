// Package services holds small shared services used by the controllers.
// File: services/qrcode_service.go
package services

import (
	"github.com/skip2/go-qrcode"
)

// GenerateScheduleQRCode creates a QR code PNG pointing at the public
// schedule page, shown on the dashboard so admins can hand the live
// schedule to visitors.
func GenerateScheduleQRCode(publicSiteURL string, size int) ([]byte, error) {
	png, err := qrcode.Encode(publicSiteURL+"/schedule", qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}
