package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRService renders QR codes pointing below a fixed base URL.
type QRService struct {
	baseURL string
}

// NewQRService takes the URL prefix codes are appended to, e.g.
// "https://example.org/pledge/payment/".
func NewQRService(baseURL string) *QRService {
	return &QRService{
		baseURL: baseURL,
	}
}

// GenerateQRCode returns a PNG of size x size pixels encoding baseURL+code.
func (s *QRService) GenerateQRCode(code string, size int) ([]byte, error) {
	fullURL := fmt.Sprintf("%s%s", s.baseURL, code)

	png, err := qrcode.Encode(fullURL, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}

	return png, nil
}
