package qrpay

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// DefaultQRSize is the default size of generated QR codes in pixels.
const DefaultQRSize = 420

// QRRecoveryLevel is the error recovery level for QR codes.
// High (30%) leaves room for the logo drawn over the centre of the code.
var QRRecoveryLevel = qrcode.High

// GenerateQRPNG generates a QR code as PNG bytes.
func GenerateQRPNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}

	data, err := qrcode.Encode(content, QRRecoveryLevel, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	return data, nil
}

// DataURL wraps PNG bytes in a data URL that can be used directly in an
// HTML img src attribute, e.g. data:image/png;base64,iVBORw0KGgo...
func DataURL(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}

// generateQRImage renders content as an image of roughly size x size pixels.
func generateQRImage(content string, size int) (image.Image, error) {
	q, err := qrcode.New(content, QRRecoveryLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return q.Image(size), nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
