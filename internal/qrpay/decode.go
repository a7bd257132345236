package qrpay

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
)

// MaxImageBytes caps the size of an uploaded QR image.
const MaxImageBytes = 10 << 20

var (
	// ErrNoQRCode is returned when an image does not contain a readable QR code.
	ErrNoQRCode = errors.New("qrpay: no QR code found in image")
	// ErrUnreadableImage is returned when the input is not a supported image.
	ErrUnreadableImage = errors.New("qrpay: unreadable image")
)

// DecodeImage reads a PNG or JPEG image and returns the text of the QR code in it.
func DecodeImage(r io.Reader) (string, error) {
	img, _, err := image.Decode(io.LimitReader(r, MaxImageBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to prepare image: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := zxingqr.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoQRCode, err)
	}

	text := result.GetText()
	if text == "" {
		return "", ErrNoQRCode
	}
	return text, nil
}
