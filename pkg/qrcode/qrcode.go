package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

// DefaultSize is the pixel size used when callers pass a non-positive size.
const DefaultSize = 256

var (
	ErrEmptyContent = errors.New("qrcode: empty content")
	ErrEncodeFailed = errors.New("qrcode: failed to encode content")
)

// Generate returns a PNG QR code of the given pixel size encoding content.
func Generate(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultSize
	}

	png, err := qr.Encode(content, qr.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrEncodeFailed, err)
	}
	return png, nil
}

// GenerateBase64Image returns the QR code as a data URI suitable for an
// HTML img src attribute.
func GenerateBase64Image(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(png)), nil
}
