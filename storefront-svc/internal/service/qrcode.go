package service

import (
	"errors"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// ErrQRContentTooLong is returned when the link does not fit in the largest QR
// version.
var ErrQRContentTooLong = errors.New("content does not fit in a qr code")

// DefaultQRGenerator uses the lowest error correction level, which leaves the
// most room for long order messages.
type DefaultQRGenerator struct {
	Size int
}

func (g DefaultQRGenerator) Generate(content string) ([]byte, error) {
	size := g.Size
	if size == 0 {
		size = 256
	}
	png, err := qrcode.Encode(content, qrcode.Low, size)
	if err != nil && content != "" {
		// go-qrcode only fails on non-empty byte content when it runs out of
		// versions, and its errors are unexported.
		return nil, fmt.Errorf("%w: %v", ErrQRContentTooLong, err)
	}
	return png, err
}

var _ QRGenerator = DefaultQRGenerator{}
