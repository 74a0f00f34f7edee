package titler

import (
	"fmt"
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

func qrBadge(content string, size int) (image.Image, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr code for %s: %w", content, err)
	}
	return q.Image(size), nil
}
