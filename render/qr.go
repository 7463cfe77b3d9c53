package render

import (
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

// EncodeQR renders text as a square QR bitmap of the given pixel size:
// error-correction level M, no quiet zone, black on white.
func EncodeQR(text string, sizePx int) (image.Image, error) {
	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true
	return q.Image(sizePx), nil
}
