package util

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"cardscan/api/internal/ocr/types"
)

var ErrInvalidImage = errors.New("invalid image format")

// MaxImagePixels caps the declared width*height of an image before it is decoded.
const MaxImagePixels = 40_000_000

// passthroughMIME lists formats the models accept as-is but image.Decode cannot read.
var passthroughMIME = map[string]bool{
	"image/webp": true,
}

// IsImageContentType reports whether a declared Content-Type is image/*.
func IsImageContentType(ct string) bool {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		mt = ct
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mt)), "image/")
}

// SniffMIME detects the MIME type from content bytes.
func SniffMIME(b []byte) string {
	return mimetype.Detect(b).String()
}

// EncodeImage re-encodes an uploaded picture as an RGB JPEG so every provider gets
// the same, well-formed input. Transparent areas are flattened onto white.
func EncodeImage(data []byte) (types.EncodedImage, error) {
	if len(data) == 0 {
		return types.EncodedImage{}, ErrInvalidImage
	}
	sniffed := SniffMIME(data)
	if !strings.HasPrefix(sniffed, "image/") {
		return types.EncodedImage{}, fmt.Errorf("%w: detected %s", ErrInvalidImage, sniffed)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if passthroughMIME[sniffed] {
			return types.EncodedImage{MIME: sniffed, Data: data}, nil
		}
		return types.EncodedImage{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if px := int64(cfg.Width) * int64(cfg.Height); px <= 0 || px > MaxImagePixels {
		return types.EncodedImage{}, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidImage, cfg.Width, cfg.Height, MaxImagePixels)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return types.EncodedImage{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	b := img.Bounds()
	canvas := image.NewRGBA(b)
	draw.Draw(canvas, b, image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, b, img, b.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: 90}); err != nil {
		return types.EncodedImage{}, fmt.Errorf("jpeg encode: %w", err)
	}
	return types.EncodedImage{MIME: "image/jpeg", Data: buf.Bytes()}, nil
}
