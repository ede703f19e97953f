// Package signature turns a user-supplied signature image into a PNG that can
// be embedded into a PDF page.
//
// Accepted inputs:
//   - PNG, JPEG or WebP bytes (file upload)
//   - a data URL as produced by canvas.toDataURL()
//
// Images wider than the configured maximum are downscaled so a phone photo of
// a signature does not bloat the document.
package signature

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

var (
	ErrUnsupportedFormat = errors.New("signature: unsupported image format")
	ErrInvalidDataURL    = errors.New("signature: invalid data URL")
	ErrEmptyImage        = errors.New("signature: image has no pixels")
	ErrTooLarge          = errors.New("signature: image dimensions too large")
)

// MaxPixels bounds width×height before an image is decoded.
const MaxPixels = 25_000_000

// Image is a decoded, PNG-encoded signature.
type Image struct {
	PNG    []byte
	Width  int
	Height int
}

// ContentType sniffs the image type the same way uploads are checked.
func ContentType(data []byte) string {
	return http.DetectContentType(data)
}

// Decode reads PNG, JPEG or WebP bytes and returns them as PNG, downscaled to
// maxWidth pixels when maxWidth > 0.
func Decode(data []byte, maxWidth int) (*Image, error) {
	var (
		decode       func(io.Reader) (image.Image, error)
		decodeConfig func(io.Reader) (image.Config, error)
	)
	switch ContentType(data) {
	case "image/png":
		decode, decodeConfig = png.Decode, png.DecodeConfig
	case "image/jpeg":
		decode, decodeConfig = jpeg.Decode, jpeg.DecodeConfig
	case "image/webp":
		decode, decodeConfig = webp.Decode, webp.DecodeConfig
	default:
		return nil, ErrUnsupportedFormat
	}

	cfg, err := decodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode signature: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrEmptyImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}

	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode signature: %w", err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, ErrEmptyImage
	}

	if maxWidth > 0 && b.Dx() > maxWidth {
		h := b.Dy() * maxWidth / b.Dx()
		if h < 1 {
			h = 1
		}
		dst := image.NewNRGBA(image.Rect(0, 0, maxWidth, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode signature: %w", err)
	}
	return &Image{
		PNG:    buf.Bytes(),
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

// DecodeDataURL accepts "data:image/png;base64,...".
func DecodeDataURL(url string, maxWidth int) (*Image, error) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return nil, ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, ErrInvalidDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return Decode(data, maxWidth)
}
