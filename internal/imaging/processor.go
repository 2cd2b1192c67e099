// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging normalizes uploaded images before they are stored:
// format sniffing, EXIF orientation, metadata stripping and downscaling.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/olegiv/sitedeck/internal/model"
)

// ErrUnsupportedFormat is returned for data that is not a JPEG, PNG, GIF
// or WebP image.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ErrTooLarge is returned when the input exceeds the processor byte or
// pixel limit.
var ErrTooLarge = errors.New("image too large")

// MaxPixels bounds the declared width times height of an input image.
// Decoding allocates roughly four bytes per pixel.
const MaxPixels = 50_000_000

// Result is a normalized image ready for storage.
type Result struct {
	Data     []byte
	MimeType string
	Ext      string // extension matching the output encoding, with dot
	Width    int
	Height   int
}

// Processor re-encodes uploads.
type Processor struct {
	maxBytes     int64
	maxDimension int
	quality      int
}

// NewProcessor returns a processor accepting up to maxBytes of input and
// downscaling anything wider or taller than maxDimension.
func NewProcessor(maxBytes int64, maxDimension int) *Processor {
	return &Processor{maxBytes: maxBytes, maxDimension: maxDimension, quality: 90}
}

// Normalize reads an image from r, applies its EXIF orientation, fits it
// into the maximum dimension and re-encodes it without metadata. WebP input
// is written back as JPEG.
func (p *Processor) Normalize(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(io.LimitReader(r, p.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if int64(len(data)) > p.maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, p.maxBytes)
	}

	format := DetectFormat(data)
	if format == "" {
		return nil, ErrUnsupportedFormat
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading image config: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooLarge, cfg.Width, cfg.Height, MaxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	if b := img.Bounds(); p.maxDimension > 0 && (b.Dx() > p.maxDimension || b.Dy() > p.maxDimension) {
		img = imaging.Fit(img, p.maxDimension, p.maxDimension, imaging.Lanczos)
	}

	if format == "webp" {
		format = "jpeg"
	}
	out, err := encode(img, format, p.quality)
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	b := img.Bounds()
	return &Result{
		Data:     out,
		MimeType: mimeType(format),
		Ext:      extension(format),
		Width:    b.Dx(),
		Height:   b.Dy(),
	}, nil
}

// DetectFormat sniffs the image format of data: jpeg, png, gif, webp or "".
func DetectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// TIFF is not on the list (CVE-2023-36308 in disintegration/imaging).
	if !model.IsAllowedImage(contentType) {
		return ""
	}
	return strings.TrimPrefix(contentType, "image/")
}

func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	o, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return o
}

// applyOrientation undoes EXIF orientations 2..8.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	}
	return img
}

func encode(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func mimeType(format string) string {
	switch format {
	case "png":
		return model.MimeTypePNG
	case "gif":
		return model.MimeTypeGIF
	}
	return model.MimeTypeJPEG
}

func extension(format string) string {
	switch format {
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	}
	return ".jpg"
}
