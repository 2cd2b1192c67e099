// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/sitedeck/internal/model"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(w, h)))
	return buf.Bytes()
}

func TestNormalize_PNG(t *testing.T) {
	p := NewProcessor(model.MaxUploadSize, 2000)

	res, err := p.Normalize(bytes.NewReader(encodePNG(t, 40, 20)))
	require.NoError(t, err)
	assert.Equal(t, model.MimeTypePNG, res.MimeType)
	assert.Equal(t, ".png", res.Ext)
	assert.Equal(t, 40, res.Width)
	assert.Equal(t, 20, res.Height)
	assert.Equal(t, "png", DetectFormat(res.Data))
}

func TestNormalize_JPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(16, 16), nil))

	res, err := NewProcessor(model.MaxUploadSize, 0).Normalize(&buf)
	require.NoError(t, err)
	assert.Equal(t, model.MimeTypeJPEG, res.MimeType)
	assert.Equal(t, ".jpg", res.Ext)
}

func TestNormalize_Downscales(t *testing.T) {
	res, err := NewProcessor(model.MaxUploadSize, 50).Normalize(bytes.NewReader(encodePNG(t, 200, 100)))
	require.NoError(t, err)
	assert.Equal(t, 50, res.Width)
	assert.Equal(t, 25, res.Height)
}

func TestNormalize_Rejects(t *testing.T) {
	p := NewProcessor(1024, 0)

	_, err := p.Normalize(strings.NewReader("plain text, not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	data := encodePNG(t, 300, 300)
	_, err = NewProcessor(int64(len(data))-1, 0).Normalize(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrTooLarge)
	_, err = NewProcessor(int64(len(data)), 0).Normalize(bytes.NewReader(data))
	assert.NoError(t, err)

	// TIFF little-endian header
	_, err = NewProcessor(model.MaxUploadSize, 0).Normalize(bytes.NewReader([]byte("II*\x00\x08\x00\x00\x00")))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

// pngHeader returns a PNG signature and IHDR chunk declaring w x h pixels
// with no image data.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 0 // grayscale

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestNormalize_RejectsHugeDimensions(t *testing.T) {
	p := NewProcessor(model.MaxUploadSize, 2560)

	_, err := p.Normalize(bytes.NewReader(pngHeader(10000, 10000)))
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = p.Normalize(bytes.NewReader(pngHeader(1<<20, 1<<20)))
	assert.ErrorIs(t, err, ErrTooLarge)

	// within budget, but the truncated data fails to decode
	_, err = p.Normalize(bytes.NewReader(pngHeader(100, 100)))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTooLarge)
}

func TestApplyOrientation(t *testing.T) {
	img := testImage(30, 10)
	for _, o := range []int{5, 6, 7, 8} {
		b := applyOrientation(img, o).Bounds()
		assert.Equal(t, 10, b.Dx(), "orientation %d", o)
		assert.Equal(t, 30, b.Dy(), "orientation %d", o)
	}
	for _, o := range []int{1, 2, 3, 4} {
		b := applyOrientation(img, o).Bounds()
		assert.Equal(t, 30, b.Dx(), "orientation %d", o)
	}
}
