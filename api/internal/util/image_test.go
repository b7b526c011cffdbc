package util

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for x := 0; x < 8; x++ {
		img.Set(x, 1, color.NRGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestEncodeImagePNGBecomesJPEG(t *testing.T) {
	enc, err := EncodeImage(pngBytes(t))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", enc.MIME)
	assert.Equal(t, "image/jpeg", SniffMIME(enc.Data))

	cfg, _, err := image.DecodeConfig(bytes.NewReader(enc.Data))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Width)
	assert.Equal(t, 4, cfg.Height)
	assert.Contains(t, enc.DataURL(), "data:image/jpeg;base64,")
}

func TestEncodeImageRejectsNonImage(t *testing.T) {
	_, err := EncodeImage([]byte("definitely not a picture"))
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = EncodeImage(nil)
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestEncodeImageRejectsTruncatedPNG(t *testing.T) {
	b := pngBytes(t)
	_, err := EncodeImage(b[:20])
	assert.ErrorIs(t, err, ErrInvalidImage)
}

// hugePNG rewrites the IHDR of a tiny PNG so it declares w x h pixels.
func hugePNG(t *testing.T, w, h uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))
	b := buf.Bytes()
	require.Equal(t, "IHDR", string(b[12:16]))
	binary.BigEndian.PutUint32(b[16:20], w)
	binary.BigEndian.PutUint32(b[20:24], h)
	binary.BigEndian.PutUint32(b[29:33], crc32.ChecksumIEEE(b[12:29]))
	return b
}

func TestEncodeImageRejectsOversizedDimensions(t *testing.T) {
	for _, dims := range [][2]uint32{{20000, 20000}, {8000, 8000}, {1, MaxImagePixels + 1}} {
		_, err := EncodeImage(hugePNG(t, dims[0], dims[1]))
		require.Error(t, err, dims)
		assert.ErrorIs(t, err, ErrInvalidImage)
		assert.Contains(t, err.Error(), "exceeds")
	}
}

func TestEncodeImageLargeDimensionsUnderCapReachDecode(t *testing.T) {
	// header passes the cap, pixel data is missing, so decode fails afterwards
	_, err := EncodeImage(hugePNG(t, 4000, 4000))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidImage)
	assert.NotContains(t, err.Error(), "exceeds")
}

func TestIsImageContentType(t *testing.T) {
	assert.True(t, IsImageContentType("image/png"))
	assert.True(t, IsImageContentType("IMAGE/JPEG"))
	assert.True(t, IsImageContentType("image/jpeg; charset=binary"))
	assert.False(t, IsImageContentType("application/pdf"))
	assert.False(t, IsImageContentType(""))
}
