package qrcode_test

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/platform/pkg/qrcode"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("produces decodable PNG of requested size", func(t *testing.T) {
		t.Parallel()

		data, err := qrcode.Generate("https://freshmart.example/orders/FM-000042", 256)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 256, img.Bounds().Dx())
		assert.Equal(t, 256, img.Bounds().Dy())
	})

	t.Run("defaults non-positive size", func(t *testing.T) {
		t.Parallel()

		data, err := qrcode.Generate("hello", 0)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, qrcode.DefaultSize, img.Bounds().Dx())
	})

	t.Run("rejects empty content", func(t *testing.T) {
		t.Parallel()

		_, err := qrcode.Generate("", 256)
		assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
	})
}

func TestGenerateBase64Image(t *testing.T) {
	t.Parallel()

	t.Run("returns PNG data URI", func(t *testing.T) {
		t.Parallel()

		uri, err := qrcode.GenerateBase64Image("https://freshmart.example", 128)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"), uri)
	})

	t.Run("propagates validation errors", func(t *testing.T) {
		t.Parallel()

		_, err := qrcode.GenerateBase64Image("", 128)
		assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
	})
}
