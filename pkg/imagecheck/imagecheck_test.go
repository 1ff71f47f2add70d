package imagecheck_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/platform/pkg/imagecheck"
)

// flatImage is a uniform gray frame: no detail at all.
func flatImage(size int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	return img
}

// gradientImage ramps smoothly left to right, like an out-of-focus photo.
func gradientImage(size int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 255 / size)})
		}
	}
	return img
}

// checkerImage alternates black and white per pixel: maximal uniform detail.
func checkerImage(size int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x+y)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// watermarkedImage is a flat frame with high-contrast stripes across the
// central band, mimicking overlay text.
func watermarkedImage(size int) *image.Gray {
	img := flatImage(size)
	for y := size * 2 / 5; y < size * 3 / 5; y++ {
		for x := size / 4; x < size*3/4; x++ {
			if x/2%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// noiseImage fills the frame with deterministic per-pixel noise.
func noiseImage(w, h int) *image.Gray {
	rng := rand.New(rand.NewSource(7))
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}
	return img
}

func TestAnalyzeImage(t *testing.T) {
	t.Parallel()

	th := imagecheck.DefaultThresholds()

	t.Run("flat frame is blurry", func(t *testing.T) {
		t.Parallel()

		report, err := imagecheck.AnalyzeImage(flatImage(64), th)
		require.NoError(t, err)
		assert.True(t, report.Blurry)
		assert.False(t, report.WatermarkSuspected)
		assert.False(t, report.OK())
	})

	t.Run("smooth gradient is blurry", func(t *testing.T) {
		t.Parallel()

		report, err := imagecheck.AnalyzeImage(gradientImage(64), th)
		require.NoError(t, err)
		assert.True(t, report.Blurry)
		assert.Less(t, report.Sharpness, th.MinSharpness)
	})

	t.Run("uniform detail is sharp and clean", func(t *testing.T) {
		t.Parallel()

		report, err := imagecheck.AnalyzeImage(checkerImage(64), th)
		require.NoError(t, err)
		assert.False(t, report.Blurry)
		assert.False(t, report.WatermarkSuspected)
		assert.True(t, report.OK())
	})

	t.Run("central overlay trips the watermark check", func(t *testing.T) {
		t.Parallel()

		report, err := imagecheck.AnalyzeImage(watermarkedImage(64), th)
		require.NoError(t, err)
		assert.True(t, report.WatermarkSuspected)
		assert.Greater(t, report.WatermarkConfidence, th.WatermarkConfidence)
	})

	t.Run("rejects tiny images", func(t *testing.T) {
		t.Parallel()

		_, err := imagecheck.AnalyzeImage(flatImage(4), th)
		assert.ErrorIs(t, err, imagecheck.ErrTooSmall)
	})

	t.Run("large input is downscaled and scored", func(t *testing.T) {
		t.Parallel()

		report, err := imagecheck.AnalyzeImage(noiseImage(1200, 800), th)
		require.NoError(t, err)
		assert.False(t, report.Blurry)
	})
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	th := imagecheck.DefaultThresholds()

	t.Run("decodes PNG input", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, checkerImage(64)))

		report, err := imagecheck.Analyze(buf.Bytes(), th)
		require.NoError(t, err)
		assert.True(t, report.OK())
	})

	t.Run("empty data", func(t *testing.T) {
		t.Parallel()

		_, err := imagecheck.Analyze(nil, th)
		assert.ErrorIs(t, err, imagecheck.ErrEmptyImage)
	})

	t.Run("garbage data", func(t *testing.T) {
		t.Parallel()

		_, err := imagecheck.Analyze([]byte("not an image"), th)
		assert.ErrorIs(t, err, imagecheck.ErrInvalidImage)
	})
}

func TestThresholds_Tunable(t *testing.T) {
	t.Parallel()

	strict := imagecheck.Thresholds{MinSharpness: 1e9, WatermarkConfidence: 100}

	report, err := imagecheck.AnalyzeImage(checkerImage(64), strict)
	require.NoError(t, err)
	assert.True(t, report.Blurry)
	assert.False(t, report.WatermarkSuspected)
}
