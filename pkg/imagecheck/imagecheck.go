package imagecheck

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

var (
	ErrEmptyImage   = errors.New("imagecheck: empty image data")
	ErrInvalidImage = errors.New("imagecheck: invalid image data")
	ErrTooSmall     = errors.New("imagecheck: image too small to analyze")
)

const (
	// maxAnalysisDim bounds the working image size; larger inputs are
	// downscaled before scoring.
	maxAnalysisDim = 512

	// minAnalysisDim is the smallest edge length the filters can work on.
	minAnalysisDim = 8

	// edgeThreshold is the grayscale gradient magnitude above which a
	// pixel counts as an edge.
	edgeThreshold = 32
)

// Thresholds are the tunable acceptance limits.
type Thresholds struct {
	// MinSharpness is the Laplacian variance below which the image is
	// flagged blurry.
	MinSharpness float64

	// WatermarkConfidence is the score above which the image is flagged
	// as carrying an overlay, on a 0-100 scale.
	WatermarkConfidence float64
}

// DefaultThresholds returns the limits calibrated for product photos.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinSharpness:        150,
		WatermarkConfidence: 25,
	}
}

// Report holds the computed scores and their classification against the
// thresholds used for the analysis.
type Report struct {
	Sharpness           float64
	WatermarkConfidence float64
	Blurry              bool
	WatermarkSuspected  bool
}

// OK reports whether the image passed both checks.
func (r Report) OK() bool {
	return !r.Blurry && !r.WatermarkSuspected
}

// Analyze decodes data (PNG, JPEG, or GIF) and scores it.
func Analyze(data []byte, th Thresholds) (Report, error) {
	if len(data) == 0 {
		return Report{}, ErrEmptyImage
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return AnalyzeImage(img, th)
}

// AnalyzeImage scores an already decoded image.
func AnalyzeImage(img image.Image, th Thresholds) (Report, error) {
	bounds := img.Bounds()
	if bounds.Dx() < minAnalysisDim || bounds.Dy() < minAnalysisDim {
		return Report{}, fmt.Errorf("%w: %dx%d", ErrTooSmall, bounds.Dx(), bounds.Dy())
	}

	gray := toGray(downscale(img))

	sharpness := laplacianVariance(gray)
	confidence := watermarkScore(gray)

	return Report{
		Sharpness:           sharpness,
		WatermarkConfidence: confidence,
		Blurry:              sharpness < th.MinSharpness,
		WatermarkSuspected:  confidence > th.WatermarkConfidence,
	}, nil
}

// downscale shrinks img so its longest edge is at most maxAnalysisDim,
// keeping aspect ratio. Smaller images pass through untouched.
func downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxAnalysisDim && h <= maxAnalysisDim {
		return img
	}

	scale := float64(maxAnalysisDim) / float64(max(w, h))
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

func toGray(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
	return gray
}

// laplacianVariance applies the 4-neighbor Laplacian kernel to interior
// pixels and returns the variance of the responses.
func laplacianVariance(gray *image.Gray) float64 {
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	if w < 3 || h < 3 {
		return 0
	}

	at := func(x, y int) float64 {
		return float64(gray.GrayAt(gray.Bounds().Min.X+x, gray.Bounds().Min.Y+y).Y)
	}

	n := float64((w - 2) * (h - 2))
	var sum, sumSq float64
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			lap := 4*at(x, y) - at(x-1, y) - at(x+1, y) - at(x, y-1) - at(x, y+1)
			sum += lap
			sumSq += lap * lap
		}
	}

	mean := sum / n
	return sumSq/n - mean*mean
}

// watermarkScore compares edge density inside the central band, where
// overlay text usually sits, with the density across the rest of the
// frame. A clean photo has roughly uniform edge distribution; a score
// near 100 means nearly all structure is concentrated in the band.
func watermarkScore(gray *image.Gray) float64 {
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()

	at := func(x, y int) int {
		return int(gray.GrayAt(gray.Bounds().Min.X+x, gray.Bounds().Min.Y+y).Y)
	}

	band := image.Rect(w/4, h/3, w*3/4, h*2/3)

	var bandEdges, bandTotal, restEdges, restTotal float64
	for y := 0; y < h-1; y++ {
		for x := 0; x < w-1; x++ {
			gx := at(x+1, y) - at(x, y)
			gy := at(x, y+1) - at(x, y)
			isEdge := abs(gx)+abs(gy) > edgeThreshold

			if image.Pt(x, y).In(band) {
				bandTotal++
				if isEdge {
					bandEdges++
				}
			} else {
				restTotal++
				if isEdge {
					restEdges++
				}
			}
		}
	}
	if bandTotal == 0 || restTotal == 0 {
		return 0
	}

	score := (bandEdges/bandTotal - restEdges/restTotal) * 100
	if score < 0 {
		return 0
	}
	return score
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
