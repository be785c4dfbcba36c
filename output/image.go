// Package output converts rendered frames to images and delivers them to
// files or object storage.
package output

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/vgarleanu/raytracer/renderer"
)

// Convert a frame to an 8-bit image. Each channel is raised to 1/gamma
// before quantization. A gamma of 1 keeps the linear values; gamma values
// that are not positive and finite are rejected by ValidateGamma and are
// treated as 1 here.
func ToImage(frame *renderer.Frame, gamma float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	invGamma := 1.0
	if ValidateGamma(gamma) == nil {
		invGamma = 1.0 / gamma
	}

	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			c := frame.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{
				R: quantize(c[0], invGamma),
				G: quantize(c[1], invGamma),
				B: quantize(c[2], invGamma),
				A: 255,
			})
		}
	}
	return img
}

// Check that gamma can be used for image conversion.
func ValidateGamma(gamma float64) error {
	if !(gamma > 0) || math.IsInf(gamma, 0) {
		return fmt.Errorf("output: gamma must be positive and finite; got %f", gamma)
	}
	return nil
}

func quantize(v, invGamma float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	if invGamma != 1 {
		v = math.Pow(v, invGamma)
	}
	return uint8(255.99 * v)
}
