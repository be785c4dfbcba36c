package output

import (
	"image"

	"github.com/nfnt/resize"
)

// Downscale an image so that it fits inside maxW x maxH while preserving
// its aspect ratio. Images that already fit are returned unchanged.
func Thumbnail(img image.Image, maxW, maxH uint) image.Image {
	return resize.Thumbnail(maxW, maxH, img, resize.Lanczos3)
}
