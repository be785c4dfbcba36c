package renderer

import "github.com/vgarleanu/raytracer/types"

// A Frame is the raster buffer produced by a render: Width x Height linear
// colors in row-major order. While rendering, each worker writes only to
// the rows of the blocks it was handed.
type Frame struct {
	Width  int
	Height int
	Pix    []types.Color
}

func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]types.Color, width*height),
	}
}

// Get the color of pixel (x, y).
func (f *Frame) At(x, y int) types.Color {
	return f.Pix[y*f.Width+x]
}

// Get the sub-slice that holds rows [y, y+h).
func (f *Frame) Rows(y, h int) []types.Color {
	return f.Pix[y*f.Width : (y+h)*f.Width]
}
