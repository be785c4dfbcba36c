package scene

import (
	"fmt"
	"image"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/disintegration/imaging"
	"github.com/vgarleanu/raytracer/types"
)

// A Texture returns the surface color at a world-space point with surface
// coordinates (u, v).
type Texture interface {
	ColorAt(u, v float64, p types.Vec3) types.Color
}

// A texture with a constant color.
type SolidTexture struct {
	Color types.Color
}

func (t SolidTexture) ColorAt(_, _ float64, _ types.Vec3) types.Color {
	return t.Color
}

// A 3D checker pattern alternating between two colors. The sign of
// sin(s*x)*sin(s*y)*sin(s*z) selects the color.
type CheckerTexture struct {
	Odd   types.Color
	Even  types.Color
	Scale float64
}

// The scale used when a checker texture does not specify one.
const DefaultCheckerScale = 10.0

func (t CheckerTexture) ColorAt(_, _ float64, p types.Vec3) types.Color {
	s := t.Scale
	if s == 0 {
		s = DefaultCheckerScale
	}
	sines := math.Sin(s*p[0]) * math.Sin(s*p[1]) * math.Sin(s*p[2])
	if sines < 0 {
		return t.Odd
	}
	return t.Even
}

// Perlin turbulence settings.
const (
	noiseFrequency = 1.5
	noiseDepth     = 4
	noisePhase     = 10.0
)

// A marble-like grayscale pattern: 0.5 * (1 + sin(scale*z + 10*turb(p)))
// where turb sums the absolute value of several Perlin noise octaves.
type NoiseTexture struct {
	Scale float64

	// Seeds the noise permutation tables.
	Seed  int64
	noise *perlin.Perlin
}

// Create a noise texture. Textures with the same scale and seed produce
// the same pattern.
func NewNoiseTexture(scale float64, seed int64) *NoiseTexture {
	return &NoiseTexture{
		Scale: scale,
		Seed:  seed,
		noise: perlin.NewPerlin(2, 2, 1, seed),
	}
}

func (t *NoiseTexture) ColorAt(_, _ float64, p types.Vec3) types.Color {
	return types.Splat(0.5 * (1 + math.Sin(t.Scale*p[2]+noisePhase*t.turbulence(p))))
}

func (t *NoiseTexture) turbulence(p types.Vec3) float64 {
	var (
		sum    float64
		weight = 1.0
		freq   = noiseFrequency
	)
	for i := 0; i < noiseDepth; i++ {
		sum += weight * math.Abs(t.noise.Noise3D(p[0]*freq, p[1]*freq, p[2]*freq))
		weight *= 0.5
		freq *= 2
	}
	return sum
}

// A texture that maps an image over the (u, v) surface coordinates. v = 0
// is the bottom row of the image.
type ImageTexture struct {
	img *image.NRGBA
}

// Create an image texture.
func NewImageTexture(img image.Image) (*ImageTexture, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: image texture has no pixels", ErrInvalidScene)
	}
	return &ImageTexture{img: imaging.Clone(img)}, nil
}

// Get the image dimensions.
func (t *ImageTexture) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *ImageTexture) ColorAt(u, v float64, _ types.Vec3) types.Color {
	w, h := t.Size()
	i := clampIndex(int(u*float64(w)), w)
	j := clampIndex(int((1-v)*float64(h)-0.001), h)

	c := t.img.NRGBAAt(i, j)
	return types.XYZ(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
