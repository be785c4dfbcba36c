package tracer

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/vgarleanu/raytracer/scene"
	"github.com/vgarleanu/raytracer/types"
)

// Mixed into the per-pixel RNG seed.
const samplerSeed uint64 = 0x9e3779b97f4a7c15

// Calculate the color of pixel (px, py) by averaging samples rays.
//
// With a single sample the ray passes through the pixel center. With more
// samples the first n*n (n = floor(sqrt(samples))) rays are jittered inside
// the cells of an n x n grid covering the pixel and any remaining rays are
// placed uniformly at random. Cameras with a lens also draw a lens point
// for every sample. The RNG is seeded from the pixel coordinates so the
// result never depends on which worker renders the pixel.
//
// If any sample fails the scene background is returned together with the
// error.
func TracePixel(px, py, frameW, frameH, samples uint32, cam *scene.Camera, sc *scene.Scene) (types.Color, error) {
	thinLens := cam.Aperture > 0
	if samples <= 1 && !thinLens {
		return traceSample(float64(px)+0.5, float64(py)+0.5, 0, 0, frameW, frameH, cam, sc)
	}

	rng := rand.New(rand.NewPCG(uint64(py)<<32|uint64(px), samplerSeed))
	if samples <= 1 {
		return traceSample(float64(px)+0.5, float64(py)+0.5, rng.Float64(), rng.Float64(), frameW, frameH, cam, sc)
	}

	n := uint32(math.Sqrt(float64(samples)))
	strata := n * n

	var accum types.Color
	for s := uint32(0); s < samples; s++ {
		var ox, oy, lu, lv float64
		if s < strata {
			ox = (float64(s%n) + rng.Float64()) / float64(n)
			oy = (float64(s/n) + rng.Float64()) / float64(n)
		} else {
			ox, oy = rng.Float64(), rng.Float64()
		}
		if thinLens {
			lu, lv = rng.Float64(), rng.Float64()
		}

		color, err := traceSample(float64(px)+ox, float64(py)+oy, lu, lv, frameW, frameH, cam, sc)
		if err != nil {
			return sc.Background, err
		}
		accum = accum.Add(color)
	}

	return accum.Mul(1.0 / float64(samples)), nil
}

func traceSample(x, y, lensU, lensV float64, frameW, frameH uint32, cam *scene.Camera, sc *scene.Scene) (types.Color, error) {
	ray, err := cam.GenerateLensRay(x, y, frameW, frameH, lensU, lensV)
	if err != nil {
		return sc.Background, fmt.Errorf("tracer: camera ray for (%.3f, %.3f): %w", x, y, err)
	}
	return Trace(ray, sc)
}
