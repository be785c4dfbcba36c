// Package tracer implements ray-scene intersection, shading and per-pixel
// sampling. All functions are pure with respect to the scene: they only
// read it and can be called concurrently from any number of goroutines.
package tracer

import (
	"errors"
	"fmt"
	"math"

	"github.com/vgarleanu/raytracer/scene"
	"github.com/vgarleanu/raytracer/types"
)

// Two hits whose distances differ by less than this value are considered
// simultaneous; the primitive that comes first in scene order wins.
const TieEpsilon = 1e-9

// ErrNumeric is returned when a traced sample produces a non-finite value.
var ErrNumeric = errors.New("tracer: non-finite sample value")

// Ray-primitive intersection details. Intersections only live for the
// duration of a single trace call.
type Intersection struct {
	// World-space hit point.
	Point types.Vec3

	// Unit surface normal at the hit point facing the incoming ray.
	Normal types.Vec3

	// Distance along the ray.
	Dist float64

	Primitive scene.Primitive
}

// Find the nearest primitive hit by the ray. Hits closer than
// scene.IntersectEpsilon are ignored by the primitives themselves.
func FindNearest(r types.Ray, sc *scene.Scene) (Intersection, bool) {
	var (
		nearest scene.Primitive
		best    = math.Inf(1)
	)
	for _, prim := range sc.Primitives {
		dist, hit := prim.Intersect(r)
		if !hit || dist < 0 {
			continue
		}
		if dist < best-TieEpsilon {
			best = dist
			nearest = prim
		}
	}
	if nearest == nil {
		return Intersection{}, false
	}

	point := r.At(best)
	normal := nearest.NormalAt(point)
	if normal.Dot(r.Dir) > 0 {
		normal = normal.Neg()
	}
	return Intersection{
		Point:     point,
		Normal:    normal,
		Dist:      best,
		Primitive: nearest,
	}, true
}

// Returns true if any primitive is hit by the ray before maxDist. This is
// equivalent to comparing the FindNearest distance against maxDist but
// stops at the first blocker.
func Occluded(r types.Ray, maxDist float64, sc *scene.Scene) bool {
	for _, prim := range sc.Primitives {
		if dist, hit := prim.Intersect(r); hit && dist < maxDist {
			return true
		}
	}
	return false
}

// Calculate the color at an intersection: the ambient term plus a Lambert
// diffuse and Phong specular term for each unoccluded light. The result is
// clamped to [0, 1].
func Shade(r types.Ray, hit Intersection, sc *scene.Scene) types.Color {
	mat := hit.Primitive.Material()
	u, v := scene.SurfaceUV(hit.Primitive, hit.Point)
	base := mat.ColorAt(u, v, hit.Point)
	color := sc.Ambient.MulVec(base)
	viewDir := r.Dir.Neg()

	for _, light := range sc.Lights {
		toLight := light.Position.Sub(hit.Point)
		lightDist := toLight.Len()
		lightDir, err := toLight.Normalize()
		if err != nil {
			// light sits on the surface point
			continue
		}

		nDotL := hit.Normal.Dot(lightDir)
		if nDotL <= 0 {
			continue
		}
		if Occluded(types.Ray{Origin: hit.Point, Dir: lightDir}, lightDist, sc) {
			continue
		}

		color = color.Add(base.MulVec(light.Color).Mul(nDotL * mat.Diffuse))

		if mat.Specular > 0 {
			reflected := types.Reflect(lightDir.Neg(), hit.Normal)
			if rDotV := reflected.Dot(viewDir); rDotV > 0 {
				color = color.Add(light.Color.Mul(mat.Specular * math.Pow(rDotV, mat.Shininess)))
			}
		}
	}

	return types.ClampColor(color)
}

// Trace a single ray and return its color. Rays that miss every primitive
// return the scene background.
func Trace(r types.Ray, sc *scene.Scene) (types.Color, error) {
	hit, ok := FindNearest(r, sc)
	if !ok {
		return sc.Background, nil
	}
	if !hit.Normal.IsFinite() || !hit.Point.IsFinite() {
		return sc.Background, fmt.Errorf("%w: %s primitive at t=%f", ErrNumeric, hit.Primitive.Type(), hit.Dist)
	}

	color := Shade(r, hit, sc)
	if !color.IsFinite() {
		return sc.Background, fmt.Errorf("%w: %s primitive at t=%f", ErrNumeric, hit.Primitive.Type(), hit.Dist)
	}
	return color, nil
}
