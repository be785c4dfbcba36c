package types

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vectors whose length falls below this threshold cannot be normalized.
const DegenerateEpsilon = 1e-8

var ErrDegenerateVector = errors.New("types: cannot normalize degenerate vector")

type Vec3 mgl64.Vec3

// Define a 3 component vector.
func XYZ(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Define a vector with all components set to v.
func Splat(v float64) Vec3 {
	return Vec3{v, v, v}
}

func (v Vec3) X() float64 { return v[0] }
func (v Vec3) Y() float64 { return v[1] }
func (v Vec3) Z() float64 { return v[2] }

// Add a vector.
func (v Vec3) Add(v2 Vec3) Vec3 {
	return Vec3{v[0] + v2[0], v[1] + v2[1], v[2] + v2[2]}
}

// Subtract a vector.
func (v Vec3) Sub(v2 Vec3) Vec3 {
	return Vec3{v[0] - v2[0], v[1] - v2[1], v[2] - v2[2]}
}

// Multiply a 3 component vector with a scalar.
func (v Vec3) Mul(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Component-wise multiplication. Used for modulating colors.
func (v Vec3) MulVec(v2 Vec3) Vec3 {
	return Vec3{v[0] * v2[0], v[1] * v2[1], v[2] * v2[2]}
}

func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Calculate dot product of 2 vectors
func (v Vec3) Dot(v2 Vec3) float64 {
	return v[0]*v2[0] + v[1]*v2[1] + v[2]*v2[2]
}

// Calculate cross product of 2 vectors.
func (v Vec3) Cross(v2 Vec3) Vec3 {
	return Vec3{v[1]*v2[2] - v[2]*v2[1], v[2]*v2[0] - v[0]*v2[2], v[0]*v2[1] - v[1]*v2[0]}
}

// Get 3 component vector length.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize 3 component vector. An ErrDegenerateVector error is returned if
// the vector length is below DegenerateEpsilon.
func (v Vec3) Normalize() (Vec3, error) {
	l := v.Len()
	if l < DegenerateEpsilon || math.IsNaN(l) {
		return Vec3{}, ErrDegenerateVector
	}
	return v.Mul(1.0 / l), nil
}

// Reflect v around the unit-length normal n.
func (v Vec3) Reflect(n Vec3) Vec3 {
	return Reflect(v, n)
}

// Reflect the incident vector d around the normal n: d - 2*dot(d,n)*n. The
// normal must be unit-length; this is not checked.
func Reflect(d, n Vec3) Vec3 {
	return d.Sub(n.Mul(2 * d.Dot(n)))
}

// Returns true if no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Clamp each component to the [lo, hi] range.
func (v Vec3) Clamp(lo, hi float64) Vec3 {
	out := v
	for i := range out {
		out[i] = math.Max(lo, math.Min(hi, out[i]))
	}
	return out
}

// Calc min component from two vectors
func MinVec3(v1, v2 Vec3) Vec3 {
	return Vec3{math.Min(v1[0], v2[0]), math.Min(v1[1], v2[1]), math.Min(v1[2], v2[2])}
}

// Calc maxcomponent from two vectors
func MaxVec3(v1, v2 Vec3) Vec3 {
	return Vec3{math.Max(v1[0], v2[0]), math.Max(v1[1], v2[1]), math.Max(v1[2], v2[2])}
}

// Linear interpolation between v and v2.
func (v Vec3) Lerp(v2 Vec3, t float64) Vec3 {
	return v.Mul(1 - t).Add(v2.Mul(t))
}

// Convert to a mathgl vector.
func (v Vec3) Mgl() mgl64.Vec3 {
	return mgl64.Vec3(v)
}
