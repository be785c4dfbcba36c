package scene

import (
	"fmt"
	"math"

	"github.com/vgarleanu/raytracer/types"
)

// Ray hits closer than this distance are discarded to avoid
// self-intersections at the ray origin.
const IntersectEpsilon = 1e-4

// Rays whose direction is this close to perpendicular to a plane normal
// are treated as parallel to the plane.
const ParallelEpsilon = 1e-9

// Tolerance for unit length normals.
const unitEpsilon = 1e-6

type PrimitiveType uint32

const (
	PlanePrimitive PrimitiveType = iota
	SpherePrimitive
	BoxPrimitive
	RectPrimitive
)

func (pt PrimitiveType) String() string {
	switch pt {
	case PlanePrimitive:
		return "plane"
	case SpherePrimitive:
		return "sphere"
	case BoxPrimitive:
		return "box"
	case RectPrimitive:
		return "rect"
	}
	return "unknown"
}

// The Primitive interface is implemented by all renderable shapes.
type Primitive interface {
	// Get the primitive type.
	Type() PrimitiveType

	// Get the smallest ray distance t > IntersectEpsilon at which the ray
	// meets the primitive surface.
	Intersect(r types.Ray) (float64, bool)

	// Get the outward unit normal at a surface point.
	NormalAt(p types.Vec3) types.Vec3

	// Get the primitive material.
	Material() *Material
}

// Primitives that can parametrize their surface implement UVMapper so that
// image textures can be applied to them.
type UVMapper interface {
	// Get the (u, v) surface coordinates, both in [0, 1], of a point.
	UV(p types.Vec3) (float64, float64)
}

// Primitives that implement validator have their geometry re-checked by
// Scene.Validate.
type validator interface {
	Validate() error
}

// Get the surface coordinates of p. Primitives that do not implement
// UVMapper map every point to (0, 0).
func SurfaceUV(prim Primitive, p types.Vec3) (float64, float64) {
	if mapper, ok := prim.(UVMapper); ok {
		return mapper.UV(p)
	}
	return 0, 0
}

// A sphere primitive.
type Sphere struct {
	Center types.Vec3
	Radius float64
	Mat    *Material
}

// Create new sphere primitive.
func NewSphere(center types.Vec3, radius float64, material *Material) (*Sphere, error) {
	s := &Sphere{Center: center, Radius: radius, Mat: material}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sphere) Type() PrimitiveType { return SpherePrimitive }
func (s *Sphere) Material() *Material { return s.Mat }

// Check that the sphere has a finite center and a positive radius.
func (s *Sphere) Validate() error {
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) || !s.Center.IsFinite() {
		return fmt.Errorf("%w: sphere radius must be positive; got %f", ErrInvalidScene, s.Radius)
	}
	return nil
}

// Solve |O + tD - C|^2 = r^2 and return the nearest root beyond the epsilon.
func (s *Sphere) Intersect(r types.Ray) (float64, bool) {
	oc := r.Origin.Sub(s.Center)
	a := r.Dir.Dot(r.Dir)
	if a < types.DegenerateEpsilon {
		return 0, false
	}
	halfB := oc.Dot(r.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := halfB*halfB - a*c
	if disc < 0 {
		return 0, false
	}

	sq := math.Sqrt(disc)
	if t := (-halfB - sq) / a; t > IntersectEpsilon {
		return t, true
	}
	if t := (-halfB + sq) / a; t > IntersectEpsilon {
		return t, true
	}
	return 0, false
}

func (s *Sphere) NormalAt(p types.Vec3) types.Vec3 {
	return p.Sub(s.Center).Mul(1.0 / s.Radius)
}

// Spherical coordinates: u follows the longitude around +Y and v the
// latitude from the south pole.
func (s *Sphere) UV(p types.Vec3) (float64, float64) {
	n := s.NormalAt(p)
	phi := math.Atan2(n[2], n[0])
	theta := math.Asin(math.Max(-1, math.Min(1, n[1])))
	return 1 - (phi+math.Pi)/(2*math.Pi), (theta + math.Pi/2) / math.Pi
}

// An infinite plane defined by a point and a unit normal.
type Plane struct {
	Point  types.Vec3
	Normal types.Vec3
	Mat    *Material
}

// Create new plane primitive. The normal is normalized.
func NewPlane(point, normal types.Vec3, material *Material) (*Plane, error) {
	n, err := normal.Normalize()
	if err != nil {
		return nil, fmt.Errorf("%w: plane normal: %s", ErrInvalidScene, err.Error())
	}
	p := &Plane{Point: point, Normal: n, Mat: material}
	if err = p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Plane) Type() PrimitiveType { return PlanePrimitive }
func (p *Plane) Material() *Material { return p.Mat }

// Check that the plane has a finite point and a unit normal.
func (p *Plane) Validate() error {
	if !p.Point.IsFinite() || !p.Normal.IsFinite() {
		return fmt.Errorf("%w: plane point and normal must be finite", ErrInvalidScene)
	}
	if math.Abs(p.Normal.Len()-1) > unitEpsilon {
		return fmt.Errorf("%w: plane normal must have unit length; got %f", ErrInvalidScene, p.Normal.Len())
	}
	return nil
}

// Solve dot(O + tD - P, N) = 0.
func (p *Plane) Intersect(r types.Ray) (float64, bool) {
	denom := r.Dir.Dot(p.Normal)
	if math.Abs(denom) < ParallelEpsilon {
		return 0, false
	}
	t := p.Point.Sub(r.Origin).Dot(p.Normal) / denom
	if t > IntersectEpsilon {
		return t, true
	}
	return 0, false
}

func (p *Plane) NormalAt(_ types.Vec3) types.Vec3 {
	return p.Normal
}

// An axis-aligned box.
type Box struct {
	Min types.Vec3
	Max types.Vec3
	Mat *Material
}

// Create new box primitive from two opposite corners.
func NewBox(p0, p1 types.Vec3, material *Material) (*Box, error) {
	b := &Box{Min: types.MinVec3(p0, p1), Max: types.MaxVec3(p0, p1), Mat: material}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Box) Type() PrimitiveType { return BoxPrimitive }
func (b *Box) Material() *Material { return b.Mat }

// Check that the box has a finite, non-zero extent along every axis.
func (b *Box) Validate() error {
	if !b.Min.IsFinite() || !b.Max.IsFinite() {
		return fmt.Errorf("%w: box corners must be finite", ErrInvalidScene)
	}
	for i := 0; i < 3; i++ {
		if !(b.Max[i]-b.Min[i] > 0) {
			return fmt.Errorf("%w: box has zero extent along axis %d", ErrInvalidScene, i)
		}
	}
	return nil
}

// Slab intersection test.
func (b *Box) Intersect(r types.Ray) (float64, bool) {
	tNear, tFar := math.Inf(-1), math.Inf(1)
	for i := 0; i < 3; i++ {
		if r.Dir[i] == 0 {
			if r.Origin[i] < b.Min[i] || r.Origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1.0 / r.Dir[i]
		t0 := (b.Min[i] - r.Origin[i]) * inv
		t1 := (b.Max[i] - r.Origin[i]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tNear = math.Max(tNear, t0)
		tFar = math.Min(tFar, t1)
		if tFar < tNear {
			return 0, false
		}
	}

	if tNear > IntersectEpsilon {
		return tNear, true
	}
	if tFar > IntersectEpsilon {
		return tFar, true
	}
	return 0, false
}

// The normal is the axis of the face closest to p.
func (b *Box) NormalAt(p types.Vec3) types.Vec3 {
	axis, sign := b.face(p)
	var n types.Vec3
	n[axis] = sign
	return n
}

// Each face is mapped like the rect that covers it.
func (b *Box) UV(p types.Vec3) (float64, float64) {
	axis, _ := b.face(p)
	a0, a1 := rectAxes(axis)
	return (p[a0] - b.Min[a0]) / (b.Max[a0] - b.Min[a0]), (p[a1] - b.Min[a1]) / (b.Max[a1] - b.Min[a1])
}

// Get the axis and side of the face closest to p.
func (b *Box) face(p types.Vec3) (int, float64) {
	center := b.Min.Add(b.Max).Mul(0.5)
	var (
		axis int
		best = -1.0
		sign = 1.0
	)
	for i := 0; i < 3; i++ {
		half := (b.Max[i] - b.Min[i]) * 0.5
		rel := (p[i] - center[i]) / half
		if math.Abs(rel) > best {
			best = math.Abs(rel)
			axis = i
			sign = math.Copysign(1, rel)
		}
	}
	return axis, sign
}

// Axes used to index rect normals.
const (
	AxisX = iota
	AxisY
	AxisZ
)

// An axis-aligned rectangle lying in the plane p[Axis] = K. Min and Max
// bound the rectangle along the two remaining axes in x, y, z order (so an
// AxisZ rect spans x in [Min[0], Max[0]] and y in [Min[1], Max[1]]).
type Rect struct {
	Axis int
	K    float64
	Min  [2]float64
	Max  [2]float64

	// The normal points along +Axis unless Flip is set.
	Flip bool

	Mat *Material
}

// Create new rect primitive.
func NewRect(axis int, k float64, lo, hi [2]float64, flip bool, material *Material) (*Rect, error) {
	r := &Rect{Axis: axis, K: k, Min: lo, Max: hi, Flip: flip, Mat: material}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Rect) Type() PrimitiveType { return RectPrimitive }
func (r *Rect) Material() *Material { return r.Mat }

// Check the rect axis and that it has a finite, non-zero area.
func (r *Rect) Validate() error {
	if r.Axis < AxisX || r.Axis > AxisZ {
		return fmt.Errorf("%w: rect axis must be 0, 1 or 2; got %d", ErrInvalidScene, r.Axis)
	}
	if math.IsNaN(r.K) || math.IsInf(r.K, 0) {
		return fmt.Errorf("%w: rect offset must be finite", ErrInvalidScene)
	}
	for i := 0; i < 2; i++ {
		if math.IsInf(r.Min[i], 0) || math.IsInf(r.Max[i], 0) || !(r.Max[i]-r.Min[i] > 0) {
			return fmt.Errorf("%w: rect has zero or infinite extent along its axis %d", ErrInvalidScene, i)
		}
	}
	return nil
}

func (r *Rect) Intersect(ray types.Ray) (float64, bool) {
	if math.Abs(ray.Dir[r.Axis]) < ParallelEpsilon {
		return 0, false
	}
	t := (r.K - ray.Origin[r.Axis]) / ray.Dir[r.Axis]
	if !(t > IntersectEpsilon) {
		return 0, false
	}

	a0, a1 := rectAxes(r.Axis)
	p := ray.At(t)
	if p[a0] < r.Min[0] || p[a0] > r.Max[0] || p[a1] < r.Min[1] || p[a1] > r.Max[1] {
		return 0, false
	}
	return t, true
}

func (r *Rect) NormalAt(_ types.Vec3) types.Vec3 {
	var n types.Vec3
	n[r.Axis] = 1
	if r.Flip {
		n[r.Axis] = -1
	}
	return n
}

func (r *Rect) UV(p types.Vec3) (float64, float64) {
	a0, a1 := rectAxes(r.Axis)
	return (p[a0] - r.Min[0]) / (r.Max[0] - r.Min[0]), (p[a1] - r.Min[1]) / (r.Max[1] - r.Min[1])
}

// Get the two axes spanning a plane perpendicular to axis.
func rectAxes(axis int) (int, int) {
	switch axis {
	case AxisX:
		return AxisY, AxisZ
	case AxisY:
		return AxisX, AxisZ
	}
	return AxisX, AxisY
}
