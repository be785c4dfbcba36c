package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/vgarleanu/raytracer/types"
)

// Near/far clip distances used for building the projection matrix. Only
// the frustum corner directions matter for ray generation.
const (
	nearPlane = 1.0
	farPlane  = 1000.0
)

// Stores the ray directions at the four corners of the camera frustrum
// (top-left, top-right, bottom-left, bottom-right). Per pixel rays are
// generated by interpolating the corner rays.
type Frustrum [4]types.Vec3

func (fr Frustrum) String() string {
	return fmt.Sprintf(
		"Frustrum Rays:\nTL : (%3.3f, %3.3f, %3.3f)\nTR : (%3.3f, %3.3f, %3.3f)\nBL : (%3.3f, %3.3f, %3.3f)\nBR : (%3.3f, %3.3f, %3.3f)",
		fr[0][0], fr[0][1], fr[0][2],
		fr[1][0], fr[1][1], fr[1][2],
		fr[2][0], fr[2][1], fr[2][2],
		fr[3][0], fr[3][1], fr[3][2],
	)
}

// The camera type maps pixel coordinates to world-space rays. A camera is
// immutable once created.
type Camera struct {
	Position types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3

	// Vertical field of view in degrees.
	FOV float64

	// Frame width / height.
	Aspect float64

	// Lens diameter and distance to the plane in focus. An aperture of 0
	// gives a pinhole camera with everything in focus.
	Aperture  float64
	FocusDist float64

	ViewMat  mgl64.Mat4
	ProjMat  mgl64.Mat4
	Frustrum Frustrum
}

// Create a camera at position looking towards lookAt. An ErrInvalidScene
// error is returned if the fov/aspect are out of range or the orientation
// vectors are degenerate.
func NewCamera(position, lookAt, up types.Vec3, fov, aspect float64) (*Camera, error) {
	c := &Camera{
		Position: position,
		LookAt:   lookAt,
		Up:       up,
		FOV:      fov,
		Aspect:   aspect,
	}
	if err := c.checkParams(); err != nil {
		return nil, err
	}

	c.ViewMat = mgl64.LookAtV(position.Mgl(), lookAt.Mgl(), up.Mgl())
	c.ProjMat = mgl64.Perspective(mgl64.DegToRad(fov), aspect, nearPlane, farPlane)
	c.updateFrustrum()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Get a copy of the camera using a different aspect ratio. Lens settings are
// preserved.
func (c *Camera) WithAspect(aspect float64) (*Camera, error) {
	cam, err := NewCamera(c.Position, c.LookAt, c.Up, c.FOV, aspect)
	if err != nil {
		return nil, err
	}
	cam.Aperture, cam.FocusDist = c.Aperture, c.FocusDist
	return cam, nil
}

// Get a copy of the camera with a thin lens. A focusDist of 0 focuses on the
// look-at target.
func (c *Camera) WithLens(aperture, focusDist float64) (*Camera, error) {
	cam := *c
	cam.Aperture = aperture
	cam.FocusDist = focusDist
	if focusDist == 0 {
		cam.FocusDist = c.LookAt.Sub(c.Position).Len()
	}
	if err := cam.Validate(); err != nil {
		return nil, err
	}
	return &cam, nil
}

// Check that the camera parameters are in range and that its frustrum has
// been set up. Cameras that are not created via NewCamera should be checked
// with Validate before use.
func (c *Camera) Validate() error {
	if err := c.checkParams(); err != nil {
		return err
	}
	for i, corner := range c.Frustrum {
		if !corner.IsFinite() || corner.Len() < types.DegenerateEpsilon {
			return fmt.Errorf("%w: camera frustrum corner %d is degenerate", ErrInvalidScene, i)
		}
	}
	if !(c.Aperture >= 0) || math.IsInf(c.Aperture, 0) {
		return fmt.Errorf("%w: camera aperture must be finite and not negative; got %f", ErrInvalidScene, c.Aperture)
	}
	if c.Aperture > 0 && (!(c.FocusDist > 0) || math.IsInf(c.FocusDist, 0)) {
		return fmt.Errorf("%w: camera focus distance must be positive; got %f", ErrInvalidScene, c.FocusDist)
	}
	return nil
}

func (c *Camera) checkParams() error {
	if !(c.FOV > 0 && c.FOV < 180) {
		return fmt.Errorf("%w: camera fov must be in (0, 180) degrees; got %f", ErrInvalidScene, c.FOV)
	}
	if !(c.Aspect > 0) || math.IsInf(c.Aspect, 0) {
		return fmt.Errorf("%w: camera aspect ratio must be positive; got %f", ErrInvalidScene, c.Aspect)
	}
	if !c.Position.IsFinite() || !c.LookAt.IsFinite() || !c.Up.IsFinite() {
		return fmt.Errorf("%w: camera vectors must be finite", ErrInvalidScene)
	}
	if _, _, _, err := c.basis(); err != nil {
		return err
	}
	return nil
}

// Get the camera forward, right and up unit vectors.
func (c *Camera) basis() (forward, right, up types.Vec3, err error) {
	if forward, err = c.LookAt.Sub(c.Position).Normalize(); err != nil {
		return forward, right, up, fmt.Errorf("%w: camera position and look-at target coincide", ErrInvalidScene)
	}
	if right, err = forward.Cross(c.Up).Normalize(); err != nil {
		return forward, right, up, fmt.Errorf("%w: camera up vector is parallel to the view direction", ErrInvalidScene)
	}
	return forward, right, right.Cross(forward), nil
}

func (c *Camera) InvViewProjMat() mgl64.Mat4 {
	return c.ProjMat.Mul4(c.ViewMat).Inv()
}

// Generate a ray vector for each corner of the camera frustrum by
// multiplying clip space vectors for each corner with the inv proj/view
// matrix, applying perspective and subtracting the camera eye position.
func (c *Camera) updateFrustrum() {
	invProjViewMat := c.InvViewProjMat()
	corners := [4]mgl64.Vec4{
		{-1, 1, -1, 1},
		{1, 1, -1, 1},
		{-1, -1, -1, 1},
		{1, -1, -1, 1},
	}
	for i, clip := range corners {
		v := invProjViewMat.Mul4x1(clip)
		c.Frustrum[i] = types.Vec3(v.Mul(1.0 / v[3]).Vec3()).Sub(c.Position)
	}
}

// Generate the ray passing through the continuous pixel coordinate (px, py)
// of a frameW x frameH frame. Pixel (0, 0) is the top-left corner of the
// frame; the center of pixel (x, y) is (x+0.5, y+0.5). The same inputs
// always yield the same ray.
func (c *Camera) GenerateRay(px, py float64, frameW, frameH uint32) (types.Ray, error) {
	u := px / float64(frameW)
	v := py / float64(frameH)

	top := c.Frustrum[0].Lerp(c.Frustrum[1], u)
	bottom := c.Frustrum[2].Lerp(c.Frustrum[3], u)
	dir, err := top.Lerp(bottom, v).Normalize()
	if err != nil {
		return types.Ray{}, err
	}

	return types.Ray{Origin: c.Position, Dir: dir}, nil
}

// Generate a ray like GenerateRay that starts from a point on the lens
// instead of the camera position. The lens point is selected by (lensU,
// lensV) in [0, 1)^2, mapped uniformly onto the lens disk. All rays through
// the same pixel position meet on the focus plane. Pinhole cameras ignore
// the lens coordinates.
func (c *Camera) GenerateLensRay(px, py float64, frameW, frameH uint32, lensU, lensV float64) (types.Ray, error) {
	ray, err := c.GenerateRay(px, py, frameW, frameH)
	if err != nil || c.Aperture <= 0 {
		return ray, err
	}

	forward, right, up, err := c.basis()
	if err != nil {
		return types.Ray{}, err
	}
	cosTheta := ray.Dir.Dot(forward)
	if cosTheta < types.DegenerateEpsilon {
		return types.Ray{}, fmt.Errorf("scene: camera ray is perpendicular to the view direction")
	}
	focus := ray.At(c.FocusDist / cosTheta)

	dx, dy := concentricDisk(lensU, lensV)
	radius := 0.5 * c.Aperture
	origin := c.Position.Add(right.Mul(dx * radius)).Add(up.Mul(dy * radius))
	dir, err := focus.Sub(origin).Normalize()
	if err != nil {
		return types.Ray{}, err
	}
	return types.Ray{Origin: origin, Dir: dir}, nil
}

// Map a point of the unit square to the unit disk preserving relative areas.
func concentricDisk(u, v float64) (float64, float64) {
	a, b := 2*u-1, 2*v-1
	if a == 0 && b == 0 {
		return 0, 0
	}
	var r, theta float64
	if math.Abs(a) > math.Abs(b) {
		r, theta = a, (math.Pi/4)*(b/a)
	} else {
		r, theta = b, math.Pi/2-(math.Pi/4)*(a/b)
	}
	return r * math.Cos(theta), r * math.Sin(theta)
}
