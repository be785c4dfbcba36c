package tracer

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/vgarleanu/raytracer/scene"
	"github.com/vgarleanu/raytracer/types"
)

func TestFindNearest(t *testing.T) {
	sc := scene.NewScene()
	mat := scene.NewMaterial("m", types.White)
	sc.AddMaterial(mat)
	far, _ := scene.NewSphere(types.XYZ(0, 0, -10), 1, mat)
	near, _ := scene.NewSphere(types.XYZ(0, 0, -5), 1, mat)
	mustAdd(t, sc, far, near)

	hit, ok := FindNearest(types.Ray{Origin: types.XYZ(0, 0, 0), Dir: types.XYZ(0, 0, -1)}, sc)
	if !ok {
		t.Fatal("expected ray to hit")
	}
	if hit.Primitive != near {
		t.Fatal("expected nearest sphere to be reported")
	}
	if math.Abs(hit.Dist-4) > 1e-9 {
		t.Fatalf("expected hit at t=4; got %f", hit.Dist)
	}
	if hit.Point != types.XYZ(0, 0, -4) || hit.Normal != types.XYZ(0, 0, 1) {
		t.Fatalf("expected hit point (0, 0, -4) with normal (0, 0, 1); got %v / %v", hit.Point, hit.Normal)
	}

	if _, ok = FindNearest(types.Ray{Origin: types.XYZ(0, 0, 0), Dir: types.XYZ(0, 1, 0)}, sc); ok {
		t.Fatal("expected ray to miss")
	}
}

func TestFindNearestTieBreak(t *testing.T) {
	sc := scene.NewScene()
	red := scene.NewMaterial("red", types.XYZ(1, 0, 0))
	blue := scene.NewMaterial("blue", types.XYZ(0, 0, 1))
	sc.AddMaterial(red)
	sc.AddMaterial(blue)
	first, _ := scene.NewSphere(types.XYZ(0, 0, -5), 1, red)
	second, _ := scene.NewSphere(types.XYZ(0, 0, -5), 1, blue)
	mustAdd(t, sc, first, second)

	hit, ok := FindNearest(types.Ray{Origin: types.XYZ(0, 0, 0), Dir: types.XYZ(0, 0, -1)}, sc)
	if !ok || hit.Primitive != first {
		t.Fatal("expected the first primitive in scene order to win the tie")
	}
}

func TestFindNearestNearTie(t *testing.T) {
	sc := scene.NewScene()
	mat := scene.NewMaterial("m", types.White)
	sc.AddMaterial(mat)

	type spec struct {
		firstDist, secondDist float64
		expFirst              bool
	}
	specs := []spec{
		// Within TieEpsilon: scene order wins even though the second hit is closer
		{5, 5 - TieEpsilon/2, true},
		{5, 5 + TieEpsilon/2, true},
		// Clearly closer hits still win
		{5, 5 - 10*TieEpsilon, false},
		{5, 4, false},
	}

	ray := types.Ray{Origin: types.XYZ(0, 0, 0), Dir: types.XYZ(0, 0, -1)}
	for index, s := range specs {
		first := &fixedPrimitive{dist: s.firstDist, mat: mat}
		second := &fixedPrimitive{dist: s.secondDist, mat: mat}
		sc.Primitives = []scene.Primitive{first, second}

		hit, ok := FindNearest(ray, sc)
		if !ok {
			t.Fatalf("[spec %d] expected ray to hit", index)
		}
		if got := hit.Primitive == first; got != s.expFirst {
			t.Fatalf("[spec %d] expected first primitive to win: %t; got %t (dist %v)", index, s.expFirst, got, hit.Dist)
		}
	}
}

func TestShadeUsesSurfaceUV(t *testing.T) {
	sc := scene.NewScene()
	sc.Ambient = types.White
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{B: 255, A: 255})
	tex, err := scene.NewImageTexture(img)
	if err != nil {
		t.Fatal(err)
	}
	mat := scene.NewMaterial("img", types.White)
	mat.Texture = tex
	sc.AddMaterial(mat)
	rect, err := scene.NewRect(scene.AxisZ, -1, [2]float64{-1, -1}, [2]float64{1, 1}, false, mat)
	if err != nil {
		t.Fatal(err)
	}
	mustAdd(t, sc, rect)

	// Left half of the rect maps to the red texel, right half to the blue one
	left, err := Trace(types.Ray{Origin: types.XYZ(-0.5, 0, 0), Dir: types.XYZ(0, 0, -1)}, sc)
	if err != nil {
		t.Fatal(err)
	}
	right, err := Trace(types.Ray{Origin: types.XYZ(0.5, 0, 0), Dir: types.XYZ(0, 0, -1)}, sc)
	if err != nil {
		t.Fatal(err)
	}
	if left != types.XYZ(1, 0, 0) || right != types.XYZ(0, 0, 1) {
		t.Fatalf("expected red left / blue right; got %v / %v", left, right)
	}
}

func TestTracePixelThinLens(t *testing.T) {
	sc, _, _ := floorScene(t, types.Splat(0.5))
	sc.Background = types.XYZ(0, 0, 1)
	pinhole, err := scene.NewCamera(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1), types.XYZ(0, 1, 0), 90, 1)
	if err != nil {
		t.Fatal(err)
	}
	cam, err := pinhole.WithLens(0.5, 3)
	if err != nil {
		t.Fatal(err)
	}

	for _, samples := range []uint32{1, 9} {
		c1, err := TracePixel(3, 6, 10, 10, samples, cam, sc)
		if err != nil {
			t.Fatal(err)
		}
		c2, _ := TracePixel(3, 6, 10, 10, samples, cam, sc)
		if c1 != c2 {
			t.Fatalf("[%d spp] expected reproducible lens samples; got %v and %v", samples, c1, c2)
		}
	}

	// Uniform regions are unaffected by the lens
	floor, err := TracePixel(5, 9, 10, 10, 4, cam, sc)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(floor, types.Splat(0.5)) {
		t.Fatalf("expected floor color (0.5, 0.5, 0.5); got %v", floor)
	}
}

func TestNormalFacesRay(t *testing.T) {
	sc := scene.NewScene()
	mat := scene.NewMaterial("m", types.White)
	sc.AddMaterial(mat)
	floor, _ := scene.NewPlane(types.XYZ(0, -1, 0), types.XYZ(0, 1, 0), mat)
	mustAdd(t, sc, floor)

	// Looking at the plane from below
	hit, ok := FindNearest(types.Ray{Origin: types.XYZ(0, -2, 0), Dir: types.XYZ(0, 1, 0)}, sc)
	if !ok {
		t.Fatal("expected ray to hit the plane")
	}
	if hit.Normal != types.XYZ(0, -1, 0) {
		t.Fatalf("expected normal to be flipped towards the ray; got %v", hit.Normal)
	}
}

func TestShadowedLight(t *testing.T) {
	ambient := types.Splat(0.1)
	floorRay := types.Ray{Origin: types.XYZ(0, 5, 0), Dir: types.XYZ(0, -1, 0)}

	// Unoccluded: ambient + diffuse
	sc, floor, mat := floorScene(t, ambient)
	mustLight(t, sc, types.XYZ(0, 10, 0), types.Splat(0.5))
	hit := Intersection{Point: types.XYZ(0, -1, 0), Normal: types.XYZ(0, 1, 0), Dist: 6, Primitive: floor}
	lit := Shade(floorRay, hit, sc)
	if !almostEqual(lit, types.Splat(0.6)) {
		t.Fatalf("expected lit color (0.6, 0.6, 0.6); got %v", lit)
	}

	// Occluder between the surface point and the light
	blocker, _ := scene.NewSphere(types.XYZ(0, 3, 0), 1, mat)
	mustAdd(t, sc, blocker)
	shadowed := Shade(floorRay, hit, sc)
	if shadowed != ambient {
		t.Fatalf("expected only the ambient term %v in shadow; got %v", ambient, shadowed)
	}

	// Occluder behind the light does not cast a shadow
	sc, floor, mat = floorScene(t, ambient)
	mustLight(t, sc, types.XYZ(0, 10, 0), types.Splat(0.5))
	behind, _ := scene.NewSphere(types.XYZ(0, 20, 0), 1, mat)
	mustAdd(t, sc, behind)
	hit.Primitive = floor
	if got := Shade(floorRay, hit, sc); !almostEqual(got, types.Splat(0.6)) {
		t.Fatalf("expected lit color (0.6, 0.6, 0.6); got %v", got)
	}
}

func TestShadeClamping(t *testing.T) {
	sc, floor, _ := floorScene(t, types.Splat(0.1))
	mustLight(t, sc, types.XYZ(0, 10, 0), types.White)
	mustLight(t, sc, types.XYZ(0, 20, 0), types.White)

	hit := Intersection{Point: types.XYZ(0, -1, 0), Normal: types.XYZ(0, 1, 0), Dist: 6, Primitive: floor}
	got := Shade(types.Ray{Origin: types.XYZ(0, 5, 0), Dir: types.XYZ(0, -1, 0)}, hit, sc)
	if got != types.White {
		t.Fatalf("expected color to be clamped to (1, 1, 1); got %v", got)
	}
}

func TestShadeAmbientOnly(t *testing.T) {
	sc := scene.NewScene()
	sc.Ambient = types.XYZ(0.2, 0.3, 0.4)
	base := types.XYZ(1, 0.5, 0.25)
	mat := scene.NewMaterial("m", base)
	mat.Specular = 1
	sc.AddMaterial(mat)
	sphere, _ := scene.NewSphere(types.XYZ(0, 0, -5), 1, mat)
	mustAdd(t, sc, sphere)

	ray := types.Ray{Origin: types.XYZ(0, 0, 0), Dir: types.XYZ(0, 0, -1)}
	got, err := Trace(ray, sc)
	if err != nil {
		t.Fatal(err)
	}
	if exp := sc.Ambient.MulVec(base); got != exp {
		t.Fatalf("expected ambient-only color %v; got %v", exp, got)
	}
}

func TestSpecularHighlight(t *testing.T) {
	sc, floor, mat := floorScene(t, types.Vec3{})
	mat.Diffuse = 0
	mat.Specular = 0.5
	mat.Shininess = 8
	mustLight(t, sc, types.XYZ(0, 10, 0), types.White)

	hit := Intersection{Point: types.XYZ(0, -1, 0), Normal: types.XYZ(0, 1, 0), Dist: 6, Primitive: floor}
	got := Shade(types.Ray{Origin: types.XYZ(0, 5, 0), Dir: types.XYZ(0, -1, 0)}, hit, sc)
	if !almostEqual(got, types.Splat(0.5)) {
		t.Fatalf("expected mirror-direction highlight (0.5, 0.5, 0.5); got %v", got)
	}
}

func TestTraceMiss(t *testing.T) {
	sc, _, _ := floorScene(t, types.Splat(0.1))
	sc.Background = types.XYZ(0.1, 0.2, 0.3)
	got, err := Trace(types.Ray{Origin: types.XYZ(0, 0, 0), Dir: types.XYZ(0, 1, 0)}, sc)
	if err != nil {
		t.Fatal(err)
	}
	if got != sc.Background {
		t.Fatalf("expected background color; got %v", got)
	}
}

func TestTracePixel(t *testing.T) {
	sc, _, _ := floorScene(t, types.Splat(0.5))
	sc.Background = types.XYZ(0, 0, 1)
	cam, err := scene.NewCamera(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1), types.XYZ(0, 1, 0), 90, 1)
	if err != nil {
		t.Fatal(err)
	}
	sc.SetCamera(cam)

	// Top half sees the sky, bottom half the floor
	sky, err := TracePixel(5, 1, 10, 10, 1, cam, sc)
	if err != nil {
		t.Fatal(err)
	}
	if sky != sc.Background {
		t.Fatalf("expected background for top row; got %v", sky)
	}
	floor, err := TracePixel(5, 9, 10, 10, 1, cam, sc)
	if err != nil {
		t.Fatal(err)
	}
	if floor != types.Splat(0.5) {
		t.Fatalf("expected ambient floor color; got %v", floor)
	}

	// Multi-sampled pixels inside a uniform region average to the same color
	floorAA, err := TracePixel(5, 9, 10, 10, 7, cam, sc)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(floorAA, types.Splat(0.5)) {
		t.Fatalf("expected averaged floor color (0.5, 0.5, 0.5); got %v", floorAA)
	}

	// Jittered sampling is reproducible
	edge1, _ := TracePixel(3, 5, 10, 10, 16, cam, sc)
	edge2, _ := TracePixel(3, 5, 10, 10, 16, cam, sc)
	if edge1 != edge2 {
		t.Fatalf("expected identical multi-sample colors; got %v and %v", edge1, edge2)
	}
}

func TestTracePixelNumericFailure(t *testing.T) {
	sc := scene.NewScene()
	sc.Background = types.XYZ(0.3, 0.3, 0.3)
	mat := scene.NewMaterial("m", types.White)
	sc.AddMaterial(mat)
	mustAdd(t, sc, &nanPrimitive{mat: mat})
	cam, _ := scene.NewCamera(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1), types.XYZ(0, 1, 0), 60, 1)

	for _, samples := range []uint32{1, 4} {
		got, err := TracePixel(0, 0, 4, 4, samples, cam, sc)
		if !errors.Is(err, ErrNumeric) {
			t.Fatalf("expected ErrNumeric; got %v", err)
		}
		if got != sc.Background {
			t.Fatalf("expected background fallback color; got %v", got)
		}
	}
}

// A primitive that reports a hit with a NaN normal.
type nanPrimitive struct {
	mat *scene.Material
}

func (p *nanPrimitive) Type() scene.PrimitiveType             { return scene.SpherePrimitive }
func (p *nanPrimitive) Intersect(_ types.Ray) (float64, bool) { return 1, true }
func (p *nanPrimitive) Material() *scene.Material             { return p.mat }
func (p *nanPrimitive) NormalAt(_ types.Vec3) types.Vec3 {
	return types.XYZ(math.NaN(), 0, 0)
}

// A primitive hit by every ray at a fixed distance.
type fixedPrimitive struct {
	dist float64
	mat  *scene.Material
}

func (p *fixedPrimitive) Type() scene.PrimitiveType             { return scene.PlanePrimitive }
func (p *fixedPrimitive) Intersect(_ types.Ray) (float64, bool) { return p.dist, true }
func (p *fixedPrimitive) Material() *scene.Material             { return p.mat }
func (p *fixedPrimitive) NormalAt(_ types.Vec3) types.Vec3      { return types.XYZ(0, 0, 1) }

func floorScene(t *testing.T, ambient types.Color) (*scene.Scene, scene.Primitive, *scene.Material) {
	sc := scene.NewScene()
	sc.Ambient = ambient
	mat := scene.NewMaterial("white", types.White)
	if err := sc.AddMaterial(mat); err != nil {
		t.Fatal(err)
	}
	floor, err := scene.NewPlane(types.XYZ(0, -1, 0), types.XYZ(0, 1, 0), mat)
	if err != nil {
		t.Fatal(err)
	}
	mustAdd(t, sc, floor)
	return sc, floor, mat
}

func mustAdd(t *testing.T, sc *scene.Scene, prims ...scene.Primitive) {
	for _, prim := range prims {
		if err := sc.AddPrimitive(prim); err != nil {
			t.Fatal(err)
		}
	}
}

func mustLight(t *testing.T, sc *scene.Scene, pos types.Vec3, color types.Color) {
	if err := sc.AddLight(scene.NewLight(pos, color)); err != nil {
		t.Fatal(err)
	}
}

func almostEqual(a, b types.Vec3) bool {
	return math.Abs(a[0]-b[0]) < 1e-9 && math.Abs(a[1]-b[1]) < 1e-9 && math.Abs(a[2]-b[2]) < 1e-9
}
