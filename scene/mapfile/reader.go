package mapfile

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/vgarleanu/raytracer/asset"
	"github.com/vgarleanu/raytracer/scene"
	"github.com/vgarleanu/raytracer/types"
)

// Default shininess for materials that don't define one.
const defaultShininess = 32

// Decode a map file.
func Read(r io.Reader) (*MapFile, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var m MapFile
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("mapfile: %w", err)
	}
	return &m, nil
}

// Load a map file from a local path or http(s) URL and build its scene.
// See MapFile.Build for the aspect argument.
func ReadScene(pathToMap string, aspect float64) (*scene.Scene, error) {
	res, err := asset.NewResource(pathToMap, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	m, err := Read(res)
	if err != nil {
		return nil, err
	}
	return m.build(aspect, res)
}

// Build a validated scene. The camera aspect ratio from the map file is used
// when set; otherwise the supplied aspect (usually frame width / height) is
// used. Image textures are resolved relative to the working directory.
// Structural problems are reported as scene.ErrInvalidScene.
func (m *MapFile) Build(aspect float64) (*scene.Scene, error) {
	return m.build(aspect, nil)
}

func (m *MapFile) build(aspect float64, relTo *asset.Resource) (*scene.Scene, error) {
	sc := scene.NewScene()
	sc.Ambient = m.Ambient.vec()
	sc.Background = m.Background.vec()

	cam, err := m.Camera.build(aspect)
	if err != nil {
		return nil, err
	}
	sc.SetCamera(cam)

	// Add materials in name order so scenes are built deterministically
	names := make([]string, 0, len(m.Materials))
	for name := range m.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	materials := make(map[string]*scene.Material, len(names))
	for _, name := range names {
		mat, err := m.Materials[name].build(name, relTo)
		if err != nil {
			return nil, fmt.Errorf("mapfile: material %q: %w", name, err)
		}
		if err = sc.AddMaterial(mat); err != nil {
			return nil, err
		}
		materials[name] = mat
	}

	for idx, obj := range m.Objects {
		mat, ok := materials[obj.Material]
		if !ok {
			return nil, fmt.Errorf("%w: object %d references missing material %q", scene.ErrInvalidScene, idx, obj.Material)
		}
		prim, err := obj.build(mat)
		if err != nil {
			return nil, fmt.Errorf("mapfile: object %d: %w", idx, err)
		}
		if err = sc.AddPrimitive(prim); err != nil {
			return nil, err
		}
	}

	for _, light := range m.Lights {
		if err = sc.AddLight(scene.NewLight(light.Position.vec(), light.Color.vec())); err != nil {
			return nil, err
		}
	}

	if err = sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func (c Camera) build(aspect float64) (*scene.Camera, error) {
	up := types.XYZ(0, 1, 0)
	if c.Up != nil {
		up = c.Up.vec()
	}
	if c.Aspect != 0 {
		aspect = c.Aspect
	}
	cam, err := scene.NewCamera(c.LookFrom.vec(), c.LookAt.vec(), up, c.FOV, aspect)
	if err != nil {
		return nil, err
	}
	if c.Aperture != 0 || c.FocusDist != 0 {
		return cam.WithLens(c.Aperture, c.FocusDist)
	}
	return cam, nil
}

func (m Material) build(name string, relTo *asset.Resource) (*scene.Material, error) {
	mat := scene.NewMaterial(name, m.Color.vec())
	switch {
	case m.Checker != nil:
		mat.Texture = scene.CheckerTexture{
			Odd:   m.Checker.Odd.vec(),
			Even:  m.Checker.Even.vec(),
			Scale: m.Checker.Scale,
		}
	case m.Noise != nil:
		mat.Texture = scene.NewNoiseTexture(m.Noise.Scale, m.Noise.Seed)
	case m.Image != "":
		tex, err := loadImageTexture(m.Image, relTo)
		if err != nil {
			return nil, err
		}
		mat.Texture = tex
	}
	if m.Diffuse != nil {
		mat.Diffuse = *m.Diffuse
	}
	mat.Specular = m.Specular
	mat.Shininess = m.Shininess
	if mat.Shininess <= 0 {
		mat.Shininess = defaultShininess
	}
	return mat, nil
}

func loadImageTexture(pathToImage string, relTo *asset.Resource) (*scene.ImageTexture, error) {
	res, err := asset.NewResource(pathToImage, relTo)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	img, err := imaging.Decode(res)
	if err != nil {
		return nil, fmt.Errorf("%w: could not decode image texture %s: %s", scene.ErrInvalidScene, res.Path(), err.Error())
	}
	return scene.NewImageTexture(img)
}

func (o Object) build(mat *scene.Material) (scene.Primitive, error) {
	switch o.Type {
	case SphereObject:
		return scene.NewSphere(o.Center.vec(), o.Radius, mat)
	case PlaneObject:
		return scene.NewPlane(o.Point.vec(), o.Normal.vec(), mat)
	case BoxObject:
		return scene.NewBox(o.Min.vec(), o.Max.vec(), mat)
	case RectObject:
		axis, ok := rectAxis[o.Axis]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported rect axis %q", scene.ErrInvalidScene, o.Axis)
		}
		return scene.NewRect(axis, o.K, o.From, o.To, o.Flip, mat)
	}
	return nil, fmt.Errorf("%w: unsupported object type %q", scene.ErrInvalidScene, o.Type)
}

// Maps rect planes to the axis perpendicular to them.
var rectAxis = map[string]int{
	RectXY: scene.AxisZ,
	RectXZ: scene.AxisY,
	RectYZ: scene.AxisX,
}
