package scene

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/vgarleanu/raytracer/types"
)

// A scene bundles the camera, primitives, lights and global lighting
// parameters. Scenes are built once and must not be modified while a render
// is in progress; renderer workers share them without locking.
type Scene struct {
	Camera *Camera

	Materials  []*Material
	Primitives []Primitive
	Lights     []*Light

	// Color returned for rays that miss every primitive.
	Background types.Color

	// Ambient light applied to every visible surface.
	Ambient types.Color
}

func NewScene() *Scene {
	return &Scene{
		Materials:  make([]*Material, 0),
		Primitives: make([]Primitive, 0),
		Lights:     make([]*Light, 0),
	}
}

// Attach a camera to the scene.
func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

// Add a material to the scene.
func (s *Scene) AddMaterial(material *Material) error {
	for _, mat := range s.Materials {
		if mat == material {
			return fmt.Errorf("scene: material already added")
		}
	}
	s.Materials = append(s.Materials, material)
	return nil
}

// Add a primitive to the scene. Its material must be added to the scene
// before the primitive.
func (s *Scene) AddPrimitive(primitive Primitive) error {
	for _, prim := range s.Primitives {
		if prim == primitive {
			return fmt.Errorf("scene: primitive already added")
		}
	}
	if err := s.checkMaterial(primitive); err != nil {
		return err
	}
	s.Primitives = append(s.Primitives, primitive)
	return nil
}

// Add a light to the scene.
func (s *Scene) AddLight(light *Light) error {
	if !light.Position.IsFinite() || !light.Color.IsFinite() {
		return fmt.Errorf("%w: light has non-finite position or color", ErrInvalidScene)
	}
	s.Lights = append(s.Lights, light)
	return nil
}

func (s *Scene) checkMaterial(primitive Primitive) error {
	material := primitive.Material()
	if material == nil {
		return fmt.Errorf("%w: no material assigned to %s primitive", ErrInvalidScene, primitive.Type())
	}
	for _, mat := range s.Materials {
		if mat == material {
			return nil
		}
	}
	return fmt.Errorf("%w: %s primitive references unknown material; ensure that the material is added to the scene before adding the primitive", ErrInvalidScene, primitive.Type())
}

// Check the scene's structural preconditions. All returned errors wrap
// ErrInvalidScene.
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return fmt.Errorf("%w: no camera defined", ErrInvalidScene)
	}
	if err := s.Camera.Validate(); err != nil {
		return err
	}
	if len(s.Primitives) == 0 {
		return fmt.Errorf("%w: no primitives defined", ErrInvalidScene)
	}
	for idx, prim := range s.Primitives {
		if err := s.checkMaterial(prim); err != nil {
			return err
		}
		if v, ok := prim.(validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("primitive %d: %w", idx, err)
			}
		}
	}
	for _, light := range s.Lights {
		if !light.Position.IsFinite() || !light.Color.IsFinite() {
			return fmt.Errorf("%w: light has non-finite position or color", ErrInvalidScene)
		}
	}
	if !s.Background.IsFinite() || !s.Ambient.IsFinite() {
		return fmt.Errorf("%w: non-finite background or ambient color", ErrInvalidScene)
	}
	return nil
}

// Get a table with scene asset counts.
func (s *Scene) Stats() string {
	counts := map[PrimitiveType]int{}
	for _, prim := range s.Primitives {
		counts[prim.Type()]++
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Asset", "Count"})
	table.Append([]string{"Geometry", "---", fmt.Sprintf("%d", len(s.Primitives))})
	for _, pt := range []PrimitiveType{SpherePrimitive, PlanePrimitive, BoxPrimitive, RectPrimitive} {
		table.Append([]string{"", pt.String(), fmt.Sprintf("%d", counts[pt])})
	}
	table.Append([]string{"Materials", "---", fmt.Sprintf("%d", len(s.Materials))})
	table.Append([]string{"Lights", "---", fmt.Sprintf("%d", len(s.Lights))})
	table.Render()
	return buf.String()
}
