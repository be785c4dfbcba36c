package scene

import "github.com/vgarleanu/raytracer/types"

// Defines a scene material. Materials are shared read-only between the
// primitives that reference them.
type Material struct {
	Name string

	// Surface color source.
	Texture Texture

	// Diffuse and specular coefficients.
	Diffuse  float64
	Specular float64

	// Phong exponent for the specular highlight.
	Shininess float64
}

// Create a diffuse material with a solid color.
func NewMaterial(name string, color types.Color) *Material {
	return &Material{
		Name:      name,
		Texture:   SolidTexture{Color: color},
		Diffuse:   1.0,
		Shininess: 32,
	}
}

// Get the material color at a surface point with surface coordinates
// (u, v).
func (m *Material) ColorAt(u, v float64, p types.Vec3) types.Color {
	if m.Texture == nil {
		return types.Black
	}
	return m.Texture.ColorAt(u, v, p)
}
