package scene

import "github.com/vgarleanu/raytracer/types"

// A point light.
type Light struct {
	Position types.Vec3

	// Light color scaled by its intensity.
	Color types.Color
}

func NewLight(position types.Vec3, color types.Color) *Light {
	return &Light{Position: position, Color: color}
}
