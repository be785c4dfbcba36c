package types

// Colors are linear RGB triplets stored in a Vec3.
type Color = Vec3

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// Clamp a color to the displayable [0, 1] range. Values above 1 are clipped,
// not tone-mapped.
func ClampColor(c Color) Color {
	return c.Clamp(0, 1)
}
