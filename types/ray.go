package types

// A ray with an origin and a direction. Producers are expected to supply a
// unit-length direction.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// Get the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}
