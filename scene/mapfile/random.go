package mapfile

import (
	"fmt"
	"math/rand/v2"
)

// Generate a random map: a checkered ground plane, three large spheres (one
// with a marble noise texture) and a grid of small spheres and boxes with
// random materials, seen through a slightly defocused lens. The same seed
// always produces the same map.
func Random(seed uint64) *MapFile {
	rng := rand.New(rand.NewPCG(seed, seed^0x5deece66d))
	randColor := func() Vec3 {
		return Vec3{rng.Float64(), rng.Float64(), rng.Float64()}
	}

	m := &MapFile{
		Camera: Camera{
			LookFrom:  Vec3{13, 2, 3},
			LookAt:    Vec3{0, 0, 0},
			FOV:       40,
			Aperture:  0.1,
			FocusDist: 10,
		},
		Ambient:    Vec3{0.15, 0.15, 0.15},
		Background: Vec3{0.5, 0.7, 1.0},
		Materials: map[string]Material{
			"ground": {Checker: &Checker{Odd: Vec3{0.2, 0.3, 0.1}, Even: Vec3{0.9, 0.9, 0.9}}},
			"glossy": {Color: Vec3{0.7, 0.6, 0.5}, Specular: 0.8, Shininess: 64},
			"matte":  {Color: Vec3{0.4, 0.2, 0.1}},
			"marble": {Noise: &Noise{Scale: 4, Seed: int64(seed)}, Specular: 0.3},
		},
		Objects: []Object{
			{Type: PlaneObject, Point: Vec3{0, 0, 0}, Normal: Vec3{0, 1, 0}, Material: "ground"},
			{Type: SphereObject, Center: Vec3{0, 1, 0}, Radius: 1, Material: "marble"},
			{Type: SphereObject, Center: Vec3{-4, 1, 0}, Radius: 1, Material: "matte"},
			{Type: SphereObject, Center: Vec3{4, 1, 0}, Radius: 1, Material: "glossy"},
		},
		Lights: []Light{
			{Position: Vec3{10, 10, 10}, Color: Vec3{0.7, 0.7, 0.7}},
			{Position: Vec3{-10, 8, 5}, Color: Vec3{0.3, 0.3, 0.35}},
		},
	}

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			pick := rng.Float64()
			center := Vec3{float64(a) + 0.9*rng.Float64(), 0.2, float64(b) + 0.9*rng.Float64()}

			// Keep clear of the large spheres
			if tooClose(center, Vec3{4, 0.2, 0}) || tooClose(center, Vec3{-4, 0.2, 0}) || tooClose(center, Vec3{0, 0.2, 0}) {
				continue
			}

			name := fmt.Sprintf("m%d_%d", a+11, b+11)
			switch {
			case pick < 0.8:
				m.Materials[name] = Material{Color: randColor()}
				m.Objects = append(m.Objects, Object{Type: SphereObject, Center: center, Radius: 0.2, Material: name})
			case pick < 0.95:
				m.Materials[name] = Material{Color: randColor(), Specular: 0.5 + 0.5*rng.Float64(), Shininess: 16 + 112*rng.Float64()}
				m.Objects = append(m.Objects, Object{Type: SphereObject, Center: center, Radius: 0.2, Material: name})
			default:
				m.Materials[name] = Material{Color: randColor()}
				m.Objects = append(m.Objects, Object{
					Type:     BoxObject,
					Min:      Vec3{center[0] - 0.2, 0, center[2] - 0.2},
					Max:      Vec3{center[0] + 0.2, 0.4, center[2] + 0.2},
					Material: name,
				})
			}
		}
	}

	return m
}

func tooClose(p, center Vec3) bool {
	dx, dy, dz := p[0]-center[0], p[1]-center[1], p[2]-center[2]
	return dx*dx+dy*dy+dz*dz <= 0.9*0.9
}
