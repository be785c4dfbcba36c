// Package mapfile reads and writes JSON scene map files and converts them
// into scenes.
//
// A map file looks like:
//
//	{
//	  "camera": {"look_from": [13, 2, 3], "look_at": [0, 0, 0], "fov": 40},
//	  "ambient": [0.1, 0.1, 0.1],
//	  "background": [0.5, 0.7, 1.0],
//	  "materials": {
//	    "ground": {"checker": {"odd": [0.2, 0.3, 0.1], "even": [0.9, 0.9, 0.9]}},
//	    "red": {"color": [0.8, 0.1, 0.1], "specular": 0.5, "shininess": 32},
//	    "marble": {"noise": {"scale": 4, "seed": 1}},
//	    "earth": {"image": "textures/earth.png"}
//	  },
//	  "objects": [
//	    {"type": "plane", "point": [0, 0, 0], "normal": [0, 1, 0], "material": "ground"},
//	    {"type": "sphere", "center": [0, 1, 0], "radius": 1, "material": "red"},
//	    {"type": "box", "min": [2, 0, 0], "max": [3, 1, 1], "material": "marble"},
//	    {"type": "rect", "axis": "xy", "k": -3, "from": [-2, 0], "to": [2, 2], "material": "earth"}
//	  ],
//	  "lights": [{"position": [10, 10, 10], "color": [1, 1, 1]}]
//	}
//
// Image texture paths are resolved relative to the map file.
package mapfile

import "github.com/vgarleanu/raytracer/types"

// Object types.
const (
	SphereObject = "sphere"
	PlaneObject  = "plane"
	BoxObject    = "box"
	RectObject   = "rect"
)

// Rect orientations; the rect lies in the named plane.
const (
	RectXY = "xy"
	RectXZ = "xz"
	RectYZ = "yz"
)

// A JSON encoded 3 component vector.
type Vec3 [3]float64

func (v Vec3) vec() types.Vec3 {
	return types.XYZ(v[0], v[1], v[2])
}

type MapFile struct {
	Camera     Camera              `json:"camera"`
	Ambient    Vec3                `json:"ambient"`
	Background Vec3                `json:"background"`
	Materials  map[string]Material `json:"materials"`
	Objects    []Object            `json:"objects"`
	Lights     []Light             `json:"lights,omitempty"`
}

type Camera struct {
	LookFrom Vec3 `json:"look_from"`
	LookAt   Vec3 `json:"look_at"`

	// Defaults to +Y.
	Up *Vec3 `json:"up,omitempty"`

	// Vertical field of view in degrees.
	FOV float64 `json:"fov"`

	// If not set, the frame aspect ratio is used.
	Aspect float64 `json:"aspect,omitempty"`

	// Thin lens settings. A zero focus distance focuses on look_at.
	Aperture  float64 `json:"aperture,omitempty"`
	FocusDist float64 `json:"focus_dist,omitempty"`
}

type Material struct {
	Color   Vec3     `json:"color"`
	Checker *Checker `json:"checker,omitempty"`
	Noise   *Noise   `json:"noise,omitempty"`

	// Path or URL of an image texture.
	Image string `json:"image,omitempty"`

	// Defaults to 1.
	Diffuse   *float64 `json:"diffuse,omitempty"`
	Specular  float64  `json:"specular,omitempty"`
	Shininess float64  `json:"shininess,omitempty"`
}

type Checker struct {
	Odd   Vec3    `json:"odd"`
	Even  Vec3    `json:"even"`
	Scale float64 `json:"scale,omitempty"`
}

type Noise struct {
	Scale float64 `json:"scale"`
	Seed  int64   `json:"seed,omitempty"`
}

// A scene object. Only the fields relevant to Type are used.
type Object struct {
	Type     string `json:"type"`
	Material string `json:"material"`

	// sphere
	Center Vec3    `json:"center"`
	Radius float64 `json:"radius"`

	// plane
	Point  Vec3 `json:"point"`
	Normal Vec3 `json:"normal"`

	// box
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`

	// rect
	Axis string     `json:"axis,omitempty"`
	K    float64    `json:"k,omitempty"`
	From [2]float64 `json:"from"`
	To   [2]float64 `json:"to"`
	Flip bool       `json:"flip,omitempty"`
}

type Light struct {
	Position Vec3 `json:"position"`
	Color    Vec3 `json:"color"`
}
