package scene

import "errors"

// ErrInvalidScene is returned (wrapped) when a scene fails its structural
// preconditions.
var ErrInvalidScene = errors.New("scene: invalid scene")
