package perception

import (
	"github.com/lixenwraith/eyebeam/vmath"
)

// Viewport is the render surface size in render units, read from the renderer every frame
type Viewport struct {
	Width, Height float64
}

// ToRender maps a normalized point into render space centered on the viewport
// Sensor x is mirrored, y grows upward, z is the render surface plane
func ToRender(p Point2D, vp Viewport) vmath.Vec3F {
	return vmath.Vec3F{
		X: (p.X - 0.5) * vp.Width * -1,
		Y: -(p.Y - 0.5) * vp.Height,
		Z: 0,
	}
}
