package render

import (
	"math"

	"polyview/pkg/math3d"
)

// The projection plane spans 2x2 world units around the view axis.
const planeSize = 2.0

// ProjectedPoint is a screen-space vertex: integer pixel coordinates,
// the camera-space depth carried through the projection, and the
// squared distance to the camera for painter's sorting.
type ProjectedPoint struct {
	X, Y   int
	Z      float64
	DistSq float64
}

// ProjectedTriangle is a culled, screen-mapped triangle with its flat
// shade intensity in [0, 1].
type ProjectedTriangle struct {
	V     [3]ProjectedPoint
	Shade float64
}

// screenEpsilon absorbs float rounding when a plane coordinate lands
// exactly on a pixel boundary: the Y flip can leave a value a few ulps
// below the integer, which a bare floor would put in the wrong row.
const screenEpsilon = 1e-9

// toScreen maps a projection-plane point to pixel coordinates. Y flips
// because screen rows grow downward while the plane's Y grows upward.
func toScreen(p math3d.Vec2, width, height int) (int, int) {
	nx := (p.X + planeSize/2) / planeSize
	ny := (p.Y + planeSize/2) / planeSize
	x := int(math.Floor(nx*float64(width) + screenEpsilon))
	y := int(math.Floor((1-ny)*float64(height) + screenEpsilon))
	return x, y
}

// ProjectPointWithDepth projects a world-space point to screen
// coordinates for a width x height buffer, carrying the depth values
// the rasterizer and the painter's sort need.
func (c *Camera) ProjectPointWithDepth(p math3d.Vec3, width, height int) ProjectedPoint {
	pp := c.combined.MulVec4(p.EucToHom())
	plane := pp.HomToEuc()
	x, y := toScreen(plane, width, height)
	return ProjectedPoint{
		X:      x,
		Y:      y,
		Z:      pp.Z,
		DistSq: p.Sub(c.position).LenSq(),
	}
}
