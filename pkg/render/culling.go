package render

import (
	"cmp"
	"slices"

	"polyview/pkg/math3d"
	"polyview/pkg/models"
)

// Orientation is the per-frame placement of the rendered object: world
// position and Euler rotation angles (pitch, yaw, roll in radians).
// The frame scheduler compares successive values to detect idle frames.
type Orientation struct {
	Position math3d.Vec3
	Rotation [3]float64
}

// VisibleTriangles runs the visibility stage: place the object per the
// orientation, drop faces that sit entirely in front of the near plane
// or face away from the camera, and project the survivors to screen
// space with per-vertex depth.
//
// The near test is deliberately minimal. A face survives if any vertex
// has camera-space depth >= 1; triangles straddling the plane render
// with unclipped coordinates rather than being clipped against it.
func VisibleTriangles(obj *models.Object, cam *Camera, state Orientation, width, height int) []ProjectedTriangle {
	center := obj.Center()
	rot := math3d.RotationMatrix(state.Rotation[0], state.Rotation[1], state.Rotation[2])
	offset := state.Position.Sub(center)
	camPos := cam.Position()

	tris := obj.Triangles()
	out := make([]ProjectedTriangle, 0, len(tris))

	for _, tri := range tris {
		var world [3]math3d.Vec3
		nearOK := false
		for i, v := range tri {
			w := math3d.RotatePoint(v, center, rot).Add(offset)
			world[i] = w
			if cam.DepthOf(w) >= 1 {
				nearOK = true
			}
		}
		if !nearOK {
			continue
		}

		normal := world[1].Sub(world[0]).Cross(world[2].Sub(world[0])).Normalize()
		facing := world[0].Sub(camPos).Normalize().Dot(normal)
		if facing >= 0 {
			continue
		}

		pt := ProjectedTriangle{Shade: -facing}
		for i, w := range world {
			pt.V[i] = cam.ProjectPointWithDepth(w, width, height)
		}
		out = append(out, pt)
	}
	return out
}

// SortBackToFront orders triangles by descending nearest-vertex squared
// camera distance — the painter's ordering for the draw paths that skip
// the depth buffer.
func SortBackToFront(tris []ProjectedTriangle) {
	slices.SortFunc(tris, func(a, b ProjectedTriangle) int {
		return cmp.Compare(nearestDistSq(b), nearestDistSq(a))
	})
}

func nearestDistSq(t ProjectedTriangle) float64 {
	return min(t.V[0].DistSq, t.V[1].DistSq, t.V[2].DistSq)
}
