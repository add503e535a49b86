// Package render implements the software rendering pipeline: camera and
// projection, visibility culling, the rasterizer and its pixel buffer,
// and the terminal presentation backend.
package render

import (
	"polyview/pkg/math3d"
)

// Camera projects world-space points onto a 2x2 projection plane by
// plain divide-by-z. It caches the view matrix and the combined
// focal*view transform; mutators only record new state, and the caller
// decides when to pay for Update. There are no near/far clip planes —
// the visibility stage applies its own near test.
type Camera struct {
	position math3d.Vec3
	pitch    float64
	yaw      float64
	roll     float64

	// look-at mode overrides the Euler rotation until the next SetRotation
	target    math3d.Vec3
	hasTarget bool

	focal    math3d.Mat34
	view     math3d.Mat4
	combined math3d.Mat34

	modified bool
}

// NewCamera creates a camera at the given position, facing down its
// local Z axis, projecting onto a plane with the given width/height
// aspect ratio.
func NewCamera(position math3d.Vec3, aspect float64) *Camera {
	c := &Camera{
		position: position,
		focal:    math3d.FocalMatrix(0, 0, aspect),
	}
	c.Update()
	return c
}

// Position returns the camera's world position.
func (c *Camera) Position() math3d.Vec3 {
	return c.position
}

// MoveTo records a new camera position. The cached transforms are stale
// until Update is called.
func (c *Camera) MoveTo(position math3d.Vec3) {
	c.position = position
}

// SetRotation records new Euler angles (radians) and leaves look-at
// mode. The cached transforms are stale until Update is called.
func (c *Camera) SetRotation(pitch, yaw, roll float64) {
	c.pitch, c.yaw, c.roll = pitch, yaw, roll
	c.hasTarget = false
}

// Rotation returns the camera's Euler angles. Meaningful only outside
// look-at mode.
func (c *Camera) Rotation() (pitch, yaw, roll float64) {
	return c.pitch, c.yaw, c.roll
}

// PointTo aims the camera at a world-space target. The cached
// transforms are stale until Update is called.
func (c *Camera) PointTo(target math3d.Vec3) {
	c.target = target
	c.hasTarget = true
}

// Update rebuilds the view matrix and the combined transform from the
// current position and orientation, and flags the camera as modified.
func (c *Camera) Update() {
	var x, y, z math3d.Vec3
	if c.hasTarget {
		x, y, z = c.lookAtAxes()
	} else {
		r := math3d.RotationMatrix(c.pitch, c.yaw, c.roll)
		x = r.MulVec3(math3d.XAxis())
		y = r.MulVec3(math3d.YAxis())
		z = r.MulVec3(math3d.ZAxis())
	}

	c.view = math3d.AxesTransform(x, y, z, c.position).Inverse()
	c.combined = c.focal.MulMat4(c.view)
	c.modified = true
}

// lookAtAxes derives an orthonormal camera basis from the look-at
// target, with world Y as the up reference.
func (c *Camera) lookAtAxes() (x, y, z math3d.Vec3) {
	z = c.target.Sub(c.position).Normalize()
	x = math3d.YAxis().Cross(z).Normalize()
	y = z.Cross(x)
	return x, y, z
}

// ConsumeModified reports whether the camera changed since the last
// call and clears the flag. The frame scheduler uses it to decide
// whether a redraw is due.
func (c *Camera) ConsumeModified() bool {
	m := c.modified
	c.modified = false
	return m
}

// DepthOf returns the camera-space depth of a world-space point: its
// coordinate along the view axis, before the projective divide. The
// visibility stage tests it against the near plane.
func (c *Camera) DepthOf(p math3d.Vec3) float64 {
	return c.view.MulVec4(p.EucToHom()).Z
}

// ProjectPoint maps a world-space point onto the projection plane.
// Points on the camera plane (projected z == 0) panic per the
// homogeneous conversion contract.
func (c *Camera) ProjectPoint(p math3d.Vec3) math3d.Vec2 {
	return c.combined.MulVec4(p.EucToHom()).HomToEuc()
}
