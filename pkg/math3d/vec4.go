package math3d

import "math"

// Vec4 represents a 4D vector, usually a homogeneous 3D point.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// Add returns the vector sum a + b.
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

// Sub returns the vector difference a - b.
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

// Scale returns the scalar product a * s.
func (a Vec4) Scale(s float64) Vec4 {
	return Vec4{a.X * s, a.Y * s, a.Z * s, a.W * s}
}

// Dot returns the dot product a · b.
func (a Vec4) Dot(b Vec4) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// Len returns the length of the vector.
func (a Vec4) Len() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z + a.W*a.W)
}

// Vec3 returns the X, Y, Z components, discarding W.
func (a Vec4) Vec3() Vec3 {
	return Vec3{a.X, a.Y, a.Z}
}

// HomToEuc converts the homogeneous point back to Euclidean coordinates
// by dividing by W. Panics when W == 0: points at infinity are not
// handled and must never reach the pipeline silently.
func (a Vec4) HomToEuc() Vec3 {
	if a.W == 0 {
		panic("math3d: homogeneous point at infinity (w = 0)")
	}
	if a.W == 1 {
		return Vec3{a.X, a.Y, a.Z}
	}
	return Vec3{a.X / a.W, a.Y / a.W, a.Z / a.W}
}
