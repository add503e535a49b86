// Package math3d provides the fixed-dimension linear algebra kernel for
// polyview: small value-type vectors and matrices with determinant and
// inverse computed by cofactor expansion.
package math3d

import "math"

// Vec3 represents a 3D point or vector.
type Vec3 struct {
	X, Y, Z float64
}

// V3 creates a new Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Zero3 returns the zero vector.
func Zero3() Vec3 {
	return Vec3{}
}

// XAxis returns the world x axis (1, 0, 0).
func XAxis() Vec3 {
	return Vec3{1, 0, 0}
}

// YAxis returns the world y axis (0, 1, 0).
func YAxis() Vec3 {
	return Vec3{0, 1, 0}
}

// ZAxis returns the world z axis (0, 0, 1).
func ZAxis() Vec3 {
	return Vec3{0, 0, 1}
}

// Add returns the vector sum a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns the vector difference a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Scale returns the scalar product a * s.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Negate returns the negated vector.
func (a Vec3) Negate() Vec3 {
	return Vec3{-a.X, -a.Y, -a.Z}
}

// Dot returns the dot product a · b.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the length (magnitude) of the vector.
func (a Vec3) Len() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}

// LenSq returns the squared length (faster, no sqrt).
func (a Vec3) LenSq() float64 {
	return a.X*a.X + a.Y*a.Y + a.Z*a.Z
}

// Normalize returns the unit vector in the same direction.
//
// Normalizing the zero vector divides by zero and yields a non-finite
// result. Callers on the render path must avoid degenerate input (for
// example the cross product of collinear triangle edges); the check is
// deliberately not paid for here.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	return Vec3{a.X / l, a.Y / l, a.Z / l}
}

// Midpoint returns the point halfway between a and b.
func (a Vec3) Midpoint(b Vec3) Vec3 {
	return Vec3{
		(a.X + b.X) / 2,
		(a.Y + b.Y) / 2,
		(a.Z + b.Z) / 2,
	}
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// Min returns the component-wise minimum.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{
		math.Min(a.X, b.X),
		math.Min(a.Y, b.Y),
		math.Min(a.Z, b.Z),
	}
}

// Max returns the component-wise maximum.
func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{
		math.Max(a.X, b.X),
		math.Max(a.Y, b.Y),
		math.Max(a.Z, b.Z),
	}
}

// EucToHom extends the point to homogeneous coordinates by appending w = 1.
func (a Vec3) EucToHom() Vec4 {
	return Vec4{a.X, a.Y, a.Z, 1}
}

// HomToEuc treats the vector as a homogeneous 2D point and divides by Z.
// Panics when Z == 0: points at infinity are not handled.
func (a Vec3) HomToEuc() Vec2 {
	if a.Z == 0 {
		panic("math3d: homogeneous point at infinity (z = 0)")
	}
	if a.Z == 1 {
		return Vec2{a.X, a.Y}
	}
	return Vec2{a.X / a.Z, a.Y / a.Z}
}
