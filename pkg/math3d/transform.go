package math3d

import "math"

// RotationMatrix builds the combined rotation for Euler angles rx, ry,
// rz (radians), applied in Z then Y then X order.
func RotationMatrix(rx, ry, rz float64) Mat3 {
	sinX, cosX := math.Sincos(rx)
	sinY, cosY := math.Sincos(ry)
	sinZ, cosZ := math.Sincos(rz)
	return Mat3{
		cosX * cosY, cosX*sinY*sinZ - sinX*cosZ, cosX*sinY*cosZ + sinX*sinZ,
		sinX * cosY, sinX*sinY*sinZ + cosX*cosZ, sinX*sinY*cosZ - cosX*sinZ,
		-sinY, cosY * sinZ, cosY * cosZ,
	}
}

// RotatePoint rotates p about center: the point is translated so center
// sits at the origin, rotated by m, and translated back.
func RotatePoint(p, center Vec3, m Mat3) Vec3 {
	return m.MulVec3(p.Sub(center)).Add(center)
}

// AxesTransform builds the change-of-basis matrix whose columns are the
// three axis directions and the origin. Applying it maps coordinates
// expressed in that basis into world space; its inverse is the view
// matrix for a camera with those axes.
func AxesTransform(x, y, z, origin Vec3) Mat4 {
	return Mat4{
		x.X, y.X, z.X, origin.X,
		x.Y, y.Y, z.Y, origin.Y,
		x.Z, y.Z, z.Z, origin.Z,
		0, 0, 0, 1,
	}
}

// FocalMatrix builds the 3x4 projection transform for a camera plane
// centered at (camX, camY) with the given width/height aspect ratio.
// Multiplying a camera-space homogeneous point by it yields a
// projection-plane point still carrying depth in Z; the perspective
// divide happens in HomToEuc.
func FocalMatrix(camX, camY, aspect float64) Mat34 {
	return Mat34{
		1 / aspect, 0, 0, -camX,
		0, 1, 0, -camY,
		0, 0, 1, 0,
	}
}
