package math3d

// Mat2 is a 2x2 matrix stored in row-major order.
//
// Memory layout (indices):
// | 0 1 |
// | 2 3 |
type Mat2 [4]float64

// Mat2Identity returns the 2x2 identity matrix.
func Mat2Identity() Mat2 {
	return Mat2{
		1, 0,
		0, 1,
	}
}

// Get returns the element at (row, col).
func (m Mat2) Get(row, col int) float64 {
	return m[row*2+col]
}

// Mul multiplies two matrices: a * b.
func (a Mat2) Mul(b Mat2) Mat2 {
	return Mat2{
		a[0]*b[0] + a[1]*b[2], a[0]*b[1] + a[1]*b[3],
		a[2]*b[0] + a[3]*b[2], a[2]*b[1] + a[3]*b[3],
	}
}

// MulVec2 applies the matrix to a vector.
func (m Mat2) MulVec2(v Vec2) Vec2 {
	return Vec2{
		m[0]*v.X + m[1]*v.Y,
		m[2]*v.X + m[3]*v.Y,
	}
}

// Transpose returns the transposed matrix.
func (m Mat2) Transpose() Mat2 {
	return Mat2{
		m[0], m[2],
		m[1], m[3],
	}
}

// Scale returns the matrix with every element multiplied by s.
func (m Mat2) Scale(s float64) Mat2 {
	return Mat2{m[0] * s, m[1] * s, m[2] * s, m[3] * s}
}

// Det returns the determinant, the base case of the cofactor expansion.
func (m Mat2) Det() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Inverse returns the inverse of the matrix.
//
// The matrix must be nonsingular (Det() != 0); inversion of a singular
// matrix is undefined and unchecked.
func (m Mat2) Inverse() Mat2 {
	return Mat2{
		m[3], -m[1],
		-m[2], m[0],
	}.Scale(1 / m.Det())
}
