package math3d

// Mat4 is a 4x4 matrix stored in row-major order.
//
// Memory layout (indices):
// | 0  1  2  3  |
// | 4  5  6  7  |
// | 8  9  10 11 |
// | 12 13 14 15 |
//
// For a transform matrix the first three columns hold the basis vectors
// and the fourth column the translation.
type Mat4 [16]float64

// Mat4Identity returns the 4x4 identity matrix.
func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[row*4+col]
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, val float64) {
	m[row*4+col] = val
}

// Mul multiplies two matrices: a * b.
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for row := range 4 {
		for col := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row*4+k] * b[k*4+col]
			}
			m[row*4+col] = sum
		}
	}
	return m
}

// MulVec4 applies the matrix to a homogeneous point.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3]*v.W,
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7]*v.W,
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11]*v.W,
		m[12]*v.X + m[13]*v.Y + m[14]*v.Z + m[15]*v.W,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// Scale returns the matrix with every element multiplied by s.
func (m Mat4) Scale(s float64) Mat4 {
	var r Mat4
	for i := range m {
		r[i] = m[i] * s
	}
	return r
}

// Minor returns the 3x3 matrix left after removing the given row and column.
func (m Mat4) Minor(row, col int) Mat3 {
	var r Mat3
	i := 0
	for mr := range 4 {
		if mr == row {
			continue
		}
		for mc := range 4 {
			if mc == col {
				continue
			}
			r[i] = m[mr*4+mc]
			i++
		}
	}
	return r
}

// Cofactor returns the signed minor determinant for (row, col).
func (m Mat4) Cofactor(row, col int) float64 {
	c := m.Minor(row, col).Det()
	if (row+col)%2 != 0 {
		return -c
	}
	return c
}

// Det returns the determinant by cofactor expansion along the first row,
// recursing through 3x3 minors down to the 2x2 base case.
func (m Mat4) Det() float64 {
	return m[0]*m.Cofactor(0, 0) + m[1]*m.Cofactor(0, 1) +
		m[2]*m.Cofactor(0, 2) + m[3]*m.Cofactor(0, 3)
}

// Inverse returns the inverse via the adjugate: the cofactor matrix is
// transposed and scaled by the reciprocal determinant.
//
// The matrix must be nonsingular (Det() != 0). Inversion of a singular
// matrix is undefined and unchecked; the view matrices this path serves
// are axis transforms, which are always invertible.
func (m Mat4) Inverse() Mat4 {
	var adj Mat4
	for row := range 4 {
		for col := range 4 {
			adj[col*4+row] = m.Cofactor(row, col)
		}
	}
	return adj.Scale(1 / m.Det())
}
