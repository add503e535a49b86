package math3d

// Mat3 is a 3x3 matrix stored in row-major order.
//
// Memory layout (indices):
// | 0 1 2 |
// | 3 4 5 |
// | 6 7 8 |
type Mat3 [9]float64

// Mat3Identity returns the 3x3 identity matrix.
func Mat3Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Get returns the element at (row, col).
func (m Mat3) Get(row, col int) float64 {
	return m[row*3+col]
}

// Mul multiplies two matrices: a * b.
func (a Mat3) Mul(b Mat3) Mat3 {
	var m Mat3
	for row := range 3 {
		for col := range 3 {
			var sum float64
			for k := range 3 {
				sum += a[row*3+k] * b[k*3+col]
			}
			m[row*3+col] = sum
		}
	}
	return m
}

// MulVec3 applies the matrix to a vector (linear map, no translation).
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Scale returns the matrix with every element multiplied by s.
func (m Mat3) Scale(s float64) Mat3 {
	var r Mat3
	for i := range m {
		r[i] = m[i] * s
	}
	return r
}

// Minor returns the 2x2 matrix left after removing the given row and column.
func (m Mat3) Minor(row, col int) Mat2 {
	var r Mat2
	i := 0
	for mr := range 3 {
		if mr == row {
			continue
		}
		for mc := range 3 {
			if mc == col {
				continue
			}
			r[i] = m[mr*3+mc]
			i++
		}
	}
	return r
}

// Cofactor returns the signed minor determinant for (row, col).
func (m Mat3) Cofactor(row, col int) float64 {
	c := m.Minor(row, col).Det()
	if (row+col)%2 != 0 {
		return -c
	}
	return c
}

// Det returns the determinant by cofactor expansion along the first row.
func (m Mat3) Det() float64 {
	return m[0]*m.Cofactor(0, 0) + m[1]*m.Cofactor(0, 1) + m[2]*m.Cofactor(0, 2)
}

// Inverse returns the inverse via the adjugate: the cofactor matrix is
// transposed and scaled by the reciprocal determinant.
//
// The matrix must be nonsingular (Det() != 0); inversion of a singular
// matrix is undefined and unchecked.
func (m Mat3) Inverse() Mat3 {
	var adj Mat3
	for row := range 3 {
		for col := range 3 {
			// (col, row): transposition folded into the assignment.
			adj[col*3+row] = m.Cofactor(row, col)
		}
	}
	return adj.Scale(1 / m.Det())
}
