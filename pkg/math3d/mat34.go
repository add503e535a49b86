package math3d

// Mat34 is a 3-row by 4-column matrix stored in row-major order, used
// for the focal projection transform and the combined camera transform.
// A Mat34 maps homogeneous 4D points onto the projection plane as 3D
// points whose Z carries depth. The shapes a Mat34 can legally multiply
// are fixed by its method set; mismatched dimensions cannot be expressed.
//
// Memory layout (indices):
// | 0 1 2  3  |
// | 4 5 6  7  |
// | 8 9 10 11 |
type Mat34 [12]float64

// Get returns the element at (row, col).
func (m Mat34) Get(row, col int) float64 {
	return m[row*4+col]
}

// MulVec4 applies the 3x4 transform to a homogeneous point, producing a
// projection-plane point whose Z component is the depth carrier.
func (m Mat34) MulVec4(v Vec4) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3]*v.W,
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7]*v.W,
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11]*v.W,
	}
}

// MulMat4 multiplies the 3x4 matrix by a 4x4 matrix, yielding another
// 3x4 transform: combined = focal * view.
func (a Mat34) MulMat4(b Mat4) Mat34 {
	var m Mat34
	for row := range 3 {
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

// Scale returns the matrix with every element multiplied by s.
func (m Mat34) Scale(s float64) Mat34 {
	var r Mat34
	for i := range m {
		r[i] = m[i] * s
	}
	return r
}
