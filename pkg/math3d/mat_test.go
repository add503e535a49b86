package math3d

import (
	"math"
	"testing"
)

func mat3Near(a, b Mat3, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func mat4Near(a, b Mat4, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func TestMat2Det(t *testing.T) {
	m := Mat2{3, 8, 4, 6}
	if got := m.Det(); got != -14 {
		t.Errorf("det = %v, want -14", got)
	}
}

func TestMat2MulVec2(t *testing.T) {
	m := Mat2{
		1, 2,
		3, 4,
	}
	got := m.MulVec2(Vec2{X: 5, Y: 6})
	if got.X != 17 || got.Y != 39 {
		t.Errorf("got %v, want (17, 39)", got)
	}
	id := Mat2Identity().MulVec2(Vec2{X: -2, Y: 7})
	if id.X != -2 || id.Y != 7 {
		t.Errorf("identity moved the vector: %v", id)
	}
}

func TestMat2Inverse(t *testing.T) {
	m := Mat2{4, 7, 2, 6}
	inv := m.Inverse()
	prod := m.Mul(inv)
	id := Mat2Identity()
	for i := range prod {
		if math.Abs(prod[i]-id[i]) > 1e-12 {
			t.Fatalf("m * m^-1 = %v, want identity", prod)
		}
	}
}

func TestMat3Minor(t *testing.T) {
	m := Mat3{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	tests := []struct {
		name     string
		row, col int
		expected Mat2
	}{
		{"top left", 0, 0, Mat2{5, 6, 8, 9}},
		{"center", 1, 1, Mat2{1, 3, 7, 9}},
		{"bottom right", 2, 2, Mat2{1, 2, 4, 5}},
		{"mixed", 0, 2, Mat2{4, 5, 7, 8}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.Minor(tc.row, tc.col); got != tc.expected {
				t.Errorf("got %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestMat3Det(t *testing.T) {
	tests := []struct {
		name     string
		m        Mat3
		expected float64
	}{
		{"identity", Mat3Identity(), 1},
		{"singular", Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}, 0},
		{"generic", Mat3{2, -3, 1, 2, 0, -1, 1, 4, 5}, 49},
		{"rotation preserves volume", RotationMatrix(0.3, -0.7, 1.2), 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.m.Det(); math.Abs(got-tc.expected) > 1e-12 {
				t.Errorf("got %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestMat3Inverse(t *testing.T) {
	m := Mat3{2, -3, 1, 2, 0, -1, 1, 4, 5}
	prod := m.Mul(m.Inverse())
	if !mat3Near(prod, Mat3Identity(), 1e-12) {
		t.Errorf("m * m^-1 = %v, want identity", prod)
	}
}

func TestMat3RotationInverseIsTranspose(t *testing.T) {
	r := RotationMatrix(0.4, 1.1, -0.6)
	if !mat3Near(r.Inverse(), r.Transpose(), 1e-12) {
		t.Error("rotation inverse should equal its transpose")
	}
}

func TestMat3MulVec3(t *testing.T) {
	m := Mat3{
		0, -1, 0,
		1, 0, 0,
		0, 0, 1,
	}
	// Quarter turn about Z maps +X to +Y.
	if got := m.MulVec3(XAxis()); got != YAxis() {
		t.Errorf("got %v, want %v", got, YAxis())
	}
}

func TestMat4Det(t *testing.T) {
	tests := []struct {
		name     string
		m        Mat4
		expected float64
	}{
		{"identity", Mat4Identity(), 1},
		{"scaled identity", Mat4Identity().Scale(2), 16},
		{"singular duplicate rows", Mat4{
			1, 2, 3, 4,
			1, 2, 3, 4,
			0, 1, 0, 0,
			0, 0, 0, 1,
		}, 0},
		{"generic", Mat4{
			1, 0, 2, -1,
			3, 0, 0, 5,
			2, 1, 4, -3,
			1, 0, 5, 0,
		}, 30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.m.Det(); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("got %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestMat4Inverse(t *testing.T) {
	m := Mat4{
		1, 0, 2, -1,
		3, 0, 0, 5,
		2, 1, 4, -3,
		1, 0, 5, 0,
	}
	if !mat4Near(m.Mul(m.Inverse()), Mat4Identity(), 1e-9) {
		t.Error("m * m^-1 should be identity")
	}
	if !mat4Near(m.Inverse().Mul(m), Mat4Identity(), 1e-9) {
		t.Error("m^-1 * m should be identity")
	}
}

func TestMat4AxesTransformInverse(t *testing.T) {
	// A camera basis built from orthonormal axes must always invert.
	r := RotationMatrix(0.2, -1.3, 0.8)
	x := r.MulVec3(XAxis())
	y := r.MulVec3(YAxis())
	z := r.MulVec3(ZAxis())
	m := AxesTransform(x, y, z, V3(5, -2, 7))

	if !mat4Near(m.Mul(m.Inverse()), Mat4Identity(), 1e-12) {
		t.Error("axes transform times its inverse should be identity")
	}

	// Mapping a world point through the inverse and back is a no-op.
	p := V3(1, 2, 3).EucToHom()
	back := m.MulVec4(m.Inverse().MulVec4(p))
	if !vecNear(back.HomToEuc(), V3(1, 2, 3), 1e-12) {
		t.Errorf("round trip = %v, want (1, 2, 3)", back)
	}
}

func TestMat4Transpose(t *testing.T) {
	m := Mat4{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	tr := m.Transpose()
	for row := range 4 {
		for col := range 4 {
			if tr.Get(row, col) != m.Get(col, row) {
				t.Fatalf("transpose[%d][%d] = %v, want %v", row, col, tr.Get(row, col), m.Get(col, row))
			}
		}
	}
	if tr.Transpose() != m {
		t.Error("double transpose should restore the original")
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := Mat4{
		1, 0, 2, -1,
		3, 0, 0, 5,
		2, 1, 4, -3,
		1, 0, 5, 0,
	}
	if m.Mul(Mat4Identity()) != m {
		t.Error("m * I should equal m")
	}
	if Mat4Identity().Mul(m) != m {
		t.Error("I * m should equal m")
	}
}

func TestMat34MulVec4(t *testing.T) {
	// The focal transform with aspect 1 and a centered plane is a
	// 3x4 identity slice: it drops w and keeps (x, y, z).
	f := FocalMatrix(0, 0, 1)
	p := V4(3, -2, 7, 1)
	if got := f.MulVec4(p); got != V3(3, -2, 7) {
		t.Errorf("got %v, want (3, -2, 7)", got)
	}
}

func TestMat34MulMat4(t *testing.T) {
	f := FocalMatrix(0.5, -0.25, 2)
	// Multiplying by the identity view must not change the transform.
	if got := f.MulMat4(Mat4Identity()); got != f {
		t.Errorf("got %v, want %v", got, f)
	}

	// Composing with a translation then projecting equals translating
	// the point first and projecting with the bare focal matrix.
	view := Mat4{
		1, 0, 0, 10,
		0, 1, 0, -4,
		0, 0, 1, 2,
		0, 0, 0, 1,
	}
	combined := f.MulMat4(view)
	p := V3(1, 2, 3)
	want := f.MulVec4(p.Add(V3(10, -4, 2)).EucToHom())
	if got := combined.MulVec4(p.EucToHom()); !vecNear(got, want, 1e-12) {
		t.Errorf("got %v, want %v", got, want)
	}
}
