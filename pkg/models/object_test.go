package models

import (
	"math"
	"strings"
	"testing"

	"polyview/pkg/math3d"
)

func cubeObject(t *testing.T) *Object {
	t.Helper()
	vertices := []math3d.Vec3{
		{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
	}
	faces := [][]int{
		{0, 1, 2, 3}, {4, 5, 6, 7},
		{0, 1, 5, 4}, {2, 3, 7, 6},
		{0, 3, 7, 4}, {1, 2, 6, 5},
	}
	obj, err := NewObject(vertices, faces)
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}
	return obj
}

func TestNewObjectValidation(t *testing.T) {
	v := []math3d.Vec3{{X: 0}, {X: 1}, {X: 2}}

	tests := []struct {
		name    string
		verts   []math3d.Vec3
		faces   [][]int
		wantErr string
	}{
		{"no vertices", nil, nil, "no vertices"},
		{"short face", v, [][]int{{0, 1}}, "need at least 3"},
		{"index too large", v, [][]int{{0, 1, 3}}, "references vertex 3"},
		{"negative index", v, [][]int{{0, 1, -1}}, "references vertex -1"},
		{"valid triangle", v, [][]int{{0, 1, 2}}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewObject(tc.verts, tc.faces)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestObjectBounds(t *testing.T) {
	obj := cubeObject(t)

	if got := obj.Size(); got != math3d.V3(2, 2, 2) {
		t.Errorf("Size = %v, want (2, 2, 2)", got)
	}
	if got := obj.Center(); got != math3d.Zero3() {
		t.Errorf("Center = %v, want origin", got)
	}
	if got := obj.VertexCount(); got != 8 {
		t.Errorf("VertexCount = %d, want 8", got)
	}
	if got := obj.FaceCount(); got != 6 {
		t.Errorf("FaceCount = %d, want 6", got)
	}
}

func TestObjectTrianglesFanOut(t *testing.T) {
	obj := cubeObject(t)

	// Six quads fan into two triangles each.
	tris := obj.Triangles()
	if len(tris) != 12 {
		t.Fatalf("len(Triangles) = %d, want 12", len(tris))
	}

	// The first quad {0,1,2,3} fans around vertex 0.
	v := obj.Vertices()
	want := [2][3]math3d.Vec3{
		{v[0], v[1], v[2]},
		{v[0], v[2], v[3]},
	}
	if tris[0] != want[0] || tris[1] != want[1] {
		t.Errorf("first quad fanned to %v, %v", tris[0], tris[1])
	}
}

func TestObjectScale(t *testing.T) {
	obj := cubeObject(t)
	obj.Scale(3)

	if got := obj.Size(); got != math3d.V3(6, 6, 6) {
		t.Errorf("Size after scale = %v, want (6, 6, 6)", got)
	}
	if got := obj.Faces()[0][0]; got != math3d.V3(-3, -3, -3) {
		t.Errorf("materialized face not refreshed: %v", got)
	}
}

func TestObjectScaleByOneIsExactNoop(t *testing.T) {
	vertices := []math3d.Vec3{
		{X: 0.1, Y: 0.2, Z: 0.3},
		{X: 1.0 / 3.0, Y: math.Pi, Z: -7.7},
		{X: 5, Y: -5, Z: 5},
	}
	obj, err := NewObject(vertices, [][]int{{0, 1, 2}})
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}

	before := make([]math3d.Vec3, len(obj.Vertices()))
	copy(before, obj.Vertices())

	obj.Scale(1.0)

	for i, v := range obj.Vertices() {
		if v != before[i] {
			t.Fatalf("vertex %d changed: %v -> %v", i, before[i], v)
		}
	}
}

func TestObjectNormalizeSize(t *testing.T) {
	vertices := []math3d.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 4, Y: 1, Z: 0},
		{X: 0, Y: 2, Z: 1},
	}
	obj, err := NewObject(vertices, [][]int{{0, 1, 2}})
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}

	obj.NormalizeSize(5)

	size := obj.Size()
	largest := max(size.X, size.Y, size.Z)
	if math.Abs(largest-5) > 1e-12 {
		t.Errorf("largest dimension = %v, want 5", largest)
	}
	// Proportions preserved.
	if math.Abs(size.Y-size.X/4*2) > 1e-12 {
		t.Errorf("aspect not preserved: %v", size)
	}
}

func TestLoadDispatchRejectsUnknownExtension(t *testing.T) {
	if _, err := Load("model.stl"); err == nil || !strings.Contains(err.Error(), "unsupported mesh format") {
		t.Fatalf("error = %v, want unsupported format", err)
	}
}
