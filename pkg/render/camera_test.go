package render

import (
	"math"
	"testing"

	"polyview/pkg/math3d"
)

func TestCameraProjectPoint(t *testing.T) {
	cam := NewCamera(math3d.Zero3(), 1)

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected math3d.Vec2
	}{
		{"on axis", math3d.V3(0, 0, 5), math3d.V2(0, 0)},
		{"right of axis", math3d.V3(1, 0, 5), math3d.V2(0.2, 0)},
		{"above axis", math3d.V3(0, 2, 4), math3d.V2(0, 0.5)},
		{"depth shrinks offset", math3d.V3(1, 0, 10), math3d.V2(0.1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := cam.ProjectPoint(tc.point)
			if math.Abs(got.X-tc.expected.X) > 1e-12 || math.Abs(got.Y-tc.expected.Y) > 1e-12 {
				t.Errorf("got %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestCameraAspectCompressesX(t *testing.T) {
	cam := NewCamera(math3d.Zero3(), 2)
	got := cam.ProjectPoint(math3d.V3(1, 1, 5))
	if math.Abs(got.X-0.1) > 1e-12 || math.Abs(got.Y-0.2) > 1e-12 {
		t.Errorf("got %v, want (0.1, 0.2)", got)
	}
}

func TestCameraMoveToNeedsUpdate(t *testing.T) {
	cam := NewCamera(math3d.Zero3(), 1)
	cam.ConsumeModified()

	cam.MoveTo(math3d.V3(0, 0, -5))

	// Stale until Update: the point projects as if the camera had not moved.
	before := cam.ProjectPoint(math3d.V3(1, 0, 5))
	if math.Abs(before.X-0.2) > 1e-12 {
		t.Errorf("projection changed before Update: %v", before)
	}
	if cam.ConsumeModified() {
		t.Error("modified flag set before Update")
	}

	cam.Update()

	after := cam.ProjectPoint(math3d.V3(1, 0, 5))
	if math.Abs(after.X-0.1) > 1e-12 {
		t.Errorf("projection after Update = %v, want (0.1, 0)", after)
	}
	if !cam.ConsumeModified() {
		t.Error("Update did not set the modified flag")
	}
	if cam.ConsumeModified() {
		t.Error("ConsumeModified did not clear the flag")
	}
}

func TestCameraPointTo(t *testing.T) {
	cam := NewCamera(math3d.V3(0, 0, -10), 1)
	cam.PointTo(math3d.Zero3())
	cam.Update()

	// The target lands on the view axis.
	got := cam.ProjectPoint(math3d.Zero3())
	if math.Abs(got.X) > 1e-12 || math.Abs(got.Y) > 1e-12 {
		t.Errorf("target projects to %v, want origin", got)
	}

	// A point one unit along world X sits 10 units deep.
	got = cam.ProjectPoint(math3d.V3(1, 0, 0))
	if math.Abs(got.X-0.1) > 1e-12 || math.Abs(got.Y) > 1e-12 {
		t.Errorf("got %v, want (0.1, 0)", got)
	}
}

func TestCameraPointToOffAxis(t *testing.T) {
	cam := NewCamera(math3d.V3(5, 3, -7), 1)
	cam.PointTo(math3d.V3(1, -2, 4))
	cam.Update()

	got := cam.ProjectPoint(math3d.V3(1, -2, 4))
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y) > 1e-9 {
		t.Errorf("target projects to %v, want origin", got)
	}
}

func TestProjectPointWithDepthScreenMapping(t *testing.T) {
	cam := NewCamera(math3d.Zero3(), 1)

	tests := []struct {
		name         string
		point        math3d.Vec3
		wantX, wantY int
	}{
		{"center", math3d.V3(0, 0, 5), 50, 50},
		{"right", math3d.V3(1, 0, 5), 60, 50},
		{"up maps to lower row index", math3d.V3(0, 0.5, 5), 50, 45},
		{"down maps to higher row index", math3d.V3(0, -0.5, 5), 50, 55},
		// Exact pixel boundaries: the float products land a few ulps off
		// the integer and must not floor into the neighboring cell.
		{"row boundary", math3d.V3(0, 0.3, 5), 50, 47},
		{"column boundary", math3d.V3(0.7, 0, 5), 57, 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := cam.ProjectPointWithDepth(tc.point, 100, 100)
			if got.X != tc.wantX || got.Y != tc.wantY {
				t.Errorf("screen = (%d, %d), want (%d, %d)", got.X, got.Y, tc.wantX, tc.wantY)
			}
			if math.Abs(got.Z-5) > 1e-12 {
				t.Errorf("depth = %v, want 5", got.Z)
			}
			wantDistSq := tc.point.LenSq()
			if math.Abs(got.DistSq-wantDistSq) > 1e-12 {
				t.Errorf("DistSq = %v, want %v", got.DistSq, wantDistSq)
			}
		})
	}
}

func TestProjectPointPanicsOnCameraPlane(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a point on the camera plane")
		}
	}()
	cam := NewCamera(math3d.Zero3(), 1)
	_ = cam.ProjectPoint(math3d.V3(1, 1, 0))
}
