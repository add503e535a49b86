// Package models provides the mesh geometry model and file loaders for polyview.
package models

import (
	"fmt"

	"polyview/pkg/math3d"
)

// Object is an indexed polygon mesh. Vertices are shared across faces;
// each face is a list of at least three vertex indices with arbitrary
// arity. The axis-aligned bounds and the materialized face geometry are
// derived state, recomputed whenever the vertices change.
type Object struct {
	vertices    []math3d.Vec3
	faceIndexes [][]int

	faces     [][]math3d.Vec3
	boundsMin math3d.Vec3
	boundsMax math3d.Vec3
}

// NewObject builds an Object from shared vertices and per-face index
// lists. Every face must reference at least three existing vertices;
// violations are reported as errors since they indicate a broken or
// truncated mesh file.
func NewObject(vertices []math3d.Vec3, faceIndexes [][]int) (*Object, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("mesh has no vertices")
	}
	for fi, face := range faceIndexes {
		if len(face) < 3 {
			return nil, fmt.Errorf("face %d has %d vertices, need at least 3", fi, len(face))
		}
		for _, vi := range face {
			if vi < 0 || vi >= len(vertices) {
				return nil, fmt.Errorf("face %d references vertex %d of %d", fi, vi, len(vertices))
			}
		}
	}

	o := &Object{
		vertices:    vertices,
		faceIndexes: faceIndexes,
	}
	o.recompute()
	return o, nil
}

// recompute refreshes the derived state after a vertex change.
func (o *Object) recompute() {
	o.boundsMin = o.vertices[0]
	o.boundsMax = o.vertices[0]
	for _, v := range o.vertices[1:] {
		o.boundsMin = o.boundsMin.Min(v)
		o.boundsMax = o.boundsMax.Max(v)
	}

	if o.faces == nil {
		o.faces = make([][]math3d.Vec3, len(o.faceIndexes))
		for i, face := range o.faceIndexes {
			o.faces[i] = make([]math3d.Vec3, len(face))
		}
	}
	for i, face := range o.faceIndexes {
		for j, vi := range face {
			o.faces[i][j] = o.vertices[vi]
		}
	}
}

// Vertices returns the shared vertex slice.
func (o *Object) Vertices() []math3d.Vec3 {
	return o.vertices
}

// Faces returns the materialized face geometry, one vertex list per face.
func (o *Object) Faces() [][]math3d.Vec3 {
	return o.faces
}

// Size returns the dimensions of the axis-aligned bounding box.
func (o *Object) Size() math3d.Vec3 {
	return o.boundsMax.Sub(o.boundsMin)
}

// Center returns the midpoint of the axis-aligned bounding box.
func (o *Object) Center() math3d.Vec3 {
	return o.boundsMin.Midpoint(o.boundsMax)
}

// FaceCount returns the number of faces.
func (o *Object) FaceCount() int {
	return len(o.faceIndexes)
}

// VertexCount returns the number of shared vertices.
func (o *Object) VertexCount() int {
	return len(o.vertices)
}

// Triangles fans every face out into triangles for the render pipeline.
// A triangle face passes through unchanged; an N-gon becomes N-2
// triangles anchored at its first vertex.
func (o *Object) Triangles() [][3]math3d.Vec3 {
	tris := make([][3]math3d.Vec3, 0, len(o.faces))
	for _, face := range o.faces {
		for i := 1; i+1 < len(face); i++ {
			tris = append(tris, [3]math3d.Vec3{face[0], face[i], face[i+1]})
		}
	}
	return tris
}

// Scale multiplies every vertex by the given factor and refreshes the
// derived state. Scaling by exactly 1.0 leaves the object untouched.
func (o *Object) Scale(by float64) {
	if by == 1.0 {
		return
	}
	for i := range o.vertices {
		o.vertices[i] = o.vertices[i].Scale(by)
	}
	o.recompute()
}

// NormalizeSize uniformly scales the object so its largest bounding box
// dimension equals target. Degenerate meshes with zero extent are left
// unchanged.
func (o *Object) NormalizeSize(target float64) {
	size := o.Size()
	largest := max(size.X, size.Y, size.Z)
	if largest == 0 {
		return
	}
	o.Scale(target / largest)
}

// recenter translates the vertices so the bounding box midpoint sits at
// the origin. Loaders call it for formats whose models are authored off
// center.
func (o *Object) recenter() {
	c := o.Center()
	if c == math3d.Zero3() {
		return
	}
	for i := range o.vertices {
		o.vertices[i] = o.vertices[i].Sub(c)
	}
	o.recompute()
}
