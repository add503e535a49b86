package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"polyview/pkg/math3d"
)

// LoadOBJ reads a Wavefront OBJ mesh: v records become vertices, f
// records become faces. Polygons are fan-triangulated at load and the
// model is re-centered on its bounding box midpoint, since OBJ exports
// are commonly authored off origin. Normals, texture coordinates and
// material statements are ignored.
func LoadOBJ(path string) (*Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	obj, err := parseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse obj %s: %w", path, err)
	}
	return obj, nil
}

func parseOBJ(r io.Reader) (*Object, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		vertices    []math3d.Vec3
		faceIndexes [][]int
		lineNo      int
	)

	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var coords [3]float64
			for i := range 3 {
				c, err := strconv.ParseFloat(fields[1+i], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad coordinate %q", lineNo, fields[1+i])
				}
				coords[i] = c
			}
			vertices = append(vertices, math3d.V3(coords[0], coords[1], coords[2]))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			face := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := resolveOBJIndex(ref, len(vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				face = append(face, idx)
			}
			// Fan out N-gons so every stored face is a triangle.
			for i := 1; i+1 < len(face); i++ {
				faceIndexes = append(faceIndexes, []int{face[0], face[i], face[i+1]})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	obj, err := NewObject(vertices, faceIndexes)
	if err != nil {
		return nil, err
	}
	obj.recenter()
	return obj, nil
}

// resolveOBJIndex converts a face vertex reference (forms "v", "v/vt",
// "v//vn", "v/vt/vn") into a zero-based vertex index. OBJ indices are
// 1-based; negative values count back from the most recent vertex.
func resolveOBJIndex(ref string, vertexCount int) (int, error) {
	vertPart, _, _ := strings.Cut(ref, "/")
	idx, err := strconv.Atoi(vertPart)
	if err != nil {
		return 0, fmt.Errorf("bad vertex reference %q", ref)
	}

	switch {
	case idx > 0:
		idx--
	case idx < 0:
		idx += vertexCount
	default:
		return 0, fmt.Errorf("vertex index 0 in %q", ref)
	}

	if idx < 0 || idx >= vertexCount {
		return 0, fmt.Errorf("vertex reference %q out of range, have %d vertices", ref, vertexCount)
	}
	return idx, nil
}
