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

// plyElement is one element block declared in a PLY header, in file order.
type plyElement struct {
	name       string
	count      int
	properties []string
}

// LoadPLY reads an ascii PLY mesh: vertex positions from the x/y/z
// properties and face vertex index lists. Binary PLY variants are
// rejected.
func LoadPLY(path string) (*Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ply: %w", err)
	}
	defer f.Close()

	obj, err := parsePLY(f)
	if err != nil {
		return nil, fmt.Errorf("parse ply %s: %w", path, err)
	}
	return obj, nil
}

func parsePLY(r io.Reader) (*Object, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	elements, err := parsePLYHeader(sc)
	if err != nil {
		return nil, err
	}

	var (
		vertices    []math3d.Vec3
		faceIndexes [][]int
	)

	// Element bodies appear in header declaration order.
	for _, el := range elements {
		switch el.name {
		case "vertex":
			xi, yi, zi := propertyIndex(el.properties, "x"), propertyIndex(el.properties, "y"), propertyIndex(el.properties, "z")
			if xi < 0 || yi < 0 || zi < 0 {
				return nil, fmt.Errorf("vertex element lacks x/y/z properties")
			}
			vertices = make([]math3d.Vec3, 0, el.count)
			for range el.count {
				fields, err := nextDataLine(sc)
				if err != nil {
					return nil, fmt.Errorf("vertex %d: %w", len(vertices), err)
				}
				v, err := parseVertexLine(fields, xi, yi, zi)
				if err != nil {
					return nil, fmt.Errorf("vertex %d: %w", len(vertices), err)
				}
				vertices = append(vertices, v)
			}
		case "face":
			faceIndexes = make([][]int, 0, el.count)
			for range el.count {
				fields, err := nextDataLine(sc)
				if err != nil {
					return nil, fmt.Errorf("face %d: %w", len(faceIndexes), err)
				}
				face, err := parseFaceLine(fields)
				if err != nil {
					return nil, fmt.Errorf("face %d: %w", len(faceIndexes), err)
				}
				faceIndexes = append(faceIndexes, face)
			}
		default:
			// Unknown element: skip its lines.
			for range el.count {
				if _, err := nextDataLine(sc); err != nil {
					return nil, fmt.Errorf("element %s: %w", el.name, err)
				}
			}
		}
	}

	return NewObject(vertices, faceIndexes)
}

func parsePLYHeader(sc *bufio.Scanner) ([]plyElement, error) {
	fields, err := nextDataLine(sc)
	if err != nil || len(fields) != 1 || fields[0] != "ply" {
		return nil, fmt.Errorf("missing ply magic")
	}

	var elements []plyElement
	for {
		fields, err := nextDataLine(sc)
		if err != nil {
			return nil, fmt.Errorf("truncated header: %w", err)
		}

		switch fields[0] {
		case "format":
			if len(fields) < 2 || fields[1] != "ascii" {
				return nil, fmt.Errorf("unsupported format %q, only ascii", strings.Join(fields[1:], " "))
			}
		case "element":
			if len(fields) != 3 {
				return nil, fmt.Errorf("malformed element declaration %q", strings.Join(fields, " "))
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("bad element count %q", fields[2])
			}
			elements = append(elements, plyElement{name: fields[1], count: count})
		case "property":
			if len(elements) == 0 {
				return nil, fmt.Errorf("property before any element")
			}
			el := &elements[len(elements)-1]
			// Scalar: "property <type> <name>"; list: "property list <ct> <t> <name>".
			el.properties = append(el.properties, fields[len(fields)-1])
		case "comment", "obj_info":
		case "end_header":
			return elements, nil
		default:
			return nil, fmt.Errorf("unknown header keyword %q", fields[0])
		}
	}
}

// nextDataLine returns the fields of the next non-empty line.
func nextDataLine(sc *bufio.Scanner) ([]string, error) {
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) > 0 {
			return fields, nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return nil, io.ErrUnexpectedEOF
}

func propertyIndex(properties []string, name string) int {
	for i, p := range properties {
		if p == name {
			return i
		}
	}
	return -1
}

func parseVertexLine(fields []string, xi, yi, zi int) (math3d.Vec3, error) {
	coord := func(i int) (float64, error) {
		if i >= len(fields) {
			return 0, fmt.Errorf("short vertex line, %d fields", len(fields))
		}
		return strconv.ParseFloat(fields[i], 64)
	}

	x, err := coord(xi)
	if err != nil {
		return math3d.Vec3{}, err
	}
	y, err := coord(yi)
	if err != nil {
		return math3d.Vec3{}, err
	}
	z, err := coord(zi)
	if err != nil {
		return math3d.Vec3{}, err
	}
	return math3d.V3(x, y, z), nil
}

func parseFaceLine(fields []string) ([]int, error) {
	count, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("bad index count %q", fields[0])
	}
	if count < 3 {
		return nil, fmt.Errorf("face with %d vertices", count)
	}
	if len(fields) < 1+count {
		return nil, fmt.Errorf("face declares %d indices, line has %d", count, len(fields)-1)
	}

	face := make([]int, count)
	for i := range count {
		idx, err := strconv.Atoi(fields[1+i])
		if err != nil {
			return nil, fmt.Errorf("bad vertex index %q", fields[1+i])
		}
		face[i] = idx
	}
	return face, nil
}
