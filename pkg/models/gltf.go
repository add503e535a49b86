package models

import (
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"polyview/pkg/math3d"
)

// LoadGLTF reads a .gltf or .glb mesh. Only the geometry survives:
// vertex positions and triangle indices from every triangle primitive
// in the document. Materials, normals and texture coordinates are
// dropped, since shading is derived from face geometry at render time.
func LoadGLTF(path string) (*Object, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	var (
		vertices    []math3d.Vec3
		faceIndexes [][]int
	)

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				continue
			}

			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := readPositions(doc, posIdx)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: read positions: %w", m.Name, err)
			}

			base := len(vertices)
			vertices = append(vertices, positions...)

			if prim.Indices != nil {
				indices, err := readIndices(doc, *prim.Indices)
				if err != nil {
					return nil, fmt.Errorf("mesh %q: read indices: %w", m.Name, err)
				}
				for i := 0; i+2 < len(indices); i += 3 {
					faceIndexes = append(faceIndexes, []int{
						base + indices[i],
						base + indices[i+1],
						base + indices[i+2],
					})
				}
			} else {
				// No index buffer: vertices form sequential triangles.
				for i := 0; i+2 < len(positions); i += 3 {
					faceIndexes = append(faceIndexes, []int{base + i, base + i + 1, base + i + 2})
				}
			}
		}
	}

	obj, err := NewObject(vertices, faceIndexes)
	if err != nil {
		return nil, fmt.Errorf("gltf %s: %w", path, err)
	}
	return obj, nil
}

// readPositions reads a VEC3 float accessor as vertex positions.
func readPositions(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v/%v", accessor.Type, accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range accessor.Count {
		offset := i * stride
		result[i] = math3d.V3(
			float64(readFloat32(data[offset:])),
			float64(readFloat32(data[offset+4:])),
			float64(readFloat32(data[offset+8:])),
		)
	}
	return result, nil
}

// readIndices reads a scalar accessor of any of the three legal index
// component widths.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR, got %v", accessor.Type)
	}

	var width int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		width = 1
	case gltf.ComponentUshort:
		width = 2
	case gltf.ComponentUint:
		width = 4
	default:
		return nil, fmt.Errorf("unsupported index component type %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, width)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range accessor.Count {
		offset := i * stride
		switch width {
		case 1:
			result[i] = int(data[offset])
		case 2:
			result[i] = int(uint16(data[offset]) | uint16(data[offset+1])<<8)
		case 4:
			result[i] = int(uint32(data[offset]) |
				uint32(data[offset+1])<<8 |
				uint32(data[offset+2])<<16 |
				uint32(data[offset+3])<<24)
		}
	}
	return result, nil
}

// accessorBytes resolves an accessor to its raw little-endian bytes and
// the element stride. defaultStride applies for tightly packed views.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, defaultStride int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]
	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("buffer %d has no data", view.Buffer)
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = defaultStride
	}

	start := view.ByteOffset + accessor.ByteOffset
	need := start + (accessor.Count-1)*stride + defaultStride
	if need > len(buffer.Data) {
		return nil, 0, fmt.Errorf("accessor spans %d bytes, buffer has %d", need, len(buffer.Data))
	}
	return buffer.Data[start:], stride, nil
}

// readFloat32 decodes a little-endian float32.
func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
