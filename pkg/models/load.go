package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load reads a mesh file, picking the loader from the file extension.
// Supported formats are .ply, .obj, .gltf and .glb.
func Load(path string) (*Object, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ply":
		return LoadPLY(path)
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", filepath.Ext(path))
	}
}
