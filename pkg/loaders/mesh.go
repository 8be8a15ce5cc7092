package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"gonum.org/v1/gonum/spatial/r3"
)

// MeshData is an imported triangle list, ready to become a geometry.TriangleMesh
type MeshData struct {
	Positions []core.Vec3 // Vertex positions
	Normals   []core.Vec3 // Unit face normal, one per triangle
	Indices   []int       // 0-based vertex indices, three per triangle
}

// TriangleCount returns the number of triangles in the mesh
func (m *MeshData) TriangleCount() int {
	return len(m.Indices) / 3
}

// LoadMesh loads a mesh file, picking the parser from the file extension
func LoadMesh(filename string) (*MeshData, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".obj":
		return LoadOBJ(filename)
	case ".ply":
		return LoadPLY(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q: %s", ext, filename)
	}
}

// validate checks that every index refers to a loaded vertex
func (m *MeshData) validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(m.Indices))
	}
	for i, index := range m.Indices {
		if index < 0 || index >= len(m.Positions) {
			return fmt.Errorf("face %d references vertex %d, only %d vertices loaded", i/3, index, len(m.Positions))
		}
	}
	return nil
}

// computeFaceNormals fills Normals with one unit normal per triangle from the
// winding order. Degenerate triangles get a zero normal.
func (m *MeshData) computeFaceNormals() {
	m.Normals = make([]core.Vec3, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		v0 := toR3(m.Positions[m.Indices[i]])
		v1 := toR3(m.Positions[m.Indices[i+1]])
		v2 := toR3(m.Positions[m.Indices[i+2]])

		normal := r3.Cross(r3.Sub(v1, v0), r3.Sub(v2, v0))
		if r3.Norm(normal) == 0 {
			m.Normals = append(m.Normals, core.Vec3{})
			continue
		}
		unit := r3.Unit(normal)
		m.Normals = append(m.Normals, core.NewVec3(unit.X, unit.Y, unit.Z))
	}
}

func toR3(v core.Vec3) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// fan appends the triangle fan of a convex polygon to indices
func fan(indices []int, polygon []int) []int {
	for i := 1; i+1 < len(polygon); i++ {
		indices = append(indices, polygon[0], polygon[i], polygon[i+1])
	}
	return indices
}
