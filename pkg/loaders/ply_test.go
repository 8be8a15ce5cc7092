package loaders

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// createTestPLY writes a binary little-endian unit square with optional
// normals and colors that the loader must skip.
func createTestPLY(t *testing.T, filename string, includeNormals bool, includeColors bool) {
	t.Helper()
	var buf bytes.Buffer

	buf.WriteString("ply\n")
	buf.WriteString("format binary_little_endian 1.0\n")
	buf.WriteString("comment unit square\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")
	if includeNormals {
		buf.WriteString("property float nx\n")
		buf.WriteString("property float ny\n")
		buf.WriteString("property float nz\n")
	}
	if includeColors {
		buf.WriteString("property uchar red\n")
		buf.WriteString("property uchar green\n")
		buf.WriteString("property uchar blue\n")
	}
	buf.WriteString("element face 2\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("end_header\n")

	vertices := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	for _, v := range vertices {
		binary.Write(&buf, binary.LittleEndian, v)
		if includeNormals {
			binary.Write(&buf, binary.LittleEndian, [3]float32{0, 0, 1})
		}
		if includeColors {
			binary.Write(&buf, binary.LittleEndian, [3]uint8{255, 128, 0})
		}
	}

	for _, face := range [][3]int32{{0, 1, 2}, {0, 2, 3}} {
		binary.Write(&buf, binary.LittleEndian, uint8(3))
		binary.Write(&buf, binary.LittleEndian, face)
	}

	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write test PLY: %v", err)
	}
}

func TestLoadPLY_Binary(t *testing.T) {
	tests := []struct {
		name           string
		includeNormals bool
		includeColors  bool
	}{
		{"positions only", false, false},
		{"with normals", true, false},
		{"with normals and colors", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename := filepath.Join(t.TempDir(), "square.ply")
			createTestPLY(t, filename, tt.includeNormals, tt.includeColors)

			mesh, err := LoadPLY(filename)
			if err != nil {
				t.Fatalf("LoadPLY failed: %v", err)
			}

			if len(mesh.Positions) != 4 {
				t.Errorf("Expected 4 vertices, got %d", len(mesh.Positions))
			}
			if mesh.Positions[2] != core.NewVec3(1, 1, 0) {
				t.Errorf("Expected vertex 2 at (1,1,0), got %v", mesh.Positions[2])
			}
			expectedIndices := []int{0, 1, 2, 0, 2, 3}
			if len(mesh.Indices) != len(expectedIndices) {
				t.Fatalf("Expected indices %v, got %v", expectedIndices, mesh.Indices)
			}
			for i := range expectedIndices {
				if mesh.Indices[i] != expectedIndices[i] {
					t.Fatalf("Expected indices %v, got %v", expectedIndices, mesh.Indices)
				}
			}
			for i, n := range mesh.Normals {
				if n != core.UnitZ {
					t.Errorf("Triangle %d: expected normal +Z, got %v", i, n)
				}
			}
		})
	}
}

func TestParsePLY_ASCII(t *testing.T) {
	data := `ply
format ascii 1.0
element vertex 5
property double x
property double y
property double z
element face 1
property list uchar uint vertex_indices
end_header
0 0 0
2 0 0
2 2 0
1 3 0
0 2 0
5 0 1 2 3 4
`
	mesh, err := ParsePLY(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParsePLY failed: %v", err)
	}

	// A pentagon becomes a fan of three triangles
	if mesh.TriangleCount() != 3 {
		t.Fatalf("Expected 3 triangles, got %d", mesh.TriangleCount())
	}
	if len(mesh.Normals) != 3 {
		t.Errorf("Expected one normal per triangle, got %d", len(mesh.Normals))
	}
	if mesh.Indices[6] != 0 || mesh.Indices[7] != 3 || mesh.Indices[8] != 4 {
		t.Errorf("Unexpected last fan triangle %v", mesh.Indices[6:9])
	}
}

func TestParsePLY_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing magic", "format ascii 1.0\nend_header\n"},
		{"truncated header", "ply\nformat ascii 1.0\nelement vertex 1\n"},
		{"unsupported format", "ply\nformat binary_middle_endian 1.0\nend_header\n"},
		{"truncated data", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n1 1\n"},
		{"index out of range", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n3 0 1 2\n"},
		{"unknown type", "ply\nformat binary_little_endian 1.0\nelement vertex 1\nproperty quad x\nend_header\n\x00"},
		{"negative list count", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n0 1 0\n-1 0 1 2\n"},
		{"fractional list count", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n0 1 0\n2.5 0 1 2\n"},
		{"huge list count", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n0 1 0\n99999999 0 1 2\n"},
		{"huge vertex count", "ply\nformat ascii 1.0\nelement vertex 999999999999999999\nproperty float x\nend_header\n0\n"},
		{"vertex count over limit", "ply\nformat ascii 1.0\nelement vertex 16777217\nproperty float x\nend_header\n0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePLY(strings.NewReader(tt.data)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestLoadPLY_MissingFile(t *testing.T) {
	if _, err := LoadPLY(filepath.Join(t.TempDir(), "missing.ply")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
