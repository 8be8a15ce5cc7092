package loaders

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

func TestParseOBJ(t *testing.T) {
	data := `# a unit square
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
vt 0 0
f 1 2 3
f 1/1/1 3/1/1 4/1/1 # trailing comment
`
	mesh, err := ParseOBJ(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if len(mesh.Positions) != 4 {
		t.Errorf("Expected 4 positions, got %d", len(mesh.Positions))
	}
	expected := []int{0, 1, 2, 0, 2, 3}
	for i := range expected {
		if mesh.Indices[i] != expected[i] {
			t.Fatalf("Expected 0-based indices %v, got %v", expected, mesh.Indices)
		}
	}
	for i, n := range mesh.Normals {
		if n.Subtract(core.UnitZ).Length() > 1e-12 {
			t.Errorf("Triangle %d: expected normal +Z, got %v", i, n)
		}
	}
}

func TestParseOBJ_PolygonsAndNegativeIndices(t *testing.T) {
	data := `v 0 0 0
v 0 0 1
v 1 0 1
v 1 0 0
f -4 -3 -2 -1
`
	mesh, err := ParseOBJ(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if mesh.TriangleCount() != 2 {
		t.Fatalf("Expected quad to become 2 triangles, got %d", mesh.TriangleCount())
	}
	for i, n := range mesh.Normals {
		if math.Abs(n.Y-1) > 1e-12 {
			t.Errorf("Triangle %d: expected normal +Y, got %v", i, n)
		}
	}
}

func TestParseOBJ_DegenerateFaceHasZeroNormal(t *testing.T) {
	data := "v 0 0 0\nv 1 1 1\nv 2 2 2\nf 1 2 3\n"
	mesh, err := ParseOBJ(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if mesh.Normals[0] != (core.Vec3{}) {
		t.Errorf("Expected zero normal for collinear face, got %v", mesh.Normals[0])
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad coordinate", "v 0 zero 0\n"},
		{"short vertex", "v 0 0\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseOBJ(strings.NewReader(tt.data)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestLoadMesh_ByExtension(t *testing.T) {
	dir := t.TempDir()

	objPath := filepath.Join(dir, "triangle.OBJ")
	if err := os.WriteFile(objPath, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	mesh, err := LoadMesh(objPath)
	if err != nil {
		t.Fatalf("LoadMesh(obj) failed: %v", err)
	}
	if mesh.TriangleCount() != 1 {
		t.Errorf("Expected 1 triangle, got %d", mesh.TriangleCount())
	}

	plyPath := filepath.Join(dir, "square.ply")
	createTestPLY(t, plyPath, false, false)
	if mesh, err = LoadMesh(plyPath); err != nil {
		t.Fatalf("LoadMesh(ply) failed: %v", err)
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.TriangleCount())
	}

	if _, err := LoadMesh(filepath.Join(dir, "scene.stl")); err == nil {
		t.Error("Expected an error for an unsupported extension")
	}
	if _, err := LoadMesh(filepath.Join(dir, "missing.obj")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestFaceNormals_MatchGeometry(t *testing.T) {
	data := `v 0.3 -1.2 4
v 2.5 0.7 3.1
v -1.1 2.2 5.9
v 0.4 0.4 -2
v 1 1 1
v 2 2 2
v 3 3 3
f 1 2 3
f 1 3 4
f 2 4 3
f 1 4 2
f 5 6 7
`
	mesh, err := ParseOBJ(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	tm := geometry.NewTriangleMesh(mesh.Positions, nil, mesh.Indices, geometry.NoCulling, geometry.DefaultMaterialID)
	if len(tm.Normals()) != len(mesh.Normals) {
		t.Fatalf("Expected %d normals, got %d", len(mesh.Normals), len(tm.Normals()))
	}

	for i, n := range mesh.Normals {
		p := mesh.Positions
		want := geometry.FaceNormal(p[mesh.Indices[i*3]], p[mesh.Indices[i*3+1]], p[mesh.Indices[i*3+2]])
		if math.Abs(n.X-want.X) > 1e-12 || math.Abs(n.Y-want.Y) > 1e-12 || math.Abs(n.Z-want.Z) > 1e-12 {
			t.Errorf("Triangle %d: loader normal %v, geometry normal %v", i, n, want)
		}
		if got := tm.Normals()[i]; math.Abs(n.X-got.X) > 1e-12 || math.Abs(n.Y-got.Y) > 1e-12 || math.Abs(n.Z-got.Z) > 1e-12 {
			t.Errorf("Triangle %d: loader normal %v, mesh normal %v", i, n, got)
		}
	}
}
