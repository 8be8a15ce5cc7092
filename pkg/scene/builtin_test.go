package scene

import (
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestBuiltinScenes_AllConstruct(t *testing.T) {
	for _, info := range BuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := NewBuiltinScene(info.ID)
			if err != nil {
				t.Fatalf("NewBuiltinScene(%q) error: %v", info.ID, err)
			}
			if s.Name != info.Name {
				t.Errorf("Scene name %q does not match listed name %q", s.Name, info.Name)
			}
			if s.GetPrimitiveCount() == 0 {
				t.Error("Expected at least one primitive")
			}
			if len(s.Lights()) == 0 {
				t.Error("Expected at least one light")
			}
			if s.Camera == nil {
				t.Fatal("Expected a camera")
			}
			for _, mesh := range s.Meshes() {
				if _, ok := mesh.BoundingBox(); !ok {
					t.Error("Expected every mesh transformed and ready to hit")
				}
			}
			if info.Group != "Built-in Scenes" || info.Type != "builtin" || info.DisplayName == "" {
				t.Errorf("Unexpected metadata %+v", info)
			}
		})
	}
}

func TestBuiltinScenes_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, info := range BuiltinScenes() {
		if seen[info.ID] {
			t.Errorf("Duplicate scene id %q", info.ID)
		}
		seen[info.ID] = true
	}
}

func TestNewBuiltinScene_Unknown(t *testing.T) {
	_, err := NewBuiltinScene("does-not-exist")
	if err == nil {
		t.Fatal("Expected error for unknown scene")
	}
	if !strings.Contains(err.Error(), "sphere") || !strings.Contains(err.Error(), "w4-cube") {
		t.Errorf("Expected error to list available scenes, got %v", err)
	}
}

func TestSphereScene_CenterRayHitsSphere(t *testing.T) {
	s := NewSphereScene()
	hit := s.GetClosestHit(core.NewRay(s.Camera.Origin, s.Camera.Forward()))
	if !hit.DidHit {
		t.Fatal("Expected the view axis to hit the sphere")
	}
	if !vecNear(hit.Point, core.NewVec3(0, 0, 50), 1e-9) {
		t.Errorf("Expected hit at (0,0,50), got %v", hit.Point)
	}
}

func TestAnimatedScenes_UpdateMovesMeshes(t *testing.T) {
	constructors := map[string]func() (*Scene, error){
		"w4-cube":   NewW4CubeScene,
		"reference": wrap(NewReferenceScene),
	}

	for name, create := range constructors {
		t.Run(name, func(t *testing.T) {
			s, err := create()
			if err != nil {
				t.Fatalf("Failed to create scene: %v", err)
			}
			mesh := s.Meshes()[0]
			before, _, _ := mesh.Transformed()
			before = append([]core.Vec3(nil), before...)

			s.Update(0.5)

			after, _, ok := mesh.Transformed()
			if !ok {
				t.Fatal("Expected Update to leave transforms up to date")
			}
			moved := false
			for i := range before {
				if !vecNear(before[i], after[i], 1e-6) {
					moved = true
					break
				}
			}
			if !moved {
				t.Error("Expected Update to move the mesh")
			}
		})
	}
}
