package scene

import (
	"fmt"
	"sort"
	"strings"
)

const builtinGroup = "Built-in Scenes"

type builtinScene struct {
	info   SceneInfo
	create func() (*Scene, error)
}

func wrap(create func() *Scene) func() (*Scene, error) {
	return func() (*Scene, error) { return create(), nil }
}

var builtinScenes = []builtinScene{
	{
		info:   SceneInfo{ID: "sphere", Name: "Single Sphere", Description: "One red sphere lit from behind the camera"},
		create: wrap(NewSphereScene),
	},
	{
		info:   SceneInfo{ID: "w1", Name: "W1 Solid Colors", Description: "Solid colored spheres inside a box of planes"},
		create: wrap(NewW1Scene),
	},
	{
		info:   SceneInfo{ID: "w2", Name: "W2 Shadows", Description: "Six spheres casting hard shadows from one white light"},
		create: wrap(NewW2Scene),
	},
	{
		info:   SceneInfo{ID: "w3", Name: "W3 Microfacets", Description: "Cook-Torrance metals and plastics at three roughness levels"},
		create: wrap(NewW3Scene),
	},
	{
		info:   SceneInfo{ID: "w4", Name: "W4 Triangle Mesh", Description: "A bent quad built from a two triangle mesh"},
		create: wrap(NewW4Scene),
	},
	{
		info:   SceneInfo{ID: "w4-cube", Name: "W4 Spinning Cube", Description: "Back-face culled OBJ cube spinning over time"},
		create: NewW4CubeScene,
	},
	{
		info:   SceneInfo{ID: "reference", Name: "Reference Scene", Description: "Microfacet spheres with one triangle per cull mode"},
		create: wrap(NewReferenceScene),
	},
}

// BuiltinScenes returns the metadata of every built-in scene
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtinScenes))
	for i, b := range builtinScenes {
		info := b.info
		info.DisplayName = info.Name
		info.Group = builtinGroup
		info.Type = "builtin"
		infos[i] = info
	}
	return infos
}

// NewBuiltinScene creates the built-in scene with the given id
func NewBuiltinScene(id string) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b.create()
		}
	}
	return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(builtinIDs(), ", "))
}

func builtinIDs() []string {
	ids := make([]string, len(builtinScenes))
	for i, b := range builtinScenes {
		ids[i] = b.info.ID
	}
	sort.Strings(ids)
	return ids
}
