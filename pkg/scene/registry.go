package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-path-tracer/pkg/renderer"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Name passed to Create
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

type sceneEntry struct {
	info    SceneInfo
	builder func(...renderer.CameraConfig) *Scene
}

var builtInScenes = map[string]sceneEntry{
	"default": {
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default Scene",
			Description: "Red and white diffuse spheres on a green ground sphere",
		},
		builder: NewDefaultScene,
	},
	"metal": {
		info: SceneInfo{
			ID:          "metal",
			DisplayName: "Metal Spheres",
			Description: "Diffuse sphere between a mirror-like and a brushed metal sphere",
		},
		builder: NewMetalScene,
	},
	"spheregrid": {
		info: SceneInfo{
			ID:          "spheregrid",
			DisplayName: "Sphere Grid",
			Description: "Grid of colored diffuse and metal spheres",
		},
		builder: NewSphereGridScene,
	},
}

// DefaultSceneName is the scene used when none is requested
const DefaultSceneName = "default"

// Create builds the named scene, applying the first camera override if given
func Create(name string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	if name == "" {
		name = DefaultSceneName
	}
	entry, ok := builtInScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", name)
	}
	return entry.builder(cameraOverrides...), nil
}

// ListScenes returns every built-in scene sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtInScenes))
	for _, entry := range builtInScenes {
		scenes = append(scenes, entry.info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})

	return scenes
}
