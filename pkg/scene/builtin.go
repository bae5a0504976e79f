package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/lights"
	"github.com/df07/go-photon-raytracer/pkg/material"
)

// ErrUnknownScene is returned by Builtin for names that are not registered
var ErrUnknownScene = errors.New("scene: unknown built-in scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string
	Description string
	build       func() *Scene
}

var builtins = map[string]SceneInfo{
	"cornell": {
		Name:        "cornell",
		Description: "Open room with red and green walls, a mirror sphere and a glass sphere",
		build:       NewCornellScene,
	},
	"spheres": {
		Name:        "spheres",
		Description: "A single diffuse unit sphere lit by a point light directly above",
		build:       NewSphereScene,
	},
	"caustic": {
		Name:        "caustic",
		Description: "Glass and mirror spheres over a floor, for caustic photon maps",
		build:       NewCausticScene,
	},
}

// Builtin constructs the named built-in scene
func Builtin(name string) (*Scene, error) {
	info, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return info.build(), nil
}

// BuiltinScenes lists the built-in scenes sorted by name
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, info := range builtins {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// NewCornellScene builds a room out of triangles with a mirror and a glass sphere,
// lit by a square area light just under the ceiling.
func NewCornellScene() *Scene {
	s := NewScene("cornell", geometry.CameraConfig{
		Position:    core.NewVec3(0, 1, -5),
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		FocalLength: 1,
		FOV:         60,
		Width:       512,
		Height:      512,
	})

	red := material.NewDiffuse(core.NewVec3(0.8, 0.1, 0.1))
	green := material.NewDiffuse(core.NewVec3(0.1, 0.8, 0.1))
	white := material.NewDiffuse(core.NewVec3(0.9, 0.9, 0.9))
	mirror := material.NewSpecular(core.Splat(0.9), 100)
	glass := material.NewDielectric(1.5)

	const roomSize = 2.5
	const wallY = 2.5

	// Walls are pairs of triangles wound so their normals face into the room
	wall := func(a, b, c, d core.Vec3, m core.Material) {
		s.Add(
			geometry.NewTriangle(a, b, c, m),
			geometry.NewTriangle(a, c, d, m),
		)
	}
	wall( // floor
		core.NewVec3(-roomSize, 0, -roomSize),
		core.NewVec3(-roomSize, 0, roomSize),
		core.NewVec3(roomSize, 0, roomSize),
		core.NewVec3(roomSize, 0, -roomSize),
		white)
	wall( // ceiling
		core.NewVec3(-roomSize, wallY, -roomSize),
		core.NewVec3(roomSize, wallY, -roomSize),
		core.NewVec3(roomSize, wallY, roomSize),
		core.NewVec3(-roomSize, wallY, roomSize),
		white)
	wall( // left
		core.NewVec3(-roomSize, 0, roomSize),
		core.NewVec3(-roomSize, 0, -roomSize),
		core.NewVec3(-roomSize, wallY, -roomSize),
		core.NewVec3(-roomSize, wallY, roomSize),
		red)
	wall( // right
		core.NewVec3(roomSize, 0, roomSize),
		core.NewVec3(roomSize, wallY, roomSize),
		core.NewVec3(roomSize, wallY, -roomSize),
		core.NewVec3(roomSize, 0, -roomSize),
		green)
	wall( // back
		core.NewVec3(-roomSize, 0, roomSize),
		core.NewVec3(-roomSize, wallY, roomSize),
		core.NewVec3(roomSize, wallY, roomSize),
		core.NewVec3(roomSize, 0, roomSize),
		white)

	s.Add(
		geometry.NewSphere(core.NewVec3(-0.8, 0.5, 0.5), 0.5, mirror),
		geometry.NewSphere(core.NewVec3(0.8, 0.5, -0.5), 0.5, glass),
	)

	s.AddLight(lights.NewAreaLight(
		core.NewVec3(0, wallY-0.05, 0),
		core.NewVec3(0, -1, 0),
		0.8, 0.8,
		core.Splat(1), 15,
	))

	return s
}

// NewSphereScene is a unit diffuse sphere under a point light, with nothing else in view
func NewSphereScene() *Scene {
	s := NewScene("spheres", geometry.CameraConfig{
		Position:    core.NewVec3(0, 0, 4),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		FocalLength: 1,
		FOV:         45,
		Width:       256,
		Height:      256,
	})

	s.Add(geometry.NewSphere(core.Vec3{}, 1, material.NewDiffuse(core.Splat(0.8))))
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 5, 0), core.Splat(1), 200))
	return s
}

// NewCausticScene places glass and mirror spheres on a floor under an area light
func NewCausticScene() *Scene {
	s := NewScene("caustic", geometry.CameraConfig{
		Position:    core.NewVec3(0, 2.5, -6),
		LookAt:      core.NewVec3(0, 0.5, 0),
		Up:          core.NewVec3(0, 1, 0),
		FocalLength: 1,
		FOV:         50,
		Width:       480,
		Height:      320,
	})

	floor := material.NewDiffuse(core.NewVec3(0.75, 0.75, 0.7))
	s.Add(
		NewGroundQuad(core.Vec3{}, 20, floor),
		geometry.NewSphere(core.NewVec3(-0.7, 0.8, 0), 0.8, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(1.2, 0.5, 0.8), 0.5, material.NewSpecular(core.Splat(0.95), 200)),
		geometry.NewSphere(core.NewVec3(1.4, 0.35, -0.9), 0.35, material.NewCookTorrance(core.NewVec3(0.2, 0.3, 0.7), core.Splat(0.04), 0.3)),
	)
	s.AddLight(lights.NewAreaLight(core.NewVec3(0, 4, 0), core.NewVec3(0, -1, 0), 1, 1, core.Splat(1), 60))
	s.Env = lights.NewUniformEnvironment(core.Splat(1), 0.05)
	return s
}
