package loaders

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/lights"
	"github.com/df07/go-photon-raytracer/pkg/log"
	"github.com/df07/go-photon-raytracer/pkg/material"
	"github.com/df07/go-photon-raytracer/pkg/renderer"
)

func init() {
	log.Discard()
}

const testScene = `
name = "room"
shadows = false
ambient = [0.1, 0.1, 0.1]

[camera]
position = [0.0, 1.0, -5.0]
look_at = [0.0, 1.0, 0.0]
fov = 50.0
width = 64
height = 48

[render]
mode = "hybrid"
spp = 8
photons = 5000

[environment]
type = "gradient"
top = [0.2, 0.3, 0.9]
bottom = [1.0, 1.0, 1.0]

[[material]]
name = "white"
type = "diffuse"
color = [0.8, 0.8, 0.8]

[[material]]
name = "glass"
type = "dielectric"
ior = 1.33

[[material]]
name = "plastic"
type = "phong"
ambient = [0.1, 0.0, 0.0]
color = [0.6, 0.1, 0.1]
specular = [0.3, 0.3, 0.3]
shininess = 40.0

[[sphere]]
center = [0.0, 1.0, 0.0]
radius = 1.0
material = "glass"

[[sphere]]
center = [2.0, 0.5, 0.0]
radius = 0.5
material = "plastic"

[[triangle]]
vertices = [[-1.0, 0.0, 0.0], [1.0, 0.0, 0.0], [0.0, 0.0, 1.0]]
material = "white"

[[quad]]
corner = [-5.0, 0.0, -5.0]
u = [0.0, 0.0, 10.0]
v = [10.0, 0.0, 0.0]
material = "white"

[[light]]
type = "point"
position = [0.0, 4.0, 0.0]
color = [1.0, 1.0, 1.0]
brightness = 100.0

[[light]]
type = "area"
position = [0.0, 3.0, 0.0]
normal = [0.0, -1.0, 0.0]
width = 1.0
height = 0.5
brightness = 50.0
`

func TestReadScene(t *testing.T) {
	sc, options, err := ReadScene(strings.NewReader(testScene), ".")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if sc.Name != "room" || sc.Shadows {
		t.Errorf("Expected scene 'room' without shadows, got %q shadows=%v", sc.Name, sc.Shadows)
	}
	if sc.AmbientLight != core.Splat(0.1) {
		t.Errorf("Expected ambient 0.1, got %v", sc.AmbientLight)
	}
	if sc.CameraConfig.Width != 64 || sc.CameraConfig.Height != 48 || sc.CameraConfig.FOV != 50 {
		t.Errorf("Unexpected camera config %+v", sc.CameraConfig)
	}
	if len(sc.Primitives) != 4 {
		t.Errorf("Expected 4 primitives, got %d", len(sc.Primitives))
	}
	if len(sc.Lights()) != 2 {
		t.Fatalf("Expected 2 lights, got %d", len(sc.Lights()))
	}
	if lights.TypeOf(sc.Lights()[1]) != lights.LightTypeArea {
		t.Error("Expected second light to be an area light")
	}
	if _, ok := sc.Env.(*lights.GradientEnvironment); !ok {
		t.Errorf("Expected gradient environment, got %T", sc.Env)
	}

	if _, ok := sc.Primitives[0].Material().(*material.Dielectric); !ok {
		t.Errorf("Expected glass sphere, got %T", sc.Primitives[0].Material())
	}
	// The triangle and the quad share one material instance
	if sc.Primitives[2].Material() != sc.Primitives[3].Material() {
		t.Error("Named materials should be shared")
	}

	if options.Mode != renderer.ModeHybrid || options.SamplesPerPixel != 8 || options.PhotonBudget != 5000 {
		t.Errorf("Render section not applied: %+v", options)
	}
	if options.MaxDepth != renderer.DefaultOptions().MaxDepth {
		t.Errorf("Unset options should keep defaults, got max depth %d", options.MaxDepth)
	}
}

func TestReadScene_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"bad toml", "name = ", ErrInvalidScene},
		{"unknown material", "[[sphere]]\ncenter = [0.0, 0.0, 0.0]\nradius = 1.0\nmaterial = \"gold\"\n", ErrUnknownMaterial},
		{"unnamed material", "[[material]]\ntype = \"diffuse\"\n", ErrInvalidScene},
		{"duplicate material", "[[material]]\nname = \"a\"\n[[material]]\nname = \"a\"\n", ErrInvalidScene},
		{"unknown material type", "[[material]]\nname = \"a\"\ntype = \"velvet\"\n", ErrInvalidScene},
		{"short vector", "[[material]]\nname = \"a\"\ncolor = [1.0, 1.0]\n", ErrInvalidScene},
		{"bad radius", "[[material]]\nname = \"a\"\n[[sphere]]\nradius = -1.0\nmaterial = \"a\"\n", ErrInvalidScene},
		{"triangle vertices", "[[material]]\nname = \"a\"\n[[triangle]]\nvertices = [[0.0, 0.0, 0.0]]\nmaterial = \"a\"\n", ErrInvalidScene},
		{"unknown light", "[[light]]\ntype = \"spot\"\n", ErrInvalidScene},
		{"flat area light", "[[light]]\ntype = \"area\"\nwidth = 0.0\nheight = 1.0\n", ErrInvalidScene},
		{"unknown environment", "[environment]\ntype = \"hdri\"\n", ErrInvalidScene},
		{"missing mesh file", "[[material]]\nname = \"a\"\n[[mesh]]\nmaterial = \"a\"\n", ErrInvalidScene},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadScene(strings.NewReader(tt.src), ".")
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadScene_WithMesh(t *testing.T) {
	dir := t.TempDir()
	ply := createTestPLY(t, binary.LittleEndian, "binary_little_endian")
	if err := os.WriteFile(filepath.Join(dir, "square.ply"), ply, 0o644); err != nil {
		t.Fatalf("Failed to write mesh: %v", err)
	}
	src := `
[[material]]
name = "white"

[[mesh]]
file = "square.ply"
material = "white"
scale = 2.0
offset = [0.0, 0.0, -3.0]
`
	path := filepath.Join(dir, "scene.toml")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	sc, _, err := LoadScene(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(sc.Primitives) != 1 {
		t.Fatalf("Expected one mesh, got %d primitives", len(sc.Primitives))
	}
	mesh, ok := sc.Primitives[0].(*geometry.TriangleMesh)
	if !ok {
		t.Fatalf("Expected a triangle mesh, got %T", sc.Primitives[0])
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.TriangleCount())
	}
	box := mesh.BoundingBox()
	if box.Max.X < 1.99 || box.Min.Z > -2.99 {
		t.Errorf("Expected scaled and offset mesh, got box %v", box)
	}

	if _, _, err := LoadScene(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Expected error for missing scene file")
	}
}
