package loaders

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/lights"
	"github.com/df07/go-photon-raytracer/pkg/log"
	"github.com/df07/go-photon-raytracer/pkg/material"
	"github.com/df07/go-photon-raytracer/pkg/renderer"
	"github.com/df07/go-photon-raytracer/pkg/scene"
)

var logger = log.New("loaders")

var (
	ErrInvalidScene    = errors.New("loaders: invalid scene file")
	ErrUnknownMaterial = errors.New("loaders: unknown material")
)

const SceneFileHelp = `
Scene files are TOML. Top level keys:
         name: scene name (optional)
      shadows: cast shadow rays for direct light (default true)
      ambient: ambient light color used by the direct mode (optional)

Tables:
     [camera]: position, look_at, up, focal_length, fov (horizontal, degrees),
               width, height
     [render]: any render option, for example mode = "hybrid" or spp = 64
[environment]: type = "uniform" (color, brightness) or "gradient" (top, bottom)

Arrays of tables:
   [[material]]: name, type and the parameters of that type:
                 diffuse (color), specular (color, shininess),
                 emissive (color), dielectric (ior), flat (color),
                 phong (ambient, color, specular, shininess),
                 cook_torrance (color, specular, roughness)
     [[sphere]]: center, radius, material
   [[triangle]]: vertices (three points), material
       [[quad]]: corner, u, v, material
       [[mesh]]: file (PLY, relative to the scene file), material, scale,
                 rotation (radians), center, offset
      [[light]]: type = "point" (position, color, brightness) or
                 "area" (position, normal, width, height, color, brightness)

Materials are referenced by name and may be shared by any number of shapes.
`

// SceneFile is the decoded form of a scene description
type SceneFile struct {
	Name        string            `toml:"name"`
	Shadows     *bool             `toml:"shadows"`
	Ambient     []float64         `toml:"ambient"`
	Camera      CameraSection     `toml:"camera"`
	Render      renderer.Options  `toml:"render"`
	Environment *EnvironmentEntry `toml:"environment"`
	Materials   []MaterialEntry   `toml:"material"`
	Spheres     []SphereEntry     `toml:"sphere"`
	Triangles   []TriangleEntry   `toml:"triangle"`
	Quads       []QuadEntry       `toml:"quad"`
	Meshes      []MeshEntry       `toml:"mesh"`
	Lights      []LightEntry      `toml:"light"`
}

type CameraSection struct {
	Position    []float64 `toml:"position"`
	LookAt      []float64 `toml:"look_at"`
	Up          []float64 `toml:"up"`
	FocalLength float64   `toml:"focal_length"`
	FOV         float64   `toml:"fov"`
	Width       int       `toml:"width"`
	Height      int       `toml:"height"`
}

type MaterialEntry struct {
	Name      string    `toml:"name"`
	Type      string    `toml:"type"`
	Color     []float64 `toml:"color"`
	Specular  []float64 `toml:"specular"`
	Ambient   []float64 `toml:"ambient"`
	Shininess float64   `toml:"shininess"`
	IOR       float64   `toml:"ior"`
	Roughness float64   `toml:"roughness"`
}

type SphereEntry struct {
	Center   []float64 `toml:"center"`
	Radius   float64   `toml:"radius"`
	Material string    `toml:"material"`
}

type TriangleEntry struct {
	Vertices [][]float64 `toml:"vertices"`
	Material string      `toml:"material"`
}

type QuadEntry struct {
	Corner   []float64 `toml:"corner"`
	U        []float64 `toml:"u"`
	V        []float64 `toml:"v"`
	Material string    `toml:"material"`
}

type MeshEntry struct {
	File     string    `toml:"file"`
	Material string    `toml:"material"`
	Scale    float64   `toml:"scale"`
	Rotation []float64 `toml:"rotation"`
	Center   []float64 `toml:"center"`
	Offset   []float64 `toml:"offset"`
}

type LightEntry struct {
	Type       string    `toml:"type"`
	Position   []float64 `toml:"position"`
	Normal     []float64 `toml:"normal"`
	Width      float64   `toml:"width"`
	Height     float64   `toml:"height"`
	Color      []float64 `toml:"color"`
	Brightness float64   `toml:"brightness"`
}

type EnvironmentEntry struct {
	Type       string    `toml:"type"`
	Color      []float64 `toml:"color"`
	Brightness float64   `toml:"brightness"`
	Top        []float64 `toml:"top"`
	Bottom     []float64 `toml:"bottom"`
}

// LoadScene reads a scene file. Mesh paths are resolved relative to the file.
func LoadScene(path string) (*scene.Scene, renderer.Options, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, renderer.Options{}, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sc, options, err := ReadScene(file, filepath.Dir(path))
	if err != nil {
		return nil, options, fmt.Errorf("%s: %w", path, err)
	}
	logger.Infof("loaded scene %q from %s: %d primitives, %d lights",
		sc.Name, path, len(sc.Primitives), len(sc.Lights()))
	return sc, options, nil
}

// ReadScene decodes a scene description. Render options not set in the file
// keep their defaults.
func ReadScene(r io.Reader, baseDir string) (*scene.Scene, renderer.Options, error) {
	desc := SceneFile{Render: renderer.DefaultOptions()}
	meta, err := toml.NewDecoder(r).Decode(&desc)
	if err != nil {
		return nil, desc.Render, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	for _, key := range meta.Undecoded() {
		logger.Warningf("ignoring unknown scene key %q", key.String())
	}

	sc, err := desc.build(baseDir)
	return sc, desc.Render, err
}

func (desc *SceneFile) build(baseDir string) (*scene.Scene, error) {
	camera, err := desc.Camera.config()
	if err != nil {
		return nil, err
	}
	name := desc.Name
	if name == "" {
		name = "untitled"
	}
	sc := scene.NewScene(name, camera)

	if desc.Shadows != nil {
		sc.Shadows = *desc.Shadows
	}
	if sc.AmbientLight, err = vec("ambient", desc.Ambient, core.Vec3{}); err != nil {
		return nil, err
	}

	materials := make(map[string]core.Material, len(desc.Materials))
	for i, entry := range desc.Materials {
		if entry.Name == "" {
			return nil, fmt.Errorf("%w: material %d has no name", ErrInvalidScene, i)
		}
		if _, ok := materials[entry.Name]; ok {
			return nil, fmt.Errorf("%w: material name %q is not unique", ErrInvalidScene, entry.Name)
		}
		m, err := entry.material()
		if err != nil {
			return nil, err
		}
		materials[entry.Name] = m
	}
	lookup := func(name string) (core.Material, error) {
		m, ok := materials[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
		}
		return m, nil
	}

	for i, entry := range desc.Spheres {
		m, err := lookup(entry.Material)
		if err != nil {
			return nil, err
		}
		center, err := vec(fmt.Sprintf("sphere %d center", i), entry.Center, core.Vec3{})
		if err != nil {
			return nil, err
		}
		if entry.Radius <= 0 {
			return nil, fmt.Errorf("%w: sphere %d radius must be positive", ErrInvalidScene, i)
		}
		sc.Add(geometry.NewSphere(center, entry.Radius, m))
	}

	for i, entry := range desc.Triangles {
		m, err := lookup(entry.Material)
		if err != nil {
			return nil, err
		}
		if len(entry.Vertices) != 3 {
			return nil, fmt.Errorf("%w: triangle %d needs 3 vertices", ErrInvalidScene, i)
		}
		var corners [3]core.Vec3
		for j := range corners {
			if corners[j], err = vec(fmt.Sprintf("triangle %d vertex %d", i, j), entry.Vertices[j], core.Vec3{}); err != nil {
				return nil, err
			}
		}
		sc.Add(geometry.NewTriangle(corners[0], corners[1], corners[2], m))
	}

	for i, entry := range desc.Quads {
		m, err := lookup(entry.Material)
		if err != nil {
			return nil, err
		}
		label := fmt.Sprintf("quad %d", i)
		corner, err := vec(label+" corner", entry.Corner, core.Vec3{})
		if err != nil {
			return nil, err
		}
		u, err := vec(label+" u", entry.U, core.Vec3{})
		if err != nil {
			return nil, err
		}
		v, err := vec(label+" v", entry.V, core.Vec3{})
		if err != nil {
			return nil, err
		}
		sc.Add(geometry.NewQuad(corner, u, v, m))
	}

	for i, entry := range desc.Meshes {
		mesh, err := entry.load(baseDir, lookup)
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		sc.Add(mesh)
	}

	for i, entry := range desc.Lights {
		light, err := entry.light()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		sc.AddLight(light)
	}

	if desc.Environment != nil {
		if sc.Env, err = desc.Environment.environment(); err != nil {
			return nil, err
		}
	}
	return sc, nil
}

func (c CameraSection) config() (geometry.CameraConfig, error) {
	position, err := vec("camera position", c.Position, core.Vec3{})
	if err != nil {
		return geometry.CameraConfig{}, err
	}
	lookAt, err := vec("camera look_at", c.LookAt, core.NewVec3(0, 0, -1))
	if err != nil {
		return geometry.CameraConfig{}, err
	}
	up, err := vec("camera up", c.Up, core.NewVec3(0, 1, 0))
	if err != nil {
		return geometry.CameraConfig{}, err
	}

	config := geometry.CameraConfig{
		Position:    position,
		LookAt:      lookAt,
		Up:          up,
		FocalLength: c.FocalLength,
		FOV:         c.FOV,
		Width:       c.Width,
		Height:      c.Height,
	}
	if config.FocalLength <= 0 {
		config.FocalLength = 1
	}
	if config.FOV <= 0 {
		config.FOV = 60
	}
	if config.Width <= 0 {
		config.Width = 320
	}
	if config.Height <= 0 {
		config.Height = 240
	}
	if config.FOV >= 180 {
		return config, fmt.Errorf("%w: camera fov must be below 180 degrees", ErrInvalidScene)
	}
	return config, nil
}

func (e MaterialEntry) material() (core.Material, error) {
	label := fmt.Sprintf("material %q", e.Name)
	color, err := vec(label+" color", e.Color, core.Splat(0.5))
	if err != nil {
		return nil, err
	}
	specular, err := vec(label+" specular", e.Specular, core.Vec3{})
	if err != nil {
		return nil, err
	}
	ambient, err := vec(label+" ambient", e.Ambient, core.Vec3{})
	if err != nil {
		return nil, err
	}

	switch e.Type {
	case "diffuse", "":
		return material.NewDiffuse(color), nil
	case "specular":
		return material.NewSpecular(color, orDefault(e.Shininess, 100)), nil
	case "emissive":
		return material.NewEmissive(color), nil
	case "dielectric":
		return material.NewDielectric(orDefault(e.IOR, 1.5)), nil
	case "flat":
		return material.NewFlat(color), nil
	case "phong":
		return material.NewPhong(ambient, color, specular, orDefault(e.Shininess, 32)), nil
	case "cook_torrance":
		return material.NewCookTorrance(color, specular, orDefault(e.Roughness, 0.5)), nil
	}
	return nil, fmt.Errorf("%w: %s has unknown type %q", ErrInvalidScene, label, e.Type)
}

func (e MeshEntry) load(baseDir string, lookup func(string) (core.Material, error)) (*geometry.TriangleMesh, error) {
	m, err := lookup(e.Material)
	if err != nil {
		return nil, err
	}
	if e.File == "" {
		return nil, fmt.Errorf("%w: mesh needs a file", ErrInvalidScene)
	}
	path := e.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	data, err := LoadPLY(path)
	if err != nil {
		return nil, err
	}

	options := &geometry.TriangleMeshOptions{Scale: e.Scale}
	if options.Offset, err = vec("mesh offset", e.Offset, core.Vec3{}); err != nil {
		return nil, err
	}
	if e.Rotation != nil {
		rotation, err := vec("mesh rotation", e.Rotation, core.Vec3{})
		if err != nil {
			return nil, err
		}
		options.Rotation = &rotation
	}
	if e.Center != nil {
		center, err := vec("mesh center", e.Center, core.Vec3{})
		if err != nil {
			return nil, err
		}
		options.Center = &center
	}
	return geometry.NewTriangleMesh(data.Vertices, data.Faces, m, options)
}

func (e LightEntry) light() (core.Light, error) {
	position, err := vec("light position", e.Position, core.Vec3{})
	if err != nil {
		return nil, err
	}
	color, err := vec("light color", e.Color, core.Splat(1))
	if err != nil {
		return nil, err
	}
	if e.Brightness < 0 {
		return nil, fmt.Errorf("%w: light brightness must not be negative", ErrInvalidScene)
	}

	switch e.Type {
	case "point", "":
		return lights.NewPointLight(position, color, e.Brightness), nil
	case "area":
		normal, err := vec("light normal", e.Normal, core.NewVec3(0, -1, 0))
		if err != nil {
			return nil, err
		}
		if normal.IsZero() || e.Width <= 0 || e.Height <= 0 {
			return nil, fmt.Errorf("%w: area light needs a normal and a positive size", ErrInvalidScene)
		}
		return lights.NewAreaLight(position, normal, e.Width, e.Height, color, e.Brightness), nil
	}
	return nil, fmt.Errorf("%w: unknown light type %q", ErrInvalidScene, e.Type)
}

func (e EnvironmentEntry) environment() (core.Environment, error) {
	switch e.Type {
	case "uniform", "":
		color, err := vec("environment color", e.Color, core.Splat(1))
		if err != nil {
			return nil, err
		}
		return lights.NewUniformEnvironment(color, e.Brightness), nil
	case "gradient":
		top, err := vec("environment top", e.Top, core.NewVec3(0.5, 0.7, 1.0))
		if err != nil {
			return nil, err
		}
		bottom, err := vec("environment bottom", e.Bottom, core.Splat(1))
		if err != nil {
			return nil, err
		}
		return lights.NewGradientEnvironment(top, bottom), nil
	}
	return nil, fmt.Errorf("%w: unknown environment type %q", ErrInvalidScene, e.Type)
}

// vec converts a three element array, returning def when the key was absent
func vec(field string, values []float64, def core.Vec3) (core.Vec3, error) {
	if values == nil {
		return def, nil
	}
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("%w: %s needs 3 components, got %d", ErrInvalidScene, field, len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
