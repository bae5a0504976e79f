package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/lights"
)

// ErrNilPrimitive is returned by Preprocess when the scene holds a nil primitive
var ErrNilPrimitive = errors.New("scene: nil primitive")

// Scene contains all the elements needed for rendering. It is mutated while
// being assembled and treated as read-only once Preprocess has run.
type Scene struct {
	Name         string
	CameraConfig geometry.CameraConfig
	Camera       core.Camera
	Primitives   []core.Primitive // Objects in the scene
	Env          core.Environment // Radiance for escaped rays, nil means black
	AmbientLight core.Vec3        // Ambient term used by the direct renderer
	Shadows      bool
	BVH          *geometry.BVH // Acceleration structure for ray-object intersection

	lights          []core.Light
	importance      []float64
	totalImportance float64
}

// NewScene creates an empty scene with shadows enabled
func NewScene(name string, camera geometry.CameraConfig) *Scene {
	s := &Scene{Name: name, Shadows: true}
	s.SetCamera(camera)
	return s
}

// SetCamera replaces the camera
func (s *Scene) SetCamera(config geometry.CameraConfig) {
	s.CameraConfig = config
	s.Camera = geometry.NewPerspectiveCamera(config)
}

// SetResolution rebuilds the camera at a new image size, keeping its placement
func (s *Scene) SetResolution(width, height int) {
	config := s.CameraConfig
	config.Width = width
	config.Height = height
	s.SetCamera(config)
}

// Add appends primitives to the scene
func (s *Scene) Add(primitives ...core.Primitive) {
	s.Primitives = append(s.Primitives, primitives...)
}

// AddLight appends a light and refreshes the importance weights
func (s *Scene) AddLight(light core.Light) {
	s.lights = append(s.lights, light)
	s.importance, s.totalImportance = lights.Importance(s.lights)
}

// NewGroundQuad creates a large horizontal quad centered at center with its normal pointing up
func NewGroundQuad(center core.Vec3, size float64, m core.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) points along +Y
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, m)
}

// Preprocess builds the BVH. It must run before the scene is shared between goroutines.
func (s *Scene) Preprocess(opts ...geometry.BVHOption) error {
	for i, p := range s.Primitives {
		if p == nil {
			return fmt.Errorf("%w at index %d", ErrNilPrimitive, i)
		}
	}
	s.BVH = geometry.NewBVH(s.Primitives, opts...)
	return nil
}

// ClosestIntersection returns the nearest hit. Without a BVH it falls back to a linear scan.
func (s *Scene) ClosestIntersection(ray core.Ray) core.Hit {
	if s.BVH != nil {
		return s.BVH.Intersect(ray)
	}

	best := core.NoHit()
	for _, p := range s.Primitives {
		if hit := p.Intersect(ray); hit.Ok() && hit.T > core.Epsilon && hit.T < best.T {
			best = hit
		}
	}
	return best
}

// Lights returns the scene's lights
func (s *Scene) Lights() []core.Light {
	return s.lights
}

// LightImportance returns the per-light weights and their sum
func (s *Scene) LightImportance() ([]float64, float64) {
	return s.importance, s.totalImportance
}

func (s *Scene) ShadowsEnabled() bool {
	return s.Shadows
}

func (s *Scene) Environment() core.Environment {
	return s.Env
}

func (s *Scene) Ambient() core.Vec3 {
	return s.AmbientLight
}

// PrimitiveCount returns the number of leaf primitives, counting mesh triangles individually
func (s *Scene) PrimitiveCount() int {
	count := 0
	for _, p := range s.Primitives {
		if mesh, ok := p.(*geometry.TriangleMesh); ok {
			count += mesh.TriangleCount()
			continue
		}
		count++
	}
	return count
}

// Materials returns the distinct materials referenced by the scene's primitives
func (s *Scene) Materials() []core.Material {
	seen := make(map[core.Material]bool)
	var result []core.Material
	for _, p := range s.Primitives {
		m := p.Material()
		if m == nil || seen[m] {
			continue
		}
		seen[m] = true
		result = append(result, m)
	}
	return result
}

// HasSpecular reports whether any primitive uses a specular material, which is
// what makes a caustic photon map worth building.
func (s *Scene) HasSpecular() bool {
	for _, m := range s.Materials() {
		if m.Kind() == core.Specular {
			return true
		}
	}
	return false
}

var _ core.SceneView = (*Scene)(nil)
