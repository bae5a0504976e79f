package integrator

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// ambientMaterial is implemented by materials with their own ambient coefficient
type ambientMaterial interface {
	AmbientColor() core.Vec3
}

// Direct is a Whitted-style shader: emitted light, every light sampled once and
// an ambient term. It does not recurse.
type Direct struct {
	Scene core.SceneView
}

// NewDirect creates a direct lighting integrator
func NewDirect(scene core.SceneView) *Direct {
	return &Direct{Scene: scene}
}

// Radiance computes the color for a single camera ray
func (d *Direct) Radiance(ray core.Ray, sampler core.Sampler) core.Vec3 {
	s, ok := intersect(d.Scene, ray)
	if !ok {
		return background(d.Scene, ray)
	}

	emitted := s.material.Emitted()
	if s.material.Kind() == core.Emissive {
		return emitted
	}

	color := emitted.Add(AllLightsDirect(d.Scene, s.point, s.facing, ray, s.material))

	ambient := d.Scene.Ambient()
	if ambient.IsZero() {
		return color
	}
	if am, ok := s.material.(ambientMaterial); ok {
		return color.Add(am.AmbientColor().MultiplyVec(ambient))
	}
	return color.Add(s.material.Reflectance(ray, s.facing).MultiplyVec(ambient))
}
