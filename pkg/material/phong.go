package material

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Phong combines an ambient term, a Lambertian lobe and a normalized Phong highlight
type Phong struct {
	Ambient   core.Vec3
	Diffuse   core.Vec3
	Specular  core.Vec3
	Shininess float64
}

// NewPhong creates a new Phong material
func NewPhong(ambient, diffuse, specular core.Vec3, shininess float64) *Phong {
	return &Phong{Ambient: ambient, Diffuse: diffuse, Specular: specular, Shininess: shininess}
}

// Shade returns diffuse/π plus the highlight lobe
func (p *Phong) Shade(ray core.Ray, point, normal, toLight core.Vec3) core.Vec3 {
	diffuse := p.Diffuse.Multiply(1.0 / math.Pi)
	highlight := p.Specular.Multiply(phongLobe(viewDirection(ray, point), normal, toLight, p.Shininess))
	return diffuse.Add(highlight)
}

// Emitted returns zero
func (p *Phong) Emitted() core.Vec3 {
	return core.Vec3{}
}

// Kind reports Generic, Phong surfaces bounce but do not store photons
func (p *Phong) Kind() core.SurfaceKind {
	return core.Generic
}

// Reflectance is the sum of both lobes, clamped to one
func (p *Phong) Reflectance(ray core.Ray, normal core.Vec3) core.Vec3 {
	return clampReflectance(p.Diffuse.Add(p.Specular))
}

// AmbientColor returns the ambient coefficient used by the direct renderer
func (p *Phong) AmbientColor() core.Vec3 {
	return p.Ambient
}
