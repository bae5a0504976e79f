package material

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Diffuse represents a perfectly diffuse (Lambertian) material
type Diffuse struct {
	Albedo core.Vec3
}

// NewDiffuse creates a new diffuse material
func NewDiffuse(albedo core.Vec3) *Diffuse {
	return &Diffuse{Albedo: albedo}
}

// Shade returns the Lambertian BRDF, albedo/π, independent of direction
func (d *Diffuse) Shade(ray core.Ray, point, normal, toLight core.Vec3) core.Vec3 {
	return d.Albedo.Multiply(1.0 / math.Pi)
}

// Emitted returns zero
func (d *Diffuse) Emitted() core.Vec3 {
	return core.Vec3{}
}

// Kind reports Diffuse
func (d *Diffuse) Kind() core.SurfaceKind {
	return core.Diffuse
}

// Reflectance returns the albedo
func (d *Diffuse) Reflectance(ray core.Ray, normal core.Vec3) core.Vec3 {
	return d.Albedo
}
