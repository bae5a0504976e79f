package material

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Emissive represents a light-emitting material
type Emissive struct {
	Emission core.Vec3
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: emission}
}

// Shade returns zero, emissive surfaces do not reflect
func (e *Emissive) Shade(ray core.Ray, point, normal, toLight core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// Emitted returns the emitted radiance
func (e *Emissive) Emitted() core.Vec3 {
	return e.Emission
}

// Kind reports Emissive
func (e *Emissive) Kind() core.SurfaceKind {
	return core.Emissive
}

// Reflectance returns zero
func (e *Emissive) Reflectance(ray core.Ray, normal core.Vec3) core.Vec3 {
	return core.Vec3{}
}
