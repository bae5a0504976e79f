package material

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Flat shows a constant color regardless of lighting. It behaves like an
// emitter that is not a light: nothing bounces off it.
type Flat struct {
	Color core.Vec3
}

// NewFlat creates a new flat material
func NewFlat(color core.Vec3) *Flat {
	return &Flat{Color: color}
}

func (f *Flat) Shade(ray core.Ray, point, normal, toLight core.Vec3) core.Vec3 {
	return core.Vec3{}
}

func (f *Flat) Emitted() core.Vec3 {
	return f.Color
}

func (f *Flat) Kind() core.SurfaceKind {
	return core.Generic
}

func (f *Flat) Reflectance(ray core.Ray, normal core.Vec3) core.Vec3 {
	return core.Vec3{}
}
