package material

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Specular is a pure mirror-like material. Light from point sources shows up
// as a Phong highlight; everything else arrives through a mirror bounce.
type Specular struct {
	Color     core.Vec3
	Shininess float64
}

// NewSpecular creates a new specular material
func NewSpecular(color core.Vec3, shininess float64) *Specular {
	return &Specular{Color: color, Shininess: shininess}
}

// Shade returns the normalized Phong highlight
func (s *Specular) Shade(ray core.Ray, point, normal, toLight core.Vec3) core.Vec3 {
	return s.Color.Multiply(phongLobe(viewDirection(ray, point), normal, toLight, s.Shininess))
}

// Emitted returns zero
func (s *Specular) Emitted() core.Vec3 {
	return core.Vec3{}
}

// Kind reports Specular
func (s *Specular) Kind() core.SurfaceKind {
	return core.Specular
}

// Reflectance returns the mirror color
func (s *Specular) Reflectance(ray core.Ray, normal core.Vec3) core.Vec3 {
	return clampReflectance(s.Color)
}
