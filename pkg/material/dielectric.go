package material

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// indices returns the incident and transmitted refractive indices and the
// cosine of the incident angle for a ray hitting a surface with outward normal.
func (d *Dielectric) indices(direction, normal core.Vec3) (n1, n2, cosTheta float64) {
	cosTheta = -direction.Dot(normal)
	if cosTheta >= 0 {
		return 1.0, d.RefractiveIndex, cosTheta
	}
	// Leaving the material
	return d.RefractiveIndex, 1.0, -cosTheta
}

// Shade returns zero, all light transport through glass is specular
func (d *Dielectric) Shade(ray core.Ray, point, normal, toLight core.Vec3) core.Vec3 {
	return core.Vec3{}
}

func (d *Dielectric) Emitted() core.Vec3 {
	return core.Vec3{}
}

// Kind reports Specular
func (d *Dielectric) Kind() core.SurfaceKind {
	return core.Specular
}

// Reflectance returns the Schlick approximation of the Fresnel reflectance
func (d *Dielectric) Reflectance(ray core.Ray, normal core.Vec3) core.Vec3 {
	n1, n2, cosTheta := d.indices(ray.Direction.Normalize(), normal)
	r0 := (n1 - n2) / (n1 + n2)
	return FresnelSchlick(cosTheta, core.Splat(r0*r0))
}

// ScatterDelta chooses between reflection and refraction with probability
// equal to the Fresnel reflectance, so the carried weight is always one.
func (d *Dielectric) ScatterDelta(ray core.Ray, normal core.Vec3, sampler core.Sampler) (core.Vec3, core.Vec3) {
	direction := ray.Direction.Normalize()
	n1, n2, cosTheta := d.indices(direction, normal)

	facing := normal
	if direction.Dot(normal) > 0 {
		facing = normal.Negate()
	}

	ratio := n1 / n2
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	r0 := (n1 - n2) / (n1 + n2)
	reflectance := FresnelSchlick(cosTheta, core.Splat(r0*r0)).X

	if ratio*sinTheta > 1.0 || sampler.Get1D() < reflectance {
		return core.Reflect(direction, facing), core.Splat(1)
	}

	// Snell's law split into perpendicular and parallel parts
	perpendicular := direction.Add(facing.Multiply(cosTheta)).Multiply(ratio)
	parallel := facing.Multiply(-math.Sqrt(math.Abs(1.0 - perpendicular.LengthSquared())))
	return perpendicular.Add(parallel).Normalize(), core.Splat(1)
}
