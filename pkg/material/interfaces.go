package material

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// viewDirection returns the unit vector from point back toward the ray origin
func viewDirection(ray core.Ray, point core.Vec3) core.Vec3 {
	return ray.Origin.Subtract(point).Normalize()
}

// FresnelSchlick approximates Fresnel reflectance for a cosine and base reflectance F0
func FresnelSchlick(cosTheta float64, f0 core.Vec3) core.Vec3 {
	weight := math.Pow(1.0-math.Max(0, math.Min(1, cosTheta)), 5.0)
	return f0.Add(core.Splat(1).Subtract(f0).Multiply(weight))
}

// phongLobe is the energy-normalized Phong highlight for light arriving along toLight
func phongLobe(view, normal, toLight core.Vec3, shininess float64) float64 {
	reflected := normal.Multiply(2 * toLight.Dot(normal)).Subtract(toLight)
	cosAlpha := math.Max(0, view.Dot(reflected))
	if cosAlpha == 0 {
		return 0
	}
	return (shininess + 2) / (2 * math.Pi) * math.Pow(cosAlpha, shininess)
}

// clampReflectance keeps a bounce weight in [0,1] per channel
func clampReflectance(v core.Vec3) core.Vec3 {
	return v.Clamp(0, 1)
}
