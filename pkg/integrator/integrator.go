package integrator

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// minPDF is the smallest density a sample may have before it is dropped
const minPDF = 1e-6

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Radiance estimates the light arriving along ray. The sampler belongs to
	// the calling goroutine.
	Radiance(ray core.Ray, sampler core.Sampler) core.Vec3
}

// surface is the shading record for a ray hit
type surface struct {
	point    core.Vec3
	normal   core.Vec3 // outward geometric normal
	facing   core.Vec3 // normal flipped toward the incoming ray
	material core.Material
}

// intersect finds the closest hit and builds its shading record. ok is false
// on a miss or for primitives without a material.
func intersect(scene core.SceneView, ray core.Ray) (surface, bool) {
	hit := scene.ClosestIntersection(ray)
	if !hit.Ok() {
		return surface{}, false
	}
	mat := hit.Primitive.Material()
	if mat == nil {
		return surface{}, false
	}

	point := ray.At(hit.T)
	normal := hit.Primitive.Normal(point, hit.Part)
	facing := normal
	if facing.Dot(ray.Direction) > 0 {
		facing = facing.Negate()
	}
	return surface{point: point, normal: normal, facing: facing, material: mat}, true
}

// background returns the environment radiance for an escaped ray
func background(scene core.SceneView, ray core.Ray) core.Vec3 {
	env := scene.Environment()
	if env == nil {
		return core.Vec3{}
	}
	return env.Radiance(ray.Direction.Normalize())
}

// specularBounce continues a ray off a specular surface. Materials that pick
// their own direction are asked for it, everything else is a mirror weighted
// by its reflectance.
func specularBounce(ray core.Ray, s surface, sampler core.Sampler) (core.Ray, core.Vec3) {
	if scatterer, ok := s.material.(core.DeltaScatterer); ok {
		direction, weight := scatterer.ScatterDelta(ray, s.normal, sampler)
		return core.NewRayOffset(s.point, direction), weight
	}
	direction := core.Reflect(ray.Direction.Normalize(), s.facing)
	return core.NewRayOffset(s.point, direction), s.material.Reflectance(ray, s.facing)
}

// diffuseBounce samples a cosine-weighted direction and returns the ray with
// the estimator weight BRDF·cosθ/pdf. ok is false for degenerate samples.
func diffuseBounce(ray core.Ray, s surface, sampler core.Sampler) (core.Ray, core.Vec3, bool) {
	direction := core.SampleCosineDirection(s.facing, sampler.Get2D())
	cosTheta := direction.Dot(s.facing)
	pdf := core.CosineHemispherePDF(cosTheta)
	if pdf < minPDF {
		return core.Ray{}, core.Vec3{}, false
	}
	brdf := s.material.Shade(ray, s.point, s.facing, direction)
	return core.NewRayOffset(s.point, direction), brdf.Multiply(cosTheta / pdf), true
}
