package core

import "math"

// SurfaceKind tells the integrators and the photon tracer how a surface
// scatters light.
type SurfaceKind int

const (
	Generic SurfaceKind = iota
	Diffuse
	Specular
	Emissive
)

func (k SurfaceKind) String() string {
	switch k {
	case Diffuse:
		return "diffuse"
	case Specular:
		return "specular"
	case Emissive:
		return "emissive"
	default:
		return "generic"
	}
}

// Hit is the result of a ray query. Part identifies a sub-element of the
// primitive (a triangle index for meshes) and is -1 when unused.
type Hit struct {
	Primitive Primitive
	T         float64
	Part      int
}

// NoHit returns the miss value: no primitive, infinite distance
func NoHit() Hit {
	return Hit{Primitive: nil, T: math.Inf(1), Part: -1}
}

// Ok reports whether the query hit anything
func (h Hit) Ok() bool {
	return h.Primitive != nil
}

// Primitive is anything a ray can hit
type Primitive interface {
	// Intersect returns the nearest hit with t > Epsilon, or NoHit
	Intersect(ray Ray) Hit
	// Normal returns the unit surface normal at point. part is the value reported in Hit.Part.
	Normal(point Vec3, part int) Vec3
	BoundingBox() AABB
	Material() Material
}

// Material describes how a surface responds to light
type Material interface {
	// Shade returns the BRDF value for light arriving along toLight (unit, surface to light)
	// and leaving toward the ray origin.
	Shade(ray Ray, point, normal, toLight Vec3) Vec3
	Emitted() Vec3
	Kind() SurfaceKind
	// Reflectance is the energy carried by a bounce off this surface
	Reflectance(ray Ray, normal Vec3) Vec3
}

// Light is an emitter that can be sampled for direct lighting and photon emission
type Light interface {
	Position() Vec3
	// EmittedLight returns the radiance arriving from the light. toLight is the
	// unnormalized vector from the shading point to the light.
	EmittedLight(toLight Vec3) Vec3
	// Power is the total emitted power (color times brightness)
	Power() Vec3
	// EmitPhoton samples a photon ray leaving the light. ok is false when the sample is unusable.
	EmitPhoton(sampler Sampler) (ray Ray, ok bool)
}

// Environment supplies radiance for rays that leave the scene
type Environment interface {
	Radiance(direction Vec3) Vec3
}

// Camera generates primary rays for a fixed resolution
type Camera interface {
	GenerateRay(x, y int, sampler Sampler) Ray
	Resolution() (width, height int)
}

// SceneView is the read-only scene surface used while rendering. It is safe for concurrent use.
type SceneView interface {
	ClosestIntersection(ray Ray) Hit
	Lights() []Light
	// LightImportance returns one weight per light and their sum
	LightImportance() ([]float64, float64)
	ShadowsEnabled() bool
	Environment() Environment
	Ambient() Vec3
}

// DeltaScatterer is implemented by specular materials that pick their own
// outgoing direction (refraction, for example) instead of a plain mirror bounce.
// normal is the outward geometric normal.
type DeltaScatterer interface {
	ScatterDelta(ray Ray, normal Vec3, sampler Sampler) (direction Vec3, weight Vec3)
}
