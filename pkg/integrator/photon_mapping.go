package integrator

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/photon"
)

const (
	// DefaultSearchRadius bounds density estimation queries
	DefaultSearchRadius = 0.75
	// DefaultNearest is the number of photons gathered per query
	DefaultNearest = 200
	// DefaultCausticWeight boosts the caustic map contribution
	DefaultCausticWeight = 2.0
)

// PhotonMapper replaces recursive bounces with photon map lookups. Direct
// light comes from next event estimation, so the global map should be built
// with IndirectOnly set.
type PhotonMapper struct {
	Scene         core.SceneView
	Global        *photon.Map
	Caustic       *photon.Map // optional
	Radius        float64
	K             int
	CausticWeight float64
	MaxDepth      int // cap on specular chains
}

// NewPhotonMapper creates a photon mapping integrator with the default query settings
func NewPhotonMapper(scene core.SceneView, global, caustic *photon.Map, maxDepth int) *PhotonMapper {
	return &PhotonMapper{
		Scene:         scene,
		Global:        global,
		Caustic:       caustic,
		Radius:        DefaultSearchRadius,
		K:             DefaultNearest,
		CausticWeight: DefaultCausticWeight,
		MaxDepth:      maxDepth,
	}
}

// Radiance computes emitted + direct + BRDF·E at the first non-specular hit
func (pm *PhotonMapper) Radiance(ray core.Ray, sampler core.Sampler) core.Vec3 {
	return pm.gather(ray, 0, sampler, true)
}

// gather shades a ray using the photon maps for everything but direct light.
// Specular surfaces are followed up to MaxDepth.
func (pm *PhotonMapper) gather(ray core.Ray, depth int, sampler core.Sampler, caustics bool) core.Vec3 {
	s, ok := intersect(pm.Scene, ray)
	if !ok {
		return background(pm.Scene, ray)
	}

	emitted := s.material.Emitted()
	if s.material.Kind() == core.Emissive {
		return emitted
	}
	local := emitted.Add(NextEventEstimation(pm.Scene, s.point, s.facing, ray, s.material, sampler))

	if s.material.Kind() == core.Specular {
		if depth >= pm.MaxDepth {
			return local
		}
		next, weight := specularBounce(ray, s, sampler)
		if weight.IsZero() {
			return local
		}
		return local.Add(weight.MultiplyVec(pm.gather(next, depth+1, sampler, caustics)))
	}

	irradiance := pm.irradiance(s, caustics)
	if irradiance.IsZero() {
		return local
	}
	brdf := s.material.Shade(ray, s.point, s.facing, s.facing)
	return local.Add(brdf.MultiplyVec(irradiance))
}

// irradiance returns the photon density at a surface, with the caustic map
// added under its weight when requested
func (pm *PhotonMapper) irradiance(s surface, caustics bool) core.Vec3 {
	total := core.Vec3{}
	if pm.Global != nil {
		total = pm.Global.EstimateRadiance(s.point, s.facing, pm.Radius, pm.K)
	}
	if caustics && pm.Caustic != nil {
		caustic := pm.Caustic.EstimateRadiance(s.point, s.facing, pm.Radius, pm.K)
		total = total.Add(caustic.Multiply(pm.CausticWeight))
	}
	return total
}
