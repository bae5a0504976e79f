package integrator

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Hybrid path traces the camera hit with one cosine bounce and reads indirect
// light at the bounce hit from the global photon map. Caustics come from the
// caustic map at the camera hit only.
type Hybrid struct {
	*PhotonMapper
}

// NewHybrid wraps a photon mapper's maps and query settings
func NewHybrid(pm *PhotonMapper) *Hybrid {
	return &Hybrid{PhotonMapper: pm}
}

// Radiance computes the color for a single camera ray
func (h *Hybrid) Radiance(ray core.Ray, sampler core.Sampler) core.Vec3 {
	return h.primary(ray, 0, sampler)
}

func (h *Hybrid) primary(ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	s, ok := intersect(h.Scene, ray)
	if !ok {
		return background(h.Scene, ray)
	}

	emitted := s.material.Emitted()
	if s.material.Kind() == core.Emissive {
		return emitted
	}
	local := emitted.Add(NextEventEstimation(h.Scene, s.point, s.facing, ray, s.material, sampler))

	// Mirrors and glass seen from the camera still count as the camera hit
	if s.material.Kind() == core.Specular {
		if depth >= h.MaxDepth {
			return local
		}
		next, weight := specularBounce(ray, s, sampler)
		if weight.IsZero() {
			return local
		}
		return local.Add(weight.MultiplyVec(h.primary(next, depth+1, sampler)))
	}

	if h.Caustic != nil {
		caustic := h.Caustic.EstimateRadiance(s.point, s.facing, h.Radius, h.K)
		if !caustic.IsZero() {
			brdf := s.material.Shade(ray, s.point, s.facing, s.facing)
			local = local.Add(brdf.MultiplyVec(caustic).Multiply(h.CausticWeight))
		}
	}

	next, weight, ok := diffuseBounce(ray, s, sampler)
	if !ok || weight.IsZero() {
		return local
	}
	incoming := h.gather(next, depth+1, sampler, false)
	return local.Add(weight.MultiplyVec(incoming))
}
