package integrator

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

const (
	// DefaultRRDepth is the depth from which Russian roulette is applied
	DefaultRRDepth = 3
	// DefaultRRProbability is the survival probability under Russian roulette
	DefaultRRProbability = 0.8
)

// PathTracer implements unidirectional path tracing with next event estimation
type PathTracer struct {
	Scene         core.SceneView
	MaxDepth      int
	RRDepth       int
	RRProbability float64
}

// NewPathTracer creates a path tracer with the default Russian roulette settings
func NewPathTracer(scene core.SceneView, maxDepth int) *PathTracer {
	return &PathTracer{
		Scene:         scene,
		MaxDepth:      maxDepth,
		RRDepth:       DefaultRRDepth,
		RRProbability: DefaultRRProbability,
	}
}

// Radiance computes the color for a single camera ray
func (pt *PathTracer) Radiance(ray core.Ray, sampler core.Sampler) core.Vec3 {
	return pt.trace(ray, 0, sampler)
}

func (pt *PathTracer) trace(ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	s, ok := intersect(pt.Scene, ray)
	if !ok {
		return background(pt.Scene, ray)
	}

	emitted := s.material.Emitted()
	if s.material.Kind() == core.Emissive {
		return emitted
	}

	direct := NextEventEstimation(pt.Scene, s.point, s.facing, ray, s.material, sampler)
	local := emitted.Add(direct)

	// Hard cap, independent of Russian roulette
	if depth >= pt.MaxDepth {
		return local
	}

	compensation := 1.0
	if depth >= pt.RRDepth {
		if pt.RRProbability <= 0 || sampler.Get1D() > pt.RRProbability {
			return local
		}
		compensation = 1.0 / pt.RRProbability
	}

	var next core.Ray
	var weight core.Vec3
	if s.material.Kind() == core.Specular {
		next, weight = specularBounce(ray, s, sampler)
	} else {
		var ok bool
		next, weight, ok = diffuseBounce(ray, s, sampler)
		if !ok {
			return local
		}
	}
	if weight.IsZero() {
		return local
	}

	incoming := pt.trace(next, depth+1, sampler)
	return local.Add(weight.MultiplyVec(incoming).Multiply(compensation))
}
