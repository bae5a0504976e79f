package photon

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/lights"
	"github.com/df07/go-photon-raytracer/pkg/log"
)

const (
	// DefaultMaxBounces caps how many surfaces a photon visits
	DefaultMaxBounces = 5
	// maxSurvival keeps Russian roulette from running forever on white surfaces
	maxSurvival = 0.95
)

// ErrInvalidBudget is returned by Build for negative photon budgets
var ErrInvalidBudget = errors.New("photon: invalid photon budget")

var logger = log.New("photon")

// Options configures how a map is traced
type Options struct {
	// Caustic maps only keep photons that reached a diffuse surface through
	// at least one specular bounce, and stop there.
	Caustic bool
	// IndirectOnly skips the first diffuse deposit of each photon, for
	// renderers that compute direct light separately.
	IndirectOnly bool
	// SkipCausticPaths drops deposits of photons whose only bounces so far
	// were specular. Set it on a global map that is summed with a caustic map.
	SkipCausticPaths bool
	MaxBounces       int
	Kernel           Kernel
}

// Stats describes the result of the last Build
type Stats struct {
	Type      Type
	Emitted   int
	Stored    int
	BuildTime time.Duration
}

// Map is a photon map: traced photons plus the k-d tree over them
type Map struct {
	options Options
	tree    *KDTree
	stats   Stats
}

// NewMap creates an empty map. Queries on it return zero until Build runs.
func NewMap(options Options) *Map {
	if options.MaxBounces <= 0 {
		options.MaxBounces = DefaultMaxBounces
	}
	m := &Map{options: options, tree: BuildKDTree(nil)}
	m.stats.Type = m.photonType()
	return m
}

func (m *Map) photonType() Type {
	if m.options.Caustic {
		return Caustic
	}
	return Global
}

// Build emits budget photons split across the scene's lights by importance,
// traces them and builds the k-d tree. It is single-threaded and must finish
// before the map is queried concurrently.
func (m *Map) Build(scene core.SceneView, budget int, sampler core.Sampler) error {
	if budget < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBudget, budget)
	}
	start := time.Now()

	sceneLights := scene.Lights()
	weights, total := scene.LightImportance()
	if len(sceneLights) == 0 || total <= 0 {
		logger.Warningf("scene has no lights, %s photon map is empty", m.photonType())
		m.tree = BuildKDTree(nil)
		m.stats = Stats{Type: m.photonType(), BuildTime: time.Since(start)}
		return nil
	}

	shares := lights.PhotonShares(weights, total, budget)
	var stored []Photon
	emitted := 0
	for i, light := range sceneLights {
		count := shares[i]
		if count == 0 {
			continue
		}
		power := light.Power().Multiply(1.0 / float64(count))
		for n := 0; n < count; n++ {
			emitted++
			ray, ok := light.EmitPhoton(sampler)
			if !ok {
				continue
			}
			stored = m.trace(scene, ray, power, sampler, stored)
		}
	}

	m.tree = BuildKDTree(stored)
	m.stats = Stats{
		Type:      m.photonType(),
		Emitted:   emitted,
		Stored:    len(stored),
		BuildTime: time.Since(start),
	}
	logger.Infof("%s photon map: %d emitted, %d stored in %v", m.stats.Type, emitted, len(stored), m.stats.BuildTime)
	return nil
}

// survive plays Russian roulette with probability min(0.95, max reflectance)
// and returns the power scale for a surviving photon.
func survive(reflectance core.Vec3, sampler core.Sampler) (core.Vec3, bool) {
	p := math.Min(maxSurvival, reflectance.MaxComponent())
	if p <= 0 || sampler.Get1D() >= p {
		return core.Vec3{}, false
	}
	return reflectance.Multiply(1.0 / p), true
}

// trace follows one photon through the scene and appends its deposits to stored
func (m *Map) trace(scene core.SceneView, ray core.Ray, power core.Vec3, sampler core.Sampler, stored []Photon) []Photon {
	specularBounces := 0
	diffuseBounces := 0
	for bounce := 0; bounce < m.options.MaxBounces; bounce++ {
		hit := scene.ClosestIntersection(ray)
		if !hit.Ok() {
			return stored
		}
		mat := hit.Primitive.Material()
		if mat == nil {
			return stored
		}

		point := ray.At(hit.T)
		normal := hit.Primitive.Normal(point, hit.Part)
		facing := normal
		if facing.Dot(ray.Direction) > 0 {
			facing = facing.Negate()
		}

		switch mat.Kind() {
		case core.Emissive:
			return stored

		case core.Diffuse:
			deposit := !m.options.IndirectOnly || diffuseBounces > 0 || specularBounces > 0
			if m.options.SkipCausticPaths && diffuseBounces == 0 && specularBounces > 0 {
				deposit = false
			}
			if m.options.Caustic {
				deposit = specularBounces > 0
			}
			if deposit {
				stored = append(stored, Photon{
					Position:  point,
					Direction: ray.Direction,
					Power:     power,
					Type:      m.photonType(),
				})
			}
			if m.options.Caustic {
				return stored
			}
			diffuseBounces++

			scale, ok := survive(mat.Reflectance(ray, facing), sampler)
			if !ok {
				return stored
			}
			power = power.MultiplyVec(scale)
			ray = core.NewRayOffset(point, core.SampleCosineDirection(facing, sampler.Get2D()))

		case core.Specular:
			specularBounces++
			if scatterer, ok := mat.(core.DeltaScatterer); ok {
				direction, weight := scatterer.ScatterDelta(ray, normal, sampler)
				power = power.MultiplyVec(weight)
				ray = core.NewRayOffset(point, direction)
				continue
			}

			scale, ok := survive(mat.Reflectance(ray, facing), sampler)
			if !ok {
				return stored
			}
			power = power.MultiplyVec(scale)
			ray = core.NewRayOffset(point, core.Reflect(ray.Direction, facing))

		default:
			// Generic surfaces break caustic paths
			if m.options.Caustic {
				return stored
			}
			scale, ok := survive(mat.Reflectance(ray, facing), sampler)
			if !ok {
				return stored
			}
			power = power.MultiplyVec(scale)
			diffuseBounces++
			ray = core.NewRayOffset(point, core.SampleCosineDirection(facing, sampler.Get2D()))
		}
	}
	return stored
}

// EstimateRadiance returns the density estimate at point using the map's kernel
func (m *Map) EstimateRadiance(point, normal core.Vec3, maxRadius float64, k int) core.Vec3 {
	return Estimate(m.tree, point, normal, maxRadius, k, m.options.Kernel)
}

// Len returns the number of stored photons
func (m *Map) Len() int {
	return m.tree.Len()
}

// Photons returns a copy of the stored photons
func (m *Map) Photons() []Photon {
	result := make([]Photon, len(m.tree.photons))
	copy(result, m.tree.photons)
	return result
}

// Stats returns counts and timing from the last Build
func (m *Map) Stats() Stats {
	return m.stats
}

// Tree exposes the underlying k-d tree for direct queries
func (m *Map) Tree() *KDTree {
	return m.tree
}
