package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler whose sequence is fully determined by seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// SampleCosineHemisphere maps a uniform sample to a cosine-weighted direction
// around local +Z: phi = 2*pi*u1, cos(theta) = sqrt(1-u2), sin(theta) = sqrt(u2).
func SampleCosineHemisphere(u Vec2) Vec3 {
	phi := 2.0 * math.Pi * u.X
	sinTheta := math.Sqrt(u.Y)
	cosTheta := math.Sqrt(1.0 - u.Y)
	return Vec3{
		X: sinTheta * math.Cos(phi),
		Y: sinTheta * math.Sin(phi),
		Z: cosTheta,
	}
}

// CosineHemispherePDF returns the density of SampleCosineHemisphere for a direction with the given cosine
func CosineHemispherePDF(cosTheta float64) float64 {
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}

// SampleUniformSphere generates a uniform random direction on the unit sphere
func SampleUniformSphere(u Vec2) Vec3 {
	z := 1.0 - 2.0*u.X
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * u.Y
	return Vec3{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}

// OrthonormalBasis returns two unit tangents completing n into a right-handed frame.
// The seed axis is world Y when |n.X| > 0.1, else world X.
func OrthonormalBasis(n Vec3) (tangent, bitangent Vec3) {
	var seed Vec3
	if math.Abs(n.X) > 0.1 {
		seed = Vec3{0, 1, 0}
	} else {
		seed = Vec3{1, 0, 0}
	}
	tangent = seed.Cross(n).Normalize()
	bitangent = n.Cross(tangent)
	return tangent, bitangent
}

// ToWorld transforms a direction from the local frame (Z along n) into world space
func ToWorld(local, n Vec3) Vec3 {
	tangent, bitangent := OrthonormalBasis(n)
	return tangent.Multiply(local.X).
		Add(bitangent.Multiply(local.Y)).
		Add(n.Multiply(local.Z))
}

// SampleCosineDirection returns a cosine-weighted direction around the world normal n
func SampleCosineDirection(n Vec3, u Vec2) Vec3 {
	return ToWorld(SampleCosineHemisphere(u), n).Normalize()
}

// Reflect mirrors direction d about the normal n
func Reflect(d, n Vec3) Vec3 {
	return d.Subtract(n.Multiply(2 * d.Dot(n)))
}

// PickWeighted selects an index with probability weights[i]/total and returns
// it with that probability. It returns -1 when nothing can be picked.
func PickWeighted(weights []float64, total, u float64) (int, float64) {
	if len(weights) == 0 || total <= 0 {
		return -1, 0
	}
	target := u * total
	cumulative := 0.0
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		cumulative += w
		if target < cumulative {
			return i, w / total
		}
	}
	// Rounding left the target past the final bucket
	if last < 0 {
		return -1, 0
	}
	return last, weights[last] / total
}
