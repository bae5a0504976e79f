package geometry

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		material: material,
	}
}

// Intersect returns the nearest root of the ray-sphere quadratic beyond Epsilon
func (s *Sphere) Intersect(ray core.Ray) core.Hit {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return core.NoHit()
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root <= core.Epsilon {
		root = (-halfB + sqrtD) / a
		if root <= core.Epsilon {
			return core.NoHit()
		}
	}

	return core.Hit{Primitive: s, T: root, Part: -1}
}

// Normal returns the outward normal at point
func (s *Sphere) Normal(point core.Vec3, part int) core.Vec3 {
	return point.Subtract(s.Center).Multiply(1.0 / s.Radius)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.Splat(s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

// Material returns the sphere's material
func (s *Sphere) Material() core.Material {
	return s.material
}
