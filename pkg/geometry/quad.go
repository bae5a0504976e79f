package geometry

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3 // One corner of the quad
	U        core.Vec3 // First edge vector
	V        core.Vec3 // Second edge vector
	normal   core.Vec3 // Unit normal (U × V)
	material core.Material
	d        float64   // Plane equation constant: normal · p = d
	w        core.Vec3 // Cached vector for planar coordinates
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, material core.Material) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		normal:   normal,
		material: material,
		d:        normal.Dot(corner),
		w:        cross.Multiply(1.0 / cross.Dot(cross)),
	}
}

// Intersect tests the ray against the quad's plane and edge bounds
func (q *Quad) Intersect(ray core.Ray) core.Hit {
	denominator := ray.Direction.Dot(q.normal)

	// Ray parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return core.NoHit()
	}

	t := (q.d - ray.Origin.Dot(q.normal)) / denominator
	if t <= core.Epsilon {
		return core.NoHit()
	}

	hitVector := ray.At(t).Subtract(q.Corner)
	alpha := q.w.Dot(hitVector.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return core.NoHit()
	}

	return core.Hit{Primitive: q, T: t, Part: -1}
}

// Normal returns the quad's unit normal
func (q *Quad) Normal(point core.Vec3, part int) core.Vec3 {
	return q.normal
}

// BoundingBox returns the padded box around the four corners
func (q *Quad) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	).Expand(core.Epsilon)
}

// Material returns the quad's material
func (q *Quad) Material() core.Material {
	return q.material
}

// Area returns the surface area of the quad
func (q *Quad) Area() float64 {
	return q.U.Cross(q.V).Length()
}

// SamplePoint maps a unit square sample to a point on the quad
func (q *Quad) SamplePoint(u core.Vec2) core.Vec3 {
	return q.Corner.Add(q.U.Multiply(u.X)).Add(q.V.Multiply(u.Y))
}

// Triangles splits the quad into two triangles sharing its normal
func (q *Quad) Triangles() [2]*Triangle {
	p0 := q.Corner
	p1 := q.Corner.Add(q.U)
	p2 := q.Corner.Add(q.U).Add(q.V)
	p3 := q.Corner.Add(q.V)
	return [2]*Triangle{
		NewTriangle(p0, p1, p2, q.material),
		NewTriangle(p0, p2, p3, q.material),
	}
}
