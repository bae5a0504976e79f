package geometry

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3     // The three vertices
	material   core.Material // Material of the triangle
	normal     core.Vec3     // Cached normal vector
	bbox       core.AABB     // Cached bounding box
	index      int           // Position inside the owning mesh, -1 when standalone
}

// NewTriangle creates a new triangle from three vertices.
// The normal follows the right-hand rule over (V0, V1, V2).
func NewTriangle(v0, v1, v2 core.Vec3, material core.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		material: material,
		index:    -1,
	}

	t.normal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	// Pad so axis-aligned triangles still have a box with volume
	t.bbox = core.NewAABBFromPoints(v0, v1, v2).Expand(core.Epsilon)

	return t
}

// Intersect tests the ray against the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Intersect(ray core.Ray) core.Hit {
	tt, ok := t.intersect(ray)
	if !ok {
		return core.NoHit()
	}
	return core.Hit{Primitive: t, T: tt, Part: t.index}
}

func (t *Triangle) intersect(ray core.Ray) (float64, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if a > -epsilon && a < epsilon {
		return 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	tParam := f * edge2.Dot(q)
	if tParam <= core.Epsilon {
		return 0, false
	}
	return tParam, true
}

// Normal returns the triangle's cached face normal
func (t *Triangle) Normal(point core.Vec3, part int) core.Vec3 {
	return t.normal
}

// BoundingBox returns the padded bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Material returns the triangle's material
func (t *Triangle) Material() core.Material {
	return t.material
}

// Area returns the triangle's surface area
func (t *Triangle) Area() float64 {
	return 0.5 * t.V1.Subtract(t.V0).Cross(t.V2.Subtract(t.V0)).Length()
}
