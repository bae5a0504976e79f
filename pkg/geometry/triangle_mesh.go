package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// ErrInvalidMesh is returned when face indices do not describe triangles over the given vertices
var ErrInvalidMesh = errors.New("geometry: invalid triangle mesh")

// TriangleMesh represents a collection of triangles with efficient ray intersection.
// It uses an internal BVH for fast intersection tests and reports hits against
// itself with Hit.Part set to the triangle index.
type TriangleMesh struct {
	triangles []*Triangle
	bvh       *BVH
	material  core.Material
}

// TriangleMeshOptions contains optional transforms applied to the vertices,
// in the order scale, rotate about Center, translate by Offset.
type TriangleMeshOptions struct {
	Scale    float64    // Uniform scale, 0 means 1
	Rotation *core.Vec3 // Rotation in radians around X, Y, Z (in that order)
	Center   *core.Vec3 // Pivot for rotation
	Offset   core.Vec3  // Translation
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices.
// Each group of 3 indices forms a triangle.
func NewTriangleMesh(vertices []core.Vec3, faces []int, material core.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("%w: %d face indices is not a multiple of 3", ErrInvalidMesh, len(faces))
	}

	working := vertices
	if options != nil {
		working = make([]core.Vec3, len(vertices))
		for i, vertex := range vertices {
			working[i] = options.transform(vertex)
		}
	}

	numTriangles := len(faces) / 3
	triangles := make([]*Triangle, numTriangles)
	primitives := make([]core.Primitive, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		for _, idx := range []int{i0, i1, i2} {
			if idx < 0 || idx >= len(working) {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidMesh, i, idx, len(working))
			}
		}

		triangle := NewTriangle(working[i0], working[i1], working[i2], material)
		triangle.index = i
		triangles[i] = triangle
		primitives[i] = triangle
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       NewBVH(primitives),
		material:  material,
	}, nil
}

func (o *TriangleMeshOptions) transform(vertex core.Vec3) core.Vec3 {
	if o.Scale != 0 {
		vertex = vertex.Multiply(o.Scale)
	}
	if o.Rotation != nil {
		if o.Center != nil {
			vertex = vertex.Subtract(*o.Center)
		}
		vertex = rotateVertex(vertex, *o.Rotation)
		if o.Center != nil {
			vertex = vertex.Add(*o.Center)
		}
	}
	return vertex.Add(o.Offset)
}

// Intersect finds the closest triangle hit and reports it against the mesh
func (tm *TriangleMesh) Intersect(ray core.Ray) core.Hit {
	hit := tm.bvh.Intersect(ray)
	if !hit.Ok() {
		return hit
	}
	hit.Primitive = tm
	return hit
}

// Normal returns the face normal of the triangle identified by part
func (tm *TriangleMesh) Normal(point core.Vec3, part int) core.Vec3 {
	if part < 0 || part >= len(tm.triangles) {
		return core.Vec3{}
	}
	return tm.triangles[part].normal
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bvh.Bounds()
}

// Material returns the material shared by every triangle
func (tm *TriangleMesh) Material() core.Material {
	return tm.material
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}

// Triangle returns the triangle at index i
func (tm *TriangleMesh) Triangle(i int) *Triangle {
	return tm.triangles[i]
}

// rotateVertex applies rotation around X, Y, Z axes (in that order)
func rotateVertex(vertex, rotation core.Vec3) core.Vec3 {
	if rotation.X != 0 {
		cos := math.Cos(rotation.X)
		sin := math.Sin(rotation.X)
		y := vertex.Y*cos - vertex.Z*sin
		z := vertex.Y*sin + vertex.Z*cos
		vertex = core.NewVec3(vertex.X, y, z)
	}

	if rotation.Y != 0 {
		cos := math.Cos(rotation.Y)
		sin := math.Sin(rotation.Y)
		x := vertex.X*cos + vertex.Z*sin
		z := -vertex.X*sin + vertex.Z*cos
		vertex = core.NewVec3(x, vertex.Y, z)
	}

	if rotation.Z != 0 {
		cos := math.Cos(rotation.Z)
		sin := math.Sin(rotation.Z)
		x := vertex.X*cos - vertex.Y*sin
		y := vertex.X*sin + vertex.Y*cos
		vertex = core.NewVec3(x, y, vertex.Z)
	}

	return vertex
}
