package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

func unitSquareMesh(t *testing.T, options *TriangleMeshOptions) *TriangleMesh {
	t.Helper()
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(0, 1, 0),
	}
	mesh, err := NewTriangleMesh(vertices, []int{0, 1, 2, 0, 2, 3}, nil, options)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return mesh
}

func TestTriangleMesh_ReportsPart(t *testing.T) {
	mesh := unitSquareMesh(t, nil)

	tests := []struct {
		name     string
		origin   core.Vec3
		wantPart int
	}{
		{"lower triangle", core.NewVec3(0.8, 0.2, 1), 0},
		{"upper triangle", core.NewVec3(0.2, 0.8, 1), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := mesh.Intersect(core.NewRay(tt.origin, core.NewVec3(0, 0, -1)))
			if !hit.Ok() {
				t.Fatal("Expected hit")
			}
			if hit.Primitive != core.Primitive(mesh) {
				t.Error("Hit should be reported against the mesh")
			}
			if hit.Part != tt.wantPart {
				t.Errorf("Expected part %d, got %d", tt.wantPart, hit.Part)
			}
			if n := mesh.Normal(tt.origin, hit.Part); n != core.NewVec3(0, 0, 1) {
				t.Errorf("Expected normal (0,0,1), got %v", n)
			}
		})
	}

	if mesh.TriangleCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.TriangleCount())
	}
}

func TestTriangleMesh_InvalidFaces(t *testing.T) {
	vertices := []core.Vec3{{}, {X: 1}, {Y: 1}}

	if _, err := NewTriangleMesh(vertices, []int{0, 1}, nil, nil); !errors.Is(err, ErrInvalidMesh) {
		t.Errorf("Expected ErrInvalidMesh for partial face, got %v", err)
	}
	if _, err := NewTriangleMesh(vertices, []int{0, 1, 3}, nil, nil); !errors.Is(err, ErrInvalidMesh) {
		t.Errorf("Expected ErrInvalidMesh for out-of-range index, got %v", err)
	}
}

func TestTriangleMesh_Transform(t *testing.T) {
	rotation := core.NewVec3(0, 0, math.Pi/2)
	mesh := unitSquareMesh(t, &TriangleMeshOptions{
		Scale:    2,
		Rotation: &rotation,
		Offset:   core.NewVec3(0, 0, 5),
	})

	box := mesh.BoundingBox()
	// Scaled to [0,2]², rotated 90° about Z into x∈[-2,0], lifted to z=5
	if math.Abs(box.Min.X+2) > 1e-3 || math.Abs(box.Max.Y-2) > 1e-3 || math.Abs(box.Center().Z-5) > 1e-3 {
		t.Errorf("Unexpected transformed bounds %v", box)
	}
}
