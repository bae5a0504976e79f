package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

func TestTriangle_Intersect(t *testing.T) {
	triangle := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		nil,
	)

	tests := []struct {
		name   string
		origin core.Vec3
		hit    bool
	}{
		{"inside", core.NewVec3(0.25, 0.25, 1), true},
		{"on edge", core.NewVec3(0.5, 0, 1), true},
		{"outside hypotenuse", core.NewVec3(0.75, 0.75, 1), false},
		{"negative u", core.NewVec3(-0.1, 0.5, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := triangle.Intersect(core.NewRay(tt.origin, core.NewVec3(0, 0, -1)))
			if hit.Ok() != tt.hit {
				t.Fatalf("Expected hit=%v, got %v", tt.hit, hit.Ok())
			}
			if tt.hit && math.Abs(hit.T-1) > 1e-9 {
				t.Errorf("Expected t=1, got %v", hit.T)
			}
		})
	}
}

func TestTriangle_ParallelRayMisses(t *testing.T) {
	triangle := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), nil)
	ray := core.NewRay(core.NewVec3(-1, 0.2, 0), core.NewVec3(1, 0, 0))
	if triangle.Intersect(ray).Ok() {
		t.Error("Ray in the triangle's plane should miss")
	}
}

func TestTriangle_NormalAreaAndBox(t *testing.T) {
	triangle := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), nil)

	if n := triangle.Normal(core.Vec3{}, -1); n != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected normal (0,0,1), got %v", n)
	}
	if a := triangle.Area(); math.Abs(a-2) > 1e-12 {
		t.Errorf("Expected area 2, got %v", a)
	}

	// Flat triangle gets a box with thickness
	box := triangle.BoundingBox()
	if box.Max.Z-box.Min.Z <= 0 {
		t.Errorf("Expected padded box, got %v", box)
	}
}
