package photon

import (
	"math"
	"testing"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

func TestEstimate_Uniform(t *testing.T) {
	down := core.NewVec3(0, -1, 0)
	photons := []Photon{
		{Position: core.NewVec3(0.1, 0, 0), Direction: down, Power: core.Splat(1)},
		{Position: core.NewVec3(0, 0, 0.2), Direction: down, Power: core.Splat(2)},
		{Position: core.NewVec3(-0.5, 0, 0), Direction: down, Power: core.Splat(3)},
	}
	tree := BuildKDTree(photons)
	up := core.NewVec3(0, 1, 0)

	got := Estimate(tree, core.Vec3{}, up, 1, 10, KernelUniform)
	want := 6 / (math.Pi * 0.25)
	if math.Abs(got.X-want) > 1e-9 {
		t.Errorf("Expected %v, got %v", want, got.X)
	}

	// k=2 keeps the two nearest, r² is the second one's distance
	got = Estimate(tree, core.Vec3{}, up, 1, 2, KernelUniform)
	want = 3 / (math.Pi * 0.04)
	if math.Abs(got.X-want) > 1e-9 {
		t.Errorf("Expected %v with k=2, got %v", want, got.X)
	}
}

func TestEstimate_Cone(t *testing.T) {
	down := core.NewVec3(0, -1, 0)
	tree := BuildKDTree([]Photon{
		{Position: core.NewVec3(0.5, 0, 0), Direction: down, Power: core.Splat(4)},
		{Position: core.NewVec3(1, 0, 0), Direction: down, Power: core.Splat(4)},
	})

	got := Estimate(tree, core.Vec3{}, core.NewVec3(0, 1, 0), 2, 10, KernelCone)
	// r² = 1; weights 0.5 and 0
	want := 3.0 / math.Pi * 2
	if math.Abs(got.X-want) > 1e-9 {
		t.Errorf("Expected %v, got %v", want, got.X)
	}
}

func TestEstimate_DiscardsBackFacingPhotons(t *testing.T) {
	tree := BuildKDTree([]Photon{
		{Position: core.NewVec3(0.1, 0, 0), Direction: core.NewVec3(0, -1, 0), Power: core.Splat(1)},
		{Position: core.NewVec3(0.2, 0, 0), Direction: core.NewVec3(0, 1, 0), Power: core.Splat(100)},
	})

	got := Estimate(tree, core.Vec3{}, core.NewVec3(0, 1, 0), 1, 10, KernelUniform)
	want := 1 / (math.Pi * 0.01)
	if math.Abs(got.X-want) > 1e-9 {
		t.Errorf("Expected only the front photon (%v), got %v", want, got.X)
	}

	// Seen from below only the other photon counts
	got = Estimate(tree, core.Vec3{}, core.NewVec3(0, -1, 0), 1, 10, KernelUniform)
	want = 100 / (math.Pi * 0.04)
	if math.Abs(got.X-want) > 1e-9 {
		t.Errorf("Expected only the back photon (%v), got %v", want, got.X)
	}
}

func TestEstimate_DegenerateCasesAreZero(t *testing.T) {
	up := core.NewVec3(0, 1, 0)
	tree := BuildKDTree([]Photon{
		{Position: core.Vec3{}, Direction: core.NewVec3(0, -1, 0), Power: core.Splat(1)},
	})

	tests := []struct {
		name   string
		tree   *KDTree
		radius float64
		k      int
	}{
		{"nil tree", nil, 1, 10},
		{"empty tree", BuildKDTree(nil), 1, 10},
		{"zero radius", tree, 0, 10},
		{"zero k", tree, 1, 0},
		{"photon exactly at the query point", tree, 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(tt.tree, core.Vec3{}, up, tt.radius, tt.k, KernelUniform)
			if !got.IsZero() {
				t.Errorf("Expected zero, got %v", got)
			}
		})
	}
}

func TestParseKernel(t *testing.T) {
	for name, want := range map[string]Kernel{"": KernelUniform, "uniform": KernelUniform, "cone": KernelCone} {
		got, err := ParseKernel(name)
		if err != nil || got != want {
			t.Errorf("ParseKernel(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseKernel("gaussian"); err == nil {
		t.Error("Expected error for unknown kernel")
	}
}
