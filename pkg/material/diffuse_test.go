package material

import (
	"math"
	"testing"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

func TestDiffuse_Shade(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	diffuse := NewDiffuse(albedo)
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	normal := core.NewVec3(0, 0, 1)

	// BRDF is albedo/π for every pair of directions
	for _, toLight := range []core.Vec3{
		core.NewVec3(0, 0, 1),
		core.NewVec3(1, 0, 1).Normalize(),
		core.NewVec3(0, -1, 0.1).Normalize(),
	} {
		got := diffuse.Shade(ray, core.Vec3{}, normal, toLight)
		want := albedo.Multiply(1.0 / math.Pi)
		if got.Subtract(want).Length() > 1e-12 {
			t.Errorf("Expected %v, got %v", want, got)
		}
	}

	if diffuse.Kind() != core.Diffuse {
		t.Errorf("Expected diffuse kind, got %v", diffuse.Kind())
	}
	if diffuse.Reflectance(ray, normal) != albedo {
		t.Errorf("Reflectance should equal albedo")
	}
	if !diffuse.Emitted().IsZero() {
		t.Error("Diffuse surfaces should not emit")
	}
}

// hemisphereAlbedo integrates Shade·cosθ over the hemisphere by cosine-weighted sampling
func hemisphereAlbedo(m core.Material, ray core.Ray, normal core.Vec3, samples int) core.Vec3 {
	sampler := core.NewSeededSampler(17)
	sum := core.Vec3{}
	for i := 0; i < samples; i++ {
		toLight := core.SampleCosineDirection(normal, sampler.Get2D())
		cosTheta := toLight.Dot(normal)
		pdf := core.CosineHemispherePDF(cosTheta)
		if pdf <= 0 {
			continue
		}
		sum = sum.Add(m.Shade(ray, core.Vec3{}, normal, toLight).Multiply(cosTheta / pdf))
	}
	return sum.Multiply(1.0 / float64(samples))
}

func TestMaterials_DoNotCreateEnergy(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0.3, 0, 1), core.NewVec3(-0.3, 0, -1).Normalize())
	normal := core.NewVec3(0, 0, 1)

	tests := []struct {
		name     string
		material core.Material
	}{
		{"diffuse", NewDiffuse(core.Splat(1))},
		{"specular", NewSpecular(core.Splat(1), 20)},
		{"phong", NewPhong(core.Splat(0.1), core.Splat(0.5), core.Splat(0.4), 30)},
		{"cook-torrance", NewCookTorrance(core.Splat(0.6), core.Splat(0.04), 0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			albedo := hemisphereAlbedo(tt.material, ray, normal, 50000)
			if albedo.MaxComponent() > 1.05 {
				t.Errorf("Directional albedo %v exceeds one", albedo)
			}
			if albedo.MaxComponent() <= 0 {
				t.Errorf("Directional albedo %v should be positive", albedo)
			}
		})
	}
}
