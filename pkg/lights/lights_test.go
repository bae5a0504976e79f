package lights

import (
	"math"
	"testing"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

func TestPointLight_InverseSquare(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 5, 0), core.Splat(1), 100)

	near := light.EmittedLight(core.NewVec3(0, 1, 0))
	far := light.EmittedLight(core.NewVec3(0, 2, 0))
	if math.Abs(near.X/far.X-4) > 1e-12 {
		t.Errorf("Expected 4x falloff, got near=%v far=%v", near, far)
	}
	if want := 100 / (4 * math.Pi); math.Abs(near.X-want) > 1e-12 {
		t.Errorf("Expected %v at unit distance, got %v", want, near.X)
	}
	if !light.EmittedLight(core.Vec3{}).IsZero() {
		t.Error("Zero distance should not blow up")
	}
	if TypeOf(light) != LightTypePoint {
		t.Errorf("Expected point type, got %v", TypeOf(light))
	}
}

func TestPointLight_EmitPhoton(t *testing.T) {
	light := NewPointLight(core.NewVec3(1, 2, 3), core.Splat(1), 1)
	sampler := core.NewSeededSampler(4)

	mean := core.Vec3{}
	const n = 20000
	for i := 0; i < n; i++ {
		ray, ok := light.EmitPhoton(sampler)
		if !ok {
			t.Fatal("Point lights always emit")
		}
		if ray.Origin != light.Position() {
			t.Fatalf("Photon should start at the light, got %v", ray.Origin)
		}
		mean = mean.Add(ray.Direction)
	}
	if mean.Multiply(1.0/n).Length() > 0.03 {
		t.Errorf("Photon directions should be isotropic, mean %v", mean.Multiply(1.0/n))
	}
}

func TestAreaLight_FrontFaceOnly(t *testing.T) {
	light := NewAreaLight(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0), 2, 0.5, core.Splat(1), 10)

	below := light.EmittedLight(core.NewVec3(0, 2, 0)) // shading point at origin, light above
	if want := 10.0 / 1.0; math.Abs(below.X-want) > 1e-12 {
		t.Errorf("Expected %v straight below, got %v", want, below.X)
	}

	above := light.EmittedLight(core.NewVec3(0, -1, 0))
	if !above.IsZero() {
		t.Errorf("Nothing should be emitted behind the light, got %v", above)
	}

	angled := light.EmittedLight(core.NewVec3(2, 2, 0))
	if math.Abs(angled.X-10*math.Cos(math.Pi/4)) > 1e-12 {
		t.Errorf("Expected cosine falloff, got %v", angled.X)
	}
}

func TestAreaLight_EmitPhoton(t *testing.T) {
	light := NewAreaLight(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0), 2, 1, core.Splat(1), 10)
	sampler := core.NewSeededSampler(8)

	for i := 0; i < 1000; i++ {
		ray, ok := light.EmitPhoton(sampler)
		if !ok {
			continue
		}
		if ray.Direction.Y >= 0 {
			t.Fatalf("Photon should leave the front face, got %v", ray.Direction)
		}
		offset := ray.Origin.Subtract(light.Position())
		if math.Abs(offset.Y) > 1e-3 || math.Abs(offset.X) > 1.001 || math.Abs(offset.Z) > 1.001 {
			t.Fatalf("Photon origin %v is off the rectangle", ray.Origin)
		}
	}
}

func TestEnvironments(t *testing.T) {
	uniform := NewUniformEnvironment(core.NewVec3(0.5, 0.5, 1), 2)
	if got := uniform.Radiance(core.NewVec3(0, 0, 1)); got != core.NewVec3(1, 1, 2) {
		t.Errorf("Expected (1,1,2), got %v", got)
	}

	gradient := NewGradientEnvironment(core.NewVec3(0, 0, 1), core.NewVec3(1, 1, 1))
	if got := gradient.Radiance(core.NewVec3(0, 1, 0)); got != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected top color looking up, got %v", got)
	}
	if got := gradient.Radiance(core.NewVec3(0, -1, 0)); got != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected bottom color looking down, got %v", got)
	}
}

func TestImportanceAndShares(t *testing.T) {
	ls := []core.Light{
		NewPointLight(core.Vec3{}, core.NewVec3(1, 0, 0), 3),
		NewPointLight(core.Vec3{}, core.NewVec3(0, 1, 0), 1),
	}
	weights, total := Importance(ls)
	if weights[0] != 3 || weights[1] != 1 || total != 4 {
		t.Errorf("Unexpected importance %v total %v", weights, total)
	}

	shares := PhotonShares(weights, total, 1001)
	if shares[0]+shares[1] != 1001 {
		t.Errorf("Shares should use the whole budget, got %v", shares)
	}
	if shares[0] != 751 || shares[1] != 250 {
		t.Errorf("Expected [751 250], got %v", shares)
	}

	if got := PhotonShares(nil, 0, 100); len(got) != 0 {
		t.Errorf("Expected no shares without lights, got %v", got)
	}
}
