package material

import (
	"math"
	"testing"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

func TestFresnelSchlick(t *testing.T) {
	f0 := core.Splat(0.04)
	if got := FresnelSchlick(1, f0); math.Abs(got.X-0.04) > 1e-12 {
		t.Errorf("Expected F0 at normal incidence, got %v", got)
	}
	if got := FresnelSchlick(0, f0); math.Abs(got.X-1) > 1e-12 {
		t.Errorf("Expected 1 at grazing incidence, got %v", got)
	}
}

func TestCookTorrance_BelowHorizonIsBlack(t *testing.T) {
	ct := NewCookTorrance(core.Splat(0.5), core.Splat(0.04), 0.3)
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	normal := core.NewVec3(0, 0, 1)

	if got := ct.Shade(ray, core.Vec3{}, normal, core.NewVec3(0, 0, -1)); !got.IsZero() {
		t.Errorf("Light below the surface should contribute nothing, got %v", got)
	}
	if got := ct.Shade(ray, core.Vec3{}, normal, normal); got.X <= 0 || !got.IsFinite() {
		t.Errorf("Expected a positive finite response, got %v", got)
	}
}

func TestCookTorrance_SmootherIsSharper(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	normal := core.NewVec3(0, 0, 1)

	smooth := NewCookTorrance(core.Vec3{}, core.Splat(0.9), 0.2)
	rough := NewCookTorrance(core.Vec3{}, core.Splat(0.9), 0.8)

	if smooth.Shade(ray, core.Vec3{}, normal, normal).X <= rough.Shade(ray, core.Vec3{}, normal, normal).X {
		t.Error("Smoother surface should have a higher peak at the mirror direction")
	}
}
