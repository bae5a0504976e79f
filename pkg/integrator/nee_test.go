package integrator

import (
	"testing"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/lights"
	"github.com/df07/go-photon-raytracer/pkg/material"
	"github.com/df07/go-photon-raytracer/pkg/scene"
)

func TestNextEventEstimation_MatchesAnalyticFormula(t *testing.T) {
	s := floorScene(t)
	mat := material.NewDiffuse(core.Splat(0.5))
	sampler := core.NewSeededSampler(1)
	up := core.NewVec3(0, 1, 0)

	points := [][2]float64{{0, 0}, {0.3, 0.2}, {-1.5, 2}, {4, -3}}
	for _, p := range points {
		point := core.NewVec3(p[0], 0, p[1])
		got := NextEventEstimation(s, point, up, downRay(p[0], p[1]), mat, sampler)
		want := floorDirect(p[0], p[1])
		if !closeTo(got.X, want, 1e-12) {
			t.Errorf("At %v: expected %v, got %v", point, want, got.X)
		}
	}
}

func TestNextEventEstimation_Occlusion(t *testing.T) {
	s := floorScene(t)
	s.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 0.25, material.NewDiffuse(core.Splat(0.5))))
	if err := s.Preprocess(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	mat := material.NewDiffuse(core.Splat(0.5))
	up := core.NewVec3(0, 1, 0)
	ray := core.NewRay(core.NewVec3(1, 1, 0), core.NewVec3(-1, -1, 0).Normalize())

	got := NextEventEstimation(s, core.Vec3{}, up, ray, mat, core.NewSeededSampler(2))
	if !got.IsZero() {
		t.Errorf("Occluded light should contribute nothing, got %v", got)
	}

	s.Shadows = false
	got = NextEventEstimation(s, core.Vec3{}, up, ray, mat, core.NewSeededSampler(2))
	if !closeTo(got.X, floorDirect(0, 0), 1e-12) {
		t.Errorf("With shadows off expected %v, got %v", floorDirect(0, 0), got.X)
	}
}

func TestNextEventEstimation_DegenerateCases(t *testing.T) {
	mat := material.NewDiffuse(core.Splat(0.5))
	up := core.NewVec3(0, 1, 0)
	sampler := core.NewSeededSampler(3)

	dark := scene.NewScene("dark", testCamera)
	if got := NextEventEstimation(dark, core.Vec3{}, up, downRay(0, 0), mat, sampler); !got.IsZero() {
		t.Errorf("Scene without lights should give zero, got %v", got)
	}

	black := scene.NewScene("black", testCamera)
	black.AddLight(lights.NewPointLight(core.NewVec3(0, 2, 0), core.Splat(1), 0))
	if got := NextEventEstimation(black, core.Vec3{}, up, downRay(0, 0), mat, sampler); !got.IsZero() {
		t.Errorf("Zero total importance should give zero, got %v", got)
	}

	// Light below the surface
	below := scene.NewScene("below", testCamera)
	below.AddLight(lights.NewPointLight(core.NewVec3(0, -2, 0), core.Splat(1), 100))
	if got := NextEventEstimation(below, core.Vec3{}, up, downRay(0, 0), mat, sampler); !got.IsZero() {
		t.Errorf("Light behind the surface should give zero, got %v", got)
	}
}

func TestNextEventEstimation_IsUnbiasedOverLights(t *testing.T) {
	s := scene.NewScene("two lights", testCamera)
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 2, 0), core.Splat(1), 100))
	s.AddLight(lights.NewPointLight(core.NewVec3(1, 3, 0), core.Splat(1), 300))

	mat := material.NewDiffuse(core.Splat(0.5))
	up := core.NewVec3(0, 1, 0)
	ray := downRay(0, 0)
	want := AllLightsDirect(s, core.Vec3{}, up, ray, mat).X

	sampler := core.NewSeededSampler(4)
	const n = 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += NextEventEstimation(s, core.Vec3{}, up, ray, mat, sampler).X
	}
	if !closeTo(sum/n, want, want*0.03) {
		t.Errorf("Expected mean near %v, got %v", want, sum/n)
	}
}
