package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/lights"
	"github.com/df07/go-photon-raytracer/pkg/log"
	"github.com/df07/go-photon-raytracer/pkg/material"
	"github.com/df07/go-photon-raytracer/pkg/scene"
)

func init() {
	log.Discard()
}

var testCamera = geometry.CameraConfig{Width: 1, Height: 1, FOV: 60, LookAt: core.NewVec3(0, 0, -1)}

// floorScene is a large diffuse floor at y=0 under a point light at (0,2,0)
func floorScene(t *testing.T) *scene.Scene {
	t.Helper()
	s := scene.NewScene("floor", testCamera)
	s.Add(scene.NewGroundQuad(core.Vec3{}, 2000, material.NewDiffuse(core.Splat(0.5))))
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 2, 0), core.Splat(1), 100))
	if err := s.Preprocess(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return s
}

// floorDirect is the analytic direct lighting of floorScene at (x, 0, z)
func floorDirect(x, z float64) float64 {
	toLight := core.NewVec3(-x, 2, -z)
	distSq := toLight.LengthSquared()
	cosTheta := 2 / math.Sqrt(distSq)
	return 100 / (4 * math.Pi * distSq) * (0.5 / math.Pi) * cosTheta
}

// downRay points straight down at (x, 0, z)
func downRay(x, z float64) core.Ray {
	return core.NewRay(core.NewVec3(x, 1, z), core.NewVec3(0, -1, 0))
}

func closeTo(got, want, tolerance float64) bool {
	return math.Abs(got-want) <= tolerance
}
