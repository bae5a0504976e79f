package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

func testCamera(jitter bool) *PerspectiveCamera {
	return NewPerspectiveCamera(CameraConfig{
		Position:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		FocalLength: 1,
		FOV:         90,
		Width:       4,
		Height:      2,
		Jitter:      jitter,
	})
}

func TestPerspectiveCamera_PixelLayout(t *testing.T) {
	camera := testCamera(false)

	w, h := camera.Resolution()
	if w != 4 || h != 2 {
		t.Fatalf("Expected 4x2, got %dx%d", w, h)
	}

	// Film is 2 wide and 1 tall; pixel (0,0) is the bottom-left cell
	ray := camera.GenerateRay(0, 0, nil)
	want := core.NewVec3(-0.75, -0.25, -1).Normalize()
	if ray.Direction.Subtract(want).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", want, ray.Direction)
	}

	top := camera.GenerateRay(3, 1, nil)
	if top.Direction.X <= 0 || top.Direction.Y <= 0 {
		t.Errorf("Top-right pixel should point up and right, got %v", top.Direction)
	}
	if math.Abs(ray.Direction.Length()-1) > 1e-12 {
		t.Error("Camera rays should be normalized")
	}
}

func TestPerspectiveCamera_JitterStaysInPixel(t *testing.T) {
	camera := testCamera(true)
	sampler := core.NewSeededSampler(1)

	for i := 0; i < 100; i++ {
		ray := camera.GenerateRay(1, 0, sampler)
		// Project back onto the film plane at z=-1
		p := ray.Direction.Multiply(-1 / ray.Direction.Z)
		if p.X < -0.5 || p.X > 0 || p.Y < -0.5 || p.Y > 0 {
			t.Fatalf("Jittered ray left pixel (1,0): %v", p)
		}
	}
}
