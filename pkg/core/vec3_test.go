package core

import (
	"math"
	"testing"
)

func TestVec3_Basics(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	if got := a.Add(b); got != NewVec3(5, -3, 9) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Subtract(b); got != NewVec3(-3, 7, -3) {
		t.Errorf("Subtract: got %v", got)
	}
	if got := a.Dot(b); got != 12 {
		t.Errorf("Dot: got %v, expected 12", got)
	}
	if got := a.MultiplyVec(b); got != NewVec3(4, -10, 18) {
		t.Errorf("MultiplyVec: got %v", got)
	}
	if got := a.Min(b); got != NewVec3(1, -5, 3) {
		t.Errorf("Min: got %v", got)
	}
	if got := a.Max(b); got != NewVec3(4, 2, 6) {
		t.Errorf("Max: got %v", got)
	}
	if got := b.MaxComponent(); got != 6 {
		t.Errorf("MaxComponent: got %v", got)
	}
	for axis, want := range []float64{1, 2, 3} {
		if got := a.Axis(axis); got != want {
			t.Errorf("Axis(%d): got %v, expected %v", axis, got, want)
		}
	}
}

func TestVec3_CrossIsOrthogonal(t *testing.T) {
	a := NewVec3(0.3, -1.2, 2.5)
	b := NewVec3(-0.7, 0.4, 1.1)
	c := a.Cross(b)

	if math.Abs(c.Dot(a)) > 1e-12 || math.Abs(c.Dot(b)) > 1e-12 {
		t.Errorf("Cross product %v is not orthogonal to inputs", c)
	}
}

func TestVec3_NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalizing the zero vector should return zero, got %v", got)
	}
	if got := NewVec3(3, 0, 4).Normalize().Length(); math.Abs(got-1) > 1e-12 {
		t.Errorf("Normalized length should be 1, got %v", got)
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("Expected finite vector")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("NaN component should not be finite")
	}
	if NewVec3(0, math.Inf(1), 0).IsFinite() {
		t.Error("Inf component should not be finite")
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 0, 0), NewVec3(0, 1, 0))
	if got := ray.At(2.5); got != NewVec3(1, 2.5, 0) {
		t.Errorf("At: got %v", got)
	}

	offset := NewRayOffset(NewVec3(0, 0, 0), NewVec3(0, 0, 1))
	if offset.Origin.Z != Epsilon {
		t.Errorf("Offset ray origin should be nudged by Epsilon, got %v", offset.Origin)
	}
}
