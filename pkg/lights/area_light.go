package lights

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// AreaLight is a one-sided rectangular emitter centered at its position.
// Direct lighting treats it as a point at the center with a cosine falloff;
// photons leave from anywhere on the rectangle.
type AreaLight struct {
	position   core.Vec3
	Normal     core.Vec3
	Width      float64
	Height     float64
	Color      core.Vec3
	Brightness float64
	tangent    core.Vec3
	bitangent  core.Vec3
}

// NewAreaLight creates a new area light facing along normal
func NewAreaLight(position, normal core.Vec3, width, height float64, color core.Vec3, brightness float64) *AreaLight {
	n := normal.Normalize()
	tangent, bitangent := core.OrthonormalBasis(n)
	return &AreaLight{
		position:   position,
		Normal:     n,
		Width:      width,
		Height:     height,
		Color:      color,
		Brightness: brightness,
		tangent:    tangent,
		bitangent:  bitangent,
	}
}

func (a *AreaLight) Type() LightType {
	return LightTypeArea
}

// Position returns the center of the rectangle
func (a *AreaLight) Position() core.Vec3 {
	return a.position
}

// Area returns width × height
func (a *AreaLight) Area() float64 {
	return a.Width * a.Height
}

// EmittedLight returns power·cosθ/area for points in front of the light and zero behind it
func (a *AreaLight) EmittedLight(toLight core.Vec3) core.Vec3 {
	area := a.Area()
	if area <= 0 {
		return core.Vec3{}
	}
	cosTheta := a.Normal.Dot(toLight.Normalize().Negate())
	if cosTheta <= 0 {
		return core.Vec3{}
	}
	return a.Power().Multiply(cosTheta / area)
}

// Power returns color × brightness
func (a *AreaLight) Power() core.Vec3 {
	return a.Color.Multiply(a.Brightness)
}

// EmitPhoton picks a uniform point on the rectangle and a cosine-weighted direction around the normal
func (a *AreaLight) EmitPhoton(sampler core.Sampler) (core.Ray, bool) {
	u := sampler.Get2D()
	origin := a.position.
		Add(a.tangent.Multiply((u.X - 0.5) * a.Width)).
		Add(a.bitangent.Multiply((u.Y - 0.5) * a.Height))

	direction := core.SampleCosineDirection(a.Normal, sampler.Get2D())
	if direction.Dot(a.Normal) <= 0 {
		return core.Ray{}, false
	}
	return core.NewRayOffset(origin, direction), true
}
