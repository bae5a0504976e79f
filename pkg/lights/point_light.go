package lights

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// PointLight emits uniformly in all directions from a single position
type PointLight struct {
	position   core.Vec3
	Color      core.Vec3
	Brightness float64
}

// NewPointLight creates a new point light
func NewPointLight(position, color core.Vec3, brightness float64) *PointLight {
	return &PointLight{position: position, Color: color, Brightness: brightness}
}

func (p *PointLight) Type() LightType {
	return LightTypePoint
}

// Position returns the light position
func (p *PointLight) Position() core.Vec3 {
	return p.position
}

// EmittedLight falls off with the inverse square of the distance: power/(4π d²)
func (p *PointLight) EmittedLight(toLight core.Vec3) core.Vec3 {
	distSq := toLight.LengthSquared()
	if distSq == 0 {
		return core.Vec3{}
	}
	return p.Power().Multiply(1.0 / (4.0 * math.Pi * distSq))
}

// Power returns color × brightness
func (p *PointLight) Power() core.Vec3 {
	return p.Color.Multiply(p.Brightness)
}

// EmitPhoton shoots a photon in a uniformly random direction
func (p *PointLight) EmitPhoton(sampler core.Sampler) (core.Ray, bool) {
	direction := core.SampleUniformSphere(sampler.Get2D())
	return core.NewRay(p.position, direction), true
}
