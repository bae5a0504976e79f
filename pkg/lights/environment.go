package lights

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// UniformEnvironment returns the same radiance for every escaped ray
type UniformEnvironment struct {
	Color      core.Vec3
	Brightness float64
}

// NewUniformEnvironment creates a new constant environment
func NewUniformEnvironment(color core.Vec3, brightness float64) *UniformEnvironment {
	return &UniformEnvironment{Color: color, Brightness: brightness}
}

// Radiance returns color × brightness
func (u *UniformEnvironment) Radiance(direction core.Vec3) core.Vec3 {
	return u.Color.Multiply(u.Brightness)
}

// GradientEnvironment blends between a bottom and a top color along world Y
type GradientEnvironment struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewGradientEnvironment creates a new sky gradient
func NewGradientEnvironment(top, bottom core.Vec3) *GradientEnvironment {
	return &GradientEnvironment{Top: top, Bottom: bottom}
}

// Radiance lerps from Bottom (straight down) to Top (straight up)
func (g *GradientEnvironment) Radiance(direction core.Vec3) core.Vec3 {
	t := 0.5 * (direction.Normalize().Y + 1.0)
	return g.Bottom.Multiply(1.0 - t).Add(g.Top.Multiply(t))
}
