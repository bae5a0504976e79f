package lights

import "github.com/df07/go-photon-raytracer/pkg/core"

type LightType string

const (
	LightTypeArea  LightType = "area"
	LightTypePoint LightType = "point"
)

// TypedLight is a light that can report what kind it is
type TypedLight interface {
	core.Light
	Type() LightType
}

// TypeOf returns the light's type, or "unknown" for lights outside this package
func TypeOf(light core.Light) LightType {
	if typed, ok := light.(TypedLight); ok {
		return typed.Type()
	}
	return "unknown"
}
