// Package photon traces photons from the scene's lights, stores them in a
// k-d tree and answers density-estimation queries for indirect and caustic light.
package photon

import "github.com/df07/go-photon-raytracer/pkg/core"

// Type tags which map a photon was deposited into
type Type int

const (
	Global Type = iota
	Caustic
)

func (t Type) String() string {
	if t == Caustic {
		return "caustic"
	}
	return "global"
}

// Photon is a packet of light power deposited on a diffuse surface.
// Direction is the direction of travel when it arrived.
type Photon struct {
	Position  core.Vec3
	Direction core.Vec3
	Power     core.Vec3
	Type      Type
}

// Interaction is a query result: a stored photon and its squared distance to the query point
type Interaction struct {
	Photon *Photon
	DistSq float64
}
