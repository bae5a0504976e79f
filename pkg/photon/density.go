package photon

import (
	"fmt"
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Kernel selects the density estimation filter
type Kernel int

const (
	// KernelUniform weights every photon equally over a disk of radius r
	KernelUniform Kernel = iota
	// KernelCone weights photons by 1 - d/r and renormalizes
	KernelCone
)

func (k Kernel) String() string {
	if k == KernelCone {
		return "cone"
	}
	return "uniform"
}

// ParseKernel maps a kernel name to its value
func ParseKernel(name string) (Kernel, error) {
	switch name {
	case "", "uniform":
		return KernelUniform, nil
	case "cone":
		return KernelCone, nil
	}
	return KernelUniform, fmt.Errorf("unknown density kernel %q", name)
}

// Estimate returns the photon flux density around point. Photons arriving from
// behind the surface are ignored and r² is the squared distance to the farthest
// photon kept. Every degenerate case yields zero.
func Estimate(tree *KDTree, point, normal core.Vec3, maxRadius float64, k int, kernel Kernel) core.Vec3 {
	if tree.Empty() || maxRadius <= 0 || k <= 0 {
		return core.Vec3{}
	}

	neighbours := tree.FindNearest(point, maxRadius*maxRadius, k)
	kept := make([]Interaction, 0, len(neighbours))
	for _, n := range neighbours {
		if normal.Dot(n.Photon.Direction.Negate()) > 0 {
			kept = append(kept, n)
		}
	}
	if len(kept) == 0 {
		return core.Vec3{}
	}

	// Results are sorted, the last one is the farthest
	r2 := kept[len(kept)-1].DistSq
	if r2 <= 0 {
		return core.Vec3{}
	}

	flux := core.Vec3{}
	switch kernel {
	case KernelCone:
		for _, n := range kept {
			weight := math.Max(0, 1.0-math.Sqrt(n.DistSq/r2))
			flux = flux.Add(n.Photon.Power.Multiply(weight))
		}
		return flux.Multiply(3.0 / (math.Pi * r2))
	default:
		for _, n := range kept {
			flux = flux.Add(n.Photon.Power)
		}
		return flux.Multiply(1.0 / (math.Pi * r2))
	}
}
