package lights

import (
	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Importance weights each light by the magnitude of its power and returns the weights with their sum
func Importance(ls []core.Light) ([]float64, float64) {
	weights := make([]float64, len(ls))
	total := 0.0
	for i, light := range ls {
		weights[i] = light.Power().Length()
		total += weights[i]
	}
	return weights, total
}

// PhotonShares splits a photon budget across lights in proportion to their
// weights. Shares are floored; the remainder goes to the heaviest light.
func PhotonShares(weights []float64, total float64, budget int) []int {
	shares := make([]int, len(weights))
	if total <= 0 || budget <= 0 {
		return shares
	}

	assigned := 0
	heaviest := 0
	for i, w := range weights {
		shares[i] = int(float64(budget) * w / total)
		assigned += shares[i]
		if w > weights[heaviest] {
			heaviest = i
		}
	}
	shares[heaviest] += budget - assigned
	return shares
}
