package integrator

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// NextEventEstimation samples one light by importance and returns its
// contribution at point divided by the probability of picking it. normal must
// face the incoming ray.
func NextEventEstimation(scene core.SceneView, point, normal core.Vec3, ray core.Ray, mat core.Material, sampler core.Sampler) core.Vec3 {
	sceneLights := scene.Lights()
	if len(sceneLights) == 0 {
		return core.Vec3{}
	}
	weights, total := scene.LightImportance()
	index, pdf := core.PickWeighted(weights, total, sampler.Get1D())
	if index < 0 || pdf < minPDF {
		return core.Vec3{}
	}
	return lightContribution(scene, sceneLights[index], point, normal, ray, mat).Multiply(1.0 / pdf)
}

// AllLightsDirect sums the unoccluded contribution of every light at point
func AllLightsDirect(scene core.SceneView, point, normal core.Vec3, ray core.Ray, mat core.Material) core.Vec3 {
	total := core.Vec3{}
	for _, light := range scene.Lights() {
		total = total.Add(lightContribution(scene, light, point, normal, ray, mat))
	}
	return total
}

// lightContribution returns emitted·BRDF·cosθ for one light, or zero when the
// light is behind the surface or occluded.
func lightContribution(scene core.SceneView, light core.Light, point, normal core.Vec3, ray core.Ray, mat core.Material) core.Vec3 {
	toLight := light.Position().Subtract(point)
	distance := toLight.Length()
	if distance <= core.Epsilon {
		return core.Vec3{}
	}
	direction := toLight.Multiply(1.0 / distance)

	cosTheta := math.Max(0, direction.Dot(normal))
	if cosTheta == 0 {
		return core.Vec3{}
	}

	if scene.ShadowsEnabled() && occluded(scene, point, direction, distance) {
		return core.Vec3{}
	}

	emitted := light.EmittedLight(toLight)
	brdf := mat.Shade(ray, point, normal, direction)
	return emitted.MultiplyVec(brdf).Multiply(cosTheta)
}

// occluded casts a shadow ray and reports whether anything lies before the light
func occluded(scene core.SceneView, point, direction core.Vec3, distance float64) bool {
	shadow := core.NewRayOffset(point, direction)
	hit := scene.ClosestIntersection(shadow)
	return hit.Ok() && hit.T < distance-core.Epsilon
}
