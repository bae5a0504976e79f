package material

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// CookTorrance is a microfacet material: a Lambertian base under a GGX specular layer.
// Kd and Ks are the diffuse and specular coefficients; Ks doubles as Fresnel F0.
type CookTorrance struct {
	Kd        core.Vec3
	Ks        core.Vec3
	Roughness float64
}

// NewCookTorrance creates a new Cook-Torrance material
func NewCookTorrance(kd, ks core.Vec3, roughness float64) *CookTorrance {
	return &CookTorrance{Kd: kd, Ks: ks, Roughness: roughness}
}

// distributionGGX is the GGX normal distribution D(h)
func distributionGGX(nDotH, roughness float64) float64 {
	if nDotH <= 0 {
		return 0
	}
	alpha := roughness * roughness
	alpha2 := alpha * alpha
	nDotH2 := nDotH * nDotH
	denom := nDotH2*alpha2 + (1.0 - nDotH2)
	return alpha2 / (math.Pi * denom * denom)
}

// partialGeometryGGX is the Smith G1 term for one direction
func partialGeometryGGX(v, n, h core.Vec3, alpha float64) float64 {
	vDotH := math.Max(v.Dot(h), 0)
	nDotV := math.Max(v.Dot(n), 0)
	if nDotV == 0 || vDotH == 0 {
		return 0
	}
	vDotH2 := vDotH * vDotH
	tan2 := (1.0 - vDotH2) / vDotH2
	return 2.0 / (1.0 + math.Sqrt(1.0+alpha*alpha*tan2))
}

// Shade evaluates (1-F)·Kd/π + D·G·F / (4·NdotL·NdotV)
func (c *CookTorrance) Shade(ray core.Ray, point, normal, toLight core.Vec3) core.Vec3 {
	view := viewDirection(ray, point)
	nDotL := normal.Dot(toLight)
	nDotV := normal.Dot(view)
	if nDotL <= 0 || nDotV <= 0 {
		return core.Vec3{}
	}

	half := toLight.Add(view).Normalize()
	d := distributionGGX(normal.Dot(half), c.Roughness)
	g := partialGeometryGGX(view, normal, half, c.Roughness) * partialGeometryGGX(toLight, normal, half, c.Roughness)
	f := FresnelSchlick(math.Max(view.Dot(half), 0), c.Ks)

	specular := f.Multiply(d * g / (4.0*nDotL*nDotV + core.Epsilon))
	diffuse := core.Splat(1).Subtract(f).MultiplyVec(c.Kd).Multiply(1.0 / math.Pi)
	return diffuse.Add(specular)
}

func (c *CookTorrance) Emitted() core.Vec3 {
	return core.Vec3{}
}

func (c *CookTorrance) Kind() core.SurfaceKind {
	return core.Generic
}

// Reflectance approximates the albedo by Kd + Fresnel at the viewing angle
func (c *CookTorrance) Reflectance(ray core.Ray, normal core.Vec3) core.Vec3 {
	cosTheta := math.Abs(ray.Direction.Normalize().Dot(normal))
	return clampReflectance(c.Kd.Add(FresnelSchlick(cosTheta, c.Ks)))
}
