package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/integrator"
	"github.com/df07/go-photon-raytracer/pkg/photon"
)

// Mode selects the light transport estimator
type Mode string

const (
	ModePath   Mode = "path"
	ModePhoton Mode = "photon"
	ModeHybrid Mode = "hybrid"
	ModeDirect Mode = "direct"
)

// Modes lists every supported mode
var Modes = []Mode{ModePath, ModePhoton, ModeHybrid, ModeDirect}

// usesPhotons reports whether the mode needs photon maps
func (m Mode) usesPhotons() bool {
	return m == ModePhoton || m == ModeHybrid
}

type Options struct {
	// Frame dims. Zero keeps the scene camera's resolution.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// Number of samples.
	SamplesPerPixel int `toml:"spp"`

	// Bounce cap, and the depth and survival probability for russian roulette.
	MaxDepth      int     `toml:"max_depth"`
	RRDepth       int     `toml:"rr_depth"`
	RRProbability float64 `toml:"rr_probability"`

	Mode Mode `toml:"mode"`

	// Photon mapping.
	PhotonBudget     int     `toml:"photons"`
	CausticBudget    int     `toml:"caustic_photons"`
	MaxPhotonBounces int     `toml:"max_photon_bounces"`
	SearchRadius     float64 `toml:"search_radius"`
	Nearest          int     `toml:"nearest"`
	Kernel           string  `toml:"kernel"`
	CausticWeight    float64 `toml:"caustic_weight"`

	// BVH split strategy, "median" or "sah".
	Split string `toml:"bvh_split"`

	Seed int64 `toml:"seed"`

	// Zero uses one worker per logical CPU.
	Workers int `toml:"workers"`

	// Gamma used when converting to 8-bit output.
	Gamma float64 `toml:"gamma"`

	// How often progress is logged. Zero disables progress logging.
	ProgressInterval time.Duration `toml:"-"`
}

// DefaultOptions returns the settings used when nothing else is configured
func DefaultOptions() Options {
	return Options{
		SamplesPerPixel:  16,
		MaxDepth:         5,
		RRDepth:          integrator.DefaultRRDepth,
		RRProbability:    integrator.DefaultRRProbability,
		Mode:             ModePath,
		PhotonBudget:     10000,
		CausticBudget:    0,
		MaxPhotonBounces: photon.DefaultMaxBounces,
		SearchRadius:     integrator.DefaultSearchRadius,
		Nearest:          integrator.DefaultNearest,
		Kernel:           photon.KernelUniform.String(),
		CausticWeight:    integrator.DefaultCausticWeight,
		Split:            geometry.SplitMedian.String(),
		Seed:             1,
		Gamma:            2.2,
		ProgressInterval: 2 * time.Second,
	}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidOptions, fmt.Sprintf(format, args...))
}

// Validate checks every option and returns an ErrInvalidOptions error for the first bad one
func (o Options) Validate() error {
	if o.Width < 0 || o.Height < 0 {
		return invalid("negative frame size %dx%d", o.Width, o.Height)
	}
	if o.SamplesPerPixel <= 0 {
		return invalid("samples per pixel must be positive, got %d", o.SamplesPerPixel)
	}
	if o.MaxDepth < 0 || o.RRDepth < 0 {
		return invalid("depths must not be negative")
	}
	if o.RRProbability <= 0 || o.RRProbability > 1 {
		return invalid("russian roulette probability must be in (0,1], got %v", o.RRProbability)
	}

	known := false
	for _, m := range Modes {
		known = known || m == o.Mode
	}
	if !known {
		return invalid("unknown mode %q", o.Mode)
	}

	if o.PhotonBudget < 0 || o.CausticBudget < 0 {
		return invalid("photon budgets must not be negative")
	}
	if o.Mode.usesPhotons() {
		if o.SearchRadius <= 0 || o.Nearest <= 0 {
			return invalid("photon search needs a positive radius and count")
		}
		if o.MaxPhotonBounces <= 0 {
			return invalid("max photon bounces must be positive, got %d", o.MaxPhotonBounces)
		}
	}
	if o.CausticWeight < 0 {
		return invalid("caustic weight must not be negative")
	}
	if _, err := photon.ParseKernel(o.Kernel); err != nil {
		return invalid("%v", err)
	}
	if _, err := geometry.ParseSplit(o.Split); err != nil {
		return invalid("%v", err)
	}
	if o.Workers < 0 {
		return invalid("workers must not be negative, got %d", o.Workers)
	}
	if o.Gamma <= 0 {
		return invalid("gamma must be positive, got %v", o.Gamma)
	}
	return nil
}
