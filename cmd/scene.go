package cmd

import (
	"errors"
	"strings"

	"github.com/df07/go-photon-raytracer/pkg/loaders"
	"github.com/df07/go-photon-raytracer/pkg/renderer"
	"github.com/df07/go-photon-raytracer/pkg/scene"
	"github.com/urfave/cli"
)

// Flags shared by the render and inspect commands.
var SceneFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "width",
		Usage: "frame width (defaults to the scene camera)",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "frame height (defaults to the scene camera)",
	},
	cli.IntFlag{
		Name:  "spp",
		Value: renderer.DefaultOptions().SamplesPerPixel,
		Usage: "samples per pixel",
	},
	cli.IntFlag{
		Name:  "max-depth",
		Value: renderer.DefaultOptions().MaxDepth,
		Usage: "maximum number of bounces",
	},
	cli.StringFlag{
		Name:  "mode, m",
		Value: string(renderer.DefaultOptions().Mode),
		Usage: "light transport: path, photon, hybrid or direct",
	},
	cli.IntFlag{
		Name:  "photons",
		Value: renderer.DefaultOptions().PhotonBudget,
		Usage: "global photon map budget",
	},
	cli.IntFlag{
		Name:  "caustic-photons",
		Usage: "caustic photon map budget, 0 disables the caustic map",
	},
	cli.Float64Flag{
		Name:  "radius",
		Value: renderer.DefaultOptions().SearchRadius,
		Usage: "photon search radius",
	},
	cli.IntFlag{
		Name:  "k",
		Value: renderer.DefaultOptions().Nearest,
		Usage: "photons gathered per density estimate",
	},
	cli.StringFlag{
		Name:  "kernel",
		Value: renderer.DefaultOptions().Kernel,
		Usage: "density estimation kernel: uniform or cone",
	},
	cli.StringFlag{
		Name:  "split",
		Value: renderer.DefaultOptions().Split,
		Usage: "BVH split strategy: median or sah",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: renderer.DefaultOptions().Seed,
		Usage: "random seed",
	},
	cli.IntFlag{
		Name:  "workers, w",
		Usage: "number of render workers, 0 uses every logical CPU",
	},
}

// loadScene resolves the scene argument, either a TOML scene file or the name
// of a built-in scene, and applies command line overrides to its render options.
func loadScene(ctx *cli.Context) (*scene.Scene, renderer.Options, error) {
	if ctx.NArg() != 1 {
		return nil, renderer.Options{}, errors.New("missing scene argument (a .toml file or a built-in scene name)")
	}
	arg := ctx.Args().First()

	var sc *scene.Scene
	options := renderer.DefaultOptions()
	var err error
	if strings.HasSuffix(arg, ".toml") {
		sc, options, err = loaders.LoadScene(arg)
	} else {
		sc, err = scene.Builtin(arg)
	}
	if err != nil {
		return nil, options, err
	}

	if ctx.IsSet("width") {
		options.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		options.Height = ctx.Int("height")
	}
	if ctx.IsSet("spp") {
		options.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("max-depth") {
		options.MaxDepth = ctx.Int("max-depth")
	}
	if ctx.IsSet("mode") {
		options.Mode = renderer.Mode(ctx.String("mode"))
	}
	if ctx.IsSet("photons") {
		options.PhotonBudget = ctx.Int("photons")
	}
	if ctx.IsSet("caustic-photons") {
		options.CausticBudget = ctx.Int("caustic-photons")
	}
	if ctx.IsSet("radius") {
		options.SearchRadius = ctx.Float64("radius")
	}
	if ctx.IsSet("k") {
		options.Nearest = ctx.Int("k")
	}
	if ctx.IsSet("kernel") {
		options.Kernel = ctx.String("kernel")
	}
	if ctx.IsSet("split") {
		options.Split = ctx.String("split")
	}
	if ctx.IsSet("seed") {
		options.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("workers") {
		options.Workers = ctx.Int("workers")
	}
	return sc, options, nil
}
