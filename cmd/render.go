package cmd

import (
	"context"

	"github.com/df07/go-photon-raytracer/pkg/imageio"
	"github.com/df07/go-photon-raytracer/pkg/renderer"
	"github.com/urfave/cli"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, opts, err := loadScene(ctx)
	if err != nil {
		return err
	}
	if ctx.IsSet("gamma") {
		opts.Gamma = ctx.Float64("gamma")
	}
	opts.ProgressInterval = ctx.Duration("progress")

	fb, stats, err := renderer.New(sc, opts).Render(context.Background())
	if err != nil {
		return err
	}
	logger.Noticef("frame statistics\n%s", stats.FormatTable())

	out := ctx.String("out")
	if err := imageio.Save(out, fb, opts.Gamma); err != nil {
		return err
	}
	logger.Noticef("wrote %s", out)
	return nil
}
