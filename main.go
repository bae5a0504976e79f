package main

import (
	"fmt"
	"os"
	"time"

	"github.com/df07/go-photon-raytracer/cmd"
	"github.com/df07/go-photon-raytracer/pkg/loaders"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-photon-raytracer"
	app.Usage = "render scenes using path tracing and photon mapping"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a scene file or a built-in scene into a PNG or PPM image. Options from
the scene file's [render] table are used unless overridden on the command line.
` + loaders.SceneFileHelp,
			ArgsUsage: "scene.toml | builtin-name",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame (.png or .ppm)",
				},
				cli.Float64Flag{
					Name:  "gamma",
					Value: 2.2,
					Usage: "gamma for png output, 1 writes linear values",
				},
				cli.DurationFlag{
					Name:  "progress",
					Value: 2 * time.Second,
					Usage: "log render progress at this interval (shown with -v), 0 disables it",
				},
			}, cmd.SceneFlags...),
			Action: cmd.RenderFrame,
		},
		{
			Name:        "inspect",
			Usage:       "build acceleration structures and photon maps without rendering",
			Description: `Print BVH and photon map statistics for a scene.`,
			ArgsUsage:   "scene.toml | builtin-name",
			Flags:       cmd.SceneFlags,
			Action:      cmd.Inspect,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
