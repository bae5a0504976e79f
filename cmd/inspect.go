package cmd

import (
	"bytes"
	"fmt"

	"github.com/df07/go-photon-raytracer/pkg/renderer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Build the BVH and photon maps for a scene and print their statistics without rendering.
func Inspect(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, opts, err := loadScene(ctx)
	if err != nil {
		return err
	}

	_, stats, err := renderer.New(sc, opts).Prepare()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Primitives", "Lights", "Materials", "Mode", "Frame"})
	table.Append([]string{
		sc.Name,
		fmt.Sprintf("%d", sc.PrimitiveCount()),
		fmt.Sprintf("%d", len(sc.Lights())),
		fmt.Sprintf("%d", len(sc.Materials())),
		string(stats.Mode),
		fmt.Sprintf("%dx%d @ %d spp", stats.Width, stats.Height, stats.SamplesPerPixel),
	})
	table.Render()

	buf.WriteString(stats.FormatTable())
	_, err = ctx.App.Writer.Write(buf.Bytes())
	return err
}
