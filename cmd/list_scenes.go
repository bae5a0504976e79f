package cmd

import (
	"bytes"

	"github.com/df07/go-photon-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Description"})
	for _, info := range scene.BuiltinScenes() {
		table.Append([]string{info.Name, info.Description})
	}
	table.Render()

	_, err := ctx.App.Writer.Write(buf.Bytes())
	return err
}
