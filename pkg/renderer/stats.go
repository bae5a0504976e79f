package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/photon"
)

type WorkerStat struct {
	// The worker id.
	ID int

	// First row of the block, the block height and the percentage of the frame it represents.
	StartRow     int
	BlockH       int
	FramePercent float64

	// Pixels finished by this worker.
	Pixels int

	// Render time for assigned block
	RenderTime time.Duration
}

type FrameStats struct {
	Mode            Mode
	Width           int
	Height          int
	SamplesPerPixel int

	// Individual worker stats.
	Workers []WorkerStat

	// Photon maps built before rendering, global first.
	Photons []photon.Stats

	BVH       geometry.BVHStats
	BuildTime time.Duration

	// Total render time for entire frame.
	RenderTime time.Duration
}

// FormatTable renders the per-worker statistics and the preprocessing summary as text tables
func (s FrameStats) FormatTable() string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Rows", "Block height", "% of frame", "Pixels", "Render time"})
	for _, w := range s.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", w.ID),
			fmt.Sprintf("%d-%d", w.StartRow, w.StartRow+w.BlockH-1),
			fmt.Sprintf("%d", w.BlockH),
			fmt.Sprintf("%02.1f %%", w.FramePercent),
			fmt.Sprintf("%d", w.Pixels),
			w.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", "", "", "", "TOTAL", s.RenderTime.String()})
	table.Render()

	buf.WriteString(s.formatPreprocess())
	return buf.String()
}

func (s FrameStats) formatPreprocess() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Structure", "Size", "Detail", "Build time"})
	table.Append([]string{
		"BVH",
		fmt.Sprintf("%d primitives", s.BVH.Primitives),
		fmt.Sprintf("%d nodes, %d leaves, depth %d (avg leaf %.1f), %s split",
			s.BVH.Nodes, s.BVH.Leaves, s.BVH.MaxDepth, s.BVH.AvgLeafDepth, s.BVH.Split),
		s.BuildTime.String(),
	})
	for _, p := range s.Photons {
		table.Append([]string{
			fmt.Sprintf("%s photon map", p.Type),
			fmt.Sprintf("%d photons", p.Stored),
			fmt.Sprintf("%d emitted", p.Emitted),
			p.BuildTime.String(),
		})
	}
	table.Render()
	return buf.String()
}
