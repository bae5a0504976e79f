package renderer

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/integrator"
	"github.com/df07/go-photon-raytracer/pkg/log"
	"github.com/df07/go-photon-raytracer/pkg/photon"
	"github.com/df07/go-photon-raytracer/pkg/scene"
)

var logger = log.New("renderer")

// Renderer renders one frame of a scene with a fixed set of options
type Renderer struct {
	scene   *scene.Scene
	options Options
}

// New creates a renderer. Options are validated when rendering starts.
func New(sc *scene.Scene, options Options) *Renderer {
	return &Renderer{scene: sc, options: options}
}

// Options returns the renderer options
func (r *Renderer) Options() Options {
	return r.options
}

// Prepare validates the options, builds the BVH and any photon maps, and
// returns the integrator to render with. Everything it builds is read-only
// afterwards.
func (r *Renderer) Prepare() (integrator.Integrator, FrameStats, error) {
	stats := FrameStats{Mode: r.options.Mode, SamplesPerPixel: r.options.SamplesPerPixel}

	if r.scene == nil {
		return nil, stats, ErrNoScene
	}
	if err := r.options.Validate(); err != nil {
		return nil, stats, err
	}
	if r.scene.Camera == nil {
		return nil, stats, ErrNoCamera
	}

	config := r.scene.CameraConfig
	if r.options.Width > 0 {
		config.Width = r.options.Width
	}
	if r.options.Height > 0 {
		config.Height = r.options.Height
	}
	config.Jitter = r.options.SamplesPerPixel > 1
	if config.Width <= 0 || config.Height <= 0 {
		return nil, stats, invalid("frame size %dx%d", config.Width, config.Height)
	}
	r.scene.SetCamera(config)
	stats.Width, stats.Height = config.Width, config.Height

	split, _ := geometry.ParseSplit(r.options.Split)
	start := time.Now()
	if err := r.scene.Preprocess(geometry.WithSplit(split)); err != nil {
		return nil, stats, fmt.Errorf("building BVH: %w", err)
	}
	stats.BuildTime = time.Since(start)
	stats.BVH = r.scene.BVH.Stats()
	logger.Infof("BVH over %d primitives built in %v", stats.BVH.Primitives, stats.BuildTime)

	switch r.options.Mode {
	case ModePath:
		pt := integrator.NewPathTracer(r.scene, r.options.MaxDepth)
		pt.RRDepth = r.options.RRDepth
		pt.RRProbability = r.options.RRProbability
		return pt, stats, nil

	case ModeDirect:
		return integrator.NewDirect(r.scene), stats, nil
	}

	global, caustic, err := r.buildPhotonMaps()
	if err != nil {
		return nil, stats, err
	}
	stats.Photons = append(stats.Photons, global.Stats())
	if caustic != nil {
		stats.Photons = append(stats.Photons, caustic.Stats())
	}

	pm := integrator.NewPhotonMapper(r.scene, global, caustic, r.options.MaxDepth)
	pm.Radius = r.options.SearchRadius
	pm.K = r.options.Nearest
	pm.CausticWeight = r.options.CausticWeight
	if r.options.Mode == ModeHybrid {
		return integrator.NewHybrid(pm), stats, nil
	}
	return pm, stats, nil
}

// buildPhotonMaps traces the global map and, when it has a budget, the caustic
// map. Both use samplers derived from the seed so reruns are identical.
func (r *Renderer) buildPhotonMaps() (*photon.Map, *photon.Map, error) {
	kernel, _ := photon.ParseKernel(r.options.Kernel)

	// Photon mode adds the caustic map at every gather, so the global map
	// leaves those paths to it. Hybrid reads the global map only after a
	// diffuse bounce, where caustics are not added separately.
	global := photon.NewMap(photon.Options{
		IndirectOnly:     true,
		SkipCausticPaths: r.options.Mode == ModePhoton && r.options.CausticBudget > 0,
		MaxBounces:       r.options.MaxPhotonBounces,
		Kernel:           kernel,
	})
	if err := global.Build(r.scene, r.options.PhotonBudget, core.NewSeededSampler(r.options.Seed)); err != nil {
		return nil, nil, fmt.Errorf("building global photon map: %w", err)
	}

	if r.options.CausticBudget == 0 {
		return global, nil, nil
	}
	caustic := photon.NewMap(photon.Options{
		Caustic:    true,
		MaxBounces: r.options.MaxPhotonBounces,
		Kernel:     kernel,
	})
	if err := caustic.Build(r.scene, r.options.CausticBudget, core.NewSeededSampler(r.options.Seed+1)); err != nil {
		return nil, nil, fmt.Errorf("building caustic photon map: %w", err)
	}
	return global, caustic, nil
}

// Render renders the frame. Rows are split into one block per worker and
// every row gets its own sampler, so the output only depends on the seed. If
// any worker fails the whole render fails and no framebuffer is returned.
func (r *Renderer) Render(ctx context.Context) (*Framebuffer, FrameStats, error) {
	estimator, stats, err := r.Prepare()
	if err != nil {
		return nil, stats, err
	}

	width, height := stats.Width, stats.Height
	fb := NewFramebuffer(width, height)
	blocks := RowBlocks(height, workerCount(r.options.Workers))
	stats.Workers = make([]WorkerStat, len(blocks))

	logger.Infof("rendering %dx%d at %d spp in %s mode on %d workers",
		width, height, r.options.SamplesPerPixel, r.options.Mode, len(blocks))

	var done int64
	stopMonitor := r.monitorProgress(&done, int64(width*height))
	defer stopMonitor()

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for i, block := range blocks {
		i, block := i, block
		g.Go(func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					err = fmt.Errorf("%w: worker %d: %v", ErrWorkerPanic, i, p)
				}
			}()

			workerStart := time.Now()
			for y := block.Start; y < block.End; y++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				r.renderRow(estimator, fb, y)
				atomic.AddInt64(&done, int64(width))
			}
			stats.Workers[i] = WorkerStat{
				ID:           i,
				StartRow:     block.Start,
				BlockH:       block.Rows(),
				FramePercent: 100 * float64(block.Rows()) / float64(height),
				Pixels:       block.Rows() * width,
				RenderTime:   time.Since(workerStart),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Errorf("render failed: %v", err)
		return nil, stats, err
	}
	stats.RenderTime = time.Since(start)
	logger.Noticef("rendered %dx%d in %v", width, height, stats.RenderTime)
	return fb, stats, nil
}

// renderRow renders framebuffer row y. The camera counts rows from the bottom.
func (r *Renderer) renderRow(estimator integrator.Integrator, fb *Framebuffer, y int) {
	sampler := core.NewSeededSampler(rowSeed(r.options.Seed, y))
	camera := r.scene.Camera
	cameraY := fb.Height - 1 - y
	spp := r.options.SamplesPerPixel

	for x := 0; x < fb.Width; x++ {
		color := core.Vec3{}
		for s := 0; s < spp; s++ {
			ray := camera.GenerateRay(x, cameraY, sampler)
			sample := estimator.Radiance(ray, sampler)
			if !sample.IsFinite() {
				continue
			}
			color = color.Add(sample)
		}
		fb.Set(x, y, color.Multiply(1.0/float64(spp)))
	}
}

// monitorProgress logs the completed fraction until the returned stop function is called
func (r *Renderer) monitorProgress(done *int64, total int64) func() {
	interval := r.options.ProgressInterval
	if interval <= 0 || total == 0 {
		return func() {}
	}

	stop := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				n := atomic.LoadInt64(done)
				logger.Infof("progress: %.1f%% (%d/%d pixels)", 100*float64(n)/float64(total), n, total)
			}
		}
	}()
	return func() {
		close(stop)
		<-finished
	}
}

// rowSeed mixes the frame seed and a row index into an independent sampler seed
func rowSeed(seed int64, row int) int64 {
	z := uint64(seed) + uint64(row+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}

// workerCount resolves the configured worker count, defaulting to the number of logical CPUs
func workerCount(configured int) int {
	if configured > 0 {
		return configured
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}
