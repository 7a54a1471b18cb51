package renderer

import (
	"context"
	"image"
	"runtime"
	"time"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/integrator"
	"github.com/df07/go-interactive-pathtracer/pkg/scene"
)

// Config contains configuration for progressive rendering
type Config struct {
	TileWidth  int // Tile width in pixels (16 recommended)
	TileHeight int // Tile height in pixels
	NumWorkers int // Number of render workers (0 = logical core count)
	MaxBounces int // Path length cap (0 = integrator default)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileWidth:  DefaultTileSize,
		TileHeight: DefaultTileSize,
		NumWorkers: 0, // Auto-detect CPU count
		MaxBounces: integrator.DefaultMaxBounces,
	}
}

// RendererContext owns everything needed to render a scene progressively:
// the scene, the accumulation buffer, the worker pool and the frame counter.
// It is created once, driven by Tick from a single goroutine and released
// with Close.
type RendererContext struct {
	scene      *scene.Scene
	buffer     *AccumulationBuffer
	dispatcher *Dispatcher
	integrator integrator.Integrator
	grid       TileGrid
	config     Config
	frame      uint32
	resets     int
	logger     core.Logger
}

// NewRendererContext starts a worker pool for rendering s at width x height
func NewRendererContext(s *scene.Scene, width, height int, config Config, logger core.Logger) *RendererContext {
	if logger == nil {
		logger = core.NopLogger{}
	}
	pt := integrator.NewPathTracer(config.MaxBounces)
	grid := NewTileGrid(width, height, config.TileWidth, config.TileHeight)

	logger.Printf("Rendering %dx%d in %d tiles of %dx%d, max %d bounces\n",
		width, height, grid.TileCount, grid.TileWidth, grid.TileHeight, pt.MaxBounces())

	return &RendererContext{
		scene:      s,
		buffer:     NewAccumulationBuffer(width, height),
		dispatcher: NewDispatcher(config.NumWorkers, logger),
		integrator: pt,
		grid:       grid,
		config:     config,
		logger:     logger,
	}
}

// Tick starts the next pass if the previous one has finished. It presents
// the finished pass, restarts accumulation when the pending camera differs
// from the committed one and wakes the workers. It returns whether a new
// pass was started.
func (rc *RendererContext) Tick() bool {
	if !rc.dispatcher.Idle() {
		return false
	}

	rc.buffer.Present()

	// Every worker is parked, so the scene may be written
	if rc.scene.PendingCamera != rc.scene.Camera {
		rc.buffer.ClearBack()
		rc.scene.Camera = rc.scene.PendingCamera
		rc.resets++
	}

	rc.frame++
	frame := rc.frame
	s := rc.scene
	buffer := rc.buffer
	tracer := rc.integrator
	rc.dispatcher.Dispatch(rc.grid, func(bounds image.Rectangle) {
		tracer.CastRays(s, bounds, buffer, frame)
	})
	return true
}

// Wait blocks until the current pass has finished
func (rc *RendererContext) Wait() {
	for !rc.dispatcher.Idle() {
		runtime.Gosched()
	}
}

// Flush waits for the current pass and presents it, so Front reflects every
// sample rendered so far
func (rc *RendererContext) Flush() {
	rc.Wait()
	rc.buffer.Present()
}

// Scene returns the rendered scene. Input handling may write PendingCamera.
func (rc *RendererContext) Scene() *scene.Scene {
	return rc.scene
}

// Buffer returns the accumulation buffer. Only Front is safe to read while
// a pass is running.
func (rc *RendererContext) Buffer() *AccumulationBuffer {
	return rc.buffer
}

// FrontImage returns the tone mapped front buffer
func (rc *RendererContext) FrontImage() *image.RGBA {
	return rc.buffer.FrontImage()
}

// Frame returns the index of the most recent pass
func (rc *RendererContext) Frame() uint32 {
	return rc.frame
}

// Stats returns statistics for the front buffer
func (rc *RendererContext) Stats() RenderStats {
	stats := CalculateStats(rc.buffer.Front())
	stats.Frame = rc.frame
	stats.Passes = rc.dispatcher.Passes()
	stats.CameraResets = rc.resets
	return stats
}

// Close waits for the current pass and stops the workers
func (rc *RendererContext) Close() {
	rc.dispatcher.Close()
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Image      *image.RGBA
	Stats      RenderStats
	Duration   time.Duration
	IsLast     bool
}

// RenderProgressive renders up to maxPasses passes (0 = until ctx is done)
// on its own goroutine and sends a snapshot after each one. The context must
// not be used by other goroutines until both channels are closed.
func (rc *RendererContext) RenderProgressive(ctx context.Context, maxPasses int) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)

		for pass := 1; maxPasses <= 0 || pass <= maxPasses; pass++ {
			// Check if client disconnected before starting this pass
			select {
			case <-ctx.Done():
				rc.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()
			rc.Tick()
			rc.Flush()

			result := PassResult{
				PassNumber: pass,
				Image:      rc.FrontImage(),
				Stats:      rc.Stats(),
				Duration:   time.Since(startTime),
				IsLast:     pass == maxPasses,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				return
			}
		}
	}()

	return passChan, errChan
}
