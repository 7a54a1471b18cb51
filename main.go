package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/renderer"
	"github.com/df07/go-interactive-pathtracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	scene   string
	width   int
	height  int
	frames  int
	workers int
	tile    int
	bounces int
	env     string
	help    bool
}

func parseOptions(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.scene, "scene", "test", "Scene name: "+strings.Join(scene.Names(), ", "))
	fs.IntVar(&opts.width, "width", 400, "Image width in pixels")
	fs.IntVar(&opts.height, "height", 225, "Image height in pixels")
	fs.IntVar(&opts.frames, "frames", 64, "Number of frames to accumulate")
	fs.IntVar(&opts.workers, "workers", 0, "Render workers (0 = logical core count)")
	fs.IntVar(&opts.tile, "tile", renderer.DefaultTileSize, "Tile edge in pixels")
	fs.IntVar(&opts.bounces, "bounces", 0, "Path length cap (0 = default)")
	fs.StringVar(&opts.env, "env", "", "Environment map (.hdr, .png, .jpg, .bmp, .tiff); flat sky when empty")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.help {
		fmt.Fprintln(output, "Interactive path tracer (headless)")
		fmt.Fprintln(output, "Usage: pathtracer [options]")
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Available scenes:")
		for _, info := range scene.ListScenes() {
			fmt.Fprintf(output, "  %-8s - %s\n", info.ID, info.Description)
		}
		return opts, nil
	}

	if opts.width <= 0 || opts.height <= 0 {
		return opts, fmt.Errorf("image size must be positive, got %dx%d", opts.width, opts.height)
	}
	if opts.frames <= 0 {
		return opts, fmt.Errorf("frames must be positive, got %d", opts.frames)
	}
	return opts, nil
}

// run renders opts.frames frames of the selected scene and logs the result
func run(opts options, logger core.Logger) (renderer.RenderStats, error) {
	env := scene.NewSkyEnvironment(scene.DefaultSky)
	if opts.env != "" {
		env = scene.LoadEnvironment(opts.env, logger)
	}

	s, err := scene.Build(opts.scene, env)
	if err != nil {
		return renderer.RenderStats{}, fmt.Errorf("failed to create scene: %w", err)
	}

	config := renderer.Config{
		TileWidth:  opts.tile,
		TileHeight: opts.tile,
		NumWorkers: opts.workers,
		MaxBounces: opts.bounces,
	}
	rc := renderer.NewRendererContext(s, opts.width, opts.height, config, logger)
	defer rc.Close()

	logger.Printf("Rendering scene %s with %d primitives\n", opts.scene, s.PrimitiveCount())

	startTime := time.Now()
	for frame := 0; frame < opts.frames; frame++ {
		rc.Tick()
		rc.Wait()
	}
	rc.Flush()
	renderTime := time.Since(startTime)

	stats := rc.Stats()
	logger.Printf("Render completed in %v (%d frames)\n", renderTime, stats.Frame)
	logger.Printf("Samples per pixel: %.1f (range %d - %d), average luminance %.4f\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed, stats.AverageLum)
	return stats, nil
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stdout)
	if errors.Is(err, flag.ErrHelp) || opts.help {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger := core.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	logger.Printf("Starting interactive path tracer (headless)\n")

	if _, err := run(opts, logger); err != nil {
		logger.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
