// Command viewer shows a progressively refined scene in a window. Hold
// WASD, space and shift to fly; the right mouse button toggles mouse look.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/renderer"
	"github.com/df07/go-interactive-pathtracer/pkg/scene"
	"github.com/df07/go-interactive-pathtracer/viewer/controls"
)

// Game drives a RendererContext from the ebiten update loop
type Game struct {
	rc            *renderer.RendererContext
	width, height int
	pix           []byte
	looking       bool
	cursorX       int
	cursorY       int
	showStats     bool
}

func newGame(rc *renderer.RendererContext, width, height int) *Game {
	return &Game{
		rc:        rc,
		width:     width,
		height:    height,
		pix:       make([]byte, 4*width*height),
		showStats: true,
	}
}

func (g *Game) pollInput() controls.Input {
	in := controls.Input{
		Forward: ebiten.IsKeyPressed(ebiten.KeyW),
		Back:    ebiten.IsKeyPressed(ebiten.KeyS),
		Left:    ebiten.IsKeyPressed(ebiten.KeyA),
		Right:   ebiten.IsKeyPressed(ebiten.KeyD),
		Up:      ebiten.IsKeyPressed(ebiten.KeySpace),
		Down:    ebiten.IsKeyPressed(ebiten.KeyShift),
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.looking = !g.looking
		if g.looking {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		}
		g.cursorX, g.cursorY = ebiten.CursorPosition()
	}

	if g.looking {
		x, y := ebiten.CursorPosition()
		in.Looking = true
		in.LookDX = float32(x - g.cursorX)
		in.LookDY = float32(y - g.cursorY)
		g.cursorX, g.cursorY = x, y
	}
	return in
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showStats = !g.showStats
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.rc.Scene().PendingCamera.TurnAround()
	}

	dt := float32(1 / float64(ebiten.TPS()))
	controls.Apply(&g.rc.Scene().PendingCamera, g.pollInput(), dt)

	g.rc.Tick()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.rc.Buffer().WriteFrontRGBA(g.pix)
	screen.WritePixels(g.pix)

	if g.showStats {
		stats := g.rc.Stats()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS %.0f  frame %d  spp %.0f  resets %d",
			ebiten.ActualTPS(), stats.Frame, stats.AverageSamples, stats.CameraResets))
	}
}

func (g *Game) Layout(_, _ int) (int, int) { return g.width, g.height }

func main() {
	sceneName := flag.String("scene", "test", "Scene to show")
	width := flag.Int("width", 640, "Render width in pixels")
	height := flag.Int("height", 360, "Render height in pixels")
	scale := flag.Int("scale", 2, "Window pixels per render pixel")
	workers := flag.Int("workers", 0, "Render workers (0 = logical core count)")
	envPath := flag.String("env", "", "Environment map; flat sky when empty")
	flag.Parse()

	logger := core.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	env := scene.NewSkyEnvironment(scene.DefaultSky)
	if *envPath != "" {
		env = scene.LoadEnvironment(*envPath, logger)
	}

	s, err := scene.Build(*sceneName, env)
	if err != nil {
		logger.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	config := renderer.DefaultConfig()
	config.NumWorkers = *workers
	rc := renderer.NewRendererContext(s, *width, *height, config, logger)
	defer rc.Close()

	ebiten.SetWindowSize(*width**scale, *height**scale)
	ebiten.SetWindowTitle("Interactive path tracer - " + *sceneName)
	if err := ebiten.RunGame(newGame(rc, *width, *height)); err != nil {
		logger.Printf("Error: %v\n", err)
	}
}
