package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"phong-engine/config"
	"phong-engine/core"
	"phong-engine/input"
	"phong-engine/lighting"
	"phong-engine/math"
	"phong-engine/raster"
	"phong-engine/scene"
)

var ebitenKeys = map[ebiten.Key]input.Key{
	ebiten.KeyW:          input.KeyW,
	ebiten.KeyA:          input.KeyA,
	ebiten.KeyS:          input.KeyS,
	ebiten.KeyD:          input.KeyD,
	ebiten.KeyArrowUp:    input.KeyUp,
	ebiten.KeyArrowDown:  input.KeyDown,
	ebiten.KeyArrowLeft:  input.KeyLeft,
	ebiten.KeyArrowRight: input.KeyRight,
}

var variantKeys = map[ebiten.Key]lighting.Variant{
	ebiten.Key1: lighting.VariantAmbient,
	ebiten.Key2: lighting.VariantDiffuse,
	ebiten.Key3: lighting.VariantPhong,
}

// Game renders the cube with the CPU rasterizer and blits the result.
type Game struct {
	ctx context.Context
	cfg *config.Config

	camera    *scene.Camera
	input     *input.Dispatcher
	clock     *core.FrameClock
	evaluator lighting.Evaluator

	raster *raster.Rasterizer
	fb     *raster.Framebuffer
	mesh   *scene.Mesh
	stats  raster.Stats

	captured bool
	err      error
}

func NewGame(ctx context.Context, cfg *config.Config) (*Game, error) {
	evaluator, err := cfg.Evaluator()
	if err != nil {
		return nil, err
	}
	fb, err := raster.NewFramebuffer(cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return nil, err
	}

	var opts []raster.Option
	if cfg.Render.Workers > 0 {
		opts = append(opts, raster.WithWorkers(cfg.Render.Workers))
	}
	if cfg.Render.BandHeight > 0 {
		opts = append(opts, raster.WithBandHeight(cfg.Render.BandHeight))
	}

	camera := cfg.NewCamera()
	g := &Game{
		ctx:       ctx,
		cfg:       cfg,
		camera:    camera,
		input:     input.NewDispatcher(camera, cfg.DispatcherOptions()...),
		clock:     core.NewFrameClock(),
		evaluator: evaluator,
		raster:    raster.NewRasterizer(opts...),
		fb:        fb,
		mesh:      scene.CreateCube(1),
	}
	g.capture(true)
	return g, nil
}

// Close releases the rasterizer workers.
func (g *Game) Close() {
	g.raster.Close()
}

func (g *Game) capture(on bool) {
	g.captured = on
	if on {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
	g.input.ResetCursor()
}

func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	frame := g.clock.Tick(time.Now())
	g.input.SetFrameDelta(frame.Delta)

	for ek, key := range ebitenKeys {
		if ebiten.IsKeyPressed(ek) {
			g.input.KeyDown(key)
		}
	}
	for ek, v := range variantKeys {
		if inpututil.IsKeyJustPressed(ek) && v != g.evaluator.Variant {
			g.setVariant(v)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.capture(!g.captured)
	}

	if g.captured {
		x, y := ebiten.CursorPosition()
		g.input.CursorMoved(float64(x), float64(y))
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.input.Scrolled(float32(dy))
	}
	return nil
}

func (g *Game) setVariant(v lighting.Variant) {
	e := g.evaluator
	e.Variant = v
	if err := e.Validate(); err != nil {
		slog.Error("Failed to switch variant", "variant", v, "error", err)
		return
	}
	g.evaluator = e
	slog.Info("Lighting variant selected", "variant", v)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.fb.Clear(g.cfg.ClearColor())

	u := raster.Uniforms{
		Model:        math.Mat4Identity(),
		View:         g.camera.ViewMatrix(),
		Projection:   g.cfg.Projection(g.camera.Zoom(), g.fb.Aspect()),
		ViewPosition: g.camera.Position(),
	}
	stats, err := g.raster.Draw(g.fb, g.mesh, u, g.evaluator)
	if err != nil {
		g.err = fmt.Errorf("rasterize: %w", err)
		return
	}
	g.stats = stats

	screen.WritePixels(g.fb.Color.Pix)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f  %s  fragments: %d\n[1-3] variant  [Tab] cursor  [Esc] quit",
		ebiten.ActualFPS(), g.evaluator.Variant, g.stats.Fragments))
}

// Layout keeps a fixed render resolution; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.fb.Width, g.fb.Height
}
