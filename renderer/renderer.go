package renderer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"phong-engine/config"
	"phong-engine/core"
	"phong-engine/input"
	"phong-engine/internal/opengl"
	"phong-engine/internal/window"
	"phong-engine/lighting"
	"phong-engine/math"
	"phong-engine/scene"
)

// FrameFunc is called once per frame after input has been processed and
// before the scene is drawn. Returning an error stops Run.
type FrameFunc func(frame core.Frame) error

// RenderEngine draws one lit cube with the OpenGL backend and drives the
// camera from window input.
type RenderEngine struct {
	gl      *opengl.Renderer
	window  *window.Window
	program *opengl.Program

	cfg       *config.Config
	evaluator lighting.Evaluator
	camera    *scene.Camera
	input     *input.Dispatcher
	clock     *core.FrameClock

	mesh  *scene.Mesh
	model math.Mat4

	cursorCaptured bool
}

func NewRenderEngine(win *window.Window, cfg *config.Config) (*RenderEngine, error) {
	evaluator, err := cfg.Evaluator()
	if err != nil {
		return nil, err
	}

	glRenderer, err := opengl.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}
	glRenderer.SetViewport(win.Width, win.Height)

	camera := cfg.NewCamera()
	re := &RenderEngine{
		gl:        glRenderer,
		window:    win,
		cfg:       cfg,
		evaluator: evaluator,
		camera:    camera,
		input:     input.NewDispatcher(camera, cfg.DispatcherOptions()...),
		clock:     core.NewFrameClock(),
		mesh:      scene.CreateCube(1),
		model:     math.Mat4Identity(),
	}

	if err := re.SetVariant(evaluator.Variant); err != nil {
		glRenderer.Destroy()
		return nil, err
	}
	if _, err := glRenderer.UploadMesh(re.mesh); err != nil {
		re.Destroy()
		return nil, fmt.Errorf("failed to upload cube: %w", err)
	}

	win.OnResize(func(width, height int) {
		glRenderer.SetViewport(width, height)
		slog.Debug("Framebuffer resized", "width", width, "height", height)
	})
	re.bindInput()
	re.CaptureCursor(true)

	slog.Info("Render engine initialized (OpenGL)", "variant", evaluator.Variant)
	return re, nil
}

func (re *RenderEngine) Camera() *scene.Camera {
	return re.camera
}

func (re *RenderEngine) Dispatcher() *input.Dispatcher {
	return re.input
}

func (re *RenderEngine) Variant() lighting.Variant {
	return re.evaluator.Variant
}

// SetVariant switches the lighting model, rebuilding the shader program and
// uploading the scene-constant uniforms once.
func (re *RenderEngine) SetVariant(v lighting.Variant) error {
	e := re.evaluator
	e.Variant = v
	if err := e.Validate(); err != nil {
		return fmt.Errorf("variant %s: %w", v, err)
	}

	prog, err := opengl.NewProgram(lighting.VertexShaderSource(), lighting.FragmentShaderSource(v))
	if err != nil {
		return fmt.Errorf("%s shader: %w", v, err)
	}
	if re.program != nil {
		re.program.Delete()
	}
	re.program = prog
	re.evaluator = e

	re.gl.UseProgram(prog)
	e.SetUniforms(prog)

	re.window.SetTitle(fmt.Sprintf("%s (%s)", re.cfg.Window.Title, v))
	slog.Info("Lighting variant selected", "variant", v)
	return nil
}

// SetModel sets the cube's model matrix.
func (re *RenderEngine) SetModel(m math.Mat4) {
	re.model = m
}

// CaptureCursor grabs the mouse for free look, or releases it.
func (re *RenderEngine) CaptureCursor(capture bool) {
	re.cursorCaptured = capture
	re.window.CaptureCursor(capture)
	re.input.ResetCursor()
}

// Run loops until the window is closed, Escape is pressed, ctx is done, or
// fn fails. Key events are applied during PollEvents with the previous
// frame's delta.
func (re *RenderEngine) Run(ctx context.Context, fn FrameFunc) error {
	for !re.window.ShouldClose() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		re.window.PollEvents()

		frame := re.clock.Tick(time.Now())
		re.input.SetFrameDelta(frame.Delta)

		if fn != nil {
			if err := fn(frame); err != nil {
				return err
			}
		}

		if err := re.Render(); err != nil {
			return err
		}
		re.window.SwapBuffers()
	}
	return nil
}

// Render draws one frame into the back buffer.
func (re *RenderEngine) Render() error {
	re.gl.Clear(re.cfg.ClearColor())

	width, height := re.gl.Viewport()
	if width == 0 || height == 0 {
		return nil
	}

	view := re.camera.ViewMatrix()
	projection := re.cfg.Projection(re.camera.Zoom(), float32(width)/float32(height))
	if !scene.Visible(re.mesh, re.model, view.Mul(projection)) {
		return nil
	}

	re.gl.UseProgram(re.program)
	re.program.SetMat4(lighting.UniformModel, re.model)
	re.program.SetMat4(lighting.UniformView, view)
	re.program.SetMat4(lighting.UniformProjection, projection)
	if re.evaluator.Variant.Terms().Has(lighting.TermSpecular) {
		re.program.SetVec3(lighting.UniformViewPos, re.camera.Position())
	}

	return re.gl.DrawMesh(re.mesh)
}

// FPS returns the frame rate measured over the last second.
func (re *RenderEngine) FPS() float64 {
	return re.clock.FPS()
}

func (re *RenderEngine) Destroy() {
	re.gl.Destroy()
	if re.program != nil {
		re.program.Delete()
	}
}
