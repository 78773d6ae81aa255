// Package input turns window events into camera updates. Window backends
// translate their native key codes to Key and call the Dispatcher from the
// render thread.
package input

import (
	"log/slog"

	"phong-engine/scene"
)

// Key is a backend-neutral key code.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyTab
	Key1
	Key2
	Key3
)

const (
	// DefaultScrollScale suits backends reporting wheel notches.
	DefaultScrollScale = float32(1)

	// PixelScrollScale suits backends reporting wheel deltas in pixels.
	PixelScrollScale = float32(0.01)
)

// CameraController is the part of scene.Camera the dispatcher drives.
type CameraController interface {
	ProcessKeyboard(direction scene.Movement, deltaSeconds float32)
	ProcessMouseMovement(dx, dy float32, constrainPitch bool)
	ProcessMouseScroll(dy float32)
}

// DefaultBindings maps WASD and the arrow keys to camera movement.
func DefaultBindings() map[Key]scene.Movement {
	return map[Key]scene.Movement{
		KeyW:     scene.Forward,
		KeyS:     scene.Backward,
		KeyA:     scene.Left,
		KeyD:     scene.Right,
		KeyUp:    scene.Forward,
		KeyDown:  scene.Backward,
		KeyLeft:  scene.Left,
		KeyRight: scene.Right,
	}
}

// Dispatcher applies each event to the camera as soon as it arrives. It is
// not safe for concurrent use.
type Dispatcher struct {
	camera         CameraController
	bindings       map[Key]scene.Movement
	invertY        bool
	constrainPitch bool
	scrollScale    float32

	frameDelta float32

	hasCursor    bool
	lastX, lastY float64
}

type Option func(*Dispatcher)

// WithInvertY passes vertical mouse deltas through unchanged, so moving the
// mouse down looks up.
func WithInvertY(invert bool) Option {
	return func(d *Dispatcher) { d.invertY = invert }
}

func WithScrollScale(scale float32) Option {
	return func(d *Dispatcher) { d.scrollScale = scale }
}

// WithBindings replaces the default key bindings.
func WithBindings(bindings map[Key]scene.Movement) Option {
	return func(d *Dispatcher) { d.bindings = bindings }
}

// WithConstrainPitch controls the pitch clamp passed to the camera.
// Enabled by default.
func WithConstrainPitch(constrain bool) Option {
	return func(d *Dispatcher) { d.constrainPitch = constrain }
}

func NewDispatcher(camera CameraController, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		camera:         camera,
		bindings:       DefaultBindings(),
		constrainPitch: true,
		scrollScale:    DefaultScrollScale,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetFrameDelta records the duration of the last frame in seconds. Key
// events are applied with this value.
func (d *Dispatcher) SetFrameDelta(seconds float32) {
	d.frameDelta = seconds
}

func (d *Dispatcher) FrameDelta() float32 {
	return d.frameDelta
}

// KeyDown moves the camera if key is bound and reports whether it was.
func (d *Dispatcher) KeyDown(key Key) bool {
	dir, ok := d.bindings[key]
	if !ok {
		return false
	}
	d.camera.ProcessKeyboard(dir, d.frameDelta)
	return true
}

// MouseMoved takes relative deltas in screen pixels, y growing downward.
func (d *Dispatcher) MouseMoved(dx, dy float32) {
	if !d.invertY {
		dy = -dy
	}
	d.camera.ProcessMouseMovement(dx, dy, d.constrainPitch)
}

// CursorMoved takes absolute cursor positions. The first position after
// construction or ResetCursor only primes the tracker.
func (d *Dispatcher) CursorMoved(x, y float64) {
	if !d.hasCursor {
		d.lastX, d.lastY = x, y
		d.hasCursor = true
		slog.Debug("Cursor tracking started", "x", x, "y", y)
		return
	}
	dx, dy := x-d.lastX, y-d.lastY
	d.lastX, d.lastY = x, y
	if dx == 0 && dy == 0 {
		return
	}
	d.MouseMoved(float32(dx), float32(dy))
}

// ResetCursor forgets the last cursor position, e.g. after the cursor was
// released and captured again.
func (d *Dispatcher) ResetCursor() {
	d.hasCursor = false
}

// Scrolled takes a wheel delta, positive away from the user, and zooms in.
func (d *Dispatcher) Scrolled(dy float32) {
	d.camera.ProcessMouseScroll(dy * d.scrollScale)
}
