package scene

import (
	"github.com/chewxy/math32"

	reMath "phong-engine/math"
)

// Movement is a keyboard-driven camera translation direction.
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
)

func (m Movement) String() string {
	switch m {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Camera defaults.
const (
	DefaultYaw               = float32(-90.0)
	DefaultPitch             = float32(0.0)
	DefaultMovementSpeed     = float32(2.5)
	DefaultMouseSensitivity  = float32(0.1)
	DefaultScrollSensitivity = float32(1.0)
	DefaultZoom              = float32(45.0)

	MaxPitch = float32(89.0)
	MinZoom  = float32(1.0)
	MaxZoom  = float32(45.0)
)

var worldUp = reMath.Vec3Up

// Camera is a free-look, fly-style camera driven by yaw and pitch in
// degrees. Front, Right and Up are always re-derived from yaw/pitch, so they
// stay an orthonormal basis; the fields are private to keep it that way.
type Camera struct {
	position reMath.Vec3
	front    reMath.Vec3
	up       reMath.Vec3
	right    reMath.Vec3

	yaw   float32
	pitch float32
	zoom  float32

	movementSpeed     float32
	mouseSensitivity  float32
	scrollSensitivity float32
}

// CameraOption configures a Camera at construction.
type CameraOption func(*Camera)

func WithYaw(degrees float32) CameraOption {
	return func(c *Camera) { c.yaw = degrees }
}

// WithPitch sets the initial pitch, clamped like mouse input.
func WithPitch(degrees float32) CameraOption {
	return func(c *Camera) { c.pitch = reMath.Clamp(degrees, -MaxPitch, MaxPitch) }
}

func WithMovementSpeed(unitsPerSecond float32) CameraOption {
	return func(c *Camera) { c.movementSpeed = unitsPerSecond }
}

func WithMouseSensitivity(degreesPerPixel float32) CameraOption {
	return func(c *Camera) { c.mouseSensitivity = degreesPerPixel }
}

func WithScrollSensitivity(degreesPerStep float32) CameraOption {
	return func(c *Camera) { c.scrollSensitivity = degreesPerStep }
}

// WithZoom sets the initial vertical field of view, clamped to [MinZoom, MaxZoom].
func WithZoom(degrees float32) CameraOption {
	return func(c *Camera) { c.zoom = reMath.Clamp(degrees, MinZoom, MaxZoom) }
}

func NewCamera(position reMath.Vec3, options ...CameraOption) *Camera {
	c := &Camera{
		position:          position,
		yaw:               DefaultYaw,
		pitch:             DefaultPitch,
		zoom:              DefaultZoom,
		movementSpeed:     DefaultMovementSpeed,
		mouseSensitivity:  DefaultMouseSensitivity,
		scrollSensitivity: DefaultScrollSensitivity,
	}
	for _, option := range options {
		option(c)
	}
	c.updateVectors()
	return c
}

// ProcessKeyboard moves the camera along its own front or right axis. The
// full front vector is used, so looking up and moving forward climbs.
// Non-finite deltas are ignored.
func (c *Camera) ProcessKeyboard(direction Movement, deltaSeconds float32) {
	if !reMath.IsFinite(deltaSeconds) {
		return
	}
	velocity := c.movementSpeed * deltaSeconds
	switch direction {
	case Forward:
		c.position = c.position.Add(c.front.Mul(velocity))
	case Backward:
		c.position = c.position.Sub(c.front.Mul(velocity))
	case Left:
		c.position = c.position.Sub(c.right.Mul(velocity))
	case Right:
		c.position = c.position.Add(c.right.Mul(velocity))
	}
}

// ProcessMouseMovement applies raw per-event pointer deltas to yaw and pitch.
// Positive yOffset raises the pitch; input backends convert screen-space
// deltas before calling. An event with a NaN or infinite delta is dropped
// so one bad sample cannot poison the orientation.
func (c *Camera) ProcessMouseMovement(xOffset, yOffset float32, constrainPitch bool) {
	if !reMath.IsFinite(xOffset) || !reMath.IsFinite(yOffset) {
		return
	}
	c.yaw += xOffset * c.mouseSensitivity
	c.pitch += yOffset * c.mouseSensitivity

	if constrainPitch {
		c.pitch = reMath.Clamp(c.pitch, -MaxPitch, MaxPitch)
	}

	c.updateVectors()
}

// ProcessMouseScroll narrows (positive yOffset) or widens the field of view.
// Non-finite offsets are ignored.
func (c *Camera) ProcessMouseScroll(yOffset float32) {
	if !reMath.IsFinite(yOffset) {
		return
	}
	c.zoom = reMath.Clamp(c.zoom-yOffset*c.scrollSensitivity, MinZoom, MaxZoom)
}

// ViewMatrix returns the look-at transform for the current state.
func (c *Camera) ViewMatrix() reMath.Mat4 {
	return reMath.Mat4LookAt(c.position, c.position.Add(c.front), c.up)
}

func (c *Camera) Position() reMath.Vec3     { return c.position }
func (c *Camera) Front() reMath.Vec3        { return c.front }
func (c *Camera) Up() reMath.Vec3           { return c.up }
func (c *Camera) Right() reMath.Vec3        { return c.right }
func (c *Camera) Yaw() float32              { return c.yaw }
func (c *Camera) Pitch() float32            { return c.pitch }
func (c *Camera) MovementSpeed() float32    { return c.movementSpeed }
func (c *Camera) MouseSensitivity() float32 { return c.mouseSensitivity }

// Zoom is the vertical field of view in degrees, for building a projection.
func (c *Camera) Zoom() float32 { return c.zoom }

func (c *Camera) updateVectors() {
	yawRad := reMath.DegToRad(c.yaw)
	pitchRad := reMath.DegToRad(c.pitch)
	sinYaw, cosYaw := math32.Sincos(yawRad)
	sinPitch, cosPitch := math32.Sincos(pitchRad)

	c.front = reMath.Vec3{
		X: cosPitch * cosYaw,
		Y: sinPitch,
		Z: cosPitch * sinYaw,
	}.Normalize()

	right := c.front.Cross(worldUp)
	if right.LengthSqr() < 1e-12 {
		// Looking straight along worldUp (only reachable with an
		// unconstrained pitch); take right from yaw alone.
		right = reMath.Vec3{X: -sinYaw, Y: 0, Z: cosYaw}
	}
	c.right = right.Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}
