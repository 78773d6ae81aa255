// Package config loads the viewer configuration from TOML. Every field has a
// default, so a file only needs the keys it changes.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"phong-engine/core"
	"phong-engine/input"
	"phong-engine/lighting"
	"phong-engine/math"
	"phong-engine/scene"
)

type Config struct {
	Window   WindowConfig   `toml:"window"`
	Camera   CameraConfig   `toml:"camera"`
	Lighting LightingConfig `toml:"lighting"`
	Render   RenderConfig   `toml:"render"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type CameraConfig struct {
	Position          [3]float32 `toml:"position"`
	Yaw               float32    `toml:"yaw"`
	Pitch             float32    `toml:"pitch"`
	Zoom              float32    `toml:"zoom"`
	MovementSpeed     float32    `toml:"movement_speed"`
	MouseSensitivity  float32    `toml:"mouse_sensitivity"`
	ScrollSensitivity float32    `toml:"scroll_sensitivity"`
	ConstrainPitch    bool       `toml:"constrain_pitch"`

	// InvertY makes moving the mouse down look up.
	InvertY bool `toml:"invert_y"`
	// ScrollScale converts backend wheel deltas before they reach the camera.
	ScrollScale float32 `toml:"scroll_scale"`
}

type LightingConfig struct {
	// Variant is one of ambient, diffuse or phong.
	Variant  string         `toml:"variant"`
	Object   ObjectConfig   `toml:"object"`
	Material MaterialConfig `toml:"material"`
	Light    LightConfig    `toml:"light"`
}

// ObjectConfig parameterizes the ambient and diffuse variants.
type ObjectConfig struct {
	Color           [3]float32 `toml:"color"`
	LightColor      [3]float32 `toml:"light_color"`
	LightDirection  [3]float32 `toml:"light_direction"`
	AmbientStrength float32    `toml:"ambient_strength"`
}

type MaterialConfig struct {
	Ambient   [3]float32 `toml:"ambient"`
	Diffuse   [3]float32 `toml:"diffuse"`
	Specular  [3]float32 `toml:"specular"`
	Shininess float32    `toml:"shininess"`
}

type LightConfig struct {
	Direction [3]float32 `toml:"direction"`
	Ambient   [3]float32 `toml:"ambient"`
	Diffuse   [3]float32 `toml:"diffuse"`
	Specular  [3]float32 `toml:"specular"`
}

type RenderConfig struct {
	ClearColor [3]float32 `toml:"clear_color"`
	Near       float32    `toml:"near"`
	Far        float32    `toml:"far"`

	// Workers and BandHeight tune the software rasterizer; 0 picks a default.
	Workers    int `toml:"workers"`
	BandHeight int `toml:"band_height"`
}

// Default returns the configuration of the coral cube lighting demo.
func Default() *Config {
	material := lighting.CoralMaterial()
	light := lighting.DefaultLight()
	object := lighting.DefaultObjectLight()

	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Phong Lighting",
			VSync:  true,
		},
		Camera: CameraConfig{
			Position:          [3]float32{0, 1, 4},
			Yaw:               scene.DefaultYaw,
			Pitch:             scene.DefaultPitch,
			Zoom:              scene.DefaultZoom,
			MovementSpeed:     scene.DefaultMovementSpeed,
			MouseSensitivity:  0.02,
			ScrollSensitivity: scene.DefaultScrollSensitivity,
			ConstrainPitch:    true,
			ScrollScale:       input.DefaultScrollScale,
		},
		Lighting: LightingConfig{
			Variant: lighting.VariantPhong.String(),
			Object: ObjectConfig{
				Color:           object.ObjectColor.Array(),
				LightColor:      object.LightColor.Array(),
				LightDirection:  object.LightDirection.Array(),
				AmbientStrength: object.AmbientStrength,
			},
			Material: MaterialConfig{
				Ambient:   material.Ambient.Array(),
				Diffuse:   material.Diffuse.Array(),
				Specular:  material.Specular.Array(),
				Shininess: material.Shininess,
			},
			Light: LightConfig{
				Direction: light.Direction.Array(),
				Ambient:   light.Ambient.Array(),
				Diffuse:   light.Diffuse.Array(),
				Specular:  light.Specular.Array(),
			},
		},
		Render: RenderConfig{
			ClearColor: core.ColorBlack.Array(),
			Near:       0.1,
			Far:        100,
		},
	}
}

// Load reads a TOML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults. Unknown keys are an error.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("unknown config keys:\n%s", strict.String())
		}
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(c)
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window: invalid size %dx%d", c.Window.Width, c.Window.Height)
	}
	if !math.Vec3FromArray(c.Camera.Position).IsFinite() {
		return fmt.Errorf("camera.position: not finite: %v", c.Camera.Position)
	}
	if c.Camera.MovementSpeed < 0 || !math.IsFinite(c.Camera.MovementSpeed) {
		return fmt.Errorf("camera.movement_speed: invalid value %v", c.Camera.MovementSpeed)
	}
	if !math.IsFinite(c.Camera.MouseSensitivity) || !math.IsFinite(c.Camera.ScrollSensitivity) || !math.IsFinite(c.Camera.ScrollScale) {
		return fmt.Errorf("camera: sensitivities must be finite")
	}
	if !(c.Render.Near > 0) || !(c.Render.Far > c.Render.Near) {
		return fmt.Errorf("render: need 0 < near < far, got near=%v far=%v", c.Render.Near, c.Render.Far)
	}
	if c.Render.Workers < 0 || c.Render.BandHeight < 0 {
		return fmt.Errorf("render: workers and band_height must not be negative")
	}

	e, err := c.Evaluator()
	if err != nil {
		return err
	}
	if err := e.Validate(); err != nil {
		return fmt.Errorf("lighting: %w", err)
	}
	return nil
}

func (c *Config) Variant() (lighting.Variant, error) {
	v, err := lighting.ParseVariant(c.Lighting.Variant)
	if err != nil {
		return 0, fmt.Errorf("lighting.variant: %w", err)
	}
	return v, nil
}

func (c *Config) Material() lighting.Material {
	m := c.Lighting.Material
	return lighting.Material{
		Ambient:   core.ColorFromArray(m.Ambient),
		Diffuse:   core.ColorFromArray(m.Diffuse),
		Specular:  core.ColorFromArray(m.Specular),
		Shininess: m.Shininess,
	}
}

func (c *Config) Light() lighting.Light {
	l := c.Lighting.Light
	return lighting.Light{
		Direction: math.Vec3FromArray(l.Direction),
		Ambient:   core.ColorFromArray(l.Ambient),
		Diffuse:   core.ColorFromArray(l.Diffuse),
		Specular:  core.ColorFromArray(l.Specular),
	}
}

func (c *Config) ObjectLight() lighting.ObjectLight {
	o := c.Lighting.Object
	return lighting.ObjectLight{
		ObjectColor:     core.ColorFromArray(o.Color),
		LightColor:      core.ColorFromArray(o.LightColor),
		LightDirection:  math.Vec3FromArray(o.LightDirection),
		AmbientStrength: o.AmbientStrength,
	}
}

// Evaluator builds the lighting evaluator for the configured variant.
func (c *Config) Evaluator() (lighting.Evaluator, error) {
	v, err := c.Variant()
	if err != nil {
		return lighting.Evaluator{}, err
	}
	return lighting.Evaluator{
		Variant:  v,
		Object:   c.ObjectLight(),
		Material: c.Material(),
		Light:    c.Light(),
	}, nil
}

func (c *Config) CameraPosition() math.Vec3 {
	return math.Vec3FromArray(c.Camera.Position)
}

func (c *Config) CameraOptions() []scene.CameraOption {
	return []scene.CameraOption{
		scene.WithYaw(c.Camera.Yaw),
		scene.WithPitch(c.Camera.Pitch),
		scene.WithZoom(c.Camera.Zoom),
		scene.WithMovementSpeed(c.Camera.MovementSpeed),
		scene.WithMouseSensitivity(c.Camera.MouseSensitivity),
		scene.WithScrollSensitivity(c.Camera.ScrollSensitivity),
	}
}

// NewCamera places a camera as configured.
func (c *Config) NewCamera() *scene.Camera {
	return scene.NewCamera(c.CameraPosition(), c.CameraOptions()...)
}

func (c *Config) DispatcherOptions() []input.Option {
	return []input.Option{
		input.WithInvertY(c.Camera.InvertY),
		input.WithConstrainPitch(c.Camera.ConstrainPitch),
		input.WithScrollScale(c.Camera.ScrollScale),
	}
}

func (c *Config) ClearColor() core.Color {
	return core.ColorFromArray(c.Render.ClearColor)
}

// Projection builds the perspective projection for a vertical field of view
// in degrees.
func (c *Config) Projection(zoomDegrees, aspect float32) math.Mat4 {
	return math.Mat4Perspective(math.DegToRad(zoomDegrees), aspect, c.Render.Near, c.Render.Far)
}
