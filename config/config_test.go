package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phong-engine/core"
	"phong-engine/lighting"
	"phong-engine/math"
)

func TestDefaultMatchesLightingDemo(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, math.NewVec3(0, 1, 4), cfg.CameraPosition())
	assert.Equal(t, float32(0.02), cfg.Camera.MouseSensitivity)

	e, err := cfg.Evaluator()
	require.NoError(t, err)
	assert.Equal(t, lighting.VariantPhong, e.Variant)
	assert.Equal(t, lighting.CoralMaterial(), e.Material)
	assert.Equal(t, lighting.DefaultLight(), e.Light)
	assert.Equal(t, lighting.DefaultObjectLight(), e.Object)
	assert.Equal(t, core.ColorBlack, cfg.ClearColor())
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	src := `
[window]
width = 1024

[camera]
position = [0.0, 2.0, 5.0]
mouse_sensitivity = 0.04
invert_y = true

[lighting]
variant = "ambient"

[lighting.material]
shininess = 64.0
`
	cfg, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height, "untouched keys keep their defaults")
	assert.Equal(t, math.NewVec3(0, 2, 5), cfg.CameraPosition())
	assert.Equal(t, float32(0.04), cfg.Camera.MouseSensitivity)
	assert.True(t, cfg.Camera.InvertY)

	v, err := cfg.Variant()
	require.NoError(t, err)
	assert.Equal(t, lighting.VariantAmbient, v)
	assert.Equal(t, float32(64), cfg.Material().Shininess)
	assert.Equal(t, lighting.CoralMaterial().Diffuse, cfg.Material().Diffuse)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("[camera]\nfov = 60.0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fov")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, nil},
		{"bad variant", func(c *Config) { c.Lighting.Variant = "toon" }, nil},
		{"near after far", func(c *Config) { c.Render.Near = 200 }, nil},
		{"negative speed", func(c *Config) { c.Camera.MovementSpeed = -1 }, nil},
		{"zero shininess", func(c *Config) { c.Lighting.Material.Shininess = 0 }, lighting.ErrInvalidShininess},
		{"zero light", func(c *Config) { c.Lighting.Light.Direction = [3]float32{} }, lighting.ErrDegenerateLight},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestAmbientVariantIgnoresMaterial(t *testing.T) {
	cfg := Default()
	cfg.Lighting.Variant = "ambient"
	cfg.Lighting.Material.Shininess = 0

	assert.NoError(t, cfg.Validate())
}

func TestEncodeRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().Encode(&buf))

	cfg, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phong.toml")
	require.NoError(t, os.WriteFile(path, []byte("[lighting]\nvariant = \"diffuse\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "diffuse", cfg.Lighting.Variant)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCameraFromConfig(t *testing.T) {
	cfg := Default()
	cfg.Camera.Yaw = 0
	cfg.Camera.Zoom = 30

	cam := cfg.NewCamera()

	assert.Equal(t, cfg.CameraPosition(), cam.Position())
	assert.Equal(t, float32(0), cam.Yaw())
	assert.Equal(t, float32(30), cam.Zoom())
	assert.Equal(t, float32(0.02), cam.MouseSensitivity())
	assert.InDelta(t, 1, cam.Front().X, 1e-5)
}
