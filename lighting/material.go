package lighting

import (
	"errors"
	"fmt"

	"phong-engine/core"
	"phong-engine/math"
)

var (
	// ErrDegenerateNormal is returned when a surface normal has (near) zero
	// length and cannot be normalized.
	ErrDegenerateNormal = errors.New("lighting: zero-length surface normal")

	// ErrDegenerateLight is returned when a light direction has (near) zero
	// length, leaving the direction toward the light undefined.
	ErrDegenerateLight = errors.New("lighting: zero-length light direction")

	// ErrInvalidShininess is returned by Material.Validate for a specular
	// exponent that is not a positive finite number.
	ErrInvalidShininess = errors.New("lighting: shininess must be positive and finite")
)

// Material describes how a surface reflects each light term. Colors are
// per-channel reflectances in [0,1].
type Material struct {
	Ambient   core.Color
	Diffuse   core.Color
	Specular  core.Color
	Shininess float32
}

func (m Material) Validate() error {
	if !(m.Shininess > 0) || !math.IsFinite(m.Shininess) {
		return fmt.Errorf("%w: got %v", ErrInvalidShininess, m.Shininess)
	}
	return nil
}

// Light is a directional light. Direction points from the light toward the
// scene and need not be normalized.
type Light struct {
	Direction math.Vec3
	Ambient   core.Color
	Diffuse   core.Color
	Specular  core.Color
}

// ObjectLight is the single-color parameterization used by the ambient and
// ambient+diffuse variants: one object color lit by one light color.
type ObjectLight struct {
	ObjectColor     core.Color
	LightColor      core.Color
	LightDirection  math.Vec3
	AmbientStrength float32
}

// DefaultAmbientStrength is the fixed ambient factor of the flat variants.
const DefaultAmbientStrength = float32(0.1)

// CoralMaterial is the orange, moderately glossy material of the lighting demo.
func CoralMaterial() Material {
	return Material{
		Ambient:   core.NewColor(1.0, 0.5, 0.31),
		Diffuse:   core.NewColor(1.0, 0.5, 0.31),
		Specular:  core.NewColor(0.5, 0.5, 0.5),
		Shininess: 32,
	}
}

// DefaultLight is a white directional light dimmed for the coral material.
func DefaultLight() Light {
	return Light{
		Direction: math.NewVec3(1.0, -0.5, -1.0),
		Ambient:   core.NewColor(0.2, 0.2, 0.2),
		Diffuse:   core.NewColor(0.5, 0.5, 0.5),
		Specular:  core.NewColor(1.0, 1.0, 1.0),
	}
}

// DefaultObjectLight is a slate-blue object under white light.
func DefaultObjectLight() ObjectLight {
	return ObjectLight{
		ObjectColor:     core.NewColor(0.36, 0.42, 0.60),
		LightColor:      core.ColorWhite,
		LightDirection:  math.NewVec3(1.0, -0.5, -1.0),
		AmbientStrength: DefaultAmbientStrength,
	}
}
