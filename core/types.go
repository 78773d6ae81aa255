package core

import (
	"image/color"

	"phong-engine/math"
)

// Color is a linear RGB triple. Channels are not clamped during lighting;
// Clamp is applied once when the value is written to a display surface.
type Color struct {
	R, G, B float32
}

var (
	ColorWhite = Color{1, 1, 1}
	ColorBlack = Color{0, 0, 0}
	ColorRed   = Color{1, 0, 0}
	ColorGreen = Color{0, 1, 0}
	ColorBlue  = Color{0, 0, 1}
)

func NewColor(r, g, b float32) Color {
	return Color{R: r, G: g, B: b}
}

func (c Color) Add(other Color) Color {
	return Color{R: c.R + other.R, G: c.G + other.G, B: c.B + other.B}
}

// Mul multiplies component-wise.
func (c Color) Mul(other Color) Color {
	return Color{R: c.R * other.R, G: c.G * other.G, B: c.B * other.B}
}

func (c Color) Scale(s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s}
}

func (c Color) Clamp() Color {
	return Color{
		R: math.Clamp(c.R, 0, 1),
		G: math.Clamp(c.G, 0, 1),
		B: math.Clamp(c.B, 0, 1),
	}
}

func (c Color) IsFinite() bool {
	return math.IsFinite(c.R) && math.IsFinite(c.G) && math.IsFinite(c.B)
}

// ToRGBA8 converts to an opaque 8-bit color, clamping first.
func (c Color) ToRGBA8() color.RGBA {
	cl := c.Clamp()
	return color.RGBA{
		R: uint8(cl.R*255 + 0.5),
		G: uint8(cl.G*255 + 0.5),
		B: uint8(cl.B*255 + 0.5),
		A: 255,
	}
}

func (c Color) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

func ColorFromArray(a [3]float32) Color {
	return Color{R: a[0], G: a[1], B: a[2]}
}

// Vertex is the per-vertex input shared by the GPU and CPU pipelines.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}
