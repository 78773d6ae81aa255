package raster

import (
	"fmt"
	"image"
	"image/color"

	"phong-engine/core"
)

// Framebuffer is a color target with a matching depth buffer. Depth values
// are window depths in [0, 1]; Clear resets them to 1 (far).
type Framebuffer struct {
	Width, Height int
	Color         *image.RGBA
	Depth         []float32
}

func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid framebuffer size %dx%d", width, height)
	}
	return &Framebuffer{
		Width:  width,
		Height: height,
		Color:  image.NewRGBA(image.Rect(0, 0, width, height)),
		Depth:  make([]float32, width*height),
	}, nil
}

// Clear fills the color buffer with c and resets depth.
func (fb *Framebuffer) Clear(c core.Color) {
	px := c.ToRGBA8()
	pix := fb.Color.Pix
	if len(pix) == 0 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = px.R, px.G, px.B, px.A
	for i := 4; i < len(pix); i *= 2 {
		copy(pix[i:], pix[:i])
	}

	depth := fb.Depth
	depth[0] = 1
	for i := 1; i < len(depth); i *= 2 {
		copy(depth[i:], depth[:i])
	}
}

func (fb *Framebuffer) Aspect() float32 {
	return float32(fb.Width) / float32(fb.Height)
}

func (fb *Framebuffer) At(x, y int) color.RGBA {
	return fb.Color.RGBAAt(x, y)
}

func (fb *Framebuffer) DepthAt(x, y int) float32 {
	return fb.Depth[y*fb.Width+x]
}

func (fb *Framebuffer) set(x, y int, c core.Color, depth float32) {
	px := c.ToRGBA8()
	i := fb.Color.PixOffset(x, y)
	fb.Color.Pix[i+0] = px.R
	fb.Color.Pix[i+1] = px.G
	fb.Color.Pix[i+2] = px.B
	fb.Color.Pix[i+3] = px.A
	fb.Depth[y*fb.Width+x] = depth
}
