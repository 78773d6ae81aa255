package core

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestColorArithmetic(t *testing.T) {
	c := NewColor(0.5, 0.25, 1)

	assert.Equal(t, NewColor(1, 0.5, 2), c.Add(c))
	assert.Equal(t, NewColor(0.25, 0.0625, 1), c.Mul(c))
	assert.Equal(t, NewColor(1, 0.5, 2), c.Scale(2))
}

func TestColorClampOnlyAtOutput(t *testing.T) {
	c := NewColor(1.5, -0.2, 0.5)

	assert.Equal(t, NewColor(1, 0, 0.5), c.Clamp())
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 128, A: 255}, c.ToRGBA8())
}

func TestFrameClock(t *testing.T) {
	clock := NewFrameClock()
	t0 := time.Unix(100, 0)

	first := clock.Tick(t0)
	assert.Equal(t, uint64(0), first.Index)
	assert.Zero(t, first.Delta)

	second := clock.Tick(t0.Add(16 * time.Millisecond))
	assert.Equal(t, uint64(1), second.Index)
	assert.InDelta(t, 0.016, second.Delta, 1e-6)
	assert.Equal(t, 16*time.Millisecond, second.Elapsed)

	stalled := clock.Tick(t0.Add(5 * time.Second))
	assert.InDelta(t, 0.25, stalled.Delta, 1e-6, "long stalls are capped")
	assert.Greater(t, clock.FPS(), 0.0)
}
