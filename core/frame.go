package core

import (
	"log/slog"
	"time"
)

// Frame describes one iteration of the render loop.
type Frame struct {
	Index   uint64
	Delta   float32 // seconds since the previous frame
	Elapsed time.Duration
}

// FrameClock turns wall-clock samples into per-frame deltas and keeps a
// running frames-per-second figure updated once per interval.
type FrameClock struct {
	start    time.Time
	last     time.Time
	index    uint64
	started  bool
	maxDelta float32

	interval    time.Duration
	windowStart time.Time
	windowCount int
	fps         float64
}

func NewFrameClock() *FrameClock {
	return &FrameClock{
		interval: time.Second,
		maxDelta: 0.25,
	}
}

// Tick records a frame at now. The first tick has a zero delta; later deltas
// are capped so a stall (window drag, debugger) does not teleport the camera.
func (c *FrameClock) Tick(now time.Time) Frame {
	if !c.started {
		c.start, c.last, c.windowStart = now, now, now
		c.started = true
		return Frame{Index: 0}
	}

	delta := float32(now.Sub(c.last).Seconds())
	if delta < 0 {
		delta = 0
	}
	if delta > c.maxDelta {
		delta = c.maxDelta
	}
	c.last = now
	c.index++

	c.windowCount++
	if elapsed := now.Sub(c.windowStart); elapsed >= c.interval {
		c.fps = float64(c.windowCount) / elapsed.Seconds()
		c.windowCount = 0
		c.windowStart = now
		slog.Debug("frame stats", "fps", c.fps, "frame", c.index)
	}

	return Frame{
		Index:   c.index,
		Delta:   delta,
		Elapsed: now.Sub(c.start),
	}
}

// FPS returns the rate measured over the last completed interval.
func (c *FrameClock) FPS() float64 {
	return c.fps
}
