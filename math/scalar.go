package math

import (
	stdmath "math"

	"github.com/chewxy/math32"
)

const degToRadFactor = float32(stdmath.Pi / 180)

// DegToRad converts degrees to radians.
func DegToRad(degrees float32) float32 {
	return degrees * degToRadFactor
}

// Clamp limits x to [lo, hi]. NaN passes through unchanged.
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func isFinite(x float32) bool {
	return !math32.IsNaN(x) && !math32.IsInf(x, 0)
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float32) bool {
	return isFinite(x)
}
