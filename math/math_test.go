package math

import (
	stdmath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-5

func assertVec3InDelta(t *testing.T, expected, actual Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, delta, msgAndArgs...)
	assert.InDelta(t, expected.Y, actual.Y, delta, msgAndArgs...)
	assert.InDelta(t, expected.Z, actual.Z, delta, msgAndArgs...)
}

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	assert.Equal(t, NewVec3(5, 7, 9), v1.Add(v2))
	assert.Equal(t, NewVec3(3, 3, 3), v2.Sub(v1))
	assert.Equal(t, NewVec3(2, 4, 6), v1.Mul(2))
	assert.Equal(t, NewVec3(4, 10, 18), v1.MulVec(v2))
	assert.Equal(t, float32(32), v1.Dot(v2))
	assert.Equal(t, NewVec3(-1, -2, -3), v1.Negate())

	// Right x Up = Front in a right-handed system
	assert.Equal(t, Vec3Front, Vec3Right.Cross(Vec3Up))
}

func TestVec3Normalize(t *testing.T) {
	normalized := NewVec3(3, 0, 0).Normalize()
	assert.Equal(t, NewVec3(1, 0, 0), normalized)
	assert.InDelta(t, 1, normalized.Length(), tolerance)

	assert.Equal(t, Vec3Zero, Vec3Zero.Normalize(), "zero vector is returned unchanged")
}

func TestVec3Reflect(t *testing.T) {
	tests := []struct {
		name     string
		incident Vec3
		normal   Vec3
		expected Vec3
	}{
		{"straight down onto floor", NewVec3(0, -1, 0), Vec3Up, NewVec3(0, 1, 0)},
		{"grazing", NewVec3(1, -1, 0), Vec3Up, NewVec3(1, 1, 0)},
		{"length is preserved", NewVec3(1, -0.5, -1), Vec3Front, NewVec3(1, -0.5, 1)},
		{"parallel to surface", NewVec3(1, 0, 0), Vec3Up, NewVec3(1, 0, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertVec3InDelta(t, tc.expected, tc.incident.Reflect(tc.normal), tolerance)
		})
	}
}

func TestVec3IsFinite(t *testing.T) {
	assert.True(t, NewVec3(1, 2, 3).IsFinite())
	assert.False(t, NewVec3(float32(stdmath.NaN()), 0, 0).IsFinite())
	assert.False(t, NewVec3(0, float32(stdmath.Inf(1)), 0).IsFinite())
}

func TestClampAndDegToRad(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(-3, 1, 45))
	assert.Equal(t, float32(45), Clamp(90, 1, 45))
	assert.Equal(t, float32(10), Clamp(10, 1, 45))
	assert.InDelta(t, stdmath.Pi/2, DegToRad(90), tolerance)
}

func TestMat4Identity(t *testing.T) {
	m := Mat4Identity()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			expected := float32(0)
			if i == j {
				expected = 1
			}
			assert.Equal(t, expected, m[i][j], "element [%d][%d]", i, j)
		}
	}
	assert.Equal(t, m, m.Mul(Mat4Identity()))
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	result := NewVec4(0, 0, 0, 1).MulMat(m)
	assert.Equal(t, translation, result.ToVec3())

	// Directions (w = 0) are unaffected by translation.
	dir := NewVec4(0, 0, 1, 0).MulMat(m)
	assert.Equal(t, Vec3Front, dir.ToVec3())
}

func TestMat4MulOrder(t *testing.T) {
	// Row vectors: v * (S * T) scales first, then translates.
	s := Mat4Scale(NewVec3(2, 2, 2))
	tr := Mat4Translation(NewVec3(1, 0, 0))

	p := s.Mul(tr).MulPoint(NewVec3(1, 1, 1))
	assertVec3InDelta(t, NewVec3(3, 2, 2), p, tolerance)
}

func TestMat4LookAt(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	m := Mat4LookAt(eye, Vec3Zero, Vec3Up)

	// The eye maps to the origin and the target lies on -Z in view space.
	assertVec3InDelta(t, Vec3Zero, m.MulPoint(eye), tolerance)
	assertVec3InDelta(t, NewVec3(0, 0, -5), m.MulPoint(Vec3Zero), tolerance)
}

func TestMat4LookAtMatchesMathGL(t *testing.T) {
	cases := []struct {
		eye, target, up Vec3
	}{
		{NewVec3(0, 1, 4), NewVec3(0, 1, 3), Vec3Up},
		{NewVec3(3, -2, 7), NewVec3(0, 0, 0), Vec3Up},
		{NewVec3(-1, 5, 2), NewVec3(2, 0, -3), NewVec3(0, 1, 0)},
	}
	for _, c := range cases {
		ours := Mat4LookAt(c.eye, c.target, c.up).Flatten()
		ref := mgl32.LookAtV(
			mgl32.Vec3{c.eye.X, c.eye.Y, c.eye.Z},
			mgl32.Vec3{c.target.X, c.target.Y, c.target.Z},
			mgl32.Vec3{c.up.X, c.up.Y, c.up.Z},
		)
		for i := range ours {
			assert.InDelta(t, ref[i], ours[i], 1e-4, "element %d for eye %v", i, c.eye)
		}
	}
}

func TestMat4PerspectiveMatchesMathGL(t *testing.T) {
	fov := DegToRad(45)
	aspect := float32(800.0 / 600.0)

	ours := Mat4Perspective(fov, aspect, 0.1, 100).Flatten()
	ref := mgl32.Perspective(mgl32.DegToRad(45), aspect, 0.1, 100)
	for i := range ours {
		assert.InDelta(t, ref[i], ours[i], 1e-4, "element %d", i)
	}
}

func TestMat4PerspectiveDepthRange(t *testing.T) {
	m := Mat4Perspective(DegToRad(45), 1, 0.1, 100)

	near := m.MulPoint(NewVec3(0, 0, -0.1))
	far := m.MulPoint(NewVec3(0, 0, -100))
	require.True(t, near.IsFinite())
	assert.InDelta(t, -1, near.Z, 1e-3)
	assert.InDelta(t, 1, far.Z, 1e-3)
}

func BenchmarkVec3Add(b *testing.B) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	for i := 0; i < b.N; i++ {
		_ = v1.Add(v2)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4Identity()
	m2 := Mat4Identity()

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}
