package raster

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phong-engine/core"
	"phong-engine/lighting"
	"phong-engine/math"
	"phong-engine/scene"
)

const size = 64

func frontView(t *testing.T, opts ...scene.CameraOption) Uniforms {
	t.Helper()
	return viewFrom(t, math.NewVec3(0, 0, 3), opts...)
}

func viewFrom(t *testing.T, eye math.Vec3, opts ...scene.CameraOption) Uniforms {
	t.Helper()
	cam := scene.NewCamera(eye, opts...)
	return Uniforms{
		Model:        math.Mat4Identity(),
		View:         cam.ViewMatrix(),
		Projection:   math.Mat4Perspective(math.DegToRad(cam.Zoom()), 1, 0.1, 100),
		ViewPosition: cam.Position(),
	}
}

func newRasterizer(t *testing.T, opts ...Option) *Rasterizer {
	t.Helper()
	r := NewRasterizer(opts...)
	t.Cleanup(r.Close)
	return r
}

func newTarget(t *testing.T) *Framebuffer {
	t.Helper()
	fb, err := NewFramebuffer(size, size)
	require.NoError(t, err)
	fb.Clear(core.ColorBlack)
	return fb
}

// normalShader encodes the interpolated normal as a color.
var normalShader = ShaderFunc(func(f lighting.Fragment) (core.Color, error) {
	n := f.Normal.Normalize()
	return core.NewColor(n.X*0.5+0.5, n.Y*0.5+0.5, n.Z*0.5+0.5), nil
})

func TestNewFramebufferRejectsEmptySize(t *testing.T) {
	_, err := NewFramebuffer(0, 10)
	assert.Error(t, err)
	_, err = NewFramebuffer(10, -1)
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	fb, err := NewFramebuffer(7, 5)
	require.NoError(t, err)

	fb.Clear(core.NewColor(1, 0, 0.5))

	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			assert.Equal(t, color.RGBA{R: 255, G: 0, B: 128, A: 255}, fb.At(x, y))
			assert.Equal(t, float32(1), fb.DepthAt(x, y))
		}
	}
	assert.InDelta(t, 1.4, fb.Aspect(), 1e-6)
}

func TestDrawKeepsNearestFace(t *testing.T) {
	fb := newTarget(t)
	r := newRasterizer(t, WithWorkers(4))

	stats, err := r.Draw(fb, scene.CreateCube(1), frontView(t), normalShader)
	require.NoError(t, err)

	// the +Z face is in front of the -Z face at the center
	assert.Equal(t, color.RGBA{R: 128, G: 128, B: 255, A: 255}, fb.At(size/2, size/2))
	assert.Equal(t, color.RGBA{A: 255}, fb.At(0, 0), "background stays clear")

	depth := fb.DepthAt(size/2, size/2)
	assert.Greater(t, depth, float32(0))
	assert.Less(t, depth, float32(1))

	assert.Equal(t, 12, stats.Triangles)
	assert.Zero(t, stats.Rejected)
	assert.Greater(t, stats.Fragments, 0)
}

func TestDrawShadesWithEvaluator(t *testing.T) {
	fb := newTarget(t)
	o := lighting.DefaultObjectLight()
	o.LightDirection = math.NewVec3(0, 0, -1)
	e := lighting.Evaluator{Variant: lighting.VariantDiffuse, Object: o}

	_, err := newRasterizer(t).Draw(fb, scene.CreateCube(1), frontView(t), e)
	require.NoError(t, err)

	want, err := lighting.AmbientDiffuse(o, math.Vec3Front)
	require.NoError(t, err)
	assert.Equal(t, want.ToRGBA8(), fb.At(size/2, size/2))
}

func TestDrawPhongCube(t *testing.T) {
	fb := newTarget(t)
	e := lighting.Evaluator{
		Variant:  lighting.VariantPhong,
		Material: lighting.CoralMaterial(),
		Light:    lighting.DefaultLight(),
	}

	_, err := newRasterizer(t).Draw(fb, scene.CreateCube(1), frontView(t), e)
	require.NoError(t, err)

	center := fb.At(size/2, size/2)
	assert.NotEqual(t, color.RGBA{A: 255}, center)
	assert.Greater(t, center.R, center.B, "coral is red-dominant")
}

func TestDrawRejectsGeometryBehindTheEye(t *testing.T) {
	fb := newTarget(t)
	u := frontView(t, scene.WithYaw(90))

	stats, err := newRasterizer(t).Draw(fb, scene.CreateCube(1), u, normalShader)
	require.NoError(t, err)

	assert.True(t, stats.Culled)
	assert.Equal(t, 12, stats.Rejected)
	assert.Zero(t, stats.Fragments)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			require.Equal(t, color.RGBA{A: 255}, fb.At(x, y))
		}
	}
}

func TestDrawClipsTrianglesCrossingTheEyePlane(t *testing.T) {
	fb := newTarget(t)
	// just above the top face, looking across it toward the +X face; the
	// top face corners at x = -0.5 are behind the eye
	u := viewFrom(t, math.NewVec3(-0.4, 0.7, 0), scene.WithYaw(0), scene.WithPitch(-10))

	stats, err := newRasterizer(t).Draw(fb, scene.CreateCube(1), u, normalShader)
	require.NoError(t, err)

	top := color.RGBA{R: 128, G: 255, B: 128, A: 255}
	assert.Equal(t, top, fb.At(size/2, 40), "top face hides the +X face behind it")
	assert.Equal(t, top, fb.At(size/2, 60), "top face just below the eye")
	assert.Greater(t, stats.Clipped, 0)
	assert.False(t, stats.Culled)
}

func TestClipNear(t *testing.T) {
	vertex := func(x, y, z, w float32, world math.Vec3) vertexOut {
		return vertexOut{clip: math.Vec4{X: x, Y: y, Z: z, W: w}, world: world, normal: math.Vec3Up}
	}
	a := vertex(0, 0, 0, 1, math.NewVec3(0, 0, 0))
	b := vertex(1, 0, 0, 1, math.NewVec3(3, 0, 0))
	behind := vertex(0, 0, -3, 1, math.NewVec3(0, 3, 0))

	poly, clipped := clipNear([3]vertexOut{a, b, a}, nil)
	assert.False(t, clipped)
	assert.Len(t, poly, 3)

	poly, clipped = clipNear([3]vertexOut{a, b, behind}, nil)
	assert.True(t, clipped)
	require.Len(t, poly, 4)
	for i, v := range poly {
		assert.GreaterOrEqual(t, v.clip.Z+v.clip.W, float32(-1e-6), "vertex %d", i)
		assert.Equal(t, math.Vec3Up, v.normal)
	}
	// b -> behind is cut a third of the way along
	assert.InDelta(t, 2, poly[2].world.X, 1e-5)
	assert.InDelta(t, 1, poly[2].world.Y, 1e-5)

	poly, clipped = clipNear([3]vertexOut{a, behind, behind}, nil)
	assert.True(t, clipped)
	assert.Len(t, poly, 3)

	poly, _ = clipNear([3]vertexOut{behind, behind, behind}, nil)
	assert.Empty(t, poly)
}

func TestDrawReturnsShaderError(t *testing.T) {
	fb := newTarget(t)
	errBroken := errors.New("broken")
	failing := ShaderFunc(func(lighting.Fragment) (core.Color, error) {
		return core.Color{}, errBroken
	})

	_, err := newRasterizer(t).Draw(fb, scene.CreateCube(1), frontView(t), failing)
	assert.ErrorIs(t, err, errBroken)
}

func TestDrawIsIndependentOfBanding(t *testing.T) {
	u := frontView(t, scene.WithYaw(-75), scene.WithPitch(10))
	mesh := scene.CreateCube(1)

	serial := newTarget(t)
	_, err := newRasterizer(t, WithWorkers(1), WithBandHeight(size)).Draw(serial, mesh, u, normalShader)
	require.NoError(t, err)

	parallel := newTarget(t)
	_, err = newRasterizer(t, WithWorkers(6), WithBandHeight(3)).Draw(parallel, mesh, u, normalShader)
	require.NoError(t, err)

	assert.Equal(t, serial.Color.Pix, parallel.Color.Pix)
	assert.Equal(t, serial.Depth, parallel.Depth)
}

func BenchmarkDrawCube(b *testing.B) {
	fb, _ := NewFramebuffer(320, 240)
	cam := scene.NewCamera(math.NewVec3(0, 1, 4))
	u := Uniforms{
		Model:        math.Mat4Identity(),
		View:         cam.ViewMatrix(),
		Projection:   math.Mat4Perspective(math.DegToRad(cam.Zoom()), fb.Aspect(), 0.1, 100),
		ViewPosition: cam.Position(),
	}
	e := lighting.Evaluator{Variant: lighting.VariantPhong, Material: lighting.CoralMaterial(), Light: lighting.DefaultLight()}
	r := NewRasterizer()
	defer r.Close()
	mesh := scene.CreateCube(1)

	for i := 0; i < b.N; i++ {
		fb.Clear(core.ColorBlack)
		_, _ = r.Draw(fb, mesh, u, e)
	}
}
