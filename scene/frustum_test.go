package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	reMath "phong-engine/math"
)

func testViewProj(c *Camera) reMath.Mat4 {
	proj := reMath.Mat4Perspective(c.Zoom()*math.Pi/180, 1, 0.1, 100)
	return c.ViewMatrix().Mul(proj)
}

func TestMeshBounds(t *testing.T) {
	box := CreateCube(2).Bounds()
	assertVec3InDelta(t, reMath.NewVec3(-1, -1, -1), box.Min, tolerance)
	assertVec3InDelta(t, reMath.NewVec3(1, 1, 1), box.Max, tolerance)

	assert.Equal(t, AABB{}, NewMesh("empty", nil).Bounds())
}

func TestAABBTransform(t *testing.T) {
	box := CreateCube(1).Bounds().Transform(reMath.Mat4Translation(reMath.NewVec3(5, 0, 0)))
	assertVec3InDelta(t, reMath.NewVec3(4.5, -0.5, -0.5), box.Min, tolerance)
	assertVec3InDelta(t, reMath.NewVec3(5.5, 0.5, 0.5), box.Max, tolerance)
}

func TestFrustumPlanesFaceInward(t *testing.T) {
	f := FrustumFromViewProjection(testViewProj(NewCamera(reMath.NewVec3(0, 0, 3))))

	for i, p := range f.Planes {
		assert.InDelta(t, 1, p.Normal.Length(), tolerance, "plane %d", i)
		assert.Greater(t, p.DistanceTo(reMath.NewVec3(0, 0, 0)), float32(0), "plane %d", i)
	}
	// near plane sits 0.1 in front of the eye
	assert.InDelta(t, 0, f.Planes[4].DistanceTo(reMath.NewVec3(0, 0, 2.9)), 1e-4)
	assert.Less(t, f.Planes[5].DistanceTo(reMath.NewVec3(0, 0, -200)), float32(0))
}

func TestVisible(t *testing.T) {
	cube := CreateCube(1)
	identity := reMath.Mat4Identity()

	facing := NewCamera(reMath.NewVec3(0, 0, 3))
	assert.True(t, Visible(cube, identity, testViewProj(facing)))

	away := NewCamera(reMath.NewVec3(0, 0, 3), WithYaw(90))
	assert.False(t, Visible(cube, identity, testViewProj(away)))

	inside := NewCamera(reMath.NewVec3(0, 0, 0))
	assert.True(t, Visible(cube, identity, testViewProj(inside)))

	far := reMath.Mat4Translation(reMath.NewVec3(0, 0, -500))
	assert.False(t, Visible(cube, far, testViewProj(facing)))
}
