package scene

import (
	"phong-engine/core"
	"phong-engine/math"
)

// cubeFaces lists each face by its outward normal and four corners in
// counter-clockwise order seen from outside, on a cube of extent ±1.
var cubeFaces = []struct {
	normal  math.Vec3
	corners [4]math.Vec3
}{
	{math.Vec3Back, [4]math.Vec3{{X: 1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1}}},
	{math.Vec3Front, [4]math.Vec3{{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1}}},
	{math.Vec3Left, [4]math.Vec3{{X: -1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: -1}}},
	{math.Vec3Right, [4]math.Vec3{{X: 1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1}}},
	{math.Vec3Down, [4]math.Vec3{{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: 1}}},
	{math.Vec3Up, [4]math.Vec3{{X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1}}},
}

// CreateCube generates a non-indexed cube centered at the origin with edge
// length size: 6 faces, 2 triangles each, 36 vertices with flat per-face
// normals. CreateCube(1) is the unit cube.
func CreateCube(size float32) *Mesh {
	half := size / 2
	vertices := make([]core.Vertex, 0, 36)

	for _, face := range cubeFaces {
		for _, idx := range [6]int{0, 1, 2, 2, 3, 0} {
			vertices = append(vertices, core.Vertex{
				Position: face.corners[idx].Mul(half),
				Normal:   face.normal,
			})
		}
	}

	return NewMesh("Cube", vertices)
}
