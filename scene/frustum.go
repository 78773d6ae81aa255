package scene

import (
	reMath "phong-engine/math"
)

// Plane is the half-space Normal·p + D >= 0. Normal points into the frustum.
type Plane struct {
	Normal reMath.Vec3
	D      float32
}

// DistanceTo returns the signed distance from pt to the plane; positive is
// inside.
func (p Plane) DistanceTo(pt reMath.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view volume.
type Frustum struct {
	Planes [6]Plane // left, right, bottom, top, near, far
}

// FrustumFromViewProjection extracts normalized world-space planes from a
// view-projection matrix (Gribb/Hartmann).
//
// Points are row vectors, so clip component j is the dot product of the point
// with column j of vp.
func FrustumFromViewProjection(vp reMath.Mat4) Frustum {
	col := func(j int) reMath.Vec4 {
		return reMath.Vec4{X: vp[0][j], Y: vp[1][j], Z: vp[2][j], W: vp[3][j]}
	}
	c0, c1, c2, c3 := col(0), col(1), col(2), col(3)

	var f Frustum
	f.Planes[0] = planeFrom(c3.Add(c0))
	f.Planes[1] = planeFrom(c3.Add(c0.Mul(-1)))
	f.Planes[2] = planeFrom(c3.Add(c1))
	f.Planes[3] = planeFrom(c3.Add(c1.Mul(-1)))
	f.Planes[4] = planeFrom(c3.Add(c2))
	f.Planes[5] = planeFrom(c3.Add(c2.Mul(-1)))
	return f
}

func planeFrom(v reMath.Vec4) Plane {
	n := reMath.Vec3{X: v.X, Y: v.Y, Z: v.Z}
	l := n.Length()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Mul(1 / l), D: v.W / l}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max reMath.Vec3
}

// IntersectsFrustum reports false only when the box is entirely outside one
// plane. Boxes straddling a corner of the frustum may pass.
func (box AABB) IntersectsFrustum(f *Frustum) bool {
	for _, p := range f.Planes {
		// corner furthest along the plane normal
		pos := box.Max
		if p.Normal.X < 0 {
			pos.X = box.Min.X
		}
		if p.Normal.Y < 0 {
			pos.Y = box.Min.Y
		}
		if p.Normal.Z < 0 {
			pos.Z = box.Min.Z
		}
		if p.DistanceTo(pos) < 0 {
			return false
		}
	}
	return true
}

// Transform returns the box enclosing the eight corners of box under the
// affine matrix m.
func (box AABB) Transform(m reMath.Mat4) AABB {
	mn, mx := box.Min, box.Max
	corners := [8]reMath.Vec3{
		{X: mn.X, Y: mn.Y, Z: mn.Z},
		{X: mx.X, Y: mn.Y, Z: mn.Z},
		{X: mn.X, Y: mx.Y, Z: mn.Z},
		{X: mx.X, Y: mx.Y, Z: mn.Z},
		{X: mn.X, Y: mn.Y, Z: mx.Z},
		{X: mx.X, Y: mn.Y, Z: mx.Z},
		{X: mn.X, Y: mx.Y, Z: mx.Z},
		{X: mx.X, Y: mx.Y, Z: mx.Z},
	}
	var out AABB
	for i, c := range corners {
		out = out.extend(c.ToVec4(1).MulMat(m).ToVec3(), i == 0)
	}
	return out
}

func (box AABB) extend(p reMath.Vec3, first bool) AABB {
	if first {
		return AABB{Min: p, Max: p}
	}
	box.Min = reMath.Vec3{X: min(box.Min.X, p.X), Y: min(box.Min.Y, p.Y), Z: min(box.Min.Z, p.Z)}
	box.Max = reMath.Vec3{X: max(box.Max.X, p.X), Y: max(box.Max.Y, p.Y), Z: max(box.Max.Z, p.Z)}
	return box
}

// Bounds returns the model-space box of the mesh vertices. An empty mesh has
// a zero box.
func (m *Mesh) Bounds() AABB {
	var out AABB
	for i, v := range m.Vertices {
		out = out.extend(v.Position, i == 0)
	}
	return out
}

// Visible reports whether mesh, placed by model, can touch the view volume
// of viewProj.
func Visible(mesh *Mesh, model, viewProj reMath.Mat4) bool {
	f := FrustumFromViewProjection(viewProj)
	return mesh.Bounds().Transform(model).IntersectsFrustum(&f)
}
