// Package raster draws meshes into a Framebuffer on the CPU, evaluating the
// lighting model per pixel the way the GPU fragment stage does.
package raster

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/chewxy/math32"

	"phong-engine/core"
	"phong-engine/lighting"
	"phong-engine/math"
	"phong-engine/scene"
)

// minClipW guards the perspective divide. After near clipping every vertex
// has w >= near, so it only trips for projections without a near plane.
const minClipW = 1e-5

// Shader computes the color of one fragment. lighting.Evaluator implements
// it. Shade is called concurrently from several workers.
type Shader interface {
	Shade(f lighting.Fragment) (core.Color, error)
}

// ShaderFunc adapts a function to Shader.
type ShaderFunc func(f lighting.Fragment) (core.Color, error)

func (fn ShaderFunc) Shade(f lighting.Fragment) (core.Color, error) {
	return fn(f)
}

// Uniforms are the per-draw inputs shared by every vertex and fragment.
type Uniforms struct {
	Model        math.Mat4
	View         math.Mat4
	Projection   math.Mat4
	ViewPosition math.Vec3
}

// Stats counts what happened to the triangles of one Draw.
type Stats struct {
	Triangles  int  // submitted
	Rejected   int  // entirely outside one clip plane
	Degenerate int  // zero screen area
	Clipped    int  // cut by the near plane and drawn in part
	Fragments  int  // pixels written
	Culled     bool // the whole mesh missed the view volume
}

// Rasterizer splits the framebuffer into horizontal bands and shades each
// band as one task on a worker pool.
type Rasterizer struct {
	pool       worker.DynamicWorkerPool
	workers    int
	bandHeight int
}

type Option func(*Rasterizer)

// WithWorkers sets the worker pool size. Defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Rasterizer) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithBandHeight sets how many rows one task shades.
func WithBandHeight(rows int) Option {
	return func(r *Rasterizer) {
		if rows > 0 {
			r.bandHeight = rows
		}
	}
}

func NewRasterizer(opts ...Option) *Rasterizer {
	r := &Rasterizer{
		workers:    runtime.GOMAXPROCS(0),
		bandHeight: 16,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.pool = worker.NewDynamicWorkerPool(r.workers, 256, 1*time.Second)
	return r
}

// Close stops the worker pool. Draw must not be called afterwards.
func (r *Rasterizer) Close() {
	r.pool.Stop()
}

// vertexOut is a vertex after the vertex stage.
type vertexOut struct {
	clip   math.Vec4
	world  math.Vec3
	normal math.Vec3
}

// setupTriangle holds screen-space data for one visible triangle.
type setupTriangle struct {
	x, y, z [3]float32 // window coordinates and depth
	invW    [3]float32
	world   [3]math.Vec3
	normal  [3]math.Vec3
	invArea float32

	minX, maxX, minY, maxY int
}

// Draw renders mesh into fb. Triangles are drawn in mesh order with a LESS
// depth test. The first shading error stops the band it occurred in and is
// returned; other bands still complete.
func (r *Rasterizer) Draw(fb *Framebuffer, mesh *scene.Mesh, u Uniforms, shader Shader) (Stats, error) {
	stats := Stats{Triangles: mesh.TriangleCount()}

	viewProj := u.View.Mul(u.Projection)
	if !scene.Visible(mesh, u.Model, viewProj) {
		stats.Culled = true
		stats.Rejected = stats.Triangles
		return stats, nil
	}

	verts := make([]vertexOut, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		world := v.Position.ToVec4(1).MulMat(u.Model)
		verts[i] = vertexOut{
			clip:   world.MulMat(viewProj),
			world:  world.ToVec3(),
			normal: v.Normal,
		}
	}

	tris := make([]setupTriangle, 0, stats.Triangles)
	poly := make([]vertexOut, 0, 4)
	for i := 0; i < stats.Triangles; i++ {
		var clipped bool
		poly, clipped = clipNear([3]vertexOut{verts[3*i], verts[3*i+1], verts[3*i+2]}, poly)

		drawn, degenerate := 0, 0
		for k := 1; k+1 < len(poly); k++ {
			tri, ok, deg := setup(fb, poly[0], poly[k], poly[k+1])
			switch {
			case deg:
				degenerate++
			case ok:
				tris = append(tris, tri)
				drawn++
			}
		}

		switch {
		case drawn > 0:
			if clipped {
				stats.Clipped++
			}
		case degenerate > 0:
			stats.Degenerate++
		default:
			stats.Rejected++
		}
	}
	if len(tris) == 0 {
		return stats, nil
	}

	bands := (fb.Height + r.bandHeight - 1) / r.bandHeight
	errs := make([]error, bands)
	written := make([]int, bands)

	var wg sync.WaitGroup
	for b := 0; b < bands; b++ {
		wg.Add(1)
		band := b
		r.pool.SubmitTask(worker.Task{
			ID: band,
			Do: func() (any, error) {
				defer wg.Done()
				y0 := band * r.bandHeight
				y1 := min(y0+r.bandHeight, fb.Height) - 1
				written[band], errs[band] = shadeBand(fb, tris, y0, y1, u.ViewPosition, shader)
				return nil, nil
			},
		})
	}
	wg.Wait()

	for b := range written {
		stats.Fragments += written[b]
	}
	for b, err := range errs {
		if err != nil {
			return stats, fmt.Errorf("rows %d-%d: %w", b*r.bandHeight, min((b+1)*r.bandHeight, fb.Height)-1, err)
		}
	}
	return stats, nil
}

// clipNear cuts a triangle against the near plane (z >= -w in clip space),
// Sutherland-Hodgman style, and returns the surviving polygon in out: no
// vertices, the triangle itself, or a triangle or quad whose new vertices lie
// on the plane. clipped reports whether any vertex was cut away.
func clipNear(tri [3]vertexOut, out []vertexOut) (poly []vertexOut, clipped bool) {
	out = out[:0]
	for i := range tri {
		a, b := tri[i], tri[(i+1)%3]
		da, db := a.clip.Z+a.clip.W, b.clip.Z+b.clip.W
		if da >= 0 {
			out = append(out, a)
		} else {
			clipped = true
		}
		if (da >= 0) != (db >= 0) {
			out = append(out, lerpVertex(a, b, da/(da-db)))
		}
	}
	return out, clipped
}

// lerpVertex interpolates linearly in clip space, where attributes vary
// linearly along an edge.
func lerpVertex(a, b vertexOut, t float32) vertexOut {
	return vertexOut{
		clip:   a.clip.Mul(1 - t).Add(b.clip.Mul(t)),
		world:  a.world.Lerp(b.world, t),
		normal: a.normal.Lerp(b.normal, t),
	}
}

// setup projects a triangle to window space. ok is false when the triangle
// cannot contribute any pixel.
func setup(fb *Framebuffer, v0, v1, v2 vertexOut) (tri setupTriangle, ok, degenerate bool) {
	vs := [3]vertexOut{v0, v1, v2}
	outside := [6]int{}
	w, h := float32(fb.Width), float32(fb.Height)

	for i, v := range vs {
		c := v.clip
		if c.W <= minClipW {
			return tri, false, false
		}
		if c.X < -c.W {
			outside[0]++
		}
		if c.X > c.W {
			outside[1]++
		}
		if c.Y < -c.W {
			outside[2]++
		}
		if c.Y > c.W {
			outside[3]++
		}
		if c.Z < -c.W {
			outside[4]++
		}
		if c.Z > c.W {
			outside[5]++
		}

		invW := 1 / c.W
		tri.invW[i] = invW
		tri.x[i] = (c.X*invW + 1) * 0.5 * w
		tri.y[i] = (1 - c.Y*invW) * 0.5 * h
		tri.z[i] = c.Z*invW*0.5 + 0.5
		tri.world[i] = v.world
		tri.normal[i] = v.normal
	}
	for _, n := range outside {
		if n == 3 {
			return tri, false, false
		}
	}

	area := edge(tri.x[0], tri.y[0], tri.x[1], tri.y[1], tri.x[2], tri.y[2])
	if area == 0 {
		return tri, false, true
	}
	tri.invArea = 1 / area

	tri.minX = max(int(math32.Floor(min(tri.x[0], tri.x[1], tri.x[2]))), 0)
	tri.maxX = min(int(math32.Ceil(max(tri.x[0], tri.x[1], tri.x[2]))), fb.Width-1)
	tri.minY = max(int(math32.Floor(min(tri.y[0], tri.y[1], tri.y[2]))), 0)
	tri.maxY = min(int(math32.Ceil(max(tri.y[0], tri.y[1], tri.y[2]))), fb.Height-1)
	if tri.minX > tri.maxX || tri.minY > tri.maxY {
		return tri, false, false
	}
	return tri, true, false
}

// edge is twice the signed area of (a, b, p).
func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// shadeBand rasterizes every triangle overlapping rows y0..y1 inclusive.
func shadeBand(fb *Framebuffer, tris []setupTriangle, y0, y1 int, eye math.Vec3, shader Shader) (int, error) {
	written := 0
	for t := range tris {
		tri := &tris[t]
		if tri.maxY < y0 || tri.minY > y1 {
			continue
		}
		for y := max(tri.minY, y0); y <= min(tri.maxY, y1); y++ {
			py := float32(y) + 0.5
			for x := tri.minX; x <= tri.maxX; x++ {
				px := float32(x) + 0.5

				// barycentric weights, positive inside for either winding
				b0 := edge(tri.x[1], tri.y[1], tri.x[2], tri.y[2], px, py) * tri.invArea
				b1 := edge(tri.x[2], tri.y[2], tri.x[0], tri.y[0], px, py) * tri.invArea
				b2 := edge(tri.x[0], tri.y[0], tri.x[1], tri.y[1], px, py) * tri.invArea
				if b0 < 0 || b1 < 0 || b2 < 0 {
					continue
				}

				// vertices cut onto the near plane may round a hair below 0
				depth := max(b0*tri.z[0]+b1*tri.z[1]+b2*tri.z[2], 0)
				if depth > 1 || depth >= fb.Depth[y*fb.Width+x] {
					continue
				}

				p0, p1, p2 := b0*tri.invW[0], b1*tri.invW[1], b2*tri.invW[2]
				norm := 1 / (p0 + p1 + p2)
				p0, p1, p2 = p0*norm, p1*norm, p2*norm

				frag := lighting.Fragment{
					Normal:        tri.normal[0].Mul(p0).Add(tri.normal[1].Mul(p1)).Add(tri.normal[2].Mul(p2)),
					WorldPosition: tri.world[0].Mul(p0).Add(tri.world[1].Mul(p1)).Add(tri.world[2].Mul(p2)),
					ViewPosition:  eye,
				}
				c, err := shader.Shade(frag)
				if err != nil {
					return written, fmt.Errorf("pixel (%d,%d): %w", x, y, err)
				}
				fb.set(x, y, c, depth)
				written++
			}
		}
	}
	return written, nil
}
