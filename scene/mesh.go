package scene

import (
	"phong-engine/core"
)

// Mesh holds CPU-side, non-indexed triangle data (three vertices per
// triangle). GPU upload is managed by the renderer backend.
type Mesh struct {
	Name     string
	Vertices []core.Vertex

	// GPUData is set by the renderer backend (e.g. *opengl.GPUMesh).
	GPUData interface{}
}

func NewMesh(name string, vertices []core.Vertex) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: vertices,
	}
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// Triangle returns the three vertices of triangle i.
func (m *Mesh) Triangle(i int) [3]core.Vertex {
	return [3]core.Vertex{m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2]}
}

// Positions flattens vertex positions to x,y,z triples for VBO upload.
func (m *Mesh) Positions() []float32 {
	out := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		out = append(out, v.Position.X, v.Position.Y, v.Position.Z)
	}
	return out
}

// Normals flattens vertex normals in the same order as Positions.
func (m *Mesh) Normals() []float32 {
	out := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		out = append(out, v.Normal.X, v.Normal.Y, v.Normal.Z)
	}
	return out
}
