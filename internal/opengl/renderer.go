package opengl

import (
	"fmt"
	"log/slog"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"phong-engine/core"
	"phong-engine/math"
	"phong-engine/scene"
)

// Attribute locations fixed by the vertex shader layout qualifiers.
const (
	positionAttrib = 0
	normalAttrib   = 1
)

// GPUMesh holds the OpenGL objects for an uploaded mesh. Positions and
// normals live in separate buffers.
type GPUMesh struct {
	VAO         uint32
	PositionVBO uint32
	NormalVBO   uint32
	VertexCount int32
}

// Renderer is the OpenGL rendering backend.
type Renderer struct {
	program *Program

	viewportW int32
	viewportH int32

	gpuMeshes map[*scene.Mesh]*GPUMesh
}

// ── NewRenderer ───────────────────────────────────────────────────────────────

// NewRenderer initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	slog.Info("OpenGL initialized",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	return &Renderer{
		gpuMeshes: make(map[*scene.Mesh]*GPUMesh),
	}, nil
}

// UseProgram makes p current for subsequent uniform updates and draws.
func (r *Renderer) UseProgram(p *Program) {
	r.program = p
	gl.UseProgram(p.id)
}

// ── Viewport ──────────────────────────────────────────────────────────────────

func (r *Renderer) SetViewport(width, height int) {
	r.viewportW = int32(width)
	r.viewportH = int32(height)
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (r *Renderer) Viewport() (int, int) {
	return int(r.viewportW), int(r.viewportH)
}

// Clear clears color and depth.
func (r *Renderer) Clear(c core.Color) {
	gl.ClearColor(c.R, c.G, c.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ── DrawMesh ──────────────────────────────────────────────────────────────────

// DrawMesh draws a mesh as triangles with the current program. The mesh is
// uploaded on first use.
func (r *Renderer) DrawMesh(mesh *scene.Mesh) error {
	if r.program == nil {
		return fmt.Errorf("draw %q: no program in use", mesh.Name)
	}
	gpu, err := r.ensureUploaded(mesh)
	if err != nil {
		return err
	}

	gl.BindVertexArray(gpu.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, gpu.VertexCount)
	gl.BindVertexArray(0)
	return nil
}

// UploadMesh copies mesh positions and normals into a new VAO.
func (r *Renderer) UploadMesh(mesh *scene.Mesh) (*GPUMesh, error) {
	r.ReleaseMesh(mesh)
	return r.ensureUploaded(mesh)
}

func (r *Renderer) ReleaseMesh(mesh *scene.Mesh) {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		gl.DeleteVertexArrays(1, &gpu.VAO)
		gl.DeleteBuffers(1, &gpu.PositionVBO)
		gl.DeleteBuffers(1, &gpu.NormalVBO)
		delete(r.gpuMeshes, mesh)
		mesh.GPUData = nil
	}
}

// Destroy releases all GPU resources owned by the renderer. Programs are
// owned by the caller.
func (r *Renderer) Destroy() {
	for mesh := range r.gpuMeshes {
		r.ReleaseMesh(mesh)
	}
}

func (r *Renderer) ensureUploaded(mesh *scene.Mesh) (*GPUMesh, error) {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		return gpu, nil
	}
	if mesh.VertexCount() == 0 {
		return nil, fmt.Errorf("upload %q: mesh has no vertices", mesh.Name)
	}

	positions := mesh.Positions()
	normals := mesh.Normals()

	gpu := &GPUMesh{VertexCount: int32(mesh.VertexCount())}
	gl.GenVertexArrays(1, &gpu.VAO)
	gl.BindVertexArray(gpu.VAO)

	gpu.PositionVBO = uploadAttrib(positionAttrib, positions)
	gpu.NormalVBO = uploadAttrib(normalAttrib, normals)

	gl.BindVertexArray(0)

	r.gpuMeshes[mesh] = gpu
	mesh.GPUData = gpu
	slog.Debug("Mesh uploaded", "name", mesh.Name, "vertices", gpu.VertexCount)
	return gpu, nil
}

// uploadAttrib stores tightly packed vec3 data in a new VBO bound to the
// given attribute of the current VAO.
func uploadAttrib(location uint32, data []float32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(location)
	gl.VertexAttribPointer(location, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))
	return vbo
}

// ── Program ───────────────────────────────────────────────────────────────────

// Program is a linked shader program with cached uniform locations.
type Program struct {
	id        uint32
	locations map[string]int32
}

// NewProgram compiles and links a vertex and fragment shader.
func NewProgram(vertSrc, fragSrc string) (*Program, error) {
	id, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, err
	}
	return &Program{id: id, locations: make(map[string]int32)}, nil
}

// Location returns the uniform location for name, or -1 if the program has
// no active uniform of that name.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		slog.Warn("Uniform not found", "name", name)
	}
	p.locations[name] = loc
	return loc
}

// SetMat4 uploads m without transposing; math.Mat4 is already laid out the
// way GLSL reads it.
func (p *Program) SetMat4(name string, m math.Mat4) {
	flat := m.Flatten()
	gl.UniformMatrix4fv(p.Location(name), 1, false, &flat[0])
}

func (p *Program) SetVec3(name string, v math.Vec3) {
	gl.Uniform3f(p.Location(name), v.X, v.Y, v.Z)
}

func (p *Program) SetColor(name string, c core.Color) {
	gl.Uniform3f(p.Location(name), c.R, c.G, c.B)
}

func (p *Program) SetFloat(name string, f float32) {
	gl.Uniform1f(p.Location(name), f)
}

func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// ── Shader helpers ────────────────────────────────────────────────────────────

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", strings.TrimRight(log, "\x00"))
	}

	slog.Debug("Shader program linked", "program", prog)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
