// Package device defines the abstract graphics device the rendering core
// draws through. The core never talks to a graphics API directly: materials
// compile and link through this interface, uniforms are resolved and applied
// through it, and the renderer issues all state changes and draw calls against
// it. The opengl subpackage provides the production implementation; the
// devicetest subpackage provides an in-memory recording implementation for tests.
package device

// StageKind identifies a shader stage.
type StageKind int

const (
	// StageVertex is the vertex shader stage.
	StageVertex StageKind = iota

	// StageFragment is the fragment shader stage.
	StageFragment
)

// String returns a human-readable stage name for diagnostics.
func (k StageKind) String() string {
	switch k {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Stage is an opaque handle to a compiled shader stage.
type Stage uint32

// Program is an opaque handle to a linked shader program.
// The zero value is never a valid program.
type Program uint32

// Buffer is an opaque handle to a device-side vertex or index buffer.
type Buffer uint32

// Device defines the interface for the underlying graphics device.
//
// All methods are synchronous and must only be called from the single logical
// render thread. No method retries or blocks beyond the device call itself.
type Device interface {
	// CompileStage compiles a single shader stage from source text.
	//
	// Parameters:
	//   - kind: the stage to compile (vertex or fragment)
	//   - source: the full shader source text
	//
	// Returns:
	//   - Stage: a handle to the compiled stage on success
	//   - error: a *ShaderStageError carrying the backend diagnostic on failure
	CompileStage(kind StageKind, source string) (Stage, error)

	// DeleteStage releases a compiled shader stage. Safe to call once the
	// stage has been linked into a program.
	//
	// Parameters:
	//   - stage: the stage handle to release
	DeleteStage(stage Stage)

	// LinkProgram links a compiled vertex and fragment stage into a program.
	//
	// Parameters:
	//   - vertex: the compiled vertex stage
	//   - fragment: the compiled fragment stage
	//
	// Returns:
	//   - Program: a handle to the linked program on success
	//   - error: a *ProgramLinkError carrying the backend diagnostic on failure
	LinkProgram(vertex, fragment Stage) (Program, error)

	// DeleteProgram releases a linked program.
	//
	// Parameters:
	//   - program: the program handle to release
	DeleteProgram(program Program)

	// UseProgram makes the given program the active program for subsequent
	// uniform applications and draw calls.
	//
	// Parameters:
	//   - program: the program to activate
	UseProgram(program Program)

	// AttributeLocation queries the location of a named vertex attribute in
	// a linked program.
	//
	// Parameters:
	//   - program: the program to query
	//   - name: the attribute name as declared in the shader source
	//
	// Returns:
	//   - int32: the attribute location, valid only if found
	//   - bool: false if the program has no such attribute
	AttributeLocation(program Program, name string) (int32, bool)

	// UniformLocation queries the location of a named uniform in a linked
	// program.
	//
	// Parameters:
	//   - program: the program to query
	//   - name: the uniform name as declared in the shader source
	//
	// Returns:
	//   - int32: the uniform location, valid only if found
	//   - bool: false if the program has no such active uniform
	UniformLocation(program Program, name string) (int32, bool)

	// ApplyUniform pushes a typed value to a resolved uniform location in the
	// currently active program.
	//
	// Parameters:
	//   - location: the resolved uniform location
	//   - value: the typed value to push
	//
	// Returns:
	//   - error: a *UniformApplyError if the value could not be applied
	ApplyUniform(location int32, value UniformValue) error

	// CreateVertexBuffer uploads vertex data to the device.
	//
	// Parameters:
	//   - data: the raw float32 vertex data
	//
	// Returns:
	//   - Buffer: a handle to the created buffer
	CreateVertexBuffer(data []float32) Buffer

	// CreateIndexBuffer uploads index data to the device.
	//
	// Parameters:
	//   - data: the raw uint32 index data
	//
	// Returns:
	//   - Buffer: a handle to the created buffer
	CreateIndexBuffer(data []uint32) Buffer

	// BindVertexBuffer binds a vertex buffer for subsequent attribute setup
	// and draw calls.
	//
	// Parameters:
	//   - buffer: the vertex buffer to bind
	BindVertexBuffer(buffer Buffer)

	// BindIndexBuffer binds an index buffer for subsequent indexed draw calls.
	//
	// Parameters:
	//   - buffer: the index buffer to bind
	BindIndexBuffer(buffer Buffer)

	// EnableVertexAttribute enables a vertex attribute and describes its
	// layout within the currently bound vertex buffer.
	//
	// Parameters:
	//   - location: the resolved attribute location
	//   - componentSize: the number of float32 components per vertex (1-4)
	EnableVertexAttribute(location int32, componentSize int32)

	// Clear clears the color and depth buffers.
	//
	// Parameters:
	//   - r: red clear component
	//   - g: green clear component
	//   - b: blue clear component
	//   - a: alpha clear component
	Clear(r, g, b, a float32)

	// EnableCullFace enables back-face culling.
	EnableCullFace()

	// EnableDepthTest enables depth testing.
	EnableDepthTest()

	// Viewport sets the rendering viewport in pixels.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	Viewport(width, height int)

	// DrawTriangles issues a non-indexed triangle draw call using the
	// currently bound vertex buffers and active program.
	//
	// Parameters:
	//   - vertexCount: the number of vertices to draw
	DrawTriangles(vertexCount int32)

	// DrawIndexedTriangles issues an indexed triangle draw call using the
	// currently bound index buffer and active program.
	//
	// Parameters:
	//   - indexCount: the number of indices to draw
	DrawIndexedTriangles(indexCount int32)
}
