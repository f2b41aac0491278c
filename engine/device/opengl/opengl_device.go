// Package opengl implements the device.Device interface on top of OpenGL 4.1
// core via go-gl. It must only be used from the thread that owns the GL
// context (the window locks the OS thread for this reason).
package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/ember3d/ember-go/engine/device"
	"github.com/ember3d/ember-go/internal/logger"
)

// openGLDevice is the implementation of the device.Device interface.
type openGLDevice struct {
	// vao is the default vertex array object. Core profile contexts refuse
	// attribute setup and draw calls without a bound VAO.
	vao uint32
}

var _ device.Device = &openGLDevice{}

// New initializes the OpenGL function pointers and returns a ready device.
// A current GL context is required before calling this.
//
// Returns:
//   - device.Device: the OpenGL-backed device
//   - error: an error if OpenGL initialization fails
func New() (device.Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	d := &openGLDevice{}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	logger.Log.Info("OpenGL device initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
	)
	return d, nil
}

func (d *openGLDevice) CompileStage(kind device.StageKind, source string) (device.Stage, error) {
	var glKind uint32
	switch kind {
	case device.StageVertex:
		glKind = gl.VERTEX_SHADER
	case device.StageFragment:
		glKind = gl.FRAGMENT_SHADER
	default:
		return 0, &device.ShaderStageError{Stage: kind, Diagnostic: "unsupported stage kind"}
	}

	shader := gl.CreateShader(glKind)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		diagnostic := shaderInfoLog(shader)
		gl.DeleteShader(shader)
		return 0, &device.ShaderStageError{Stage: kind, Diagnostic: diagnostic}
	}
	return device.Stage(shader), nil
}

func (d *openGLDevice) DeleteStage(stage device.Stage) {
	gl.DeleteShader(uint32(stage))
}

func (d *openGLDevice) LinkProgram(vertex, fragment device.Stage) (device.Program, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, uint32(vertex))
	gl.AttachShader(program, uint32(fragment))
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		diagnostic := programInfoLog(program)
		gl.DeleteProgram(program)
		return 0, &device.ProgramLinkError{Diagnostic: diagnostic}
	}
	return device.Program(program), nil
}

func (d *openGLDevice) DeleteProgram(program device.Program) {
	gl.DeleteProgram(uint32(program))
}

func (d *openGLDevice) UseProgram(program device.Program) {
	gl.UseProgram(uint32(program))
}

func (d *openGLDevice) AttributeLocation(program device.Program, name string) (int32, bool) {
	loc := gl.GetAttribLocation(uint32(program), gl.Str(name+"\x00"))
	if loc < 0 {
		return 0, false
	}
	return loc, true
}

func (d *openGLDevice) UniformLocation(program device.Program, name string) (int32, bool) {
	loc := gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00"))
	if loc < 0 {
		return 0, false
	}
	return loc, true
}

func (d *openGLDevice) ApplyUniform(location int32, value device.UniformValue) error {
	switch value.Kind() {
	case device.UniformKindFloat:
		gl.Uniform1f(location, value.Scalar())
	case device.UniformKindVec3:
		v := value.Vec3()
		gl.Uniform3f(location, v.X(), v.Y(), v.Z())
	case device.UniformKindVec4:
		v := value.Vec4()
		gl.Uniform4f(location, v.X(), v.Y(), v.Z(), v.W())
	case device.UniformKindMat4:
		m := value.Mat4()
		gl.UniformMatrix4fv(location, 1, false, &m[0])
	case device.UniformKindTexture:
		unit, ok := value.TextureUnit()
		if !ok {
			// Unassigned samplers are skipped, not an error.
			return nil
		}
		gl.Uniform1i(location, unit)
	default:
		return &device.UniformApplyError{Location: location, Kind: value.Kind(), Reason: "unsupported uniform kind"}
	}

	if glErr := gl.GetError(); glErr != gl.NO_ERROR {
		return &device.UniformApplyError{
			Location: location,
			Kind:     value.Kind(),
			Reason:   fmt.Sprintf("GL error 0x%04x", glErr),
		}
	}
	return nil
}

func (d *openGLDevice) CreateVertexBuffer(data []float32) device.Buffer {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	return device.Buffer(vbo)
}

func (d *openGLDevice) CreateIndexBuffer(data []uint32) device.Buffer {
	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	return device.Buffer(ebo)
}

func (d *openGLDevice) BindVertexBuffer(buffer device.Buffer) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(buffer))
}

func (d *openGLDevice) BindIndexBuffer(buffer device.Buffer) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(buffer))
}

func (d *openGLDevice) EnableVertexAttribute(location int32, componentSize int32) {
	gl.EnableVertexAttribArray(uint32(location))
	gl.VertexAttribPointerWithOffset(uint32(location), componentSize, gl.FLOAT, false, 0, 0)
}

func (d *openGLDevice) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *openGLDevice) EnableCullFace() {
	gl.Enable(gl.CULL_FACE)
}

func (d *openGLDevice) EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
}

func (d *openGLDevice) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *openGLDevice) DrawTriangles(vertexCount int32) {
	gl.DrawArrays(gl.TRIANGLES, 0, vertexCount)
}

func (d *openGLDevice) DrawIndexedTriangles(indexCount int32) {
	gl.DrawElementsWithOffset(gl.TRIANGLES, indexCount, gl.UNSIGNED_INT, 0)
}

// shaderInfoLog fetches the compiler info log for a failed shader.
func shaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return "unknown error compiling shader"
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

// programInfoLog fetches the linker info log for a failed program.
func programInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return "unknown error linking program"
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}
