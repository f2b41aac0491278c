// Package devicetest provides an in-memory device.Device implementation that
// records every call for assertions. Tests use it to count program
// activations, location queries, uniform pushes, and draw calls without a GL
// context.
package devicetest

import (
	"fmt"

	"github.com/ember3d/ember-go/engine/device"
)

// AppliedUniform records a single ApplyUniform call.
type AppliedUniform struct {
	// Location is the uniform location the value was pushed to.
	Location int32

	// Value is the pushed value.
	Value device.UniformValue
}

type locationKey struct {
	program device.Program
	name    string
}

// FakeDevice is a recording implementation of device.Device. The zero value
// from NewFakeDevice resolves every attribute and uniform name to a stable
// per-program location; names listed in MissingNames resolve to "not found".
type FakeDevice struct {
	// MissingNames marks attribute/uniform names that should resolve as absent.
	MissingNames map[string]bool

	// FailNextCompile, when non-empty, makes the next CompileStage call fail
	// with this diagnostic. Consumed on use.
	FailNextCompile string

	// FailNextLink, when non-empty, makes the next LinkProgram call fail with
	// this diagnostic. Consumed on use.
	FailNextLink string

	// FailApplyAt maps uniform locations whose ApplyUniform calls should fail
	// to a failure reason.
	FailApplyAt map[int32]string

	// CompiledSources records every source text passed to CompileStage, per stage kind.
	CompiledSources map[device.StageKind][]string

	// LinkedPrograms records every successfully linked program handle.
	LinkedPrograms []device.Program

	// DeletedPrograms records every DeleteProgram call.
	DeletedPrograms []device.Program

	// ProgramActivations records every UseProgram call, in order.
	ProgramActivations []device.Program

	// AttributeQueries counts AttributeLocation calls.
	AttributeQueries int

	// UniformQueries counts UniformLocation calls.
	UniformQueries int

	// Applied records every ApplyUniform call, in order.
	Applied []AppliedUniform

	// DrawCalls records the vertex count of every DrawTriangles call, in order.
	DrawCalls []int32

	// IndexedDrawCalls records the index count of every DrawIndexedTriangles call.
	IndexedDrawCalls []int32

	// BoundVertexBuffers records every BindVertexBuffer call.
	BoundVertexBuffers []device.Buffer

	// ClearCalls counts Clear calls.
	ClearCalls int

	// CullEnabled reports whether EnableCullFace was called.
	CullEnabled bool

	// DepthEnabled reports whether EnableDepthTest was called.
	DepthEnabled bool

	// ViewportWidth and ViewportHeight record the last Viewport call.
	ViewportWidth, ViewportHeight int

	nextStage    device.Stage
	nextProgram  device.Program
	nextBuffer   device.Buffer
	nextLocation int32
	locations    map[locationKey]int32
}

var _ device.Device = &FakeDevice{}

// NewFakeDevice creates a ready-to-use fake device.
//
// Returns:
//   - *FakeDevice: the fake device
func NewFakeDevice() *FakeDevice {
	return &FakeDevice{
		MissingNames:    make(map[string]bool),
		FailApplyAt:     make(map[int32]string),
		CompiledSources: make(map[device.StageKind][]string),
		locations:       make(map[locationKey]int32),
	}
}

func (f *FakeDevice) CompileStage(kind device.StageKind, source string) (device.Stage, error) {
	if f.FailNextCompile != "" {
		diag := f.FailNextCompile
		f.FailNextCompile = ""
		return 0, &device.ShaderStageError{Stage: kind, Diagnostic: diag}
	}
	f.CompiledSources[kind] = append(f.CompiledSources[kind], source)
	f.nextStage++
	return f.nextStage, nil
}

func (f *FakeDevice) DeleteStage(device.Stage) {}

func (f *FakeDevice) LinkProgram(vertex, fragment device.Stage) (device.Program, error) {
	if f.FailNextLink != "" {
		diag := f.FailNextLink
		f.FailNextLink = ""
		return 0, &device.ProgramLinkError{Diagnostic: diag}
	}
	f.nextProgram++
	f.LinkedPrograms = append(f.LinkedPrograms, f.nextProgram)
	return f.nextProgram, nil
}

func (f *FakeDevice) DeleteProgram(program device.Program) {
	f.DeletedPrograms = append(f.DeletedPrograms, program)
}

func (f *FakeDevice) UseProgram(program device.Program) {
	f.ProgramActivations = append(f.ProgramActivations, program)
}

func (f *FakeDevice) AttributeLocation(program device.Program, name string) (int32, bool) {
	f.AttributeQueries++
	return f.resolve(program, name)
}

func (f *FakeDevice) UniformLocation(program device.Program, name string) (int32, bool) {
	f.UniformQueries++
	return f.resolve(program, name)
}

func (f *FakeDevice) ApplyUniform(location int32, value device.UniformValue) error {
	if reason, ok := f.FailApplyAt[location]; ok {
		return &device.UniformApplyError{Location: location, Kind: value.Kind(), Reason: reason}
	}
	f.Applied = append(f.Applied, AppliedUniform{Location: location, Value: value})
	return nil
}

func (f *FakeDevice) CreateVertexBuffer([]float32) device.Buffer {
	f.nextBuffer++
	return f.nextBuffer
}

func (f *FakeDevice) CreateIndexBuffer([]uint32) device.Buffer {
	f.nextBuffer++
	return f.nextBuffer
}

func (f *FakeDevice) BindVertexBuffer(buffer device.Buffer) {
	f.BoundVertexBuffers = append(f.BoundVertexBuffers, buffer)
}

func (f *FakeDevice) BindIndexBuffer(device.Buffer) {}

func (f *FakeDevice) EnableVertexAttribute(int32, int32) {}

func (f *FakeDevice) Clear(r, g, b, a float32) {
	f.ClearCalls++
}

func (f *FakeDevice) EnableCullFace() {
	f.CullEnabled = true
}

func (f *FakeDevice) EnableDepthTest() {
	f.DepthEnabled = true
}

func (f *FakeDevice) Viewport(width, height int) {
	f.ViewportWidth, f.ViewportHeight = width, height
}

func (f *FakeDevice) DrawTriangles(vertexCount int32) {
	f.DrawCalls = append(f.DrawCalls, vertexCount)
}

func (f *FakeDevice) DrawIndexedTriangles(indexCount int32) {
	f.IndexedDrawCalls = append(f.IndexedDrawCalls, indexCount)
}

// AppliedAt returns the values pushed to a given location, in push order.
//
// Parameters:
//   - location: the uniform location to filter by
//
// Returns:
//   - []device.UniformValue: the values pushed to that location
func (f *FakeDevice) AppliedAt(location int32) []device.UniformValue {
	var out []device.UniformValue
	for _, a := range f.Applied {
		if a.Location == location {
			out = append(out, a.Value)
		}
	}
	return out
}

// LocationOf returns the location the fake assigned to a name within a
// program, without counting as a query. The name must have been resolved
// already.
//
// Parameters:
//   - program: the program the name was resolved against
//   - name: the attribute or uniform name
//
// Returns:
//   - int32: the assigned location
//   - bool: false if the name was never resolved
func (f *FakeDevice) LocationOf(program device.Program, name string) (int32, bool) {
	loc, ok := f.locations[locationKey{program: program, name: name}]
	return loc, ok
}

func (f *FakeDevice) resolve(program device.Program, name string) (int32, bool) {
	if f.MissingNames[name] {
		return 0, false
	}
	key := locationKey{program: program, name: name}
	if loc, ok := f.locations[key]; ok {
		return loc, true
	}
	f.nextLocation++
	f.locations[key] = f.nextLocation
	return f.nextLocation, true
}

// String summarizes the recorded call log, for test failure messages.
func (f *FakeDevice) String() string {
	return fmt.Sprintf("fake device: %d activations, %d uniform queries, %d attribute queries, %d applies, %d draws",
		len(f.ProgramActivations), f.UniformQueries, f.AttributeQueries, len(f.Applied), len(f.DrawCalls))
}
