package material

import (
	"github.com/ember3d/ember-go/engine/device"
)

// MaterialInstance is a per-drawable view over a shared Material. It carries
// its own ordered uniform set — a namespace distinct from the parent's shared
// set — and resolves those uniforms against the parent's program. Many
// instances may share one parent; the parent is addressed through the Arena by
// Handle.
type MaterialInstance struct {
	arena  *Arena
	parent Handle
	id     string

	uniforms []Uniform

	// lookupDone is valid only while parentGeneration matches the parent's
	// current program generation; a parent recompile makes the instance's
	// locations stale and forces re-resolution.
	lookupDone       bool
	parentGeneration uint64
}

// ID returns the instance's own identifier.
//
// Returns:
//   - string: the identifier
func (mi *MaterialInstance) ID() string {
	return mi.id
}

// Parent returns the handle of the shared parent material.
//
// Returns:
//   - Handle: the parent handle
func (mi *MaterialInstance) Parent() Handle {
	return mi.parent
}

// ParentID returns the parent material's stable identifier, used by the
// renderer to key mesh buckets.
//
// Returns:
//   - string: the parent material's identifier
func (mi *MaterialInstance) ParentID() string {
	return mi.arena.Get(mi.parent).ID()
}

// IsTransparent reports the parent material's transparency setting.
//
// Returns:
//   - bool: true if the parent is semi-transparent
func (mi *MaterialInstance) IsTransparent() bool {
	return mi.arena.Get(mi.parent).IsTransparent()
}

// LookupLocations resolves the instance's uniform locations. The parent's
// lookup is forced first, since instance uniforms bind against the parent's
// program. Idempotent for a given parent program generation; when the parent
// recompiles, the next call detects the generation change, drops every stale
// location, and re-resolves.
//
// Parameters:
//   - dev: the graphics device
func (mi *MaterialInstance) LookupLocations(dev device.Device) {
	parent := mi.arena.Get(mi.parent)
	parent.LookupLocations(dev)

	program, ok := parent.Program()
	if !ok {
		return
	}
	if mi.lookupDone && mi.parentGeneration == parent.Generation() {
		return
	}
	for i := range mi.uniforms {
		mi.uniforms[i].invalidate()
		mi.uniforms[i].LookupLocation(dev, program)
	}
	mi.lookupDone = true
	mi.parentGeneration = parent.Generation()
}

// LookupDone reports whether the instance's locations are resolved against
// the parent's current program generation.
//
// Returns:
//   - bool: true if resolved and not stale
func (mi *MaterialInstance) LookupDone() bool {
	return mi.lookupDone && mi.parentGeneration == mi.arena.Get(mi.parent).Generation()
}

// SetUniform upserts an instance-local uniform by name: an existing name
// keeps its position and only its value changes; a new name is appended.
//
// Parameters:
//   - name: the uniform name
//   - value: the typed value to set
func (mi *MaterialInstance) SetUniform(name string, value device.UniformValue) {
	mi.uniforms = setUniform(mi.uniforms, name, value)
}

// PushUniforms upserts a batch of instance-local uniforms, in order.
//
// Parameters:
//   - uniforms: the uniforms to set
func (mi *MaterialInstance) PushUniforms(uniforms []Uniform) {
	for i := range uniforms {
		mi.SetUniform(uniforms[i].name, uniforms[i].value)
	}
}

// SetParentUniform mutates the shared parent material's uniform set. Use this
// when an instance-level call site needs to update a value that is
// semantically shared across all instances.
//
// Parameters:
//   - name: the shared uniform name
//   - value: the typed value to set
func (mi *MaterialInstance) SetParentUniform(name string, value device.UniformValue) {
	mi.arena.Get(mi.parent).SetUniform(name, value)
}

// Uniforms returns a copy of the instance-local uniform set, in order.
//
// Returns:
//   - []Uniform: the instance uniforms
func (mi *MaterialInstance) Uniforms() []Uniform {
	out := make([]Uniform, len(mi.uniforms))
	copy(out, mi.uniforms)
	return out
}

// ApplyUniforms pushes only the instance's own uniforms into the currently
// bound program. The caller must have activated the parent's program and
// pushed the parent's shared uniforms first, so instance values are applied
// second. Per-uniform failures are logged and do not abort remaining pushes.
//
// Parameters:
//   - dev: the graphics device
func (mi *MaterialInstance) ApplyUniforms(dev device.Device) {
	program, ok := mi.arena.Get(mi.parent).Program()
	if !ok {
		return
	}
	applyUniforms(dev, mi.uniforms, program)
}
