// Package material implements shader program ownership: Materials compile and
// link shader stages against a light configuration and cache attribute and
// uniform locations; MaterialInstances share one Material through the Arena
// while carrying their own uniform overrides. Locations are only valid for the
// program generation they were resolved against; every successful recompile
// invalidates them.
package material

import (
	"go.uber.org/zap"

	"github.com/ember3d/ember-go/engine/device"
	"github.com/ember3d/ember-go/internal/logger"
)

// ViewProjectionUniform is the global uniform holding the camera's combined
// view-projection matrix, pushed once per material batch.
const ViewProjectionUniform = "u_vpMatrix"

// WorldMatrixUniform is the per-drawable uniform holding the object's
// local-to-world matrix, pushed through the drawable's MaterialInstance.
const WorldMatrixUniform = "u_worldMatrix"

// Slot is a resolved uniform or attribute location. Found is false when the
// program has no input of that name, which is common for unused shader inputs
// and never fatal.
type Slot struct {
	// Location is the device-side location, valid only if Found.
	Location int32

	// Found reports whether the name resolved against the program.
	Found bool
}

// Uniform is a named, typed shader input paired with its cached location.
// The location is resolved at most once per program generation; Materials and
// MaterialInstances invalidate it when their program is replaced.
type Uniform struct {
	name     string
	value    device.UniformValue
	location int32
	found    bool
	resolved bool
}

// NewUniform creates a uniform with an unresolved location.
//
// Parameters:
//   - name: the uniform name as declared in the shader source
//   - value: the typed value to push
//
// Returns:
//   - Uniform: the new uniform
func NewUniform(name string, value device.UniformValue) Uniform {
	return Uniform{name: name, value: value}
}

// Name returns the uniform's name.
//
// Returns:
//   - string: the name
func (u *Uniform) Name() string {
	return u.name
}

// Value returns the uniform's current value.
//
// Returns:
//   - device.UniformValue: the value
func (u *Uniform) Value() device.UniformValue {
	return u.value
}

// Location returns the resolved location, if any.
//
// Returns:
//   - int32: the location, valid only if resolved and found
//   - bool: false if unresolved or not present in the program
func (u *Uniform) Location() (int32, bool) {
	if !u.resolved || !u.found {
		return 0, false
	}
	return u.location, true
}

// LookupLocation resolves the uniform's location against a program. A missing
// name is logged as a warning and remembered, so later Apply calls skip the
// uniform silently. Idempotent until invalidated.
//
// Parameters:
//   - dev: the graphics device
//   - program: the program to resolve against
func (u *Uniform) LookupLocation(dev device.Device, program device.Program) {
	if u.resolved {
		return
	}
	u.location, u.found = dev.UniformLocation(program, u.name)
	u.resolved = true
	if !u.found {
		logger.Log.Warn("uniform not found in program", zap.String("uniform", u.name))
	}
}

// Apply pushes the uniform's value to its resolved location. Unresolved or
// missing uniforms are skipped without error (the miss was warned about at
// lookup time).
//
// Parameters:
//   - dev: the graphics device
//
// Returns:
//   - error: a *device.UniformApplyError if the device rejected the value
func (u *Uniform) Apply(dev device.Device) error {
	if !u.resolved || !u.found {
		return nil
	}
	return dev.ApplyUniform(u.location, u.value)
}

// invalidate clears the cached location so the next lookup resolves against
// the current program.
func (u *Uniform) invalidate() {
	u.resolved = false
	u.found = false
}

// setUniform upserts by name into an ordered uniform set: an existing name
// keeps its position (and cached location) and only the value is replaced; a
// new name is appended.
func setUniform(set []Uniform, name string, value device.UniformValue) []Uniform {
	for i := range set {
		if set[i].name == name {
			set[i].value = value
			return set
		}
	}
	return append(set, NewUniform(name, value))
}

// applyUniforms resolves any not-yet-resolved uniform in the set against the
// program and pushes every value. Per-uniform failures are logged and do not
// abort the remaining pushes.
func applyUniforms(dev device.Device, set []Uniform, program device.Program) {
	for i := range set {
		set[i].LookupLocation(dev, program)
		if err := set[i].Apply(dev); err != nil {
			logger.Log.Warn("failed to apply uniform",
				zap.String("uniform", set[i].name),
				zap.Error(err),
			)
		}
	}
}
