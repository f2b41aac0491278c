package device

import "fmt"

// ShaderStageError reports a shader stage that failed to compile. Diagnostic
// carries the backend-provided info log verbatim.
type ShaderStageError struct {
	// Stage is the shader stage that failed.
	Stage StageKind

	// Diagnostic is the backend compiler's info log text.
	Diagnostic string
}

func (e *ShaderStageError) Error() string {
	return fmt.Sprintf("%s shader failed to compile: %s", e.Stage, e.Diagnostic)
}

// ProgramLinkError reports a program whose stages compiled but failed to link.
type ProgramLinkError struct {
	// Diagnostic is the backend linker's info log text.
	Diagnostic string
}

func (e *ProgramLinkError) Error() string {
	return fmt.Sprintf("program failed to link: %s", e.Diagnostic)
}

// UniformApplyError reports a typed value that could not be pushed to a
// resolved uniform location, e.g. a type mismatch. These are caught
// per-uniform and logged by callers; they never abort a frame.
type UniformApplyError struct {
	// Location is the uniform location the push targeted.
	Location int32

	// Kind is the wire type of the rejected value.
	Kind UniformKind

	// Reason describes why the value was rejected.
	Reason string
}

func (e *UniformApplyError) Error() string {
	return fmt.Sprintf("failed to apply %s uniform at location %d: %s", e.Kind, e.Location, e.Reason)
}
