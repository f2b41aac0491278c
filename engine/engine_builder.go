package engine

import (
	"runtime"

	"github.com/ember3d/ember-go/engine/profiler"
	"github.com/ember3d/ember-go/engine/window"
)

// EngineBuilderOption is a function that configures an Engine instance during construction.
type EngineBuilderOption func(*engineImpl)

// WithWindow is an option builder that attaches a host window. The engine
// keeps the device viewport and camera aspect ratio in sync with its size,
// and Run drives the frame loop against it.
//
// Parameters:
//   - win: the host window
//
// Returns:
//   - EngineBuilderOption: a function that applies the window option to an engineImpl
func WithWindow(win window.Window) EngineBuilderOption {
	return func(e *engineImpl) {
		e.win = win
	}
}

// WithPrepWorkers is an option builder that overrides the number of workers
// used for parallel shader source preparation.
//
// Parameters:
//   - workers: the worker count, at least 1
//
// Returns:
//   - EngineBuilderOption: a function that applies the worker count option to an engineImpl
func WithPrepWorkers(workers int) EngineBuilderOption {
	return func(e *engineImpl) {
		if workers > 0 {
			e.prepWorkers = workers
		}
	}
}

// WithProfiling is an option builder that enables per-frame performance
// reporting (FPS, heap usage, GC pauses) through the shared logger.
//
// Parameters:
//   - enabled: true to tick a profiler every frame
//
// Returns:
//   - EngineBuilderOption: a function that applies the profiling option to an engineImpl
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engineImpl) {
		if enabled {
			e.prof = profiler.NewProfiler()
		}
	}
}

// defaultPrepWorkers leaves one CPU for the device thread.
func defaultPrepWorkers() int {
	return max(runtime.NumCPU()-1, 1)
}
