// Package engine wires the core together into a fixed per-frame pipeline:
// light aggregation, then the material recompilation check, then the render
// pass. The pipeline replaces dynamic system dispatch with an explicit call
// order; the update phases have exclusive write access to the transform graph
// and material arena, and the render phase only reads.
package engine

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"go.uber.org/zap"

	"github.com/ember3d/ember-go/engine/camera"
	"github.com/ember3d/ember-go/engine/device"
	"github.com/ember3d/ember-go/engine/light"
	"github.com/ember3d/ember-go/engine/profiler"
	"github.com/ember3d/ember-go/engine/renderer"
	"github.com/ember3d/ember-go/engine/renderer/material"
	"github.com/ember3d/ember-go/engine/scene"
	"github.com/ember3d/ember-go/engine/window"
	"github.com/ember3d/ember-go/internal/logger"
)

// engineImpl is the implementation of the Engine interface.
type engineImpl struct {
	dev       device.Device
	cam       camera.Camera
	rend      renderer.Renderer
	win       window.Window
	graph     *scene.Graph
	materials *material.Arena

	sources []light.Source
	repo    light.Repository

	// prepPool runs the device-free shader source preparation for materials
	// that need a recompile. Workers are reused across frames; a WaitGroup
	// provides the per-frame barrier. Compilation itself stays serial on the
	// device thread.
	prepPool    worker.DynamicWorkerPool
	prepWorkers int

	// prof is ticked once per frame when profiling is enabled.
	prof *profiler.Profiler
}

// Engine defines the interface for the per-frame pipeline that drives the
// rendering core.
type Engine interface {
	// Graph returns the transform graph.
	//
	// Returns:
	//   - *scene.Graph: the transform graph
	Graph() *scene.Graph

	// Materials returns the material arena.
	//
	// Returns:
	//   - *material.Arena: the material arena
	Materials() *material.Arena

	// Camera returns the active camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Renderer returns the frame renderer.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// AddLight registers a light-emitting entity with the scene. The entity
	// is classified into a lighting bucket every frame by its component shape.
	//
	// Parameters:
	//   - source: the light source entry
	AddLight(source light.Source)

	// Lights returns the frame's aggregated lighting repository. Valid after
	// the first Step.
	//
	// Returns:
	//   - *light.Repository: the lighting repository
	Lights() *light.Repository

	// Step runs one frame of the pipeline: aggregate lights, recompile any
	// material whose light configuration went stale, then render. Must be
	// called from the device thread.
	Step()

	// Run drives Step in a loop until the window is closed, polling events
	// before and presenting after each frame. Requires a window.
	Run()
}

var _ Engine = &engineImpl{}

// NewEngine creates an Engine over an already-constructed device, camera,
// renderer, material arena, and transform graph.
//
// Parameters:
//   - dev: the graphics device
//   - cam: the active camera
//   - rend: the frame renderer
//   - materials: the material arena
//   - graph: the transform graph
//   - options: variadic list of EngineBuilderOption functions to configure the engine
//
// Returns:
//   - Engine: a new Engine instance
func NewEngine(dev device.Device, cam camera.Camera, rend renderer.Renderer, materials *material.Arena, graph *scene.Graph, options ...EngineBuilderOption) Engine {
	e := &engineImpl{
		dev:         dev,
		cam:         cam,
		rend:        rend,
		materials:   materials,
		graph:       graph,
		prepWorkers: defaultPrepWorkers(),
	}
	for _, opt := range options {
		opt(e)
	}

	// Queue size of 64 covers typical material counts with headroom.
	e.prepPool = worker.NewDynamicWorkerPool(e.prepWorkers, 64, 1*time.Second)

	if e.win != nil {
		e.win.SetResizeHandler(func(width, height int) {
			e.dev.Viewport(width, height)
			if height > 0 {
				e.cam.SetAspectRatio(float32(width) / float32(height))
			}
		})
		width, height := e.win.Size()
		e.dev.Viewport(width, height)
		e.cam.SetAspectRatio(e.win.AspectRatio())
	}

	return e
}

func (e *engineImpl) Graph() *scene.Graph {
	return e.graph
}

func (e *engineImpl) Materials() *material.Arena {
	return e.materials
}

func (e *engineImpl) Camera() camera.Camera {
	return e.cam
}

func (e *engineImpl) Renderer() renderer.Renderer {
	return e.rend
}

func (e *engineImpl) AddLight(source light.Source) {
	e.sources = append(e.sources, source)
}

func (e *engineImpl) Lights() *light.Repository {
	return &e.repo
}

func (e *engineImpl) Step() {
	// Phase 1: rebuild the lighting repository from this frame's sources.
	e.repo.Aggregate(e.sources, e.graph)
	cfg := e.repo.Config()

	// Phase 2: recompile materials whose light configuration went stale.
	e.recompileStale(cfg)

	// Phase 3: render. The render pass only reads the graph and the arena.
	e.rend.RenderFrame(&e.repo)

	if e.prof != nil {
		e.prof.Tick()
	}
}

func (e *engineImpl) Run() {
	if e.win == nil {
		logger.Log.Error("engine Run requires a window; use Step for headless frames")
		return
	}
	for !e.win.ShouldClose() {
		e.win.Poll()
		e.Step()
		e.win.SwapBuffers()
	}
}

// recompileStale finds every material that must compile for cfg, prepares
// their shader sources in parallel on the worker pool (pure string work), and
// compiles the prepared sources serially on the device thread. A failed
// compile keeps the material's previous program, so rendering continues with
// stale-but-valid state.
func (e *engineImpl) recompileStale(cfg light.Config) {
	var pending []*material.Material
	e.materials.Each(func(_ material.Handle, m *material.Material) {
		if m.ShouldCompile(cfg) {
			pending = append(pending, m)
		}
	})
	if len(pending) == 0 {
		return
	}

	prepared := make([]material.PreparedSources, len(pending))
	var wg sync.WaitGroup
	for i, m := range pending {
		wg.Add(1)
		idx, mat := i, m
		e.prepPool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				prepared[idx] = mat.PrepareSources(cfg)
				return nil, nil
			},
		})
	}
	wg.Wait()

	for i, m := range pending {
		if err := m.CompilePrepared(e.dev, prepared[i]); err != nil {
			logger.Log.Warn("material recompile failed, keeping previous program",
				zap.String("material", m.ID()),
				zap.Error(err),
			)
		}
	}
}
