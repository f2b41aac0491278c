// Package renderer implements the draw loop: it owns the registered meshes,
// orders them opaque-first (transparents depth-sorted back to front), and
// walks the ordered list activating each material's program and pushing its
// shared uniforms exactly once per material-key boundary before issuing the
// per-mesh draw calls.
package renderer

import (
	"math"
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/ember3d/ember-go/engine/camera"
	"github.com/ember3d/ember-go/engine/device"
	"github.com/ember3d/ember-go/engine/light"
	"github.com/ember3d/ember-go/engine/mesh"
	"github.com/ember3d/ember-go/engine/renderer/material"
	"github.com/ember3d/ember-go/engine/scene"
	"github.com/ember3d/ember-go/internal/logger"
)

// noKey is the sentinel for "no material bound yet" in the draw loop.
const noKey = ^uint32(0)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu sync.Mutex

	dev       device.Device
	cam       camera.Camera
	materials *material.Arena
	graph     *scene.Graph

	// meshRepository buckets registered meshes by the numeric key of their
	// parent material. Insertion order within a bucket is preserved.
	meshRepository map[uint32][]mesh.Mesh

	// materialKeys assigns a fresh numeric key to each material the first
	// time it is seen; bucketOrder remembers first-seen order so opaque
	// iteration is deterministic.
	materialKeys    map[string]uint32
	bucketOrder     []uint32
	nextMaterialKey uint32

	clearColor [4]float32

	// cullingEnabled turns on per-mesh frustum culling. Off by default since
	// meshes carry no bounds unless the caller sets one.
	cullingEnabled bool
}

// Renderer defines the interface for the frame renderer. Meshes must be
// registered before they are drawn; registration is not idempotent, so each
// mesh must be registered exactly once.
type Renderer interface {
	// Register adds a mesh to the repository: resolves its locations once
	// (guarded by the mesh's own resolved flag), assigns its material a
	// numeric key if the material has not been seen before, and appends the
	// mesh to that key's bucket. Registering the same mesh twice duplicates it.
	//
	// Parameters:
	//   - m: the mesh to register
	Register(m mesh.Mesh)

	// RenderFrame draws every registered mesh: computes the view-projection
	// matrix once, clears color and depth, enables culling and depth testing,
	// orders the meshes, and walks the order issuing one program activation
	// plus shared-uniform push per material-key boundary and one draw call
	// per mesh.
	//
	// Parameters:
	//   - repo: the frame's aggregated lighting, pushed to lit materials at
	//     each material boundary
	RenderFrame(repo *light.Repository)
}

var _ Renderer = &renderer{}

// NewRenderer creates a renderer configured with the provided options.
//
// Parameters:
//   - dev: the graphics device to draw through
//   - cam: the camera providing the view-projection matrix
//   - materials: the material arena drawables reference into
//   - graph: the transform graph providing per-object world matrices
//   - options: variadic list of RendererBuilderOption functions to configure the renderer
//
// Returns:
//   - Renderer: a new Renderer instance
func NewRenderer(dev device.Device, cam camera.Camera, materials *material.Arena, graph *scene.Graph, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		dev:            dev,
		cam:            cam,
		materials:      materials,
		graph:          graph,
		meshRepository: make(map[uint32][]mesh.Mesh),
		materialKeys:   make(map[string]uint32),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) Register(m mesh.Mesh) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.LookupLocations(r.dev)

	id := m.MaterialInstance().ParentID()
	key, ok := r.materialKeys[id]
	if !ok {
		key = r.nextMaterialKey
		r.nextMaterialKey++
		r.materialKeys[id] = key
		r.bucketOrder = append(r.bucketOrder, key)
	}
	r.meshRepository[key] = append(r.meshRepository[key], m)
}

func (r *renderer) RenderFrame(repo *light.Repository) {
	r.mu.Lock()
	defer r.mu.Unlock()

	viewProjection := r.cam.ComputeViewProjectionMatrix()
	r.dev.Clear(r.clearColor[0], r.clearColor[1], r.clearColor[2], r.clearColor[3])
	r.dev.EnableCullFace()
	r.dev.EnableDepthTest()

	var frustum camera.Frustum
	if r.cullingEnabled {
		frustum = camera.FrustumFromMatrix(viewProjection)
	}

	currentKey := noKey
	for _, m := range r.sortObjects() {
		if r.cullingEnabled && r.culled(m, frustum) {
			continue
		}
		instance := m.MaterialInstance()
		key := r.materialKeys[instance.ParentID()]
		parent := r.materials.Get(instance.Parent())

		program, compiled := parent.Program()
		if !compiled {
			logger.Log.Warn("skipping mesh with uncompiled material",
				zap.String("material", parent.ID()),
			)
			continue
		}

		// Program activation and shared-uniform pushes happen only on a
		// material-key boundary, never per mesh.
		if key != currentKey {
			currentKey = key
			r.dev.UseProgram(program)
			parent.LookupLocations(r.dev)
			r.applySlot(parent.Global().ViewProjection, device.Mat4(viewProjection))
			parent.ApplyUniforms(r.dev)
			if parent.Lit() {
				r.pushLights(parent.Global(), repo)
			}
		}

		if id := m.Transform(); id != scene.NoTransform {
			instance.SetUniform(material.WorldMatrixUniform, device.Mat4(r.graph.WorldMatrix(id)))
		}
		instance.LookupLocations(r.dev)
		instance.ApplyUniforms(r.dev)

		m.Bind(r.dev, parent)
		if indexCount, indexed := m.IndexCount(); indexed {
			r.dev.DrawIndexedTriangles(indexCount)
		} else {
			r.dev.DrawTriangles(m.VertexCount())
		}
	}
}

// sortObjects produces the frame's draw order: every opaque mesh first, in
// bucket (first-seen material) order, followed by every transparent mesh
// sorted back to front by distance from the camera. Meshes without a
// transform sort as distance zero.
func (r *renderer) sortObjects() []mesh.Mesh {
	var opaque []mesh.Mesh
	var transparent []mesh.Mesh
	for _, key := range r.bucketOrder {
		for _, m := range r.meshRepository[key] {
			if m.MaterialInstance().IsTransparent() {
				transparent = append(transparent, m)
			} else {
				opaque = append(opaque, m)
			}
		}
	}

	eye := r.cam.Position()
	sort.SliceStable(transparent, func(i, j int) bool {
		return r.cameraDistance(transparent[i], eye) > r.cameraDistance(transparent[j], eye)
	})

	return append(opaque, transparent...)
}

// culled reports whether a mesh's world-space bounding sphere lies fully
// outside the frustum. Meshes without a transform are never culled. The world
// scale is folded into the radius so scaled meshes keep correct bounds.
func (r *renderer) culled(m mesh.Mesh, frustum camera.Frustum) bool {
	id := m.Transform()
	if id == scene.NoTransform {
		return false
	}
	world := r.graph.WorldMatrix(id)
	center := world.Col(3).Vec3()
	radius := m.BoundsRadius() * maxScale(world)
	return !frustum.ContainsSphere(center, radius)
}

// maxScale returns the largest axis scale encoded in a world matrix.
func maxScale(world mgl32.Mat4) float32 {
	sx := world.Col(0).Vec3().Len()
	sy := world.Col(1).Vec3().Len()
	sz := world.Col(2).Vec3().Len()
	return max(sx, sy, sz)
}

// cameraDistance measures a mesh's world-space distance from the eye for the
// transparent back-to-front sort.
func (r *renderer) cameraDistance(m mesh.Mesh, eye mgl32.Vec3) float32 {
	id := m.Transform()
	if id == scene.NoTransform {
		return 0
	}
	world := r.graph.WorldMatrix(id)
	position := world.Col(3).Vec3()
	return position.Sub(eye).Len()
}

// pushLights pushes the frame's aggregated lighting into the currently bound
// lit program through its resolved global locations. Array elements beyond the
// compiled light configuration are dropped; missing locations are skipped.
func (r *renderer) pushLights(global *material.GlobalLocations, repo *light.Repository) {
	if repo == nil {
		return
	}
	if repo.Ambient != nil {
		r.applySlot(global.AmbientColor, device.Vec3(repo.Ambient.Color))
		r.applySlot(global.AmbientIntensity, device.Float(repo.Ambient.Intensity))
	}
	for i, entry := range repo.Directional {
		if i >= len(global.Directional) {
			break
		}
		locs := global.Directional[i]
		r.applySlot(locs.Direction, device.Vec3(entry.Direction.Value))
		r.applySlot(locs.Color, device.Vec3(entry.Light.Color()))
		r.applySlot(locs.Intensity, device.Float(entry.Light.Intensity()))
	}
	for i, entry := range repo.Point {
		if i >= len(global.Point) {
			break
		}
		locs := global.Point[i]
		r.applySlot(locs.Position, device.Vec3(entry.World.Col(3).Vec3()))
		r.applySlot(locs.Color, device.Vec3(entry.Light.Color()))
		r.applySlot(locs.Intensity, device.Float(entry.Light.Intensity()))
		r.applySlot(locs.Attenuation, device.Float(entry.Light.Attenuation()))
	}
	for i, entry := range repo.Spot {
		if i >= len(global.Spot) {
			break
		}
		locs := global.Spot[i]
		r.applySlot(locs.Position, device.Vec3(entry.World.Col(3).Vec3()))
		r.applySlot(locs.Direction, device.Vec3(entry.Direction.Value))
		r.applySlot(locs.Cone, device.Float(float32(math.Cos(float64(entry.Cone.Angle)))))
		r.applySlot(locs.Color, device.Vec3(entry.Light.Color()))
		r.applySlot(locs.Intensity, device.Float(entry.Light.Intensity()))
		r.applySlot(locs.Attenuation, device.Float(entry.Light.Attenuation()))
	}
}

// applySlot pushes a value to a resolved location. Not-found slots are
// skipped; device rejections are logged and never abort the frame.
func (r *renderer) applySlot(s material.Slot, value device.UniformValue) {
	if !s.Found {
		return
	}
	if err := r.dev.ApplyUniform(s.Location, value); err != nil {
		logger.Log.Warn("failed to apply global uniform",
			zap.Int32("location", s.Location),
			zap.Error(err),
		)
	}
}
