// Package mesh implements drawables: vertex buffers plus a MaterialInstance
// and an optional transform node. A mesh must be registered with the renderer
// exactly once before it can be drawn.
package mesh

import (
	"github.com/ember3d/ember-go/engine/device"
	"github.com/ember3d/ember-go/engine/renderer/material"
	"github.com/ember3d/ember-go/engine/scene"
)

// vertexBuffer is one named attribute stream of a mesh.
type vertexBuffer struct {
	attribute     string
	componentSize int32
	data          []float32

	buffer   device.Buffer
	uploaded bool
}

// meshImpl is the implementation of the Mesh interface.
type meshImpl struct {
	instance  *material.MaterialInstance
	transform scene.TransformID

	buffers     []vertexBuffer
	indices     []uint32
	indexBuffer device.Buffer
	indexed     bool

	vertexCount  int32
	boundsRadius float32
	resolved     bool
}

// Mesh defines the interface for a drawable object: vertex streams, an
// optional index stream, a vertex count, and the MaterialInstance it draws
// with.
type Mesh interface {
	// MaterialInstance returns the mesh's material binding.
	//
	// Returns:
	//   - *material.MaterialInstance: the material instance
	MaterialInstance() *material.MaterialInstance

	// Transform returns the mesh's transform node, or scene.NoTransform if
	// the mesh is not placed in the transform graph.
	//
	// Returns:
	//   - scene.TransformID: the transform node id
	Transform() scene.TransformID

	// SetTransform places the mesh at a transform node.
	//
	// Parameters:
	//   - id: the transform node id
	SetTransform(id scene.TransformID)

	// VertexCount returns the number of vertices to draw for non-indexed
	// meshes. Derived from the first vertex stream unless set explicitly.
	//
	// Returns:
	//   - int32: the vertex count
	VertexCount() int32

	// IndexCount returns the number of indices for indexed meshes.
	//
	// Returns:
	//   - int32: the index count, valid only for indexed meshes
	//   - bool: false if the mesh is not indexed
	IndexCount() (int32, bool)

	// BoundsRadius returns the radius of the mesh's local bounding sphere,
	// used for frustum culling. Zero means the mesh is treated as a point.
	//
	// Returns:
	//   - float32: the bounding sphere radius
	BoundsRadius() float32

	// Resolved reports whether LookupLocations has completed for this mesh.
	//
	// Returns:
	//   - bool: true once buffers are uploaded and locations resolved
	Resolved() bool

	// LookupLocations uploads the mesh's buffers to the device and resolves
	// the material-instance uniform locations. Guarded by the mesh's own
	// resolved flag; the renderer calls this once at registration time.
	//
	// Parameters:
	//   - dev: the graphics device
	LookupLocations(dev device.Device)

	// Bind binds every vertex stream, enables its attribute in the currently
	// active program, and binds the index buffer for indexed meshes.
	// Attribute locations are resolved through the parent material's cache,
	// so a recompiled program picks up fresh locations automatically.
	//
	// Parameters:
	//   - dev: the graphics device
	//   - parent: the mesh's parent material, already activated
	Bind(dev device.Device, parent *material.Material)
}

var _ Mesh = &meshImpl{}

// NewMesh creates a mesh bound to a material instance, configured with the
// provided options.
//
// Parameters:
//   - instance: the material instance the mesh draws with
//   - options: variadic list of MeshBuilderOption functions to configure the mesh
//
// Returns:
//   - Mesh: a new Mesh instance
func NewMesh(instance *material.MaterialInstance, options ...MeshBuilderOption) Mesh {
	m := &meshImpl{
		instance:  instance,
		transform: scene.NoTransform,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *meshImpl) MaterialInstance() *material.MaterialInstance {
	return m.instance
}

func (m *meshImpl) Transform() scene.TransformID {
	return m.transform
}

func (m *meshImpl) SetTransform(id scene.TransformID) {
	m.transform = id
}

func (m *meshImpl) VertexCount() int32 {
	if m.vertexCount > 0 {
		return m.vertexCount
	}
	if len(m.buffers) > 0 && m.buffers[0].componentSize > 0 {
		return int32(len(m.buffers[0].data)) / m.buffers[0].componentSize
	}
	return 0
}

func (m *meshImpl) IndexCount() (int32, bool) {
	if !m.indexed {
		return 0, false
	}
	return int32(len(m.indices)), true
}

func (m *meshImpl) BoundsRadius() float32 {
	return m.boundsRadius
}

func (m *meshImpl) Resolved() bool {
	return m.resolved
}

func (m *meshImpl) LookupLocations(dev device.Device) {
	if m.resolved {
		return
	}
	for i := range m.buffers {
		if !m.buffers[i].uploaded {
			m.buffers[i].buffer = dev.CreateVertexBuffer(m.buffers[i].data)
			m.buffers[i].uploaded = true
		}
	}
	if m.indexed {
		m.indexBuffer = dev.CreateIndexBuffer(m.indices)
	}
	m.instance.LookupLocations(dev)
	m.resolved = true
}

func (m *meshImpl) Bind(dev device.Device, parent *material.Material) {
	for i := range m.buffers {
		loc, ok := parent.ResolveAttribute(dev, m.buffers[i].attribute)
		if !ok {
			continue
		}
		dev.BindVertexBuffer(m.buffers[i].buffer)
		dev.EnableVertexAttribute(loc, m.buffers[i].componentSize)
	}
	if m.indexed {
		dev.BindIndexBuffer(m.indexBuffer)
	}
}
