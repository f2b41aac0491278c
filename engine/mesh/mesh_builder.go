package mesh

import "github.com/ember3d/ember-go/engine/scene"

// MeshBuilderOption is a function that configures a Mesh instance during construction.
type MeshBuilderOption func(*meshImpl)

// WithVertexBuffer is an option builder that adds a named attribute stream to
// the mesh. Streams are bound in the order they are added.
//
// Parameters:
//   - attribute: the attribute name as declared in the shader source
//   - componentSize: the number of float32 components per vertex (1-4)
//   - data: the raw vertex data
//
// Returns:
//   - MeshBuilderOption: a function that applies the vertex buffer option to a meshImpl
func WithVertexBuffer(attribute string, componentSize int32, data []float32) MeshBuilderOption {
	return func(m *meshImpl) {
		m.buffers = append(m.buffers, vertexBuffer{
			attribute:     attribute,
			componentSize: componentSize,
			data:          data,
		})
	}
}

// WithIndices is an option builder that makes the mesh indexed.
//
// Parameters:
//   - indices: the triangle index data
//
// Returns:
//   - MeshBuilderOption: a function that applies the index option to a meshImpl
func WithIndices(indices []uint32) MeshBuilderOption {
	return func(m *meshImpl) {
		m.indices = indices
		m.indexed = true
	}
}

// WithTransform is an option builder that places the mesh at a transform node.
//
// Parameters:
//   - id: the transform node id
//
// Returns:
//   - MeshBuilderOption: a function that applies the transform option to a meshImpl
func WithTransform(id scene.TransformID) MeshBuilderOption {
	return func(m *meshImpl) {
		m.transform = id
	}
}

// WithVertexCount is an option builder that overrides the derived vertex
// count for non-indexed draws.
//
// Parameters:
//   - count: the vertex count
//
// Returns:
//   - MeshBuilderOption: a function that applies the vertex count option to a meshImpl
func WithVertexCount(count int32) MeshBuilderOption {
	return func(m *meshImpl) {
		m.vertexCount = count
	}
}

// WithBoundsRadius is an option builder that sets the mesh's local bounding
// sphere radius for frustum culling.
//
// Parameters:
//   - radius: the bounding sphere radius
//
// Returns:
//   - MeshBuilderOption: a function that applies the bounds option to a meshImpl
func WithBoundsRadius(radius float32) MeshBuilderOption {
	return func(m *meshImpl) {
		if radius > 0 {
			m.boundsRadius = radius
		}
	}
}
