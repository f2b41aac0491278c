package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// plane is one frustum plane in ax + by + cz + d = 0 form, oriented so the
// positive half-space is inside the frustum.
type plane struct {
	normal   mgl32.Vec3
	distance float32
}

// Frustum is the six planes of a view frustum, used by the renderer to skip
// meshes whose bounding sphere falls fully outside the view.
type Frustum struct {
	planes [6]plane
}

// FrustumFromMatrix extracts the six frustum planes from a combined
// view-projection matrix using the Gribb/Hartmann method. Planes are
// normalized so signed distances are in world units.
//
// Parameters:
//   - viewProjection: the combined view-projection matrix
//
// Returns:
//   - Frustum: the extracted frustum
func FrustumFromMatrix(viewProjection mgl32.Mat4) Frustum {
	row := func(i int) mgl32.Vec4 {
		return mgl32.Vec4{viewProjection.At(i, 0), viewProjection.At(i, 1), viewProjection.At(i, 2), viewProjection.At(i, 3)}
	}
	last := row(3)

	var f Frustum
	for i, raw := range [6]mgl32.Vec4{
		last.Add(row(0)), // left
		last.Sub(row(0)), // right
		last.Add(row(1)), // bottom
		last.Sub(row(1)), // top
		last.Add(row(2)), // near
		last.Sub(row(2)), // far
	} {
		normal := raw.Vec3()
		length := normal.Len()
		if length > 0 {
			f.planes[i] = plane{normal: normal.Mul(1 / length), distance: raw.W() / length}
		}
	}
	return f
}

// ContainsSphere reports whether a world-space sphere is at least partially
// inside the frustum. A zero radius tests the center point alone.
//
// Parameters:
//   - center: the sphere's world-space center
//   - radius: the sphere's radius
//
// Returns:
//   - bool: false only if the sphere is fully outside some plane
func (f Frustum) ContainsSphere(center mgl32.Vec3, radius float32) bool {
	for _, p := range f.planes {
		if p.normal.Dot(center)+p.distance < -radius {
			return false
		}
	}
	return true
}
