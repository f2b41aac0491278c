// Package scene implements the hierarchical transform graph. Nodes live in a
// flat arena and reference each other by index only; world matrices are cached
// per node and recomputed lazily when a node or any ancestor is edited.
package scene

import "github.com/go-gl/mathgl/mgl32"

// TransformID is the arena-index identity of a transform node. IDs are stable
// for the lifetime of the node, including across Compact calls.
type TransformID int

// NoTransform is the absent-node sentinel used for unset parent, child, and
// sibling links.
const NoTransform TransformID = -1

// Transform is one node of the transform graph: a local
// translation/rotation/scale triple, its cached local-to-world matrix, and
// index links into the sibling web. All fields are managed by the Graph; the
// node itself carries no owning pointers.
type Transform struct {
	translation mgl32.Vec3
	rotation    mgl32.Vec3
	scale       mgl32.Vec3

	// matrix is the cached local-to-world matrix, valid only while dirty is false.
	matrix mgl32.Mat4
	dirty  bool

	// dead marks a detached node whose slot awaits an explicit Compact call.
	dead bool

	parent          TransformID
	firstChild      TransformID
	lastChild       TransformID
	nextSibling     TransformID
	previousSibling TransformID
}

// Translation returns the node's local translation.
//
// Returns:
//   - mgl32.Vec3: the translation component
func (t Transform) Translation() mgl32.Vec3 {
	return t.translation
}

// Rotation returns the node's local rotation as Euler angles in radians,
// applied in XYZ order.
//
// Returns:
//   - mgl32.Vec3: the rotation component
func (t Transform) Rotation() mgl32.Vec3 {
	return t.rotation
}

// Scale returns the node's local scale.
//
// Returns:
//   - mgl32.Vec3: the scale component
func (t Transform) Scale() mgl32.Vec3 {
	return t.scale
}

// Parent returns the node's parent link, or NoTransform if detached or root.
//
// Returns:
//   - TransformID: the parent id
func (t Transform) Parent() TransformID {
	return t.parent
}

// FirstChild returns the head of the node's child list, or NoTransform.
//
// Returns:
//   - TransformID: the first child id
func (t Transform) FirstChild() TransformID {
	return t.firstChild
}

// LastChild returns the tail of the node's child list, or NoTransform.
//
// Returns:
//   - TransformID: the last child id
func (t Transform) LastChild() TransformID {
	return t.lastChild
}

// NextSibling returns the next node in the parent's child list, or NoTransform.
//
// Returns:
//   - TransformID: the next sibling id
func (t Transform) NextSibling() TransformID {
	return t.nextSibling
}

// PreviousSibling returns the previous node in the parent's child list, or NoTransform.
//
// Returns:
//   - TransformID: the previous sibling id
func (t Transform) PreviousSibling() TransformID {
	return t.previousSibling
}

// Dead reports whether the node has been logically removed and awaits Compact.
//
// Returns:
//   - bool: true if the node is dead
func (t Transform) Dead() bool {
	return t.dead
}

// localMatrix composes the node's local matrix as translation, then rotation,
// then scale (scale applied first to incoming vectors).
func (t *Transform) localMatrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.translation.X(), t.translation.Y(), t.translation.Z())
	rotate := mgl32.AnglesToQuat(t.rotation.X(), t.rotation.Y(), t.rotation.Z(), mgl32.XYZ).Mat4()
	scale := mgl32.Scale3D(t.scale.X(), t.scale.Y(), t.scale.Z())
	return translate.Mul4(rotate).Mul4(scale)
}
