// Package camera implements the perspective camera the renderer draws from.
// The camera produces one combined view-projection matrix per frame; the
// window layer feeds it aspect-ratio changes on resize.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// cameraImpl is the implementation of the Camera interface.
type cameraImpl struct {
	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	fov    float32 // vertical field of view in radians
	aspect float32
	near   float32
	far    float32

	// viewProjection is cached until any input changes.
	viewProjection mgl32.Mat4
	dirty          bool
}

// Camera defines the interface for the scene's point of view.
type Camera interface {
	// ComputeViewProjectionMatrix returns the combined view-projection matrix
	// for the current camera state, recomputing it only when an input changed
	// since the last call.
	//
	// Returns:
	//   - mgl32.Mat4: the view-projection matrix
	ComputeViewProjectionMatrix() mgl32.Mat4

	// SetAspectRatio sets the viewport aspect ratio (width / height).
	//
	// Parameters:
	//   - ratio: the aspect ratio
	SetAspectRatio(ratio float32)

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// SetPosition moves the camera.
	//
	// Parameters:
	//   - position: the new world-space position
	SetPosition(position mgl32.Vec3)

	// LookAt points the camera at a world-space target.
	//
	// Parameters:
	//   - target: the point to look at
	LookAt(target mgl32.Vec3)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera configured with the provided options. Defaults:
// position (0,0,5) looking at the origin, +Y up, 60 degree vertical FOV,
// aspect 1, near 0.1, far 1000.
//
// Parameters:
//   - options: variadic list of CameraBuilderOption functions to configure the camera
//
// Returns:
//   - Camera: a new Camera instance
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		position: mgl32.Vec3{0, 0, 5},
		target:   mgl32.Vec3{0, 0, 0},
		up:       mgl32.Vec3{0, 1, 0},
		fov:      mgl32.DegToRad(60),
		aspect:   1,
		near:     0.1,
		far:      1000,
		dirty:    true,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *cameraImpl) ComputeViewProjectionMatrix() mgl32.Mat4 {
	if c.dirty {
		projection := mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
		view := mgl32.LookAtV(c.position, c.target, c.up)
		c.viewProjection = projection.Mul4(view)
		c.dirty = false
	}
	return c.viewProjection
}

func (c *cameraImpl) SetAspectRatio(ratio float32) {
	if ratio == c.aspect {
		return
	}
	c.aspect = ratio
	c.dirty = true
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	return c.position
}

func (c *cameraImpl) SetPosition(position mgl32.Vec3) {
	c.position = position
	c.dirty = true
}

func (c *cameraImpl) LookAt(target mgl32.Vec3) {
	c.target = target
	c.dirty = true
}
