// Package light implements scene lighting: light sources, their optional
// shape components (direction, cone), and the per-frame Repository that
// classifies every enabled source into the ambient/directional/point/spot
// buckets consumed by the renderer's uniform pushes.
package light

import "github.com/go-gl/mathgl/mgl32"

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	color       mgl32.Vec3
	intensity   float32
	attenuation float32
}

// Light defines the interface for a light source's photometric properties.
// The shape of the source (ambient, directional, point, spot) is not a light
// property; it is derived from which components accompany the light on its
// Source entry.
type Light interface {
	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - mgl32.Vec3: the color as (r, g, b)
	Color() mgl32.Vec3

	// Intensity returns the scalar intensity multiplier.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Attenuation returns the distance attenuation factor applied to point
	// and spot sources. Zero means no falloff.
	//
	// Returns:
	//   - float32: the attenuation factor
	Attenuation() float32
}

var _ Light = &lightImpl{}

// NewLight creates a new Light configured with the provided options.
// Defaults: white color, intensity 1, no attenuation.
//
// Parameters:
//   - options: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(options ...LightBuilderOption) Light {
	l := &lightImpl{
		color:     mgl32.Vec3{1, 1, 1},
		intensity: 1,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Attenuation() float32 {
	return l.attenuation
}

// Direction is the direction component of a directional or spot source.
type Direction struct {
	// Value is the direction vector. Normalized on construction.
	Value mgl32.Vec3
}

// NewDirection creates a Direction component from a vector, normalizing it.
//
// Parameters:
//   - v: the direction vector
//
// Returns:
//   - Direction: the normalized direction component
func NewDirection(v mgl32.Vec3) Direction {
	return Direction{Value: v.Normalize()}
}

// Cone is the cone component of a spot source.
type Cone struct {
	// Angle is the cone half-angle in radians.
	Angle float32
}
