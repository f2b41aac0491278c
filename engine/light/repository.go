package light

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ember3d/ember-go/engine/scene"
)

// Config is the tuple of light-category counts a shader program is compiled
// against. Materials compare it against the config they last compiled with to
// decide whether a recompile is needed.
type Config struct {
	// Directional is the number of directional lights.
	Directional int

	// Point is the number of point lights.
	Point int

	// Spot is the number of spot lights.
	Spot int
}

// Source is one light-emitting entity: a Light plus the optional shape
// components that classify it. The component combination, not a type tag,
// decides the bucket (see Repository.Aggregate).
type Source struct {
	// Light is the photometric payload. Required.
	Light Light

	// Transform is the entity's transform node, or scene.NoTransform if the
	// source has no position.
	Transform scene.TransformID

	// Direction is the direction component, or nil.
	Direction *Direction

	// Cone is the spot cone component, or nil.
	Cone *Cone

	// Enabled gates the source; disabled sources are skipped entirely.
	Enabled bool
}

// Ambient is the frame's aggregated ambient light: a running
// intensity-weighted blend of every ambient-classified source.
type Ambient struct {
	// Color is the accumulated weighted color sum, not normalized.
	Color mgl32.Vec3

	// Intensity is the accumulated intensity sum.
	Intensity float32
}

// DirectionalEntry pairs a directional light with its direction.
type DirectionalEntry struct {
	Light     Light
	Direction Direction
}

// PointEntry pairs a point light with the world matrix that places it.
type PointEntry struct {
	Light Light
	World mgl32.Mat4
}

// SpotEntry groups a spot light with its placement, axis, and cone.
type SpotEntry struct {
	Light     Light
	World     mgl32.Mat4
	Direction Direction
	Cone      Cone
}

// Repository is the frame-scoped lighting resource. Aggregate rebuilds all
// four buckets from scratch every frame; nothing is updated incrementally.
type Repository struct {
	// Ambient is the aggregated ambient light, or nil if no ambient source
	// was seen this frame.
	Ambient *Ambient

	// Directional holds the frame's directional sources, in scan order.
	Directional []DirectionalEntry

	// Point holds the frame's point sources, in scan order.
	Point []PointEntry

	// Spot holds the frame's spot sources, in scan order.
	Spot []SpotEntry
}

// Aggregate scans the given sources once and classifies each enabled one by
// its component shape:
//
//   - direction and no cone: directional
//   - transform, no cone, no direction: point, keyed by the world matrix
//   - direction, cone, and transform: spot
//   - no transform, no cone, no direction: ambient, folded into the running blend
//
// Sources matching none of these shapes are silently excluded. The previous
// frame's buckets are fully replaced.
//
// Parameters:
//   - sources: the light-emitting entities to scan
//   - graph: the transform graph used to place point and spot sources
func (r *Repository) Aggregate(sources []Source, graph *scene.Graph) {
	r.Ambient = nil
	r.Directional = r.Directional[:0]
	r.Point = r.Point[:0]
	r.Spot = r.Spot[:0]

	var ambient Ambient
	someAmbient := false

	for _, s := range sources {
		if !s.Enabled || s.Light == nil {
			continue
		}
		hasTransform := s.Transform != scene.NoTransform
		hasDirection := s.Direction != nil
		hasCone := s.Cone != nil

		switch {
		case hasDirection && !hasCone:
			r.Directional = append(r.Directional, DirectionalEntry{Light: s.Light, Direction: *s.Direction})
		case hasTransform && !hasCone && !hasDirection:
			r.Point = append(r.Point, PointEntry{Light: s.Light, World: graph.WorldMatrix(s.Transform)})
		case hasDirection && hasCone && hasTransform:
			r.Spot = append(r.Spot, SpotEntry{
				Light:     s.Light,
				World:     graph.WorldMatrix(s.Transform),
				Direction: *s.Direction,
				Cone:      *s.Cone,
			})
		case !hasTransform && !hasCone && !hasDirection:
			someAmbient = true
			ambient.Color = ambient.Color.Mul(ambient.Intensity).Add(s.Light.Color().Mul(s.Light.Intensity()))
			ambient.Intensity += s.Light.Intensity()
		}
	}

	if someAmbient {
		r.Ambient = &ambient
	}
}

// Config returns the light-category counts of the current buckets, the shape
// a lit material's shader must be compiled against.
//
// Returns:
//   - Config: the directional/point/spot counts
func (r *Repository) Config() Config {
	return Config{
		Directional: len(r.Directional),
		Point:       len(r.Point),
		Spot:        len(r.Spot),
	}
}
