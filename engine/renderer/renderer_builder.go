package renderer

// RendererBuilderOption is a function that configures a renderer instance during construction.
type RendererBuilderOption func(*renderer)

// WithClearColor is an option builder that sets the color the frame is
// cleared to. Defaults to transparent black.
//
// Parameters:
//   - r: the red clear component
//   - g: the green clear component
//   - b: the blue clear component
//   - a: the alpha clear component
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(r, g, b, a float32) RendererBuilderOption {
	return func(rend *renderer) {
		rend.clearColor = [4]float32{r, g, b, a}
	}
}

// WithFrustumCulling is an option builder that enables per-mesh frustum
// culling. Meshes registered with a bounding sphere radius are skipped when
// the sphere falls fully outside the view; meshes without a transform are
// always drawn.
//
// Parameters:
//   - enabled: true to cull out-of-view meshes
//
// Returns:
//   - RendererBuilderOption: a function that applies the culling option to a renderer
func WithFrustumCulling(enabled bool) RendererBuilderOption {
	return func(rend *renderer) {
		rend.cullingEnabled = enabled
	}
}
