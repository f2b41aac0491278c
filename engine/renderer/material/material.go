package material

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ember3d/ember-go/engine/device"
	"github.com/ember3d/ember-go/engine/light"
	"github.com/ember3d/ember-go/internal/logger"
)

// litMarker is the token whose presence in either shader source marks a
// material as lit. Lit materials recompile whenever the light configuration
// they were compiled against changes.
const litMarker = "Light"

// Light-count placeholder macros substituted at compile time.
const (
	dirLightsMacro   = "NUM_DIR_LIGHTS"
	pointLightsMacro = "NUM_POINT_LIGHTS"
	spotLightsMacro  = "NUM_SPOT_LIGHTS"
)

// Material owns one compiled shader program, the shared uniform set every
// instance of the material pushes, and the light configuration the program
// was last compiled against. Materials live in an Arena and are addressed by
// Handle; all mutation happens through the arena owner during the frame's
// update phase.
type Material struct {
	id     string
	opaque bool
	lit    bool

	// Shader sources are kept verbatim for recompilation when the light
	// configuration changes.
	vertexShader   string
	fragmentShader string

	program    device.Program
	hasProgram bool

	// generation increments on every successful compile. Instances compare it
	// against the generation they resolved locations for to detect staleness.
	generation uint64

	attributeLocations map[string]Slot
	sharedUniforms     []Uniform
	global             GlobalLocations
	lightConfig        light.Config
	lookupDone         bool
}

// PreparedSources is a pair of shader sources with their light-count macros
// already substituted for a concrete configuration. Preparation is pure string
// work and safe off the render thread; compilation is not.
type PreparedSources struct {
	// Vertex is the substituted vertex shader source.
	Vertex string

	// Fragment is the substituted fragment shader source.
	Fragment string

	// Config is the light configuration the sources were prepared for.
	Config light.Config
}

// NewMaterial creates a material from vertex and fragment shader sources. The
// sources are stored verbatim; no program exists until Compile succeeds. The
// material is lit iff either source references the lighting marker token.
// Materials are opaque by default.
//
// Parameters:
//   - vertexShader: the vertex shader source text
//   - fragmentShader: the fragment shader source text
//   - id: the material's stable identifier
//
// Returns:
//   - *Material: the new material
func NewMaterial(vertexShader, fragmentShader, id string) *Material {
	return &Material{
		id:                 id,
		opaque:             true,
		lit:                strings.Contains(vertexShader, litMarker) || strings.Contains(fragmentShader, litMarker),
		vertexShader:       vertexShader,
		fragmentShader:     fragmentShader,
		attributeLocations: make(map[string]Slot),
	}
}

// ID returns the material's stable identifier.
//
// Returns:
//   - string: the identifier
func (m *Material) ID() string {
	return m.id
}

// Lit reports whether the material's shaders reference lighting.
//
// Returns:
//   - bool: true if lit
func (m *Material) Lit() bool {
	return m.lit
}

// Program returns the compiled program handle, if one exists.
//
// Returns:
//   - device.Program: the program handle, valid only if compiled
//   - bool: false until the first successful Compile
func (m *Material) Program() (device.Program, bool) {
	return m.program, m.hasProgram
}

// Generation returns the program generation, incremented on each successful
// compile. Zero means never compiled.
//
// Returns:
//   - uint64: the generation counter
func (m *Material) Generation() uint64 {
	return m.generation
}

// LightConfig returns the light configuration the program was last compiled
// against.
//
// Returns:
//   - light.Config: the compiled-against configuration
func (m *Material) LightConfig() light.Config {
	return m.lightConfig
}

// ShouldCompile reports whether Compile must run before the material can be
// drawn under the given light configuration: true if no program exists yet,
// or if the material is lit and the configuration differs from the one last
// compiled against.
//
// Parameters:
//   - cfg: the frame's light configuration
//
// Returns:
//   - bool: true if a (re)compile is required
func (m *Material) ShouldCompile(cfg light.Config) bool {
	return !m.hasProgram || (m.lit && cfg != m.lightConfig)
}

// PrepareSources substitutes the light-count placeholder macros in both
// shader sources with the concrete counts from cfg. A shader that pre-declares
// its own counts via #define has that declaration neutralized so the
// substituted value wins. Pure string work, safe to run off the render thread.
//
// Parameters:
//   - cfg: the light configuration to substitute
//
// Returns:
//   - PreparedSources: the substituted sources
func (m *Material) PrepareSources(cfg light.Config) PreparedSources {
	return PreparedSources{
		Vertex:   ReplaceLightCounts(m.vertexShader, cfg),
		Fragment: ReplaceLightCounts(m.fragmentShader, cfg),
		Config:   cfg,
	}
}

// Compile prepares both shader sources for the given light configuration,
// compiles and links them, and atomically replaces the previous program. On
// success the compiled-against configuration is recorded and all cached
// locations are invalidated; on failure the previous program (if any) is left
// untouched so rendering continues with stale-but-valid state.
//
// Parameters:
//   - dev: the graphics device
//   - cfg: the light configuration to compile against
//
// Returns:
//   - error: the compile or link failure, wrapping the device diagnostic
func (m *Material) Compile(dev device.Device, cfg light.Config) error {
	return m.CompilePrepared(dev, m.PrepareSources(cfg))
}

// CompilePrepared compiles and links already-prepared sources. Split from
// Compile so callers can run PrepareSources for many materials in parallel and
// keep only the device work serial.
//
// Parameters:
//   - dev: the graphics device
//   - prepared: the substituted sources and their configuration
//
// Returns:
//   - error: the compile or link failure, wrapping the device diagnostic
func (m *Material) CompilePrepared(dev device.Device, prepared PreparedSources) error {
	vertex, err := dev.CompileStage(device.StageVertex, prepared.Vertex)
	if err != nil {
		return fmt.Errorf("material %q: %w", m.id, err)
	}
	fragment, err := dev.CompileStage(device.StageFragment, prepared.Fragment)
	if err != nil {
		dev.DeleteStage(vertex)
		return fmt.Errorf("material %q: %w", m.id, err)
	}

	program, err := dev.LinkProgram(vertex, fragment)
	dev.DeleteStage(vertex)
	dev.DeleteStage(fragment)
	if err != nil {
		return fmt.Errorf("material %q: %w", m.id, err)
	}

	if m.hasProgram {
		dev.DeleteProgram(m.program)
	}
	m.program = program
	m.hasProgram = true
	m.lightConfig = prepared.Config
	m.generation++
	m.invalidateLocations()

	logger.Log.Info("compiled material program",
		zap.String("material", m.id),
		zap.Int("directional", prepared.Config.Directional),
		zap.Int("point", prepared.Config.Point),
		zap.Int("spot", prepared.Config.Spot),
	)
	return nil
}

// invalidateLocations drops every cached location so the next lookup resolves
// against the current program. Reusing locations across a recompile is never
// valid, even when the source text is unchanged.
func (m *Material) invalidateLocations() {
	m.lookupDone = false
	m.attributeLocations = make(map[string]Slot)
	for i := range m.sharedUniforms {
		m.sharedUniforms[i].invalidate()
	}
}

// LookupLocations resolves the global uniform locations (view-projection and
// light arrays) and every shared uniform's location against the current
// program. Idempotent until the program is replaced; a no-op while no program
// exists.
//
// Parameters:
//   - dev: the graphics device
func (m *Material) LookupLocations(dev device.Device) {
	if m.lookupDone || !m.hasProgram {
		return
	}
	m.global.Lookup(dev, m.program, m.lightConfig)
	for i := range m.sharedUniforms {
		m.sharedUniforms[i].LookupLocation(dev, m.program)
	}
	m.lookupDone = true
}

// LookupDone reports whether locations are resolved for the current program.
//
// Returns:
//   - bool: true if resolved
func (m *Material) LookupDone() bool {
	return m.lookupDone
}

// Global returns the resolved global uniform locations.
//
// Returns:
//   - *GlobalLocations: the global location cache
func (m *Material) Global() *GlobalLocations {
	return &m.global
}

// ResolveAttribute resolves and caches a vertex attribute location on demand.
// Each name is queried at most once per program generation; misses are logged
// once and remembered.
//
// Parameters:
//   - dev: the graphics device
//   - name: the attribute name as declared in the shader source
//
// Returns:
//   - int32: the attribute location, valid only if found
//   - bool: false if the program has no such attribute (or none exists yet)
func (m *Material) ResolveAttribute(dev device.Device, name string) (int32, bool) {
	if s, ok := m.attributeLocations[name]; ok {
		return s.Location, s.Found
	}
	if !m.hasProgram {
		return 0, false
	}
	loc, found := dev.AttributeLocation(m.program, name)
	m.attributeLocations[name] = Slot{Location: loc, Found: found}
	if !found {
		logger.Log.Warn("attribute not found in program",
			zap.String("material", m.id),
			zap.String("attribute", name),
		)
	}
	return loc, found
}

// Attribute returns a previously resolved attribute location.
//
// Parameters:
//   - name: the attribute name
//
// Returns:
//   - int32: the location, valid only if previously resolved and found
//   - bool: false if never resolved or not found
func (m *Material) Attribute(name string) (int32, bool) {
	s, ok := m.attributeLocations[name]
	if !ok || !s.Found {
		return 0, false
	}
	return s.Location, true
}

// SetUniform upserts a shared uniform by name: an existing name keeps its
// position in the set and only its value changes; a new name is appended.
//
// Parameters:
//   - name: the uniform name
//   - value: the typed value to set
func (m *Material) SetUniform(name string, value device.UniformValue) {
	m.sharedUniforms = setUniform(m.sharedUniforms, name, value)
}

// PushUniforms upserts a batch of shared uniforms, in order.
//
// Parameters:
//   - uniforms: the uniforms to set
func (m *Material) PushUniforms(uniforms []Uniform) {
	for i := range uniforms {
		m.SetUniform(uniforms[i].name, uniforms[i].value)
	}
}

// Uniforms returns a copy of the shared uniform set, in order.
//
// Returns:
//   - []Uniform: the shared uniforms
func (m *Material) Uniforms() []Uniform {
	out := make([]Uniform, len(m.sharedUniforms))
	copy(out, m.sharedUniforms)
	return out
}

// ApplyUniforms pushes every shared uniform into the currently bound program.
// The caller must have activated this material's program first. Per-uniform
// failures are logged and do not abort the remaining pushes.
//
// Parameters:
//   - dev: the graphics device
func (m *Material) ApplyUniforms(dev device.Device) {
	if !m.hasProgram {
		return
	}
	applyUniforms(dev, m.sharedUniforms, m.program)
}

// SetTransparent marks the material as semi-transparent (or opaque again).
// Transparent materials draw after all opaque ones.
//
// Parameters:
//   - transparent: true to mark semi-transparent
func (m *Material) SetTransparent(transparent bool) {
	m.opaque = !transparent
}

// IsTransparent reports whether the material is semi-transparent.
//
// Returns:
//   - bool: true if semi-transparent
func (m *Material) IsTransparent() bool {
	return !m.opaque
}

// TextureIndexes returns the shared sampler uniforms that have an assigned
// texture unit, mapped name to unit index. Samplers without an assigned unit
// are silently omitted.
//
// Returns:
//   - map[string]int32: sampler name to texture unit index
func (m *Material) TextureIndexes() map[string]int32 {
	out := make(map[string]int32)
	for i := range m.sharedUniforms {
		if unit, ok := m.sharedUniforms[i].value.TextureUnit(); ok {
			out[m.sharedUniforms[i].name] = unit
		}
	}
	return out
}

// ReplaceLightCounts substitutes the light-count placeholder macros in shader
// source with concrete counts. Any "#define NUM_*_LIGHTS n" the shader carries
// is commented out first so the substituted value wins over the shader's own
// declaration.
//
// Parameters:
//   - source: the shader source text
//   - cfg: the light configuration providing the counts
//
// Returns:
//   - string: the substituted source
func ReplaceLightCounts(source string, cfg light.Config) string {
	neutralized := strings.NewReplacer(
		"#define "+dirLightsMacro, "//",
		"#define "+pointLightsMacro, "//",
		"#define "+spotLightsMacro, "//",
	).Replace(source)
	return strings.NewReplacer(
		dirLightsMacro, strconv.Itoa(cfg.Directional),
		pointLightsMacro, strconv.Itoa(cfg.Point),
		spotLightsMacro, strconv.Itoa(cfg.Spot),
	).Replace(neutralized)
}
