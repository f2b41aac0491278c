package material

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ember3d/ember-go/engine/device"
	"github.com/ember3d/ember-go/engine/device/devicetest"
	"github.com/ember3d/ember-go/engine/light"
)

const plainVertex = `
attribute vec3 a_position;
uniform mat4 u_vpMatrix;
uniform mat4 u_worldMatrix;
void main() { gl_Position = u_vpMatrix * u_worldMatrix * vec4(a_position, 1.0); }
`

const plainFragment = `
void main() { gl_FragColor = vec4(1.0); }
`

const litFragment = `
#define NUM_DIR_LIGHTS 0
struct DirectionalLight { vec3 direction; vec3 color; float intensity; };
uniform DirectionalLight u_directionalLights[NUM_DIR_LIGHTS];
void main() { gl_FragColor = vec4(1.0); }
`

func TestLitInference(t *testing.T) {
	tests := []struct {
		name     string
		vertex   string
		fragment string
		expected bool
	}{
		{"Plain shaders are unlit", plainVertex, plainFragment, false},
		{"Marker in fragment is lit", plainVertex, litFragment, true},
		{"Marker in vertex is lit", "uniform vec3 u_pointLights;", plainFragment, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMaterial(tt.vertex, tt.fragment, "m")
			if got := m.Lit(); got != tt.expected {
				t.Errorf("expected lit=%v, got %v", tt.expected, got)
			}
		})
	}
}

func TestShouldCompile(t *testing.T) {
	dev := devicetest.NewFakeDevice()

	tests := []struct {
		name     string
		fragment string
		compile  *light.Config // config to compile with first, or nil for never compiled
		ask      light.Config
		expected bool
	}{
		{"Never compiled", plainFragment, nil, light.Config{}, true},
		{"Unlit compiled once", plainFragment, &light.Config{}, light.Config{Directional: 3}, false},
		{"Lit with same config", litFragment, &light.Config{Directional: 1}, light.Config{Directional: 1}, false},
		{"Lit with changed config", litFragment, &light.Config{Directional: 1}, light.Config{Directional: 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMaterial(plainVertex, tt.fragment, "m")
			if tt.compile != nil {
				if err := m.Compile(dev, *tt.compile); err != nil {
					t.Fatalf("compile failed: %v", err)
				}
			}
			if got := m.ShouldCompile(tt.ask); got != tt.expected {
				t.Errorf("expected ShouldCompile=%v, got %v", tt.expected, got)
			}
		})
	}
}

func TestReplaceLightCounts(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		cfg      light.Config
		expected string
	}{
		{
			"Bare macros substituted",
			"u_directionalLights[NUM_DIR_LIGHTS]; u_pointLights[NUM_POINT_LIGHTS]; u_spotLights[NUM_SPOT_LIGHTS];",
			light.Config{Directional: 2, Point: 3, Spot: 1},
			"u_directionalLights[2]; u_pointLights[3]; u_spotLights[1];",
		},
		{
			"Shader-declared define is commented out",
			"#define NUM_DIR_LIGHTS 0\nu_directionalLights[NUM_DIR_LIGHTS];",
			light.Config{Directional: 4},
			"// 0\nu_directionalLights[4];",
		},
		{
			"Source without macros untouched",
			"void main() {}",
			light.Config{Directional: 9},
			"void main() {}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReplaceLightCounts(tt.source, tt.cfg); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCompileSubstitutesCounts(t *testing.T) {
	dev := devicetest.NewFakeDevice()
	m := NewMaterial(plainVertex, litFragment, "lit")

	if err := m.Compile(dev, light.Config{Directional: 2}); err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	fragments := dev.CompiledSources[device.StageFragment]
	if len(fragments) != 1 {
		t.Fatalf("expected 1 compiled fragment, got %d", len(fragments))
	}
	if strings.Contains(fragments[0], "NUM_DIR_LIGHTS") {
		t.Error("expected the macro to be substituted away")
	}
	if !strings.Contains(fragments[0], "u_directionalLights[2]") {
		t.Errorf("expected substituted array size 2 in source:\n%s", fragments[0])
	}
	if got := m.LightConfig(); got != (light.Config{Directional: 2}) {
		t.Errorf("expected recorded config {Directional:2}, got %+v", got)
	}
}

func TestRecompileReplacesProgram(t *testing.T) {
	dev := devicetest.NewFakeDevice()
	m := NewMaterial(plainVertex, litFragment, "lit")

	if err := m.Compile(dev, light.Config{Directional: 1}); err != nil {
		t.Fatalf("first compile failed: %v", err)
	}
	first, _ := m.Program()
	if got := m.Generation(); got != 1 {
		t.Fatalf("expected generation 1, got %d", got)
	}

	if err := m.Compile(dev, light.Config{Directional: 2}); err != nil {
		t.Fatalf("second compile failed: %v", err)
	}
	second, _ := m.Program()
	if first == second {
		t.Error("expected a new program handle after recompile")
	}
	if got := m.Generation(); got != 2 {
		t.Errorf("expected generation 2, got %d", got)
	}
	if len(dev.DeletedPrograms) != 1 || dev.DeletedPrograms[0] != first {
		t.Errorf("expected the previous program %d to be deleted, got %v", first, dev.DeletedPrograms)
	}
}

func TestCompileFailureKeepsPreviousProgram(t *testing.T) {
	tests := []struct {
		name string
		arm  func(*devicetest.FakeDevice)
	}{
		{"Compile failure", func(d *devicetest.FakeDevice) { d.FailNextCompile = "syntax error" }},
		{"Link failure", func(d *devicetest.FakeDevice) { d.FailNextLink = "mismatched varyings" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := devicetest.NewFakeDevice()
			m := NewMaterial(plainVertex, litFragment, "lit")
			if err := m.Compile(dev, light.Config{Directional: 1}); err != nil {
				t.Fatalf("first compile failed: %v", err)
			}
			prev, _ := m.Program()

			tt.arm(dev)
			err := m.Compile(dev, light.Config{Directional: 2})
			if err == nil {
				t.Fatal("expected the armed failure to surface")
			}
			if !strings.Contains(err.Error(), `material "lit"`) {
				t.Errorf("expected the error to name the material, got %q", err)
			}

			got, ok := m.Program()
			if !ok || got != prev {
				t.Errorf("expected previous program %d to survive, got %d (ok=%v)", prev, got, ok)
			}
			if m.Generation() != 1 {
				t.Errorf("expected generation to stay at 1, got %d", m.Generation())
			}
			if len(dev.DeletedPrograms) != 0 {
				t.Errorf("expected no program deletions on failure, got %v", dev.DeletedPrograms)
			}
			// The stale config must still trigger a retry next frame.
			if !m.ShouldCompile(light.Config{Directional: 2}) {
				t.Error("expected ShouldCompile to stay true after a failed recompile")
			}
		})
	}
}

func TestSetUniformKeepsOrder(t *testing.T) {
	m := NewMaterial(plainVertex, plainFragment, "m")
	m.SetUniform("u_a", device.Float(1))
	m.SetUniform("u_b", device.Float(2))
	m.SetUniform("u_c", device.Float(3))
	m.SetUniform("u_b", device.Float(9))

	got := m.Uniforms()
	if len(got) != 3 {
		t.Fatalf("expected 3 uniforms after upsert, got %d", len(got))
	}
	names := []string{"u_a", "u_b", "u_c"}
	for i, name := range names {
		if got[i].Name() != name {
			t.Errorf("uniform %d: expected name %q, got %q", i, name, got[i].Name())
		}
	}
	if v := got[1].Value().Scalar(); v != 9 {
		t.Errorf("expected u_b value 9 after upsert, got %v", v)
	}
}

func TestLookupLocationsIdempotent(t *testing.T) {
	dev := devicetest.NewFakeDevice()
	m := NewMaterial(plainVertex, plainFragment, "m")
	m.SetUniform("u_tint", device.Vec3(mgl32.Vec3{1, 0, 0}))
	if err := m.Compile(dev, light.Config{}); err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	m.LookupLocations(dev)
	if !m.LookupDone() {
		t.Fatal("expected lookup to be done after the first pass")
	}
	queries := dev.UniformQueries
	if queries == 0 {
		t.Fatal("expected the first lookup to query the device")
	}

	m.LookupLocations(dev)
	if dev.UniformQueries != queries {
		t.Errorf("expected no further queries, got %d extra", dev.UniformQueries-queries)
	}

	// A recompile invalidates the cache and forces a fresh resolve.
	if err := m.Compile(dev, light.Config{}); err != nil {
		t.Fatalf("recompile failed: %v", err)
	}
	if m.LookupDone() {
		t.Error("expected lookup to be invalidated by the recompile")
	}
	m.LookupLocations(dev)
	if dev.UniformQueries <= queries {
		t.Error("expected the post-recompile lookup to query the device again")
	}
}

func TestApplyUniformsSkipsMissing(t *testing.T) {
	dev := devicetest.NewFakeDevice()
	dev.MissingNames["u_gone"] = true
	m := NewMaterial(plainVertex, plainFragment, "m")
	m.SetUniform("u_gone", device.Float(1))
	m.SetUniform("u_kept", device.Float(2))
	if err := m.Compile(dev, light.Config{}); err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	m.ApplyUniforms(dev)
	if len(dev.Applied) != 1 {
		t.Fatalf("expected 1 applied uniform, got %d", len(dev.Applied))
	}
	program, _ := m.Program()
	keptLoc, _ := dev.LocationOf(program, "u_kept")
	if dev.Applied[0].Location != keptLoc {
		t.Errorf("expected the surviving push at u_kept's location %d, got %d", keptLoc, dev.Applied[0].Location)
	}
}

func TestApplyUniformsResolvesLateAdditions(t *testing.T) {
	dev := devicetest.NewFakeDevice()
	m := NewMaterial(plainVertex, plainFragment, "m")
	if err := m.Compile(dev, light.Config{}); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	m.LookupLocations(dev)

	// Uniforms set after the lookup pass still resolve on first apply.
	m.SetUniform("u_late", device.Float(7))
	m.ApplyUniforms(dev)

	program, _ := m.Program()
	loc, ok := dev.LocationOf(program, "u_late")
	if !ok {
		t.Fatal("expected the late uniform to be resolved during apply")
	}
	if got := dev.AppliedAt(loc); len(got) != 1 {
		t.Errorf("expected 1 push at the late uniform's location, got %d", len(got))
	}
}

func TestResolveAttributeCachesMisses(t *testing.T) {
	dev := devicetest.NewFakeDevice()
	dev.MissingNames["a_missing"] = true
	m := NewMaterial(plainVertex, plainFragment, "m")
	if err := m.Compile(dev, light.Config{}); err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	if _, found := m.ResolveAttribute(dev, "a_missing"); found {
		t.Error("expected the missing attribute to resolve as absent")
	}
	queries := dev.AttributeQueries
	if _, found := m.ResolveAttribute(dev, "a_missing"); found {
		t.Error("expected the cached miss to stay absent")
	}
	if dev.AttributeQueries != queries {
		t.Error("expected the miss to be cached, not re-queried")
	}

	loc, found := m.ResolveAttribute(dev, "a_position")
	if !found {
		t.Fatal("expected a_position to resolve")
	}
	if cached, ok := m.Attribute("a_position"); !ok || cached != loc {
		t.Errorf("expected Attribute to return the cached location %d, got %d (ok=%v)", loc, cached, ok)
	}
}

func TestTextureIndexes(t *testing.T) {
	m := NewMaterial(plainVertex, plainFragment, "m")
	m.SetUniform("u_albedo", device.Texture(0))
	m.SetUniform("u_normal", device.Texture(2))
	m.SetUniform("u_pending", device.UnassignedTexture())
	m.SetUniform("u_tint", device.Vec3(mgl32.Vec3{1, 1, 1}))

	got := m.TextureIndexes()
	if len(got) != 2 {
		t.Fatalf("expected 2 assigned samplers, got %d: %v", len(got), got)
	}
	if got["u_albedo"] != 0 || got["u_normal"] != 2 {
		t.Errorf("unexpected sampler units: %v", got)
	}
}

func TestTransparencyFlag(t *testing.T) {
	m := NewMaterial(plainVertex, plainFragment, "m")
	if m.IsTransparent() {
		t.Error("expected materials to start opaque")
	}
	m.SetTransparent(true)
	if !m.IsTransparent() {
		t.Error("expected the material to be transparent after SetTransparent(true)")
	}
	m.SetTransparent(false)
	if m.IsTransparent() {
		t.Error("expected the material to be opaque again")
	}
}
