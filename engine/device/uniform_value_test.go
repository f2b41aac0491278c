package device

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestUniformValueKinds(t *testing.T) {
	tests := []struct {
		name     string
		value    UniformValue
		expected UniformKind
	}{
		{"Float", Float(1.5), UniformKindFloat},
		{"Vec3", Vec3(mgl32.Vec3{1, 2, 3}), UniformKindVec3},
		{"Vec4", Vec4(mgl32.Vec4{1, 2, 3, 4}), UniformKindVec4},
		{"Mat4", Mat4(mgl32.Ident4()), UniformKindMat4},
		{"Texture", Texture(3), UniformKindTexture},
		{"UnassignedTexture", UnassignedTexture(), UniformKindTexture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Kind(); got != tt.expected {
				t.Errorf("expected kind %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTextureUnitAssignment(t *testing.T) {
	if unit, ok := Texture(2).TextureUnit(); !ok || unit != 2 {
		t.Errorf("expected assigned unit 2, got %d (ok=%v)", unit, ok)
	}
	if _, ok := UnassignedTexture().TextureUnit(); ok {
		t.Error("expected an unassigned texture to report no unit")
	}
	if _, ok := Float(1).TextureUnit(); ok {
		t.Error("expected a non-texture value to report no unit")
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			"Shader stage",
			&ShaderStageError{Stage: StageFragment, Diagnostic: "bad token"},
			[]string{"fragment", "bad token"},
		},
		{
			"Program link",
			&ProgramLinkError{Diagnostic: "mismatched varyings"},
			[]string{"link", "mismatched varyings"},
		},
		{
			"Uniform apply",
			&UniformApplyError{Location: 7, Kind: UniformKindMat4, Reason: "invalid operation"},
			[]string{"7", "invalid operation"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("expected %q in error message %q", want, msg)
				}
			}
		})
	}
}
