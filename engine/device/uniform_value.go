package device

import "github.com/go-gl/mathgl/mgl32"

// UniformKind identifies the wire type of a uniform value.
type UniformKind int

const (
	// UniformKindFloat is a single float32 scalar.
	UniformKindFloat UniformKind = iota

	// UniformKindVec3 is a 3-component float32 vector.
	UniformKindVec3

	// UniformKindVec4 is a 4-component float32 vector.
	UniformKindVec4

	// UniformKindMat4 is a 4x4 float32 matrix, column-major.
	UniformKindMat4

	// UniformKindTexture is a sampler bound to a texture unit index.
	UniformKindTexture
)

// String returns a human-readable kind name for diagnostics.
func (k UniformKind) String() string {
	switch k {
	case UniformKindFloat:
		return "float"
	case UniformKindVec3:
		return "vec3"
	case UniformKindVec4:
		return "vec4"
	case UniformKindMat4:
		return "mat4"
	case UniformKindTexture:
		return "texture"
	default:
		return "unknown"
	}
}

// UniformValue is a typed value destined for a shader uniform. It is a small
// tagged union covering every uniform type the core pushes. Values are
// immutable once constructed; build them with the Float, Vec3, Vec4, Mat4,
// Texture, and UnassignedTexture constructors.
type UniformValue struct {
	kind    UniformKind
	scalar  float32
	vec3    mgl32.Vec3
	vec4    mgl32.Vec4
	mat4    mgl32.Mat4
	unit    int32
	hasUnit bool
}

// Float wraps a float32 scalar as a uniform value.
//
// Parameters:
//   - v: the scalar value
//
// Returns:
//   - UniformValue: the wrapped value
func Float(v float32) UniformValue {
	return UniformValue{kind: UniformKindFloat, scalar: v}
}

// Vec3 wraps a 3-component vector as a uniform value.
//
// Parameters:
//   - v: the vector value
//
// Returns:
//   - UniformValue: the wrapped value
func Vec3(v mgl32.Vec3) UniformValue {
	return UniformValue{kind: UniformKindVec3, vec3: v}
}

// Vec4 wraps a 4-component vector as a uniform value.
//
// Parameters:
//   - v: the vector value
//
// Returns:
//   - UniformValue: the wrapped value
func Vec4(v mgl32.Vec4) UniformValue {
	return UniformValue{kind: UniformKindVec4, vec4: v}
}

// Mat4 wraps a 4x4 column-major matrix as a uniform value.
//
// Parameters:
//   - m: the matrix value
//
// Returns:
//   - UniformValue: the wrapped value
func Mat4(m mgl32.Mat4) UniformValue {
	return UniformValue{kind: UniformKindMat4, mat4: m}
}

// Texture wraps a sampler uniform with an assigned texture unit.
//
// Parameters:
//   - unit: the texture unit index the sampler reads from
//
// Returns:
//   - UniformValue: the wrapped value
func Texture(unit int32) UniformValue {
	return UniformValue{kind: UniformKindTexture, unit: unit, hasUnit: true}
}

// UnassignedTexture wraps a sampler uniform that has not been assigned a
// texture unit yet. Applying it is a no-op and it is omitted from texture
// index listings.
//
// Returns:
//   - UniformValue: the wrapped value
func UnassignedTexture() UniformValue {
	return UniformValue{kind: UniformKindTexture}
}

// Kind returns the wire type of the value.
//
// Returns:
//   - UniformKind: the value's kind tag
func (v UniformValue) Kind() UniformKind {
	return v.kind
}

// Scalar returns the float32 payload. Meaningful only for UniformKindFloat.
//
// Returns:
//   - float32: the scalar payload
func (v UniformValue) Scalar() float32 {
	return v.scalar
}

// Vec3 returns the vector payload. Meaningful only for UniformKindVec3.
//
// Returns:
//   - mgl32.Vec3: the vector payload
func (v UniformValue) Vec3() mgl32.Vec3 {
	return v.vec3
}

// Vec4 returns the vector payload. Meaningful only for UniformKindVec4.
//
// Returns:
//   - mgl32.Vec4: the vector payload
func (v UniformValue) Vec4() mgl32.Vec4 {
	return v.vec4
}

// Mat4 returns the matrix payload. Meaningful only for UniformKindMat4.
//
// Returns:
//   - mgl32.Mat4: the matrix payload
func (v UniformValue) Mat4() mgl32.Mat4 {
	return v.mat4
}

// TextureUnit returns the assigned texture unit for a sampler value.
//
// Returns:
//   - int32: the texture unit index, valid only if assigned
//   - bool: false if the value is not a texture or has no assigned unit
func (v UniformValue) TextureUnit() (int32, bool) {
	if v.kind != UniformKindTexture || !v.hasUnit {
		return 0, false
	}
	return v.unit, true
}
