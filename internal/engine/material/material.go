// Package material holds surface material records and index resolution.
package material

import "github.com/go-gl/mathgl/mgl32"

// DefaultName is the name of the synthetic fallback material.
const DefaultName = "default"

// Material describes surface reflectance and the textures it references.
type Material struct {
	Name string

	Ambient       mgl32.Vec3
	Diffuse       mgl32.Vec3
	Specular      mgl32.Vec3
	Transmittance mgl32.Vec3
	Emission      mgl32.Vec3

	Shininess float32
	IOR       float32 // index of refraction
	Dissolve  float32 // 1 = opaque
	Illum     int     // illumination model

	Textures TextureNames
}

// Default returns the zero-valued fallback material (illum 0, no textures).
func Default() Material {
	return Material{Name: DefaultName}
}

// WithDefault returns a new list made of mats followed by the default
// material. mats is not modified.
func WithDefault(mats []Material) []Material {
	out := make([]Material, 0, len(mats)+1)
	out = append(out, mats...)
	return append(out, Default())
}

// DefaultIndex returns the index of the default material in a list built by
// WithDefault.
func DefaultIndex(extended []Material) int {
	return len(extended) - 1
}

// Resolve maps a raw face material index to a valid index into extended,
// which must end with the default material. Negative and out-of-range indices
// resolve to the default; resolution never fails.
func Resolve(index int, extended []Material) int {
	def := DefaultIndex(extended)
	if index < 0 || index >= def {
		return def
	}
	return index
}
