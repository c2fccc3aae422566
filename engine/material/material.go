// Package material holds the renderer-facing material model: the fixed
// four-quartet GPU record every surface carries, the dense warehouse that
// stores materials immutably once inserted, and the procedural-texture
// class registry a material's albedo slot can point into.
package material

import "github.com/corvidgfx/tracer-go/engine/serialization"

// NoTexture is the AlbedoTextureIndex value meaning "no texture, use the
// flat albedo color".
const NoTexture int32 = -1

// Material is the full GPU-facing surface description: albedo, specular,
// and emissive color, plus the scalar parameters the path tracer's BSDF
// evaluates. Every field is a plain comparable value so two Material values
// can be compared with == — the container's set_material bump-only-if-
// different rule depends on this.
type Material struct {
	Albedo   [3]float32
	Specular [3]float32
	Emission [3]float32

	SpecularStrength   float32
	Roughness          float32
	RefractiveIndexEta float32

	// AlbedoTextureIndex indexes into the procedural texture registry, or
	// is NoTexture if the material uses a flat Albedo color.
	AlbedoTextureIndex int32
	MaterialClass      int32
}

// SerializeInto writes m's four quartets in the layout external shaders
// expect: albedo(rgb+pad), specular(rgb+pad), emission(rgb)+specular
// strength, roughness/eta/albedo_texture_index/material_class.
func (m Material) SerializeInto(writer *serialization.ObjectWriter) {
	writer.
		WriteQuartet(func(q *serialization.QuartetWriter) {
			q.WriteFloat32(m.Albedo[0]).WriteFloat32(m.Albedo[1]).WriteFloat32(m.Albedo[2])
		}).
		WriteQuartet(func(q *serialization.QuartetWriter) {
			q.WriteFloat32(m.Specular[0]).WriteFloat32(m.Specular[1]).WriteFloat32(m.Specular[2])
		}).
		WriteQuartetF32(m.Emission[0], m.Emission[1], m.Emission[2], m.SpecularStrength).
		WriteQuartet(func(q *serialization.QuartetWriter) {
			q.WriteFloat32(m.Roughness).WriteFloat32(m.RefractiveIndexEta).WriteSigned(m.AlbedoTextureIndex).WriteSigned(m.MaterialClass)
		})
}
