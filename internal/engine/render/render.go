// Package render binds drawables, terrain shading and the sky to a shader
// program and issues their draw calls.
package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshforge/internal/engine/drawable"
	"github.com/Faultbox/meshforge/internal/engine/geometry"
	"github.com/Faultbox/meshforge/internal/engine/gpu"
	"github.com/Faultbox/meshforge/internal/engine/material"
	"github.com/Faultbox/meshforge/internal/engine/terrain"
)

// Program is a linked shader program that uniforms and draws go through.
// opengl.Program implements it.
type Program interface {
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec2(name string, v mgl32.Vec2)
	SetVec3(name string, v mgl32.Vec3)
	SetMat4(name string, m mgl32.Mat4)

	BindTexture2D(unit int32, tex gpu.Texture)
	BindCubemap(unit int32, tex gpu.Texture)

	DrawTriangles(buf gpu.Buffer, first, count int32)
	DrawStrip(buf gpu.Buffer, count int32)
}

// Material uniform names.
const (
	UniformAmbient       = "ambient"
	UniformDiffuse       = "diffuse"
	UniformSpecular      = "specular"
	UniformTransmittance = "transmittance"
	UniformEmission      = "emission"
	UniformShininess     = "shininess"
	UniformIOR           = "ior"
	UniformDissolve      = "dissolve"
	UniformIllum         = "illum"

	// UniformTextureMask has bit s set when slot s has a bound texture.
	UniformTextureMask = "textureMask"
)

// Binder draws assets.
type Binder struct {
	// PerFaceMaterials draws each material range with its own material
	// instead of using the material of the drawable's first face.
	PerFaceMaterials bool
}

// DrawAsset draws every drawable of asset and returns the number of draw
// calls issued.
func (b Binder) DrawAsset(p Program, asset *drawable.Asset) int {
	calls := 0
	for i := range asset.Drawables {
		d := &asset.Drawables[i]

		if b.PerFaceMaterials && len(d.Ranges) > 0 {
			calls += b.drawRanges(p, asset, d)
			continue
		}

		var mask uint32
		if d.HasValidMaterial() {
			mask = BindTextures(p, &d.Textures, asset.Textures)
		}
		p.SetInt(UniformTextureMask, int32(mask))
		BindMaterial(p, d.Material)
		p.DrawTriangles(d.Buffer, 0, d.VertexCount())
		calls++
	}
	return calls
}

func (b Binder) drawRanges(p Program, asset *drawable.Asset, d *drawable.Drawable) int {
	for _, r := range d.Ranges {
		var mask uint32
		m, ok := asset.Material(r.MaterialID)
		if ok {
			mask = BindTextures(p, &m.Textures, asset.Textures)
		}
		p.SetInt(UniformTextureMask, int32(mask))
		BindMaterial(p, m)
		p.DrawTriangles(d.Buffer, r.FirstVertex(), r.VertexCount())
	}
	return len(d.Ranges)
}

// BindTextures binds each named slot whose texture is present in textures
// to the slot's unit and points the slot's sampler at it. It returns the
// mask of bound slots.
func BindTextures(p Program, names *material.TextureNames, textures map[string]gpu.Texture) uint32 {
	var mask uint32
	names.Each(func(s material.Slot, name string) {
		tex, ok := textures[name]
		if !ok {
			return
		}
		p.BindTexture2D(s.Unit(), tex)
		p.SetInt(s.Uniform(), s.Unit())
		mask |= 1 << uint(s)
	})
	return mask
}

// BindMaterial sets the material uniforms.
func BindMaterial(p Program, m material.Material) {
	p.SetVec3(UniformAmbient, m.Ambient)
	p.SetVec3(UniformDiffuse, m.Diffuse)
	p.SetVec3(UniformSpecular, m.Specular)
	p.SetVec3(UniformTransmittance, m.Transmittance)
	p.SetVec3(UniformEmission, m.Emission)
	p.SetFloat(UniformShininess, m.Shininess)
	p.SetFloat(UniformIOR, m.IOR)
	p.SetFloat(UniformDissolve, m.Dissolve)
	p.SetInt(UniformIllum, int32(m.Illum))
}

// BindTerrain sets the terrain shading uniforms and binds the heightmap to
// unit 0.
func BindTerrain(p Program, s terrain.Shading, heightmap gpu.Texture) {
	p.SetFloat("uHeightScale", s.HeightScale)
	p.SetVec2("uUVScale", s.UVScale)
	p.SetFloat("uTexel", s.TexelSize)

	p.SetFloat("uWaterLevel", s.WaterLevel)
	p.SetFloat("uRockLine", s.RockLine)
	p.SetFloat("uSnowLine", s.SnowLine)
	p.SetFloat("uBlendW", s.BlendWidth)

	p.SetVec3("uSunDir", s.SunDir)
	p.SetVec3("uSunColor", s.SunColor)
	p.SetVec3("uAmbient", s.AmbientColor)

	p.BindTexture2D(0, heightmap)
	p.SetInt("uHeightTex", 0)
}

// DrawSky binds the sky cubemap to unit 0 and draws the sphere strip.
// Depth state is left to the caller.
func DrawSky(p Program, sky *terrain.Sky) {
	p.BindCubemap(0, sky.Cubemap())
	p.SetInt("uSkybox", 0)
	p.DrawStrip(sky.Buffer(), int32(sky.IndexCount()))
}

// SkyViewProj drops the translation of view so the sky stays centred on
// the camera.
func SkyViewProj(proj, view mgl32.Mat4) mgl32.Mat4 {
	return proj.Mul4(view.Mat3().Mat4())
}

// FitScale returns the model matrix that scales bounds so its largest half
// extent becomes 1. Empty or flat bounds get the identity.
func FitScale(bounds geometry.Bounds) mgl32.Mat4 {
	if bounds.IsEmpty() {
		return mgl32.Ident4()
	}
	size := bounds.Size()
	extent := 0.5 * max(size.X(), size.Y(), size.Z())
	if extent <= 0 {
		return mgl32.Ident4()
	}
	s := 1 / extent
	return mgl32.Scale3D(s, s, s)
}
