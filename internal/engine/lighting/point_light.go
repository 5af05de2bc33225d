// Package lighting provides point light support for model rendering.
package lighting

import "github.com/go-gl/mathgl/mgl32"

// MaxPointLights is the light array size declared by the model shader.
const MaxPointLights = 5

// PointLight is a point (Position.W = 1) or directional (Position.W = 0)
// light. Color.W scales the intensity.
type PointLight struct {
	Position mgl32.Vec4
	Color    mgl32.Vec4
}

// DefaultLights returns the five dim white lights used for models.
func DefaultLights() []PointLight {
	white := mgl32.Vec4{1, 1, 1, 0.2}
	return []PointLight{
		{Position: mgl32.Vec4{0, 1, 2, 1}, Color: white},
		{Position: mgl32.Vec4{3, 4, 5, 1}, Color: white},
		{Position: mgl32.Vec4{-2, 1, 0, 1}, Color: white},
		{Position: mgl32.Vec4{2, 2, 2, 1}, Color: white},
		{Position: mgl32.Vec4{0, 0, 8, 1}, Color: white},
	}
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight
}

// NewPointLightBuffer creates a buffer holding lights.
func NewPointLightBuffer(lights []PointLight) *PointLightBuffer {
	b := &PointLightBuffer{Lights: make([]PointLight, 0, MaxPointLights)}
	b.SetLights(lights)
	return b
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
}

// AddLight adds a light. It returns false if the buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if len(b.Lights) >= MaxPointLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	return true
}

// SetLights replaces all lights, truncating to MaxPointLights.
func (b *PointLightBuffer) SetLights(lights []PointLight) {
	b.Clear()
	b.Lights = append(b.Lights, lights[:min(len(lights), MaxPointLights)]...)
}

// Positions returns MaxPointLights positions. Unused slots are zero, which
// the shader reads as a black directional light.
func (b *PointLightBuffer) Positions() []mgl32.Vec4 {
	out := make([]mgl32.Vec4, MaxPointLights)
	for i, l := range b.Lights {
		out[i] = l.Position
	}
	return out
}

// Colors returns MaxPointLights colours, zero for unused slots.
func (b *PointLightBuffer) Colors() []mgl32.Vec4 {
	out := make([]mgl32.Vec4, MaxPointLights)
	for i, l := range b.Lights {
		out[i] = l.Color
	}
	return out
}
