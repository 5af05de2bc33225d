// Package terrain builds the flat terrain grid, its heightmap sampler and
// the sky sphere.
package terrain

import "github.com/go-gl/mathgl/mgl32"

// GridParams is the geometry of the terrain grid.
type GridParams struct {
	Width   float32
	Height  float32
	Quality int // cells per side, clamped to at least 1
}

// DefaultGridParams returns a 100x100 grid with 3000 cells per side.
func DefaultGridParams() GridParams {
	return GridParams{Width: 100, Height: 100, Quality: 3000}
}

// Shading holds the uniforms consumed by the terrain shader. The shader
// displaces the flat grid by the heightmap and picks grass, rock or snow
// by height.
type Shading struct {
	HeightScale float32
	UVScale     mgl32.Vec2
	TexelSize   float32

	WaterLevel float32
	RockLine   float32
	SnowLine   float32
	BlendWidth float32

	SunDir       mgl32.Vec3 // normalized, pointing from the sun
	SunColor     mgl32.Vec3
	AmbientColor mgl32.Vec3
}

// DefaultShading returns the stock lighting and band setup.
func DefaultShading() Shading {
	return Shading{
		HeightScale:  5,
		UVScale:      mgl32.Vec2{1, 1},
		TexelSize:    1.0 / 700.0,
		WaterLevel:   0,
		RockLine:     1,
		SnowLine:     3,
		BlendWidth:   10,
		SunDir:       mgl32.Vec3{0.2, -1, 0.2}.Normalize(),
		SunColor:     mgl32.Vec3{1, 0.9, 0.8},
		AmbientColor: mgl32.Vec3{0.2, 0.2, 0.3},
	}
}
