package terrain

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/meshforge/internal/engine/drawable"
	"github.com/Faultbox/meshforge/internal/engine/gpu"
	"github.com/Faultbox/meshforge/internal/engine/material"
	"github.com/Faultbox/meshforge/internal/engine/texture"
	"github.com/Faultbox/meshforge/internal/logger"
)

// AssetName names the asset produced by Terrain.
const AssetName = "terrain"

// Terrain owns the uploaded grid, the heightmap texture and the shading
// parameters used to draw them.
type Terrain struct {
	Params  GridParams
	Shading Shading

	dev   gpu.Device
	grid  *Grid
	asset *drawable.Asset

	heightmap     *Heightmap
	heightmapName string

	log *zap.Logger
}

// New creates a terrain for dev. Nothing is uploaded until Build.
func New(dev gpu.Device, params GridParams, shading Shading) *Terrain {
	return &Terrain{
		Params:  params,
		Shading: shading,
		dev:     dev,
		asset:   drawable.NewAsset(AssetName),
		log:     logger.Named("terrain"),
	}
}

// Build generates the grid and uploads it as the asset's only drawable,
// replacing a previous upload. The heightmap texture is kept. An upload
// failure is logged and leaves the asset without drawables.
func (t *Terrain) Build() *drawable.Asset {
	t.releaseGeometry()

	if t.grid == nil {
		t.grid = NewGrid(t.Params.Width, t.Params.Height, t.Params.Quality)
	} else {
		t.grid.Update(t.Params.Width, t.Params.Height, t.Params.Quality)
	}

	t.asset.Materials = material.WithDefault(nil)
	t.asset.Bounds = t.grid.Bounds()

	buf, err := t.dev.CreateVertexBuffer(t.grid.Data(), nil)
	if err != nil {
		t.log.Error("failed to upload terrain grid", zap.Error(err))
		return t.asset
	}

	def := material.DefaultIndex(t.asset.Materials)
	numTriangles := t.grid.NumTriangles()
	t.asset.Add(drawable.Drawable{
		Buffer:        buf,
		NumTriangles:  numTriangles,
		Bounds:        t.grid.Bounds(),
		MaterialID:    def,
		Material:      t.asset.Materials[def],
		MaterialCount: len(t.asset.Materials),
		Ranges: []drawable.MaterialRange{
			{FirstTriangle: 0, TriangleCount: numTriangles, MaterialID: def},
		},
	})

	t.log.Info("terrain built",
		zap.Float32("width", t.Params.Width),
		zap.Float32("height", t.Params.Height),
		zap.Int("quality", t.grid.Quality()),
		zap.Int("triangles", numTriangles))

	return t.asset
}

// SetGeometry changes the grid parameters and rebuilds.
func (t *Terrain) SetGeometry(params GridParams) *drawable.Asset {
	t.Params = params
	return t.Build()
}

// LoadHeightmap loads name from dataDir into the asset's texture table and
// keeps a CPU copy for HeightAt. Like every 2D texture, a missing heightmap
// terminates the process.
func (t *Terrain) LoadHeightmap(dataDir, name string) gpu.Texture {
	cache := texture.NewCache(t.dev, t.asset.Textures)
	tex, img := cache.Load2DImage(filepath.Join(dataDir, name), name)
	if img != nil {
		t.heightmap = NewHeightmap(img)
	}
	t.heightmapName = name
	return tex
}

// HeightmapTexture returns the heightmap texture, or 0 when none is loaded.
func (t *Terrain) HeightmapTexture() gpu.Texture {
	if t.heightmapName == "" {
		return 0
	}
	return t.asset.Textures[t.heightmapName]
}

// Heightmap returns the CPU heightmap, or nil.
func (t *Terrain) Heightmap() *Heightmap {
	return t.heightmap
}

// HeightAt returns the displaced terrain height at world (x, z). Points
// outside the grid clamp to its edge. Without a heightmap the ground is flat.
func (t *Terrain) HeightAt(x, z float32) float32 {
	if t.heightmap == nil || t.Params.Width == 0 || t.Params.Height == 0 {
		return 0
	}
	u := (x + t.Params.Width*0.5) / t.Params.Width
	v := 1 - (z+t.Params.Height*0.5)/t.Params.Height
	return t.heightmap.Sample(u, v) * t.Shading.HeightScale
}

// Grid returns the CPU grid, or nil before Build.
func (t *Terrain) Grid() *Grid {
	return t.grid
}

// Asset returns the terrain asset.
func (t *Terrain) Asset() *drawable.Asset {
	return t.asset
}

// Release frees the grid buffer and the heightmap texture.
func (t *Terrain) Release() {
	t.asset.Release(t.dev)
	t.heightmap = nil
	t.heightmapName = ""
}

func (t *Terrain) releaseGeometry() {
	for _, d := range t.asset.Drawables {
		if !d.Buffer.IsZero() {
			t.dev.DeleteBuffer(d.Buffer)
		}
	}
	t.asset.Drawables = nil
}
