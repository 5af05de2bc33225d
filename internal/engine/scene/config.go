package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshforge/internal/config"
	"github.com/Faultbox/meshforge/internal/engine/terrain"
)

// Config holds what a scene needs from the application config.
type Config struct {
	DataDir   string
	Heightmap string // file under DataDir, empty for flat terrain
	Skybox    string
	Skyboxes  []string

	Grid    terrain.GridParams
	Shading terrain.Shading

	PerFaceMaterials bool
}

// ConfigFrom extracts the scene settings of cfg.
func ConfigFrom(cfg *config.Config) Config {
	grid, shading := TerrainParams(cfg.Terrain)
	return Config{
		DataDir:          cfg.Assets.DataDir,
		Heightmap:        cfg.Assets.Heightmap,
		Skybox:           cfg.Assets.Skybox,
		Skyboxes:         cfg.Assets.Skyboxes,
		Grid:             grid,
		Shading:          shading,
		PerFaceMaterials: cfg.Render.PerFaceMaterials,
	}
}

// TerrainParams reads the grid and shading settings. A zero sun direction
// keeps the default.
func TerrainParams(cfg config.TerrainConfig) (terrain.GridParams, terrain.Shading) {
	params := terrain.GridParams{Width: cfg.Width, Height: cfg.Height, Quality: cfg.Quality}

	shading := terrain.Shading{
		HeightScale:  cfg.HeightScale,
		UVScale:      mgl32.Vec2(cfg.UVScale),
		TexelSize:    cfg.TexelSize,
		WaterLevel:   cfg.WaterLevel,
		RockLine:     cfg.RockLine,
		SnowLine:     cfg.SnowLine,
		BlendWidth:   cfg.BlendWidth,
		SunDir:       mgl32.Vec3(cfg.SunDir),
		SunColor:     mgl32.Vec3(cfg.SunColor),
		AmbientColor: mgl32.Vec3(cfg.AmbientColor),
	}
	if shading.SunDir.Len() == 0 {
		shading.SunDir = terrain.DefaultShading().SunDir
	} else {
		shading.SunDir = shading.SunDir.Normalize()
	}
	return params, shading
}
