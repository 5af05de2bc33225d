// Package config handles viewer and pipeline configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Assets   AssetsConfig   `yaml:"assets"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Render   RenderConfig   `yaml:"render"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// AssetsConfig holds asset locations.
type AssetsConfig struct {
	DataDir   string   `yaml:"data_dir"`  // root of terrain and sky data
	Skybox    string   `yaml:"skybox"`    // initial skybox name under <data_dir>/Skyboxes
	Skyboxes  []string `yaml:"skyboxes"`  // names cycled by the viewer
	Heightmap string   `yaml:"heightmap"` // file name under data_dir, empty disables
	Models    []string `yaml:"models"`    // OBJ files ingested at startup
}

// TerrainConfig holds terrain geometry and shading defaults.
type TerrainConfig struct {
	Width   float32 `yaml:"width"`
	Height  float32 `yaml:"height"`
	Quality int     `yaml:"quality"`

	HeightScale float32    `yaml:"height_scale"`
	UVScale     [2]float32 `yaml:"uv_scale"`
	TexelSize   float32    `yaml:"texel_size"`

	WaterLevel float32 `yaml:"water_level"`
	RockLine   float32 `yaml:"rock_line"`
	SnowLine   float32 `yaml:"snow_line"`
	BlendWidth float32 `yaml:"blend_width"`

	SunDir       [3]float32 `yaml:"sun_dir"`
	SunColor     [3]float32 `yaml:"sun_color"`
	AmbientColor [3]float32 `yaml:"ambient_color"`
}

// RenderConfig holds draw-time options.
type RenderConfig struct {
	// PerFaceMaterials draws each material range of a drawable with its own
	// material instead of the drawable's first-face material.
	PerFaceMaterials bool `yaml:"per_face_materials"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1920,
			Height: 1080,
			VSync:  true,
		},
		Assets: AssetsConfig{
			DataDir:   "data",
			Skybox:    "Clouds",
			Skyboxes:  []string{"beach", "Clouds", "field", "heart", "icebergs", "Maskonaive", "stars"},
			Heightmap: "heightmap.jpg",
		},
		Terrain: TerrainConfig{
			Width:        100,
			Height:       100,
			Quality:      3000,
			HeightScale:  5,
			UVScale:      [2]float32{1, 1},
			TexelSize:    1.0 / 700.0,
			WaterLevel:   0,
			RockLine:     1,
			SnowLine:     3,
			BlendWidth:   10,
			SunDir:       [3]float32{0.2, -1, 0.2},
			SunColor:     [3]float32{1, 0.9, 0.8},
			AmbientColor: [3]float32{0.2, 0.2, 0.3},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
