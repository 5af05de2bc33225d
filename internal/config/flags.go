package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagData       = flag.String("data", "", "Asset data directory")
	flagSkybox     = flag.String("skybox", "", "Initial skybox name")
	flagQuality    = flag.Int("quality", 0, "Terrain grid subdivisions")
	flagPerFace    = flag.Bool("per-face-materials", false, "Draw every material range of a mesh with its own material")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagData != "" {
		cfg.Assets.DataDir = *flagData
	}
	if *flagSkybox != "" {
		cfg.Assets.Skybox = *flagSkybox
	}
	if *flagQuality > 0 {
		cfg.Terrain.Quality = *flagQuality
	}
	if *flagPerFace {
		cfg.Render.PerFaceMaterials = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	cfg.Assets.Models = append(cfg.Assets.Models, Args()...)
}
