package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	// Terrain defaults
	tc := cfg.Terrain
	if tc.Width != 100 || tc.Height != 100 {
		t.Errorf("expected 100x100 terrain, got %vx%v", tc.Width, tc.Height)
	}
	if tc.Quality != 3000 {
		t.Errorf("expected quality 3000, got %d", tc.Quality)
	}
	if tc.HeightScale != 5 {
		t.Errorf("expected height scale 5, got %v", tc.HeightScale)
	}
	if tc.TexelSize != 1.0/700.0 {
		t.Errorf("expected texel size 1/700, got %v", tc.TexelSize)
	}
	if tc.RockLine != 1 || tc.SnowLine != 3 || tc.BlendWidth != 10 {
		t.Errorf("unexpected band defaults: rock %v snow %v blend %v", tc.RockLine, tc.SnowLine, tc.BlendWidth)
	}
	if tc.SunDir != [3]float32{0.2, -1, 0.2} {
		t.Errorf("unexpected sun dir %v", tc.SunDir)
	}

	if len(cfg.Assets.Skyboxes) != 7 {
		t.Errorf("expected 7 skyboxes, got %d", len(cfg.Assets.Skyboxes))
	}
	if cfg.Render.PerFaceMaterials {
		t.Error("expected per-face materials off by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 800
  height: 600
  fullscreen: true

assets:
  data_dir: "/srv/assets"
  skybox: "stars"
  models:
    - "/srv/assets/cube.obj"

terrain:
  quality: 64
  height_scale: 12.5
  uv_scale: [4, 2]

render:
  per_face_materials: true

logging:
  level: "debug"
  log_file: "/var/log/meshforge.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 800 || !cfg.Graphics.Fullscreen {
		t.Errorf("graphics not loaded: %+v", cfg.Graphics)
	}
	if cfg.Assets.DataDir != "/srv/assets" || cfg.Assets.Skybox != "stars" {
		t.Errorf("assets not loaded: %+v", cfg.Assets)
	}
	if len(cfg.Assets.Models) != 1 || cfg.Assets.Models[0] != "/srv/assets/cube.obj" {
		t.Errorf("unexpected models %v", cfg.Assets.Models)
	}
	if cfg.Terrain.Quality != 64 || cfg.Terrain.HeightScale != 12.5 {
		t.Errorf("terrain not loaded: %+v", cfg.Terrain)
	}
	if cfg.Terrain.UVScale != [2]float32{4, 2} {
		t.Errorf("expected uv scale [4 2], got %v", cfg.Terrain.UVScale)
	}
	if !cfg.Render.PerFaceMaterials {
		t.Error("expected per-face materials on")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
}

func TestPartialConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
terrain:
  snow_line: 7
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Terrain.SnowLine != 7 {
		t.Errorf("expected snow line 7, got %v", cfg.Terrain.SnowLine)
	}
	// Untouched values keep their defaults
	if cfg.Terrain.Quality != 3000 {
		t.Errorf("expected default quality 3000, got %d", cfg.Terrain.Quality)
	}
	if cfg.Assets.Skybox != "Clouds" {
		t.Errorf("expected default skybox, got %s", cfg.Assets.Skybox)
	}
}

func TestInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("terrain: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Assets.Skybox = "beach"
	cfg.Terrain.Quality = 10
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Assets.Skybox != "beach" || loaded.Terrain.Quality != 10 {
		t.Errorf("saved values not restored: skybox %s quality %d", loaded.Assets.Skybox, loaded.Terrain.Quality)
	}
}

func TestExpandPaths(t *testing.T) {
	cfg := Default()
	cfg.Assets.DataDir = "~/assets"
	cfg.Assets.Models = []string{"~/models/a.obj", "/abs/b.obj"}

	if err := cfg.expandPaths(); err != nil {
		t.Fatalf("expandPaths failed: %v", err)
	}
	if cfg.Assets.DataDir == "~/assets" {
		t.Error("expected data dir to be expanded")
	}
	if cfg.Assets.Models[1] != "/abs/b.obj" {
		t.Errorf("absolute path changed: %s", cfg.Assets.Models[1])
	}
}

func TestConfigDir(t *testing.T) {
	if dir := ConfigDir(); dir == "" {
		t.Error("ConfigDir returned empty string")
	}
}

func TestEncode(t *testing.T) {
	data, err := Default().Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	for _, key := range []string{"graphics:", "data_dir: data", "quality: 3000", "per_face_materials: false"} {
		if !strings.Contains(string(data), key) {
			t.Errorf("encoded config missing %q", key)
		}
	}
}
