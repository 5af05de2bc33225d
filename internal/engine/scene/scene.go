// Package scene holds the viewer's world: loaded models, the terrain, the
// sky and the display toggles that choose between them.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/meshforge/internal/engine/debug"
	"github.com/Faultbox/meshforge/internal/engine/drawable"
	"github.com/Faultbox/meshforge/internal/engine/geometry"
	"github.com/Faultbox/meshforge/internal/engine/gpu"
	"github.com/Faultbox/meshforge/internal/engine/lighting"
	"github.com/Faultbox/meshforge/internal/engine/model"
	"github.com/Faultbox/meshforge/internal/engine/picking"
	"github.com/Faultbox/meshforge/internal/engine/render"
	"github.com/Faultbox/meshforge/internal/engine/terrain"
	"github.com/Faultbox/meshforge/internal/logger"
)

// RenderMode selects how polygons are rasterised.
type RenderMode int

// Render modes.
const (
	ModeFill RenderMode = iota
	ModeLine
	ModePoint
)

func (m RenderMode) String() string {
	switch m {
	case ModeFill:
		return "fill"
	case ModeLine:
		return "line"
	case ModePoint:
		return "point"
	default:
		return fmt.Sprintf("RenderMode(%d)", int(m))
	}
}

// Stats summarises what the scene holds.
type Stats struct {
	Assets    int
	Drawables int
	Triangles int
	Textures  int
}

// Scene owns every GPU resource the viewer draws.
type Scene struct {
	config Config
	dev    gpu.Device

	loader   *model.Loader
	Registry *drawable.Registry
	Binder   render.Binder
	Lights   *lighting.PointLightBuffer

	terrain *terrain.Terrain
	sky     *terrain.Sky

	ShowTerrain bool
	ShowBounds  bool
	Mode        RenderMode

	boundsBuffer gpu.Buffer
	boundsCount  int32

	log *zap.Logger
}

// New creates an empty scene uploading to dev.
func New(dev gpu.Device, cfg Config) *Scene {
	return &Scene{
		config:   cfg,
		dev:      dev,
		loader:   model.NewLoader(dev),
		Registry: drawable.NewRegistry(),
		Binder:   render.Binder{PerFaceMaterials: cfg.PerFaceMaterials},
		Lights:   lighting.NewPointLightBuffer(lighting.DefaultLights()),
		log:      logger.Named("scene"),
	}
}

// Ingest loads an OBJ file into the registry. A file that yields nothing
// to draw is released and reported as not added.
func (s *Scene) Ingest(path string) (*drawable.Asset, bool) {
	asset := s.loader.Ingest(path)
	if asset.IsEmpty() {
		asset.Release(s.dev)
		s.log.Warn("nothing to draw", zap.String("path", path))
		return asset, false
	}
	s.Registry.Add(asset)
	s.refreshBounds()
	return asset, true
}

// Clear releases every loaded model.
func (s *Scene) Clear() {
	n := s.Registry.Len()
	s.Registry.Clear(s.dev)
	s.refreshBounds()
	s.log.Info("models cleared", zap.Int("assets", n))
}

// ToggleTerrain shows or hides the terrain. The terrain and sky are built
// the first time they are shown.
func (s *Scene) ToggleTerrain() error {
	if !s.ShowTerrain {
		if err := s.ensureTerrain(); err != nil {
			return err
		}
	}
	s.ShowTerrain = !s.ShowTerrain
	return nil
}

func (s *Scene) ensureTerrain() error {
	if s.terrain == nil {
		t := terrain.New(s.dev, s.config.Grid, s.config.Shading)
		if s.config.Heightmap != "" {
			t.LoadHeightmap(s.config.DataDir, s.config.Heightmap)
		}
		t.Build()
		s.terrain = t
	}
	if s.sky == nil {
		sky, err := terrain.NewSky(s.dev)
		if err != nil {
			return fmt.Errorf("creating sky: %w", err)
		}
		sky.SetSkybox(s.config.Skybox, s.config.DataDir)
		s.sky = sky
	}
	return nil
}

// Terrain returns the terrain, or nil before it was first shown.
func (s *Scene) Terrain() *terrain.Terrain { return s.terrain }

// Sky returns the sky, or nil before the terrain was first shown.
func (s *Scene) Sky() *terrain.Sky { return s.sky }

// NextSkybox switches to the skybox after the current one and returns its
// name. Without a sky it only advances the configured name.
func (s *Scene) NextSkybox() string {
	current := s.config.Skybox
	if s.sky != nil && s.sky.Name() != "" {
		current = s.sky.Name()
	}
	next := nextSkybox(s.config.Skyboxes, current)
	s.config.Skybox = next
	if s.sky != nil {
		s.sky.SetSkybox(next, s.config.DataDir)
	}
	return next
}

// Regenerate rebuilds the terrain grid from the current parameters.
func (s *Scene) Regenerate() {
	if s.terrain == nil {
		return
	}
	s.terrain.SetGeometry(s.config.Grid)
}

// StepQuality halves or doubles the grid quality and rebuilds the terrain
// if it exists. It returns the new quality.
func (s *Scene) StepQuality(up bool) int {
	s.config.Grid.Quality = stepQuality(s.config.Grid.Quality, up)
	s.Regenerate()
	return s.config.Grid.Quality
}

// SetMode changes the render mode.
func (s *Scene) SetMode(m RenderMode) {
	if m < ModeFill || m > ModePoint {
		m = ModeFill
	}
	s.Mode = m
}

// TogglePerFaceMaterials switches between drawing each material range and
// drawing each drawable with its first face's material.
func (s *Scene) TogglePerFaceMaterials() bool {
	s.Binder.PerFaceMaterials = !s.Binder.PerFaceMaterials
	return s.Binder.PerFaceMaterials
}

// Bounds returns the union of the loaded models' bounds.
func (s *Scene) Bounds() geometry.Bounds {
	return s.Registry.Bounds()
}

// DrawBounds returns the union of the models' bounds after the
// per-model scale applied at draw time.
func (s *Scene) DrawBounds() geometry.Bounds {
	out := geometry.EmptyBounds()
	for _, a := range s.Registry.Assets() {
		out.Union(drawBounds(a))
	}
	return out
}

// drawBounds returns a's bounds scaled by its model matrix.
func drawBounds(a *drawable.Asset) geometry.Bounds {
	if a.Bounds.IsEmpty() {
		return a.Bounds
	}
	m := render.FitScale(a.Bounds)
	out := geometry.EmptyBounds()
	out.Extend(m.Mul4x1(a.Bounds.Min.Vec4(1)).Vec3())
	out.Extend(m.Mul4x1(a.Bounds.Max.Vec4(1)).Vec3())
	return out
}

// Pick returns the model whose drawn bounds ray hits first.
func (s *Scene) Pick(ray picking.Ray) (*drawable.Asset, geometry.Bounds, bool) {
	assets := s.Registry.Assets()
	boxes := make([]geometry.Bounds, len(assets))
	for i, a := range assets {
		boxes[i] = drawBounds(a)
	}
	i := ray.Nearest(boxes)
	if i < 0 {
		return nil, geometry.Bounds{}, false
	}
	return assets[i], boxes[i], true
}

// ToggleBounds shows or hides the wireframe around the loaded models.
func (s *Scene) ToggleBounds() bool {
	s.ShowBounds = !s.ShowBounds
	s.refreshBounds()
	return s.ShowBounds
}

// BoundsBuffer returns the wireframe line buffer and its vertex count.
// The count is 0 when nothing should be drawn.
func (s *Scene) BoundsBuffer() (gpu.Buffer, int32) {
	return s.boundsBuffer, s.boundsCount
}

// refreshBounds rebuilds the wireframe buffer for the current models.
func (s *Scene) refreshBounds() {
	s.releaseBounds()
	if !s.ShowBounds {
		return
	}
	verts := debug.BoundsWireframe(s.DrawBounds(), debug.DefaultBoundsPadding)
	if len(verts) == 0 {
		return
	}
	buf, err := s.dev.CreateVertexBuffer(geometry.Pack(verts), nil)
	if err != nil {
		s.log.Error("failed to upload bounds wireframe", zap.Error(err))
		return
	}
	s.boundsBuffer = buf
	s.boundsCount = int32(len(verts))
}

func (s *Scene) releaseBounds() {
	if !s.boundsBuffer.IsZero() {
		s.dev.DeleteBuffer(s.boundsBuffer)
	}
	s.boundsBuffer = gpu.Buffer{}
	s.boundsCount = 0
}

// TerrainHeight returns the terrain surface height at world (x, z), or 0
// when no terrain exists.
func (s *Scene) TerrainHeight(x, z float32) float32 {
	if s.terrain == nil {
		return 0
	}
	return s.terrain.HeightAt(x, z)
}

// LightArrays returns the light positions and colours for upload.
func (s *Scene) LightArrays() (positions, colors []mgl32.Vec4) {
	return s.Lights.Positions(), s.Lights.Colors()
}

// Stats counts the loaded models.
func (s *Scene) Stats() Stats {
	st := Stats{Assets: s.Registry.Len()}
	for _, a := range s.Registry.Assets() {
		st.Drawables += len(a.Drawables)
		st.Triangles += a.Triangles()
		st.Textures += len(a.Textures)
	}
	return st
}

// Title describes the scene for the window title.
func (s *Scene) Title() string {
	if s.ShowTerrain && s.terrain != nil {
		sky := ""
		if s.sky != nil {
			sky = s.sky.Name()
		}
		return fmt.Sprintf("meshforge - terrain q=%d, sky %s, %s",
			s.config.Grid.Quality, sky, s.Mode)
	}
	st := s.Stats()
	return fmt.Sprintf("meshforge - %d models, %d triangles, %s",
		st.Assets, st.Triangles, s.Mode)
}

// Release frees everything the scene uploaded.
func (s *Scene) Release() {
	s.Registry.Clear(s.dev)
	s.releaseBounds()
	s.ShowBounds = false
	if s.terrain != nil {
		s.terrain.Release()
		s.terrain = nil
	}
	if s.sky != nil {
		s.sky.Release()
		s.sky = nil
	}
	s.ShowTerrain = false
}

// nextSkybox returns the name after current in names, wrapping around.
// An unknown current starts from the first name.
func nextSkybox(names []string, current string) string {
	if len(names) == 0 {
		return current
	}
	for i, n := range names {
		if n == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// stepQuality halves or doubles the grid quality, never below 1.
func stepQuality(q int, up bool) int {
	if up {
		return max(q*2, 1)
	}
	return max(q/2, 1)
}
