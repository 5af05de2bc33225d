// Package viewer implements the interactive model and terrain viewer loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshforge/internal/config"
	"github.com/Faultbox/meshforge/internal/engine/camera"
	"github.com/Faultbox/meshforge/internal/engine/debug"
	"github.com/Faultbox/meshforge/internal/engine/gpu/opengl"
	"github.com/Faultbox/meshforge/internal/engine/input"
	"github.com/Faultbox/meshforge/internal/engine/material"
	"github.com/Faultbox/meshforge/internal/engine/picking"
	"github.com/Faultbox/meshforge/internal/engine/render"
	"github.com/Faultbox/meshforge/internal/engine/scene"
	"github.com/Faultbox/meshforge/internal/engine/shader"
	"github.com/Faultbox/meshforge/internal/engine/window"
	"github.com/Faultbox/meshforge/internal/logger"
	"github.com/Faultbox/meshforge/internal/viewer/shaders"
)

const (
	moveSpeed  = 5   // units per second
	fastFactor = 4   // multiplier while shift is held
	eyeHeight  = 0.5 // fly camera clearance above the terrain
)

var clearColor = mgl32.Vec4{0.1, 0.1, 0.12, 1}

// boundsMaterial draws the bounds wireframe unlit in yellow.
var boundsMaterial = material.Material{
	Name:     "bounds",
	Emission: mgl32.Vec3{1, 0.85, 0.2},
	Dissolve: 1,
}

// Viewer is the main viewer instance.
type Viewer struct {
	config  *config.Config
	running bool

	window *window.Window
	input  *input.Input
	device *opengl.Device
	scene  *scene.Scene

	meshProgram    *opengl.Program
	terrainProgram *opengl.Program
	skyProgram     *opengl.Program

	fly      *camera.FlyCamera
	orbit    *camera.OrbitCamera
	useOrbit bool
	captured bool
	dragging bool

	// inbox receives paths chosen in the open dialog.
	inbox *scene.Inbox

	screenshots    *debug.ScreenshotCapture
	wantScreenshot bool

	log *zap.Logger
}

// New creates the window, compiles the shaders and ingests the startup
// models.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		config:      cfg,
		input:       input.New(),
		fly:         camera.NewFlyCamera(),
		orbit:       camera.NewOrbitCamera(),
		inbox:       scene.NewInbox(4),
		screenshots: debug.NewScreenshotCapture("screenshots", "meshforge"),
		log:         logger.Named("viewer"),
	}

	v.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("fullscreen", cfg.Graphics.Fullscreen))

	// Window first, it creates the OpenGL context
	var err error
	v.window, err = window.New("meshforge", cfg.Graphics)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if err := v.buildPrograms(); err != nil {
		v.Close()
		return nil, err
	}

	v.device = opengl.NewDevice()
	v.scene = scene.New(v.device, scene.ConfigFrom(cfg))

	for _, path := range cfg.Assets.Models {
		v.scene.Ingest(path)
	}
	v.orbit.FitToBounds(v.scene.DrawBounds())

	v.log.Info("viewer initialized", zap.Int("models", v.scene.Registry.Len()))
	return v, nil
}

func (v *Viewer) buildPrograms() error {
	var err error
	if v.meshProgram, err = shader.Build("mesh", shaders.MeshVertexShader, shaders.MeshFragmentShader); err != nil {
		return err
	}
	if v.terrainProgram, err = shader.Build("terrain", shaders.TerrainVertexShader, shaders.TerrainFragmentShader); err != nil {
		return err
	}
	if v.skyProgram, err = shader.Build("sky", shaders.SkyVertexShader, shaders.SkyFragmentShader); err != nil {
		return err
	}
	return nil
}

// Run starts the main loop and returns when the window closes.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}

		for _, event := range v.input.Events() {
			if err := v.handleEvent(event); err != nil {
				return err
			}
		}

		v.inbox.Drain(v.ingest)

		v.update(dt)
		v.render()
		if v.wantScreenshot {
			v.wantScreenshot = false
			v.saveScreenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.window.SetTitle(fmt.Sprintf("%s - %d fps", v.scene.Title(), frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases every GPU resource and the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.scene != nil {
		v.scene.Release()
	}
	for _, p := range []*opengl.Program{v.meshProgram, v.terrainProgram, v.skyProgram} {
		if p != nil {
			p.Delete()
		}
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleEvent(event input.Event) error {
	switch event.Kind {
	case input.Quit:
		v.running = false

	case input.FileDrop:
		v.ingest(event.Path)

	case input.MouseDown:
		switch event.Button {
		case input.ButtonLeft:
			v.dragging = true
		case input.ButtonRight:
			v.pick(event.Pos.X(), event.Pos.Y())
		}

	case input.MouseUp:
		if event.Button == input.ButtonLeft {
			v.dragging = false
		}

	case input.MouseMove:
		dx, dy := event.Delta.X(), event.Delta.Y()
		switch {
		case v.useOrbit && v.dragging:
			v.orbit.HandleDrag(dx, dy)
		case !v.useOrbit && v.captured:
			v.fly.ProcessMouse(dx, dy)
		}

	case input.Wheel:
		if v.useOrbit {
			v.orbit.HandleZoom(event.Delta.Y())
		} else {
			v.fly.Zoom(event.Delta.Y())
		}

	case input.KeyDown:
		return v.handleKey(event.Key)
	}
	return nil
}

func (v *Viewer) handleKey(key sdl.Scancode) error {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false

	case sdl.SCANCODE_T:
		if err := v.scene.ToggleTerrain(); err != nil {
			return fmt.Errorf("toggle terrain: %w", err)
		}
		v.log.Info("terrain view", zap.Bool("shown", v.scene.ShowTerrain))

	case sdl.SCANCODE_1:
		v.scene.SetMode(scene.ModeFill)
	case sdl.SCANCODE_2:
		v.scene.SetMode(scene.ModeLine)
	case sdl.SCANCODE_3:
		v.scene.SetMode(scene.ModePoint)

	case sdl.SCANCODE_N:
		v.log.Info("skybox", zap.String("name", v.scene.NextSkybox()))
	case sdl.SCANCODE_R:
		v.scene.Regenerate()
	case sdl.SCANCODE_LEFTBRACKET:
		v.log.Info("terrain quality", zap.Int("quality", v.scene.StepQuality(false)))
	case sdl.SCANCODE_RIGHTBRACKET:
		v.log.Info("terrain quality", zap.Int("quality", v.scene.StepQuality(true)))

	case sdl.SCANCODE_P:
		v.log.Info("per-face materials", zap.Bool("enabled", v.scene.TogglePerFaceMaterials()))
	case sdl.SCANCODE_B:
		v.scene.ToggleBounds()
	case sdl.SCANCODE_F12:
		v.wantScreenshot = true
	case sdl.SCANCODE_DELETE:
		v.scene.Clear()
	case sdl.SCANCODE_O:
		v.openFileDialog()

	case sdl.SCANCODE_C:
		v.useOrbit = !v.useOrbit
		v.setCaptured(false)
	case sdl.SCANCODE_F:
		v.orbit.FitToBounds(v.scene.DrawBounds())
	case sdl.SCANCODE_HOME:
		v.fly.Reset()
		v.orbit = camera.NewOrbitCamera()
		v.orbit.FitToBounds(v.scene.DrawBounds())
	case sdl.SCANCODE_SPACE:
		if !v.useOrbit {
			v.setCaptured(!v.captured)
		}
	}
	return nil
}

func (v *Viewer) setCaptured(on bool) {
	v.captured = on
	v.window.SetRelativeMouse(on)
}

// pick focuses the orbit camera on the model under the cursor.
func (v *Viewer) pick(x, y float32) {
	if v.scene.ShowTerrain {
		return
	}
	width, height := v.window.GetSize()
	proj := v.lens().Projection(v.window.Aspect())
	viewProj := proj.Mul4(v.activeCamera().ViewMatrix())

	// Mouse coordinates are in window points, the drawable may be larger.
	ww, wh := v.window.PointSize()
	if ww > 0 && wh > 0 {
		x *= float32(width) / float32(ww)
		y *= float32(height) / float32(wh)
	}

	ray := picking.ScreenToRay(x, y, float32(width), float32(height), viewProj)
	asset, bounds, ok := v.scene.Pick(ray)
	if !ok {
		return
	}
	v.log.Info("picked model", zap.String("name", asset.Name), zap.String("id", asset.ID.String()))
	v.useOrbit = true
	v.setCaptured(false)
	v.orbit.FitToBounds(bounds)
}

func (v *Viewer) saveScreenshot() {
	width, height := v.window.GetSize()
	path, err := v.screenshots.CaptureFromPixels(opengl.ReadPixels(width, height), width, height)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// openFileDialog shows a native dialog without blocking the loop. The
// chosen path is ingested on the main thread.
func (v *Viewer) openFileDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Filter("All Files", "*").
			Title("Open Model").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				v.log.Error("file dialog failed", zap.Error(err))
			}
			return
		}
		if !v.inbox.Offer(filename) {
			v.log.Warn("dropped model from file dialog, too many pending", zap.String("path", filename))
		}
	}()
}

func (v *Viewer) ingest(path string) {
	if _, ok := v.scene.Ingest(path); ok && v.scene.Registry.Len() == 1 {
		v.orbit.FitToBounds(v.scene.DrawBounds())
	}
}

// update moves the active camera from the held keys.
func (v *Viewer) update(dt float32) {
	var dir mgl32.Vec3
	if v.input.IsKeyDown(sdl.SCANCODE_W) {
		dir[2]++
	}
	if v.input.IsKeyDown(sdl.SCANCODE_S) {
		dir[2]--
	}
	if v.input.IsKeyDown(sdl.SCANCODE_D) {
		dir[0]++
	}
	if v.input.IsKeyDown(sdl.SCANCODE_A) {
		dir[0]--
	}
	if v.input.IsKeyDown(sdl.SCANCODE_E) {
		dir[1]++
	}
	if v.input.IsKeyDown(sdl.SCANCODE_Q) {
		dir[1]--
	}

	speed := float32(moveSpeed)
	if v.input.IsKeyDown(sdl.SCANCODE_LSHIFT) {
		speed *= fastFactor
	}

	if v.useOrbit {
		v.orbit.HandleMovement(dir.Z()*speed*dt*10, dir.X()*speed*dt*10, dir.Y()*speed*dt*10)
		return
	}

	v.fly.Move(dir, speed*dt)
	if v.scene.ShowTerrain {
		ground := v.scene.TerrainHeight(v.fly.Position.X(), v.fly.Position.Z()) + eyeHeight
		if v.fly.Position.Y() < ground {
			v.fly.Position[1] = ground
		}
	}
}

func (v *Viewer) activeCamera() camera.Camera {
	if v.useOrbit {
		return v.orbit
	}
	return v.fly
}

// lens returns the active camera's projection settings.
func (v *Viewer) lens() camera.Lens {
	if v.useOrbit {
		return v.orbit.Lens
	}
	return v.fly.Lens
}

func (v *Viewer) render() {
	width, height := v.window.GetSize()
	opengl.BeginFrame(width, height, clearColor)

	cam := v.activeCamera()
	proj := v.lens().Projection(v.window.Aspect())
	view := cam.ViewMatrix()

	opengl.SetPolygonMode(polygonMode(v.scene.Mode))

	if v.scene.ShowTerrain {
		v.renderTerrain(proj, view)
		return
	}
	v.renderModels(proj, view, cam.EyePosition())
}

func (v *Viewer) renderTerrain(proj, view mgl32.Mat4) {
	t := v.scene.Terrain()
	if t == nil {
		return
	}

	p := v.terrainProgram
	p.Use()
	p.SetMat4("uViewProj", proj.Mul4(view))
	p.SetMat4("uModel", mgl32.Ident4())
	render.BindTerrain(p, t.Shading, t.HeightmapTexture())
	render.Binder{}.DrawAsset(p, t.Asset())

	if sky := v.scene.Sky(); sky != nil {
		opengl.SetPolygonMode(opengl.ModeFill)
		opengl.BeginSky()
		v.skyProgram.Use()
		v.skyProgram.SetMat4("uViewProj", render.SkyViewProj(proj, view))
		render.DrawSky(v.skyProgram, sky)
		opengl.EndSky()
	}
}

func (v *Viewer) renderModels(proj, view mgl32.Mat4, eye mgl32.Vec3) {
	p := v.meshProgram
	p.Use()

	positions, colors := v.scene.LightArrays()
	p.SetVec4Array("light_posn", positions)
	p.SetVec4Array("light_col", colors)
	p.SetVec3("uEye", eye)

	viewProj := proj.Mul4(view)
	for _, asset := range v.scene.Registry.Assets() {
		model := render.FitScale(asset.Bounds)
		p.SetMat4("uModel", model)
		p.SetMat4("uMVP", viewProj.Mul4(model))
		v.scene.Binder.DrawAsset(p, asset)
	}

	if buf, n := v.scene.BoundsBuffer(); n > 0 {
		p.SetMat4("uModel", mgl32.Ident4())
		p.SetMat4("uMVP", viewProj)
		p.SetInt(render.UniformTextureMask, 0)
		render.BindMaterial(p, boundsMaterial)
		p.DrawLines(buf, n)
	}
}

func polygonMode(m scene.RenderMode) opengl.PolygonMode {
	switch m {
	case scene.ModeLine:
		return opengl.ModeLine
	case scene.ModePoint:
		return opengl.ModePoint
	default:
		return opengl.ModeFill
	}
}
