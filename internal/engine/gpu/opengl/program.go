package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshforge/internal/engine/gpu"
)

// Program binds uniforms, textures and draw calls against a linked shader
// program. Uniform locations are looked up once and cached by name.
type Program struct {
	id        uint32
	locations map[string]int32
}

// NewProgram wraps a linked program.
func NewProgram(id uint32) *Program {
	return &Program{id: id, locations: make(map[string]int32)}
}

// ID returns the GL program name.
func (p *Program) ID() uint32 {
	return p.id
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Delete frees the program.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

// SetInt sets an int or sampler uniform.
func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.location(name), v)
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.location(name), v)
}

// SetVec2 sets a vec2 uniform.
func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	gl.Uniform2fv(p.location(name), 1, &v[0])
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3fv(p.location(name), 1, &v[0])
}

// SetVec4Array sets a vec4 array uniform.
func (p *Program) SetVec4Array(name string, v []mgl32.Vec4) {
	if len(v) == 0 {
		return
	}
	gl.Uniform4fv(p.location(name), int32(len(v)), &v[0][0])
}

// SetMat4 sets a mat4 uniform.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.location(name), 1, false, &m[0])
}

// BindTexture2D binds tex to the given texture unit.
func (p *Program) BindTexture2D(unit int32, tex gpu.Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
}

// BindCubemap binds a cubemap to the given texture unit.
func (p *Program) BindCubemap(unit int32, tex gpu.Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, uint32(tex))
}

// DrawTriangles draws count non-indexed vertices starting at first.
func (p *Program) DrawTriangles(buf gpu.Buffer, first, count int32) {
	gl.BindVertexArray(buf.VAO)
	gl.DrawArrays(gl.TRIANGLES, first, count)
	gl.BindVertexArray(0)
}

// DrawStrip draws an indexed triangle strip.
func (p *Program) DrawStrip(buf gpu.Buffer, count int32) {
	gl.BindVertexArray(buf.VAO)
	gl.DrawElements(gl.TRIANGLE_STRIP, count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// DrawLines draws count non-indexed vertices as a line list.
func (p *Program) DrawLines(buf gpu.Buffer, count int32) {
	gl.BindVertexArray(buf.VAO)
	gl.DrawArrays(gl.LINES, 0, count)
	gl.BindVertexArray(0)
}

// PolygonMode selects fill, line or point rasterisation for both faces.
type PolygonMode int

// Polygon modes.
const (
	ModeFill PolygonMode = iota
	ModeLine
	ModePoint
)

// SetPolygonMode applies mode the way the mesh viewer expects: polygon
// offset, depth test and alpha blending enabled.
func SetPolygonMode(mode PolygonMode) {
	switch mode {
	case ModeLine:
		gl.LineWidth(1)
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	case ModePoint:
		gl.PointSize(5)
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.POINT)
	default:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	gl.Enable(gl.POLYGON_OFFSET_FILL)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.PolygonOffset(1, 1)
}

// BeginSky sets depth state for drawing the sky behind everything.
func BeginSky() {
	gl.DepthFunc(gl.LEQUAL)
	gl.DepthMask(false)
}

// EndSky restores depth state after the sky.
func EndSky() {
	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
}

// BeginFrame sets the viewport and clears colour and depth.
func BeginFrame(width, height int, clear mgl32.Vec4) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(clear[0], clear[1], clear[2], clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels reads the back buffer as RGBA, bottom row first.
func ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
