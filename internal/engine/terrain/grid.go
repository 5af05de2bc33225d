package terrain

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshforge/internal/engine/geometry"
)

// Grid is a flat rectangle in the XZ plane centred on the origin, split into
// Quality x Quality cells of two triangles each. Vertices are not shared, so
// the grid holds 6*Quality^2 of them.
type Grid struct {
	width   float32
	height  float32
	quality int

	vertices []geometry.Vertex
	data     []float32
}

// NewGrid builds a grid. quality below 1 is treated as 1.
func NewGrid(width, height float32, quality int) *Grid {
	g := &Grid{}
	g.Update(width, height, quality)
	return g
}

// Update discards the current vertices and rebuilds the grid. It returns
// the new interleaved data.
func (g *Grid) Update(width, height float32, quality int) []float32 {
	g.width = width
	g.height = height
	g.quality = max(quality, 1)

	n := g.quality
	g.vertices = make([]geometry.Vertex, 0, 6*n*n)

	halfW := width * 0.5
	halfH := height * 0.5
	dx := width / float32(n)
	dz := height / float32(n)
	step := 1 / float32(n)

	corner := func(i, j int) geometry.Vertex {
		return geometry.Vertex{
			Position: mgl32.Vec3{-halfW + dx*float32(i), 0, -halfH + dz*float32(j)},
			Normal:   geometry.Up,
			TexCoord: mgl32.Vec2{step * float32(i), 1 - step*float32(j)},
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v0 := corner(i, j)
			v1 := corner(i+1, j)
			v2 := corner(i+1, j+1)
			v3 := corner(i, j+1)

			g.vertices = append(g.vertices, v0, v3, v2, v2, v1, v0)
		}
	}

	g.data = geometry.Pack(g.vertices)
	return g.data
}

// Data returns the interleaved vertex data.
func (g *Grid) Data() []float32 { return g.data }

// Size returns the number of floats in Data.
func (g *Grid) Size() int { return len(g.data) }

// Vertices returns the vertex records.
func (g *Grid) Vertices() []geometry.Vertex { return g.vertices }

// Quality returns the effective cells per side.
func (g *Grid) Quality() int { return g.quality }

// Dimensions returns the grid width and height.
func (g *Grid) Dimensions() (width, height float32) { return g.width, g.height }

// NumTriangles returns the triangle count.
func (g *Grid) NumTriangles() int { return len(g.vertices) / 3 }

// Positions returns the vertex positions in emission order.
func (g *Grid) Positions() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(g.vertices))
	for i, v := range g.vertices {
		out[i] = v.Position
	}
	return out
}

// Normals returns the vertex normals in emission order.
func (g *Grid) Normals() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(g.vertices))
	for i, v := range g.vertices {
		out[i] = v.Normal
	}
	return out
}

// TexCoords returns the vertex texture coordinates in emission order.
func (g *Grid) TexCoords() []mgl32.Vec2 {
	out := make([]mgl32.Vec2, len(g.vertices))
	for i, v := range g.vertices {
		out[i] = v.TexCoord
	}
	return out
}

// Bounds returns the box enclosing the grid.
func (g *Grid) Bounds() geometry.Bounds {
	return geometry.BoundsOf(g.vertices)
}
