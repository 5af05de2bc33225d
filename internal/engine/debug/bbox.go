// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshforge/internal/engine/geometry"
)

// BoundsWireframeVertexCount is the number of vertices for a box wireframe
// (12 edges × 2).
const BoundsWireframeVertexCount = 24

// DefaultBoundsPadding is the gap between a model and its drawn box.
const DefaultBoundsPadding = 0.01

// BoundsWireframe returns line-list vertices for the edges of b grown by
// padding on every side. Empty bounds give no vertices.
func BoundsWireframe(b geometry.Bounds, padding float32) []geometry.Vertex {
	if b.IsEmpty() {
		return nil
	}
	pad := mgl32.Vec3{padding, padding, padding}
	lo, hi := b.Min.Sub(pad), b.Max.Add(pad)

	corner := func(x, y, z bool) mgl32.Vec3 {
		p := lo
		if x {
			p[0] = hi[0]
		}
		if y {
			p[1] = hi[1]
		}
		if z {
			p[2] = hi[2]
		}
		return p
	}

	edges := [][2]mgl32.Vec3{
		// Bottom face
		{corner(false, false, false), corner(true, false, false)},
		{corner(true, false, false), corner(true, false, true)},
		{corner(true, false, true), corner(false, false, true)},
		{corner(false, false, true), corner(false, false, false)},
		// Top face
		{corner(false, true, false), corner(true, true, false)},
		{corner(true, true, false), corner(true, true, true)},
		{corner(true, true, true), corner(false, true, true)},
		{corner(false, true, true), corner(false, true, false)},
		// Vertical edges
		{corner(false, false, false), corner(false, true, false)},
		{corner(true, false, false), corner(true, true, false)},
		{corner(true, false, true), corner(true, true, true)},
		{corner(false, false, true), corner(false, true, true)},
	}

	out := make([]geometry.Vertex, 0, BoundsWireframeVertexCount)
	for _, e := range edges {
		out = append(out,
			geometry.Vertex{Position: e[0], Normal: geometry.Up},
			geometry.Vertex{Position: e[1], Normal: geometry.Up})
	}
	return out
}
