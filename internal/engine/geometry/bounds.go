package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyBounds returns a box that any point will replace on first Extend.
func EmptyBounds() Bounds {
	inf := math32.Inf(1)
	return Bounds{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether no point has been accumulated yet.
func (b Bounds) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Extend grows the box to include p.
func (b *Bounds) Extend(p mgl32.Vec3) {
	for k := 0; k < 3; k++ {
		b.Min[k] = math32.Min(b.Min[k], p[k])
		b.Max[k] = math32.Max(b.Max[k], p[k])
	}
}

// Union grows the box to include other. Empty boxes are ignored.
func (b *Bounds) Union(other Bounds) {
	if other.IsEmpty() {
		return
	}
	b.Extend(other.Min)
	b.Extend(other.Max)
}

// Center returns the middle of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent along each axis.
func (b Bounds) Size() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Radius returns half the diagonal length, useful to frame a camera.
func (b Bounds) Radius() float32 {
	return b.Size().Len() * 0.5
}

// BoundsOf accumulates the positions of vertices.
func BoundsOf(vertices []Vertex) Bounds {
	b := EmptyBounds()
	for _, v := range vertices {
		b.Extend(v.Position)
	}
	return b
}
