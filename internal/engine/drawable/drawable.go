// Package drawable holds the render-ready records shared by mesh ingestion,
// the terrain assembler and the render binder.
package drawable

import (
	"github.com/google/uuid"

	"github.com/Faultbox/meshforge/internal/engine/geometry"
	"github.com/Faultbox/meshforge/internal/engine/gpu"
	"github.com/Faultbox/meshforge/internal/engine/material"
)

// MaterialRange is a run of consecutive triangles sharing one material.
type MaterialRange struct {
	FirstTriangle int
	TriangleCount int
	MaterialID    int
}

// FirstVertex returns the index of the range's first vertex.
func (r MaterialRange) FirstVertex() int32 { return int32(r.FirstTriangle * 3) }

// VertexCount returns the number of vertices in the range.
func (r MaterialRange) VertexCount() int32 { return int32(r.TriangleCount * 3) }

// Drawable is one uploaded vertex buffer with its material.
type Drawable struct {
	Buffer       gpu.Buffer
	NumTriangles int
	Bounds       geometry.Bounds

	// MaterialID indexes the owning asset's material list. It is the
	// material of the shape's first face.
	MaterialID    int
	Material      material.Material
	Textures      material.TextureNames
	MaterialCount int

	// Ranges splits the triangles by material, in draw order.
	Ranges []MaterialRange
}

// VertexCount returns the number of vertices to draw.
func (d *Drawable) VertexCount() int32 {
	return int32(d.NumTriangles * 3)
}

// HasValidMaterial reports whether MaterialID indexes the owning material list.
func (d *Drawable) HasValidMaterial() bool {
	return d.MaterialID >= 0 && d.MaterialID < d.MaterialCount
}

// Asset is everything produced from one source: its drawables, the material
// list they index (default material last) and the textures they reference.
type Asset struct {
	ID        uuid.UUID
	Name      string
	Drawables []Drawable
	Materials []material.Material
	Textures  map[string]gpu.Texture
	Bounds    geometry.Bounds
}

// NewAsset creates an empty asset with a fresh ID.
func NewAsset(name string) *Asset {
	return &Asset{
		ID:       uuid.New(),
		Name:     name,
		Textures: make(map[string]gpu.Texture),
		Bounds:   geometry.EmptyBounds(),
	}
}

// IsEmpty reports whether the asset has nothing to draw.
func (a *Asset) IsEmpty() bool {
	return len(a.Drawables) == 0
}

// Add appends a drawable and grows the asset bounds.
func (a *Asset) Add(d Drawable) {
	a.Drawables = append(a.Drawables, d)
	a.Bounds.Union(d.Bounds)
}

// Triangles returns the triangle count over all drawables.
func (a *Asset) Triangles() int {
	n := 0
	for i := range a.Drawables {
		n += a.Drawables[i].NumTriangles
	}
	return n
}

// Material returns material id, or false when id is out of range
// for this asset.
func (a *Asset) Material(id int) (material.Material, bool) {
	if id < 0 || id >= len(a.Materials) {
		return material.Material{}, false
	}
	return a.Materials[id], true
}

// Release frees every buffer and texture owned by the asset. The asset is
// left empty.
func (a *Asset) Release(dev gpu.Device) {
	for i := range a.Drawables {
		if !a.Drawables[i].Buffer.IsZero() {
			dev.DeleteBuffer(a.Drawables[i].Buffer)
		}
	}

	// Two names may share a handle; free it once.
	freed := make(map[gpu.Texture]bool, len(a.Textures))
	for _, tex := range a.Textures {
		if tex == 0 || freed[tex] {
			continue
		}
		dev.DeleteTexture(tex)
		freed[tex] = true
	}

	a.Drawables = nil
	a.Textures = make(map[string]gpu.Texture)
	a.Bounds = geometry.EmptyBounds()
}
