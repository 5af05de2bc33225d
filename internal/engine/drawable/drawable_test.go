package drawable

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/Faultbox/meshforge/internal/engine/geometry"
	"github.com/Faultbox/meshforge/internal/engine/gpu"
	"github.com/Faultbox/meshforge/internal/engine/material"
)

// newTestAsset uploads one triangle per bounds entry and one 1x1 texture per name.
func newTestAsset(t *testing.T, dev *gpu.Memory, name string, bounds []geometry.Bounds, textures ...string) *Asset {
	t.Helper()
	a := NewAsset(name)
	a.Materials = material.WithDefault(nil)

	for _, b := range bounds {
		buf, err := dev.CreateVertexBuffer(make([]float32, 3*geometry.FloatsPerVertex), nil)
		if err != nil {
			t.Fatal(err)
		}
		a.Add(Drawable{
			Buffer:        buf,
			NumTriangles:  1,
			Bounds:        b,
			MaterialCount: len(a.Materials),
		})
	}
	for _, tn := range textures {
		tex, err := dev.CreateTexture2D(&gpu.Image{Width: 1, Height: 1, Channels: 1, Pix: []byte{0}})
		if err != nil {
			t.Fatal(err)
		}
		a.Textures[tn] = tex
	}
	return a
}

func box(lo, hi mgl32.Vec3) geometry.Bounds {
	return geometry.Bounds{Min: lo, Max: hi}
}

func TestNewAsset(t *testing.T) {
	a := NewAsset("cube.obj")

	if a.ID == uuid.Nil {
		t.Error("expected a non-nil ID")
	}
	if !a.IsEmpty() {
		t.Error("new asset should be empty")
	}
	if !a.Bounds.IsEmpty() {
		t.Error("new asset should have empty bounds")
	}
	if a.Textures == nil {
		t.Error("texture table should be allocated")
	}
	if NewAsset("cube.obj").ID == a.ID {
		t.Error("IDs must be unique")
	}
}

func TestAssetBoundsUnion(t *testing.T) {
	dev := gpu.NewMemory()
	a := newTestAsset(t, dev, "two", []geometry.Bounds{
		box(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 1}),
		box(mgl32.Vec3{2, -3, 0}, mgl32.Vec3{4, 0, 5}),
	})

	if a.Bounds.Min != (mgl32.Vec3{-1, -3, 0}) {
		t.Errorf("unexpected min %v", a.Bounds.Min)
	}
	if a.Bounds.Max != (mgl32.Vec3{4, 1, 5}) {
		t.Errorf("unexpected max %v", a.Bounds.Max)
	}
	if a.Triangles() != 2 {
		t.Errorf("expected 2 triangles, got %d", a.Triangles())
	}
}

func TestDrawableMaterialValidity(t *testing.T) {
	tests := []struct {
		id, count int
		valid     bool
	}{
		{0, 1, true},
		{2, 3, true},
		{3, 3, false},
		{-1, 3, false},
	}
	for _, tc := range tests {
		d := Drawable{MaterialID: tc.id, MaterialCount: tc.count}
		if d.HasValidMaterial() != tc.valid {
			t.Errorf("id %d count %d: expected %v", tc.id, tc.count, tc.valid)
		}
	}
}

func TestMaterialRange(t *testing.T) {
	r := MaterialRange{FirstTriangle: 2, TriangleCount: 5, MaterialID: 1}
	if r.FirstVertex() != 6 || r.VertexCount() != 15 {
		t.Errorf("unexpected range vertices %d+%d", r.FirstVertex(), r.VertexCount())
	}
}

func TestAssetRelease(t *testing.T) {
	dev := gpu.NewMemory()
	a := newTestAsset(t, dev, "a",
		[]geometry.Bounds{box(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1})},
		"diffuse.png", "bump.png")
	// An alias of an existing handle is freed once.
	a.Textures["alias.png"] = a.Textures["diffuse.png"]

	a.Release(dev)

	if dev.LiveBuffers() != 0 || len(dev.LiveTextures()) != 0 {
		t.Errorf("expected everything freed, live buffers %d textures %d", dev.LiveBuffers(), len(dev.LiveTextures()))
	}
	buffers, textures := dev.Deleted()
	if buffers != 1 || textures != 2 {
		t.Errorf("expected 1 buffer and 2 textures deleted, got %d and %d", buffers, textures)
	}
	if !a.IsEmpty() || len(a.Textures) != 0 {
		t.Error("released asset should be empty")
	}
}

func TestRegistry(t *testing.T) {
	dev := gpu.NewMemory()
	reg := NewRegistry()

	first := newTestAsset(t, dev, "first", []geometry.Bounds{geometry.EmptyBounds()}, "a.png")
	second := newTestAsset(t, dev, "second", []geometry.Bounds{geometry.EmptyBounds(), geometry.EmptyBounds()})
	reg.Add(first)
	reg.Add(second)

	if reg.Len() != 2 || reg.Assets()[0] != first {
		t.Fatalf("unexpected registry contents")
	}
	if got, ok := reg.Get(second.ID); !ok || got != second {
		t.Error("Get should find the second asset")
	}

	if !reg.Remove(dev, first.ID) {
		t.Fatal("Remove should report success")
	}
	if reg.Remove(dev, first.ID) {
		t.Error("second Remove should report false")
	}
	if reg.Len() != 1 || reg.Assets()[0] != second {
		t.Error("remaining asset should be second")
	}
	if len(dev.LiveTextures()) != 0 {
		t.Error("removed asset's texture should be freed")
	}

	reg.Clear(dev)
	if reg.Len() != 0 {
		t.Error("registry should be empty after Clear")
	}
	if dev.LiveBuffers() != 0 {
		t.Errorf("expected no live buffers, got %d", dev.LiveBuffers())
	}
	if _, ok := reg.Get(second.ID); ok {
		t.Error("cleared asset should not be found")
	}
}

func TestRegistryBoundsAndTriangles(t *testing.T) {
	dev := gpu.NewMemory()
	reg := NewRegistry()

	if !reg.Bounds().IsEmpty() || reg.Triangles() != 0 {
		t.Fatal("empty registry should have empty bounds and no triangles")
	}

	reg.Add(newTestAsset(t, dev, "a", []geometry.Bounds{box(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 1})}))
	reg.Add(newTestAsset(t, dev, "b", []geometry.Bounds{
		box(mgl32.Vec3{2, -3, 0}, mgl32.Vec3{4, 0, 0}),
		geometry.EmptyBounds(),
	}))

	b := reg.Bounds()
	if b.Min != (mgl32.Vec3{-1, -3, 0}) || b.Max != (mgl32.Vec3{4, 1, 1}) {
		t.Errorf("Bounds() = %v..%v", b.Min, b.Max)
	}
	if reg.Triangles() != 3 {
		t.Errorf("Triangles() = %d, want 3", reg.Triangles())
	}
}
