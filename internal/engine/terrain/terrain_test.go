package terrain

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshforge/internal/engine/geometry"
	"github.com/Faultbox/meshforge/internal/engine/gpu"
	"github.com/Faultbox/meshforge/internal/engine/texture"
)

func writeImage(t *testing.T, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

// writeSkybox writes six 1x1 faces named like texture.CubemapFaces expects,
// using PNG data under .jpg names; decoding sniffs content.
func writeSkybox(t *testing.T, dir, name string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	for _, path := range texture.CubemapFaces(dir, name) {
		writeImage(t, path, img)
	}
}

func TestNewGridVertexCount(t *testing.T) {
	tests := []struct {
		quality     int
		wantQuality int
	}{
		{1, 1},
		{2, 2},
		{7, 7},
		{0, 1},
		{-4, 1},
	}

	for _, tt := range tests {
		g := NewGrid(4, 4, tt.quality)
		if g.Quality() != tt.wantQuality {
			t.Errorf("quality %d: Quality() = %d, want %d", tt.quality, g.Quality(), tt.wantQuality)
		}
		wantVerts := 6 * tt.wantQuality * tt.wantQuality
		if len(g.Vertices()) != wantVerts {
			t.Errorf("quality %d: %d vertices, want %d", tt.quality, len(g.Vertices()), wantVerts)
		}
		if g.Size() != wantVerts*geometry.FloatsPerVertex {
			t.Errorf("quality %d: Size() = %d, want %d", tt.quality, g.Size(), wantVerts*geometry.FloatsPerVertex)
		}
		if len(g.Positions()) != wantVerts || len(g.Normals()) != wantVerts || len(g.TexCoords()) != wantVerts {
			t.Errorf("quality %d: attribute slices do not match vertex count", tt.quality)
		}
	}
}

func TestGridTenByTen(t *testing.T) {
	g := NewGrid(10, 10, 2)

	if len(g.Vertices()) != 24 {
		t.Fatalf("got %d vertices, want 24", len(g.Vertices()))
	}
	if g.NumTriangles() != 8 {
		t.Errorf("NumTriangles() = %d, want 8", g.NumTriangles())
	}
	if geometry.TriangleCount(g.Data()) != 8 {
		t.Errorf("TriangleCount(Data()) = %d, want 8", geometry.TriangleCount(g.Data()))
	}

	for i, v := range g.Vertices() {
		p := v.Position
		if p.X() < -5 || p.X() > 5 || p.Z() < -5 || p.Z() > 5 || p.Y() != 0 {
			t.Errorf("vertex %d position %v outside the grid", i, p)
		}
		if v.Normal != geometry.Up {
			t.Errorf("vertex %d normal = %v, want %v", i, v.Normal, geometry.Up)
		}
		uv := v.TexCoord
		if uv.X() < 0 || uv.X() > 1 || uv.Y() < 0 || uv.Y() > 1 {
			t.Errorf("vertex %d texcoord %v outside [0,1]", i, uv)
		}
	}

	b := g.Bounds()
	if b.Min != (mgl32.Vec3{-5, 0, -5}) || b.Max != (mgl32.Vec3{5, 0, 5}) {
		t.Errorf("Bounds() = %v..%v", b.Min, b.Max)
	}
}

func TestGridCellOrder(t *testing.T) {
	g := NewGrid(2, 2, 1)

	want := []geometry.Vertex{
		{Position: mgl32.Vec3{-1, 0, -1}, Normal: geometry.Up, TexCoord: mgl32.Vec2{0, 1}},
		{Position: mgl32.Vec3{-1, 0, 1}, Normal: geometry.Up, TexCoord: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec3{1, 0, 1}, Normal: geometry.Up, TexCoord: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{1, 0, 1}, Normal: geometry.Up, TexCoord: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{1, 0, -1}, Normal: geometry.Up, TexCoord: mgl32.Vec2{1, 1}},
		{Position: mgl32.Vec3{-1, 0, -1}, Normal: geometry.Up, TexCoord: mgl32.Vec2{0, 1}},
	}

	got := g.Vertices()
	if len(got) != len(want) {
		t.Fatalf("got %d vertices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("vertex %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGridUpdateReplacesData(t *testing.T) {
	g := NewGrid(10, 10, 4)
	data := g.Update(2, 6, 1)

	if len(data) != 6*geometry.FloatsPerVertex {
		t.Fatalf("Update returned %d floats, want %d", len(data), 6*geometry.FloatsPerVertex)
	}
	if w, h := g.Dimensions(); w != 2 || h != 6 {
		t.Errorf("Dimensions() = %v, %v", w, h)
	}
	b := g.Bounds()
	if b.Min != (mgl32.Vec3{-1, 0, -3}) || b.Max != (mgl32.Vec3{1, 0, 3}) {
		t.Errorf("Bounds() = %v..%v", b.Min, b.Max)
	}
}

func TestSphereVertices(t *testing.T) {
	verts := SphereVertices(SkySegments, SkySegments)

	if want := (SkySegments + 1) * (SkySegments + 1); len(verts) != want {
		t.Fatalf("got %d vertices, want %d", len(verts), want)
	}

	first := verts[0]
	if !first.Position.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-6) {
		t.Errorf("first vertex = %v, want the +Y pole", first.Position)
	}
	last := verts[len(verts)-1]
	if !last.Position.ApproxEqualThreshold(mgl32.Vec3{0, -1, 0}, 1e-5) {
		t.Errorf("last vertex = %v, want the -Y pole", last.Position)
	}
	if last.TexCoord != (mgl32.Vec2{1, 1}) {
		t.Errorf("last texcoord = %v, want (1, 1)", last.TexCoord)
	}

	for i, v := range verts {
		if l := v.Position.Len(); !mgl32.FloatEqualThreshold(l, 1, 1e-5) {
			t.Fatalf("vertex %d has length %v", i, l)
		}
		if !v.Normal.ApproxEqual(v.Position.Mul(-1)) {
			t.Fatalf("vertex %d normal %v does not point inward", i, v.Normal)
		}
	}
}

func TestStripIndices(t *testing.T) {
	got := StripIndices(2, 2)
	want := []uint32{0, 3, 1, 4, 2, 5, 8, 5, 7, 4, 6, 3}

	if len(got) != len(want) {
		t.Fatalf("got %d indices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d = %d, want %d", i, got[i], want[i])
		}
	}

	full := StripIndices(SkySegments, SkySegments)
	if want := 2 * (SkySegments + 1) * SkySegments; len(full) != want {
		t.Errorf("got %d indices, want %d", len(full), want)
	}
	limit := uint32((SkySegments + 1) * (SkySegments + 1))
	for i, idx := range full {
		if idx >= limit {
			t.Fatalf("index %d = %d out of range", i, idx)
		}
	}
}

func TestNewSky(t *testing.T) {
	mem := gpu.NewMemory()
	sky, err := NewSky(mem)
	if err != nil {
		t.Fatal(err)
	}

	if want := 2 * (SkySegments + 1) * SkySegments; sky.IndexCount() != want {
		t.Errorf("IndexCount() = %d, want %d", sky.IndexCount(), want)
	}
	buf, ok := mem.Buffer(sky.Buffer())
	if !ok {
		t.Fatal("sky buffer not uploaded")
	}
	if want := (SkySegments + 1) * (SkySegments + 1) * geometry.FloatsPerVertex; len(buf.Vertices) != want {
		t.Errorf("uploaded %d floats, want %d", len(buf.Vertices), want)
	}
	if len(buf.Indices) != sky.IndexCount() {
		t.Errorf("uploaded %d indices, want %d", len(buf.Indices), sky.IndexCount())
	}
	if sky.Cubemap() != 0 {
		t.Errorf("new sky has cubemap %d", sky.Cubemap())
	}
}

func TestSkySetSkyboxReleasesPrevious(t *testing.T) {
	dir := t.TempDir()
	writeSkybox(t, dir, "Clouds")
	writeSkybox(t, dir, "Desert")

	mem := gpu.NewMemory()
	sky, err := NewSky(mem)
	if err != nil {
		t.Fatal(err)
	}

	if n := sky.SetSkybox("", dir); n != gpu.CubeFaceCount {
		t.Fatalf("SetSkybox loaded %d faces, want %d", n, gpu.CubeFaceCount)
	}
	if sky.Name() != DefaultSkybox {
		t.Errorf("Name() = %q, want %q", sky.Name(), DefaultSkybox)
	}
	first := sky.Cubemap()

	if n := sky.SetSkybox("Desert", dir); n != gpu.CubeFaceCount {
		t.Fatalf("SetSkybox loaded %d faces, want %d", n, gpu.CubeFaceCount)
	}
	if _, ok := mem.Texture(first); ok {
		t.Error("previous cubemap is still live")
	}
	tex, ok := mem.Texture(sky.Cubemap())
	if !ok || !tex.Cubemap {
		t.Fatal("current cubemap is not live")
	}
	if tex.FaceCount() != gpu.CubeFaceCount {
		t.Errorf("cubemap has %d faces", tex.FaceCount())
	}
	if got := len(mem.LiveTextures()); got != 1 {
		t.Errorf("%d live textures, want 1", got)
	}
}

func TestSkyMissingSkybox(t *testing.T) {
	mem := gpu.NewMemory()
	sky, err := NewSky(mem)
	if err != nil {
		t.Fatal(err)
	}

	if n := sky.SetSkybox("Nowhere", t.TempDir()); n != 0 {
		t.Errorf("SetSkybox loaded %d faces, want 0", n)
	}
	if sky.Cubemap() == 0 {
		t.Error("cubemap should exist even with no faces")
	}
}

func TestSkyRelease(t *testing.T) {
	dir := t.TempDir()
	writeSkybox(t, dir, "Clouds")

	mem := gpu.NewMemory()
	sky, err := BuildSky(mem, texture.CubemapFaces(dir, "Clouds"))
	if err != nil {
		t.Fatal(err)
	}
	sky.Release()

	if mem.LiveBuffers() != 0 || len(mem.LiveTextures()) != 0 {
		t.Errorf("after Release: %d buffers, %d textures live", mem.LiveBuffers(), len(mem.LiveTextures()))
	}
}

func TestTerrainBuild(t *testing.T) {
	mem := gpu.NewMemory()
	tr := New(mem, GridParams{Width: 10, Height: 10, Quality: 2}, DefaultShading())
	asset := tr.Build()

	if len(asset.Drawables) != 1 {
		t.Fatalf("got %d drawables, want 1", len(asset.Drawables))
	}
	d := asset.Drawables[0]
	if d.NumTriangles != 8 {
		t.Errorf("NumTriangles = %d, want 8", d.NumTriangles)
	}
	if !d.HasValidMaterial() {
		t.Errorf("material id %d out of %d", d.MaterialID, d.MaterialCount)
	}
	buf, ok := mem.Buffer(d.Buffer)
	if !ok {
		t.Fatal("grid buffer not uploaded")
	}
	if len(buf.Vertices) != 24*geometry.FloatsPerVertex {
		t.Errorf("uploaded %d floats", len(buf.Vertices))
	}
	if asset.Bounds.Min != (mgl32.Vec3{-5, 0, -5}) || asset.Bounds.Max != (mgl32.Vec3{5, 0, 5}) {
		t.Errorf("Bounds = %v..%v", asset.Bounds.Min, asset.Bounds.Max)
	}
}

func TestTerrainSetGeometry(t *testing.T) {
	mem := gpu.NewMemory()
	tr := New(mem, GridParams{Width: 10, Height: 10, Quality: 2}, DefaultShading())
	old := tr.Build().Drawables[0].Buffer

	asset := tr.SetGeometry(GridParams{Width: 4, Height: 4, Quality: 3})

	if _, ok := mem.Buffer(old); ok {
		t.Error("old grid buffer is still live")
	}
	if mem.LiveBuffers() != 1 {
		t.Errorf("%d live buffers, want 1", mem.LiveBuffers())
	}
	if got := asset.Triangles(); got != 18 {
		t.Errorf("Triangles() = %d, want 18", got)
	}
}

func TestTerrainHeightmap(t *testing.T) {
	dir := t.TempDir()

	// Left column black, right column white: height grows with x.
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(1, 0, color.Gray{Y: 255})
	img.SetGray(1, 1, color.Gray{Y: 255})
	writeImage(t, filepath.Join(dir, "heightmap.png"), img)

	mem := gpu.NewMemory()
	shading := DefaultShading()
	tr := New(mem, GridParams{Width: 10, Height: 10, Quality: 2}, shading)
	tr.Build()

	tex := tr.LoadHeightmap(dir, "heightmap.png")
	if tex == 0 || tr.HeightmapTexture() != tex {
		t.Fatalf("LoadHeightmap() = %d, HeightmapTexture() = %d", tex, tr.HeightmapTexture())
	}
	if tr.Asset().Textures["heightmap.png"] != tex {
		t.Error("heightmap not recorded in the asset texture table")
	}
	stored, ok := mem.Texture(tex)
	if !ok || stored.Image.Channels != 1 {
		t.Fatal("heightmap not uploaded as a single-channel texture")
	}

	tests := []struct {
		x, z float32
		want float32
	}{
		{-5, 0, 0},
		{5, 0, shading.HeightScale},
		{0, 3, shading.HeightScale / 2},
		{-50, 0, 0},
		{50, -50, shading.HeightScale},
	}
	for _, tt := range tests {
		if got := tr.HeightAt(tt.x, tt.z); !mgl32.FloatEqualThreshold(got, tt.want, 1e-4) {
			t.Errorf("HeightAt(%v, %v) = %v, want %v", tt.x, tt.z, got, tt.want)
		}
	}

	tr.Release()
	if mem.LiveBuffers() != 0 || len(mem.LiveTextures()) != 0 {
		t.Errorf("after Release: %d buffers, %d textures live", mem.LiveBuffers(), len(mem.LiveTextures()))
	}
	if tr.HeightAt(5, 0) != 0 {
		t.Error("released terrain should be flat")
	}
}

func TestHeightmapSample(t *testing.T) {
	h := &Heightmap{Width: 2, Height: 2, Samples: []float32{0, 1, 1, 1}}

	tests := []struct {
		u, v float32
		want float32
	}{
		{0, 0, 0},
		{1, 0, 1},
		{0.5, 0, 0.5},
		{0.5, 0.5, 0.75},
		{-3, -3, 0},
		{4, 4, 1},
	}
	for _, tt := range tests {
		if got := h.Sample(tt.u, tt.v); !mgl32.FloatEqualThreshold(got, tt.want, 1e-6) {
			t.Errorf("Sample(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
		}
	}

	if lo, hi := h.Range(); lo != 0 || hi != 1 {
		t.Errorf("Range() = %v, %v", lo, hi)
	}
	var empty *Heightmap
	if empty.Sample(0.5, 0.5) != 0 {
		t.Error("nil heightmap should sample 0")
	}
}

func TestNewHeightmapFirstChannel(t *testing.T) {
	img := &gpu.Image{Width: 2, Height: 1, Channels: 3, Pix: []byte{255, 0, 0, 51, 255, 255}}
	h := NewHeightmap(img)
	if h == nil {
		t.Fatal("NewHeightmap returned nil")
	}
	if h.At(0, 0) != 1 || !mgl32.FloatEqualThreshold(h.At(1, 0), 0.2, 1e-6) {
		t.Errorf("samples = %v", h.Samples)
	}
	if NewHeightmap(&gpu.Image{Width: 2, Height: 2, Channels: 1, Pix: []byte{1}}) != nil {
		t.Error("invalid image should yield nil")
	}
}

func TestDefaultShading(t *testing.T) {
	s := DefaultShading()
	if !mgl32.FloatEqualThreshold(s.SunDir.Len(), 1, 1e-6) {
		t.Errorf("sun direction length = %v", s.SunDir.Len())
	}
	if s.SunDir.Y() >= 0 {
		t.Errorf("sun should point down, got %v", s.SunDir)
	}
	if s.HeightScale != 5 || s.SnowLine != 3 || s.RockLine != 1 {
		t.Errorf("unexpected defaults %+v", s)
	}
}
