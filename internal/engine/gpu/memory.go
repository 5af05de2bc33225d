package gpu

import (
	"fmt"
	"sort"
)

// Memory is a Device that keeps every resource in host memory. It backs
// headless tools and tests, and records what was uploaded and freed.
type Memory struct {
	nextID uint32

	buffers  map[uint32]*MemoryBuffer
	textures map[Texture]*MemoryTexture

	deletedBuffers  int
	deletedTextures int
}

// MemoryBuffer is the stored content of a buffer.
type MemoryBuffer struct {
	Vertices []float32
	Indices  []uint32
}

// MemoryTexture is the stored content of a texture.
type MemoryTexture struct {
	Cubemap bool
	Image   *Image
	Faces   [CubeFaceCount]*Image
}

// FaceCount returns how many cubemap faces were uploaded.
func (t *MemoryTexture) FaceCount() int {
	n := 0
	for _, f := range t.Faces {
		if f != nil {
			n++
		}
	}
	return n
}

// NewMemory creates an empty in-memory device.
func NewMemory() *Memory {
	return &Memory{
		buffers:  make(map[uint32]*MemoryBuffer),
		textures: make(map[Texture]*MemoryTexture),
	}
}

func (m *Memory) id() uint32 {
	m.nextID++
	return m.nextID
}

// CreateVertexBuffer implements Device.
func (m *Memory) CreateVertexBuffer(vertices []float32, indices []uint32) (Buffer, error) {
	if len(vertices) == 0 {
		return Buffer{}, fmt.Errorf("empty vertex data")
	}
	b := Buffer{VAO: m.id(), VBO: m.id()}
	if len(indices) > 0 {
		b.EBO = m.id()
	}
	m.buffers[b.VAO] = &MemoryBuffer{
		Vertices: append([]float32(nil), vertices...),
		Indices:  append([]uint32(nil), indices...),
	}
	return b, nil
}

// DeleteBuffer implements Device.
func (m *Memory) DeleteBuffer(b Buffer) {
	if _, ok := m.buffers[b.VAO]; !ok {
		return
	}
	delete(m.buffers, b.VAO)
	m.deletedBuffers++
}

// CreateTexture2D implements Device.
func (m *Memory) CreateTexture2D(img *Image) (Texture, error) {
	if err := img.Validate(); err != nil {
		return 0, err
	}
	tex := Texture(m.id())
	m.textures[tex] = &MemoryTexture{Image: img}
	return tex, nil
}

// CreateCubemap implements Device.
func (m *Memory) CreateCubemap() (Texture, error) {
	tex := Texture(m.id())
	m.textures[tex] = &MemoryTexture{Cubemap: true}
	return tex, nil
}

// UploadCubemapFace implements Device.
func (m *Memory) UploadCubemapFace(tex Texture, face CubeFace, img *Image) error {
	t, ok := m.textures[tex]
	if !ok || !t.Cubemap {
		return fmt.Errorf("texture %d is not a live cubemap", tex)
	}
	if face < 0 || face >= CubeFaceCount {
		return fmt.Errorf("invalid cubemap face %d", face)
	}
	if err := img.Validate(); err != nil {
		return err
	}
	t.Faces[face] = img
	return nil
}

// DeleteTexture implements Device.
func (m *Memory) DeleteTexture(tex Texture) {
	if _, ok := m.textures[tex]; !ok {
		return
	}
	delete(m.textures, tex)
	m.deletedTextures++
}

// Buffer returns the stored content of a live buffer.
func (m *Memory) Buffer(b Buffer) (*MemoryBuffer, bool) {
	mb, ok := m.buffers[b.VAO]
	return mb, ok
}

// Texture returns the stored content of a live texture.
func (m *Memory) Texture(tex Texture) (*MemoryTexture, bool) {
	t, ok := m.textures[tex]
	return t, ok
}

// LiveBuffers returns the number of buffers not yet deleted.
func (m *Memory) LiveBuffers() int {
	return len(m.buffers)
}

// LiveTextures returns the sorted handles of textures not yet deleted.
func (m *Memory) LiveTextures() []Texture {
	out := make([]Texture, 0, len(m.textures))
	for tex := range m.textures {
		out = append(out, tex)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Deleted returns how many buffers and textures were freed.
func (m *Memory) Deleted() (buffers, textures int) {
	return m.deletedBuffers, m.deletedTextures
}
