package terrain

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/meshforge/internal/engine/geometry"
	"github.com/Faultbox/meshforge/internal/engine/gpu"
	"github.com/Faultbox/meshforge/internal/engine/texture"
	"github.com/Faultbox/meshforge/internal/logger"
)

// SkySegments is the sphere tessellation in both directions.
const SkySegments = 64

// DefaultSkybox is the skybox loaded when none is named.
const DefaultSkybox = "Clouds"

// SphereVertices returns (xSeg+1)*(ySeg+1) points on the unit sphere, row
// by row from the +Y pole. Normals point inward and texture coordinates
// span [0, 1] in both directions.
func SphereVertices(xSeg, ySeg int) []geometry.Vertex {
	out := make([]geometry.Vertex, 0, (xSeg+1)*(ySeg+1))
	for y := 0; y <= ySeg; y++ {
		for x := 0; x <= xSeg; x++ {
			xs := float32(x) / float32(xSeg)
			ys := float32(y) / float32(ySeg)

			theta := 2 * math.Pi * xs
			phi := math.Pi * ys
			p := mgl32.Vec3{
				math32.Cos(theta) * math32.Sin(phi),
				math32.Cos(phi),
				math32.Sin(theta) * math32.Sin(phi),
			}
			out = append(out, geometry.Vertex{
				Position: p,
				Normal:   p.Mul(-1),
				TexCoord: mgl32.Vec2{xs, ys},
			})
		}
	}
	return out
}

// StripIndices returns the triangle-strip indices over a SphereVertices
// grid. Rows alternate direction so the strip continues without restarts;
// there are 2*(xSeg+1)*ySeg indices.
func StripIndices(xSeg, ySeg int) []uint32 {
	row := uint32(xSeg + 1)
	out := make([]uint32, 0, 2*(xSeg+1)*ySeg)
	for y := uint32(0); y < uint32(ySeg); y++ {
		if y%2 == 0 {
			for x := uint32(0); x <= uint32(xSeg); x++ {
				out = append(out, y*row+x, (y+1)*row+x)
			}
			continue
		}
		for x := xSeg; x >= 0; x-- {
			out = append(out, (y+1)*row+uint32(x), y*row+uint32(x))
		}
	}
	return out
}

// Sky is the uploaded sky sphere and the cubemap it samples.
type Sky struct {
	dev        gpu.Device
	buffer     gpu.Buffer
	indexCount int

	cubemap gpu.Texture
	name    string

	log *zap.Logger
}

// NewSky uploads the sky sphere. It has no cubemap yet.
func NewSky(dev gpu.Device) (*Sky, error) {
	vertices := SphereVertices(SkySegments, SkySegments)
	indices := StripIndices(SkySegments, SkySegments)

	buf, err := dev.CreateVertexBuffer(geometry.Pack(vertices), indices)
	if err != nil {
		return nil, err
	}
	return &Sky{
		dev:        dev,
		buffer:     buf,
		indexCount: len(indices),
		log:        logger.Named("sky"),
	}, nil
}

// BuildSky uploads the sphere and loads the cubemap from faces.
func BuildSky(dev gpu.Device, faces [gpu.CubeFaceCount]string) (*Sky, error) {
	s, err := NewSky(dev)
	if err != nil {
		return nil, err
	}
	s.SetCubemap(faces)
	return s, nil
}

// SetCubemap replaces the cubemap with one loaded from faces, ordered
// +X, -X, +Y, -Y, +Z, -Z. The previous cubemap is freed first. It returns
// the number of faces that loaded.
func (s *Sky) SetCubemap(faces [gpu.CubeFaceCount]string) int {
	s.releaseCubemap()

	tex, loaded := texture.LoadCubemap(s.dev, faces)
	s.cubemap = tex
	if loaded < gpu.CubeFaceCount {
		s.log.Warn("incomplete skybox", zap.Int("faces", loaded))
	}
	return loaded
}

// SetSkybox switches to the named skybox under dir/Skyboxes.
func (s *Sky) SetSkybox(name, dir string) int {
	if name == "" {
		name = DefaultSkybox
	}
	loaded := s.SetCubemap(texture.CubemapFaces(dir, name))
	s.name = name
	s.log.Info("skybox set", zap.String("name", name), zap.Int("faces", loaded))
	return loaded
}

// Cubemap returns the current cubemap, or 0.
func (s *Sky) Cubemap() gpu.Texture { return s.cubemap }

// Name returns the current skybox name, empty when set by face paths.
func (s *Sky) Name() string { return s.name }

// IndexCount returns the number of strip indices.
func (s *Sky) IndexCount() int { return s.indexCount }

// Buffer returns the sphere buffer.
func (s *Sky) Buffer() gpu.Buffer { return s.buffer }

// Release frees the sphere and the cubemap.
func (s *Sky) Release() {
	s.releaseCubemap()
	if !s.buffer.IsZero() {
		s.dev.DeleteBuffer(s.buffer)
		s.buffer = gpu.Buffer{}
	}
	s.indexCount = 0
}

func (s *Sky) releaseCubemap() {
	if s.cubemap != 0 {
		s.dev.DeleteTexture(s.cubemap)
		s.cubemap = 0
	}
	s.name = ""
}
