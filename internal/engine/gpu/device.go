// Package gpu defines the GPU resource contract used by the asset pipeline.
//
// All calls must happen on the thread that owns the rendering context.
package gpu

import "fmt"

// Buffer identifies an uploaded vertex buffer together with its vertex array
// and optional element buffer.
type Buffer struct {
	VAO uint32
	VBO uint32
	EBO uint32
}

// IsZero reports whether b refers to nothing.
func (b Buffer) IsZero() bool {
	return b.VAO == 0 && b.VBO == 0 && b.EBO == 0
}

// Texture is a GPU texture name (2D or cubemap).
type Texture uint32

// CubeFace indexes cubemap faces in upload order.
type CubeFace int

// Cubemap faces, in the fixed load order +X, -X, +Y, -Y, +Z, -Z.
const (
	FacePositiveX CubeFace = iota
	FaceNegativeX
	FacePositiveY
	FaceNegativeY
	FacePositiveZ
	FaceNegativeZ
)

// CubeFaceCount is the number of faces in a cubemap.
const CubeFaceCount = 6

func (f CubeFace) String() string {
	switch f {
	case FacePositiveX:
		return "+X"
	case FaceNegativeX:
		return "-X"
	case FacePositiveY:
		return "+Y"
	case FaceNegativeY:
		return "-Y"
	case FacePositiveZ:
		return "+Z"
	case FaceNegativeZ:
		return "-Z"
	default:
		return fmt.Sprintf("CubeFace(%d)", int(f))
	}
}

// PixelFormat is the destination format derived from an image's channel count.
type PixelFormat int

// Pixel formats.
const (
	FormatRed PixelFormat = iota + 1
	FormatRG
	FormatRGB
	FormatRGBA
)

func (f PixelFormat) String() string {
	switch f {
	case FormatRed:
		return "R"
	case FormatRG:
		return "RG"
	case FormatRGB:
		return "RGB"
	case FormatRGBA:
		return "RGBA"
	default:
		return "unknown"
	}
}

// Image is a decoded, tightly packed 8-bit image ready for upload.
// Rows are stored top row first.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// Format maps the channel count to a pixel format: 1 luminance, 2
// luminance+alpha, 3 RGB, anything else RGBA.
func (img *Image) Format() PixelFormat {
	switch img.Channels {
	case 1:
		return FormatRed
	case 2:
		return FormatRG
	case 3:
		return FormatRGB
	default:
		return FormatRGBA
	}
}

// Validate checks that Pix holds exactly Width*Height*Channels bytes.
func (img *Image) Validate() error {
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", img.Width, img.Height)
	}
	if img.Channels < 1 || img.Channels > 4 {
		return fmt.Errorf("unsupported channel count %d", img.Channels)
	}
	if want := img.Width * img.Height * img.Channels; len(img.Pix) != want {
		return fmt.Errorf("pixel data has %d bytes, expected %d", len(img.Pix), want)
	}
	return nil
}

// Device allocates and frees GPU resources.
type Device interface {
	// CreateVertexBuffer uploads interleaved vertices laid out as
	// geometry.Layout. indices may be nil for non-indexed drawing.
	CreateVertexBuffer(vertices []float32, indices []uint32) (Buffer, error)
	DeleteBuffer(b Buffer)

	CreateTexture2D(img *Image) (Texture, error)
	// CreateCubemap allocates an empty cubemap; faces are filled with UploadCubemapFace.
	CreateCubemap() (Texture, error)
	UploadCubemapFace(tex Texture, face CubeFace, img *Image) error
	DeleteTexture(tex Texture)
}

// BufferOrRelease returns b unchanged when err is nil. Otherwise the parts of
// b that were created are deleted and the zero Buffer is returned with err.
func BufferOrRelease(dev Device, b Buffer, err error) (Buffer, error) {
	if err == nil {
		return b, nil
	}
	if !b.IsZero() {
		dev.DeleteBuffer(b)
	}
	return Buffer{}, err
}

// TextureOrRelease is BufferOrRelease for textures.
func TextureOrRelease(dev Device, tex Texture, err error) (Texture, error) {
	if err == nil {
		return tex, nil
	}
	dev.DeleteTexture(tex)
	return 0, err
}
