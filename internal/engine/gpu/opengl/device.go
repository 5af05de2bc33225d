// Package opengl implements the gpu contract on top of OpenGL 4.1 core.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meshforge/internal/engine/geometry"
	"github.com/Faultbox/meshforge/internal/engine/gpu"
)

// Device creates GPU resources in the current OpenGL context.
type Device struct{}

// NewDevice returns a device bound to the current context. gl.Init must have
// been called on this thread.
func NewDevice() *Device {
	return &Device{}
}

// CreateVertexBuffer implements gpu.Device.
func (d *Device) CreateVertexBuffer(vertices []float32, indices []uint32) (gpu.Buffer, error) {
	if len(vertices) == 0 {
		return gpu.Buffer{}, fmt.Errorf("empty vertex data")
	}

	var b gpu.Buffer
	gl.GenVertexArrays(1, &b.VAO)
	gl.BindVertexArray(b.VAO)

	gl.GenBuffers(1, &b.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	for _, attr := range geometry.Layout {
		gl.VertexAttribPointerWithOffset(attr.Location, attr.Components, gl.FLOAT, false, geometry.Stride, uintptr(attr.Offset))
		gl.EnableVertexAttribArray(attr.Location)
	}

	if len(indices) > 0 {
		gl.GenBuffers(1, &b.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	return gpu.BufferOrRelease(d, b, checkError("create vertex buffer"))
}

// DeleteBuffer implements gpu.Device.
func (d *Device) DeleteBuffer(b gpu.Buffer) {
	if b.VAO != 0 {
		gl.DeleteVertexArrays(1, &b.VAO)
	}
	if b.VBO != 0 {
		gl.DeleteBuffers(1, &b.VBO)
	}
	if b.EBO != 0 {
		gl.DeleteBuffers(1, &b.EBO)
	}
}

// CreateTexture2D implements gpu.Device.
func (d *Device) CreateTexture2D(img *gpu.Image) (gpu.Texture, error) {
	if err := img.Validate(); err != nil {
		return 0, err
	}

	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	uploadImage(gl.TEXTURE_2D, img)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return gpu.TextureOrRelease(d, gpu.Texture(texID), checkError("create texture"))
}

// CreateCubemap implements gpu.Device.
func (d *Device) CreateCubemap() (gpu.Texture, error) {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, texID)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return gpu.TextureOrRelease(d, gpu.Texture(texID), checkError("create cubemap"))
}

// UploadCubemapFace implements gpu.Device.
func (d *Device) UploadCubemapFace(tex gpu.Texture, face gpu.CubeFace, img *gpu.Image) error {
	if face < 0 || face >= gpu.CubeFaceCount {
		return fmt.Errorf("invalid cubemap face %d", face)
	}
	if err := img.Validate(); err != nil {
		return err
	}
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, uint32(tex))
	uploadImage(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(face), img)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return checkError("upload cubemap face " + face.String())
}

// DeleteTexture implements gpu.Device.
func (d *Device) DeleteTexture(tex gpu.Texture) {
	if tex == 0 {
		return
	}
	id := uint32(tex)
	gl.DeleteTextures(1, &id)
}

// uploadImage calls TexImage2D with the format matching the channel count.
func uploadImage(target uint32, img *gpu.Image) {
	format := glFormat(img.Format())

	// Rows of 1- and 3-channel images are not 4-byte aligned.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(target, 0, int32(format), int32(img.Width), int32(img.Height),
		0, format, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
}

func glFormat(f gpu.PixelFormat) uint32 {
	switch f {
	case gpu.FormatRed:
		return gl.RED
	case gpu.FormatRG:
		return gl.RG
	case gpu.FormatRGB:
		return gl.RGB
	default:
		return gl.RGBA
	}
}

// checkError drains the GL error queue and reports the first error.
func checkError(desc string) error {
	var first uint32
	for {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		if first == 0 {
			first = code
		}
	}
	if first != 0 {
		return fmt.Errorf("OpenGL error in %q: 0x%X", desc, first)
	}
	return nil
}
