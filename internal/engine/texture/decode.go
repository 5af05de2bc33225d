package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/Faultbox/meshforge/internal/engine/gpu"
)

// Decode errors.
var (
	ErrUnknownFormat = errors.New("unknown image format")
	ErrNotImage      = errors.New("file is not an image")
)

// Decode decodes an image file into tightly packed 8-bit pixels.
// The format is sniffed from the content; TGA, which has no signature, is
// recognised by the extension of name.
func Decode(data []byte, name string) (*gpu.Image, error) {
	img, err := decodeImage(data, name)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return FromImage(img), nil
}

func decodeImage(data []byte, name string) (image.Image, error) {
	kind, _ := filetype.Match(data)
	if kind == filetype.Unknown {
		if strings.EqualFold(filepath.Ext(name), ".tga") {
			return DecodeTGA(data)
		}
		return nil, ErrUnknownFormat
	}
	if !filetype.IsImage(data) {
		return nil, fmt.Errorf("%w (%s)", ErrNotImage, kind.MIME.Value)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// FromImage packs img into an upload-ready image. Grayscale images keep one
// channel, gray images with transparency two, opaque color images three and
// everything else four.
func FromImage(img image.Image) *gpu.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if g, ok := img.(*image.Gray); ok {
		out := &gpu.Image{Width: w, Height: h, Channels: 1, Pix: make([]byte, 0, w*h)}
		for y := 0; y < h; y++ {
			row := g.Pix[y*g.Stride : y*g.Stride+w]
			out.Pix = append(out.Pix, row...)
		}
		return out
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}

	opaque, gray := true, true
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+4*w]
		for i := 0; i < len(row); i += 4 {
			if row[i+3] != 0xff {
				opaque = false
			}
			if row[i] != row[i+1] || row[i] != row[i+2] {
				gray = false
			}
		}
	}

	channels := 4
	switch {
	case opaque:
		channels = 3
	case gray:
		channels = 2
	}

	out := &gpu.Image{Width: w, Height: h, Channels: channels, Pix: make([]byte, 0, w*h*channels)}
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+4*w]
		for i := 0; i < len(row); i += 4 {
			switch channels {
			case 2:
				out.Pix = append(out.Pix, row[i], row[i+3])
			case 3:
				out.Pix = append(out.Pix, row[i], row[i+1], row[i+2])
			default:
				out.Pix = append(out.Pix, row[i:i+4]...)
			}
		}
	}
	return out
}
