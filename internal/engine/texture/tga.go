// Package texture decodes image files and uploads them as GPU textures,
// caching handles per asset.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeGray         = 3  // Uncompressed grayscale
	TGATypeRLE          = 10 // RLE compressed true-color
	TGATypeRLEGray      = 11 // RLE compressed grayscale
)

const (
	tgaHeaderSize            = 18
	tgaDescriptorTopToBottom = 0x20
)

// ErrTGATruncated is returned when pixel data ends early.
var ErrTGATruncated = errors.New("TGA data truncated")

// tgaCanvas is the destination of decoded pixels, either *image.NRGBA or
// *image.Gray depending on the TGA type.
type tgaCanvas interface {
	image.Image
	Set(x, y int, c color.Color)
}

// DecodeTGA decodes a TGA image file.
// Supports true-color (24/32 bit) and grayscale (8 bit) images, both
// uncompressed and RLE compressed. TGA has no magic number, so callers
// dispatch on the file extension.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}

	gray := imageType == TGATypeGray || imageType == TGATypeRLEGray
	switch imageType {
	case TGATypeUncompressed, TGATypeRLE:
		if bpp != 24 && bpp != 32 {
			return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
		}
	case TGATypeGray, TGATypeRLEGray:
		if bpp != 8 {
			return nil, fmt.Errorf("unsupported grayscale TGA bit depth %d", bpp)
		}
	default:
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("invalid TGA dimensions %dx%d", width, height)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, ErrTGATruncated
	}
	pixelData := data[offset:]
	bytesPerPixel := bpp / 8

	var img tgaCanvas
	if gray {
		img = image.NewGray(image.Rect(0, 0, width, height))
	} else {
		img = image.NewNRGBA(image.Rect(0, 0, width, height))
	}

	// Bit 5 of the descriptor marks top-to-bottom storage; the default is
	// bottom-up and rows are flipped so row 0 is the top of the image.
	topToBottom := descriptor&tgaDescriptorTopToBottom != 0
	put := func(idx int, px []byte) {
		x, y := idx%width, idx/width
		if !topToBottom {
			y = height - 1 - y
		}
		img.Set(x, y, tgaColor(px))
	}

	if imageType == TGATypeUncompressed || imageType == TGATypeGray {
		if len(pixelData) < width*height*bytesPerPixel {
			return nil, ErrTGATruncated
		}
		for i := 0; i < width*height; i++ {
			put(i, pixelData[i*bytesPerPixel:(i+1)*bytesPerPixel])
		}
		return img, nil
	}

	if err := decodeTGARLE(pixelData, width*height, bytesPerPixel, put); err != nil {
		return nil, err
	}
	return img, nil
}

// tgaColor converts one stored pixel (BGR[A] or luminance) to a color.
func tgaColor(px []byte) color.Color {
	switch len(px) {
	case 1:
		return color.Gray{Y: px[0]}
	case 3:
		return color.NRGBA{R: px[2], G: px[1], B: px[0], A: 255}
	default:
		return color.NRGBA{R: px[2], G: px[1], B: px[0], A: px[3]}
	}
}

// decodeTGARLE expands RLE packets, calling put for every pixel in storage order.
func decodeTGARLE(pixelData []byte, pixelCount, bytesPerPixel int, put func(int, []byte)) error {
	pixelIdx := 0
	dataIdx := 0

	for pixelIdx < pixelCount {
		if dataIdx >= len(pixelData) {
			return ErrTGATruncated
		}
		packet := pixelData[dataIdx]
		dataIdx++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run packet: one pixel repeated
			if dataIdx+bytesPerPixel > len(pixelData) {
				return ErrTGATruncated
			}
			px := pixelData[dataIdx : dataIdx+bytesPerPixel]
			dataIdx += bytesPerPixel
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				put(pixelIdx, px)
				pixelIdx++
			}
			continue
		}

		// Raw packet: count literal pixels
		for i := 0; i < count && pixelIdx < pixelCount; i++ {
			if dataIdx+bytesPerPixel > len(pixelData) {
				return ErrTGATruncated
			}
			put(pixelIdx, pixelData[dataIdx:dataIdx+bytesPerPixel])
			dataIdx += bytesPerPixel
			pixelIdx++
		}
	}

	return nil
}
