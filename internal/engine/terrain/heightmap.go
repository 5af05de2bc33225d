package terrain

import (
	"github.com/Faultbox/meshforge/internal/engine/gpu"
)

// Heightmap is a CPU copy of the heightmap's first channel, normalized to
// [0, 1]. It mirrors what the terrain shader samples.
type Heightmap struct {
	Width   int
	Height  int
	Samples []float32 // row-major, first stored row first
}

// NewHeightmap extracts the first channel of img. It returns nil for an
// invalid image.
func NewHeightmap(img *gpu.Image) *Heightmap {
	if img == nil || img.Validate() != nil {
		return nil
	}

	h := &Heightmap{
		Width:   img.Width,
		Height:  img.Height,
		Samples: make([]float32, img.Width*img.Height),
	}
	for i := range h.Samples {
		h.Samples[i] = float32(img.Pix[i*img.Channels]) / 255
	}
	return h
}

// At returns the sample at pixel (x, y), clamped to the edges.
func (h *Heightmap) At(x, y int) float32 {
	x = clampi(x, 0, h.Width-1)
	y = clampi(y, 0, h.Height-1)
	return h.Samples[y*h.Width+x]
}

// Sample returns the bilinearly interpolated value at texture coordinate
// (u, v). Coordinates outside [0, 1] clamp to the edge.
func (h *Heightmap) Sample(u, v float32) float32 {
	if h == nil || len(h.Samples) == 0 {
		return 0
	}

	fx := clampf(u, 0, 1) * float32(h.Width-1)
	fy := clampf(v, 0, 1) * float32(h.Height-1)

	x0 := int(fx)
	y0 := int(fy)
	fracX := fx - float32(x0)
	fracY := fy - float32(y0)

	top := h.At(x0, y0)*(1-fracX) + h.At(x0+1, y0)*fracX
	bottom := h.At(x0, y0+1)*(1-fracX) + h.At(x0+1, y0+1)*fracX
	return top*(1-fracY) + bottom*fracY
}

// Range returns the smallest and largest sample.
func (h *Heightmap) Range() (lo, hi float32) {
	if h == nil || len(h.Samples) == 0 {
		return 0, 0
	}
	lo, hi = h.Samples[0], h.Samples[0]
	for _, s := range h.Samples[1:] {
		lo = min(lo, s)
		hi = max(hi, s)
	}
	return lo, hi
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
