package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshforge/internal/engine/geometry"
)

func TestBoundsWireframe(t *testing.T) {
	b := geometry.Bounds{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 2, 3}}
	verts := BoundsWireframe(b, 0)

	if len(verts) != BoundsWireframeVertexCount {
		t.Fatalf("len = %d, want %d", len(verts), BoundsWireframeVertexCount)
	}

	got := geometry.BoundsOf(verts)
	if got.Min != b.Min || got.Max != b.Max {
		t.Errorf("wireframe spans %v..%v, want %v..%v", got.Min, got.Max, b.Min, b.Max)
	}

	// Every edge moves along exactly one axis.
	for i := 0; i < len(verts); i += 2 {
		d := verts[i+1].Position.Sub(verts[i].Position)
		moved := 0
		for k := 0; k < 3; k++ {
			if d[k] != 0 {
				moved++
			}
		}
		if moved != 1 {
			t.Errorf("edge %d: %v -> %v is not axis aligned", i/2, verts[i].Position, verts[i+1].Position)
		}
	}
}

func TestBoundsWireframePadding(t *testing.T) {
	b := geometry.Bounds{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}}
	got := geometry.BoundsOf(BoundsWireframe(b, 0.5))
	if got.Min != (mgl32.Vec3{-0.5, -0.5, -0.5}) || got.Max != (mgl32.Vec3{1.5, 1.5, 1.5}) {
		t.Errorf("padded wireframe spans %v..%v", got.Min, got.Max)
	}

	if v := BoundsWireframe(geometry.EmptyBounds(), 1); v != nil {
		t.Errorf("empty bounds gave %d vertices", len(v))
	}
}

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "meshforge")
	sc.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }

	// 1x2 image, bottom row red then top row blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels() error = %v", err)
	}
	if want := filepath.Join(dir, "meshforge_2024-05-06_07-08-09.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}

	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b == 0 {
		t.Errorf("top pixel is not blue")
	}
	if r, _, b, _ := img.At(0, 1).RGBA(); r == 0 || b != 0 {
		t.Errorf("bottom pixel is not red")
	}
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "x")
	if _, err := sc.CaptureFromPixels(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected error for short pixel data")
	}
}
