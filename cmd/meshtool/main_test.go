package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/meshforge/internal/engine/gpu"
	"github.com/Faultbox/meshforge/internal/engine/model"
	"github.com/Faultbox/meshforge/internal/engine/terrain"
	"github.com/Faultbox/meshforge/pkg/formats/obj"
)

func TestParseGridParams(t *testing.T) {
	tests := []struct {
		w, h, q string
		want    terrain.GridParams
		wantErr bool
	}{
		{"100", "100", "3000", terrain.GridParams{Width: 100, Height: 100, Quality: 3000}, false},
		{"2.5", "4", "1", terrain.GridParams{Width: 2.5, Height: 4, Quality: 1}, false},
		{"x", "4", "1", terrain.GridParams{}, true},
		{"1", "y", "1", terrain.GridParams{}, true},
		{"1", "1", "1.5", terrain.GridParams{}, true},
	}

	for _, tt := range tests {
		got, err := parseGridParams(tt.w, tt.h, tt.q)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseGridParams(%q, %q, %q) error = %v, wantErr %v", tt.w, tt.h, tt.q, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseGridParams(%q, %q, %q) = %+v, want %+v", tt.w, tt.h, tt.q, got, tt.want)
		}
	}
}

func TestWriteGridInfo(t *testing.T) {
	var buf bytes.Buffer
	writeGridInfo(&buf, terrain.NewGrid(10, 10, 10))

	out := buf.String()
	for _, want := range []string{"quality 10", "Triangles: 200", "Vertices:  600", "Floats:    4800"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteAssetInfo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "two.obj")
	src := `mtllib two.mtl
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
usemtl red
f 1 2 3
usemtl blue
f 2 4 3
`
	mtl := "newmtl red\nKd 1 0 0\nnewmtl blue\nKd 0 0 1\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "two.mtl"), []byte(mtl), 0o644); err != nil {
		t.Fatal(err)
	}

	asset := model.Ingest(gpu.NewMemory(), path)

	var buf bytes.Buffer
	writeAssetInfo(&buf, asset, false)
	if strings.Contains(buf.String(), "triangles 0-0") {
		t.Error("non-verbose output lists ranges")
	}
	if !strings.Contains(buf.String(), "Triangles: 2") {
		t.Errorf("output missing triangle count:\n%s", buf.String())
	}

	buf.Reset()
	writeAssetInfo(&buf, asset, true)
	out := buf.String()
	for _, want := range []string{`triangles 0-0: material 0 "red"`, `triangles 1-1: material 1 "blue"`} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteMaterials(t *testing.T) {
	mats := []obj.Material{
		{Name: "stone", DiffuseTexname: "stone.tga", BumpTexname: "stone_n.tga"},
		{Name: "plain"},
	}

	var buf bytes.Buffer
	writeMaterials(&buf, mats, []string{"unknown token"})
	out := buf.String()

	for _, want := range []string{"Materials: 2", "map_Kd   stone.tga", "map_bump stone_n.tga", "plain", "warning: unknown token"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
