package material

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestWithDefault(t *testing.T) {
	parsed := []Material{{Name: "red", Diffuse: mgl32.Vec3{1, 0, 0}}}
	extended := WithDefault(parsed)

	if len(parsed) != 1 {
		t.Fatal("input slice must not be modified")
	}
	if len(extended) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(extended))
	}
	def := extended[DefaultIndex(extended)]
	if def.Name != DefaultName || def.Illum != 0 || def.Ambient != (mgl32.Vec3{}) ||
		def.Diffuse != (mgl32.Vec3{}) || def.Specular != (mgl32.Vec3{}) || !def.Textures.Empty() {
		t.Errorf("default material should be zeroed, got %+v", def)
	}
}

func TestResolve(t *testing.T) {
	extended := WithDefault([]Material{{Name: "a"}, {Name: "b"}, {Name: "c"}})

	tests := []struct {
		index    int
		expected int
	}{
		{0, 0},
		{2, 2},
		{-1, 3},
		{3, 3},
		{4, 3},
		{math.MinInt32, 3},
		{math.MaxInt32, 3},
	}
	for _, tc := range tests {
		if got := Resolve(tc.index, extended); got != tc.expected {
			t.Errorf("Resolve(%d): expected %d, got %d", tc.index, tc.expected, got)
		}
	}
}

func TestResolveIsTotal(t *testing.T) {
	for n := 0; n < 4; n++ {
		mats := make([]Material, n)
		extended := WithDefault(mats)
		for idx := -10; idx <= 10; idx++ {
			r := Resolve(idx, extended)
			if r < 0 || r >= len(extended) {
				t.Fatalf("Resolve(%d) with %d materials returned %d", idx, n, r)
			}
			_ = extended[r].Shininess
		}
	}
}

func TestResolveDefaultOnly(t *testing.T) {
	extended := WithDefault(nil)
	if got := Resolve(0, extended); got != 0 {
		t.Errorf("expected default index 0, got %d", got)
	}
}

func TestTextureNames(t *testing.T) {
	var names TextureNames
	if !names.Empty() {
		t.Fatal("zero TextureNames should be empty")
	}

	for i, s := range Slots {
		names.Set(s, s.String()+".png")
		if got := names.Get(s); got != s.String()+".png" {
			t.Errorf("slot %v: got %q", s, got)
		}
		if s.Unit() != int32(i) {
			t.Errorf("slot %v: expected unit %d, got %d", s, i, s.Unit())
		}
	}

	var visited []Slot
	names.Each(func(s Slot, _ string) { visited = append(visited, s) })
	if len(visited) != SlotCount {
		t.Errorf("expected %d slots visited, got %d", SlotCount, len(visited))
	}
	if len(names.Names()) != SlotCount {
		t.Errorf("expected %d names, got %d", SlotCount, len(names.Names()))
	}
}

func TestSlotUniforms(t *testing.T) {
	expected := map[Slot]string{
		SlotAmbient:           "u_ambientTex",
		SlotDiffuse:           "u_diffuseTex",
		SlotSpecular:          "u_specularTex",
		SlotSpecularHighlight: "u_specularHighTex",
		SlotBump:              "u_bumpTex",
		SlotReflection:        "u_reflectionTex",
		SlotAlpha:             "u_alphaTex",
	}
	for slot, uniform := range expected {
		if got := slot.Uniform(); got != uniform {
			t.Errorf("slot %v: expected %s, got %s", slot, uniform, got)
		}
	}
}
