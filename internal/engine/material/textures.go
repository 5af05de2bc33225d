package material

import "fmt"

// Slot identifies one of the named texture slots of a material.
type Slot int

// Texture slots. The order is the texture unit each slot binds to.
const (
	SlotAmbient Slot = iota
	SlotDiffuse
	SlotSpecular
	SlotSpecularHighlight
	SlotBump
	SlotReflection
	SlotAlpha
)

// SlotCount is the number of texture slots.
const SlotCount = 7

// Slots lists all slots in unit order.
var Slots = [SlotCount]Slot{
	SlotAmbient,
	SlotDiffuse,
	SlotSpecular,
	SlotSpecularHighlight,
	SlotBump,
	SlotReflection,
	SlotAlpha,
}

var slotNames = [SlotCount]string{"ambient", "diffuse", "specular", "specular_highlight", "bump", "reflection", "alpha"}

var samplerUniforms = [SlotCount]string{
	"u_ambientTex",
	"u_diffuseTex",
	"u_specularTex",
	"u_specularHighTex",
	"u_bumpTex",
	"u_reflectionTex",
	"u_alphaTex",
}

func (s Slot) String() string {
	if s < 0 || int(s) >= SlotCount {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	return slotNames[s]
}

// Uniform returns the sampler uniform the slot binds to.
func (s Slot) Uniform() string {
	return samplerUniforms[s]
}

// Unit returns the texture unit the slot binds to.
func (s Slot) Unit() int32 {
	return int32(s)
}

// TextureNames holds the texture file names of a material, one per slot.
// Empty means the slot is unused.
type TextureNames struct {
	Ambient           string // map_Ka
	Diffuse           string // map_Kd
	Specular          string // map_Ks
	SpecularHighlight string // map_Ns
	Bump              string // map_bump, bump
	Alpha             string // map_d
	Reflection        string // refl
}

// Get returns the name stored in slot.
func (t *TextureNames) Get(s Slot) string {
	switch s {
	case SlotAmbient:
		return t.Ambient
	case SlotDiffuse:
		return t.Diffuse
	case SlotSpecular:
		return t.Specular
	case SlotSpecularHighlight:
		return t.SpecularHighlight
	case SlotBump:
		return t.Bump
	case SlotReflection:
		return t.Reflection
	case SlotAlpha:
		return t.Alpha
	}
	return ""
}

// Set stores name in slot.
func (t *TextureNames) Set(s Slot, name string) {
	switch s {
	case SlotAmbient:
		t.Ambient = name
	case SlotDiffuse:
		t.Diffuse = name
	case SlotSpecular:
		t.Specular = name
	case SlotSpecularHighlight:
		t.SpecularHighlight = name
	case SlotBump:
		t.Bump = name
	case SlotReflection:
		t.Reflection = name
	case SlotAlpha:
		t.Alpha = name
	}
}

// Each calls fn for every non-empty slot in unit order.
func (t *TextureNames) Each(fn func(s Slot, name string)) {
	for _, s := range Slots {
		if name := t.Get(s); name != "" {
			fn(s, name)
		}
	}
}

// Names returns the non-empty names in unit order (duplicates kept).
func (t *TextureNames) Names() []string {
	var out []string
	t.Each(func(_ Slot, name string) {
		out = append(out, name)
	})
	return out
}

// Empty reports whether no slot is set.
func (t *TextureNames) Empty() bool {
	return len(t.Names()) == 0
}
