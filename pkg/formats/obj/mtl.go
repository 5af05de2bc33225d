package obj

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FormatError reports a malformed MTL statement.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("mtl: line %d: %s", e.Line, e.Msg)
}

// Material is one newmtl block of an MTL library.
type Material struct {
	Name string

	Ambient       [3]float32 // Ka
	Diffuse       [3]float32 // Kd
	Specular      [3]float32 // Ks
	Transmittance [3]float32 // Kt / Tf
	Emission      [3]float32 // Ke

	Shininess float32 // Ns
	IOR       float32 // Ni
	Dissolve  float32 // d, or 1 - Tr
	Illum     int

	AmbientTexname           string // map_Ka
	DiffuseTexname           string // map_Kd
	SpecularTexname          string // map_Ks
	SpecularHighlightTexname string // map_Ns
	BumpTexname              string // map_bump, bump
	AlphaTexname             string // map_d
	ReflectionTexname        string // refl
}

// newMaterial returns a material with the MTL defaults.
func newMaterial(name string) Material {
	return Material{
		Name:      name,
		Shininess: 1,
		IOR:       1,
		Dissolve:  1,
	}
}

// ParseMTL reads every material in an MTL library. Unsupported statements are
// returned as warnings.
func ParseMTL(r io.Reader) ([]Material, []string, error) {
	var (
		materials []Material
		warnings  []string
		current   *Material
		line      int
	)

	flush := func() {
		if current != nil {
			materials = append(materials, *current)
		}
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		key, args := fields[0], fields[1:]
		if key == "newmtl" {
			flush()
			m := newMaterial(strings.Join(args, " "))
			current = &m
			continue
		}
		if current == nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %s before newmtl", line, key))
			continue
		}

		var err error
		switch key {
		case "Ka":
			current.Ambient, err = parseColor(args)
		case "Kd":
			current.Diffuse, err = parseColor(args)
		case "Ks":
			current.Specular, err = parseColor(args)
		case "Kt", "Tf":
			current.Transmittance, err = parseColor(args)
		case "Ke":
			current.Emission, err = parseColor(args)
		case "Ns":
			current.Shininess, err = parseScalar(args)
		case "Ni":
			current.IOR, err = parseScalar(args)
		case "d":
			current.Dissolve, err = parseScalar(args)
		case "Tr":
			var tr float32
			tr, err = parseScalar(args)
			current.Dissolve = 1 - tr
		case "illum":
			var v float32
			v, err = parseScalar(args)
			current.Illum = int(v)
		case "map_Ka":
			current.AmbientTexname = textureName(args)
		case "map_Kd":
			current.DiffuseTexname = textureName(args)
		case "map_Ks":
			current.SpecularTexname = textureName(args)
		case "map_Ns":
			current.SpecularHighlightTexname = textureName(args)
		case "map_bump", "map_Bump", "bump":
			current.BumpTexname = textureName(args)
		case "map_d":
			current.AlphaTexname = textureName(args)
		case "refl":
			current.ReflectionTexname = textureName(args)
		default:
			warnings = append(warnings, fmt.Sprintf("line %d: unsupported statement %q", line, key))
		}
		if err != nil {
			return nil, warnings, &FormatError{Line: line, Msg: fmt.Sprintf("%s: %v", key, err)}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, fmt.Errorf("reading mtl: %w", err)
	}

	flush()
	return materials, warnings, nil
}

// parseColor reads r [g b]. A single component is replicated.
func parseColor(args []string) ([3]float32, error) {
	var c [3]float32
	if len(args) == 0 {
		return c, fmt.Errorf("missing color")
	}
	if args[0] == "spectral" || args[0] == "xyz" {
		return c, fmt.Errorf("%s colors are not supported", args[0])
	}
	for i := 0; i < 3; i++ {
		src := args[0]
		if i < len(args) {
			src = args[i]
		}
		v, err := strconv.ParseFloat(src, 32)
		if err != nil {
			return c, fmt.Errorf("invalid number %q", src)
		}
		c[i] = float32(v)
	}
	return c, nil
}

func parseScalar(args []string) (float32, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing value")
	}
	v, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", args[0])
	}
	return float32(v), nil
}

// textureName drops texture options such as "-bm 0.5" and keeps the file
// name, which is always the last token.
func textureName(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[len(args)-1]
}
