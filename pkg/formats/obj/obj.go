// Package obj parses Wavefront OBJ geometry and its companion MTL material
// libraries.
//
// Statements are decoded by the g3n OBJ loader. The package keeps position,
// normal and texture coordinate streams separate, the way the file stores
// them, and records per-corner index triples for every face. Faces are
// grouped into shapes at each "o" or "g" statement.
package obj

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	g3nobj "github.com/g3n/engine/loader/obj"
)

// ErrNoReader is returned when Parse is given a nil reader.
var ErrNoReader = errors.New("obj: nil reader")

// MaterialOpener opens a material library referenced by a mtllib statement.
type MaterialOpener func(name string) (io.ReadCloser, error)

// Options controls parsing.
type Options struct {
	// Triangulate splits faces with more than three corners into triangles.
	Triangulate bool

	// Materials opens mtllib references. Without it the library names are
	// recorded in File.MaterialLibs but no materials are read.
	Materials MaterialOpener
}

// Attrib holds the raw attribute streams in file order.
type Attrib struct {
	Vertices  []float32 // xyz per position
	Normals   []float32 // xyz per normal
	TexCoords []float32 // uv per texture coordinate
}

// NumVertices returns the number of positions.
func (a *Attrib) NumVertices() int { return len(a.Vertices) / 3 }

// NumNormals returns the number of normals.
func (a *Attrib) NumNormals() int { return len(a.Normals) / 3 }

// NumTexCoords returns the number of texture coordinates.
func (a *Attrib) NumTexCoords() int { return len(a.TexCoords) / 2 }

// Index references one face corner. Absent components are -1.
type Index struct {
	Vertex   int
	Normal   int
	TexCoord int
}

// Mesh is the face list of a shape. Corners are stored flat in Indices;
// NumFaceVertices gives the corner count of each face.
type Mesh struct {
	Indices         []Index
	NumFaceVertices []int
	MaterialIDs     []int // per face, -1 when no known material applies
}

// NumFaces returns the number of faces.
func (m *Mesh) NumFaces() int { return len(m.NumFaceVertices) }

// Shape is a named group of faces.
type Shape struct {
	Name string
	Mesh Mesh
}

// File is a parsed OBJ file.
type File struct {
	Attrib       Attrib
	Shapes       []Shape
	Materials    []Material
	MaterialLibs []string
	Warnings     []string
}

// Load parses the OBJ file at path. Material libraries are resolved relative
// to the file's directory.
func Load(path string, opts Options) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening obj file: %w", err)
	}
	defer f.Close()

	if opts.Materials == nil {
		opts.Materials = DirOpener(filepath.Dir(path))
	}
	return Parse(f, opts)
}

// DirOpener returns a MaterialOpener reading libraries from dir.
func DirOpener(dir string) MaterialOpener {
	return func(name string) (io.ReadCloser, error) {
		name = strings.ReplaceAll(name, "\\", "/")
		if filepath.IsAbs(name) {
			return os.Open(name)
		}
		return os.Open(filepath.Join(dir, name))
	}
}

// Parse reads OBJ statements from r.
//
// A first pass over the lines drops faces with fewer than three corners,
// tags every shape and material, and loads mtllib libraries with ParseMTL.
// The tagged statements are then decoded by g3n and converted to shapes.
func Parse(r io.Reader, opts Options) (*File, error) {
	if r == nil {
		return nil, ErrNoReader
	}

	p := &parser{
		opts:       opts,
		file:       &File{},
		matIndex:   make(map[string]int),
		matTags:    make(map[string]int),
		shapeNames: make(map[string]string),
	}

	src, err := p.prepare(r)
	if err != nil {
		return nil, err
	}

	dec, err := g3nobj.DecodeReader(bytes.NewReader(src), strings.NewReader(""))
	if err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}

	p.file.Attrib = Attrib{
		Vertices:  []float32(dec.Vertices),
		Normals:   []float32(dec.Normals),
		TexCoords: []float32(dec.Uvs),
	}
	for i := range dec.Objects {
		p.addObject(&dec.Objects[i])
	}
	return p.file, nil
}

const noMaterial = "none"

type parser struct {
	opts Options
	file *File
	line int

	matIndex   map[string]int    // material name -> id
	matTags    map[string]int    // usemtl tag -> id
	shapeNames map[string]string // object tag -> shape name
}

func (p *parser) warnf(format string, args ...any) {
	msg := fmt.Sprintf("line %d: ", p.line) + fmt.Sprintf(format, args...)
	p.file.Warnings = append(p.file.Warnings, msg)
}

// prepare rewrites the input into statements the decoder accepts.
func (p *parser) prepare(r io.Reader) ([]byte, error) {
	var out bytes.Buffer
	p.beginShape(&out, "")

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		p.line++
		p.filterLine(&out, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading obj: %w", err)
	}
	return out.Bytes(), nil
}

func (p *parser) filterLine(out *bytes.Buffer, line string) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "f":
		if len(fields) < 4 {
			p.warnf("face with %d corners skipped", len(fields)-1)
			return
		}
		fallthrough
	case "v", "vn", "vt":
		out.WriteString(strings.Join(fields, " "))
		out.WriteByte('\n')
	case "o", "g":
		p.beginShape(out, strings.Join(fields[1:], " "))
	case "usemtl":
		fmt.Fprintf(out, "usemtl %s\n", p.materialTag(fields[1:]))
	case "mtllib":
		p.parseMtllib(fields[1:])
	case "s":
		// smoothing groups do not change the output
	default:
		p.warnf("unsupported statement %q", fields[0])
	}
}

// beginShape starts a decoder object standing for the named shape.
func (p *parser) beginShape(out *bytes.Buffer, name string) {
	tag := fmt.Sprintf("s%d", len(p.shapeNames))
	p.shapeNames[tag] = name
	fmt.Fprintf(out, "o %s\n", tag)
}

func (p *parser) materialTag(fields []string) string {
	if len(fields) == 0 {
		p.warnf("usemtl without a name")
		return noMaterial
	}
	name := strings.Join(fields, " ")
	id, ok := p.matIndex[name]
	if !ok {
		p.warnf("material %q not found", name)
		return noMaterial
	}
	tag := fmt.Sprintf("m%d", id)
	p.matTags[tag] = id
	return tag
}

// materialID maps a decoded face material back to its id, -1 when the face
// has no known material.
func (p *parser) materialID(tag string) int {
	if id, ok := p.matTags[tag]; ok {
		return id
	}
	return -1
}

// addObject converts one decoded object into a shape. Faces with a vertex
// index outside the position stream are skipped.
func (p *parser) addObject(o *g3nobj.Object) {
	shape := Shape{Name: p.shapeNames[o.Name]}

	for i := range o.Faces {
		face := &o.Faces[i]
		corners, err := p.corners(face)
		if err != nil {
			p.file.Warnings = append(p.file.Warnings,
				fmt.Sprintf("shape %q face %d skipped: %v", shape.Name, i, err))
			continue
		}
		p.addFace(&shape.Mesh, corners, p.materialID(face.Material))
	}

	if shape.Mesh.NumFaces() > 0 {
		p.file.Shapes = append(p.file.Shapes, shape)
	}
}

func (p *parser) corners(face *g3nobj.Face) ([]Index, error) {
	attrib := &p.file.Attrib
	corners := make([]Index, len(face.Vertices))

	for i, v := range face.Vertices {
		if v < 0 || v >= attrib.NumVertices() {
			return nil, fmt.Errorf("vertex index %d out of range (%d positions)", v+1, attrib.NumVertices())
		}

		t, dropped := optionalIndex(face.Uvs, i, attrib.NumTexCoords())
		if dropped {
			p.file.Warnings = append(p.file.Warnings, fmt.Sprintf("texcoord index %d out of range, ignored", face.Uvs[i]+1))
		}
		n, dropped := optionalIndex(face.Normals, i, attrib.NumNormals())
		if dropped {
			p.file.Warnings = append(p.file.Warnings, fmt.Sprintf("normal index %d out of range, ignored", face.Normals[i]+1))
		}

		corners[i] = Index{Vertex: v, Normal: n, TexCoord: t}
	}
	return corners, nil
}

// optionalIndex returns the i-th texcoord or normal index of a face, -1 when
// the corner has none. dropped reports an index past the end of the stream.
func optionalIndex(indices []int, i, count int) (idx int, dropped bool) {
	if i >= len(indices) {
		return -1, false
	}
	v := indices[i]
	switch {
	case v >= 0 && v < count:
		return v, false
	case v >= count && v <= math.MaxInt32:
		return -1, true
	default:
		return -1, false
	}
}

// addFace appends a face to mesh, splitting polygons when triangulation is
// enabled.
func (p *parser) addFace(mesh *Mesh, corners []Index, material int) {
	if len(corners) == 3 || !p.opts.Triangulate {
		mesh.Indices = append(mesh.Indices, corners...)
		mesh.NumFaceVertices = append(mesh.NumFaceVertices, len(corners))
		mesh.MaterialIDs = append(mesh.MaterialIDs, material)
		return
	}

	poly := make([][3]float32, len(corners))
	for i, c := range corners {
		v := p.file.Attrib.Vertices[3*c.Vertex : 3*c.Vertex+3]
		poly[i] = [3]float32{v[0], v[1], v[2]}
	}

	for _, tri := range Triangulate(poly) {
		mesh.Indices = append(mesh.Indices, corners[tri[0]], corners[tri[1]], corners[tri[2]])
		mesh.NumFaceVertices = append(mesh.NumFaceVertices, 3)
		mesh.MaterialIDs = append(mesh.MaterialIDs, material)
	}
}

// parseMtllib loads the first library on the line that can be opened.
func (p *parser) parseMtllib(fields []string) {
	if len(fields) == 0 {
		p.warnf("mtllib without a file name")
		return
	}
	p.file.MaterialLibs = append(p.file.MaterialLibs, fields...)

	if p.opts.Materials == nil {
		return
	}

	for _, name := range fields {
		rc, err := p.opts.Materials(name)
		if err != nil {
			continue
		}
		materials, warnings, err := ParseMTL(rc)
		rc.Close()
		if err != nil {
			p.warnf("material library %s: %v", name, err)
			continue
		}
		for _, w := range warnings {
			p.warnf("%s: %s", name, w)
		}
		for _, m := range materials {
			if _, dup := p.matIndex[m.Name]; dup {
				continue
			}
			p.matIndex[m.Name] = len(p.file.Materials)
			p.file.Materials = append(p.file.Materials, m)
		}
		return
	}

	p.warnf("material library %s not found", strings.Join(fields, " "))
}
