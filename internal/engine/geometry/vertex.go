// Package geometry defines the interleaved vertex record shared by every mesh producer.
package geometry

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the interleaved record uploaded for every drawable:
// position(3), normal(3), texcoord(2).
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// FloatsPerVertex is the number of float32 components in one Vertex.
const FloatsPerVertex = 3 + 3 + 2

// Stride is the byte size of one interleaved Vertex.
const Stride = FloatsPerVertex * 4

// Attribute describes one vertex attribute inside the interleaved record.
type Attribute struct {
	Name       string
	Location   uint32
	Components int32
	Offset     int
}

// Layout lists the attributes in binding order. All producers share it.
var Layout = [3]Attribute{
	{Name: "position", Location: 0, Components: 3, Offset: int(unsafe.Offsetof(Vertex{}.Position))},
	{Name: "normal", Location: 1, Components: 3, Offset: int(unsafe.Offsetof(Vertex{}.Normal))},
	{Name: "texcoord", Location: 2, Components: 2, Offset: int(unsafe.Offsetof(Vertex{}.TexCoord))},
}

// Up is the constant normal of flat ground.
var Up = mgl32.Vec3{0, 1, 0}

// Pack flattens vertices into the interleaved float slice uploaded to the GPU.
func Pack(vertices []Vertex) []float32 {
	out := make([]float32, 0, len(vertices)*FloatsPerVertex)
	for _, v := range vertices {
		out = AppendVertex(out, v)
	}
	return out
}

// AppendVertex appends one interleaved record to data.
func AppendVertex(data []float32, v Vertex) []float32 {
	return append(data,
		v.Position[0], v.Position[1], v.Position[2],
		v.Normal[0], v.Normal[1], v.Normal[2],
		v.TexCoord[0], v.TexCoord[1],
	)
}

// Unpack is the inverse of Pack. Trailing floats that do not form a full
// record are ignored.
func Unpack(data []float32) []Vertex {
	n := len(data) / FloatsPerVertex
	out := make([]Vertex, n)
	for i := range out {
		f := data[i*FloatsPerVertex : (i+1)*FloatsPerVertex]
		out[i] = Vertex{
			Position: mgl32.Vec3{f[0], f[1], f[2]},
			Normal:   mgl32.Vec3{f[3], f[4], f[5]},
			TexCoord: mgl32.Vec2{f[6], f[7]},
		}
	}
	return out
}

// TriangleCount returns the number of triangles in a non-indexed interleaved buffer.
func TriangleCount(data []float32) int {
	return len(data) / FloatsPerVertex / 3
}
