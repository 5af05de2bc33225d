package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshforge/internal/engine/drawable"
	"github.com/Faultbox/meshforge/internal/engine/geometry"
	"github.com/Faultbox/meshforge/internal/engine/material"
	"github.com/Faultbox/meshforge/pkg/formats/obj"
)

// BuildShape de-indexes one shape into three vertices per triangle.
// materials is the extended list (default last) used to resolve face
// material ids. Faces with more than three corners are fanned; the parser
// normally triangulates them already.
func BuildShape(attrib *obj.Attrib, shape *obj.Shape, materials []material.Material) Shape {
	out := Shape{
		Name:       shape.Name,
		Bounds:     geometry.EmptyBounds(),
		MaterialID: material.DefaultIndex(materials),
	}

	hasNormals := attrib.NumNormals() > 0
	hasTexCoords := attrib.NumTexCoords() > 0

	mesh := &shape.Mesh
	offset := 0
	for f, n := range mesh.NumFaceVertices {
		face := mesh.Indices[offset : offset+n]
		offset += n

		matID := material.DefaultIndex(materials)
		if f < len(mesh.MaterialIDs) {
			matID = material.Resolve(mesh.MaterialIDs[f], materials)
		}
		if f == 0 {
			out.MaterialID = matID
		}

		for k := 1; k+1 < n; k++ {
			tri := [3]obj.Index{face[0], face[k], face[k+1]}
			out.Vertices = appendTriangle(out.Vertices, attrib, tri, hasNormals, hasTexCoords, &out.Bounds)
			out.Ranges = extendRanges(out.Ranges, matID)
		}
	}

	return out
}

// appendTriangle gathers the attributes of three corners.
func appendTriangle(dst []geometry.Vertex, attrib *obj.Attrib, tri [3]obj.Index, hasNormals, hasTexCoords bool, bounds *geometry.Bounds) []geometry.Vertex {
	var corners [3]geometry.Vertex

	useNormals := hasNormals && (tri[0].Normal >= 0 || tri[1].Normal >= 0 || tri[2].Normal >= 0)
	useTexCoords := hasTexCoords && (tri[0].TexCoord >= 0 || tri[1].TexCoord >= 0 || tri[2].TexCoord >= 0)

	for c, idx := range tri {
		p := attrib.Vertices[3*idx.Vertex : 3*idx.Vertex+3]
		corners[c].Position = mgl32.Vec3{p[0], p[1], p[2]}
		bounds.Extend(corners[c].Position)

		if useNormals && idx.Normal >= 0 {
			n := attrib.Normals[3*idx.Normal : 3*idx.Normal+3]
			corners[c].Normal = mgl32.Vec3{n[0], n[1], n[2]}
		}

		// Image rows are stored top first, OBJ puts v = 0 at the bottom.
		if useTexCoords && idx.TexCoord >= 0 {
			t := attrib.TexCoords[2*idx.TexCoord : 2*idx.TexCoord+2]
			corners[c].TexCoord = mgl32.Vec2{t[0], 1 - t[1]}
		}
	}

	return append(dst, corners[:]...)
}

// extendRanges adds one triangle with material id to the range list.
func extendRanges(ranges []drawable.MaterialRange, id int) []drawable.MaterialRange {
	if n := len(ranges); n > 0 && ranges[n-1].MaterialID == id {
		ranges[n-1].TriangleCount++
		return ranges
	}
	first := 0
	if n := len(ranges); n > 0 {
		first = ranges[n-1].FirstTriangle + ranges[n-1].TriangleCount
	}
	return append(ranges, drawable.MaterialRange{FirstTriangle: first, TriangleCount: 1, MaterialID: id})
}
