// Package model turns OBJ geometry files into drawable assets.
package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshforge/internal/engine/drawable"
	"github.com/Faultbox/meshforge/internal/engine/geometry"
	"github.com/Faultbox/meshforge/internal/engine/material"
	"github.com/Faultbox/meshforge/pkg/formats/obj"
)

// Shape is the de-indexed vertex data of one OBJ shape, ready for upload.
type Shape struct {
	Name     string
	Vertices []geometry.Vertex
	Bounds   geometry.Bounds

	// MaterialID is the resolved material of the first face.
	MaterialID int
	// Ranges groups consecutive triangles by resolved material.
	Ranges []drawable.MaterialRange
}

// IsEmpty reports whether the shape produced no vertices.
func (s *Shape) IsEmpty() bool {
	return len(s.Vertices) == 0
}

// NumTriangles returns the number of triangles.
func (s *Shape) NumTriangles() int {
	return len(s.Vertices) / 3
}

// ConvertMaterials maps parsed MTL records to materials.
func ConvertMaterials(src []obj.Material) []material.Material {
	out := make([]material.Material, len(src))
	for i, m := range src {
		out[i] = material.Material{
			Name:          m.Name,
			Ambient:       mgl32.Vec3(m.Ambient),
			Diffuse:       mgl32.Vec3(m.Diffuse),
			Specular:      mgl32.Vec3(m.Specular),
			Transmittance: mgl32.Vec3(m.Transmittance),
			Emission:      mgl32.Vec3(m.Emission),
			Shininess:     m.Shininess,
			IOR:           m.IOR,
			Dissolve:      m.Dissolve,
			Illum:         m.Illum,
			Textures: material.TextureNames{
				Ambient:           m.AmbientTexname,
				Diffuse:           m.DiffuseTexname,
				Specular:          m.SpecularTexname,
				SpecularHighlight: m.SpecularHighlightTexname,
				Bump:              m.BumpTexname,
				Alpha:             m.AlphaTexname,
				Reflection:        m.ReflectionTexname,
			},
		}
	}
	return out
}
