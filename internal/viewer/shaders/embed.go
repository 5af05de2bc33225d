// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MeshVertexShader is the vertex shader for ingested models.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader shades ingested models with their material.
//
//go:embed mesh.frag
var MeshFragmentShader string

// TerrainVertexShader displaces the terrain grid by the heightmap.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader colours terrain by height band.
//
//go:embed terrain.frag
var TerrainFragmentShader string

// SkyVertexShader is the vertex shader for the sky sphere.
//
//go:embed sky.vert
var SkyVertexShader string

// SkyFragmentShader samples the skybox cubemap.
//
//go:embed sky.frag
var SkyFragmentShader string
