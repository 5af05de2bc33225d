package shaders

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Faultbox/meshforge/internal/engine/lighting"
)

func TestSourcesDeclareUniforms(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		uniforms []string
	}{
		{"mesh.vert", MeshVertexShader, []string{"uMVP", "uModel"}},
		{"mesh.frag", MeshFragmentShader, []string{
			"ambient", "diffuse", "specular", "transmittance", "emission",
			"shininess", "ior", "dissolve", "illum", "textureMask",
			"u_ambientTex", "u_diffuseTex", "u_specularTex", "u_specularHighTex",
			"u_bumpTex", "u_reflectionTex", "u_alphaTex",
		}},
		{"terrain.vert", TerrainVertexShader, []string{"uModel", "uViewProj", "uHeightTex", "uHeightScale", "uUVScale", "uTexel"}},
		{"terrain.frag", TerrainFragmentShader, []string{"uWaterLevel", "uRockLine", "uSnowLine", "uBlendW", "uSunDir", "uSunColor", "uAmbient"}},
		{"sky.vert", SkyVertexShader, []string{"uViewProj"}},
		{"sky.frag", SkyFragmentShader, []string{"uSkybox"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.HasPrefix(tt.src, "#version 410 core") {
				t.Errorf("%s does not start with a 410 core version line", tt.name)
			}
			for _, u := range tt.uniforms {
				if !strings.Contains(tt.src, " "+u+";") {
					t.Errorf("%s does not declare uniform %s", tt.name, u)
				}
			}
		})
	}
}

func TestVertexShadersUseSharedLayout(t *testing.T) {
	for name, src := range map[string]string{
		"mesh.vert":    MeshVertexShader,
		"terrain.vert": TerrainVertexShader,
		"sky.vert":     SkyVertexShader,
	} {
		if !strings.Contains(src, "layout(location = 0) in vec3 aPosition;") {
			t.Errorf("%s does not read position from location 0", name)
		}
	}
}

func TestMeshLightCountMatchesBuffer(t *testing.T) {
	want := fmt.Sprintf("const int NUM_LIGHTS = %d;", lighting.MaxPointLights)
	if !strings.Contains(MeshFragmentShader, want) {
		t.Errorf("mesh.frag does not declare %q", want)
	}
}
