package scene

import (
	"github.com/Faultbox/lakeside/internal/engine/mesh"
	"github.com/Faultbox/lakeside/internal/engine/shader"
)

// Attribute names shared by all programs. The GLSL pins them to fixed
// locations so one vertex array serves every colour program.
const (
	attrPosition = "a_position"
	attrTexCoord = "a_texcoord"
	attrNormal   = "a_normal"
)

// Texture units.
const (
	unitDiffuse    = 0
	unitShadow     = 1
	unitReflection = 2
)

// Descriptors declares every program the renderer links, indexed by ProgramKind.
var Descriptors = [programCount]shader.Descriptor{
	ProgramDepth: {
		Name:       "depth",
		Vertex:     "depth.vert",
		Fragment:   "depth.frag",
		Attributes: []shader.Input{shader.Required(attrPosition)},
		Uniforms: []shader.Input{
			shader.Required("u_model"),
			shader.Required("u_view"),
			shader.Required("u_projection"),
		},
	},
	ProgramScene: {
		Name:     "scene",
		Vertex:   "scene.vert",
		Fragment: "scene.frag",
		Attributes: []shader.Input{
			shader.Required(attrPosition),
			shader.Optional(attrTexCoord),
			shader.Optional(attrNormal),
		},
		Uniforms: []shader.Input{
			shader.Required("u_model"),
			shader.Required("u_view"),
			shader.Required("u_projection"),
			shader.Required("u_diffuseMap"),
			shader.Required("u_diffuseColor"),
			shader.Required("u_lightIntensity"),
			shader.Optional("u_lightPos"),
			shader.Optional("u_lightMatrix"),
			shader.Optional("u_shadowMap"),
			shader.Optional("u_shadowBias"),
			shader.Optional("u_receiveShadow"),
			shader.Optional("u_alpha"),
			shader.Optional("u_specularColor"),
			shader.Optional("u_shininess"),
			shader.Optional("u_eye"),
			shader.Optional("u_clipPlane"),
		},
	},
	ProgramSky: {
		Name:     "sky",
		Vertex:   "sky.vert",
		Fragment: "sky.frag",
		Attributes: []shader.Input{
			shader.Required(attrPosition),
			shader.Optional(attrTexCoord),
		},
		Uniforms: []shader.Input{
			shader.Required("u_model"),
			shader.Required("u_view"),
			shader.Required("u_projection"),
			shader.Required("u_skyColor"),
			shader.Optional("u_starMap"),
			shader.Optional("u_starVisibility"),
			shader.Optional("u_clipPlane"),
		},
	},
	ProgramWater: {
		Name:     "water",
		Vertex:   "water.vert",
		Fragment: "water.frag",
		Attributes: []shader.Input{
			shader.Required(attrPosition),
			shader.Optional(attrTexCoord),
			shader.Optional(attrNormal),
		},
		Uniforms: []shader.Input{
			shader.Required("u_model"),
			shader.Required("u_view"),
			shader.Required("u_projection"),
			shader.Optional("u_reflectionMap"),
			shader.Optional("u_hasReflection"),
			shader.Optional("u_diffuseMap"),
			shader.Optional("u_diffuseColor"),
			shader.Optional("u_alpha"),
			shader.Optional("u_phase"),
			shader.Optional("u_lightIntensity"),
		},
	},
}

// meshLayout returns the vertex layout of the colour programs, taken from
// the scene program.
func meshLayout(p *shader.Program) mesh.Layout {
	return mesh.Layout{
		Position: p.Attributes.Get(attrPosition),
		TexCoord: p.Attributes.Get(attrTexCoord),
		Normal:   p.Attributes.Get(attrNormal),
	}
}

// ProgramsUsing returns the programs that read the named source file.
func ProgramsUsing(file string) []ProgramKind {
	var kinds []ProgramKind
	for k, d := range Descriptors {
		if d.Vertex == file || d.Fragment == file {
			kinds = append(kinds, ProgramKind(k))
		}
	}
	return kinds
}

func (k ProgramKind) String() string {
	if k >= 0 && k < programCount {
		return Descriptors[k].Name
	}
	return "unknown"
}
