// Package shader compiles GLSL programs and validates them against a
// declared set of attributes and uniforms.
package shader

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/lakeside/pkg/math"
)

// Program build errors. All are fatal at startup.
var (
	ErrShaderCompile   = errors.New("shader compile failed")
	ErrShaderLink      = errors.New("program link failed")
	ErrMissingLocation = errors.New("required location missing")
)

// Input names one attribute or uniform a program is expected to expose.
// The linker drops inputs the GLSL never reads, so inputs that a driver may
// optimize away should be Optional.
type Input struct {
	Name     string
	Optional bool
}

// Required and Optional build Input values.
func Required(name string) Input { return Input{Name: name} }
func Optional(name string) Input { return Input{Name: name, Optional: true} }

// Descriptor declares a program: its stage sources and the inputs the
// renderer binds.
type Descriptor struct {
	Name       string
	Vertex     string // file name of the vertex stage
	Fragment   string // file name of the fragment stage
	Attributes []Input
	Uniforms   []Input
}

// Locations maps input names to resolved locations; absent optional inputs map to -1.
type Locations map[string]int32

// Get returns the location of name, or -1.
func (l Locations) Get(name string) int32 {
	if loc, ok := l[name]; ok {
		return loc
	}
	return -1
}

// Resolve looks up every declared input through the given functions.
// A required input with a negative location fails with ErrMissingLocation.
func (d Descriptor) Resolve(attrib, uniform func(name string) int32) (Locations, Locations, error) {
	resolve := func(kind string, inputs []Input, lookup func(string) int32) (Locations, error) {
		locs := make(Locations, len(inputs))
		var missing []string
		for _, in := range inputs {
			loc := lookup(in.Name)
			if loc < 0 && !in.Optional {
				missing = append(missing, in.Name)
			}
			locs[in.Name] = loc
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: %s %s %s", ErrMissingLocation, d.Name, kind, strings.Join(missing, ", "))
		}
		return locs, nil
	}

	attribs, err := resolve("attribute", d.Attributes, attrib)
	if err != nil {
		return nil, nil, err
	}
	uniforms, err := resolve("uniform", d.Uniforms, uniform)
	if err != nil {
		return nil, nil, err
	}
	return attribs, uniforms, nil
}

// Program is a linked program with resolved locations.
type Program struct {
	ID         uint32
	Name       string
	Attributes Locations
	Uniforms   Locations
}

// Build reads the descriptor's sources from fsys, compiles, links and
// resolves locations.
func Build(d Descriptor, fsys fs.FS) (*Program, error) {
	vs, err := fs.ReadFile(fsys, d.Vertex)
	if err != nil {
		return nil, fmt.Errorf("%s: reading vertex source: %w", d.Name, err)
	}
	fsrc, err := fs.ReadFile(fsys, d.Fragment)
	if err != nil {
		return nil, fmt.Errorf("%s: reading fragment source: %w", d.Name, err)
	}

	id, err := CompileProgram(string(vs), string(fsrc))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}

	attribs, uniforms, err := d.Resolve(
		func(name string) int32 { return gl.GetAttribLocation(id, gl.Str(name+"\x00")) },
		func(name string) int32 { return gl.GetUniformLocation(id, gl.Str(name+"\x00")) },
	)
	if err != nil {
		gl.DeleteProgram(id)
		return nil, err
	}

	return &Program{ID: id, Name: d.Name, Attributes: attribs, Uniforms: uniforms}, nil
}

// CompileProgram compiles both stages and links them.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vert, err := Compile(gl.VERTEX_SHADER, vertexSrc)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := Compile(gl.FRAGMENT_SHADER, fragmentSrc)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	return Link(vert, frag)
}

// Link links compiled stages into a program.
func Link(stages ...uint32) (uint32, error) {
	program := gl.CreateProgram()
	for _, s := range stages {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetProgramInfoLog(program, logLen, nil, buf) })
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%w: %s", ErrShaderLink, log)
	}
	return program, nil
}

// Compile compiles one stage; stage is gl.VERTEX_SHADER or gl.FRAGMENT_SHADER.
func Compile(stage uint32, source string) (uint32, error) {
	s := gl.CreateShader(stage)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(s, 1, csource, nil)
	free()
	gl.CompileShader(s)

	var status int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetShaderInfoLog(s, logLen, nil, buf) })
		gl.DeleteShader(s)
		return 0, fmt.Errorf("%w: %s stage: %s", ErrShaderCompile, stageName(stage), log)
	}
	return s, nil
}

func infoLog(n int32, read func(*uint8)) string {
	if n <= 0 {
		return "(no log)"
	}
	buf := make([]byte, n)
	read(&buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}

func stageName(stage uint32) string {
	switch stage {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	default:
		return fmt.Sprintf("0x%x", stage)
	}
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// SetMat4 sets a mat4 uniform. Absent uniforms are skipped, as for every setter.
func (p *Program) SetMat4(name string, m math.Mat4) {
	if loc := p.Uniforms.Get(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

func (p *Program) SetVec3(name string, v [3]float32) {
	if loc := p.Uniforms.Get(name); loc >= 0 {
		gl.Uniform3f(loc, v[0], v[1], v[2])
	}
}

func (p *Program) SetVec4(name string, v [4]float32) {
	if loc := p.Uniforms.Get(name); loc >= 0 {
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
}

func (p *Program) SetFloat(name string, v float32) {
	if loc := p.Uniforms.Get(name); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

func (p *Program) SetInt(name string, v int32) {
	if loc := p.Uniforms.Get(name); loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}
