package formats

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	// ErrMalformedGeometry is fatal: a face referenced a vertex that does not exist
	// or could not be read.
	ErrMalformedGeometry = errors.New("malformed geometry")

	// ErrMultipleMtllib is reported as a warning; the first mtllib wins.
	ErrMultipleMtllib = errors.New("multiple mtllib directives")

	// ErrUnknownMaterial is reported as a warning when usemtl names a material
	// missing from the library. The mesh is drawn with default material values.
	ErrUnknownMaterial = errors.New("unknown material")
)

// DefaultObjectName names the object that collects geometry appearing before any o directive.
const DefaultObjectName = "default"

// Mesh is the geometry of one object drawn with one material.
// Vertex streams are expanded per face corner, never indexed, so
// len(Positions) == 9*Faces for triangle input.
type Mesh struct {
	MaterialName string
	Material     *Material // nil when the library has no such material
	Faces        int       // triangle count
	Positions    []float32 // xyz per vertex
	TexCoords    []float32 // uv per vertex
	Normals      []float32 // xyz per vertex
}

// VertexCount returns the number of expanded vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// Object is a named group of meshes, one per material used inside the object.
type Object struct {
	Name   string
	Meshes []*Mesh
}

// Mesh returns the mesh drawn with the named material, or nil.
func (o *Object) Mesh(material string) *Mesh {
	for _, m := range o.Meshes {
		if m.MaterialName == material {
			return m
		}
	}
	return nil
}

// OBJ is a parsed geometry file. Objects keep file order.
type OBJ struct {
	Mtllib   string  // first mtllib directive, informational only
	Objects  []*Object
	Warnings []error // non-fatal problems, each wrapping a sentinel above
}

// Object returns the object with the given name, or nil.
func (o *OBJ) Object(name string) *Object {
	for _, obj := range o.Objects {
		if obj.Name == name {
			return obj
		}
	}
	return nil
}

// FaceCount returns the total triangle count across all meshes.
func (o *OBJ) FaceCount() int {
	n := 0
	for _, obj := range o.Objects {
		for _, m := range obj.Meshes {
			n += m.Faces
		}
	}
	return n
}

// ParseOBJ parses geometry text, resolving usemtl names against materials.
// Faces with more than three corners are fan-triangulated.
func ParseOBJ(data []byte, materials map[string]*Material) (*OBJ, error) {
	p := &objParser{
		materials: materials,
		result:    &OBJ{},
	}

	scanner := newScanner(data)
	for scanner.Scan() {
		p.lineNo++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}

	// Drop meshes that never received a face.
	for _, obj := range p.result.Objects {
		meshes := obj.Meshes[:0]
		for _, m := range obj.Meshes {
			if m.Faces > 0 {
				meshes = append(meshes, m)
			}
		}
		obj.Meshes = meshes
	}

	return p.result, nil
}

type faceRef struct {
	v, vt, vn int // 0-based; -1 when absent
}

type objParser struct {
	materials map[string]*Material
	result    *OBJ

	positions [][3]float32
	texCoords [][2]float32
	normals   [][3]float32

	obj    *Object
	mesh   *Mesh
	lineNo int
}

func (p *objParser) parseLine(line string) error {
	keyword, args := splitDirective(line)

	switch keyword {
	case "v":
		v, err := p.parseVector(args, 3)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, [3]float32{v[0], v[1], v[2]})
	case "vt":
		v, err := p.parseVector(args, 2)
		if err != nil {
			return err
		}
		p.texCoords = append(p.texCoords, [2]float32{v[0], v[1]})
	case "vn":
		v, err := p.parseVector(args, 3)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, [3]float32{v[0], v[1], v[2]})
	case "o":
		p.beginObject(strings.Join(args, " "))
	case "usemtl":
		p.useMaterial(strings.Join(args, " "))
	case "mtllib":
		name := strings.Join(args, " ")
		if p.result.Mtllib == "" {
			p.result.Mtllib = name
		} else {
			p.warn(fmt.Errorf("%w: line %d: %q ignored, using %q", ErrMultipleMtllib, p.lineNo, name, p.result.Mtllib))
		}
	case "f":
		return p.parseFace(args)
	}
	return nil
}

func (p *objParser) beginObject(name string) {
	if name == "" {
		name = DefaultObjectName
	}
	p.mesh = nil
	if existing := p.result.Object(name); existing != nil {
		p.obj = existing
		return
	}
	p.obj = &Object{Name: name}
	p.result.Objects = append(p.result.Objects, p.obj)
}

func (p *objParser) useMaterial(name string) {
	if p.obj == nil {
		p.beginObject(DefaultObjectName)
	}
	if m := p.obj.Mesh(name); m != nil {
		p.mesh = m
		return
	}

	mat, ok := p.materials[name]
	if !ok && name != "" {
		p.warn(fmt.Errorf("%w: line %d: %q", ErrUnknownMaterial, p.lineNo, name))
	}
	p.mesh = &Mesh{MaterialName: name, Material: mat}
	p.obj.Meshes = append(p.obj.Meshes, p.mesh)
}

func (p *objParser) parseFace(args []string) error {
	if len(args) < 3 {
		return p.malformed("face has %d corners, need at least 3", len(args))
	}
	if p.mesh == nil {
		p.useMaterial("")
	}

	refs := make([]faceRef, len(args))
	for i, tok := range args {
		ref, err := p.resolveRef(tok)
		if err != nil {
			return err
		}
		refs[i] = ref
	}

	// Fan: 0-1-2, 0-2-3, ...
	for i := 1; i+1 < len(refs); i++ {
		p.appendTriangle(refs[0], refs[i], refs[i+1])
	}
	return nil
}

func (p *objParser) appendTriangle(a, b, c faceRef) {
	corners := [3]faceRef{a, b, c}

	var faceNormal [3]float32
	needsNormal := a.vn < 0 || b.vn < 0 || c.vn < 0
	if needsNormal {
		faceNormal = triangleNormal(p.positions[a.v], p.positions[b.v], p.positions[c.v])
	}

	m := p.mesh
	for _, ref := range corners {
		pos := p.positions[ref.v]
		m.Positions = append(m.Positions, pos[0], pos[1], pos[2])

		if ref.vt >= 0 {
			tc := p.texCoords[ref.vt]
			m.TexCoords = append(m.TexCoords, tc[0], tc[1])
		} else {
			m.TexCoords = append(m.TexCoords, 0, 0)
		}

		n := faceNormal
		if ref.vn >= 0 {
			n = p.normals[ref.vn]
		}
		m.Normals = append(m.Normals, n[0], n[1], n[2])
	}
	m.Faces++
}

// resolveRef parses "v", "v/vt", "v//vn" or "v/vt/vn" into 0-based indices,
// checking each against the tables read so far.
func (p *objParser) resolveRef(tok string) (faceRef, error) {
	parts := strings.Split(tok, "/")
	if len(parts) > 3 {
		return faceRef{}, p.malformed("bad face reference %q", tok)
	}

	ref := faceRef{v: -1, vt: -1, vn: -1}
	var err error
	if ref.v, err = p.resolveIndex(parts[0], len(p.positions), "position", tok); err != nil {
		return faceRef{}, err
	}
	if ref.v < 0 {
		return faceRef{}, p.malformed("face reference %q has no position", tok)
	}
	if len(parts) > 1 {
		if ref.vt, err = p.resolveIndex(parts[1], len(p.texCoords), "texture coordinate", tok); err != nil {
			return faceRef{}, err
		}
	}
	if len(parts) > 2 {
		if ref.vn, err = p.resolveIndex(parts[2], len(p.normals), "normal", tok); err != nil {
			return faceRef{}, err
		}
	}
	return ref, nil
}

// resolveIndex converts a 1-based (or negative, relative) index into a
// 0-based one. An empty string means the component is absent (-1).
func (p *objParser) resolveIndex(s string, count int, what, tok string) (int, error) {
	if s == "" {
		return -1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, p.malformed("bad %s index in %q", what, tok)
	}

	idx := n - 1
	if n < 0 {
		idx = count + n
	}
	if n == 0 || idx < 0 || idx >= count {
		return 0, p.malformed("%s index %d out of range (have %d) in %q", what, n, count, tok)
	}
	return idx, nil
}

func (p *objParser) parseVector(args []string, n int) ([]float32, error) {
	if len(args) < n {
		return nil, p.malformed("expected %d components, got %d", n, len(args))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, p.malformed("bad number %q", args[i])
		}
		out[i] = float32(v)
	}
	return out, nil
}

func (p *objParser) malformed(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformedGeometry, p.lineNo, fmt.Sprintf(format, args...))
}

func (p *objParser) warn(err error) {
	p.result.Warnings = append(p.result.Warnings, err)
}

func triangleNormal(a, b, c [3]float32) [3]float32 {
	e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
	n := [3]float32{
		e1[1]*e2[2] - e1[2]*e2[1],
		e1[2]*e2[0] - e1[0]*e2[2],
		e1[0]*e2[1] - e1[1]*e2[0],
	}
	l := float32(math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
	if l == 0 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{n[0] / l, n[1] / l, n[2] / l}
}
