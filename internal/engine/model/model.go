// Package model turns a parsed OBJ/MTL pair into the ordered draw list the
// scene renders from.
package model

import (
	"fmt"
	"path"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/lakeside/internal/logger"
	"github.com/Faultbox/lakeside/pkg/formats"
)

// Role selects which pipeline stage draws an item.
type Role int

const (
	RoleRegular Role = iota
	RoleSky          // drawn after opaque geometry with culling off
	RoleWater        // samples the reflection target
)

func (r Role) String() string {
	switch r {
	case RoleSky:
		return "sky"
	case RoleWater:
		return "water"
	default:
		return "regular"
	}
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Item is one draw-list entry: a mesh plus how the pipeline treats it.
type Item struct {
	Object      string
	Mesh        *formats.Mesh
	Role        Role
	Transparent bool
	DoubleSided bool
	CastsShadow bool
	TexturePath string // map_Kd resolved against the model directory; empty for none
	Bounds      Bounds
}

// Material returns the item's material, nil meaning defaults.
func (it *Item) Material() *formats.Material {
	return it.Mesh.Material
}

// Options assigns roles and flags by object or material name.
type Options struct {
	SkyObject     string
	WaterObject   string
	WaterMaterial string
	DoubleSided   []string // objects drawn without back-face culling
	NoShadow      []string // objects excluded from the shadow pass
}

// DefaultOptions matches the object names of the bundled scene.
func DefaultOptions() Options {
	return Options{
		SkyObject:     "Sky",
		WaterObject:   "Water",
		WaterMaterial: "Water",
		DoubleSided:   []string{"Trees", "Clouds"},
		NoShadow:      []string{"Clouds"},
	}
}

// Model is a loaded scene: opaque items first, then transparent ones, each
// bucket in file order.
type Model struct {
	Name     string
	Items    []Item
	Warnings []error
}

// LoadFunc fetches a file by slash-separated path.
type LoadFunc func(path string) ([]byte, error)

// Load fetches <dir>/<name>.mtl, then <dir>/<name>.obj, and builds the draw list.
func Load(load LoadFunc, dir, name string, opts Options) (*Model, error) {
	log := logger.Named("model")

	mtlPath := path.Join(dir, name+".mtl")
	mtlData, err := load(mtlPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", mtlPath, err)
	}
	materials, err := formats.ParseMTL(mtlData)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", mtlPath, err)
	}

	objPath := path.Join(dir, name+".obj")
	objData, err := load(objPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", objPath, err)
	}
	obj, err := formats.ParseOBJ(objData, materials)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", objPath, err)
	}

	for _, w := range obj.Warnings {
		log.Warn("geometry warning", zap.String("file", objPath), zap.Error(w))
	}

	m := Build(obj, dir, opts)
	m.Name = name

	log.Info("model loaded",
		zap.String("name", name),
		zap.Int("materials", len(materials)),
		zap.Int("objects", len(obj.Objects)),
		zap.Int("items", len(m.Items)),
		zap.Int("faces", obj.FaceCount()))

	return m, nil
}

// Build classifies every mesh of obj and orders the result with a stable
// two-bucket partition: opaque then transparent.
func Build(obj *formats.OBJ, dir string, opts Options) *Model {
	var opaque, transparent []Item

	for _, o := range obj.Objects {
		for _, mesh := range o.Meshes {
			it := Item{
				Object:      o.Name,
				Mesh:        mesh,
				Role:        classify(o.Name, mesh.MaterialName, opts),
				DoubleSided: slices.Contains(opts.DoubleSided, o.Name),
				Bounds:      meshBounds(mesh),
			}
			it.Transparent = it.Role == RoleWater || mesh.Material.Transparent()
			it.CastsShadow = it.Role == RoleRegular && !it.Transparent && !slices.Contains(opts.NoShadow, o.Name)
			if mat := mesh.Material; mat != nil && mat.DiffuseMap != "" {
				it.TexturePath = path.Join(dir, mat.DiffuseMap)
			}

			if it.Transparent {
				transparent = append(transparent, it)
			} else {
				opaque = append(opaque, it)
			}
		}
	}

	return &Model{
		Items:    append(opaque, transparent...),
		Warnings: obj.Warnings,
	}
}

func classify(object, material string, opts Options) Role {
	switch {
	case opts.SkyObject != "" && object == opts.SkyObject:
		return RoleSky
	case opts.WaterObject != "" && object == opts.WaterObject:
		return RoleWater
	case opts.WaterMaterial != "" && material == opts.WaterMaterial:
		return RoleWater
	default:
		return RoleRegular
	}
}

// Water returns the first water item, or nil.
func (m *Model) Water() *Item {
	for i := range m.Items {
		if m.Items[i].Role == RoleWater {
			return &m.Items[i]
		}
	}
	return nil
}

// WaterHeight returns the mean height of the water surface and whether the
// model has one.
func (m *Model) WaterHeight() (float32, bool) {
	w := m.Water()
	if w == nil {
		return 0, false
	}
	return w.Bounds.Center()[1], true
}

// TexturePaths returns each distinct diffuse map path in draw order.
func (m *Model) TexturePaths() []string {
	var paths []string
	for _, it := range m.Items {
		if it.TexturePath != "" && !slices.Contains(paths, it.TexturePath) {
			paths = append(paths, it.TexturePath)
		}
	}
	return paths
}

func meshBounds(mesh *formats.Mesh) Bounds {
	if len(mesh.Positions) < 3 {
		return Bounds{}
	}
	b := Bounds{
		Min: [3]float32{mesh.Positions[0], mesh.Positions[1], mesh.Positions[2]},
		Max: [3]float32{mesh.Positions[0], mesh.Positions[1], mesh.Positions[2]},
	}
	for i := 3; i+2 < len(mesh.Positions); i += 3 {
		for c := 0; c < 3; c++ {
			v := mesh.Positions[i+c]
			b.Min[c] = min(b.Min[c], v)
			b.Max[c] = max(b.Max[c], v)
		}
	}
	return b
}
