package model

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/lakeside/pkg/formats"
)

const sceneMTL = `
newmtl Grass
Kd 0.2 0.6 0.2
map_Kd grass.png
newmtl Water
Kd 0.1 0.3 0.6
d 0.7
newmtl Leaves
Kd 0.1 0.5 0.1
d 0.9
map_Kd leaves.png
newmtl SkyMat
Kd 1 1 1
map_Kd stars.png
`

const sceneOBJ = `
mtllib scene.mtl
v 0 0 0
v 1 0 0
v 0 0 1
v 0 2 0
v 1 2 0
v 0 2 1
o Water
usemtl Water
f 4 5 6
o Ground
usemtl Grass
f 1 2 3
o Trees
usemtl Leaves
f 1 2 3
o Rock
usemtl Grass
f 1 2 3
o Sky
usemtl SkyMat
f 1 2 3
`

func fsLoader(files map[string]string) LoadFunc {
	return func(p string) ([]byte, error) {
		data, ok := files[p]
		if !ok {
			return nil, fmt.Errorf("%s: %w", p, fs.ErrNotExist)
		}
		return []byte(data), nil
	}
}

func TestLoad_OrdersOpaqueBeforeTransparent(t *testing.T) {
	load := fsLoader(map[string]string{
		"assets/scene.mtl": sceneMTL,
		"assets/scene.obj": sceneOBJ,
	})

	m, err := Load(load, "assets", "scene", DefaultOptions())
	require.NoError(t, err)

	var order []string
	for _, it := range m.Items {
		order = append(order, it.Object)
	}
	// Opaque in file order, then transparent in file order.
	assert.Equal(t, []string{"Ground", "Rock", "Sky", "Water", "Trees"}, order)

	seenTransparent := false
	for _, it := range m.Items {
		if it.Transparent {
			seenTransparent = true
		} else {
			assert.False(t, seenTransparent, "opaque item %s after a transparent one", it.Object)
		}
	}
}

func TestBuild_Roles(t *testing.T) {
	materials, err := formats.ParseMTL([]byte(sceneMTL))
	require.NoError(t, err)
	obj, err := formats.ParseOBJ([]byte(sceneOBJ), materials)
	require.NoError(t, err)

	m := Build(obj, "assets", DefaultOptions())
	byName := map[string]Item{}
	for _, it := range m.Items {
		byName[it.Object] = it
	}

	assert.Equal(t, RoleSky, byName["Sky"].Role)
	assert.False(t, byName["Sky"].CastsShadow)

	assert.Equal(t, RoleWater, byName["Water"].Role)
	assert.True(t, byName["Water"].Transparent)
	assert.False(t, byName["Water"].CastsShadow)

	assert.True(t, byName["Trees"].DoubleSided)
	assert.True(t, byName["Trees"].Transparent)
	assert.Equal(t, "assets/leaves.png", byName["Trees"].TexturePath)

	assert.Equal(t, RoleRegular, byName["Ground"].Role)
	assert.True(t, byName["Ground"].CastsShadow)
	assert.False(t, byName["Ground"].DoubleSided)
	assert.Equal(t, "assets/grass.png", byName["Ground"].TexturePath)

	assert.Equal(t, []string{"assets/grass.png", "assets/stars.png", "assets/leaves.png"}, m.TexturePaths())
}

func TestBuild_WaterByMaterial(t *testing.T) {
	materials := map[string]*formats.Material{"Water": {Name: "Water"}}
	obj, err := formats.ParseOBJ([]byte("o Lake\nv 0 1 0\nv 1 1 0\nv 0 1 1\nusemtl Water\nf 1 2 3\n"), materials)
	require.NoError(t, err)

	m := Build(obj, "", Options{WaterMaterial: "Water"})
	require.Len(t, m.Items, 1)
	assert.Equal(t, RoleWater, m.Items[0].Role)

	h, ok := m.WaterHeight()
	assert.True(t, ok)
	assert.InDelta(t, 1, h, 1e-6)
}

func TestModel_NoWater(t *testing.T) {
	obj, err := formats.ParseOBJ([]byte("o A\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), nil)
	require.NoError(t, err)

	m := Build(obj, "", DefaultOptions())
	assert.Nil(t, m.Water())
	_, ok := m.WaterHeight()
	assert.False(t, ok)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing material library", func(t *testing.T) {
		_, err := Load(fsLoader(nil), "a", "scene", DefaultOptions())
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("malformed geometry", func(t *testing.T) {
		load := fsLoader(map[string]string{
			"scene.mtl": "",
			"scene.obj": "v 0 0 0\nf 1 2 3\n",
		})
		_, err := Load(load, "", "scene", DefaultOptions())
		assert.ErrorIs(t, err, formats.ErrMalformedGeometry)
	})
}

func TestBounds(t *testing.T) {
	mesh := &formats.Mesh{Positions: []float32{-1, 0, 2, 3, 5, -4, 0, 1, 0}}
	b := meshBounds(mesh)
	assert.Equal(t, [3]float32{-1, 0, -4}, b.Min)
	assert.Equal(t, [3]float32{3, 5, 2}, b.Max)
	assert.Equal(t, [3]float32{1, 2.5, -1}, b.Center())
}
