package formats

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangleMTL = `
newmtl M
Kd 0.1 0.2 0.3
d 1.0
`

const triangleOBJ = `
mtllib scene.mtl
o A
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
usemtl M
f 1/1/1 2/2/1 3/3/1
`

func TestParseOBJ_SingleTriangle(t *testing.T) {
	materials, err := ParseMTL([]byte(triangleMTL))
	require.NoError(t, err)

	obj, err := ParseOBJ([]byte(triangleOBJ), materials)
	require.NoError(t, err)

	assert.Equal(t, "scene.mtl", obj.Mtllib)
	require.Len(t, obj.Objects, 1)
	a := obj.Object("A")
	require.NotNil(t, a)
	require.Len(t, a.Meshes, 1)

	m := a.Mesh("M")
	require.NotNil(t, m)
	assert.Equal(t, 1, m.Faces)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, m.Positions)
	assert.Equal(t, []float32{0, 0, 1, 0, 0, 1}, m.TexCoords)
	assert.Equal(t, []float32{0, 0, 1, 0, 0, 1, 0, 0, 1}, m.Normals)
	assert.Equal(t, [3]float32{0.1, 0.2, 0.3}, m.Material.DiffuseColor())
	assert.Equal(t, float32(1), m.Material.Alpha())
	assert.Empty(t, obj.Warnings)
}

func TestParseOBJ_FacesSplitAcrossMaterials(t *testing.T) {
	var b strings.Builder
	b.WriteString("o Ground\n")
	for i := 0; i < 4; i++ {
		fmt.Fprintf(&b, "v %d 0 0\nv %d 1 0\nv %d 0 1\n", i, i, i)
	}
	// 3 materials, 2+1+1 faces, the first material revisited.
	b.WriteString("usemtl grass\nf 1 2 3\n")
	b.WriteString("usemtl rock\nf 4 5 6\n")
	b.WriteString("usemtl sand\nf 7 8 9\n")
	b.WriteString("usemtl grass\nf 10 11 12\n")

	obj, err := ParseOBJ([]byte(b.String()), nil)
	require.NoError(t, err)

	g := obj.Object("Ground")
	require.NotNil(t, g)
	require.Len(t, g.Meshes, 3)
	assert.Equal(t, []string{"grass", "rock", "sand"},
		[]string{g.Meshes[0].MaterialName, g.Meshes[1].MaterialName, g.Meshes[2].MaterialName})
	assert.Equal(t, 2, g.Mesh("grass").Faces)
	assert.Equal(t, 4, obj.FaceCount())

	for _, m := range g.Meshes {
		assert.Len(t, m.Positions, 9*m.Faces)
		assert.Len(t, m.TexCoords, 6*m.Faces)
		assert.Len(t, m.Normals, 9*m.Faces)
	}
}

func TestParseOBJ_QuadIsFanTriangulated(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	obj, err := ParseOBJ([]byte(src), nil)
	require.NoError(t, err)

	def := obj.Object(DefaultObjectName)
	require.NotNil(t, def)
	require.Len(t, def.Meshes, 1)
	m := def.Meshes[0]
	assert.Equal(t, 2, m.Faces)
	assert.Equal(t, []float32{
		0, 0, 0, 1, 0, 0, 1, 1, 0,
		0, 0, 0, 1, 1, 0, 0, 1, 0,
	}, m.Positions)
}

func TestParseOBJ_MissingTexCoordAndNormal(t *testing.T) {
	src := `
o A
v 0 0 0
v 1 0 0
v 0 0 -1
f 1 2 3
`
	obj, err := ParseOBJ([]byte(src), nil)
	require.NoError(t, err)

	m := obj.Object("A").Meshes[0]
	assert.Equal(t, []float32{0, 0, 0, 0, 0, 0}, m.TexCoords)
	// Counter-clockwise seen from above: face normal points up.
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0, m.Normals[i*3], 1e-6)
		assert.InDelta(t, 1, m.Normals[i*3+1], 1e-6)
		assert.InDelta(t, 0, m.Normals[i*3+2], 1e-6)
	}
}

func TestParseOBJ_NegativeIndices(t *testing.T) {
	src := `
o A
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	obj, err := ParseOBJ([]byte(src), nil)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, obj.Object("A").Meshes[0].Positions)
}

func TestParseOBJ_IndexOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		face string
	}{
		{"position past end", "f 1 2 4"},
		{"zero index", "f 0 1 2"},
		{"texcoord missing", "f 1/1 2/1 3/1"},
		{"normal missing", "f 1//1 2//1 3//1"},
		{"relative before start", "f -4 1 2"},
		{"not a number", "f 1 two 3"},
		{"too few corners", "f 1 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "o A\nv 0 0 0\nv 1 0 0\nv 0 1 0\n" + tt.face + "\n"
			_, err := ParseOBJ([]byte(src), nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedGeometry), "got %v", err)
			assert.Contains(t, err.Error(), "line 5")
		})
	}
}

func TestParseOBJ_MultipleMtllibWarns(t *testing.T) {
	src := "mtllib first.mtl\nmtllib second.mtl\n"
	obj, err := ParseOBJ([]byte(src), nil)
	require.NoError(t, err)

	assert.Equal(t, "first.mtl", obj.Mtllib)
	require.Len(t, obj.Warnings, 1)
	assert.ErrorIs(t, obj.Warnings[0], ErrMultipleMtllib)
}

func TestParseOBJ_UnknownMaterialUsesDefaults(t *testing.T) {
	src := "o A\nv 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl ghost\nf 1 2 3\n"
	obj, err := ParseOBJ([]byte(src), map[string]*Material{})
	require.NoError(t, err)

	m := obj.Object("A").Mesh("ghost")
	require.NotNil(t, m)
	assert.Nil(t, m.Material)
	assert.Equal(t, [3]float32{1, 1, 1}, m.Material.DiffuseColor())
	assert.False(t, m.Material.Transparent())
	require.Len(t, obj.Warnings, 1)
	assert.ErrorIs(t, obj.Warnings[0], ErrUnknownMaterial)
}

func TestParseOBJ_EmptyMeshesDropped(t *testing.T) {
	src := "o A\nusemtl unused\nusemtl M\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	obj, err := ParseOBJ([]byte(src), map[string]*Material{"unused": {Name: "unused"}, "M": {Name: "M"}})
	require.NoError(t, err)

	a := obj.Object("A")
	require.Len(t, a.Meshes, 1)
	assert.Equal(t, "M", a.Meshes[0].MaterialName)
}

func TestParseOBJ_IgnoresCommentsAndUnknownDirectives(t *testing.T) {
	src := `# exported
o A # trailing comment
s off
g group1
v 0 0 0
v 1 0 0
v 0 1 0

f 1 2 3
`
	obj, err := ParseOBJ([]byte(src), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, obj.FaceCount())
}
