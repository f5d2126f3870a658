package shader

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(m map[string]int32) func(string) int32 {
	return func(name string) int32 {
		if loc, ok := m[name]; ok {
			return loc
		}
		return -1
	}
}

var sceneDesc = Descriptor{
	Name:       "scene",
	Vertex:     "scene.vert",
	Fragment:   "scene.frag",
	Attributes: []Input{Required("a_position"), Optional("a_normal")},
	Uniforms:   []Input{Required("u_view"), Optional("u_shininess")},
}

func TestResolve(t *testing.T) {
	attribs, uniforms, err := sceneDesc.Resolve(
		lookupFrom(map[string]int32{"a_position": 0, "a_normal": 2}),
		lookupFrom(map[string]int32{"u_view": 4}),
	)
	require.NoError(t, err)

	assert.Equal(t, int32(0), attribs.Get("a_position"))
	assert.Equal(t, int32(2), attribs.Get("a_normal"))
	assert.Equal(t, int32(4), uniforms.Get("u_view"))
	assert.Equal(t, int32(-1), uniforms.Get("u_shininess"))
	assert.Equal(t, int32(-1), uniforms.Get("u_never_declared"))
}

func TestResolve_MissingRequired(t *testing.T) {
	_, _, err := sceneDesc.Resolve(
		lookupFrom(map[string]int32{"a_normal": 2}),
		lookupFrom(map[string]int32{"u_view": 4}),
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingLocation))
	assert.Contains(t, err.Error(), "a_position")

	_, _, err = sceneDesc.Resolve(
		lookupFrom(map[string]int32{"a_position": 0}),
		lookupFrom(nil),
	)
	assert.ErrorIs(t, err, ErrMissingLocation)
	assert.Contains(t, err.Error(), "u_view")
}

func TestBuild_MissingSource(t *testing.T) {
	fsys := fstest.MapFS{"scene.vert": {Data: []byte("void main() {}")}}
	_, err := Build(sceneDesc, fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fragment")
}
