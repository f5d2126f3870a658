package assets

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_LaterSourcesWin(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{
		"scene.obj":      {Data: []byte("base")},
		"textures/a.png":   {Data: []byte("a")},
	})
	m.AddFS(fstest.MapFS{
		"scene.obj": {Data: []byte("override")},
	})

	data, err := m.Load("scene.obj")
	require.NoError(t, err)
	assert.Equal(t, "override", string(data))

	data, err = m.Load("textures/./a.png")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
}

func TestManager_NotFound(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{})

	_, err := m.Load("missing.mtl")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.Load("../outside.obj")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_CachesAndEvicts(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "scene.mtl")
	require.NoError(t, os.WriteFile(file, []byte("v1"), 0o644))

	m := NewManager()
	require.NoError(t, m.AddDir(dir))

	data, err := m.Load("scene.mtl")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))

	require.NoError(t, os.WriteFile(file, []byte("v2"), 0o644))
	data, _ = m.Load("scene.mtl")
	assert.Equal(t, "v1", string(data), "served from cache")

	m.Evict("scene.mtl")
	data, _ = m.Load("scene.mtl")
	assert.Equal(t, "v2", string(data))

	hits, misses := m.cache.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 2, misses)
}

func TestManager_AddDirRejectsFiles(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	m := NewManager()
	assert.Error(t, m.AddDir(file))
	assert.Error(t, m.AddDir(filepath.Join(file, "nope")))
}

func TestWatcher_ReportsMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := Watch(dir, ".vert", ".frag")
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "scene.frag"), []byte("void main(){}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, w.Drain()...)
		return len(got) > 0
	}, 5*time.Second, 20*time.Millisecond)

	assert.Contains(t, got, "scene.frag")
	assert.NotContains(t, got, "notes.txt")
}

func TestWatcher_DrainEmpty(t *testing.T) {
	w, err := Watch(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, w.Drain())
	assert.NoError(t, w.Close())
}

func TestWatch_MissingDir(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "gone"))
	assert.Error(t, err)
}
