package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureFromPixels_FlipsRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "lakeside")
	sc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC) }

	// Bottom row red, top row blue.
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	name, err := sc.CaptureFromPixels(pixels, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "lakeside_2024-06-01_12-30-00.000.png"), name)

	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), r)
	assert.Equal(t, uint32(0xffff), b, "top row comes from the last GL row")

	r, _, _, _ = img.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}

func TestCaptureFromPixels_SizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "x")
	_, err := sc.CaptureFromPixels(make([]byte, 7), 2, 1)
	assert.Error(t, err)
}
