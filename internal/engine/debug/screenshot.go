// Package debug provides capture utilities for inspecting rendered frames.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// ScreenshotCapture writes frames to PNG files named <prefix>_<timestamp>.png.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// CaptureFromPixels saves bottom-up RGBA rows, as glReadPixels returns
// them, flipping to top-down on the way.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return sc.CaptureFromImage(img)
}

// CaptureFromImage saves img as PNG and returns the file name.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sc.GenerateFilename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}

// GenerateFilename generates a screenshot filename without saving.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05.000")
	filename := fmt.Sprintf("%s_%s.png", sc.prefix, timestamp)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}
