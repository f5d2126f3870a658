// Package texture owns diffuse textures: placeholder creation, background
// image decoding and in-place upload at frame boundaries.
package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"path"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP
)

// Image is decoded RGBA8 pixel data with rows stored bottom-up, the order
// glTexImage2D expects.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// Decoder turns a texture path into pixels. Implementations are called from
// background goroutines and must be safe for concurrent use.
type Decoder interface {
	Decode(path string) (*Image, error)
}

// FileDecoder reads files through Load and decodes PNG, JPEG, GIF, BMP,
// WebP and TGA. Images larger than MaxSize on either side are downscaled;
// zero disables the limit.
type FileDecoder struct {
	Load    func(path string) ([]byte, error)
	MaxSize int
}

// Decode implements Decoder.
func (d FileDecoder) Decode(p string) (*Image, error) {
	data, err := d.Load(p)
	if err != nil {
		return nil, err
	}

	var img image.Image
	if strings.EqualFold(path.Ext(p), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", p, err)
	}
	return FromImage(fit(img, d.MaxSize)), nil
}

// fit scales img down so neither side exceeds limit, keeping the aspect ratio.
func fit(img image.Image, limit int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if limit <= 0 || (w <= limit && h <= limit) {
		return img
	}

	if w >= h {
		h = max(1, h*limit/w)
		w = limit
	} else {
		w = max(1, w*limit/h)
		h = limit
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// FromImage converts any image to bottom-up RGBA8.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)

	w, h := b.Dx(), b.Dy()
	row := w * 4
	pix := make([]byte, row*h)
	for y := 0; y < h; y++ {
		copy(pix[(h-1-y)*row:(h-y)*row], rgba.Pix[y*rgba.Stride:y*rgba.Stride+row])
	}
	return &Image{Width: w, Height: h, Pix: pix}
}
