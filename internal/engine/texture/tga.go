package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaGray         = 3
	tgaTrueColorRLE = 10
	tgaGrayRLE      = 11
)

// ErrTGATruncated is returned when pixel data ends early.
var ErrTGATruncated = errors.New("tga: truncated data")

// DecodeTGA decodes uncompressed or RLE true-color (24/32 bit) and
// grayscale (8 bit) TGA images. TGA has no magic number, so it cannot be
// registered with image.RegisterFormat and is selected by file extension.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, ErrTGATruncated
	}

	idLength := int(data[0])
	if data[1] != 0 {
		return nil, fmt.Errorf("tga: color-mapped images not supported")
	}
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	gray := imageType == tgaGray || imageType == tgaGrayRLE
	switch {
	case imageType != tgaTrueColor && imageType != tgaTrueColorRLE && !gray:
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	case gray && bpp != 8:
		return nil, fmt.Errorf("tga: unsupported grayscale depth %d", bpp)
	case !gray && bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("tga: unsupported color depth %d", bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, ErrTGATruncated
	}
	src := data[offset:]
	stride := bpp / 8

	pixel := func(p []byte) color.NRGBA {
		if gray {
			return color.NRGBA{R: p[0], G: p[0], B: p[0], A: 255}
		}
		c := color.NRGBA{R: p[2], G: p[1], B: p[0], A: 255}
		if stride == 4 {
			c.A = p[3]
		}
		return c
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	set := func(i int, c color.NRGBA) {
		x, y := i%width, i/width
		if !topToBottom {
			y = height - 1 - y
		}
		img.SetNRGBA(x, y, c)
	}

	total := width * height
	if imageType == tgaTrueColor || imageType == tgaGray {
		if len(src) < total*stride {
			return nil, ErrTGATruncated
		}
		for i := 0; i < total; i++ {
			set(i, pixel(src[i*stride:]))
		}
		return img, nil
	}

	pos := 0
	for i := 0; i < total; {
		if pos >= len(src) {
			return nil, ErrTGATruncated
		}
		header := src[pos]
		pos++
		count := int(header&0x7f) + 1

		if header&0x80 != 0 {
			if pos+stride > len(src) {
				return nil, ErrTGATruncated
			}
			c := pixel(src[pos:])
			pos += stride
			for ; count > 0 && i < total; count-- {
				set(i, c)
				i++
			}
			continue
		}

		for ; count > 0 && i < total; count-- {
			if pos+stride > len(src) {
				return nil, ErrTGATruncated
			}
			set(i, pixel(src[pos:]))
			pos += stride
			i++
		}
	}
	return img, nil
}
