package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// topRedBottomBlue is a 1x2 image: red on top, blue below.
func topRedBottomBlue() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	return img
}

func TestFromImage_FlipsRows(t *testing.T) {
	out := FromImage(topRedBottomBlue())

	require.Equal(t, 1, out.Width)
	require.Equal(t, 2, out.Height)
	// First row in memory is the bottom of the picture.
	assert.Equal(t, []byte{0, 0, 255, 255, 255, 0, 0, 255}, out.Pix)
}

func TestFileDecoder_PNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, topRedBottomBlue()))

	d := FileDecoder{Load: func(p string) ([]byte, error) {
		if p != "tex/sky.png" {
			return nil, fs.ErrNotExist
		}
		return buf.Bytes(), nil
	}}

	img, err := d.Decode("tex/sky.png")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 255, 255, 255, 0, 0, 255}, img.Pix)

	_, err = d.Decode("tex/none.png")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFileDecoder_Garbage(t *testing.T) {
	d := FileDecoder{Load: func(string) ([]byte, error) { return []byte("not an image"), nil }}
	_, err := d.Decode("x.png")
	assert.Error(t, err)
}

func TestFileDecoder_Downscale(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 16))))

	d := FileDecoder{
		Load:    func(string) ([]byte, error) { return buf.Bytes(), nil },
		MaxSize: 32,
	}
	img, err := d.Decode("wide.png")
	require.NoError(t, err)
	assert.Equal(t, 32, img.Width)
	assert.Equal(t, 8, img.Height)
	assert.Len(t, img.Pix, 32*8*4)
}

func tgaHeader(imageType byte, w, h int, bpp byte, descriptor byte) []byte {
	hdr := make([]byte, 18)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGA_Uncompressed(t *testing.T) {
	// Bottom-up storage: first pixel row is the bottom row.
	data := tgaHeader(tgaTrueColor, 1, 2, 24, 0)
	data = append(data,
		255, 0, 0, // BGR blue (bottom)
		0, 0, 255, // BGR red (top)
	)

	img, err := DecodeTGA(data)
	require.NoError(t, err)

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b})
	r, g, b, _ = img.At(0, 1).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0xffff}, [3]uint32{r, g, b})
}

func TestDecodeTGA_RLE(t *testing.T) {
	data := tgaHeader(tgaTrueColorRLE, 3, 1, 32, 0x20)
	data = append(data,
		0x81, 0, 255, 0, 128, // run of 2 green at half alpha
		0x00, 0, 0, 255, 255, // one raw red
	)

	img, err := DecodeTGA(data)
	require.NoError(t, err)

	nrgba := img.(*image.NRGBA)
	assert.Equal(t, color.NRGBA{0, 255, 0, 128}, nrgba.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{0, 255, 0, 128}, nrgba.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, nrgba.NRGBAAt(2, 0))
}

func TestDecodeTGA_Errors(t *testing.T) {
	_, err := DecodeTGA([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrTGATruncated)

	_, err = DecodeTGA(tgaHeader(tgaTrueColor, 2, 2, 24, 0))
	assert.ErrorIs(t, err, ErrTGATruncated)

	_, err = DecodeTGA(tgaHeader(1, 1, 1, 8, 0))
	assert.Error(t, err)

	_, err = DecodeTGA(tgaHeader(tgaTrueColor, 1, 1, 16, 0))
	assert.Error(t, err)
}
