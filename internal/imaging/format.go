package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io"
	"math"
)

// EncodeFunc writes img at quality in [0,1].
type EncodeFunc func(w io.Writer, img image.Image, quality float64) error

// Format is an output encoding.
type Format struct {
	Name      string
	MediaType string
	Extension string
	Encode    EncodeFunc
}

// JPEG is the built-in output format.
var JPEG = Format{
	Name:      "jpeg",
	MediaType: "image/jpeg",
	Extension: "jpg",
	Encode:    encodeJPEG,
}

func encodeJPEG(w io.Writer, img image.Image, quality float64) error {
	return jpeg.Encode(w, flatten(img), &jpeg.Options{Quality: jpegQuality(quality)})
}

func jpegQuality(q float64) int {
	v := int(math.Round(q * 100))
	if v < 1 {
		return 1
	}
	if v > 100 {
		return 100
	}
	return v
}

// flatten composites img over white; JPEG has no alpha channel.
func flatten(img image.Image) image.Image {
	if _, ok := img.(*image.YCbCr); ok {
		return img
	}
	if _, ok := img.(*image.Gray); ok {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

// Blob is an encoded image.
type Blob struct {
	Data    []byte
	Format  Format
	Width   int
	Height  int
	Quality float64
}

// Size returns the encoded length in bytes.
func (b Blob) Size() int { return len(b.Data) }

// Reader returns a fresh reader over the encoded bytes.
func (b Blob) Reader() io.Reader { return bytes.NewReader(b.Data) }

func (p *Pipeline) encode(img image.Image, quality float64) (Blob, error) {
	format := p.Format()
	var buf bytes.Buffer
	if err := format.Encode(&buf, img, quality); err != nil {
		return Blob{}, err
	}
	b := img.Bounds()
	return Blob{
		Data:    buf.Bytes(),
		Format:  format,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Quality: quality,
	}, nil
}
