package imaging

import (
	"image"
	"io"
	"math"

	"golang.org/x/image/draw"
)

// FitWithin returns the size of a w×h image scaled to fit maxW×maxH. Images already
// inside the bounds are returned unchanged.
func FitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	ratio := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := int(math.Round(float64(w) * ratio))
	nh := int(math.Round(float64(h) * ratio))
	return max(nw, 1), max(nh, 1)
}

// CenterSquare returns the largest centred square inside bounds.
func CenterSquare(bounds image.Rectangle) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	side := min(w, h)
	x := bounds.Min.X + (w-side)/2
	y := bounds.Min.Y + (h-side)/2
	return image.Rect(x, y, x+side, y+side)
}

func scale(src image.Image, srcRect image.Rectangle, w, h int) image.Image {
	if srcRect == src.Bounds() && srcRect.Dx() == w && srcRect.Dy() == h && srcRect.Min == (image.Point{}) {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, srcRect, draw.Over, nil)
	return dst
}

// Fit scales a decoded image into the bounds without upscaling.
func Fit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := FitWithin(b.Dx(), b.Dy(), maxW, maxH)
	return scale(img, b, w, h)
}

// Thumbnail crops the centre square of img and scales it to size×size.
func Thumbnail(img image.Image, size int) image.Image {
	return scale(img, CenterSquare(img.Bounds()), size, size)
}

// ResizeAndCompress decodes r, fits it within maxWidth×maxHeight and encodes it at quality.
func (p *Pipeline) ResizeAndCompress(r io.Reader, maxWidth, maxHeight int, quality float64) (Blob, error) {
	img, err := p.Decode(r)
	if err != nil {
		return Blob{}, err
	}
	return p.encode(Fit(img, maxWidth, maxHeight), quality)
}

// CreateThumbnail decodes r and encodes its centre square at size×size.
func (p *Pipeline) CreateThumbnail(r io.Reader, size int, quality float64) (Blob, error) {
	img, err := p.Decode(r)
	if err != nil {
		return Blob{}, err
	}
	return p.encode(Thumbnail(img, size), quality)
}

// ProgressiveResult is the last attempt of CompressProgressive.
type ProgressiveResult struct {
	Blob
	Attempts int
}

// CompressProgressive fits r within the default bounds and lowers quality from 0.9 in
// steps of 0.1 until the output fits targetSizeKB or quality reaches minQuality.
func (p *Pipeline) CompressProgressive(r io.Reader, targetSizeKB int, minQuality float64) (ProgressiveResult, error) {
	img, err := p.Decode(r)
	if err != nil {
		return ProgressiveResult{}, err
	}
	fitted := Fit(img, DefaultMaxWidth, DefaultMaxHeight)
	target := targetSizeKB * 1024

	// quality is tracked in tenths so 0.9 reaches 0.5 in exactly four steps
	tenths := 9
	blob, err := p.encode(fitted, 0.9)
	if err != nil {
		return ProgressiveResult{}, err
	}
	attempts := 1
	for blob.Size() > target && float64(tenths)/10 > minQuality && tenths > 1 {
		tenths--
		blob, err = p.encode(fitted, float64(tenths)/10)
		if err != nil {
			return ProgressiveResult{}, err
		}
		attempts++
	}
	return ProgressiveResult{Blob: blob, Attempts: attempts}, nil
}
