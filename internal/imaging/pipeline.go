// Package imaging validates, resizes and recompresses uploaded images before they
// reach object storage.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"strings"

	// decoders accepted on upload
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultMaxBytes is the upload ceiling applied when none is configured.
const DefaultMaxBytes int64 = 10 << 20

// DefaultMaxPixels bounds the decoded size of an upload, whatever its compressed size.
const DefaultMaxPixels = 50_000_000

// Defaults used by the media library.
const (
	DefaultMaxWidth         = 1200
	DefaultMaxHeight        = 1200
	DefaultQuality          = 0.85
	DefaultThumbnailSize    = 300
	DefaultThumbnailQuality = 0.8
	DefaultTargetSizeKB     = 500
	DefaultMinQuality       = 0.5
)

var (
	ErrNotAnImage = errors.New("le fichier doit être une image")
	ErrTooLarge   = errors.New("l'image est trop volumineuse")
	// ErrTooManyPixels is wrapped in a *DecodeError.
	ErrTooManyPixels = errors.New("image dimensions exceed the pixel limit")
)

// DecodeError reports input that could not be decoded as an image.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// File describes an upload before its bytes are read.
type File struct {
	Filename    string
	ContentType string
	Size        int64
}

// FileFromHeader extracts the fields Validate needs from a multipart header.
func FileFromHeader(h *multipart.FileHeader) File {
	return File{
		Filename:    h.Filename,
		ContentType: h.Header.Get("Content-Type"),
		Size:        h.Size,
	}
}

// Pipeline holds the upload ceiling and the ordered encoder preference.
type Pipeline struct {
	maxBytes  int64
	maxPixels int
	formats   []Format
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMaxBytes overrides the upload ceiling. Non-positive values keep the default.
func WithMaxBytes(n int64) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxBytes = n
		}
	}
}

// WithMaxPixels overrides the decoded pixel ceiling. Non-positive values keep the default.
func WithMaxPixels(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxPixels = n
		}
	}
}

// WithEncoder registers an output format ahead of the built-in ones.
func WithEncoder(f Format) Option {
	return func(p *Pipeline) {
		p.formats = append([]Format{f}, p.formats...)
	}
}

// New returns a pipeline encoding JPEG unless a preferred encoder is registered.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{maxBytes: DefaultMaxBytes, maxPixels: DefaultMaxPixels, formats: []Format{JPEG}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MaxBytes returns the configured upload ceiling.
func (p *Pipeline) MaxBytes() int64 { return p.maxBytes }

// Format returns the output format in use.
func (p *Pipeline) Format() Format { return p.formats[0] }

// Validate checks the declared media type and size. It never reads the content.
func (p *Pipeline) Validate(f File) error {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(f.ContentType)), "image/") {
		return ErrNotAnImage
	}
	if f.Size > p.maxBytes {
		return fmt.Errorf("%w (max %d Mo)", ErrTooLarge, p.maxBytes>>20)
	}
	return nil
}

// Decode reads and decodes r. The header is checked against the pixel ceiling before
// any pixel is allocated. Any failure is reported as a *DecodeError.
func (p *Pipeline) Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, &DecodeError{Err: errors.New("empty image")}
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(p.maxPixels) {
		return nil, &DecodeError{Err: fmt.Errorf("%w (%dx%d)", ErrTooManyPixels, cfg.Width, cfg.Height)}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, &DecodeError{Err: errors.New("empty image")}
	}
	return img, nil
}
