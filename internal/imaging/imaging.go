// Package imaging normalises uploaded item photos to bounded JPEGs.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

const (
	// MaxSide bounds the width and height of a stored photo.
	MaxSide = 800
	// MaxUploadBytes bounds the size of an accepted upload.
	MaxUploadBytes = 8 << 20
	// JPEGQuality is the output compression quality.
	JPEGQuality = 85
	// OutputMIME is the content type of every normalised photo.
	OutputMIME = "image/jpeg"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrTooLarge          = errors.New("image too large")
)

var decoders = map[string]func(io.Reader) (image.Image, error){
	"image/jpeg": jpeg.Decode,
	"image/png":  png.Decode,
}

// Photo is a normalised item photo.
type Photo struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// Normalize reads an upload, checks its format from the bytes themselves,
// fits it inside maxSide x maxSide and re-encodes it as JPEG on a white
// background. A maxSide of zero means MaxSide.
func Normalize(r io.Reader, maxSide int) (Photo, error) {
	if maxSide <= 0 {
		maxSide = MaxSide
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return Photo{}, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return Photo{}, ErrTooLarge
	}

	mime := http.DetectContentType(data)
	decode, ok := decoders[mime]
	if !ok {
		return Photo{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mime)
	}
	src, err := decode(bytes.NewReader(data))
	if err != nil {
		return Photo{}, fmt.Errorf("decoding %s: %w", mime, err)
	}

	w, h := fit(src.Bounds().Dx(), src.Bounds().Dy(), maxSide)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if w == src.Bounds().Dx() && h == src.Bounds().Dy() {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return Photo{}, fmt.Errorf("encoding jpeg: %w", err)
	}
	return Photo{Data: buf.Bytes(), MIME: OutputMIME, Width: w, Height: h}, nil
}

// fit scales w x h down to fit inside maxSide, keeping the aspect ratio.
func fit(w, h, maxSide int) (int, int) {
	if w <= maxSide && h <= maxSide {
		return w, h
	}
	if w >= h {
		return maxSide, max(1, h*maxSide/w)
	}
	return max(1, w*maxSide/h), maxSide
}
