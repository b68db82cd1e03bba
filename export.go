package retouch

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"
)

// Format selects an export encoding.
type Format int

const (
	// FormatAuto derives the format from the file extension in
	// WriteBufferFile and falls back to PNG for plain writers.
	FormatAuto Format = iota
	// FormatPNG is the default lossless encoding.
	FormatPNG
	// FormatJPEG is the lossy encoding with adjustable quality.
	FormatJPEG
	// FormatTIFF is a lossless encoding with Deflate compression.
	FormatTIFF
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatTIFF:
		return "tiff"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ParseFormat maps an encoding name onto its Format value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "tiff", "tif":
		return FormatTIFF, nil
	}
	return 0, fmt.Errorf("unknown format %q", s)
}

// EncodeOptions controls buffer export.
type EncodeOptions struct {
	Format Format
	// Quality is the lossy quality on a [0, 1] scale, used by FormatJPEG.
	// Values <= 0 select the 0.92 default; values above 1 are treated as 1.
	Quality float32
}

// EncodeBuffer writes b to w in the requested format. FormatAuto encodes
// PNG.
func EncodeBuffer(w io.Writer, b *Buffer, opts ...func(o *EncodeOptions)) error {
	opt := EncodeOptions{}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	return encodeBuffer(w, b, opt)
}

// WriteBufferFile writes b to path, deriving the format from the file
// extension (.png, .jpg, .jpeg, .tif, .tiff) unless EncodeOptions sets one
// explicitly.
func WriteBufferFile(path string, b *Buffer, opts ...func(o *EncodeOptions)) error {
	opt := EncodeOptions{}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	if opt.Format == FormatAuto {
		f, err := formatFromPath(path)
		if err != nil {
			return err
		}
		opt.Format = f
	}

	var buf bytes.Buffer
	if err := encodeBuffer(&buf, b, opt); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Clean(path), buf.Bytes(), 0o644); err != nil {
		return err
	}
	Logger().Debug("exported image",
		slog.String("path", path),
		slog.String("format", opt.Format.String()),
		slog.Int("bytes", buf.Len()))
	return nil
}

func encodeBuffer(w io.Writer, b *Buffer, opt EncodeOptions) error {
	if err := validBuffer(b); err != nil {
		return err
	}
	img := b.Image()
	switch opt.Format {
	case FormatAuto, FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality(opt.Quality)})
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return fmt.Errorf("unknown format %d", opt.Format)
}

// jpegQuality maps the [0, 1] export quality onto the encoder's 1-100
// scale.
func jpegQuality(q float32) int {
	if q <= 0 {
		q = defaultJPEGQuality
	}
	if q > 1 {
		q = 1
	}
	n := int(q*100 + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}

func formatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	}
	return 0, fmt.Errorf("cannot derive output format from %q", path)
}
