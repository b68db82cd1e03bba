package retouch

import (
	"image"
	"io"
	"os"
	"path/filepath"
)

// Info describes an image resource without decoding its pixels.
type Info struct {
	Format string
	Width  int
	Height int
}

// Inspect reads just enough of the stream to identify the image format and
// dimensions.
func Inspect(r io.Reader) (Info, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return Info{}, err
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// InspectFile reads the image header of the file at path.
func InspectFile(path string) (Info, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Info{}, err
	}
	defer f.Close()
	return Inspect(f)
}
