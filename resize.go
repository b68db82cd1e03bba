package retouch

import (
	"errors"

	"github.com/nfnt/resize"
)

// FitBuffer scales b down to fit within maxWidth x maxHeight while keeping
// the aspect ratio, sizing a decoded image to a preview surface before
// interactive filtering. The buffer itself is returned when it already
// fits; downscaling uses Lanczos resampling.
func FitBuffer(b *Buffer, maxWidth, maxHeight int) (*Buffer, error) {
	if err := validBuffer(b); err != nil {
		return nil, err
	}
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, errors.New("invalid fit bounds")
	}
	if b.Width <= maxWidth && b.Height <= maxHeight {
		return b, nil
	}
	img := resize.Thumbnail(uint(maxWidth), uint(maxHeight), b.Image(), resize.Lanczos3)
	return FromImage(img), nil
}

// ResizeBuffer resamples b to the requested dimensions using Lanczos
// resampling. Passing 0 for one dimension preserves the aspect ratio.
func ResizeBuffer(b *Buffer, width, height uint) (*Buffer, error) {
	if err := validBuffer(b); err != nil {
		return nil, err
	}
	if width == 0 && height == 0 {
		return nil, errors.New("invalid target dimensions")
	}
	img := resize.Resize(width, height, b.Image(), resize.Lanczos3)
	return FromImage(img), nil
}
