package retouch

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrInvalidBuffer reports a nil or inconsistent pixel buffer passed to
	// an operation that needs a loaded image.
	ErrInvalidBuffer = errors.New("invalid pixel buffer")
	// ErrDimensionMismatch reports two buffers whose dimensions must agree
	// but do not.
	ErrDimensionMismatch = errors.New("buffer dimensions mismatch")
)

// Buffer is a tightly packed grid of 8-bit RGBA pixels. Pix holds
// Width*Height four-byte pixels in row-major order. Alpha is
// non-premultiplied, which lets the filter pipeline carry it through
// untouched.
//
// A buffer with zero pixels is valid; operations on it are no-ops.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBuffer creates a zeroed buffer with the given dimensions.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{Width: b.Width, Height: b.Height, Pix: make([]uint8, len(b.Pix))}
	copy(out.Pix, b.Pix)
	return out
}

// Image copies the buffer into a standard *image.NRGBA.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	copy(img.Pix, b.Pix)
	return img
}

func validBuffer(b *Buffer) error {
	if b == nil {
		return fmt.Errorf("%w: no image loaded", ErrInvalidBuffer)
	}
	if b.Width < 0 || b.Height < 0 || len(b.Pix) != b.Width*b.Height*4 {
		return fmt.Errorf("%w: %dx%d with %d bytes", ErrInvalidBuffer, b.Width, b.Height, len(b.Pix))
	}
	return nil
}

// Params is the record of the eight tonal controls. Every field is a slider
// value in [-100, 100], except Sepia which uses [0, 100]. The zero value is
// the identity: applying it reproduces the input byte for byte.
//
// Values are not range checked; the pipeline is total over all inputs and
// the final clamp keeps results in byte range.
type Params struct {
	Exposure    float32 // additive offset in channel space
	Contrast    float32 // scale around the 128 midpoint
	Highlights  float32 // lift weighted by pixel brightness
	Shadows     float32 // lift weighted by pixel darkness
	Saturation  float32 // blend away from or toward the luma gray
	Temperature float32 // warm/cool push on red and blue
	Tint        float32 // green/magenta push
	Sepia       float32 // blend toward the sepia tone matrix
}

// IsIdentity reports whether p leaves pixels unchanged.
func (p Params) IsIdentity() bool {
	return p == Params{}
}

// ViewMode selects which rendition of a session Present returns.
type ViewMode int

const (
	// ModeFiltered presents the image with the current parameters applied.
	// It is the default after an image loads.
	ModeFiltered ViewMode = iota
	// ModeOriginal presents the unmodified source image.
	ModeOriginal
	// ModeSplit presents original and filtered halves side by side with a
	// dashed divider between them.
	ModeSplit
)

// String implements fmt.Stringer.
func (m ViewMode) String() string {
	switch m {
	case ModeFiltered:
		return "filtered"
	case ModeOriginal:
		return "original"
	case ModeSplit:
		return "split"
	}
	return fmt.Sprintf("viewmode(%d)", int(m))
}

// ParseViewMode maps a view mode name onto its ViewMode value.
func ParseViewMode(s string) (ViewMode, error) {
	switch s {
	case "filtered":
		return ModeFiltered, nil
	case "original":
		return ModeOriginal, nil
	case "split":
		return ModeSplit, nil
	}
	return 0, fmt.Errorf("unknown view mode %q", s)
}

// Theme selects the divider palette of the split view.
type Theme int

const (
	// ThemeDark draws a translucent white divider.
	ThemeDark Theme = iota
	// ThemeLight draws a translucent black divider.
	ThemeLight
)

// String implements fmt.Stringer.
func (t Theme) String() string {
	switch t {
	case ThemeDark:
		return "dark"
	case ThemeLight:
		return "light"
	}
	return fmt.Sprintf("theme(%d)", int(t))
}

// ParseTheme maps a theme name onto its Theme value.
func ParseTheme(s string) (Theme, error) {
	switch s {
	case "dark":
		return ThemeDark, nil
	case "light":
		return ThemeLight, nil
	}
	return 0, fmt.Errorf("unknown theme %q", s)
}
