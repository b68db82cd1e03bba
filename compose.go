package retouch

import (
	"fmt"
	"image/color"
)

// PresentOptions controls split view composition.
type PresentOptions struct {
	// DashOn and DashOff are the run lengths, in pixels, of the drawn and
	// skipped segments of the divider. Defaults are 4 drawn, 2 skipped.
	// DashOn <= 0 disables the divider.
	DashOn  int
	DashOff int
	// Line overrides the divider color. Leave unset for the theme default:
	// translucent white on dark, translucent black on light. A fully
	// transparent color disables the divider.
	Line color.NRGBA
}

// Present composes the frame for the requested view mode.
//
// ModeOriginal and ModeFiltered return the corresponding buffer itself,
// unchanged. ModeSplit allocates a new frame whose left half columns
// [0, W/2) come from original and right half [W/2, W) from filtered, with a
// one-pixel dashed divider drawn down column W/2. Odd widths give the
// filtered half the extra column. The same inputs always compose the same
// frame.
func Present(original, filtered *Buffer, mode ViewMode, theme Theme, opts ...func(o *PresentOptions)) (*Buffer, error) {
	if err := validBuffer(original); err != nil {
		return nil, err
	}
	if err := validBuffer(filtered); err != nil {
		return nil, err
	}

	switch mode {
	case ModeOriginal:
		return original, nil
	case ModeFiltered:
		return filtered, nil
	case ModeSplit:
	default:
		return nil, fmt.Errorf("unknown view mode %d", mode)
	}

	if original.Width != filtered.Width || original.Height != filtered.Height {
		return nil, fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch, original.Width, original.Height, filtered.Width, filtered.Height)
	}

	opt := PresentOptions{
		DashOn:  defaultDashOn,
		DashOff: defaultDashOff,
		Line:    splitLineColor(theme),
	}

	for _, applyOpt := range opts {
		applyOpt(&opt)
	}

	w, h := original.Width, original.Height
	out := NewBuffer(w, h)
	mid := w / 2
	for y := 0; y < h; y++ {
		row := y * w * 4
		copy(out.Pix[row:row+mid*4], original.Pix[row:row+mid*4])
		copy(out.Pix[row+mid*4:row+w*4], filtered.Pix[row+mid*4:row+w*4])
	}
	if mid < w && opt.Line.A > 0 {
		drawDashedColumn(out, mid, opt.Line, opt.DashOn, opt.DashOff)
	}
	return out, nil
}

func splitLineColor(theme Theme) color.NRGBA {
	if theme == ThemeLight {
		return color.NRGBA{A: splitLineAlpha}
	}
	return color.NRGBA{R: 255, G: 255, B: 255, A: splitLineAlpha}
}

// drawDashedColumn composites a translucent dashed line over column x. The
// dash phase starts with a drawn run at the top row. Blending is
// source-over in non-premultiplied space, so a translucent line over a
// transparent frame region keeps the line's own alpha instead of going
// opaque.
func drawDashedColumn(b *Buffer, x int, line color.NRGBA, on, off int) {
	if on <= 0 {
		return
	}
	if off < 0 {
		off = 0
	}
	period := on + off
	la := float32(line.A) / 255
	lr := float32(line.R)
	lg := float32(line.G)
	lb := float32(line.B)
	for y := 0; y < b.Height; y++ {
		if y%period >= on {
			continue
		}
		i := (y*b.Width + x) * 4
		da := float32(b.Pix[i+3]) / 255
		outA := la + da*(1-la)
		lw := la / outA
		dw := da * (1 - la) / outA
		b.Pix[i] = clampToByte(lr*lw + float32(b.Pix[i])*dw)
		b.Pix[i+1] = clampToByte(lg*lw + float32(b.Pix[i+1])*dw)
		b.Pix[i+2] = clampToByte(lb*lw + float32(b.Pix[i+2])*dw)
		b.Pix[i+3] = clampToByte(outA * 255)
	}
}
