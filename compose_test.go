package retouch

import (
	"bytes"
	"errors"
	"image/color"
	"testing"
)

func TestPresentOriginalAndFilteredReturnInput(t *testing.T) {
	original := gradientBuffer(8, 8)
	filtered := gradientBuffer(8, 8)

	out, err := Present(original, filtered, ModeOriginal, ThemeDark)
	if err != nil {
		t.Fatalf("present original: %v", err)
	}
	if out != original {
		t.Fatalf("mode original did not return the original buffer")
	}

	out, err = Present(original, filtered, ModeFiltered, ThemeDark)
	if err != nil {
		t.Fatalf("present filtered: %v", err)
	}
	if out != filtered {
		t.Fatalf("mode filtered did not return the filtered buffer")
	}
}

func TestPresentSplitOddWidthHalves(t *testing.T) {
	const w, h = 101, 12
	original := solidBuffer(w, h, 10, 10, 10, 255)
	filtered := solidBuffer(w, h, 200, 200, 200, 255)

	out, err := Present(original, filtered, ModeSplit, ThemeDark)
	if err != nil {
		t.Fatalf("present split: %v", err)
	}
	if out.Width != w || out.Height != h {
		t.Fatalf("split frame is %dx%d, want %dx%d", out.Width, out.Height, w, h)
	}

	// Left half [0,50) original, divider at 50, right (50,101) filtered.
	for y := 0; y < h; y++ {
		for x := 0; x < 50; x++ {
			if r, _, _, _ := pixelAt(out, x, y); r != 10 {
				t.Fatalf("left half at (%d,%d): got %d, want 10", x, y, r)
			}
		}
		for x := 51; x < w; x++ {
			if r, _, _, _ := pixelAt(out, x, y); r != 200 {
				t.Fatalf("right half at (%d,%d): got %d, want 200", x, y, r)
			}
		}
	}
}

func TestPresentSplitEvenWidthHalves(t *testing.T) {
	const w, h = 100, 3
	original := solidBuffer(w, h, 10, 10, 10, 255)
	filtered := solidBuffer(w, h, 200, 200, 200, 255)

	out, err := Present(original, filtered, ModeSplit, ThemeDark, func(o *PresentOptions) {
		o.Line = color.NRGBA{}
	})
	if err != nil {
		t.Fatalf("present split: %v", err)
	}
	for x := 0; x < 50; x++ {
		if r, _, _, _ := pixelAt(out, x, 1); r != 10 {
			t.Fatalf("left half at x=%d: got %d, want 10", x, r)
		}
	}
	for x := 50; x < w; x++ {
		if r, _, _, _ := pixelAt(out, x, 1); r != 200 {
			t.Fatalf("right half at x=%d: got %d, want 200", x, r)
		}
	}
}

func TestPresentSplitDividerDashPattern(t *testing.T) {
	const w, h = 8, 14
	original := solidBuffer(w, h, 10, 10, 10, 255)
	filtered := solidBuffer(w, h, 200, 200, 200, 255)

	out, err := Present(original, filtered, ModeSplit, ThemeDark)
	if err != nil {
		t.Fatalf("present split: %v", err)
	}

	// White at 0.6 over filtered 200: 0.6*255 + 0.4*200 = 233.
	// Pattern repeats every 6 rows: 4 drawn, 2 skipped, starting drawn.
	for y := 0; y < h; y++ {
		r, g, b, a := pixelAt(out, 4, y)
		drawn := y%6 < 4
		want := uint8(200)
		if drawn {
			want = 233
		}
		if r != want || g != want || b != want {
			t.Fatalf("divider row %d: got (%d,%d,%d), want %d", y, r, g, b, want)
		}
		if a != 255 {
			t.Fatalf("divider row %d alpha: got %d, want 255", y, a)
		}
	}
}

func TestPresentSplitLightTheme(t *testing.T) {
	original := solidBuffer(6, 4, 10, 10, 10, 255)
	filtered := solidBuffer(6, 4, 200, 200, 200, 255)

	out, err := Present(original, filtered, ModeSplit, ThemeLight)
	if err != nil {
		t.Fatalf("present split: %v", err)
	}
	// Black at 0.6 over filtered 200: 0.4*200 = 80.
	if r, g, b, a := pixelAt(out, 3, 0); r != 80 || g != 80 || b != 80 || a != 255 {
		t.Fatalf("light divider: got (%d,%d,%d,%d), want (80,80,80,255)", r, g, b, a)
	}
}

func TestPresentSplitLineOverrides(t *testing.T) {
	original := solidBuffer(6, 6, 10, 10, 10, 255)
	filtered := solidBuffer(6, 6, 200, 200, 200, 255)

	opaque, err := Present(original, filtered, ModeSplit, ThemeDark, func(o *PresentOptions) {
		o.Line = color.NRGBA{R: 255, A: 255}
	})
	if err != nil {
		t.Fatalf("present opaque line: %v", err)
	}
	if r, g, b, _ := pixelAt(opaque, 3, 0); r != 255 || g != 0 || b != 0 {
		t.Fatalf("opaque red line: got (%d,%d,%d), want (255,0,0)", r, g, b)
	}

	hidden, err := Present(original, filtered, ModeSplit, ThemeDark, func(o *PresentOptions) {
		o.Line = color.NRGBA{}
	})
	if err != nil {
		t.Fatalf("present hidden line: %v", err)
	}
	if r, _, _, _ := pixelAt(hidden, 3, 0); r != 200 {
		t.Fatalf("transparent line should disable divider, got %d", r)
	}
}

func TestPresentSplitDashOverrides(t *testing.T) {
	original := solidBuffer(4, 4, 10, 10, 10, 255)
	filtered := solidBuffer(4, 4, 200, 200, 200, 255)

	alternating, err := Present(original, filtered, ModeSplit, ThemeDark, func(o *PresentOptions) {
		o.DashOn = 1
		o.DashOff = 1
	})
	if err != nil {
		t.Fatalf("present 1-1 dash: %v", err)
	}
	for y := 0; y < 4; y++ {
		r, _, _, _ := pixelAt(alternating, 2, y)
		if y%2 == 0 && r != 233 {
			t.Fatalf("row %d should be drawn, got %d", y, r)
		}
		if y%2 == 1 && r != 200 {
			t.Fatalf("row %d should be skipped, got %d", y, r)
		}
	}

	disabled, err := Present(original, filtered, ModeSplit, ThemeDark, func(o *PresentOptions) {
		o.DashOn = 0
	})
	if err != nil {
		t.Fatalf("present disabled dash: %v", err)
	}
	if r, _, _, _ := pixelAt(disabled, 2, 0); r != 200 {
		t.Fatalf("dash-on 0 should disable divider, got %d", r)
	}

	solid, err := Present(original, filtered, ModeSplit, ThemeDark, func(o *PresentOptions) {
		o.DashOn = 3
		o.DashOff = 0
	})
	if err != nil {
		t.Fatalf("present solid line: %v", err)
	}
	for y := 0; y < 4; y++ {
		if r, _, _, _ := pixelAt(solid, 2, y); r != 233 {
			t.Fatalf("solid line row %d: got %d, want 233", y, r)
		}
	}
}

func TestPresentSplitTranslucentOverTransparent(t *testing.T) {
	original := solidBuffer(2, 2, 10, 10, 10, 0)
	filtered := solidBuffer(2, 2, 200, 200, 200, 0)

	out, err := Present(original, filtered, ModeSplit, ThemeDark)
	if err != nil {
		t.Fatalf("present split: %v", err)
	}
	// Over a fully transparent pixel the line keeps its own color and alpha.
	if r, g, b, a := pixelAt(out, 1, 0); r != 255 || g != 255 || b != 255 || a != 153 {
		t.Fatalf("line over transparent: got (%d,%d,%d,%d), want (255,255,255,153)", r, g, b, a)
	}
}

func TestPresentSplitWidthOne(t *testing.T) {
	original := solidBuffer(1, 3, 10, 10, 10, 255)
	filtered := solidBuffer(1, 3, 200, 200, 200, 255)

	out, err := Present(original, filtered, ModeSplit, ThemeDark)
	if err != nil {
		t.Fatalf("present split: %v", err)
	}
	// The single column belongs to the filtered half with the divider on top.
	if r, _, _, _ := pixelAt(out, 0, 0); r != 233 {
		t.Fatalf("width-1 split: got %d, want 233", r)
	}
}

func TestPresentSplitDoesNotAliasInputs(t *testing.T) {
	original := solidBuffer(4, 4, 10, 10, 10, 255)
	filtered := solidBuffer(4, 4, 200, 200, 200, 255)

	out, err := Present(original, filtered, ModeSplit, ThemeDark)
	if err != nil {
		t.Fatalf("present split: %v", err)
	}
	out.Pix[0] = 99
	if original.Pix[0] != 10 || filtered.Pix[0] != 200 {
		t.Fatalf("split frame shares memory with inputs")
	}
}

func TestPresentSplitDeterministic(t *testing.T) {
	original := gradientBuffer(33, 27)
	filtered := gradientBuffer(33, 27)

	first, err := Present(original, filtered, ModeSplit, ThemeLight)
	if err != nil {
		t.Fatalf("present first: %v", err)
	}
	second, err := Present(original, filtered, ModeSplit, ThemeLight)
	if err != nil {
		t.Fatalf("present second: %v", err)
	}
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Fatalf("same inputs composed different frames")
	}
}

func TestPresentSplitDimensionMismatch(t *testing.T) {
	original := NewBuffer(4, 4)
	filtered := NewBuffer(5, 4)

	if _, err := Present(original, filtered, ModeSplit, ThemeDark); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("got %v, want ErrDimensionMismatch", err)
	}

	// Non-split modes pass a single buffer through and do not compare sizes.
	out, err := Present(original, filtered, ModeOriginal, ThemeDark)
	if err != nil {
		t.Fatalf("present original: %v", err)
	}
	if out != original {
		t.Fatalf("mode original did not return the original buffer")
	}
}

func TestPresentInvalidInput(t *testing.T) {
	valid := NewBuffer(4, 4)

	if _, err := Present(nil, valid, ModeSplit, ThemeDark); !errors.Is(err, ErrInvalidBuffer) {
		t.Fatalf("nil original: got %v, want ErrInvalidBuffer", err)
	}
	if _, err := Present(valid, nil, ModeSplit, ThemeDark); !errors.Is(err, ErrInvalidBuffer) {
		t.Fatalf("nil filtered: got %v, want ErrInvalidBuffer", err)
	}
	if _, err := Present(valid, valid, ViewMode(42), ThemeDark); err == nil {
		t.Fatalf("unknown mode accepted")
	}
}

func BenchmarkPresentSplit(b *testing.B) {
	original := gradientBuffer(1920, 1080)
	filtered := gradientBuffer(1920, 1080)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Present(original, filtered, ModeSplit, ThemeDark); err != nil {
			b.Fatal(err)
		}
	}
}
