package retouch

import (
	"fmt"
	"runtime"
	"sync"
)

// Apply runs the tonal controls over src and returns a new buffer with the
// same dimensions. src is never modified, so repeated calls with changed
// parameters always start from identical input and rounding error does not
// accumulate across adjustments.
//
// Channels travel through every stage as float32 and are clamped to byte
// range exactly once at the end; alpha is copied from src untouched.
func Apply(src *Buffer, p Params) (*Buffer, error) {
	if err := validBuffer(src); err != nil {
		return nil, err
	}
	dst := NewBuffer(src.Width, src.Height)
	if err := ApplyInto(dst, src, p); err != nil {
		return nil, err
	}
	return dst, nil
}

// ApplyInto runs the tonal controls over src into a caller-supplied dst of
// the same dimensions. dst may be src for in-place filtering; every pixel is
// read before it is written.
func ApplyInto(dst, src *Buffer, p Params) error {
	if err := validBuffer(src); err != nil {
		return err
	}
	if err := validBuffer(dst); err != nil {
		return err
	}
	if dst.Width != src.Width || dst.Height != src.Height {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch, dst.Width, dst.Height, src.Width, src.Height)
	}

	exposure := p.Exposure
	contrast := (p.Contrast + 100) / 100
	contrast *= contrast
	highlights := p.Highlights / 100
	shadows := p.Shadows / 100
	saturation := 1 + p.Saturation/100
	sepia := p.Sepia / 100
	var tempR, tempB float32
	if p.Temperature > 0 {
		tempR = 0.6 * p.Temperature
		tempB = -0.4 * p.Temperature
	} else {
		tempR = 0.4 * p.Temperature
		tempB = -0.6 * p.Temperature
	}
	tintG := -0.5 * p.Tint

	w := src.Width
	parallelRows(src.Height, func(startRow, endRow int) {
		for y := startRow; y < endRow; y++ {
			i := y * w * 4
			for x := 0; x < w; x++ {
				r := float32(src.Pix[i]) + exposure
				g := float32(src.Pix[i+1]) + exposure
				b := float32(src.Pix[i+2]) + exposure

				r = contrast*(r-128) + 128
				g = contrast*(g-128) + 128
				b = contrast*(b-128) + 128

				r += tempR
				b += tempB
				g += tintG

				gray := 0.299*r + 0.587*g + 0.114*b
				r = gray + (r-gray)*saturation
				g = gray + (g-gray)*saturation
				b = gray + (b-gray)*saturation

				if highlights != 0 || shadows != 0 {
					brightness := clamp01((r + g + b) / 765)
					if highlights != 0 {
						lift := highlights * brightness * 255
						r += lift
						g += lift
						b += lift
					}
					if shadows != 0 {
						lift := shadows * (1 - brightness) * 255
						r += lift
						g += lift
						b += lift
					}
				}

				if sepia > 0 {
					sr := 0.393*r + 0.769*g + 0.189*b
					sg := 0.349*r + 0.686*g + 0.168*b
					sb := 0.272*r + 0.534*g + 0.131*b
					r = (1-sepia)*r + sepia*sr
					g = (1-sepia)*g + sepia*sg
					b = (1-sepia)*b + sepia*sb
				}

				dst.Pix[i] = clampToByte(r)
				dst.Pix[i+1] = clampToByte(g)
				dst.Pix[i+2] = clampToByte(b)
				dst.Pix[i+3] = src.Pix[i+3]
				i += 4
			}
		}
	})
	return nil
}

var (
	maxFilterWorkers = 0
	rowWorkerOnce    sync.Once
	rowWorkerSem     chan struct{}
)

// parallelRows splits [0, total) into contiguous row ranges and runs fn on
// them from up to GOMAXPROCS workers. The shared semaphore bounds total
// concurrency when several buffers are filtered at once. Each range is
// disjoint, so the filtered output does not depend on worker scheduling.
func parallelRows(total int, fn func(startRow, endRow int)) {
	if total <= 0 {
		return
	}
	capacity := runtime.GOMAXPROCS(0)
	if maxFilterWorkers > 0 && capacity > maxFilterWorkers {
		capacity = maxFilterWorkers
	}
	if capacity < 1 {
		capacity = 1
	}
	rowWorkerOnce.Do(func() {
		rowWorkerSem = make(chan struct{}, capacity)
	})
	if cap(rowWorkerSem) < capacity {
		capacity = cap(rowWorkerSem)
		if capacity < 1 {
			capacity = 1
		}
	}
	workers := capacity
	if workers > total {
		workers = total
	}
	if workers <= 1 {
		fn(0, total)
		return
	}
	step := (total + workers - 1) / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * step
		end := start + step
		if end > total {
			end = total
		}
		if start >= end {
			break
		}
		rowWorkerSem <- struct{}{}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			defer func() { <-rowWorkerSem }()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
