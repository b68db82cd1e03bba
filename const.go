package retouch

import "time"

const (
	// defaultJPEGQuality is the lossy export quality on the [0, 1] scale
	// used when EncodeOptions leaves Quality unset.
	defaultJPEGQuality = 0.92

	// defaultDashOn and defaultDashOff are the divider dash run lengths in
	// pixels: four drawn, two skipped.
	defaultDashOn  = 4
	defaultDashOff = 2

	// splitLineAlpha is the divider opacity, 0.6 of full coverage.
	splitLineAlpha = 153

	// defaultDebounce is the quiet period for coalescing slider input.
	defaultDebounce = 150 * time.Millisecond
)
