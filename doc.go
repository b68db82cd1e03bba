// Package retouch implements the adjustment core of a raster photo editor:
// a tonal filter pipeline and a view compositor over packed 8-bit RGBA
// buffers.
//
// The pipeline applies eight slider-style controls (exposure, contrast,
// highlights, shadows, saturation, temperature, tint, sepia) in a fixed
// order, carrying channels as float32 through every stage and clamping to
// byte range exactly once at the end. Filtering always starts from the
// original buffer, never from a previous result, so adjustments do not
// compound rounding error. The compositor renders the original image, the
// filtered image, or a split frame with both halves separated by a dashed
// divider.
//
// Decoding, export, downscaling and header inspection helpers cover the
// surrounding file plumbing, and Session ties one loaded image together with
// its parameters and view mode for interactive use.
package retouch
