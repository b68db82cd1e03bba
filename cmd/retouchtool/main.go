package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/vearutop/retouch"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "adjust":
		if err := runAdjust(os.Args[2:]); err != nil {
			fail(err)
		}
	case "compare":
		if err := runCompare(os.Args[2:]); err != nil {
			fail(err)
		}
	case "info":
		if err := runInfo(os.Args[2:]); err != nil {
			fail(err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: retouchtool <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  adjust  -in input.jpg -out output.png [tonal flags] [-format png|jpeg|tiff] [-q 0.92] [-max-w 1920] [-max-h 1080]")
	fmt.Fprintln(os.Stderr, "  compare -in input.jpg -out split.png [tonal flags] [-mode split|original|filtered] [-theme dark|light]")
	fmt.Fprintln(os.Stderr, "          [-line-color '#ff8800'] [-line-alpha 0.6] [-dash-on 4] [-dash-off 2] [-format png|jpeg|tiff] [-q 0.92]")
	fmt.Fprintln(os.Stderr, "  info    -in input.jpg")
	fmt.Fprintln(os.Stderr, "Tonal flags (all default 0, identity):")
	fmt.Fprintln(os.Stderr, "  -exposure -contrast -highlights -shadows -saturation -temperature -tint [-100..100], -sepia [0..100]")
}

// tonalFlags registers the eight adjustment flags on fs and returns a
// closure collecting them into Params after parsing.
func tonalFlags(fs *flag.FlagSet) func() retouch.Params {
	exposure := fs.Float64("exposure", 0, "brightness offset [-100..100]")
	contrast := fs.Float64("contrast", 0, "contrast around midtones [-100..100]")
	highlights := fs.Float64("highlights", 0, "lift or recover bright regions [-100..100]")
	shadows := fs.Float64("shadows", 0, "lift or crush dark regions [-100..100]")
	saturation := fs.Float64("saturation", 0, "color intensity [-100..100]")
	temperature := fs.Float64("temperature", 0, "warm/cool balance [-100..100]")
	tint := fs.Float64("tint", 0, "green/magenta balance [-100..100]")
	sepia := fs.Float64("sepia", 0, "sepia tone blend [0..100]")
	return func() retouch.Params {
		return retouch.Params{
			Exposure:    float32(*exposure),
			Contrast:    float32(*contrast),
			Highlights:  float32(*highlights),
			Shadows:     float32(*shadows),
			Saturation:  float32(*saturation),
			Temperature: float32(*temperature),
			Tint:        float32(*tint),
			Sepia:       float32(*sepia),
		}
	}
}

func exportFlags(fs *flag.FlagSet) (format *string, quality *float64) {
	format = fs.String("format", "", "output format: png, jpeg or tiff (default from extension)")
	quality = fs.Float64("q", 0, "jpeg quality in (0..1] (default 0.92)")
	return format, quality
}

func exportOptions(format string, quality float64) ([]func(o *retouch.EncodeOptions), error) {
	var opts []func(o *retouch.EncodeOptions)
	if format != "" {
		f, err := retouch.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		opts = append(opts, func(o *retouch.EncodeOptions) { o.Format = f })
	}
	if quality > 0 {
		opts = append(opts, func(o *retouch.EncodeOptions) { o.Quality = float32(quality) })
	}
	return opts, nil
}

func enableDebugLog() {
	retouch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}

func runAdjust(args []string) error {
	fs := flag.NewFlagSet("adjust", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image")
	outPath := fs.String("out", "", "output image")
	maxW := fs.Int("max-w", 0, "fit result width")
	maxH := fs.Int("max-h", 0, "fit result height")
	format, quality := exportFlags(fs)
	verbose := fs.Bool("v", false, "debug logging to stderr")
	params := tonalFlags(fs)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" {
		return errors.New("missing required arguments")
	}
	if *verbose {
		enableDebugLog()
	}
	encOpts, err := exportOptions(*format, *quality)
	if err != nil {
		return err
	}

	buf, _, err := retouch.DecodeBufferFile(*inPath)
	if err != nil {
		return err
	}
	if *maxW > 0 || *maxH > 0 {
		w, h := *maxW, *maxH
		if w <= 0 {
			w = buf.Width
		}
		if h <= 0 {
			h = buf.Height
		}
		if buf, err = retouch.FitBuffer(buf, w, h); err != nil {
			return err
		}
	}
	out, err := retouch.Apply(buf, params())
	if err != nil {
		return err
	}
	return retouch.WriteBufferFile(*outPath, out, encOpts...)
}

func runCompare(args []string) error {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image")
	outPath := fs.String("out", "", "output image")
	mode := fs.String("mode", "split", "view mode: split, original or filtered")
	theme := fs.String("theme", "dark", "divider palette: dark or light")
	lineColor := fs.String("line-color", "", "divider color as hex, overrides the theme default")
	lineAlpha := fs.Float64("line-alpha", 0.6, "divider opacity in [0..1], used with -line-color")
	dashOn := fs.Int("dash-on", 4, "divider dash length in pixels, 0 disables the divider")
	dashOff := fs.Int("dash-off", 2, "divider gap length in pixels")
	format, quality := exportFlags(fs)
	verbose := fs.Bool("v", false, "debug logging to stderr")
	params := tonalFlags(fs)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" {
		return errors.New("missing required arguments")
	}
	if *verbose {
		enableDebugLog()
	}
	viewMode, err := retouch.ParseViewMode(*mode)
	if err != nil {
		return err
	}
	viewTheme, err := retouch.ParseTheme(*theme)
	if err != nil {
		return err
	}
	encOpts, err := exportOptions(*format, *quality)
	if err != nil {
		return err
	}
	presentOpts := []func(o *retouch.PresentOptions){
		func(o *retouch.PresentOptions) {
			o.DashOn = *dashOn
			o.DashOff = *dashOff
		},
	}
	if *lineColor != "" {
		line, err := parseLineColor(*lineColor, *lineAlpha)
		if err != nil {
			return err
		}
		presentOpts = append(presentOpts, func(o *retouch.PresentOptions) { o.Line = line })
	}

	original, _, err := retouch.DecodeBufferFile(*inPath)
	if err != nil {
		return err
	}
	filtered, err := retouch.Apply(original, params())
	if err != nil {
		return err
	}
	frame, err := retouch.Present(original, filtered, viewMode, viewTheme, presentOpts...)
	if err != nil {
		return err
	}
	return retouch.WriteBufferFile(*outPath, frame, encOpts...)
}

func parseLineColor(hex string, alpha float64) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse line color: %w", err)
	}
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}, nil
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required arguments")
	}
	info, err := retouch.InspectFile(*inPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s %dx%d\n", info.Format, info.Width, info.Height)
	return nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
