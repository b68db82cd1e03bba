package retouch

import (
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding

	_ "golang.org/x/image/bmp"  // register BMP decoding
	_ "golang.org/x/image/tiff" // register TIFF decoding
	_ "golang.org/x/image/webp" // register WebP decoding
)

// DecodeBuffer decodes an image stream into a Buffer using any registered
// format (JPEG, PNG, GIF, BMP, TIFF, WebP) and reports the format name. On
// failure nothing is returned, so callers keep their previous state instead
// of ending up with a half-loaded image.
func DecodeBuffer(r io.Reader) (*Buffer, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	buf := FromImage(img)
	Logger().Debug("decoded image",
		slog.String("format", format),
		slog.Int("width", buf.Width),
		slog.Int("height", buf.Height))
	return buf, format, nil
}

// DecodeBufferFile decodes the image file at path into a Buffer.
func DecodeBufferFile(path string) (*Buffer, string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	return DecodeBuffer(f)
}

// FromImage copies an image into a Buffer. *image.NRGBA data and opaque
// *image.RGBA data are copied row by row; everything else goes through the
// standard color model conversion.
func FromImage(img image.Image) *Buffer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := NewBuffer(w, h)
	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			o := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*w*4:(y+1)*w*4], src.Pix[o:o+w*4])
		}
		return out
	case *image.RGBA:
		// Premultiplied and non-premultiplied bytes agree when fully opaque.
		if src.Opaque() {
			for y := 0; y < h; y++ {
				o := src.PixOffset(b.Min.X, b.Min.Y+y)
				copy(out.Pix[y*w*4:(y+1)*w*4], src.Pix[o:o+w*4])
			}
			return out
		}
	}
	for y := 0; y < h; y++ {
		i := y * w * 4
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			out.Pix[i] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = c.A
			i += 4
		}
	}
	return out
}
