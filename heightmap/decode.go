package heightmap

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png" // register PNG
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // register BMP
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF

	"github.com/katalvlaran/terrapath/elevation"
)

// Load decodes the heightmap file at path.
func Load(path string, opts ...Option) (*elevation.Field, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("heightmap: open %s: %w", path, err)
	}
	defer f.Close()

	field, err := Decode(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return field, nil
}

// Decode reads a PNG, TIFF or BMP image from r and converts it into a field.
// Returns ErrUnsupportedFormat if the data cannot be decoded and
// ErrOptionViolation for invalid options.
func Decode(r io.Reader, opts ...Option) (*elevation.Field, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	depth := bitDepth(img)
	b := img.Bounds()
	if cfg.Width > 0 && (b.Dx() != cfg.Width || b.Dy() != cfg.Height) {
		img = resample(img, cfg.Width, cfg.Height)
		cfg.Logger.Debug("heightmap resampled",
			"from", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
			"to", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		)
	}

	field, err := fromImage(img, depth, cfg.Field)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debug("heightmap decoded",
		"format", format,
		"width", field.Width(),
		"height", field.Height(),
		"bits", field.BitDepth(),
	)

	return field, nil
}

// FromImage converts an already decoded image into a field.
func FromImage(img image.Image, opts ...elevation.Option) (*elevation.Field, error) {
	return fromImage(img, bitDepth(img), opts)
}

func fromImage(img image.Image, depth int, opts []elevation.Option) (*elevation.Field, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	samples := make([][]float64, h)
	for y := 0; y < h; y++ {
		// Field row y is image row h-1-y.
		row := make([]float64, w)
		iy := b.Max.Y - 1 - y
		for x := 0; x < w; x++ {
			row[x] = luminance(img.At(b.Min.X+x, iy), depth)
		}
		samples[y] = row
	}

	opts = append([]elevation.Option{elevation.WithBitDepth(depth)}, opts...)
	return elevation.NewField(samples, opts...)
}

// bitDepth reports 16 for sources carrying 16 bits per channel.
func bitDepth(img image.Image) int {
	switch img.(type) {
	case *image.Gray16, *image.RGBA64, *image.NRGBA64:
		return elevation.BitDepth16
	default:
		return elevation.BitDepth8
	}
}

// luminance normalizes a pixel's gray level to [0,1] at the given depth.
func luminance(c color.Color, depth int) float64 {
	if depth == elevation.BitDepth16 {
		return float64(color.Gray16Model.Convert(c).(color.Gray16).Y) / 0xffff
	}
	return float64(color.GrayModel.Convert(c).(color.Gray).Y) / 0xff
}

// resample scales img to w×h with bilinear filtering into a 16-bit gray image.
func resample(img image.Image, w, h int) image.Image {
	dst := image.NewGray16(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}
