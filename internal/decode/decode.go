package decode

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	// Registered with image.Decode for content sniffing.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ftrvxmtrx/tga"
	"github.com/gen2brain/heic"
)

// Strategy selects how a file is decoded. Most formats go through the
// standard registry; HEIC and TGA need dedicated codecs (HEIC decodes via a
// sandboxed libheif, TGA carries no magic bytes so content sniffing cannot
// identify it).
type Strategy uint8

const (
	// StrategyStd decodes through image.Decode and the registered formats
	// (JPEG, PNG, GIF, WebP, BMP, TIFF).
	StrategyStd Strategy = iota

	// StrategyHEIC decodes HEIC/HEIF containers.
	StrategyHEIC

	// StrategyTGA decodes Truevision TGA files.
	StrategyTGA
)

// String returns a string representation of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyStd:
		return "Std"
	case StrategyHEIC:
		return "HEIC"
	case StrategyTGA:
		return "TGA"
	default:
		return "Unknown"
	}
}

// strategies maps the supported lowercase extensions to their strategy.
var strategies = map[string]Strategy{
	".jpg":  StrategyStd,
	".jpeg": StrategyStd,
	".png":  StrategyStd,
	".gif":  StrategyStd,
	".webp": StrategyStd,
	".bmp":  StrategyStd,
	".tif":  StrategyStd,
	".tiff": StrategyStd,
	".heic": StrategyHEIC,
	".heif": StrategyHEIC,
	".tga":  StrategyTGA,
}

// StrategyFor returns the decode strategy for the given path, based on its
// lowercased extension. The second result is false when the extension is not
// supported.
func StrategyFor(path string) (Strategy, bool) {
	s, ok := strategies[strings.ToLower(filepath.Ext(path))]
	return s, ok
}

// Supported reports whether the file at path has a supported extension.
func Supported(path string) bool {
	_, ok := StrategyFor(path)
	return ok
}

// Extensions returns the supported extensions without the leading dot,
// in no particular order.
func Extensions() []string {
	exts := make([]string, 0, len(strategies))
	for ext := range strategies {
		exts = append(exts, ext[1:])
	}
	return exts
}

// File loads and decodes the image at path into a tight RGBA8 raster.
func File(path string) (*Raster, error) {
	strategy, ok := StrategyFor(path)
	if !ok {
		return nil, fmt.Errorf("decode: %q: %w", path, ErrUnsupportedFormat)
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("decode: open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r, err := Reader(f, strategy)
	if err != nil {
		return nil, fmt.Errorf("decode: %q: %w", path, err)
	}
	return r, nil
}

// Reader decodes an image from r using the given strategy.
func Reader(r io.Reader, strategy Strategy) (*Raster, error) {
	var (
		img image.Image
		err error
	)
	switch strategy {
	case StrategyHEIC:
		img, err = heic.Decode(r)
	case StrategyTGA:
		img, err = tga.Decode(r)
	default:
		img, _, err = image.Decode(r)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", strategy, err)
	}
	return FromStdImage(img)
}

// FromStdImage packs a standard library image into a tight RGBA8 raster,
// discarding any stride padding the codec left between rows.
func FromStdImage(img image.Image) (*Raster, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	out, err := NewRaster(width, height)
	if err != nil {
		return nil, err
	}

	// Fast path for RGBA images
	if rgba, ok := img.(*image.RGBA); ok {
		if rgba.Stride == width*4 {
			copy(out.Pix, rgba.Pix)
			return out, nil
		}
		for y := range height {
			srcStart := y * rgba.Stride
			copy(out.Row(y), rgba.Pix[srcStart:srcStart+width*4])
		}
		return out, nil
	}

	// Fast path for NRGBA images
	if nrgba, ok := img.(*image.NRGBA); ok {
		if nrgba.Stride == width*4 {
			copy(out.Pix, nrgba.Pix)
			return out, nil
		}
		for y := range height {
			srcStart := y * nrgba.Stride
			copy(out.Row(y), nrgba.Pix[srcStart:srcStart+width*4])
		}
		return out, nil
	}

	// Generic slow path for any image type
	for y := range height {
		row := out.Row(y)
		for x := range width {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			r, g, b, a := c.RGBA()
			// RGBA() returns 16-bit values, scale to 8-bit
			off := x * 4
			row[off] = byte(r >> 8)
			row[off+1] = byte(g >> 8)
			row[off+2] = byte(b >> 8)
			row[off+3] = byte(a >> 8)
		}
	}

	return out, nil
}
