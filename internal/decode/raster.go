// Package decode turns image files into tightly packed RGBA8 rasters.
package decode

import (
	"errors"
	"fmt"
)

// Decode errors.
var (
	// ErrUnsupportedFormat is returned when the file extension is not in the
	// supported set.
	ErrUnsupportedFormat = errors.New("decode: unsupported format")

	// ErrEmptyImage is returned when a codec produces an image with a zero
	// dimension.
	ErrEmptyImage = errors.New("decode: empty image")
)

// Raster is a decoded image as RGBA8 with no row padding. The stride is
// exactly 4*W bytes; Pix holds 4*W*H bytes owned by the raster.
type Raster struct {
	Pix  []byte
	W, H int
}

// NewRaster allocates a zeroed raster of the given size.
func NewRaster(w, h int) (*Raster, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("decode: invalid raster size %dx%d: %w", w, h, ErrEmptyImage)
	}
	return &Raster{
		Pix: make([]byte, 4*w*h),
		W:   w,
		H:   h,
	}, nil
}

// Row returns the pixel bytes of row y.
func (r *Raster) Row(y int) []byte {
	start := y * r.W * 4
	return r.Pix[start : start+r.W*4]
}

// SubRow returns the pixel bytes of row y restricted to columns [x, x+w).
func (r *Raster) SubRow(y, x, w int) []byte {
	start := y*r.W*4 + x*4
	return r.Pix[start : start+w*4]
}

// String returns a short description for logging.
func (r *Raster) String() string {
	return fmt.Sprintf("Raster(%dx%d, %d bytes)", r.W, r.H, len(r.Pix))
}
