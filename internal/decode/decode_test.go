package decode

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestStrategyFor(t *testing.T) {
	tests := []struct {
		path string
		want Strategy
		ok   bool
	}{
		{"photo.jpg", StrategyStd, true},
		{"photo.JPEG", StrategyStd, true},
		{"shot.png", StrategyStd, true},
		{"anim.gif", StrategyStd, true},
		{"web.webp", StrategyStd, true},
		{"scan.bmp", StrategyStd, true},
		{"doc.tif", StrategyStd, true},
		{"doc.tiff", StrategyStd, true},
		{"phone.heic", StrategyHEIC, true},
		{"phone.HEIF", StrategyHEIC, true},
		{"legacy.tga", StrategyTGA, true},
		{"/dir/with.dots/photo.png", StrategyStd, true},
		{"notes.txt", 0, false},
		{"noext", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := StrategyFor(tt.path)
			if ok != tt.ok {
				t.Fatalf("StrategyFor(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("StrategyFor(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestExtensions(t *testing.T) {
	exts := Extensions()
	if len(exts) != 11 {
		t.Errorf("len(Extensions()) = %d, want 11", len(exts))
	}
	seen := make(map[string]bool, len(exts))
	for _, ext := range exts {
		if ext == "" || ext[0] == '.' {
			t.Errorf("Extensions() contains %q, want bare extension", ext)
		}
		seen[ext] = true
	}
	for _, want := range []string{"jpg", "jpeg", "png", "webp", "bmp", "gif", "heic", "heif", "tif", "tiff", "tga"} {
		if !seen[want] {
			t.Errorf("Extensions() missing %q", want)
		}
	}
}

func TestFromStdImage_TightRGBA(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 10, 10))
	rgba.Set(5, 5, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	r, err := FromStdImage(rgba)
	if err != nil {
		t.Fatalf("FromStdImage() error = %v", err)
	}
	if r.W != 10 || r.H != 10 {
		t.Errorf("Dimensions = (%d, %d), want (10, 10)", r.W, r.H)
	}
	if len(r.Pix) != 400 {
		t.Errorf("len(Pix) = %d, want 400", len(r.Pix))
	}
	off := (5*10 + 5) * 4
	if r.Pix[off] != 200 || r.Pix[off+1] != 100 || r.Pix[off+2] != 50 || r.Pix[off+3] != 255 {
		t.Errorf("Pixel = %v, want [200 100 50 255]", r.Pix[off:off+4])
	}
}

func TestFromStdImage_PaddedStride(t *testing.T) {
	// NRGBA with a stride wider than the pixel row, as a HEIC decode can
	// produce. The pack must discard the padding.
	src := &image.NRGBA{
		Pix:    make([]byte, 3*16), // 3 rows, stride 16 for a 3px-wide image
		Stride: 16,
		Rect:   image.Rect(0, 0, 3, 3),
	}
	src.SetNRGBA(2, 1, color.NRGBA{R: 9, G: 8, B: 7, A: 6})

	r, err := FromStdImage(src)
	if err != nil {
		t.Fatalf("FromStdImage() error = %v", err)
	}
	if len(r.Pix) != 3*3*4 {
		t.Fatalf("len(Pix) = %d, want %d", len(r.Pix), 3*3*4)
	}
	off := (1*3 + 2) * 4
	if r.Pix[off] != 9 || r.Pix[off+1] != 8 || r.Pix[off+2] != 7 || r.Pix[off+3] != 6 {
		t.Errorf("Pixel = %v, want [9 8 7 6]", r.Pix[off:off+4])
	}
}

func TestFromStdImage_Gray(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	gray.SetGray(1, 2, color.Gray{Y: 128})

	r, err := FromStdImage(gray)
	if err != nil {
		t.Fatalf("FromStdImage() error = %v", err)
	}
	off := (2*4 + 1) * 4
	if r.Pix[off] != 128 || r.Pix[off+1] != 128 || r.Pix[off+2] != 128 || r.Pix[off+3] != 255 {
		t.Errorf("Pixel = %v, want [128 128 128 255]", r.Pix[off:off+4])
	}
}

func TestFromStdImage_OffsetBounds(t *testing.T) {
	// Sub-images keep their parent's coordinate space; packing must start at
	// Bounds().Min, not at (0, 0).
	base := image.NewGray(image.Rect(0, 0, 8, 8))
	base.SetGray(4, 4, color.Gray{Y: 77})
	sub := base.SubImage(image.Rect(4, 4, 8, 8)).(*image.Gray)

	r, err := FromStdImage(sub)
	if err != nil {
		t.Fatalf("FromStdImage() error = %v", err)
	}
	if r.W != 4 || r.H != 4 {
		t.Fatalf("Dimensions = (%d, %d), want (4, 4)", r.W, r.H)
	}
	if r.Pix[0] != 77 {
		t.Errorf("Pix[0] = %d, want 77", r.Pix[0])
	}
}

func TestNewRaster_Empty(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, 0}, {0, 0}, {-1, 5}} {
		if _, err := NewRaster(size[0], size[1]); !errors.Is(err, ErrEmptyImage) {
			t.Errorf("NewRaster(%d, %d) error = %v, want ErrEmptyImage", size[0], size[1], err)
		}
	}
}

func TestFile_Unsupported(t *testing.T) {
	_, err := File("notes.txt")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("File(notes.txt) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFile_Missing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "gone.png"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("File(gone.png) error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestFile_PNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 6, 3))
	img.SetNRGBA(5, 2, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	path := filepath.Join(t.TempDir(), "tiny.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	r, err := File(path)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	if r.W != 6 || r.H != 3 {
		t.Errorf("Dimensions = (%d, %d), want (6, 3)", r.W, r.H)
	}
	off := (2*6 + 5) * 4
	if r.Pix[off] != 1 || r.Pix[off+1] != 2 || r.Pix[off+2] != 3 {
		t.Errorf("Pixel = %v, want [1 2 3 255]", r.Pix[off:off+4])
	}
}

func TestReader_Corrupt(t *testing.T) {
	_, err := Reader(bytes.NewReader([]byte("not an image at all")), StrategyStd)
	if err == nil {
		t.Fatal("Reader() on garbage succeeded, want error")
	}
}

func TestRaster_SubRow(t *testing.T) {
	r, err := NewRaster(4, 2)
	if err != nil {
		t.Fatalf("NewRaster() error = %v", err)
	}
	for i := range r.Pix {
		r.Pix[i] = byte(i)
	}

	sub := r.SubRow(1, 2, 2)
	if len(sub) != 8 {
		t.Fatalf("len(SubRow) = %d, want 8", len(sub))
	}
	// Row 1 starts at byte 16; column 2 starts 8 bytes in.
	if sub[0] != 24 {
		t.Errorf("SubRow[0] = %d, want 24", sub[0])
	}
}
