package ggview

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/ggview/backend"
)

// writePNG writes a w-by-h image whose pixels encode their position, so
// tests can tell images apart after the full decode and tile pipeline.
func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 7, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

// waitDelivery polls the viewer until cond holds or the deadline passes.
func waitDelivery(t *testing.T, v *Viewer, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		v.Poll()
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("load did not deliver before the deadline")
}

func TestNewViewer(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 8, 6)
	writePNG(t, filepath.Join(dir, "b.png"), 4, 4)

	r := backend.NewSoftware()
	v, err := NewViewer(filepath.Join(dir, "a.png"), r, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer v.Close()

	h := v.HUD()
	if h.Path != filepath.Join(dir, "a.png") || h.W != 8 || h.H != 6 {
		t.Errorf("HUD = %+v", h)
	}
	if h.Index != 1 || h.Count != 2 {
		t.Errorf("album position %d/%d, want 1/2", h.Index, h.Count)
	}
	if r.LiveCount() != 1 {
		t.Errorf("LiveCount = %d, want 1", r.LiveCount())
	}
}

func TestNewViewer_MissingFile(t *testing.T) {
	_, err := NewViewer(filepath.Join(t.TempDir(), "gone.png"), backend.NewSoftware(), 0)
	if err == nil {
		t.Fatal("expected a startup error")
	}
}

func TestViewer_FrameAppliesDeferredFit(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 8, 6)
	v, err := NewViewer(filepath.Join(dir, "a.png"), backend.NewSoftware(), 0)
	if err != nil {
		t.Fatal(err)
	}
	defer v.Close()

	// A zero display size must not consume the pending fit.
	if quads := v.Frame(0, 0); quads == nil {
		t.Fatal("Frame returned no quads")
	}
	if v.Viewport().Zoom != 1 {
		t.Fatalf("fit applied at zero size: zoom %v", v.Viewport().Zoom)
	}

	quads := v.Frame(800, 600)
	if len(quads) != 1 {
		t.Fatalf("quad count = %d, want 1", len(quads))
	}
	if want := FitZoom(800, 600, 8, 6, 0); v.Viewport().Zoom != want {
		t.Errorf("zoom = %v, want fit %v", v.Viewport().Zoom, want)
	}

	// The fit is one-shot: user zoom survives later frames.
	v.ZoomCenter(2)
	zoomed := v.Viewport().Zoom
	v.Frame(800, 600)
	if v.Viewport().Zoom != zoomed {
		t.Errorf("frame overwrote user zoom: %v", v.Viewport().Zoom)
	}
}

func TestViewer_NavigateAdoptsDelivery(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 8, 6)
	writePNG(t, filepath.Join(dir, "b.png"), 4, 4)

	r := backend.NewSoftware()
	v, err := NewViewer(filepath.Join(dir, "a.png"), r, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer v.Close()

	v.Frame(800, 600)
	v.Pan(V2(50, 50))
	v.Rotate(1)

	v.Navigate(1)
	if !v.HUD().Loading {
		t.Error("HUD not loading right after Navigate")
	}
	waitDelivery(t, v, func() bool { return v.HUD().Path == filepath.Join(dir, "b.png") })

	if got := v.Viewport(); !got.Offset.IsZero() || got.Steps != 0 {
		t.Errorf("viewport not reset on delivery: %+v", got)
	}
	v.Frame(800, 600)
	if want := FitZoom(800, 600, 4, 4, 0); v.Viewport().Zoom != want {
		t.Errorf("zoom = %v, want fit %v", v.Viewport().Zoom, want)
	}
	if r.LiveCount() != 1 {
		t.Errorf("LiveCount = %d, want 1 (old image released)", r.LiveCount())
	}
	if v.HUD().Loading {
		t.Error("HUD still loading after delivery")
	}
}

func TestViewer_RapidNavigationKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 8, 6)
	writePNG(t, filepath.Join(dir, "b.png"), 4, 4)
	writePNG(t, filepath.Join(dir, "c.png"), 6, 2)

	r := backend.NewSoftware()
	v, err := NewViewer(filepath.Join(dir, "a.png"), r, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer v.Close()

	// Two navigations before any poll: only the second may win.
	v.Navigate(1)
	v.Navigate(1)

	waitDelivery(t, v, func() bool {
		return v.HUD().Path == filepath.Join(dir, "c.png") && len(v.pending) == 0
	})
	if r.LiveCount() != 1 {
		t.Errorf("LiveCount = %d, want 1 (stale load released)", r.LiveCount())
	}
	if v.HUD().Index != 3 {
		t.Errorf("album position = %d, want 3", v.HUD().Index)
	}
}

func TestViewer_FailedLoadKeepsCurrent(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 8, 6)
	if err := os.WriteFile(filepath.Join(dir, "b.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := NewViewer(filepath.Join(dir, "a.png"), backend.NewSoftware(), 0)
	if err != nil {
		t.Fatal(err)
	}
	defer v.Close()
	v.Frame(800, 600)
	before := v.Viewport()

	v.Navigate(1)
	waitDelivery(t, v, func() bool { return len(v.pending) == 0 })

	if got := v.HUD().Path; got != filepath.Join(dir, "a.png") {
		t.Errorf("current path = %q, want the image that was on screen", got)
	}
	if v.Viewport() != before {
		t.Errorf("viewport changed on failed load: %+v", v.Viewport())
	}
}

func TestViewer_SingleImageReload(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "only.png"), 8, 6)

	v, err := NewViewer(filepath.Join(dir, "only.png"), backend.NewSoftware(), 0)
	if err != nil {
		t.Fatal(err)
	}
	defer v.Close()

	before := v.current
	v.Navigate(1)
	waitDelivery(t, v, func() bool { return len(v.pending) == 0 })

	if v.current == before {
		t.Error("navigation in a single-image album did not reload")
	}
	if v.HUD().Path != filepath.Join(dir, "only.png") {
		t.Errorf("path = %q", v.HUD().Path)
	}
}

func TestViewer_ToggleFitOr100(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 8, 6)
	v, err := NewViewer(filepath.Join(dir, "a.png"), backend.NewSoftware(), 0)
	if err != nil {
		t.Fatal(err)
	}
	defer v.Close()

	v.Frame(800, 600)
	fit := v.Viewport().Zoom

	v.ToggleFitOr100()
	if v.Viewport().Zoom != 1 {
		t.Errorf("first toggle zoom = %v, want 1", v.Viewport().Zoom)
	}
	v.ToggleFitOr100()
	if v.Viewport().Zoom != fit {
		t.Errorf("second toggle zoom = %v, want fit %v", v.Viewport().Zoom, fit)
	}
}

func TestViewer_CloseReleasesTextures(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 8, 6)

	r := backend.NewSoftware()
	v, err := NewViewer(filepath.Join(dir, "a.png"), r, 0)
	if err != nil {
		t.Fatal(err)
	}
	v.Close()

	if r.LiveCount() != 0 {
		t.Errorf("LiveCount = %d after Close, want 0", r.LiveCount())
	}
}

func TestHUDState_Line(t *testing.T) {
	tests := []struct {
		name string
		h    HUDState
		want string
	}{
		{
			"plain",
			HUDState{Path: "/pics/cat.png", Index: 3, Count: 12, W: 4000, H: 3000, Zoom: 0.5},
			"cat.png  3/12  4000x3000  50%",
		},
		{
			"rotated",
			HUDState{Path: "a.jpg", Index: 1, Count: 1, W: 10, H: 10, Zoom: 1, Steps: 3},
			"a.jpg  1/1  10x10  100%  270°",
		},
		{
			"loading",
			HUDState{Path: "a.jpg", Index: 1, Count: 2, W: 10, H: 10, Zoom: 2, Loading: true},
			"a.jpg  1/2  10x10  200%  loading",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.h.Line(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}
