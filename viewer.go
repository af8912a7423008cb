package ggview

import (
	"fmt"
	"path/filepath"

	"github.com/gogpu/ggview/backend"
	"github.com/gogpu/ggview/internal/parallel"
)

// Viewer owns the application state: the album, the image on screen,
// the viewport, and any loads still in flight.
//
// Viewer methods are not safe for concurrent use; call them from the UI
// goroutine. Loader goroutines started by Navigate touch only their own
// delivery channel, the texture factory, and the worker pool, which all
// tolerate concurrent use.
type Viewer struct {
	album   *Album
	factory backend.TextureFactory
	pool    *parallel.Pool
	limit   int

	current    *ImageSet
	viewport   Viewport
	fitPending bool
	disp       Vec2

	gen     uint64
	pending []*PendingLoad

	showHUD bool
}

// Quad pairs a texture with its screen placement for one frame.
type Quad struct {
	Tex backend.Texture
	Placement
}

// NewViewer loads the startup image synchronously and builds the album
// from its directory. A startup image that cannot be decoded or tiled
// is fatal; later failures during navigation are not.
func NewViewer(path string, factory backend.TextureFactory, tileLimit int) (*Viewer, error) {
	pool := parallel.NewPool(0)
	set, err := loadImageSet(path, tileLimit, factory, pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ggview: load %q: %w", path, err)
	}
	v := &Viewer{
		album:      LoadAlbum(path),
		factory:    factory,
		pool:       pool,
		limit:      tileLimit,
		current:    set,
		viewport:   HomeViewport(),
		fitPending: true,
	}
	Logger().Info("image loaded", "path", set.Path, "width", set.W, "height", set.H, "tiles", len(set.Tiles))
	return v, nil
}

// Navigate moves through the album by delta and starts loading the new
// image in the background. The image on screen stays up until the load
// delivers. Navigating again before then supersedes the earlier load.
func (v *Viewer) Navigate(delta int) {
	path := v.album.Navigate(delta)
	v.gen++
	v.pending = append(v.pending, beginLoad(v.gen, path, v.limit, v.factory, v.pool))
	Logger().Debug("navigation", "path", path, "generation", v.gen)
}

// Poll collects finished loads without blocking. The newest generation
// is adopted as the current image; superseded results are released, and
// a failed load of the newest generation keeps the current image on
// screen. Call once per frame before Frame.
func (v *Viewer) Poll() {
	if len(v.pending) == 0 {
		return
	}
	kept := v.pending[:0]
	for _, p := range v.pending {
		r, ok := p.poll()
		if !ok {
			kept = append(kept, p)
			continue
		}
		switch {
		case p.Gen != v.gen:
			if r.set != nil {
				r.set.Close()
			}
			Logger().Debug("stale load dropped", "path", p.Path, "generation", p.Gen)
		case r.err != nil:
			Logger().Warn("load failed", "path", p.Path, "error", r.err)
		default:
			v.adopt(r.set)
		}
	}
	v.pending = kept
}

// adopt replaces the current image set, releasing the old one, and
// resets the viewport. The fit zoom is deferred to the next Frame with
// a usable display size.
func (v *Viewer) adopt(set *ImageSet) {
	if v.current != nil {
		v.current.Close()
	}
	v.current = set
	v.viewport = HomeViewport()
	v.fitPending = true
	Logger().Info("image loaded", "path", set.Path, "width", set.W, "height", set.H, "tiles", len(set.Tiles))
}

// Frame records the display size, applies a deferred fit zoom once the
// size is usable, and returns the tile quads to draw this frame, in
// row-major tile order.
func (v *Viewer) Frame(dispW, dispH float64) []Quad {
	v.disp = V2(dispW, dispH)
	if v.current == nil {
		return nil
	}
	if v.fitPending && dispW > 1 {
		fit := FitZoom(dispW, dispH, float64(v.current.W), float64(v.current.H), v.viewport.Steps)
		v.viewport = v.viewport.WithZoom(fit)
		v.fitPending = false
	}
	center := v.disp.Mul(0.5)
	quads := make([]Quad, 0, len(v.current.Tiles))
	for _, t := range v.current.Tiles {
		quads = append(quads, Quad{
			Tex:       t.Tex,
			Placement: v.viewport.TilePlacement(t, float64(v.current.W), float64(v.current.H), center),
		})
	}
	return quads
}

// Pan shifts the view by a screen-space delta.
func (v *Viewer) Pan(delta Vec2) { v.viewport = v.viewport.Pan(delta) }

// ZoomAt scales the view by factor keeping the image point at the
// display position pos fixed.
func (v *Viewer) ZoomAt(pos Vec2, factor float64) {
	v.viewport = v.viewport.ZoomAt(pos, v.disp.Mul(0.5), factor)
}

// ZoomCenter scales the view by factor about the display center.
func (v *Viewer) ZoomCenter(factor float64) { v.ZoomAt(v.disp.Mul(0.5), factor) }

// Rotate turns the view by quarter turns, clockwise when dir is
// positive. Zoom and offset are kept.
func (v *Viewer) Rotate(dir int) { v.viewport = v.viewport.Rotate(dir) }

// ToggleFitOr100 switches between fit-to-window and 1:1 pixels.
func (v *Viewer) ToggleFitOr100() {
	if v.current == nil {
		return
	}
	fit := FitZoom(v.disp.X, v.disp.Y, float64(v.current.W), float64(v.current.H), v.viewport.Steps)
	v.viewport = v.viewport.ToggleFitOr100(fit)
}

// ToggleHUD flips the status line on or off.
func (v *Viewer) ToggleHUD() { v.showHUD = !v.showHUD }

// Viewport returns the current view transform.
func (v *Viewer) Viewport() Viewport { return v.viewport }

// loading reports whether the newest requested image is still on its
// way.
func (v *Viewer) loading() bool {
	for _, p := range v.pending {
		if p.Gen == v.gen {
			return true
		}
	}
	return false
}

// HUDState is the status line content for one frame.
type HUDState struct {
	Visible bool
	Path    string
	Index   int // 1-based album position
	Count   int
	W, H    int
	Zoom    float64
	Steps   int
	Loading bool
}

// HUD returns the status line state for the current frame.
func (v *Viewer) HUD() HUDState {
	h := HUDState{
		Visible: v.showHUD,
		Index:   v.album.Index() + 1,
		Count:   v.album.Len(),
		Zoom:    v.viewport.Zoom,
		Steps:   v.viewport.Steps,
		Loading: v.loading(),
	}
	if v.current != nil {
		h.Path = v.current.Path
		h.W = v.current.W
		h.H = v.current.H
	}
	return h
}

// Line renders the status line: file name, album position, image size,
// zoom, and, when relevant, rotation and load progress.
func (h HUDState) Line() string {
	s := fmt.Sprintf("%s  %d/%d  %dx%d  %.0f%%",
		filepath.Base(h.Path), h.Index, h.Count, h.W, h.H, h.Zoom*100)
	if h.Steps != 0 {
		s += fmt.Sprintf("  %d°", floorMod(h.Steps, 4)*90)
	}
	if h.Loading {
		s += "  loading"
	}
	return s
}

// Close releases the current image and the worker pool. Results from
// loads still running are picked up if already delivered; anything that
// delivers later is released when the renderer shuts down.
func (v *Viewer) Close() {
	for _, p := range v.pending {
		if r, ok := p.poll(); ok && r.set != nil {
			r.set.Close()
		}
	}
	v.pending = nil
	if v.current != nil {
		v.current.Close()
		v.current = nil
	}
	v.pool.Close()
}
