// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/ggview"
	"github.com/gogpu/ggview/backend"
	"github.com/gogpu/ggview/internal/cache"
)

// variantCacheSize bounds the number of rotated tile variants kept
// alive. Evicted variants are rebuilt on demand.
const variantCacheSize = 16

// init registers the canvas renderer on package import.
func init() {
	backend.Register(backend.RendererCanvas, func() backend.Renderer {
		return New()
	})
}

// variantKey identifies one rotated variant of one texture. Keyed by
// texture identity, not id string, because a reload can briefly hold
// two textures with the same id.
type variantKey struct {
	tex   *Texture
	steps int
}

// Renderer draws viewer tiles through a gg drawing context. Textures
// hold their pixels as gg image buffers; quarter-turn rotation is done
// by remapping the buffer once per step and caching the result, so
// every draw stays an axis-aligned blit.
//
// CreateTexture is safe to call from loader goroutines. Everything
// frame-shaped (Begin, DrawQuad, DrawHUD, End) belongs to the UI
// goroutine.
type Renderer struct {
	mu          sync.Mutex
	initialized bool
	budget      int64
	used        int64
	maxDim      int
	live        map[*Texture]struct{}

	variants *cache.Cache[variantKey, *gg.ImageBuf]

	// UI-goroutine state, valid between Begin and End.
	cc   *gg.Context
	face text.Face
}

// New creates a canvas renderer. The texture dimension cap comes from
// the wgpu default limits; SetMaxTextureDim can lower it further.
func New() *Renderer {
	return &Renderer{
		live:     make(map[*Texture]struct{}),
		variants: cache.New[variantKey, *gg.ImageBuf](variantCacheSize),
		maxDim:   int(wgpu.DefaultLimits().MaxTextureDimension2D),
	}
}

// Name returns the renderer identifier.
func (r *Renderer) Name() string {
	return backend.RendererCanvas
}

// Init prepares the renderer. A missing system font disables the HUD
// text but is not an error.
func (r *Renderer) Init() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.face == nil {
		r.face = loadHUDFont()
	}
	r.initialized = true
	return nil
}

// Close releases every live texture and drops the variant cache.
func (r *Renderer) Close() {
	r.mu.Lock()
	textures := make([]*Texture, 0, len(r.live))
	for t := range r.live {
		textures = append(textures, t)
	}
	r.initialized = false
	r.cc = nil
	r.mu.Unlock()

	for _, t := range textures {
		t.Close()
	}
	r.variants.Clear()
}

// SetBudget caps the total texture bytes. 0 means unlimited.
func (r *Renderer) SetBudget(bytes int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.budget = bytes
}

// SetMaxTextureDim lowers the texture dimension cap. Values above the
// wgpu device limit or below 1 are ignored.
func (r *Renderer) SetMaxTextureDim(dim int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if dim >= 1 && dim < r.maxDim {
		r.maxDim = dim
	}
}

// MaxTextureDim returns the largest allowed texture dimension.
func (r *Renderer) MaxTextureDim() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxDim
}

// UsedBytes returns the total bytes held by live textures. Rotated
// variants are derived data and not counted.
func (r *Renderer) UsedBytes() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.used
}

// LiveCount returns the number of textures not yet closed.
func (r *Renderer) LiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// CreateTexture copies the pixel block into a gg image buffer. The rgba
// slice is consumed by the copy; the caller must not reuse it.
func (r *Renderer) CreateTexture(id string, w, h int, rgba []byte) (backend.Texture, error) {
	if w <= 0 || h <= 0 || len(rgba) != 4*w*h {
		return nil, fmt.Errorf("canvas: texture %q %dx%d with %d bytes: %w", id, w, h, len(rgba), backend.ErrInvalidTexture)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxDim > 0 && (w > r.maxDim || h > r.maxDim) {
		return nil, fmt.Errorf("canvas: texture %q %dx%d exceeds max dimension %d: %w", id, w, h, r.maxDim, backend.ErrTextureTooLarge)
	}

	size := int64(len(rgba))
	if r.budget > 0 && r.used+size > r.budget {
		return nil, fmt.Errorf("canvas: texture %q needs %d bytes, %d of %d in use: %w", id, size, r.used, r.budget, backend.ErrBudgetExceeded)
	}

	buf := gg.ImageBufFromImage(&image.RGBA{
		Pix:    rgba,
		Stride: 4 * w,
		Rect:   image.Rect(0, 0, w, h),
	})

	t := &Texture{
		id:       id,
		w:        w,
		h:        h,
		buf:      buf,
		renderer: r,
	}
	r.used += size
	r.live[t] = struct{}{}

	ggview.Logger().Debug("texture created", "id", id, "width", w, "height", h)
	return t, nil
}

func (r *Renderer) release(t *Texture) {
	r.mu.Lock()
	if _, ok := r.live[t]; ok {
		delete(r.live, t)
		r.used -= int64(4 * t.w * t.h)
	}
	r.mu.Unlock()

	r.variants.DeleteFunc(func(k variantKey) bool { return k.tex == t })
}

// Texture is a tile held as a gg image buffer.
type Texture struct {
	id       string
	w, h     int
	buf      *gg.ImageBuf
	renderer *Renderer
	released atomic.Bool
}

// ID returns the identifier the texture was created with.
func (t *Texture) ID() string {
	return t.id
}

// Size returns the texture dimensions.
func (t *Texture) Size() (int, int) {
	return t.w, t.h
}

// Close releases the texture and sweeps its rotated variants. Double
// close is a no-op.
func (t *Texture) Close() {
	if !t.released.CompareAndSwap(false, true) {
		return
	}
	t.renderer.release(t)
}

// String returns a debug description.
func (t *Texture) String() string {
	return fmt.Sprintf("canvas.Texture(%s, %dx%d, released=%v)", t.id, t.w, t.h, t.released.Load())
}
