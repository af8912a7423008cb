package backend

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Renderer name constants.
const (
	// RendererSoftware is the name of the in-memory renderer.
	RendererSoftware = "software"
	// RendererCanvas is the name of the gg canvas renderer.
	RendererCanvas = "canvas"
)

// DrawOp records a single DrawQuad call.
type DrawOp struct {
	ID     string
	CX, CY float64
	W, H   float64
	Steps  int
}

// SoftwareRenderer keeps textures in plain memory and records draw calls.
// It backs headless runs and is the test double for everything
// texture-shaped: budget enforcement, id bookkeeping, draw order.
type SoftwareRenderer struct {
	mu          sync.Mutex
	initialized bool
	budget      int64
	used        int64
	maxDim      int
	live        map[*SoftwareTexture]struct{}
	draws       []DrawOp
}

// init registers the software renderer on package import.
func init() {
	Register(RendererSoftware, func() Renderer {
		return NewSoftware()
	})
}

// NewSoftware creates a software renderer with no budget and no size limit.
func NewSoftware() *SoftwareRenderer {
	return &SoftwareRenderer{
		live: make(map[*SoftwareTexture]struct{}),
	}
}

// Name returns the renderer identifier.
func (r *SoftwareRenderer) Name() string {
	return RendererSoftware
}

// Init prepares the renderer for use.
func (r *SoftwareRenderer) Init() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.initialized = true
	return nil
}

// Close releases every live texture and resets the renderer.
func (r *SoftwareRenderer) Close() {
	r.mu.Lock()
	textures := make([]*SoftwareTexture, 0, len(r.live))
	for t := range r.live {
		textures = append(textures, t)
	}
	r.initialized = false
	r.mu.Unlock()

	for _, t := range textures {
		t.Close()
	}
}

// SetBudget caps the total texture bytes. 0 means unlimited.
func (r *SoftwareRenderer) SetBudget(bytes int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.budget = bytes
}

// SetMaxTextureDim caps the texture dimension reported by MaxTextureDim.
// 0 means no limit.
func (r *SoftwareRenderer) SetMaxTextureDim(dim int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maxDim = dim
}

// MaxTextureDim returns the configured dimension cap, 0 when unlimited.
func (r *SoftwareRenderer) MaxTextureDim() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxDim
}

// CreateTexture stores the pixel block under the given id. The rgba slice is
// retained by the texture; the caller must not reuse it afterwards.
func (r *SoftwareRenderer) CreateTexture(id string, w, h int, rgba []byte) (Texture, error) {
	if w <= 0 || h <= 0 || len(rgba) != 4*w*h {
		return nil, fmt.Errorf("backend: texture %q %dx%d with %d bytes: %w", id, w, h, len(rgba), ErrInvalidTexture)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxDim > 0 && (w > r.maxDim || h > r.maxDim) {
		return nil, fmt.Errorf("backend: texture %q %dx%d exceeds max dimension %d: %w", id, w, h, r.maxDim, ErrTextureTooLarge)
	}

	size := int64(len(rgba))
	if r.budget > 0 && r.used+size > r.budget {
		return nil, fmt.Errorf("backend: texture %q needs %d bytes, %d of %d in use: %w", id, size, r.used, r.budget, ErrBudgetExceeded)
	}

	t := &SoftwareTexture{
		id:       id,
		w:        w,
		h:        h,
		pix:      rgba,
		renderer: r,
	}
	r.used += size
	r.live[t] = struct{}{}
	return t, nil
}

// DrawQuad records the draw call. Draws of released textures are dropped.
func (r *SoftwareRenderer) DrawQuad(t Texture, cx, cy, w, h float64, steps int) {
	st, ok := t.(*SoftwareTexture)
	if !ok || st.released.Load() {
		return
	}

	steps = ((steps % 4) + 4) % 4

	r.mu.Lock()
	defer r.mu.Unlock()
	r.draws = append(r.draws, DrawOp{
		ID: t.ID(), CX: cx, CY: cy, W: w, H: h, Steps: steps,
	})
}

// Draws returns a copy of the recorded draw calls in order.
func (r *SoftwareRenderer) Draws() []DrawOp {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]DrawOp, len(r.draws))
	copy(out, r.draws)
	return out
}

// ResetDraws clears the recorded draw calls.
func (r *SoftwareRenderer) ResetDraws() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draws = r.draws[:0]
}

// LiveCount returns the number of textures not yet closed.
func (r *SoftwareRenderer) LiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// UsedBytes returns the total bytes held by live textures.
func (r *SoftwareRenderer) UsedBytes() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.used
}

func (r *SoftwareRenderer) release(t *SoftwareTexture) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.live[t]; ok {
		delete(r.live, t)
		r.used -= int64(len(t.pix))
	}
}

// SoftwareTexture is an in-memory texture.
type SoftwareTexture struct {
	id       string
	w, h     int
	pix      []byte
	renderer *SoftwareRenderer
	released atomic.Bool
}

// ID returns the identifier the texture was created with.
func (t *SoftwareTexture) ID() string {
	return t.id
}

// Size returns the texture dimensions.
func (t *SoftwareTexture) Size() (int, int) {
	return t.w, t.h
}

// Pix returns the stored RGBA8 pixels. Tests use this to check tile
// content; callers must not mutate the slice.
func (t *SoftwareTexture) Pix() []byte {
	return t.pix
}

// Close releases the texture. Double close is a no-op.
func (t *SoftwareTexture) Close() {
	if !t.released.CompareAndSwap(false, true) {
		return
	}
	t.renderer.release(t)
}

// String returns a debug description.
func (t *SoftwareTexture) String() string {
	return fmt.Sprintf("SoftwareTexture(%s, %dx%d, released=%v)", t.id, t.w, t.h, t.released.Load())
}
