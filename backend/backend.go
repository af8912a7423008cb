package backend

import "errors"

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when no usable renderer is registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrInvalidTexture is returned when texture dimensions and pixel data
	// do not agree.
	ErrInvalidTexture = errors.New("backend: invalid texture data")

	// ErrTextureTooLarge is returned when a requested texture exceeds the
	// renderer's maximum dimension.
	ErrTextureTooLarge = errors.New("backend: texture too large")

	// ErrBudgetExceeded is returned when creating a texture would exceed the
	// renderer's memory budget.
	ErrBudgetExceeded = errors.New("backend: texture budget exceeded")
)

// Texture is one uploaded tile. Implementations track their own pixel
// storage; Close releases it and is idempotent.
type Texture interface {
	// ID returns the stable identifier the texture was created with.
	ID() string

	// Size returns the texture dimensions in pixels.
	Size() (w, h int)

	// Close releases the texture. Double close is a no-op.
	Close()
}

// TextureFactory creates textures from tight RGBA8 pixel data.
//
// Thread safety: CreateTexture must be callable from loader goroutines;
// the shipped renderers keep texture pixels on the CPU until frame flush,
// so creation never touches the GPU off the UI goroutine.
type TextureFactory interface {
	// CreateTexture uploads a w x h RGBA8 block (len(rgba) == 4*w*h) under
	// the given identifier. Identifiers derive from image path and tile
	// origin, so a reload of the same file reuses the same ids.
	CreateTexture(id string, w, h int, rgba []byte) (Texture, error)

	// MaxTextureDim returns the largest supported texture dimension,
	// or 0 when the renderer imposes no limit of its own.
	MaxTextureDim() int
}

// BudgetSetter is implemented by renderers that can cap their total
// texture memory. Callers probe for it with a type assertion.
type BudgetSetter interface {
	// SetBudget caps the total texture bytes. 0 means unlimited.
	SetBudget(bytes int64)
}

// Renderer is the drawing side of the graphics boundary. Tiles are drawn
// as axis-aligned quads; orientation is a quarter-turn count applied to the
// texture's pixels, which keeps every quad a rectangle on screen.
//
// Thread safety: DrawQuad and Close are UI-goroutine only.
type Renderer interface {
	TextureFactory

	// Name returns the renderer identifier (e.g. "canvas", "software").
	Name() string

	// Init prepares the renderer for use.
	Init() error

	// Close releases all renderer resources, including live textures.
	Close()

	// DrawQuad draws t centered at (cx, cy) covering w x h display pixels,
	// with the texture pixels rotated clockwise by steps quarter turns.
	DrawQuad(t Texture, cx, cy, w, h float64, steps int)
}
