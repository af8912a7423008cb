// Package backend abstracts the graphics side of the viewer: texture
// creation for image tiles and axis-aligned quad drawing.
//
// # Renderer Registration
//
// Renderers are registered via init() functions and selected at runtime.
// The software renderer is automatically registered on import; the gg
// canvas renderer registers itself when its package is imported:
//
//	import _ "github.com/gogpu/ggview/backend/canvas"
//
// # Renderer Selection
//
// Use Default() for the best available renderer, or Get() for a specific
// one by name:
//
//	r, err := backend.InitDefault()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer r.Close()
//
// # Texture Model
//
// Tiles are uploaded as tight RGBA8 blocks under stable identifiers derived
// from the image path and tile origin. Quads stay axis-aligned; quarter-turn
// orientation is part of the draw call and applied to the texture pixels by
// the renderer.
//
// # Available Renderers
//
// - "software": in-memory textures with draw recording (always available)
// - "canvas": composites through a gg drawing context into a gogpu surface
package backend
