// Package ggview is a tiled image viewer for the GoGPU ecosystem.
//
// # Overview
//
// ggview displays large raster images by splitting them into GPU-sized
// tiles and drawing the tiles through the gg canvas. It keeps pan, zoom
// and quarter-turn rotation exact, browses the images sharing a
// directory as an album, and loads images in the background so the UI
// never blocks on a decode.
//
// # Quick Start
//
//	import "github.com/gogpu/ggview"
//	import "github.com/gogpu/ggview/backend"
//
//	v, err := ggview.NewViewer(path, factory, ggview.DefaultTileLimit)
//	if err != nil {
//	    // the startup image could not be loaded
//	}
//	defer v.Close()
//
//	// each frame, on the UI goroutine:
//	v.Poll()
//	for _, q := range v.Frame(w, h) {
//	    renderer.DrawQuad(q.Tex, q.Center.X, q.Center.Y, q.W, q.H, q.Steps)
//	}
//
// # Architecture
//
// The library is organized into:
//   - Public API: Viewer, Controller, Album, Viewport, ImageSet
//   - Internal: decode (image formats), parallel (worker pool), cache
//   - Backends: canvas (gg), software (headless and tests)
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Rotation in quarter turns, positive is clockwise on screen
//
// # Concurrency
//
// Viewer and Controller belong to the UI goroutine. Image loads run on
// their own goroutines and deliver through buffered channels; texture
// creation is the one backend call loaders make, and backends keep it
// safe for concurrent use.
package ggview

// Version information
const (
	// Version is the current version of the viewer
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
