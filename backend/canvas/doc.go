// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package canvas is the gg-backed tile renderer.
//
// Tiles live as gg image buffers and are blitted into the frame's
// gg.Context with bilinear scaling. Quarter-turn rotation is exact: the
// renderer remaps the buffer's pixels once per rotation step, caches
// the result, and keeps every blit axis-aligned.
//
// # Frame protocol
//
// The window layer hands the renderer a drawing context for the span of
// one frame:
//
//	cr.Begin(cc)
//	for _, q := range quads {
//	    cr.DrawQuad(q.Tex, q.Center.X, q.Center.Y, q.W, q.H, q.Steps)
//	}
//	cr.DrawHUD(line)
//	cr.End()
//
// # Concurrency
//
// CreateTexture may be called from loader goroutines while a frame is
// being drawn. Begin, DrawQuad, DrawHUD and End belong to the UI
// goroutine.
package canvas
