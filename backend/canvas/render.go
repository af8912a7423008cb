// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"os"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/ggview"
	"github.com/gogpu/ggview/backend"
)

// hudPad is the padding around the HUD text in pixels.
const hudPad = 8.0

// Begin points the renderer at the gg context for this frame. Draw
// calls before Begin or after End are dropped.
func (r *Renderer) Begin(cc *gg.Context) {
	r.cc = cc
}

// End detaches the renderer from the frame context.
func (r *Renderer) End() {
	r.cc = nil
}

// DrawQuad blits a tile centered at (cx, cy) covering w by h display
// pixels, rotated by quarter turns. Rotation swaps pixels, never
// samples between them, so the blit itself stays axis-aligned.
func (r *Renderer) DrawQuad(t backend.Texture, cx, cy, w, h float64, steps int) {
	ct, ok := t.(*Texture)
	if !ok || ct.released.Load() || r.cc == nil {
		return
	}

	steps = ((steps % 4) + 4) % 4
	buf := ct.buf
	if steps != 0 {
		buf = r.variants.GetOrCreate(variantKey{tex: ct, steps: steps}, func() *gg.ImageBuf {
			return rotateBuf(ct.buf, steps)
		})
	}

	r.cc.DrawImageEx(buf, gg.DrawImageOptions{
		X:             cx - w/2,
		Y:             cy - h/2,
		DstWidth:      w,
		DstHeight:     h,
		Interpolation: gg.InterpBilinear,
		Opacity:       1.0,
	})
}

// DrawHUD draws the status line over the bottom-left corner of the
// frame. Without a font it draws nothing.
func (r *Renderer) DrawHUD(line string) {
	if r.cc == nil || r.face == nil || line == "" {
		return
	}
	cc := r.cc
	cc.SetFont(r.face)
	tw, th := cc.MeasureString(line)
	bottom := float64(cc.Height())

	cc.SetRGBA(0, 0, 0, 0.65)
	cc.DrawRectangle(0, bottom-th-2*hudPad, tw+2*hudPad, th+2*hudPad)
	cc.Fill()

	cc.SetRGBA(1, 1, 1, 0.95)
	cc.DrawString(line, hudPad, bottom-hudPad)
}

// rotateBuf remaps src by quarter turns clockwise into a fresh buffer.
// Odd steps swap the dimensions. steps must already be normalized to
// 1..3.
func rotateBuf(src *gg.ImageBuf, steps int) *gg.ImageBuf {
	w, h := src.Bounds()
	sd := src.Data()
	ss := src.Stride()

	var dst *gg.ImageBuf
	if steps == 2 {
		dst, _ = gg.NewImageBuf(w, h, gg.FormatRGBA8)
	} else {
		dst, _ = gg.NewImageBuf(h, w, gg.FormatRGBA8)
	}
	dd := dst.Data()
	dw, dh := dst.Bounds()
	ds := dst.Stride()

	for dy := range dh {
		row := dd[dy*ds:]
		for dx := range dw {
			var sx, sy int
			switch steps {
			case 1:
				sx, sy = dy, h-1-dx
			case 2:
				sx, sy = w-1-dx, h-1-dy
			case 3:
				sx, sy = w-1-dy, dx
			}
			copy(row[dx*4:dx*4+4], sd[sy*ss+sx*4:sy*ss+sx*4+4])
		}
	}
	return dst
}

// loadHUDFont finds a usable system font for the status line. Returns
// nil when none is found; the HUD is then disabled.
func loadHUDFont() text.Face {
	path := findSystemFont()
	if path == "" {
		ggview.Logger().Warn("no system font found, HUD text disabled")
		return nil
	}
	source, err := text.NewFontSourceFromFile(path)
	if err != nil {
		ggview.Logger().Warn("font load failed, HUD text disabled", "path", path, "error", err)
		return nil
	}
	ggview.Logger().Debug("HUD font loaded", "name", source.Name(), "path", path)
	return source.Face(14)
}

// findSystemFont returns the path to a TTF font (TTC collections not
// supported).
func findSystemFont() string {
	candidates := []string{
		// Windows
		"C:\\Windows\\Fonts\\arial.ttf",
		"C:\\Windows\\Fonts\\calibri.ttf",
		"C:\\Windows\\Fonts\\segoeui.ttf",
		// macOS
		"/Library/Fonts/Arial.ttf",
		"/System/Library/Fonts/Supplemental/Arial.ttf",
		"/System/Library/Fonts/Supplemental/Courier New.ttf",
		"/System/Library/Fonts/Monaco.ttf",
		// Linux
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
